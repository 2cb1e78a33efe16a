package openlibrary

import (
	"bytes"
	"strconv"
	"strings"
)

// SearchHit is one work-level result from a title search. Fields that the
// API did not return are left at their zero value; a sparse hit is still a
// valid hit.
type SearchHit struct {
	ExternalID string   `json:"external_id"` // work key, e.g. "/works/OL12345W"
	Title      string   `json:"title"`
	Year       *int     `json:"year,omitempty"`
	Authors    []string `json:"authors"`
	Subjects   []string `json:"subjects,omitempty"`
	CoverURL   string   `json:"cover_url,omitempty"`
	Language   string   `json:"language,omitempty"`
}

// Edition is one raw edition record from the editions endpoint. Only the
// fields the dimension pipeline cares about are decoded.
type Edition struct {
	PhysicalDimensions string    `json:"physical_dimensions"`
	NumberOfPages      PageCount `json:"number_of_pages"`
}

// PageCount tolerates the mixed types Open Library uses for page counts:
// some editions carry a JSON number, others a string like "318". Anything
// unparseable decodes to zero rather than failing the whole edition list.
type PageCount int

func (p *PageCount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		*p = 0
		return nil
	}
	*p = PageCount(n)
	return nil
}

// NormalizedDimensions holds a book's physical dimensions in centimeters,
// regardless of the unit the source edition used. Nil means the value is
// unknown, which is distinct from zero.
type NormalizedDimensions struct {
	HeightCM    *float64
	WidthCM     *float64
	ThicknessCM *float64
	Pages       *int
}

// ImportPayload is the fully resolved record for one chosen book, ready to
// hand to the catalog store. Dimension fields are rounded to whole
// centimeters; nil means the source had nothing usable. No further remote
// calls are needed once a payload exists.
type ImportPayload struct {
	ExternalID  string   `json:"external_id"`
	Title       string   `json:"title"`
	Year        *int     `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Authors     []string `json:"authors"`
	Subjects    []string `json:"subjects,omitempty"`
	Language    string   `json:"language,omitempty"`
	HeightCM    *int     `json:"height_cm,omitempty"`
	WidthCM     *int     `json:"width_cm,omitempty"`
	ThicknessCM *int     `json:"thickness_cm,omitempty"`
	Pages       *int     `json:"pages,omitempty"`
}
