package openlibrary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	FirstPublishYear int      `json:"first_publish_year"`
	AuthorName       []string `json:"author_name"`
	Subject          []string `json:"subject"`
	CoverID          int      `json:"cover_i"`
	Language         []string `json:"language"`
}

const maxSubjectsPerHit = 8

// Search performs a loose title search and maps the results to work-level
// hits. Missing source fields become zero values, never an error. An empty
// query short-circuits to no hits without touching the network.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var response struct {
		Docs []searchDoc `json:"docs"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, limit)
	for _, doc := range response.Docs {
		if len(hits) >= limit {
			break
		}
		hits = append(hits, c.docToHit(doc))
	}
	return hits, nil
}

func (c *Client) docToHit(doc searchDoc) SearchHit {
	hit := SearchHit{
		ExternalID: doc.Key,
		Title:      doc.Title,
		Authors:    doc.AuthorName,
		CoverURL:   c.CoverURL(doc.CoverID, "L"),
	}
	if hit.Authors == nil {
		hit.Authors = []string{}
	}
	if doc.FirstPublishYear > 0 {
		year := doc.FirstPublishYear
		hit.Year = &year
	}
	if len(doc.Subject) > maxSubjectsPerHit {
		hit.Subjects = doc.Subject[:maxSubjectsPerHit]
	} else {
		hit.Subjects = doc.Subject
	}
	// The API reports a language list per work; the first code is kept.
	if len(doc.Language) > 0 {
		hit.Language = doc.Language[0]
	}
	return hit
}
