package openlibrary

import (
	"context"
	"fmt"
	"log/slog"
	"path"
)

// Resolve fetches the edition list for a chosen search hit and assembles
// the persistence-ready payload: hit metadata plus normalized dimensions
// rounded to whole centimeters. A failed or empty edition lookup degrades
// to a payload with absent dimensions; the import itself still succeeds
// and the fields stay editable for manual completion.
func (c *Client) Resolve(ctx context.Context, hit SearchHit) (ImportPayload, error) {
	payload := ImportPayload{
		ExternalID: hit.ExternalID,
		Title:      hit.Title,
		Year:       hit.Year,
		CoverURL:   hit.CoverURL,
		Authors:    hit.Authors,
		Subjects:   hit.Subjects,
		Language:   hit.Language,
	}
	if payload.Authors == nil {
		payload.Authors = []string{}
	}

	dims, err := c.fetchDimensions(ctx, hit.ExternalID)
	if err != nil {
		return payload, err
	}

	payload.HeightCM = roundCM(dims.HeightCM)
	payload.WidthCM = roundCM(dims.WidthCM)
	payload.ThicknessCM = roundCM(dims.ThicknessCM)
	payload.Pages = dims.Pages
	return payload, nil
}

// fetchDimensions runs the edition half of the import pipeline: one
// editions request, edition selection, dimension parsing and the
// page-count thickness fallback. Degraded outcomes (no work key, non-2xx
// response, no editions) return empty dimensions and a nil error; only a
// cancelled context surfaces as an error.
func (c *Client) fetchDimensions(ctx context.Context, workKey string) (NormalizedDimensions, error) {
	var dims NormalizedDimensions
	if workKey == "" {
		return dims, nil
	}

	// "/works/OL12345W" -> "OL12345W"
	workID := path.Base(workKey)
	endpoint := fmt.Sprintf("%s/works/%s/editions.json?limit=%d", c.baseURL, workID, c.editionLimit)

	var response struct {
		Entries []Edition `json:"entries"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		if ctx.Err() != nil {
			return dims, ctx.Err()
		}
		slog.Debug("Edition lookup failed, importing without dimensions", "work", workID, "error", err)
		return dims, nil
	}

	edition := chooseEdition(response.Entries)
	if edition == nil {
		slog.Debug("Work has no editions", "work", workID)
		return dims, nil
	}

	if edition.NumberOfPages > 0 {
		pages := int(edition.NumberOfPages)
		dims.Pages = &pages
	}

	dims.HeightCM, dims.WidthCM, dims.ThicknessCM = ParseDimensions(edition.PhysicalDimensions)

	// Estimated thickness only ever fills a gap, it never replaces a
	// measured value.
	if dims.ThicknessCM == nil && dims.Pages != nil {
		dims.ThicknessCM = EstimateThickness(*dims.Pages)
	}

	return dims, nil
}
