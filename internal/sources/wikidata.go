// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// wikidataAPIBase is the Wikidata entity search endpoint. Declared as a
// var so tests can substitute an httptest server.
var wikidataAPIBase = "https://www.wikidata.org/w/api.php"

// WikidataAdapter searches Wikidata for matching entities.
type WikidataAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *WikidataAdapter) Name() string { return "wikidata" }

// Fetch runs a wbsearchentities query and returns labeled entities.
func (a *WikidataAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	params := url.Values{
		"action":   {"wbsearchentities"},
		"search":   {query},
		"language": {"en"},
		"format":   {"json"},
		"limit":    {fmt.Sprintf("%d", max)},
	}

	var data wikidataResponse
	if err := httputil.GetJSON(ctx, a.Client, wikidataAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, len(data.Search))
	for _, entity := range data.Search {
		records = append(records, types.Record{
			"id":          entity.ID,
			"label":       entity.Label,
			"description": orDefault(entity.Description),
			"url":         "https://www.wikidata.org/wiki/" + entity.ID,
			"concepturi":  entity.ConceptURI,
		})
	}
	return types.ListResult(records)
}

// Wikidata JSON structures.
type wikidataResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
		ConceptURI  string `json:"concepturi"`
	} `json:"search"`
}
