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

// quotesAPIBase is the Quotable endpoint. Declared as a var so tests can
// substitute an httptest server.
var quotesAPIBase = "https://api.quotable.io"

// QuotesAdapter searches Quotable for quotes matching the query.
type QuotesAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *QuotesAdapter) Name() string { return "quotes" }

// Fetch searches quotes by content, author, or tags. When the search
// yields nothing it falls back to random quotes so the section still has
// something to show.
func (a *QuotesAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	params := url.Values{
		"query": {query},
		"limit": {fmt.Sprintf("%d", max)},
	}

	var data quotableSearchResponse
	if err := httputil.GetJSON(ctx, a.Client, quotesAPIBase+"/search/quotes?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, max)
	for _, q := range data.Results {
		if len(records) >= max {
			break
		}
		records = append(records, quoteRecord(q))
	}
	if len(records) > 0 {
		return types.ListResult(records)
	}

	// No search hits: fetch random quotes instead.
	var random []quotableQuote
	if err := httputil.GetJSON(ctx, a.Client, quotesAPIBase+"/quotes/random?limit="+fmt.Sprintf("%d", max), cfg.UserAgent, &random); err != nil {
		return types.ErrorResult(err.Error())
	}
	for _, q := range random {
		if len(records) >= max {
			break
		}
		records = append(records, quoteRecord(q))
	}
	return types.ListResult(records)
}

func quoteRecord(q quotableQuote) types.Record {
	author := q.Author
	if author == "" {
		author = "Unknown"
	}
	return types.Record{
		"content": q.Content,
		"author":  author,
		"tags":    q.Tags,
		"length":  q.Length,
	}
}

// Quotable JSON structures.
type quotableSearchResponse struct {
	Results []quotableQuote `json:"results"`
}

type quotableQuote struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Length  int      `json:"length"`
}
