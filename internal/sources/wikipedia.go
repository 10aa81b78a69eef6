// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// wikiAPIBase is the English Wikipedia MediaWiki API endpoint. Declared
// as a var so tests can substitute an httptest server.
var wikiAPIBase = "https://en.wikipedia.org/w/api.php"

const (
	wikiSummaryBudget = 1000
	wikiContentBudget = 1000
)

// WikipediaAdapter looks up the best-matching Wikipedia page for a
// query. A page that matches multiple entities is a distinct success
// variant carrying candidate labels, not an error.
type WikipediaAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *WikipediaAdapter) Name() string { return "wikipedia" }

// Fetch searches for page titles, then fetches the top page's extract,
// URL, and categories. The two steps are strictly sequential; an empty
// first step short-circuits to a not-found outcome.
func (a *WikipediaAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	titles, err := a.searchTitles(ctx, query, cfg)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	if len(titles) == 0 {
		return types.EmptyResult("No Wikipedia page found")
	}

	page, err := a.fetchPage(ctx, titles[0], cfg)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	if page == nil {
		return types.EmptyResult("Page not found")
	}

	// Disambiguation pages list the entities a title may refer to;
	// surface the candidate labels instead of the stub summary.
	if strings.Contains(page.Extract, "may refer to") {
		n := len(titles)
		if n > 10 {
			n = 10
		}
		return types.SingleResult(types.Record{
			"exists":         true,
			"title":          query,
			"summary":        fmt.Sprintf("Multiple pages found. Options: %s", strings.Join(titles[:n], ", ")),
			"url":            page.FullURL,
			"disambiguation": titles[:n],
		})
	}

	categories := make([]string, 0, len(page.Categories))
	for _, c := range page.Categories {
		categories = append(categories, strings.TrimPrefix(c.Title, "Category:"))
		if len(categories) >= 5 {
			break
		}
	}

	return types.SingleResult(types.Record{
		"exists":     true,
		"title":      page.Title,
		"summary":    truncate(page.Extract, wikiSummaryBudget),
		"url":        page.FullURL,
		"categories": categories,
		"content":    truncate(page.Extract, wikiContentBudget),
	})
}

// searchTitles returns up to three matching page titles.
func (a *WikipediaAdapter) searchTitles(ctx context.Context, query string, cfg types.SourcesConfig) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"3"},
		"format":   {"json"},
	}

	var data wikiSearchResponse
	if err := httputil.GetJSON(ctx, a.Client, wikiAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(data.Query.Search))
	for _, hit := range data.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// fetchPage returns the page's plain-text intro extract, canonical URL,
// and categories, or nil when the title resolves to no page.
func (a *WikipediaAdapter) fetchPage(ctx context.Context, title string, cfg types.SourcesConfig) (*wikiPage, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|info|categories"},
		"titles":      {title},
		"explaintext": {"1"},
		"exintro":     {"1"},
		"inprop":      {"url"},
		"cllimit":     {"5"},
		"redirects":   {"1"},
		"format":      {"json"},
	}

	var data wikiPageResponse
	if err := httputil.GetJSON(ctx, a.Client, wikiAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return nil, err
	}

	for id, page := range data.Query.Pages {
		if id == "-1" {
			return nil, nil
		}
		p := page
		return &p, nil
	}
	return nil, nil
}

// MediaWiki API JSON structures.
type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiPageResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Title      string `json:"title"`
	Extract    string `json:"extract"`
	FullURL    string `json:"fullurl"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
}
