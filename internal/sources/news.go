// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// newsAPIBase is the DuckDuckGo HTML results endpoint. Declared as a var
// so tests can substitute an httptest server.
var newsAPIBase = "https://duckduckgo.com/html/"

const newsBodyBudget = 300

// NewsAdapter scrapes DuckDuckGo's HTML results page for news items.
// It is the one HTML-backed source; parse failure is a standard adapter
// error like any other malformed payload.
type NewsAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *NewsAdapter) Name() string { return "news" }

// Fetch requests "<query> news" and extracts result titles and snippets.
// When the page yields no rows it falls back to the instant answer API.
func (a *NewsAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	params := url.Values{
		"q":  {query + " news"},
		"kl": {"us-en"},
	}

	resp, err := httputil.Get(ctx, a.Client, newsAPIBase+"?"+params.Encode(), cfg.UserAgent)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("parsing results page: %v", err))
	}

	titles := doc.Find("a.result__url").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	snippets := doc.Find("a.result__snippet").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})

	n := len(titles)
	if len(snippets) < n {
		n = len(snippets)
	}
	if n > max {
		n = max
	}

	records := make([]types.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, types.Record{
			"title":  titles[i],
			"body":   truncate(snippets[i], newsBodyBudget),
			"source": "DuckDuckGo",
			"url":    "https://duckduckgo.com/?q=" + url.QueryEscape(query),
		})
	}

	// No parsed rows: fall back to the regular web search.
	if len(records) == 0 {
		web := (&DuckDuckGoAdapter{Client: a.Client}).Fetch(ctx, query+" news", cfg)
		if web.IsError() {
			return web
		}
		return types.ListResult(web.Records)
	}
	return types.ListResult(records)
}
