// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const arxivSummaryBudget = 500

// ArxivAdapter searches arXiv for scientific papers.
type ArxivAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *ArxivAdapter) Name() string { return "arxiv" }

// Fetch queries the arXiv Atom API sorted by relevance.
func (a *ArxivAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape("all:"+query), max)

	resp, err := httputil.Get(ctx, a.Client, reqURL, cfg.UserAgent)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return types.ErrorResult(fmt.Sprintf("parsing arXiv response: %v", err))
	}

	records := make([]types.Record, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		authors := make([]string, 0, len(entry.Authors))
		for _, au := range entry.Authors {
			authors = append(authors, strings.TrimSpace(au.Name))
		}

		published := types.NotAvailable
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			published = t.Format("2006-01-02")
		}

		categories := make([]string, 0, len(entry.Categories))
		for _, c := range entry.Categories {
			categories = append(categories, c.Term)
		}

		records = append(records, types.Record{
			"title":      strings.TrimSpace(entry.Title),
			"authors":    authors,
			"summary":    truncate(strings.TrimSpace(entry.Summary), arxivSummaryBudget),
			"published":  published,
			"url":        entry.ID,
			"pdf_url":    entry.pdfLink(),
			"categories": categories,
			"doi":        orDefault(entry.DOI),
		})
		if len(records) >= max {
			break
		}
	}
	return types.ListResult(records)
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	DOI        string          `xml:"doi"`
	Authors    []arxivAuthor   `xml:"author"`
	Links      []arxivLink     `xml:"link"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// pdfLink returns the entry's PDF link, or "" when absent.
func (e arxivEntry) pdfLink() string {
	for _, l := range e.Links {
		if l.Title == "pdf" {
			return l.Href
		}
	}
	return ""
}
