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

// booksAPIBase is the OpenLibrary search endpoint. Declared as a var so
// tests can substitute an httptest server.
var booksAPIBase = "https://openlibrary.org/search.json"

// BooksAdapter searches OpenLibrary for books.
type BooksAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *BooksAdapter) Name() string { return "books" }

// Fetch queries OpenLibrary and normalizes the document list. Author,
// publisher, and language fall back to defaults when absent.
func (a *BooksAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 5)
	params := url.Values{
		"q":     {query},
		"limit": {fmt.Sprintf("%d", max)},
	}

	var data openLibraryResponse
	if err := httputil.GetJSON(ctx, a.Client, booksAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, max)
	for _, doc := range data.Docs {
		if len(records) >= max {
			break
		}

		authors := doc.AuthorName
		if len(authors) == 0 {
			authors = []string{"Unknown"}
		}
		publisher := "Unknown"
		if len(doc.Publisher) > 0 {
			publisher = doc.Publisher[0]
		}
		language := "en"
		if len(doc.Language) > 0 {
			language = doc.Language[0]
		}
		subjects := doc.Subject
		if len(subjects) > 3 {
			subjects = subjects[:3]
		}

		year := types.NotAvailable
		if doc.FirstPublishYear > 0 {
			year = fmt.Sprintf("%d", doc.FirstPublishYear)
		}

		bookURL := ""
		if doc.Key != "" {
			bookURL = "https://openlibrary.org" + doc.Key
		}
		coverURL := ""
		if doc.CoverID > 0 {
			coverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
		}

		records = append(records, types.Record{
			"title":              orDefault(doc.Title),
			"authors":            authors,
			"first_publish_year": year,
			"publisher":          publisher,
			"language":           language,
			"subject":            subjects,
			"url":                bookURL,
			"cover_url":          coverURL,
		})
	}
	return types.ListResult(records)
}

// OpenLibrary JSON structures.
type openLibraryResponse struct {
	Docs []struct {
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		Publisher        []string `json:"publisher"`
		Language         []string `json:"language"`
		Subject          []string `json:"subject"`
		Key              string   `json:"key"`
		CoverID          int      `json:"cover_i"`
	} `json:"docs"`
}
