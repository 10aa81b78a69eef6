// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// ddgAPIBase is the DuckDuckGo instant answer endpoint. Declared as a
// var so tests can substitute an httptest server. Both DuckDuckGo
// adapters share it.
var ddgAPIBase = "https://api.duckduckgo.com/"

const ddgBodyBudget = 300

// DuckDuckGoAdapter searches DuckDuckGo web results via the instant
// answer API: the abstract plus related topics.
type DuckDuckGoAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *DuckDuckGoAdapter) Name() string { return "duckduckgo" }

// Fetch queries the instant answer API and flattens the abstract and
// related topics into web-hit records.
func (a *DuckDuckGoAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 5)
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	var data ddgResponse
	if err := httputil.GetJSON(ctx, a.Client, ddgAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	var records []types.Record
	if data.AbstractText != "" {
		records = append(records, types.Record{
			"title": orDefault(data.Heading),
			"body":  truncate(data.AbstractText, ddgBodyBudget),
			"url":   data.AbstractURL,
			"type":  "instant_answer",
		})
	}

	for _, topic := range data.RelatedTopics {
		if len(records) >= max {
			break
		}
		if topic.Text == "" {
			continue
		}
		title, body := splitTopicText(topic.Text)
		records = append(records, types.Record{
			"title": title,
			"body":  truncate(body, ddgBodyBudget),
			"url":   topic.FirstURL,
			"type":  "related_topic",
		})
	}
	return types.ListResult(records)
}

// splitTopicText splits a related-topic blob of the form
// "Title - description" into its halves. Topics without the separator
// become title-only records.
func splitTopicText(text string) (title, body string) {
	if idx := strings.Index(text, " - "); idx >= 0 {
		return text[:idx], text[idx+3:]
	}
	return text, ""
}

// InstantAnswerAdapter fetches the single DuckDuckGo instant answer.
type InstantAnswerAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *InstantAnswerAdapter) Name() string { return "duckduckgo_instant" }

// Fetch returns the abstract answer as a singleton record. A query with
// no instant answer is an empty success, not an error.
func (a *InstantAnswerAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	params := url.Values{
		"q":       {query},
		"format":  {"json"},
		"no_html": {"1"},
	}

	var data ddgResponse
	if err := httputil.GetJSON(ctx, a.Client, ddgAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	if data.AbstractText == "" {
		return types.EmptyResult("no instant answer")
	}
	return types.SingleResult(types.Record{
		"answer":  data.AbstractText,
		"heading": data.Heading,
		"url":     data.AbstractURL,
		"image":   data.Image,
	})
}

// DuckDuckGo instant answer API JSON structures.
type ddgResponse struct {
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	Heading       string     `json:"Heading"`
	Image         string     `json:"Image"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

type ddgTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}
