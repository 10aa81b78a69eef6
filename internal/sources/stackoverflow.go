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

// stackexchangeAPIBase is the Stack Exchange search endpoint. Declared
// as a var so tests can substitute an httptest server.
var stackexchangeAPIBase = "https://api.stackexchange.com/2.3/search"

// StackOverflowAdapter searches Stack Overflow questions by title.
type StackOverflowAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *StackOverflowAdapter) Name() string { return "stackoverflow" }

// Fetch runs an in-title search ordered by relevance.
func (a *StackOverflowAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	params := url.Values{
		"order":    {"desc"},
		"sort":     {"relevance"},
		"intitle":  {query},
		"site":     {"stackoverflow"},
		"pagesize": {fmt.Sprintf("%d", max)},
	}

	var data stackexchangeResponse
	if err := httputil.GetJSON(ctx, a.Client, stackexchangeAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, max)
	for _, q := range data.Items {
		if len(records) >= max {
			break
		}

		owner := "Anonymous"
		if q.Owner.DisplayName != "" {
			owner = q.Owner.DisplayName
		}

		records = append(records, types.Record{
			"question_id":  q.QuestionID,
			"title":        orDefault(q.Title),
			"is_answered":  q.IsAnswered,
			"view_count":   q.ViewCount,
			"answer_count": q.AnswerCount,
			"score":        q.Score,
			"tags":         q.Tags,
			"url":          q.Link,
			"owner":        owner,
		})
	}
	return types.ListResult(records)
}

// Stack Exchange JSON structures.
type stackexchangeResponse struct {
	Items []struct {
		QuestionID  int      `json:"question_id"`
		Title       string   `json:"title"`
		IsAnswered  bool     `json:"is_answered"`
		ViewCount   int      `json:"view_count"`
		AnswerCount int      `json:"answer_count"`
		Score       int      `json:"score"`
		Tags        []string `json:"tags"`
		Link        string   `json:"link"`
		Owner       struct {
			DisplayName string `json:"display_name"`
		} `json:"owner"`
	} `json:"items"`
}
