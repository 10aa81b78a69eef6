// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// githubAPIBase is the GitHub repository search endpoint. Declared as a
// var so tests can substitute an httptest server.
var githubAPIBase = "https://api.github.com/search/repositories"

const githubDescriptionBudget = 300

// GitHubAdapter searches GitHub repositories, ordered by stars.
type GitHubAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *GitHubAdapter) Name() string { return "github" }

// Fetch searches repositories. Anonymous calls are rate limited; a 403
// becomes a distinct rate-limit error marker.
func (a *GitHubAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)
	params := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {fmt.Sprintf("%d", max)},
	}

	var data githubSearchResponse
	err := httputil.GetJSON(ctx, a.Client, githubAPIBase+"?"+params.Encode(), cfg.UserAgent, &data)
	if errors.Is(err, httputil.ErrRateLimited) {
		return types.ErrorResult("GitHub API rate limit exceeded. Try again later.")
	}
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, max)
	for _, repo := range data.Items {
		if len(records) >= max {
			break
		}

		description := repo.Description
		if description == "" {
			description = "No description"
		}
		license := "No license"
		if repo.License.Name != "" {
			license = repo.License.Name
		}

		records = append(records, types.Record{
			"name":        orDefault(repo.Name),
			"full_name":   orDefault(repo.FullName),
			"description": truncate(description, githubDescriptionBudget),
			"url":         repo.HTMLURL,
			"stars":       repo.Stars,
			"forks":       repo.Forks,
			"language":    orDefault(repo.Language),
			"license":     license,
			"owner":       orDefault(repo.Owner.Login),
		})
	}
	return types.ListResult(records)
}

// GitHub search API JSON structures.
type githubSearchResponse struct {
	Items []struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		HTMLURL     string `json:"html_url"`
		Stars       int    `json:"stargazers_count"`
		Forks       int    `json:"forks_count"`
		Language    string `json:"language"`
		License     struct {
			Name string `json:"name"`
		} `json:"license"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"items"`
}
