// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources implements one adapter per external service. Each
// adapter translates a free-text query into a single outbound request
// (two for PubMed) and normalizes the heterogeneous response into the
// shared Record contract. Adapters never return errors and never panic
// past Fetch: every network failure, unexpected schema, or empty outcome
// becomes an error-marker or empty-success result.
package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Adapter is the contract every source implements. Fetch is total: any
// failure is reported inside the SourceResult, never as a Go error.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult
}

// Registry returns the fixed set of all sixteen adapters in declaration
// order, sharing one HTTP client. The order is stable and is what the
// aggregator dispatches; presentation order is the formatter's concern.
func Registry(client *http.Client) []Adapter {
	return []Adapter{
		&ArxivAdapter{Client: client},
		&DuckDuckGoAdapter{Client: client},
		&InstantAnswerAdapter{Client: client},
		&NewsAdapter{Client: client},
		&WikipediaAdapter{Client: client},
		&WeatherAdapter{Client: client},
		&AirQualityAdapter{Client: client},
		&WikidataAdapter{Client: client},
		&BooksAdapter{Client: client},
		&PubMedAdapter{Client: client},
		&GeocodeAdapter{Client: client},
		&DictionaryAdapter{Client: client},
		&CountryAdapter{Client: client},
		&QuotesAdapter{Client: client},
		&GitHubAdapter{Client: client},
		&StackOverflowAdapter{Client: client},
	}
}

// maxResults resolves the effective result cap: the config override when
// positive, otherwise the adapter's default.
func maxResults(cfg types.SourcesConfig, def int) int {
	if cfg.MaxResults > 0 {
		return cfg.MaxResults
	}
	return def
}

// truncate bounds s to max characters, replacing the tail with "..."
// when it exceeds the budget. Budgets count runes, never bytes, so a
// cut cannot split a multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// firstToken returns the first whitespace-delimited token of the query,
// or the query itself when it has no spaces. The dictionary adapter
// looks up single words only.
func firstToken(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return query
	}
	return fields[0]
}

// orDefault substitutes the shared placeholder for empty strings.
func orDefault(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
