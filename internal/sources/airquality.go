// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// airQualityAPIBase is the OpenAQ latest-measurements endpoint. Declared
// as a var so tests can substitute an httptest server.
var airQualityAPIBase = "https://api.openaq.org/v2/latest"

// AirQualityAdapter fetches recent air quality measurements from OpenAQ,
// treating the whole query as a city name.
type AirQualityAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *AirQualityAdapter) Name() string { return "air_quality" }

// Fetch returns up to three measurement locations for the city. A city
// with no stations is an empty success.
func (a *AirQualityAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	params := url.Values{
		"limit":    {"5"},
		"page":     {"1"},
		"radius":   {"25000"},
		"order_by": {"lastUpdated"},
		"sort":     {"desc"},
	}
	if query != "" {
		params.Set("city", query)
	}

	var data openaqResponse
	if err := httputil.GetJSON(ctx, a.Client, airQualityAPIBase+"?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	if len(data.Results) == 0 {
		return types.EmptyResult("No air quality data found for " + query)
	}

	locations := make([]types.Record, 0, 3)
	for _, result := range data.Results {
		if len(locations) >= 3 {
			break
		}
		measurements := make([]types.Record, 0, len(result.Measurements))
		for _, m := range result.Measurements {
			measurements = append(measurements, types.Record{
				"parameter":    orDefault(m.Parameter),
				"value":        m.Value,
				"unit":         orDefault(m.Unit),
				"last_updated": orDefault(m.LastUpdated),
			})
		}
		locations = append(locations, types.Record{
			"location":     orDefault(result.Location),
			"city":         orDefault(result.City),
			"country":      orDefault(result.Country),
			"measurements": measurements,
		})
	}

	return types.SingleResult(types.Record{
		"city":  query,
		"data":  locations,
		"count": len(locations),
	})
}

// OpenAQ JSON structures.
type openaqResponse struct {
	Results []openaqLocation `json:"results"`
}

type openaqLocation struct {
	Location     string `json:"location"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Measurements []struct {
		Parameter   string  `json:"parameter"`
		Value       float64 `json:"value"`
		Unit        string  `json:"unit"`
		LastUpdated string  `json:"lastUpdated"`
	} `json:"measurements"`
}
