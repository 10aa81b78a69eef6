// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// weatherAPIBase is the wttr.in endpoint. Declared as a var so tests can
// substitute an httptest server.
var weatherAPIBase = "https://wttr.in"

// WeatherAdapter fetches current conditions from wttr.in, treating the
// whole query as a location name.
type WeatherAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *WeatherAdapter) Name() string { return "weather" }

// Fetch requests the JSON report for the query location and flattens the
// current-condition block. Every field defaults to "N/A" when absent.
func (a *WeatherAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	reqURL := weatherAPIBase + "/" + url.PathEscape(query) + "?format=j1"

	var data wttrResponse
	if err := httputil.GetJSON(ctx, a.Client, reqURL, cfg.UserAgent, &data); err != nil {
		return types.ErrorResult(err.Error())
	}

	if len(data.CurrentCondition) == 0 {
		return types.EmptyResult("no weather data for " + query)
	}
	current := data.CurrentCondition[0]

	condition := types.NotAvailable
	if len(current.WeatherDesc) > 0 {
		condition = orDefault(current.WeatherDesc[0].Value)
	}

	return types.SingleResult(types.Record{
		"location":         query,
		"temperature_c":    orDefault(current.TempC),
		"temperature_f":    orDefault(current.TempF),
		"condition":        condition,
		"humidity":         orDefault(current.Humidity),
		"wind_speed_kmph":  orDefault(current.WindspeedKmph),
		"wind_speed_mph":   orDefault(current.WindspeedMiles),
		"precipitation_mm": orDefault(current.PrecipMM),
		"pressure_mb":      orDefault(current.Pressure),
		"feels_like_c":     orDefault(current.FeelsLikeC),
		"feels_like_f":     orDefault(current.FeelsLikeF),
		"observation_time": orDefault(current.ObservationTime),
	})
}

// wttr.in JSON structures.
type wttrResponse struct {
	CurrentCondition []wttrCondition `json:"current_condition"`
}

type wttrCondition struct {
	TempC           string `json:"temp_C"`
	TempF           string `json:"temp_F"`
	Humidity        string `json:"humidity"`
	WindspeedKmph   string `json:"windspeedKmph"`
	WindspeedMiles  string `json:"windspeedMiles"`
	PrecipMM        string `json:"precipMM"`
	Pressure        string `json:"pressure"`
	FeelsLikeC      string `json:"FeelsLikeC"`
	FeelsLikeF      string `json:"FeelsLikeF"`
	ObservationTime string `json:"observation_time"`
	WeatherDesc     []struct {
		Value string `json:"value"`
	} `json:"weatherDesc"`
}
