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

// countryAPIBase is the REST Countries endpoint. Declared as a var so
// tests can substitute an httptest server.
var countryAPIBase = "https://restcountries.com/v3.1/name"

// CountryAdapter looks up country profiles in the REST Countries API.
type CountryAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *CountryAdapter) Name() string { return "country" }

// Fetch tries an exact name lookup and retries once as a partial-name
// search on 404 before giving up.
func (a *CountryAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	base := countryAPIBase + "/" + url.PathEscape(query)

	var countries []restCountry
	err := httputil.GetJSON(ctx, a.Client, base, cfg.UserAgent, &countries)
	if errors.Is(err, httputil.ErrNotFound) {
		err = httputil.GetJSON(ctx, a.Client, base+"?fullText=false", cfg.UserAgent, &countries)
	}
	if errors.Is(err, httputil.ErrNotFound) {
		return types.ErrorResult(fmt.Sprintf("Country '%s' not found", query))
	}
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	if len(countries) == 0 {
		return types.EmptyResult("No country data found")
	}
	country := countries[0]

	languages := make([]string, 0, len(country.Languages))
	for _, lang := range country.Languages {
		languages = append(languages, lang)
	}

	currencies := make([]string, 0, len(country.Currencies))
	for code, cur := range country.Currencies {
		currencies = append(currencies, fmt.Sprintf("%s (%s)", cur.Name, code))
	}

	capital := types.NotAvailable
	if len(country.Capital) > 0 {
		capital = country.Capital[0]
	}

	return types.SingleResult(types.Record{
		"name":          orDefault(country.Name.Common),
		"official_name": orDefault(country.Name.Official),
		"capital":       capital,
		"region":        orDefault(country.Region),
		"subregion":     orDefault(country.Subregion),
		"population":    country.Population,
		"area":          country.Area,
		"languages":     languages,
		"currencies":    currencies,
		"timezones":     country.Timezones,
		"flag_emoji":    country.Flag,
		"flag_url":      country.Flags.PNG,
		"map_url":       country.Maps.GoogleMaps,
	})
}

// REST Countries JSON structures.
type restCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Population int64             `json:"population"`
	Area       float64           `json:"area"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Timezones []string `json:"timezones"`
	Flag      string   `json:"flag"`
	Flags     struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Maps struct {
		GoogleMaps string `json:"googleMaps"`
	} `json:"maps"`
}
