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

// geocodeAPIBase is the Nominatim search endpoint. Declared as a var so
// tests can substitute an httptest server.
var geocodeAPIBase = "https://nominatim.openstreetmap.org/search"

// GeocodeAdapter resolves a free-text location via Nominatim
// (OpenStreetMap).
type GeocodeAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *GeocodeAdapter) Name() string { return "geocoding" }

// Fetch returns the top geocoding hit. An unresolvable location is an
// empty success, not an error.
func (a *GeocodeAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}

	var hits []nominatimHit
	if err := httputil.GetJSON(ctx, a.Client, geocodeAPIBase+"?"+params.Encode(), cfg.UserAgent, &hits); err != nil {
		return types.ErrorResult(err.Error())
	}

	if len(hits) == 0 {
		return types.EmptyResult(fmt.Sprintf("Location '%s' not found", query))
	}
	hit := hits[0]

	osmURL := ""
	if hit.OsmType != "" && hit.OsmID != 0 {
		osmURL = fmt.Sprintf("https://www.openstreetmap.org/%s/%d", hit.OsmType, hit.OsmID)
	}

	return types.SingleResult(types.Record{
		"display_name": orDefault(hit.DisplayName),
		"latitude":     orDefault(hit.Lat),
		"longitude":    orDefault(hit.Lon),
		"type":         orDefault(hit.Type),
		"category":     orDefault(hit.Category),
		"importance":   hit.Importance,
		"osm_url":      osmURL,
	})
}

// Nominatim JSON structures.
type nominatimHit struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Importance  float64 `json:"importance"`
	OsmID       int64   `json:"osm_id"`
	OsmType     string  `json:"osm_type"`
}
