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

// dictionaryAPIBase is the Free Dictionary API endpoint. Declared as a
// var so tests can substitute an httptest server.
var dictionaryAPIBase = "https://api.dictionaryapi.dev/api/v2/entries/en"

// DictionaryAdapter looks up the first word of the query in the Free
// Dictionary API. Dictionaries define single words, so the rest of the
// query is ignored.
type DictionaryAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *DictionaryAdapter) Name() string { return "dictionary" }

// Fetch looks up the query's first token. A 404 means the word is not in
// the dictionary.
func (a *DictionaryAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	word := firstToken(query)
	if word == "" {
		return types.EmptyResult("no word to look up")
	}

	var entries []dictionaryEntry
	err := httputil.GetJSON(ctx, a.Client, dictionaryAPIBase+"/"+url.PathEscape(word), cfg.UserAgent, &entries)
	if errors.Is(err, httputil.ErrNotFound) {
		return types.ErrorResult(fmt.Sprintf("Word '%s' not found in dictionary", word))
	}
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	if len(entries) == 0 {
		return types.ErrorResult("Invalid response from dictionary API")
	}
	entry := entries[0]

	phonetics := make([]string, 0, len(entry.Phonetics))
	for _, p := range entry.Phonetics {
		if p.Text != "" {
			phonetics = append(phonetics, p.Text)
		}
	}

	meanings := make([]types.Record, 0, len(entry.Meanings))
	for _, m := range entry.Meanings {
		defs := make([]types.Record, 0, len(m.Definitions))
		for _, d := range m.Definitions {
			defs = append(defs, types.Record{
				"definition": d.Definition,
				"example":    d.Example,
			})
		}
		meanings = append(meanings, types.Record{
			"part_of_speech": m.PartOfSpeech,
			"definitions":    defs,
		})
	}

	return types.SingleResult(types.Record{
		"word":        orDefault(entry.Word),
		"phonetics":   phonetics,
		"meanings":    meanings,
		"source_urls": entry.SourceURLs,
	})
}

// Free Dictionary API JSON structures.
type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
	SourceURLs []string `json:"sourceUrls"`
}
