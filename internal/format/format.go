// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders an aggregate result into a single markdown
// document. Sections follow one fixed declaration order regardless of
// which source finished first, so output is deterministic for a given
// input. Adapters over-fetch to tolerate noisy APIs; the renderer caps
// every section at a few items and re-truncates display fields.
package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// sectionOrder is the fixed presentation order.
var sectionOrder = []string{
	"duckduckgo_instant",
	"wikipedia",
	"duckduckgo",
	"arxiv",
	"pubmed",
	"books",
	"wikidata",
	"weather",
	"air_quality",
	"geocoding",
	"news",
	"dictionary",
	"country",
	"quotes",
	"github",
	"stackoverflow",
}

// itemCap bounds every list section.
const itemCap = 3

// Render produces the combined document for a query. Sources that are
// absent, errored, or empty are omitted; when nothing is renderable the
// document says so instead of being blank.
func Render(query string, agg types.AggregateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Search Results for: *%s*\n\n", query)

	rendered := 0
	for _, name := range sectionOrder {
		result, ok := agg[name]
		if !ok || !result.Renderable() {
			continue
		}
		if renderSection(&b, name, result) {
			rendered++
		}
	}

	if rendered == 0 {
		b.WriteString("No results found.\n")
	}
	return b.String()
}

// renderSection writes one source section and reports whether anything
// was written. Air quality is the only source that can decline: a
// record whose nested location list is absent produces no section.
func renderSection(b *strings.Builder, name string, result types.SourceResult) bool {
	switch name {
	case "duckduckgo_instant":
		renderInstant(b, result.Record)
	case "wikipedia":
		renderWikipedia(b, result.Record)
	case "duckduckgo":
		renderWeb(b, result.Records)
	case "arxiv":
		renderArxiv(b, result.Records)
	case "pubmed":
		renderPubMed(b, result.Records)
	case "books":
		renderBooks(b, result.Records)
	case "wikidata":
		renderWikidata(b, result.Records)
	case "weather":
		renderWeather(b, result.Record)
	case "air_quality":
		return renderAirQuality(b, result.Record)
	case "geocoding":
		renderGeocoding(b, result.Record)
	case "news":
		renderNews(b, result.Records)
	case "dictionary":
		renderDictionary(b, result.Record)
	case "country":
		renderCountry(b, result.Record)
	case "quotes":
		renderQuotes(b, result.Records)
	case "github":
		renderGitHub(b, result.Records)
	case "stackoverflow":
		renderStackOverflow(b, result.Records)
	default:
		return false
	}
	return true
}

// capped returns at most itemCap non-error records.
func capped(records []types.Record) []types.Record {
	out := make([]types.Record, 0, itemCap)
	for _, r := range records {
		if r.IsError() {
			continue
		}
		out = append(out, r)
		if len(out) >= itemCap {
			break
		}
	}
	return out
}

// clip re-truncates a field for display. Counts runes so the cut cannot
// split a multi-byte character.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func renderInstant(b *strings.Builder, rec types.Record) {
	fmt.Fprintf(b, "### Quick Answer\n%s\n\n", rec.Str("answer"))
}

func renderWikipedia(b *strings.Builder, rec types.Record) {
	fmt.Fprintf(b, "### Wikipedia: %s\n", rec.Str("title"))
	fmt.Fprintf(b, "%s\n", clip(rec.Str("summary"), 500))
	if url := rec.Str("url"); url != types.NotAvailable {
		fmt.Fprintf(b, "[Read more](%s)\n", url)
	}
	b.WriteString("\n")
}

func renderWeb(b *strings.Builder, records []types.Record) {
	b.WriteString("### Web Results\n")
	for _, item := range capped(records) {
		fmt.Fprintf(b, "- **%s**\n", item.Str("title"))
		fmt.Fprintf(b, "  %s\n", clip(item.Str("body"), 150))
		if url := item.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [Link](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderArxiv(b *strings.Builder, records []types.Record) {
	b.WriteString("### Scientific Papers (ArXiv)\n")
	for _, paper := range capped(records) {
		fmt.Fprintf(b, "- **%s**\n", paper.Str("title"))
		fmt.Fprintf(b, "  Authors: %s | Published: %s\n", joinFirst(paper.Strs("authors"), 2), paper.Str("published"))
		fmt.Fprintf(b, "  %s\n", clip(paper.Str("summary"), 200))
		if url := paper.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View Paper](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderPubMed(b *strings.Builder, records []types.Record) {
	b.WriteString("### Medical Research (PubMed)\n")
	for _, article := range capped(records) {
		fmt.Fprintf(b, "- **%s**\n", article.Str("title"))
		fmt.Fprintf(b, "  Authors: %s | Year: %s\n", joinFirst(article.Strs("authors"), 2), article.Str("year"))
		fmt.Fprintf(b, "  %s\n", clip(article.Str("abstract"), 200))
		if url := article.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View Article](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderBooks(b *strings.Builder, records []types.Record) {
	b.WriteString("### Books (OpenLibrary)\n")
	for _, book := range capped(records) {
		fmt.Fprintf(b, "- **%s**\n", book.Str("title"))
		fmt.Fprintf(b, "  Authors: %s | First Published: %s\n", joinFirst(book.Strs("authors"), 2), book.Str("first_publish_year"))
		if url := book.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View Book](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderWikidata(b *strings.Builder, records []types.Record) {
	b.WriteString("### Wikidata Entities\n")
	for _, entity := range capped(records) {
		fmt.Fprintf(b, "- **%s**: %s\n", entity.Str("label"), entity.Str("description"))
		if url := entity.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderWeather(b *strings.Builder, rec types.Record) {
	b.WriteString("### Weather\n")
	fmt.Fprintf(b, "- Location: %s\n", rec.Str("location"))
	fmt.Fprintf(b, "- Temperature: %s°C / %s°F\n", rec.Str("temperature_c"), rec.Str("temperature_f"))
	fmt.Fprintf(b, "- Condition: %s\n", rec.Str("condition"))
	fmt.Fprintf(b, "- Humidity: %s%%\n", rec.Str("humidity"))
	b.WriteString("\n")
}

func renderAirQuality(b *strings.Builder, rec types.Record) bool {
	locations := rec.Recs("data")
	if len(locations) == 0 {
		return false
	}
	b.WriteString("### Air Quality\n")
	fmt.Fprintf(b, "- City: %s\n", rec.Str("city"))
	for i, loc := range locations {
		if i >= 2 {
			break
		}
		fmt.Fprintf(b, "- Location: %s\n", loc.Str("location"))
		for j, m := range loc.Recs("measurements") {
			if j >= 3 {
				break
			}
			fmt.Fprintf(b, "  - %s: %v %s\n", m.Str("parameter"), m["value"], m.Str("unit"))
		}
	}
	b.WriteString("\n")
	return true
}

func renderGeocoding(b *strings.Builder, rec types.Record) {
	b.WriteString("### Location Info\n")
	fmt.Fprintf(b, "- %s\n", rec.Str("display_name"))
	fmt.Fprintf(b, "- Coordinates: %s, %s\n", rec.Str("latitude"), rec.Str("longitude"))
	if url := rec.Str("osm_url"); url != types.NotAvailable {
		fmt.Fprintf(b, "- [View on Map](%s)\n", url)
	}
	b.WriteString("\n")
}

func renderNews(b *strings.Builder, records []types.Record) {
	b.WriteString("### News\n")
	for _, article := range capped(records) {
		fmt.Fprintf(b, "- **%s**\n", article.Str("title"))
		if src := article.Str("source"); src != types.NotAvailable {
			fmt.Fprintf(b, "  Source: %s\n", src)
		}
		fmt.Fprintf(b, "  %s\n", clip(article.Str("body"), 150))
		if url := article.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [Read Article](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderDictionary(b *strings.Builder, rec types.Record) {
	fmt.Fprintf(b, "### Dictionary: %s\n", rec.Str("word"))
	if phonetics := rec.Strs("phonetics"); len(phonetics) > 0 {
		fmt.Fprintf(b, "*Pronunciation: %s*\n", strings.Join(phonetics, ", "))
	}
	meanings, _ := rec["meanings"].([]types.Record)
	for i, meaning := range meanings {
		if i >= 2 {
			break
		}
		fmt.Fprintf(b, "**%s**\n", meaning.Str("part_of_speech"))
		defs, _ := meaning["definitions"].([]types.Record)
		for j, def := range defs {
			if j >= 2 {
				break
			}
			fmt.Fprintf(b, "- %s\n", def.Str("definition"))
			if ex := def.Str("example"); ex != types.NotAvailable {
				fmt.Fprintf(b, "  *Example: \"%s\"*\n", ex)
			}
		}
	}
	b.WriteString("\n")
}

func renderCountry(b *strings.Builder, rec types.Record) {
	fmt.Fprintf(b, "### Country: %s %s\n", rec.Str("name"), rec.Str("flag_emoji"))
	fmt.Fprintf(b, "- **Official Name**: %s\n", rec.Str("official_name"))
	fmt.Fprintf(b, "- **Capital**: %s\n", rec.Str("capital"))
	fmt.Fprintf(b, "- **Region**: %s / %s\n", rec.Str("region"), rec.Str("subregion"))
	fmt.Fprintf(b, "- **Population**: %v\n", rec["population"])
	if languages := rec.Strs("languages"); len(languages) > 0 {
		fmt.Fprintf(b, "- **Languages**: %s\n", joinFirst(languages, 3))
	}
	if currencies := rec.Strs("currencies"); len(currencies) > 0 {
		fmt.Fprintf(b, "- **Currencies**: %s\n", joinFirst(currencies, 2))
	}
	if url := rec.Str("map_url"); url != types.NotAvailable {
		fmt.Fprintf(b, "- [View on Map](%s)\n", url)
	}
	b.WriteString("\n")
}

func renderQuotes(b *strings.Builder, records []types.Record) {
	b.WriteString("### Quotes\n")
	for _, quote := range capped(records) {
		fmt.Fprintf(b, "> \"%s\"\n", quote.Str("content"))
		fmt.Fprintf(b, "> — *%s*\n\n", quote.Str("author"))
	}
}

func renderGitHub(b *strings.Builder, records []types.Record) {
	b.WriteString("### GitHub Repositories\n")
	for _, repo := range capped(records) {
		fmt.Fprintf(b, "- **%s** (stars: %d)\n", repo.Str("name"), repo.Int("stars"))
		fmt.Fprintf(b, "  %s\n", clip(repo.Str("description"), 100))
		fmt.Fprintf(b, "  Language: %s | Forks: %d\n", repo.Str("language"), repo.Int("forks"))
		if url := repo.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View Repository](%s)\n", url)
		}
	}
	b.WriteString("\n")
}

func renderStackOverflow(b *strings.Builder, records []types.Record) {
	b.WriteString("### Stack Overflow\n")
	for _, q := range capped(records) {
		answered := "unanswered"
		if v, ok := q["is_answered"].(bool); ok && v {
			answered = "answered"
		}
		fmt.Fprintf(b, "- **%s** (%s)\n", q.Str("title"), answered)
		fmt.Fprintf(b, "  Score: %d | Answers: %d | Views: %d\n", q.Int("score"), q.Int("answer_count"), q.Int("view_count"))
		if tags := q.Strs("tags"); len(tags) > 0 {
			fmt.Fprintf(b, "  Tags: %s\n", joinFirst(tags, 3))
		}
		if url := q.Str("url"); url != types.NotAvailable {
			fmt.Fprintf(b, "  [View Question](%s)\n", url)
		}
	}
	b.WriteString("\n")
}
