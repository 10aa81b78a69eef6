// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// DefaultDigestBudget bounds the digest included in generation prompts.
const DefaultDigestBudget = 2000

// Digest condenses an aggregate result into a bounded plain-text
// summary: one line per renderable source, top item only, in the fixed
// section order. The generator receives this instead of the full
// rendered document to respect the model's context window.
func Digest(agg types.AggregateResult, budget int) string {
	if budget <= 0 {
		budget = DefaultDigestBudget
	}

	var b strings.Builder
	for _, name := range sectionOrder {
		result, ok := agg[name]
		if !ok || !result.Renderable() {
			continue
		}
		line := digestLine(name, result)
		if line == "" {
			continue
		}
		if b.Len()+len(line)+1 > budget {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// digestLine summarizes one source in a single line.
func digestLine(name string, result types.SourceResult) string {
	if result.List {
		top := capped(result.Records)
		if len(top) == 0 {
			return ""
		}
		rec := top[0]
		title := rec.Str("title")
		if title == types.NotAvailable {
			title = rec.Str("label")
		}
		if title == types.NotAvailable {
			title = rec.Str("content")
		}
		body := rec.Str("body")
		if body == types.NotAvailable {
			body = rec.Str("summary")
		}
		if body == types.NotAvailable {
			body = rec.Str("abstract")
		}
		if body == types.NotAvailable {
			body = rec.Str("description")
		}
		if body == types.NotAvailable {
			return fmt.Sprintf("%s: %s", name, clip(title, 120))
		}
		return fmt.Sprintf("%s: %s - %s", name, clip(title, 120), clip(body, 200))
	}

	rec := result.Record
	switch name {
	case "duckduckgo_instant":
		return fmt.Sprintf("instant answer: %s", clip(rec.Str("answer"), 300))
	case "wikipedia":
		return fmt.Sprintf("wikipedia (%s): %s", rec.Str("title"), clip(rec.Str("summary"), 300))
	case "weather":
		return fmt.Sprintf("weather in %s: %s°C, %s, humidity %s%%",
			rec.Str("location"), rec.Str("temperature_c"), rec.Str("condition"), rec.Str("humidity"))
	case "geocoding":
		return fmt.Sprintf("location: %s (%s, %s)", rec.Str("display_name"), rec.Str("latitude"), rec.Str("longitude"))
	case "country":
		return fmt.Sprintf("country %s: capital %s, region %s", rec.Str("name"), rec.Str("capital"), rec.Str("region"))
	case "dictionary":
		return fmt.Sprintf("dictionary (%s)", rec.Str("word"))
	case "air_quality":
		return fmt.Sprintf("air quality data for %s", rec.Str("city"))
	}
	return ""
}
