// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge answers GIS and remote-sensing queries from a
// small, hand-curated fact table without network access. The table is
// embedded at build time, loaded once, and never mutated. Lookup is a
// two-tier scan, not a ranked search: the table is small and curated
// for non-overlapping keys, so first match in declared order wins.
package knowledge

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

//go:embed entries.yaml
var entriesYAML []byte

// partialConfidence is the fixed confidence for domain-adjacent queries
// that match no exact entry.
const partialConfidence = 0.5

// Base is the loaded knowledge table.
type Base struct {
	categories []category
	keywords   []string
}

type category struct {
	Name    string                `yaml:"name"`
	Entries []types.KnowledgeEntry `yaml:"entries"`
}

type tableFile struct {
	Categories []category `yaml:"categories"`
	Keywords   []string   `yaml:"keywords"`
}

// Load parses the embedded table.
func Load() (*Base, error) {
	var file tableFile
	if err := yaml.Unmarshal(entriesYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing knowledge table: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("knowledge table has no categories")
	}
	return &Base{categories: file.Categories, keywords: file.Keywords}, nil
}

// Lookup checks the query against the table. Exact-topic matches are
// tried first across every category in declared order; only when none
// hits is the broader domain keyword list consulted for a partial
// match. A query outside the domain returns MatchNone with confidence 0.
func (b *Base) Lookup(query string) types.KnowledgeMatch {
	q := strings.ToLower(query)

	for _, cat := range b.categories {
		for i := range cat.Entries {
			entry := &cat.Entries[i]
			if matchesEntry(q, entry) {
				return types.KnowledgeMatch{
					Kind:       types.MatchExact,
					Entry:      entry,
					Category:   cat.Name,
					Confidence: entry.Confidence,
				}
			}
		}
	}

	for _, kw := range b.keywords {
		if strings.Contains(q, kw) {
			return types.KnowledgeMatch{
				Kind:       types.MatchPartial,
				Confidence: partialConfidence,
			}
		}
	}

	return types.KnowledgeMatch{Kind: types.MatchNone}
}

// matchesEntry reports whether the query names the entry by its key or
// any alias.
func matchesEntry(q string, entry *types.KnowledgeEntry) bool {
	if strings.Contains(q, entry.Name) {
		return true
	}
	for _, alias := range entry.Aliases {
		if strings.Contains(q, alias) {
			return true
		}
	}
	return false
}

// FormatMatch renders a match as answer text. Exact matches get the
// entry's fields; partial matches get a pointer back to search.
func FormatMatch(m types.KnowledgeMatch) string {
	switch m.Kind {
	case types.MatchExact:
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**", strings.ToUpper(m.Entry.Name[:1])+m.Entry.Name[1:])
		if m.Entry.Domain != "" {
			fmt.Fprintf(&b, " (%s)", m.Entry.Domain)
		}
		b.WriteString("\n\n")
		if m.Entry.Formula != "" {
			fmt.Fprintf(&b, "Formula: `%s`\n\n", m.Entry.Formula)
		}
		b.WriteString(strings.TrimSpace(m.Entry.Description))
		if m.Entry.Specification != "" {
			fmt.Fprintf(&b, "\n\nSpecifications: %s", strings.TrimSpace(m.Entry.Specification))
		}
		return b.String()
	case types.MatchPartial:
		return "This looks like a GIS or remote-sensing question. I don't have an exact entry for it, so the search results below may help."
	default:
		return ""
	}
}
