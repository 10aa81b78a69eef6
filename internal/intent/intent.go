// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent maps a raw query to a handling mode using ordered
// keyword rules. Classification is deterministic and total: every query,
// including the empty string, maps to exactly one mode. It makes no
// claim of semantic correctness; ambiguous queries resolve by the fixed
// priority order and structural fallbacks below.
package intent

import (
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Keyword tiers, tested in priority order: deep-think first, then
// search, then conversational. First matching tier wins; ties between
// tiers are impossible by construction.
var (
	deepThinkPhrases = []string{
		"what if",
		"meaning of life",
		"consciousness",
		"philosophy",
		"philosophical",
		"ethics",
		"morality",
		"free will",
		"think deeply",
		"reason about",
		"implications of",
		"hypothetically",
		"thought experiment",
	}

	searchPhrases = []string{
		"what is",
		"what are",
		"who is",
		"who was",
		"where is",
		"where are",
		"when did",
		"when was",
		"how to",
		"how many",
		"how much",
		"search",
		"find",
		"look up",
		"lookup",
		"latest",
		"news",
		"weather",
		"forecast",
		"define",
		"definition",
		"capital",
		"population",
		"temperature",
	}

	chatPhrases = []string{
		"hi",
		"hello",
		"hey",
		"thanks",
		"thank you",
		"ok",
		"okay",
		"bye",
		"goodbye",
		"how are you",
		"good morning",
		"good afternoon",
		"good evening",
		"nice",
		"cool",
	}
)

// interrogatives are the question-opening words used by the structural
// fallback.
var interrogatives = []string{"what", "who", "where", "when", "why", "how", "which", "whose", "whom", "is", "are", "can", "does", "do"}

// Classify assigns a handling mode to the query.
func Classify(query string) types.Classification {
	normalized := normalize(query)
	words := strings.Fields(normalized)

	scores := map[types.Intent]int{
		types.IntentDeepThink: countMatches(normalized, deepThinkPhrases),
		types.IntentSearch:    countMatches(normalized, searchPhrases),
		types.IntentChat:      countMatches(normalized, chatPhrases),
	}

	// Keyword tiers in fixed priority order.
	for _, mode := range types.Intents {
		if scores[mode] > 0 {
			return types.Classification{
				Intent:     mode,
				Scores:     scores,
				Confidence: confidence(scores[mode], len(words)),
			}
		}
	}

	// Structural fallbacks, in fixed order. Short queries are assumed
	// to be lookups; so are questions.
	fallback := types.IntentChat
	switch {
	case len(words) <= 2:
		fallback = types.IntentSearch
	case startsWithInterrogative(words):
		fallback = types.IntentSearch
	case strings.Contains(query, "?"):
		fallback = types.IntentSearch
	}

	return types.Classification{Intent: fallback, Scores: scores}
}

// normalize lower-cases the query and strips punctuation so phrase
// matching sees whole words only.
func normalize(query string) string {
	lowered := strings.ToLower(query)
	var b strings.Builder
	for _, r := range lowered {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// countMatches counts phrases appearing as whole words in the
// normalized query.
func countMatches(normalized string, phrases []string) int {
	padded := " " + normalized + " "
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(padded, " "+phrase+" ") {
			count++
		}
	}
	return count
}

func startsWithInterrogative(words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range interrogatives {
		if words[0] == w {
			return true
		}
	}
	return false
}

// confidence normalizes the winning score by query length, capped at 1.
func confidence(score, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	c := float64(score) / float64(wordCount)
	if c > 1 {
		return 1
	}
	return c
}
