// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestClassifyModes(t *testing.T) {
	tests := []struct {
		query string
		want  types.Intent
	}{
		// Keyword tiers.
		{"hi there", types.IntentChat},
		{"thanks a lot for the help", types.IntentChat},
		{"ok thanks", types.IntentChat},
		{"capital of France", types.IntentSearch},
		{"weather in Paris", types.IntentSearch},
		{"latest golang release notes", types.IntentSearch},
		// Deep-think phrases outrank the generic "what is" search phrase.
		{"what is the meaning of life", types.IntentDeepThink},
		{"what if consciousness is an illusion", types.IntentDeepThink},
		{"the ethics of autonomous weapons", types.IntentDeepThink},
		// Structural fallbacks.
		{"Python", types.IntentSearch},
		{"quantum entanglement", types.IntentSearch},
		{"which language compiles fastest of them all", types.IntentSearch},
		{"tell me about your day maybe?", types.IntentSearch},
		{"tell me a story about an old sailor", types.IntentChat},
		{"", types.IntentSearch},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Classify(tt.query)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q).Intent = %q, want %q (scores %v)", tt.query, got.Intent, tt.want, got.Scores)
			}
		})
	}
}

// Totality and determinism: every query returns exactly one mode of the
// closed set, and repeated calls agree.
func TestClassifyTotalAndDeterministic(t *testing.T) {
	queries := []string{
		"", "hello", "what is the capital of France",
		"what if consciousness is an illusion", "?!?!", "   ", "日本語のクエリ",
	}
	for _, q := range queries {
		first := Classify(q)
		if !types.ValidIntent(string(first.Intent)) {
			t.Errorf("Classify(%q) = %q, not in closed mode set", q, first.Intent)
		}
		for i := 0; i < 5; i++ {
			if got := Classify(q); got.Intent != first.Intent {
				t.Errorf("Classify(%q) unstable: %q then %q", q, first.Intent, got.Intent)
			}
		}
	}
}

func TestClassifyScoresAndConfidence(t *testing.T) {
	got := Classify("search the latest news")
	if got.Intent != types.IntentSearch {
		t.Fatalf("Intent = %q, want search", got.Intent)
	}
	if got.Scores[types.IntentSearch] != 3 {
		t.Errorf("search score = %d, want 3 (search, latest, news)", got.Scores[types.IntentSearch])
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Errorf("confidence = %f, want in (0,1]", got.Confidence)
	}
	// All modes present in the score map.
	for _, mode := range types.Intents {
		if _, ok := got.Scores[mode]; !ok {
			t.Errorf("score map missing %q", mode)
		}
	}
}

func TestClassifyFallbackHasZeroConfidence(t *testing.T) {
	got := Classify("Python")
	if got.Confidence != 0 {
		t.Errorf("fallback confidence = %f, want 0", got.Confidence)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"what's up", "what s up"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
