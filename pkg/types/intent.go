// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Intent is the handling mode assigned to a query.
type Intent string

const (
	// IntentSearch routes the query through the fan-out aggregator.
	IntentSearch Intent = "search"

	// IntentChat routes the query straight to generation.
	IntentChat Intent = "chat"

	// IntentDeepThink routes the query to generation with a reasoning
	// instruction prefix.
	IntentDeepThink Intent = "deep-think"
)

// Intents lists every handling mode in priority order.
var Intents = []Intent{IntentDeepThink, IntentSearch, IntentChat}

// ValidIntent reports whether s names a known handling mode.
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentSearch, IntentChat, IntentDeepThink:
		return true
	}
	return false
}

// Classification is the classifier's verdict for one query.
type Classification struct {
	// Intent is the selected handling mode.
	Intent Intent `json:"intent" yaml:"intent"`

	// Scores maps every handling mode to its keyword match count.
	Scores map[Intent]int `json:"scores" yaml:"scores"`

	// Confidence is the winning score normalized by query word count,
	// in [0,1]. Fallback-derived classifications carry 0.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
