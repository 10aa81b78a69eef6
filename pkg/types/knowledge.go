// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KnowledgeEntry is a static, curated fact used to answer a query without
// network access. Entries are loaded once at process start from an
// embedded table and never mutated.
type KnowledgeEntry struct {
	// Name is the primary lookup key (e.g. "ndvi").
	Name string `json:"name" yaml:"name"`

	// Aliases are alternate lookup keys (e.g. the spelled-out term).
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Formula is the mathematical expression, for formula entries.
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`

	// Description explains the concept in prose.
	Description string `json:"description" yaml:"description"`

	// Specification carries technical parameters (bands, resolutions,
	// revisit times), for system entries.
	Specification string `json:"specification,omitempty" yaml:"specification,omitempty"`

	// Domain is the application-domain tag (e.g. "vegetation analysis").
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Confidence is the author-assigned certainty in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// MatchKind distinguishes knowledge lookup outcomes.
type MatchKind string

const (
	// MatchExact means the query named a curated entry.
	MatchExact MatchKind = "exact"

	// MatchPartial means the query is domain-adjacent but has no entry.
	MatchPartial MatchKind = "partial"

	// MatchNone means the knowledge base does not apply.
	MatchNone MatchKind = "none"
)

// KnowledgeMatch is the outcome of one knowledge base lookup.
type KnowledgeMatch struct {
	// Kind is exact, partial, or none.
	Kind MatchKind `json:"kind" yaml:"kind"`

	// Entry is the matched entry for exact matches, nil otherwise.
	Entry *KnowledgeEntry `json:"entry,omitempty" yaml:"entry,omitempty"`

	// Category names the matched entry's group (e.g. "formulas").
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Confidence is the entry's authored confidence for exact matches,
	// a fixed moderate value for partial matches, and 0 for none.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
