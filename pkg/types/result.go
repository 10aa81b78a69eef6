// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the answer-engine
// pipeline: source records, aggregate results, intent classifications,
// knowledge entries, conversation messages, and stage configuration.
package types

// Reserved record keys. A record carrying ErrorKey is an error marker; a
// record carrying only MessageKey is an empty-but-successful outcome
// ("no results"), which is a distinct, displayable state.
const (
	ErrorKey   = "error"
	MessageKey = "message"
)

// NotAvailable is the placeholder returned for absent record fields.
const NotAvailable = "N/A"

// Record is one normalized unit of information from a source: a mapping
// from field name to string, number, or sequence-of-string. Field sets
// vary per source; consumers read fields through Str and never assume
// presence.
type Record map[string]any

// ErrorRecord builds an error-marker record. It carries the explanatory
// message under ErrorKey and nothing else, so error and success fields
// stay mutually exclusive.
func ErrorRecord(msg string) Record {
	return Record{ErrorKey: msg}
}

// MessageRecord builds an empty-success record ("no results for this
// source") that is not an error.
func MessageRecord(msg string) Record {
	return Record{MessageKey: msg}
}

// IsError reports whether the record is an error marker.
func (r Record) IsError() bool {
	_, ok := r[ErrorKey]
	return ok
}

// Str returns the record's value for key as a string, or NotAvailable
// when the field is absent or not a string.
func (r Record) Str(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return NotAvailable
}

// Strs returns the record's value for key as a string slice, or nil when
// the field is absent or of another type.
func (r Record) Strs(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Recs returns the record's value for key as a slice of nested records,
// or nil when the field is absent or of another type. A JSON round-trip
// decodes nested records as []any of map[string]any; both shapes are
// accepted, like Strs.
func (r Record) Recs(key string) []Record {
	switch v := r[key].(type) {
	case []Record:
		return v
	case []any:
		out := make([]Record, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

// Int returns the record's value for key as an int, or 0 when absent.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// SourceResult is the outcome of one adapter invocation. List sources
// (papers, web hits, repos) populate Records; singleton sources (weather,
// geocoding, dictionary) populate Record. An adapter failure is a single
// error-marker record in either shape.
type SourceResult struct {
	// List discriminates the two shapes: true for sequence-producing
	// sources, false for singleton sources.
	List bool `json:"list"`

	// Records holds the normalized items for list sources.
	Records []Record `json:"records,omitempty"`

	// Record holds the single normalized item for singleton sources.
	Record Record `json:"record,omitempty"`
}

// ListResult wraps records from a list-producing source.
func ListResult(records []Record) SourceResult {
	return SourceResult{List: true, Records: records}
}

// SingleResult wraps the record from a singleton source.
func SingleResult(record Record) SourceResult {
	return SourceResult{Record: record}
}

// ErrorResult builds a failed outcome carrying an error-marker record.
func ErrorResult(msg string) SourceResult {
	return SourceResult{Record: ErrorRecord(msg)}
}

// EmptyResult builds an empty-but-successful outcome.
func EmptyResult(msg string) SourceResult {
	return SourceResult{Record: MessageRecord(msg)}
}

// IsError reports whether the result is an error marker.
func (s SourceResult) IsError() bool {
	if s.List {
		return len(s.Records) > 0 && s.Records[0].IsError()
	}
	return s.Record.IsError()
}

// IsEmpty reports whether the result carries no displayable data. An
// empty-success record (MessageKey only) counts as empty.
func (s SourceResult) IsEmpty() bool {
	if s.List {
		return len(s.Records) == 0
	}
	if len(s.Record) == 0 {
		return true
	}
	if len(s.Record) == 1 {
		_, onlyMessage := s.Record[MessageKey]
		return onlyMessage
	}
	return false
}

// Renderable reports whether the result is worth a section in formatted
// output: present, non-error, and non-empty.
func (s SourceResult) Renderable() bool {
	return !s.IsError() && !s.IsEmpty()
}

// AggregateResult maps source name to its result. After aggregation it
// contains exactly one entry per registered adapter; a source that failed
// or timed out contributes an error marker rather than being dropped.
type AggregateResult map[string]SourceResult
