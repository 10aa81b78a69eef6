package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "answer-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourcesConfig holds settings shared by all source adapters.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults overrides every list adapter's default result count
	// when positive. Zero keeps per-adapter defaults (3-5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AggregateConfig holds settings for the fan-out aggregator.
type AggregateConfig struct {
	// Deadline bounds the whole aggregation. Sources still in flight
	// when it expires contribute timeout error markers. Zero disables
	// the global deadline; the ceiling is then the slowest adapter's
	// own timeout.
	Deadline time.Duration `json:"deadline" yaml:"deadline"`
}

// GenerationConfig holds settings for the local-model generation stage.
type GenerationConfig struct {
	// Endpoint is the local model server base URL (default
	// "http://localhost:11434").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model identifier (e.g. "llama3.2:3b").
	Model string `json:"model" yaml:"model"`

	// Persona is the system prompt text.
	Persona string `json:"persona" yaml:"persona"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps completion length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// HistoryWindow is the number of most recent conversation messages
	// included in the prompt.
	HistoryWindow int `json:"history_window" yaml:"history_window"`
}

// AssistantConfig groups all stage configurations.
type AssistantConfig struct {
	Sources    SourcesConfig    `json:"sources" yaml:"sources"`
	Aggregate  AggregateConfig  `json:"aggregate" yaml:"aggregate"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`

	// ModeOverride forces a handling mode, bypassing the classifier.
	// Empty means classify per query.
	ModeOverride string `json:"mode_override,omitempty" yaml:"mode_override,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() AssistantConfig {
	return AssistantConfig{
		Sources: SourcesConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "answer-engine/0.1",
			},
		},
		Aggregate: AggregateConfig{
			Deadline: 45 * time.Second,
		},
		Generation: GenerationConfig{
			Endpoint:      "http://localhost:11434",
			Model:         "llama3.2:3b",
			Persona:       "You are a helpful research assistant. Answer concisely and cite the provided search results when they are relevant.",
			Temperature:   0.7,
			MaxTokens:     512,
			HistoryWindow: 10,
		},
	}
}
