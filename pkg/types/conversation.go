// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one conversational turn. The per-session sequence is
// append-only; only the most recent window is sent to the generator.
type Message struct {
	// Role is "user", "assistant", or "system".
	Role string `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`

	// Mode tags assistant messages with the handling mode that produced
	// them (optional).
	Mode Intent `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Time records when the message was appended.
	Time time.Time `json:"time,omitempty" yaml:"time,omitempty"`
}

// Window returns the most recent limit messages in chronological order.
// A non-positive limit returns the history unchanged.
func Window(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
