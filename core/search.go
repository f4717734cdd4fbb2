package core

import "time"

// ToolSchema declaratively exposes a callable tool to the model. Parameters
// is a JSON Schema object (minimal subset: type, properties, required, enum).
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// SummaryHit is one relevance-search result used to augment the system
// prompt with prior-conversation context.
type SummaryHit struct {
	Summary   string    `json:"summary"`
	Topics    []string  `json:"topics,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Score     float64   `json:"score"`
}
