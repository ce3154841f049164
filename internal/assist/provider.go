// Package assist generates optional memory hooks (mnemonics, framings,
// anchors) for knowledge items using an LLM. The scheduler never depends on
// this package; it exists purely to help the learner encode an item.
package assist

import "context"

// Provider is the abstraction over LLM backends.
type Provider interface {
	// Complete sends a prompt and returns the model's text response.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes a single-turn completion.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means
	// deterministic.
	Temperature float64
}

// Response is a completed generation.
type Response struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}
