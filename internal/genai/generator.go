// Package genai provides the text-generation collaborator used for slot
// extraction, question phrasing, chat replies, and property-data generation.
package genai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API key is available. Callers fall
// back to their deterministic paths instead of surfacing this to users.
var ErrNotConfigured = errors.New("text generation not configured")

// Request carries one prompt exchange.
type Request struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Generator produces free text from a prompt. Calls may fail or time out;
// callers bound them with a context deadline and degrade gracefully.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
