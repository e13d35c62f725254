// Package ai turns budgeting and learning requests into prompts for a hosted
// language model and shapes its answers for the API.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured means no provider API key was supplied.
	ErrNotConfigured = errors.New("AI service not configured")
	// ErrUnparsable means the model answered with something that is not the requested JSON.
	ErrUnparsable = errors.New("failed to parse AI response")
)

// CompletionRequest is one system + user prompt exchange.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Completer sends a prompt to a hosted model and returns its text answer.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
