// Package genai wraps text generation behind a narrow interface so
// the chat pipeline can swap providers and tests can substitute a
// mock.
package genai

import "context"

// Request is a single-shot completion request. MaxTokens and
// Temperature are passed through to the provider.
type Request struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float32
}

// Service generates one completion per call. Implementations must be
// safe for concurrent use.
type Service interface {
	Generate(ctx context.Context, req Request) (string, error)
}
