package llm

import (
	"context"
	"errors"
)

// Message is one chat turn.
type Message struct {
	Role    string
	Content string
}

// CompletionInput is a chat completion request.
type CompletionInput struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client abstracts chat completion providers.
type Client interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used when no provider API key is set.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, input CompletionInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
