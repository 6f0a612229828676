// Package evidence adapts language-model providers into the evidence
// service the verification and extraction orchestrators consume.
package evidence

import (
	"context"
	"errors"
)

// ErrRateLimited wraps provider responses with HTTP status 429. The
// extraction orchestrator retries these with bounded backoff; everything
// else is a per-item failure.
var ErrRateLimited = errors.New("evidence provider rate limited")

// Request is a single completion request to the evidence service.
type Request struct {
	// System is the system prompt framing the task.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int
}

// Provider defines the interface for evidence service backends. The reply
// is free text expected to contain one JSON object (verification) or one
// JSON array (extraction); callers own the fail-soft decoding.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends the request and returns the raw text reply.
	Complete(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}
