// Package llm contains clients for the external text-completion capability
// used for both document classification and question answering. Every client
// sends a single user message with a bounded token budget and returns the
// response text; streaming is not supported.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ErrNoContent is returned when the service answered without any text.
var ErrNoContent = errors.New("no content in completion response")

// Request is a single-message completion request.
type Request struct {
	Model     string
	MaxTokens int
	Prompt    string
}

// Completer is the completion capability consumed by the services.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f(ctx, req).
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// APIError reports a non-success HTTP status from the completion service
// (auth failures, rate limiting, server errors).
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API error (status %d): %s", e.Status, e.Body)
}

// Config selects and configures a provider client.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// New builds the Completer for cfg.Provider.
func New(cfg Config) (Completer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderAnthropic, "":
		return NewAnthropicClient(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
