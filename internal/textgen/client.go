// Package textgen provides clients for external text-generation services.
// The services are treated as unreliable: callers own retry policy and must
// tolerate unstructured responses.
package textgen

import (
	"context"
	"fmt"
	"time"
)

// Provider identifies a text-generation backend.
type Provider string

// Supported providers
const (
	// ProviderPollinations is a public HTTP endpoint that accepts the prompt
	// as a URL path and returns plain text.
	ProviderPollinations Provider = "pollinations"
	// ProviderGemini is the Google Gemini API.
	ProviderGemini Provider = "gemini"
)

// Client is an abstraction over text-generation providers.
type Client interface {
	// Generate sends a prompt and returns the raw response text.
	// The response may be prose, JSON, or noise around JSON.
	Generate(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Config selects and configures a provider.
type Config struct {
	Provider Provider
	BaseURL  string        // pollinations endpoint
	APIKey   string        // gemini key
	Model    string        // gemini model, defaulted when empty
	Timeout  time.Duration // per-request bound
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case ProviderPollinations, "":
		return NewPollinationsClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown text generation provider: %q", cfg.Provider)
	}
}
