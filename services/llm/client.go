package llm

import (
	"context"
	"fmt"
)

// Provider names used by the routing policy and in error bodies.
const (
	ProviderDeepSeek = "deepseek" // fast / low-cost
	ProviderClaude   = "claude"   // deep / reasoning
)

// Default model identifiers, also used in error responses when the
// provider itself is not configured.
const (
	DefaultDeepSeekModel = "deepseek-chat"
	DefaultClaudeModel   = "claude-3-5-sonnet-20240620"
)

// Message is a single chat message in provider-neutral form.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// GenerationParams carries the prompt builder's generation settings.
// Model overrides the client's configured model when non-empty.
type GenerationParams struct {
	Model       string   `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// Client is the standard interface for a chat-completion backend.
// Complete returns the extracted text of the first completion; each
// implementation knows its own response envelope.
type Client interface {
	Name() string
	Model() string
	Complete(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}

// ProviderError is returned on any non-success HTTP status or provider
// level error. It carries the status code and response body so the
// caller can log the provider's own diagnostics.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NotConfiguredError is returned when the routed provider has no
// credentials. Routing is not a fallback mechanism: this is surfaced to
// the caller rather than retried against the alternate provider.
type NotConfiguredError struct {
	Provider string
}

func (e *NotConfiguredError) Error() string {
	return e.Provider + " API not configured"
}

// Registry holds the two process-lifetime provider handles. A nil entry
// means that provider was not configured at startup; requests routed to
// it fail with NotConfiguredError.
type Registry struct {
	Fast Client // deepseek wire
	Deep Client // claude wire
}

// Get resolves a routing decision's provider name to a client.
func (r Registry) Get(provider string) (Client, error) {
	switch provider {
	case ProviderDeepSeek:
		if r.Fast == nil {
			return nil, &NotConfiguredError{Provider: ProviderDeepSeek}
		}
		return r.Fast, nil
	case ProviderClaude:
		if r.Deep == nil {
			return nil, &NotConfiguredError{Provider: ProviderClaude}
		}
		return r.Deep, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// DefaultModel returns the model identifier reported for a provider
// that has no configured client.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderClaude:
		return DefaultClaudeModel
	default:
		return DefaultDeepSeekModel
	}
}
