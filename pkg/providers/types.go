package providers

import (
	"context"
	"time"
)

// Adapter is the interface implemented by all provider adapters. An adapter
// translates a plain prompt into the provider's wire format, issues exactly
// one HTTP call, and normalizes the reply.
//
// Adapters never retry and never touch the metrics store; a single failed
// attempt is surfaced to the caller as a typed error.
type Adapter interface {
	// Name returns the provider identifier (e.g., "cerebras").
	Name() string

	// DefaultModel returns the model used when the caller omits one.
	DefaultModel() string

	// Call sends prompt to the provider and returns the normalized result.
	// An empty model selects the provider default. The call is bounded by the
	// provider's configured timeout.
	Call(ctx context.Context, prompt, model string) (*Result, error)
}

// Result is the normalized outcome of a successful provider call.
type Result struct {
	// Text is the completion text extracted from the provider response.
	Text string

	// Model is the model that actually served the request.
	Model string

	// PromptTokens and CompletionTokens come from the provider's usage block
	// when present, otherwise from the word-count heuristic (EstimateTokens).
	PromptTokens     int
	CompletionTokens int

	// TotalTokens is the provider-reported total when the provider reports
	// one, otherwise PromptTokens + CompletionTokens. A provider-reported
	// total that disagrees with the sum is kept as-is.
	TotalTokens int

	// Cost is the estimated USD cost: TotalTokens / 1e6 * CostPerMillion.
	Cost float64

	// LatencyMs is the wall-clock duration of the upstream round trip.
	LatencyMs float64

	// TextSource names the extraction strategy that produced Text.
	TextSource TextStrategy
}

// Config carries the per-provider settings an adapter needs. It is a subset
// of config.ProviderConfig, copied once at construction.
type Config struct {
	// Name is the provider identifier.
	Name string

	// BaseURL is the full chat-completion endpoint URL.
	BaseURL string

	// APIKey is the bearer token. May be empty; RequiresAPIKey decides
	// whether that is an error.
	APIKey string

	// DefaultModel is used when the caller omits the model.
	DefaultModel string

	// Timeout bounds the upstream call.
	Timeout time.Duration

	// CostPerMillion is the static USD rate per million tokens.
	CostPerMillion float64

	// RequiresAPIKey controls the pre-flight key check. Local gateways run
	// without one.
	RequiresAPIKey bool

	// ExtraHeaders are added to every request (e.g., OpenRouter attribution
	// headers). May be nil.
	ExtraHeaders map[string]string
}
