package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// chatMessage is one message in an OpenAI-style chat payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat-completion payload shared by
// Cerebras, OpenRouter, and Llama.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// ChatAdapter implements Adapter for OpenAI-compatible chat-completion APIs.
// Provider-specific constructors differ only in configuration (endpoint,
// default model, extra headers); the wire handling is identical.
type ChatAdapter struct {
	cfg    Config
	client *Client
}

// NewChatAdapter creates an adapter for an OpenAI-compatible endpoint.
func NewChatAdapter(cfg Config) *ChatAdapter {
	return &ChatAdapter{
		cfg:    cfg,
		client: NewClient(cfg.Name, cfg.Timeout),
	}
}

// Name returns the provider identifier.
func (a *ChatAdapter) Name() string {
	return a.cfg.Name
}

// DefaultModel returns the model used when the caller omits one.
func (a *ChatAdapter) DefaultModel() string {
	return a.cfg.DefaultModel
}

// Close releases pooled connections.
func (a *ChatAdapter) Close() {
	a.client.CloseIdleConnections()
}

// Call sends prompt as a single-message chat completion and normalizes the
// reply. Validation and the API-key check happen before any network I/O.
func (a *ChatAdapter) Call(ctx context.Context, prompt, model string) (*Result, error) {
	if prompt == "" {
		return nil, &ValidationError{Field: "prompt", Message: "must be a non-empty string"}
	}
	if a.cfg.RequiresAPIKey && a.cfg.APIKey == "" {
		return nil, &APIKeyMissingError{Provider: a.cfg.Name, EnvVar: keyEnvVar(a.cfg.Name)}
	}
	if model == "" {
		model = a.cfg.DefaultModel
	}

	payload := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	headers := make(map[string]string, len(a.cfg.ExtraHeaders)+1)
	for k, v := range a.cfg.ExtraHeaders {
		headers[k] = v
	}
	if a.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + a.cfg.APIKey
	}

	start := time.Now()
	raw, err := a.client.PostJSON(ctx, a.cfg.BaseURL, payload, headers)
	latency := time.Since(start)
	if err != nil {
		return nil, err
	}

	return a.normalize(raw, prompt, model, latency)
}

// normalize decodes the provider response, extracts text and usage, and
// computes the derived token and cost figures.
func (a *ChatAdapter) normalize(raw []byte, prompt, model string, latency time.Duration) (*Result, error) {
	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ParseError{Provider: a.cfg.Name, Cause: err}
	}

	text, source := extractText(&resp)
	if source == StrategyNone {
		slog.Warn("no known response shape matched; completion text is empty",
			"provider", a.cfg.Name,
			"model", model,
		)
	}

	var promptTokens, completionTokens, reportedTotal int
	if resp.Usage != nil {
		promptTokens = resp.Usage.PromptTokens
		completionTokens = resp.Usage.CompletionTokens
		reportedTotal = resp.Usage.TotalTokens
	} else {
		promptTokens = EstimateTokens(prompt)
		completionTokens = EstimateTokens(text)
	}

	// The provider-reported total wins even when it disagrees with the sum;
	// the upstream bill is computed from their figure, not ours.
	totalTokens := reportedTotal
	if totalTokens == 0 {
		totalTokens = promptTokens + completionTokens
	}

	if resp.Model != "" {
		model = resp.Model
	}

	return &Result{
		Text:             text,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		Cost:             EstimateCost(totalTokens, a.cfg.CostPerMillion),
		LatencyMs:        float64(latency.Milliseconds()),
		TextSource:       source,
	}, nil
}

// EstimateCost computes the USD cost estimate for a token count at a static
// per-million rate. This is the single cost formula used everywhere.
func EstimateCost(totalTokens int, costPerMillion float64) float64 {
	if totalTokens <= 0 || costPerMillion <= 0 {
		return 0
	}
	return float64(totalTokens) / 1_000_000 * costPerMillion
}

// keyEnvVar maps a provider name to the environment variable that carries its
// API key, for actionable error messages.
func keyEnvVar(provider string) string {
	switch provider {
	case "cerebras":
		return "CEREBRAS_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "llama":
		return "LLAMA_API_KEY"
	default:
		return ""
	}
}
