package providers

import (
	"context"
	"encoding/json"
	"time"
)

// MCPAdapter forwards calls to an MCP gateway, an optional local intermediary
// that calls a provider on the agent's behalf. From the core's perspective it
// is just another provider: same normalized result, same error taxonomy.
//
// The gateway replies with a top-level "result" field and no usage block, so
// token counts are always estimated.
type MCPAdapter struct {
	cfg    Config
	client *Client
}

// mcpRequest is the gateway's forward payload.
type mcpRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// NewMCP creates the MCP gateway adapter. The gateway runs locally and needs
// no API key.
func NewMCP(cfg Config) *MCPAdapter {
	cfg.Name = "mcp"
	cfg.RequiresAPIKey = false
	return &MCPAdapter{
		cfg:    cfg,
		client: NewClient(cfg.Name, cfg.Timeout),
	}
}

// Name returns "mcp".
func (a *MCPAdapter) Name() string {
	return a.cfg.Name
}

// DefaultModel returns the model used when the caller omits one.
func (a *MCPAdapter) DefaultModel() string {
	return a.cfg.DefaultModel
}

// Close releases pooled connections.
func (a *MCPAdapter) Close() {
	a.client.CloseIdleConnections()
}

// Call forwards prompt to the gateway and normalizes its reply.
func (a *MCPAdapter) Call(ctx context.Context, prompt, model string) (*Result, error) {
	if prompt == "" {
		return nil, &ValidationError{Field: "prompt", Message: "must be a non-empty string"}
	}
	if model == "" {
		model = a.cfg.DefaultModel
	}

	start := time.Now()
	raw, err := a.client.PostJSON(ctx, a.cfg.BaseURL, mcpRequest{Prompt: prompt, Model: model}, nil)
	latency := time.Since(start)
	if err != nil {
		return nil, err
	}

	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ParseError{Provider: a.cfg.Name, Cause: err}
	}

	text, source := extractText(&resp)
	promptTokens := EstimateTokens(prompt)
	completionTokens := EstimateTokens(text)
	if resp.Usage != nil {
		promptTokens = resp.Usage.PromptTokens
		completionTokens = resp.Usage.CompletionTokens
	}
	totalTokens := promptTokens + completionTokens
	if resp.Usage != nil && resp.Usage.TotalTokens > 0 {
		totalTokens = resp.Usage.TotalTokens
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
