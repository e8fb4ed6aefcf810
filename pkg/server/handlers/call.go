package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/promptpulse/promptpulse/pkg/metrics"
	"github.com/promptpulse/promptpulse/pkg/providers"
	"github.com/promptpulse/promptpulse/pkg/server/middleware"
)

// defaultProvider is used when the /call body omits the provider field.
const defaultProvider = "cerebras"

// callRequest is the POST /call body.
type callRequest struct {
	Provider string `json:"provider"`
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
}

// callSuccess is the /call success envelope.
type callSuccess struct {
	OK       bool           `json:"ok"`
	Metrics  metrics.Record `json:"metrics"`
	Output   string         `json:"output"`
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
}

// callFailure is the /call failure envelope.
type callFailure struct {
	OK        bool           `json:"ok"`
	Metrics   metrics.Record `json:"metrics"`
	Error     string         `json:"error"`
	ErrorCode string         `json:"errorCode"`
}

// CallHandler invokes a provider through the registry, appends exactly one
// metric record per attempt (success or failure), and returns the envelope.
type CallHandler struct {
	registry *providers.Registry
	store    *metrics.Store
}

// NewCallHandler creates the /call handler.
func NewCallHandler(registry *providers.Registry, store *metrics.Store) *CallHandler {
	return &CallHandler{registry: registry, store: store}
}

// ServeHTTP implements http.Handler.
func (h *CallHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Malformed JSON is caller error; it still produces a metric record
		// so the error-rate aggregates stay accurate.
		h.fail(w, r, metrics.Record{Provider: defaultProvider}, 0,
			&providers.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}
	if req.Provider == "" {
		req.Provider = defaultProvider
	}

	start := time.Now()

	adapter, err := h.registry.Get(req.Provider)
	if err != nil {
		h.fail(w, r, metrics.Record{Provider: req.Provider, Model: req.Model}, time.Since(start), err)
		return
	}

	model := req.Model
	if model == "" {
		model = adapter.DefaultModel()
	}

	if req.Prompt == "" {
		h.fail(w, r, metrics.Record{Provider: req.Provider, Model: model}, time.Since(start),
			&providers.ValidationError{Field: "prompt", Message: "must be a non-empty string"})
		return
	}

	result, err := adapter.Call(r.Context(), req.Prompt, req.Model)
	elapsed := time.Since(start)
	if err != nil {
		slog.ErrorContext(r.Context(), "provider call failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"provider", req.Provider,
			"model", model,
			"latency_ms", elapsed.Milliseconds(),
			"error", err,
		)
		h.fail(w, r, metrics.Record{Provider: req.Provider, Model: model}, elapsed, err)
		return
	}

	record := metrics.Record{
		Timestamp:        time.Now().UnixMilli(),
		Provider:         req.Provider,
		Model:            result.Model,
		LatencyMs:        result.LatencyMs,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		TotalTokens:      result.TotalTokens,
		Cost:             result.Cost,
	}
	h.store.Append(record)

	slog.InfoContext(r.Context(), "provider call completed",
		"request_id", middleware.GetRequestID(r.Context()),
		"provider", req.Provider,
		"model", result.Model,
		"latency_ms", result.LatencyMs,
		"total_tokens", result.TotalTokens,
		"text_source", string(result.TextSource),
	)

	writeJSON(w, http.StatusOK, callSuccess{
		OK:       true,
		Metrics:  record,
		Output:   result.Text,
		Provider: req.Provider,
		Model:    result.Model,
	})
}

// fail appends the error record for a failed attempt and writes the failure
// envelope. Token and cost fields are zero; latency is the duration observed
// up to the failure.
func (h *CallHandler) fail(w http.ResponseWriter, r *http.Request, rec metrics.Record, elapsed time.Duration, err error) {
	status, code := classifyError(err)

	rec.Timestamp = time.Now().UnixMilli()
	rec.LatencyMs = float64(elapsed.Milliseconds())
	rec.Error = err.Error()
	h.store.Append(rec)

	writeJSON(w, status, callFailure{
		OK:        false,
		Metrics:   rec,
		Error:     err.Error(),
		ErrorCode: code,
	})
}
