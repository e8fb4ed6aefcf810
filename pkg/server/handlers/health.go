package handlers

import (
	"net/http"
	"time"

	"github.com/promptpulse/promptpulse/pkg/providers"
)

// HealthHandler serves GET /health, the liveness probe.
type HealthHandler struct {
	registry *providers.Registry
}

// NewHealthHandler creates the /health handler.
func NewHealthHandler(registry *providers.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"status":    "healthy",
		"providers": h.registry.List(),
		"timestamp": time.Now().UnixMilli(),
	})
}

// ReadyHandler serves GET /ready. The agent is ready once at least one
// provider could actually serve a call; before that, callers only ever get
// API-key errors back.
type ReadyHandler struct {
	usable func() int
}

// NewReadyHandler creates the /ready handler. usable reports how many
// registered providers are configured well enough to attempt a call.
func NewReadyHandler(usable func() int) *ReadyHandler {
	return &ReadyHandler{usable: usable}
}

// ServeHTTP implements http.Handler.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count := h.usable()
	status := "ready"
	httpStatus := http.StatusOK
	if count == 0 {
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"ok":        count > 0,
		"status":    status,
		"usable":    count,
		"timestamp": time.Now().UnixMilli(),
	})
}
