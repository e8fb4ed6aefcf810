package handlers

import (
	"net/http"
	"strconv"

	"github.com/promptpulse/promptpulse/pkg/metrics"
)

// The read endpoints are pure views over the store: they never mutate state
// and never block on network I/O.

// LatestHandler serves GET /metrics/latest.
type LatestHandler struct {
	store *metrics.Store
}

// NewLatestHandler creates the /metrics/latest handler.
func NewLatestHandler(store *metrics.Store) *LatestHandler {
	return &LatestHandler{store: store}
}

// ServeHTTP implements http.Handler. An empty store yields metrics: null,
// which consumers must treat as "no data yet", distinct from a fetch error.
func (h *LatestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := h.store.Latest()
	var payload *metrics.Record
	if ok {
		payload = &rec
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"metrics": payload,
	})
}

// AllHandler serves GET /metrics/all.
type AllHandler struct {
	store *metrics.Store
}

// NewAllHandler creates the /metrics/all handler.
func NewAllHandler(store *metrics.Store) *AllHandler {
	return &AllHandler{store: store}
}

// ServeHTTP implements http.Handler.
func (h *AllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	all := h.store.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"metrics": all,
		"count":   len(all),
	})
}

// AggregatesHandler serves GET /metrics/aggregates?count=N.
type AggregatesHandler struct {
	store *metrics.Store
}

// NewAggregatesHandler creates the /metrics/aggregates handler.
func NewAggregatesHandler(store *metrics.Store) *AggregatesHandler {
	return &AggregatesHandler{store: store}
}

// ServeHTTP implements http.Handler. An invalid or missing count falls back
// to the default window rather than erroring; this endpoint is polled by
// dashboards that cannot react to a 400.
func (h *AggregatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count := metrics.DefaultWindow
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"aggregates": h.store.Aggregates(count),
		"sampleSize": count,
	})
}
