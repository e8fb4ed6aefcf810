package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// expositionContentType is the Prometheus text format version served by the
// exporter. Scrapers and the visualization layer key off this exact value.
const expositionContentType = "text/plain; version=0.0.4; charset=utf-8"

// Exporter serves the Prometheus text exposition over the store.
//
// The llm_* metric families are a fixed wire contract: external dashboards
// parse the lines positionally, including the label order
// {provider=...,model=...,stat=...}. The client_golang text encoder sorts
// label names alphabetically, which would break that order, so the contract
// lines are rendered directly and the agent's own operational metrics
// (registered on the prometheus registry) are appended after them via the
// standard encoder.
type Exporter struct {
	store    *Store
	registry *prometheus.Registry
}

// NewExporter creates an exporter over store. registry carries the agent's
// internal operational metrics and may be nil.
func NewExporter(store *Store, registry *prometheus.Registry) *Exporter {
	return &Exporter{store: store, registry: registry}
}

// ServeHTTP implements http.Handler.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", expositionContentType)
	e.write(w)
}

// write renders the full exposition: contract lines first, then the internal
// registry families.
func (e *Exporter) write(w io.Writer) {
	requests, errors := e.store.Totals()
	groups := e.store.GroupedByProviderModel()

	// Stable output order: sort group keys by provider, then model.
	keys := make([]GroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Provider != keys[j].Provider {
			return keys[i].Provider < keys[j].Provider
		}
		return keys[i].Model < keys[j].Model
	})

	fmt.Fprintf(w, "# HELP llm_requests_total Total LLM calls recorded by the agent.\n")
	fmt.Fprintf(w, "# TYPE llm_requests_total counter\n")
	fmt.Fprintf(w, "llm_requests_total %d\n", requests)
	for _, key := range keys {
		g := groups[key]
		fmt.Fprintf(w, "llm_requests_total{provider=%q,model=%q,status=\"success\"} %d\n",
			key.Provider, key.Model, g.Count-g.ErrorCount)
		fmt.Fprintf(w, "llm_requests_total{provider=%q,model=%q,status=\"error\"} %d\n",
			key.Provider, key.Model, g.ErrorCount)
	}

	fmt.Fprintf(w, "# HELP llm_errors_total Total failed LLM calls.\n")
	fmt.Fprintf(w, "# TYPE llm_errors_total counter\n")
	fmt.Fprintf(w, "llm_errors_total %d\n", errors)

	fmt.Fprintf(w, "# HELP llm_request_duration_ms LLM call duration in milliseconds over retained records.\n")
	fmt.Fprintf(w, "# TYPE llm_request_duration_ms gauge\n")
	for _, key := range keys {
		g := groups[key]
		fmt.Fprintf(w, "llm_request_duration_ms{provider=%q,model=%q,stat=\"avg\"} %s\n",
			key.Provider, key.Model, formatValue(g.AvgLatency()))
		fmt.Fprintf(w, "llm_request_duration_ms{provider=%q,model=%q,stat=\"latest\"} %s\n",
			key.Provider, key.Model, formatValue(g.LatestLatency))
	}

	fmt.Fprintf(w, "# HELP llm_request_cost_usd Estimated USD cost summed over retained records.\n")
	fmt.Fprintf(w, "# TYPE llm_request_cost_usd gauge\n")
	for _, key := range keys {
		fmt.Fprintf(w, "llm_request_cost_usd{provider=%q,model=%q} %s\n",
			key.Provider, key.Model, formatValue(groups[key].SumCost))
	}

	fmt.Fprintf(w, "# HELP llm_tokens_total Total tokens summed over retained records.\n")
	fmt.Fprintf(w, "# TYPE llm_tokens_total gauge\n")
	for _, key := range keys {
		fmt.Fprintf(w, "llm_tokens_total{provider=%q,model=%q} %d\n",
			key.Provider, key.Model, groups[key].SumTokens)
	}

	if e.registry == nil {
		return
	}
	mfs, err := e.registry.Gather()
	if err != nil {
		slog.Error("failed to gather internal metrics", "error", err)
		return
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			slog.Error("failed to encode internal metrics", "error", err)
			return
		}
	}
}

// formatValue renders a sample value the way the Prometheus text format does:
// shortest representation that round-trips, so 100.0 prints as "100".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
