package metrics

// Record is one immutable observation of a single provider call attempt,
// success or failure. Records are never mutated after insertion into the
// store; the JSON field names are the wire contract the visualization layer
// polls.
type Record struct {
	// Timestamp is the creation time in epoch milliseconds, set once at
	// append time.
	Timestamp int64 `json:"timestamp"`

	// Provider is the provider identifier ("cerebras", "llama", "openrouter",
	// "mcp", "demo").
	Provider string `json:"provider"`

	// Model is the specific model used.
	Model string `json:"model"`

	// LatencyMs is the wall-clock duration of the upstream call, or the total
	// duration observed when the call failed before a response arrived.
	LatencyMs float64 `json:"latencyMs"`

	// Token counts. TotalTokens equals PromptTokens + CompletionTokens unless
	// the upstream reported a different total, which is authoritative.
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`

	// Cost is the estimated USD cost: totalTokens / 1e6 * costPerMillion.
	Cost float64 `json:"cost"`

	// Error is empty on success. A non-empty value is the human-readable
	// failure message, rendered verbatim by the visualization layer. It is
	// omitted from JSON on success so consumers see presence as failure.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the record describes a failed call.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Aggregates is the rolling-window view computed over the last N records.
// All fields are zero, never NaN, when the window is empty.
type Aggregates struct {
	// AvgLatency is the mean latencyMs over the window.
	AvgLatency float64 `json:"avgLatency"`

	// AvgCost is the mean cost over the window.
	AvgCost float64 `json:"avgCost"`

	// ErrorRate is errorCount / windowSize.
	ErrorRate float64 `json:"errorRate"`
}

// GroupKey identifies a (provider, model) pair in the grouped view.
type GroupKey struct {
	Provider string
	Model    string
}

// GroupStats accumulates per-(provider,model) figures for the Prometheus
// exposition, computed in one pass over the retained records.
type GroupStats struct {
	// Count is the number of retained records for the pair.
	Count int

	// ErrorCount is how many of those records failed.
	ErrorCount int

	// SumLatency and LatestLatency feed the avg and latest duration gauges.
	SumLatency    float64
	LatestLatency float64

	// SumCost is the summed USD cost.
	SumCost float64

	// SumTokens is the summed total token count.
	SumTokens int
}

// AvgLatency returns SumLatency / Count, or zero for an empty group.
func (g GroupStats) AvgLatency() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.SumLatency / float64(g.Count)
}
