// Package demo synthesizes metric records so the visualization has something
// to render before any real provider call has been made.
package demo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/promptpulse/promptpulse/pkg/metrics"
	"github.com/promptpulse/promptpulse/pkg/providers"
)

// Value bounds for synthetic records.
const (
	minLatencyMs = 50
	maxLatencyMs = 250

	maxPromptTokens     = 99
	maxCompletionTokens = 149
)

// Generator periodically appends a synthetic "demo" record to the store. It
// is owned by the process lifecycle: Start on boot, Stop on shutdown. Tests
// drive it deterministically through Tick without starting the schedule.
//
// The generator runs outside request handling and goes through the same
// Store.Append path as real calls, so the bounded-buffer eviction rule
// applies to it too.
type Generator struct {
	store          *metrics.Store
	interval       time.Duration
	costPerMillion float64

	cron *cron.Cron

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a generator appending to store every interval.
func New(store *metrics.Store, interval time.Duration, costPerMillion float64) *Generator {
	return &Generator{
		store:          store,
		interval:       interval,
		costPerMillion: costPerMillion,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins the periodic schedule. Calling Start twice is an error.
func (g *Generator) Start() error {
	if g.cron != nil {
		return fmt.Errorf("demo generator already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", g.interval), g.Tick); err != nil {
		return fmt.Errorf("failed to schedule demo generator: %w", err)
	}
	c.Start()
	g.cron = c

	slog.Info("demo metric generator started", "interval", g.interval.String())
	return nil
}

// Stop halts the schedule and waits for an in-flight tick to finish.
func (g *Generator) Stop() {
	if g.cron == nil {
		return
	}
	ctx := g.cron.Stop()
	<-ctx.Done()
	g.cron = nil

	slog.Info("demo metric generator stopped")
}

// Tick appends one synthetic record. It is the unit the schedule invokes and
// what tests call directly to single-step the generator.
func (g *Generator) Tick() {
	g.store.Append(g.synthesize())
}

// synthesize builds one bounded pseudo-random record.
func (g *Generator) synthesize() metrics.Record {
	g.mu.Lock()
	latency := float64(minLatencyMs + g.rng.Intn(maxLatencyMs-minLatencyMs+1))
	promptTokens := g.rng.Intn(maxPromptTokens + 1)
	completionTokens := g.rng.Intn(maxCompletionTokens + 1)
	g.mu.Unlock()

	totalTokens := promptTokens + completionTokens
	return metrics.Record{
		Timestamp:        time.Now().UnixMilli(),
		Provider:         "demo",
		Model:            "demo",
		LatencyMs:        latency,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		Cost:             providers.EstimateCost(totalTokens, g.costPerMillion),
	}
}
