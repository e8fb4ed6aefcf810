package metrics

import (
	"fmt"
	"sync"
	"testing"
)

func TestStore_AppendAndAll(t *testing.T) {
	store := NewStore(10)

	store.Append(Record{Provider: "cerebras", Model: "m1", LatencyMs: 100})
	store.Append(Record{Provider: "openrouter", Model: "m2", LatencyMs: 200})

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].Provider != "cerebras" || all[1].Provider != "openrouter" {
		t.Errorf("expected insertion order, got %s then %s", all[0].Provider, all[1].Provider)
	}
	if all[0].Timestamp == 0 {
		t.Error("expected timestamp to be stamped on append")
	}
}

func TestStore_FIFOEviction(t *testing.T) {
	store := NewStore(3)

	for i := 0; i < 5; i++ {
		store.Append(Record{Provider: "p", Model: fmt.Sprintf("m%d", i)})
	}

	if store.Len() != 3 {
		t.Fatalf("expected len 3 after eviction, got %d", store.Len())
	}

	all := store.All()
	want := []string{"m2", "m3", "m4"}
	for i, m := range want {
		if all[i].Model != m {
			t.Errorf("records[%d].Model = %s, want %s", i, all[i].Model, m)
		}
	}

	// Counters survive eviction.
	requests, errors := store.Totals()
	if requests != 5 {
		t.Errorf("expected requestsTotal 5, got %d", requests)
	}
	if errors != 0 {
		t.Errorf("expected errorsTotal 0, got %d", errors)
	}
}

func TestStore_Latest(t *testing.T) {
	store := NewStore(10)

	if _, ok := store.Latest(); ok {
		t.Error("expected no latest record on empty store")
	}

	store.Append(Record{Model: "first"})
	store.Append(Record{Model: "second"})

	rec, ok := store.Latest()
	if !ok {
		t.Fatal("expected latest record")
	}
	if rec.Model != "second" {
		t.Errorf("expected latest model second, got %s", rec.Model)
	}
}

func TestStore_Last(t *testing.T) {
	store := NewStore(10)
	for i := 0; i < 5; i++ {
		store.Append(Record{LatencyMs: float64(i)})
	}

	last := store.Last(3)
	if len(last) != 3 {
		t.Fatalf("expected 3 records, got %d", len(last))
	}
	if last[0].LatencyMs != 2 || last[2].LatencyMs != 4 {
		t.Errorf("expected window [2..4], got [%v..%v]", last[0].LatencyMs, last[2].LatencyMs)
	}

	if got := store.Last(100); len(got) != 5 {
		t.Errorf("expected full history for oversized n, got %d", len(got))
	}
	if got := store.Last(0); len(got) != 0 {
		t.Errorf("expected empty slice for n=0, got %d", len(got))
	}
}

func TestStore_AggregatesEmpty(t *testing.T) {
	store := NewStore(10)

	agg := store.Aggregates(10)
	if agg.AvgLatency != 0 || agg.AvgCost != 0 || agg.ErrorRate != 0 {
		t.Errorf("expected all-zero aggregates on empty store, got %+v", agg)
	}
}

func TestStore_AggregatesIdenticalRecords(t *testing.T) {
	store := NewStore(100)
	for i := 0; i < 10; i++ {
		store.Append(Record{LatencyMs: 150, Cost: 0.25})
	}

	agg := store.Aggregates(10)
	if agg.AvgLatency != 150 {
		t.Errorf("expected avg latency 150, got %v", agg.AvgLatency)
	}
	if agg.AvgCost != 0.25 {
		t.Errorf("expected avg cost 0.25, got %v", agg.AvgCost)
	}
	if agg.ErrorRate != 0 {
		t.Errorf("expected error rate 0, got %v", agg.ErrorRate)
	}
}

func TestStore_AggregatesErrorRate(t *testing.T) {
	store := NewStore(100)
	store.Append(Record{LatencyMs: 100})
	store.Append(Record{LatencyMs: 200, Error: "provider exploded"})
	store.Append(Record{LatencyMs: 300})
	store.Append(Record{LatencyMs: 400, Error: "timeout"})

	agg := store.Aggregates(4)
	if agg.ErrorRate != 0.5 {
		t.Errorf("expected error rate 0.5, got %v", agg.ErrorRate)
	}
	if agg.AvgLatency != 250 {
		t.Errorf("expected avg latency 250, got %v", agg.AvgLatency)
	}
}

func TestStore_ReadsAreIdempotent(t *testing.T) {
	store := NewStore(10)
	store.Append(Record{Model: "m"})

	before := store.Len()
	store.All()
	store.Latest()
	store.Aggregates(10)
	store.GroupedByProviderModel()
	if store.Len() != before {
		t.Errorf("reads changed store length from %d to %d", before, store.Len())
	}

	// Mutating a snapshot must not leak back into the store.
	all := store.All()
	all[0].Model = "mutated"
	if rec, _ := store.Latest(); rec.Model != "m" {
		t.Errorf("snapshot mutation leaked into store: %s", rec.Model)
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	const workers = 8
	const perWorker = 50

	store := NewStore(workers * perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.Append(Record{Provider: fmt.Sprintf("p%d", w), LatencyMs: float64(i)})
			}
		}(w)
	}
	wg.Wait()

	if store.Len() != workers*perWorker {
		t.Errorf("expected %d records, got %d", workers*perWorker, store.Len())
	}
	requests, _ := store.Totals()
	if requests != workers*perWorker {
		t.Errorf("expected requestsTotal %d, got %d", workers*perWorker, requests)
	}
}

func TestStore_GroupedByProviderModel(t *testing.T) {
	store := NewStore(10)
	store.Append(Record{Provider: "cerebras", Model: "m", LatencyMs: 100, Cost: 0.25, TotalTokens: 30})
	store.Append(Record{Provider: "cerebras", Model: "m", LatencyMs: 200, Cost: 0.5, TotalTokens: 50})
	store.Append(Record{Provider: "cerebras", Model: "m", LatencyMs: 300, Error: "boom"})
	store.Append(Record{Provider: "mcp", Model: "default", LatencyMs: 50})

	groups := store.GroupedByProviderModel()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	g := groups[GroupKey{Provider: "cerebras", Model: "m"}]
	if g.Count != 3 {
		t.Errorf("expected count 3, got %d", g.Count)
	}
	if g.ErrorCount != 1 {
		t.Errorf("expected error count 1, got %d", g.ErrorCount)
	}
	if g.AvgLatency() != 200 {
		t.Errorf("expected avg latency 200, got %v", g.AvgLatency())
	}
	if g.LatestLatency != 300 {
		t.Errorf("expected latest latency 300, got %v", g.LatestLatency)
	}
	if g.SumTokens != 80 {
		t.Errorf("expected sum tokens 80, got %d", g.SumTokens)
	}
	if g.SumCost != 0.75 {
		t.Errorf("expected sum cost 0.75, got %v", g.SumCost)
	}
}
