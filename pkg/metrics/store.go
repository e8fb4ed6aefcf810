package metrics

import (
	"sync"
	"time"
)

// DefaultWindow is the rolling-window size used by Aggregates when the
// caller does not specify one.
const DefaultWindow = 10

// Store is the bounded, append-only, in-memory metrics buffer. It owns its
// records and counters exclusively; every other component goes through the
// methods below, and the raw buffer is never exposed for mutation.
//
// A single mutex covers the buffer and counters. It is held only for the
// in-memory bookkeeping, never across network I/O, so reads and concurrent
// calls proceed while a provider call is in flight.
type Store struct {
	mu            sync.Mutex
	records       []Record
	maxSize       int
	requestsTotal uint64
	errorsTotal   uint64
}

// NewStore creates a store retaining at most maxSize records. Sizes below 1
// fall back to the default of 500.
func NewStore(maxSize int) *Store {
	if maxSize < 1 {
		maxSize = 500
	}
	return &Store{
		records: make([]Record, 0, maxSize),
		maxSize: maxSize,
	}
}

// Append adds rec to the tail, evicting the oldest record when the buffer is
// full (FIFO). It stamps the record's timestamp when unset, increments
// requestsTotal, and increments errorsTotal for failed records. Append never
// fails.
func (s *Store) Append(rec Record) {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > s.maxSize {
		// Shift in place: the buffer stays at maxSize capacity instead of
		// leaking the evicted head through a growing backing array.
		n := copy(s.records, s.records[1:])
		s.records = s.records[:n]
	}

	s.requestsTotal++
	if rec.Failed() {
		s.errorsTotal++
	}
}

// All returns every retained record in insertion order, oldest first. The
// returned slice is a snapshot copy; callers may not observe later appends
// through it.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the most recently appended record. The second return value
// is false when the store is empty.
func (s *Store) Latest() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Last returns up to the last n records in insertion order, fewer when the
// store holds fewer. n <= 0 returns an empty slice.
func (s *Store) Last(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return []Record{}
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]Record, n)
	copy(out, s.records[len(s.records)-n:])
	return out
}

// Aggregates computes the rolling-window view over the last n records
// (DefaultWindow when n <= 0). An empty window yields all-zero aggregates,
// never NaN.
func (s *Store) Aggregates(n int) Aggregates {
	if n <= 0 {
		n = DefaultWindow
	}
	window := s.Last(n)
	if len(window) == 0 {
		return Aggregates{}
	}

	var sumLatency, sumCost float64
	var errorCount int
	for _, rec := range window {
		sumLatency += rec.LatencyMs
		sumCost += rec.Cost
		if rec.Failed() {
			errorCount++
		}
	}

	size := float64(len(window))
	return Aggregates{
		AvgLatency: sumLatency / size,
		AvgCost:    sumCost / size,
		ErrorRate:  float64(errorCount) / size,
	}
}

// GroupedByProviderModel builds the per-(provider,model) statistics used by
// the Prometheus exposition, in one pass over the retained records.
func (s *Store) GroupedByProviderModel() map[GroupKey]GroupStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[GroupKey]GroupStats)
	for _, rec := range s.records {
		key := GroupKey{Provider: rec.Provider, Model: rec.Model}
		g := groups[key]
		g.Count++
		g.SumLatency += rec.LatencyMs
		g.LatestLatency = rec.LatencyMs
		g.SumCost += rec.Cost
		g.SumTokens += rec.TotalTokens
		if rec.Failed() {
			g.ErrorCount++
		}
		groups[key] = g
	}
	return groups
}

// Totals returns the monotonic request and error counters. Unlike the
// buffer, these are never evicted.
func (s *Store) Totals() (requests, errors uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestsTotal, s.errorsTotal
}

// Len returns the number of retained records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// MaxSize returns the configured retention bound.
func (s *Store) MaxSize() int {
	return s.maxSize
}
