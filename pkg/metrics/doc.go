// Package metrics holds the in-memory metrics store and its read views.
//
// The store is a bounded FIFO buffer of immutable records plus two monotonic
// counters. It is the only shared mutable state in the agent and is protected
// by a single mutex scoped to the buffer and counters; the lock is never held
// across network I/O.
//
// Known limitation, by contract: there is no persistence of any kind. All
// records and counters are lost on process restart.
package metrics
