// Package server provides the HTTP surface of the PromptPulse agent.
//
// It ties the provider registry, metrics store, and exposition endpoint
// together behind a single http.Server and manages the server lifecycle:
// start, graceful shutdown, and OS signal handling (SIGTERM, SIGINT).
//
// # Routes
//
//   - POST /call - invoke a provider and record a metric
//   - GET /metrics/latest - most recent metric record
//   - GET /metrics/all - full retained history, oldest first
//   - GET /metrics/aggregates - windowed averages and error rate
//   - GET /health - liveness probe
//   - GET /ready - readiness probe (at least one usable provider)
//   - GET /metrics - Prometheus text exposition (path configurable)
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost first):
//  1. Recovery: recovers from panics and returns a JSON 500
//  2. RequestID: generates or propagates X-Request-ID
//  3. Logging: logs request/response details and records HTTP metrics
//  4. CORS: permissive cross-origin headers for the visualization front end
//
// # Graceful Shutdown
//
// Start blocks until the context is cancelled, a shutdown signal arrives, or
// the listener fails. Shutdown stops accepting new connections and waits up
// to the configured shutdown timeout for in-flight requests to complete.
package server
