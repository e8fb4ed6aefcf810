// Package providers contains the upstream LLM provider adapters and the
// registry that resolves them by name.
//
// Each adapter issues exactly one HTTP call per invocation (no retries) and
// normalizes the heterogeneous provider response shapes into a single Result.
// Failures surface as typed errors classified by the transport layer:
// APIKeyMissingError (raised before any network I/O), NetworkError (DNS vs
// connection refused), TimeoutError, ProviderError (non-2xx), and ParseError.
package providers
