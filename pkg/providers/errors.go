package providers

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// APIKeyMissingError is returned when a provider requires an API key and none
// is configured. It is raised before any network call is attempted.
type APIKeyMissingError struct {
	// Provider is the name of the provider missing a key.
	Provider string

	// EnvVar is the environment variable the operator should set.
	EnvVar string
}

// Error implements the error interface.
func (e *APIKeyMissingError) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("provider %q has no API key configured; set %s", e.Provider, e.EnvVar)
	}
	return fmt.Sprintf("provider %q has no API key configured", e.Provider)
}

// ValidationError is returned for invalid caller input before any network
// call is attempted.
type ValidationError struct {
	// Field is the name of the invalid field.
	Field string

	// Message describes what is invalid about the field.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// UnknownProviderError is returned by the registry for an unregistered name.
// The message enumerates the known names so operators can self-correct.
type UnknownProviderError struct {
	// Name is the requested provider name.
	Name string

	// Known lists the registered provider names.
	Known []string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	known := append([]string(nil), e.Known...)
	sort.Strings(known)
	return fmt.Sprintf("unknown provider %q (known providers: %s)", e.Name, strings.Join(known, ", "))
}

// ProviderError represents a non-2xx response from the upstream provider.
// The body is truncated so operator-facing messages stay readable.
type ProviderError struct {
	// Provider is the name of the provider that returned the error.
	Provider string

	// StatusCode is the upstream HTTP status code.
	StatusCode int

	// Body is the (truncated) upstream response body.
	Body string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %q returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NetworkKind classifies the transport failure reaching the provider.
type NetworkKind string

const (
	// NetworkDNS means the upstream host did not resolve.
	NetworkDNS NetworkKind = "dns"

	// NetworkConnRefused means the host resolved but refused the connection.
	NetworkConnRefused NetworkKind = "connection_refused"

	// NetworkOther covers remaining transport failures (reset, unreachable).
	NetworkOther NetworkKind = "other"
)

// NetworkError represents a transport-level failure before any HTTP response
// was received. The kind is classified from the underlying net error, never
// by matching rendered message strings.
type NetworkError struct {
	// Provider is the name of the provider being reached.
	Provider string

	// Kind classifies the failure.
	Kind NetworkKind

	// Host is the upstream host, when known.
	Host string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	switch e.Kind {
	case NetworkDNS:
		return fmt.Sprintf("provider %q: DNS resolution failed for host %q: %v", e.Provider, e.Host, e.Cause)
	case NetworkConnRefused:
		return fmt.Sprintf("provider %q: connection refused by %q: %v", e.Provider, e.Host, e.Cause)
	default:
		return fmt.Sprintf("provider %q: network error reaching %q: %v", e.Provider, e.Host, e.Cause)
	}
}

// Unwrap returns the underlying error for error chain support.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// TimeoutError is returned when the upstream did not respond within the
// configured timeout.
type TimeoutError struct {
	// Provider is the name of the provider where the timeout occurred.
	Provider string

	// Timeout is the configured timeout duration.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q did not respond within %s", e.Provider, e.Timeout)
}

// ParseError is returned when the provider replied 2xx but the body could not
// be decoded.
type ParseError struct {
	// Provider is the name of the provider that returned the malformed body.
	Provider string

	// Cause is the underlying decode error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response could not be parsed: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
