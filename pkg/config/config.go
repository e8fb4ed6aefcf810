package config

import "time"

// Config is the root configuration structure for the PromptPulse agent.
// It is loaded once at process start and treated as read-only afterwards;
// changing provider credentials or endpoints requires a restart.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and CORS settings.
	Server ServerConfig `yaml:"server"`

	// Providers contains configuration for all upstream LLM providers.
	// Keys are provider names (e.g., "cerebras", "openrouter", "llama", "mcp").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Metrics contains configuration for the in-memory metrics store and the
	// Prometheus exposition endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Demo contains configuration for the synthetic demo-metric generator.
	Demo DemoConfig `yaml:"demo"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// Host is the interface to bind to.
	// Default: "0.0.0.0"
	Host string `yaml:"host"`

	// Port is the TCP port to listen on.
	// Default: 3001
	Port int `yaml:"port"`

	// CORSEnabled controls whether CORS headers are added to responses.
	// The visualization front end polls from a different origin, so this
	// defaults to true.
	CORSEnabled bool `yaml:"cors_enabled"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// This must be longer than the longest provider timeout, otherwise slow
	// upstream calls are cut off mid-response.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ProviderConfig contains configuration for a single upstream LLM provider.
type ProviderConfig struct {
	// APIKey is the bearer token for the provider. An empty key is allowed at
	// load time; calls to the provider fail with an API-key error instead.
	APIKey string `yaml:"api_key"`

	// BaseURL is the full URL of the provider's chat-completion endpoint.
	BaseURL string `yaml:"base_url"`

	// DefaultModel is used when a caller omits the model field.
	DefaultModel string `yaml:"default_model"`

	// Timeout bounds each upstream call.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// CostPerMillion is the static USD rate per million tokens used for cost
	// estimates. Cost = totalTokens / 1e6 * CostPerMillion.
	CostPerMillion float64 `yaml:"cost_per_million"`

	// RequiresAPIKey controls whether an API key must be present before a call
	// is attempted. Local gateways (MCP) do not need one.
	RequiresAPIKey bool `yaml:"requires_api_key"`
}

// MetricsConfig contains configuration for the metrics store and exposition.
type MetricsConfig struct {
	// MaxStorageSize is the maximum number of metric records retained in
	// memory. Older records are evicted FIFO.
	// Default: 500
	MaxStorageSize int `yaml:"max_storage_size"`

	// PrometheusEnabled controls whether the text exposition endpoint is mounted.
	// Default: true
	PrometheusEnabled bool `yaml:"prometheus_enabled"`

	// PrometheusEndpoint is the path of the text exposition endpoint.
	// Default: "/metrics"
	PrometheusEndpoint string `yaml:"prometheus_endpoint"`
}

// DemoConfig contains configuration for the synthetic metric generator that
// keeps the visualization populated before any real call has been made.
type DemoConfig struct {
	// Enabled controls whether the generator runs.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Interval is the period between synthetic records.
	// Default: 3s
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	// Default: "json"
	Format string `yaml:"format"`
}

// Known provider names. The registry is built from these entries in this order.
const (
	ProviderCerebras   = "cerebras"
	ProviderOpenRouter = "openrouter"
	ProviderLlama      = "llama"
	ProviderMCP        = "mcp"
)
