package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 3001
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultProviderTimeout = 30 * time.Second
	DefaultMaxStorageSize  = 500
	DefaultDemoInterval    = 3 * time.Second

	DefaultPrometheusEndpoint = "/metrics"
)

// defaultProviders returns the built-in provider entries. API keys are always
// sourced from the environment, never defaulted.
func defaultProviders() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		ProviderCerebras: {
			BaseURL:        "https://api.cerebras.ai/v1/chat/completions",
			DefaultModel:   "llama3.1-8b",
			Timeout:        DefaultProviderTimeout,
			CostPerMillion: 0.10,
			RequiresAPIKey: true,
		},
		ProviderOpenRouter: {
			BaseURL:        "https://openrouter.ai/api/v1/chat/completions",
			DefaultModel:   "meta-llama/llama-3.1-8b-instruct:free",
			Timeout:        DefaultProviderTimeout,
			CostPerMillion: 0.06,
			RequiresAPIKey: true,
		},
		ProviderLlama: {
			BaseURL:        "https://openrouter.ai/api/v1/chat/completions",
			DefaultModel:   "meta-llama/llama-3.3-70b-instruct",
			Timeout:        DefaultProviderTimeout,
			CostPerMillion: 0.18,
			RequiresAPIKey: true,
		},
		ProviderMCP: {
			BaseURL:        "http://localhost:8811/call",
			DefaultModel:   "default",
			Timeout:        DefaultProviderTimeout,
			CostPerMillion: 0.10,
			RequiresAPIKey: false,
		},
	}
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called after YAML parsing and before environment overrides so that a
// partial config file still produces a runnable configuration.
func ApplyDefaults(cfg *Config) {
	// A YAML bool cannot distinguish "false" from "unset". Like the other
	// enabled flags below, CORS defaults to on only when its section was left
	// untouched; an explicit false always wins.
	if !cfg.Server.CORSEnabled && cfg.Server == (ServerConfig{}) {
		cfg.Server.CORSEnabled = true
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, def := range defaultProviders() {
		pc, ok := cfg.Providers[name]
		if !ok {
			cfg.Providers[name] = def
			continue
		}
		if pc.BaseURL == "" {
			pc.BaseURL = def.BaseURL
		}
		if pc.DefaultModel == "" {
			pc.DefaultModel = def.DefaultModel
		}
		if pc.Timeout == 0 {
			pc.Timeout = def.Timeout
		}
		if pc.CostPerMillion == 0 {
			pc.CostPerMillion = def.CostPerMillion
		}
		pc.RequiresAPIKey = def.RequiresAPIKey
		cfg.Providers[name] = pc
	}

	if !cfg.Metrics.PrometheusEnabled && cfg.Metrics == (MetricsConfig{}) {
		cfg.Metrics.PrometheusEnabled = true
	}
	if cfg.Metrics.MaxStorageSize == 0 {
		cfg.Metrics.MaxStorageSize = DefaultMaxStorageSize
	}
	if cfg.Metrics.PrometheusEndpoint == "" {
		cfg.Metrics.PrometheusEndpoint = DefaultPrometheusEndpoint
	}

	if !cfg.Demo.Enabled && cfg.Demo == (DemoConfig{}) {
		cfg.Demo.Enabled = true
	}
	if cfg.Demo.Interval == 0 {
		cfg.Demo.Interval = DefaultDemoInterval
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
