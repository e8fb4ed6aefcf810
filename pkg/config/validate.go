package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for invalid values. It is called after
// defaults and environment overrides have been applied, so every field is
// expected to hold its final value.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}

	for name, pc := range cfg.Providers {
		if pc.BaseURL == "" {
			errs = append(errs, fmt.Sprintf("providers.%s.base_url must not be empty", name))
		}
		if pc.Timeout <= 0 {
			errs = append(errs, fmt.Sprintf("providers.%s.timeout must be positive", name))
		}
		if pc.CostPerMillion < 0 {
			errs = append(errs, fmt.Sprintf("providers.%s.cost_per_million must not be negative", name))
		}
	}

	if cfg.Metrics.MaxStorageSize < 1 {
		errs = append(errs, fmt.Sprintf("metrics.max_storage_size must be at least 1, got %d", cfg.Metrics.MaxStorageSize))
	}
	if cfg.Metrics.PrometheusEnabled && !strings.HasPrefix(cfg.Metrics.PrometheusEndpoint, "/") {
		errs = append(errs, fmt.Sprintf("metrics.prometheus_endpoint must start with '/', got %q", cfg.Metrics.PrometheusEndpoint))
	}

	if cfg.Demo.Enabled && cfg.Demo.Interval <= 0 {
		errs = append(errs, "demo.interval must be positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
