package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from an optional YAML file and the environment.
//
// The loading sequence is:
//  1. Parse YAML from path (skipped when path is empty)
//  2. Apply default values
//  3. Apply environment variable overrides (environment always wins)
//  4. Validate the final configuration
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. The recognized names match the original deployment scripts
// (PORT, CEREBRAS_API_KEY, METRICS_MAX_SIZE, ...), not a generated scheme.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val, ok := envInt("PORT"); ok {
		cfg.Server.Port = val
	}
	if val, ok := envBool("CORS_ENABLED"); ok {
		cfg.Server.CORSEnabled = val
	}

	applyProviderEnv(cfg, ProviderCerebras, "CEREBRAS")
	applyProviderEnv(cfg, ProviderOpenRouter, "OPENROUTER")
	applyProviderEnv(cfg, ProviderLlama, "LLAMA")

	mcp := cfg.Providers[ProviderMCP]
	if val := os.Getenv("MCP_GATEWAY_URL"); val != "" {
		mcp.BaseURL = val
	} else if port, ok := envInt("MCP_GATEWAY_PORT"); ok {
		mcp.BaseURL = fmt.Sprintf("http://localhost:%d/call", port)
	}
	if d, ok := envDuration("MCP_TIMEOUT"); ok {
		mcp.Timeout = d
	}
	cfg.Providers[ProviderMCP] = mcp

	if val, ok := envInt("METRICS_MAX_SIZE"); ok {
		cfg.Metrics.MaxStorageSize = val
	}
	if val, ok := envBool("PROMETHEUS_ENABLED"); ok {
		cfg.Metrics.PrometheusEnabled = val
	}
	if val := os.Getenv("PROMETHEUS_ENDPOINT"); val != "" {
		cfg.Metrics.PrometheusEndpoint = val
	}

	if d, ok := envDuration("DEMO_INTERVAL"); ok {
		cfg.Demo.Interval = d
	}
	if val, ok := envBool("DEMO_ENABLED"); ok {
		cfg.Demo.Enabled = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

// applyProviderEnv applies the {PREFIX}_API_KEY / _API_URL / _TIMEOUT /
// _COST_PER_MILLION triad for one provider.
func applyProviderEnv(cfg *Config, name, prefix string) {
	pc := cfg.Providers[name]
	if val := os.Getenv(prefix + "_API_KEY"); val != "" {
		pc.APIKey = val
	}
	if val := os.Getenv(prefix + "_API_URL"); val != "" {
		pc.BaseURL = val
	}
	if val := os.Getenv(prefix + "_MODEL"); val != "" {
		pc.DefaultModel = val
	}
	if d, ok := envDuration(prefix + "_TIMEOUT"); ok {
		pc.Timeout = d
	}
	if val := os.Getenv(prefix + "_COST_PER_MILLION"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f >= 0 {
			pc.CostPerMillion = f
		}
	}
	cfg.Providers[name] = pc
}

func envInt(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string) (bool, bool) {
	val := os.Getenv(name)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}

// envDuration parses a duration environment variable. Bare integers are
// interpreted as milliseconds (CEREBRAS_TIMEOUT=30000), Go duration strings
// ("30s", "1m") are accepted as well.
func envDuration(name string) (time.Duration, bool) {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return 0, false
	}
	if ms, err := strconv.Atoi(val); err == nil {
		if ms <= 0 {
			return 0, false
		}
		return time.Duration(ms) * time.Millisecond, true
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d, true
	}
	return 0, false
}
