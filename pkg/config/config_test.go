package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Server.Port)
	}
	if !cfg.Server.CORSEnabled {
		t.Error("expected CORS enabled by default")
	}
	if cfg.Metrics.MaxStorageSize != 500 {
		t.Errorf("expected default max storage 500, got %d", cfg.Metrics.MaxStorageSize)
	}
	if !cfg.Metrics.PrometheusEnabled {
		t.Error("expected Prometheus enabled by default")
	}
	if cfg.Metrics.PrometheusEndpoint != "/metrics" {
		t.Errorf("expected default endpoint /metrics, got %s", cfg.Metrics.PrometheusEndpoint)
	}
	if !cfg.Demo.Enabled {
		t.Error("expected demo generator enabled by default")
	}
	if cfg.Demo.Interval != 3*time.Second {
		t.Errorf("expected default demo interval 3s, got %v", cfg.Demo.Interval)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("expected info/json logging defaults, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}

	for _, name := range []string{ProviderCerebras, ProviderOpenRouter, ProviderLlama, ProviderMCP} {
		pc, ok := cfg.Providers[name]
		if !ok {
			t.Fatalf("expected default provider %s", name)
		}
		if pc.BaseURL == "" || pc.DefaultModel == "" {
			t.Errorf("provider %s missing URL or model: %+v", name, pc)
		}
		if pc.Timeout != 30*time.Second {
			t.Errorf("provider %s: expected 30s timeout, got %v", name, pc.Timeout)
		}
		if pc.APIKey != "" {
			t.Errorf("provider %s: API keys must never be defaulted", name)
		}
	}

	if cfg.Providers[ProviderMCP].RequiresAPIKey {
		t.Error("mcp must not require an API key")
	}
	if !cfg.Providers[ProviderCerebras].RequiresAPIKey {
		t.Error("cerebras must require an API key")
	}
}

func TestApplyDefaults_ExplicitFalseWins(t *testing.T) {
	// A section with any field set is considered "touched": the enabled flag
	// stays false instead of being defaulted to true.
	cfg := Config{
		Server: ServerConfig{Port: 8080},
		Demo:   DemoConfig{Interval: time.Second},
	}
	ApplyDefaults(&cfg)

	if cfg.Server.CORSEnabled {
		t.Error("expected CORS to stay disabled for a touched server section")
	}
	if cfg.Demo.Enabled {
		t.Error("expected demo to stay disabled for a touched demo section")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected configured port to survive, got %d", cfg.Server.Port)
	}
}

func TestApplyDefaults_PartialProvider(t *testing.T) {
	cfg := Config{
		Providers: map[string]ProviderConfig{
			ProviderCerebras: {APIKey: "secret"},
		},
	}
	ApplyDefaults(&cfg)

	pc := cfg.Providers[ProviderCerebras]
	if pc.APIKey != "secret" {
		t.Errorf("expected configured key to survive, got %q", pc.APIKey)
	}
	if pc.BaseURL != "https://api.cerebras.ai/v1/chat/completions" {
		t.Errorf("expected default URL to fill in, got %s", pc.BaseURL)
	}
	if pc.DefaultModel != "llama3.1-8b" {
		t.Errorf("expected default model to fill in, got %s", pc.DefaultModel)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8080
  cors_enabled: true
providers:
  cerebras:
    api_key: file-key
metrics:
  max_storage_size: 50
  prometheus_enabled: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Providers[ProviderCerebras].APIKey != "file-key" {
		t.Errorf("expected api key from file, got %q", cfg.Providers[ProviderCerebras].APIKey)
	}
	if cfg.Metrics.MaxStorageSize != 50 {
		t.Errorf("expected max storage 50, got %d", cfg.Metrics.MaxStorageSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
providers:
  cerebras:
    api_key: file-key
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CEREBRAS_API_KEY", "env-key")
	t.Setenv("PORT", "9090")
	t.Setenv("CEREBRAS_TIMEOUT", "5000")
	t.Setenv("METRICS_MAX_SIZE", "25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Providers[ProviderCerebras].APIKey != "env-key" {
		t.Errorf("expected env key to win, got %q", cfg.Providers[ProviderCerebras].APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from env, got %d", cfg.Server.Port)
	}
	// Bare integers in timeout variables are milliseconds.
	if cfg.Providers[ProviderCerebras].Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout from env, got %v", cfg.Providers[ProviderCerebras].Timeout)
	}
	if cfg.Metrics.MaxStorageSize != 25 {
		t.Errorf("expected max storage 25 from env, got %d", cfg.Metrics.MaxStorageSize)
	}
}

func TestLoad_MCPGatewayPort(t *testing.T) {
	t.Setenv("MCP_GATEWAY_PORT", "9811")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.Providers[ProviderMCP].BaseURL; got != "http://localhost:9811/call" {
		t.Errorf("expected gateway URL from port env, got %s", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		var cfg Config
		ApplyDefaults(&cfg)
		return &cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name: "empty provider URL",
			mutate: func(cfg *Config) {
				pc := cfg.Providers[ProviderCerebras]
				pc.BaseURL = ""
				cfg.Providers[ProviderCerebras] = pc
			},
			wantErr: "base_url",
		},
		{
			name: "negative cost",
			mutate: func(cfg *Config) {
				pc := cfg.Providers[ProviderLlama]
				pc.CostPerMillion = -1
				cfg.Providers[ProviderLlama] = pc
			},
			wantErr: "cost_per_million",
		},
		{
			name:    "zero storage size",
			mutate:  func(cfg *Config) { cfg.Metrics.MaxStorageSize = 0 },
			wantErr: "max_storage_size",
		},
		{
			name:    "relative prometheus endpoint",
			mutate:  func(cfg *Config) { cfg.Metrics.PrometheusEndpoint = "metrics" },
			wantErr: "prometheus_endpoint",
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
