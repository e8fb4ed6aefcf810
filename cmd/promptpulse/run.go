package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/promptpulse/promptpulse/pkg/config"
	"github.com/promptpulse/promptpulse/pkg/demo"
	"github.com/promptpulse/promptpulse/pkg/metrics"
	"github.com/promptpulse/promptpulse/pkg/providers"
	"github.com/promptpulse/promptpulse/pkg/server"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	noDemo        bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the PromptPulse agent",
	Long: `Start the PromptPulse agent with the specified configuration.

The agent listens on the configured address, forwards /call requests to the
selected provider, and serves the recorded metrics as JSON and Prometheus
text.

Examples:
  # Start with default config
  promptpulse run

  # Start with custom config
  promptpulse run --config /etc/promptpulse/config.yaml

  # Override listen address
  promptpulse run --listen 0.0.0.0:8080

  # Validate config without starting
  promptpulse run --dry-run`,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address (host:port)")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.noDemo, "no-demo", false, "disable the demo metric generator")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the agent")
}

func runAgent(cmd *cobra.Command, args []string) error {
	// API keys usually arrive through a .env file during development. A
	// missing file is not an error.
	_ = godotenv.Load()

	// A missing config file is fine unless the operator pointed at one
	// explicitly; defaults plus environment cover the hackathon case.
	path := cfgFile
	if !cmd.Flags().Changed("config") && !rootCmd.PersistentFlags().Changed("config") {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listenAddress != "" {
		host, portStr, err := net.SplitHostPort(runFlags.listenAddress)
		if err != nil {
			return fmt.Errorf("invalid --listen address %q: %w", runFlags.listenAddress, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid --listen port %q: %w", portStr, err)
		}
		if host != "" {
			cfg.Server.Host = host
		}
		cfg.Server.Port = port
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if runFlags.noDemo {
		cfg.Demo.Enabled = false
	}

	setupLogging(cfg)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg, path)

	registry := providers.NewRegistry(buildAdapters(cfg)...)
	store := metrics.NewStore(cfg.Metrics.MaxStorageSize)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	var exporter *metrics.Exporter
	if cfg.Metrics.PrometheusEnabled {
		exporter = metrics.NewExporter(store, promRegistry)
	}

	if cfg.Demo.Enabled {
		demoCost := cfg.Providers[config.ProviderCerebras].CostPerMillion
		gen := demo.New(store, cfg.Demo.Interval, demoCost)
		if err := gen.Start(); err != nil {
			return fmt.Errorf("failed to start demo generator: %w", err)
		}
		defer gen.Stop()
	}

	// The config is read-only after load; the watcher only tells operators
	// that a restart is needed to pick up edits.
	if path != "" {
		if stopWatch, err := config.Watch(path); err != nil {
			slog.Warn("config watcher unavailable", "error", err)
		} else {
			defer stopWatch()
		}
	}

	srv := server.NewServer(cfg, registry, store, exporter, httpMetrics)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("✓ Providers initialized (%d providers)\n", len(registry.List()))
	fmt.Printf("✓ Server listening on %s\n", addr)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", addr)
	if exporter != nil {
		fmt.Printf("✓ Prometheus endpoint: http://%s%s\n", addr, cfg.Metrics.PrometheusEndpoint)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Start blocks until SIGINT/SIGTERM or a listener error.
	return srv.Start(context.Background())
}

// buildAdapters creates one adapter per configured provider, in registry
// order. Unknown names in the providers map are skipped with a warning so a
// typo in the config cannot take the whole agent down.
func buildAdapters(cfg *config.Config) []providers.Adapter {
	var adapters []providers.Adapter
	for name, pc := range cfg.Providers {
		ac := providers.Config{
			Name:           name,
			BaseURL:        pc.BaseURL,
			APIKey:         pc.APIKey,
			DefaultModel:   pc.DefaultModel,
			Timeout:        pc.Timeout,
			CostPerMillion: pc.CostPerMillion,
			RequiresAPIKey: pc.RequiresAPIKey,
		}

		switch name {
		case config.ProviderCerebras:
			adapters = append(adapters, providers.NewCerebras(ac))
		case config.ProviderOpenRouter:
			adapters = append(adapters, providers.NewOpenRouter(ac))
		case config.ProviderLlama:
			adapters = append(adapters, providers.NewLlama(ac))
		case config.ProviderMCP:
			adapters = append(adapters, providers.NewMCP(ac))
		default:
			slog.Warn("skipping unknown provider in config", "provider", name)
		}
	}
	return adapters
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func printBanner(cfg *config.Config, path string) {
	fmt.Printf("PromptPulse v%s\n", Version)
	if path != "" {
		fmt.Printf("Loading configuration from: %s\n", path)
	} else {
		fmt.Println("Using built-in defaults (no config file)")
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("providers configured", "count", len(cfg.Providers))
	if cfg.Demo.Enabled {
		slog.Debug("demo generator enabled", "interval", cfg.Demo.Interval.String())
	}
}
