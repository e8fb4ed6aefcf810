package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "promptpulse",
	Short: "PromptPulse - LLM metrics agent",
	Long: `PromptPulse is a lightweight metrics agent for LLM API traffic.

It proxies prompts to configured providers and records latency, token, and
cost metrics for every call:
  - Provider adapters for Cerebras, OpenRouter, Llama, and MCP gateways
  - Bounded in-memory metric history with windowed aggregates
  - JSON endpoints for dashboards plus Prometheus text exposition
  - Synthetic demo metrics so visualizations are never empty`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
