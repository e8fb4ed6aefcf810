// PromptPulse is a lightweight metrics agent for LLM API traffic.
//
// It proxies prompts to configured providers (Cerebras, OpenRouter, Llama,
// or a local MCP gateway), records latency, token, and cost metrics for every
// call in a bounded in-memory store, and serves them as JSON and Prometheus
// text for live dashboards.
//
// Usage:
//
//	# Start the agent with default configuration
//	promptpulse run
//
//	# Start with a custom configuration file
//	promptpulse run --config /path/to/config.yaml
//
//	# Validate configuration without starting
//	promptpulse run --dry-run
//
//	# Show version information
//	promptpulse version
package main

func main() {
	Execute()
}
