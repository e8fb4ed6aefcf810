// Package config provides configuration loading for the PromptPulse agent.
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (ApplyDefaults)
//  2. An optional YAML file (--config)
//  3. Environment variables (PORT, CEREBRAS_API_KEY, METRICS_MAX_SIZE, ...)
//
// The resulting Config is read-only for the life of the process. There is no
// hot reload; Watch only reports that the file changed so the operator knows
// to restart.
package config
