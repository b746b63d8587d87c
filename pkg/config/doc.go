// Package config defines the configuration for the ccai tool suite and
// handles loading it from YAML files, .env files, and environment
// variables.
//
// The loading sequence is:
//
//  1. Built-in defaults (ApplyDefaults)
//  2. Optional YAML file (~/.ccai.yaml or --config)
//  3. .env file in the repository root, if present
//  4. Environment variable overrides (CCAI_*, ANTHROPIC_API_KEY,
//     OPENAI_API_KEY, CLAUDE_*_MODEL, OPENAI_*_MODEL)
//
// Later sources take precedence. The final configuration is validated
// before use; Validate collects every problem into a single
// ValidationError rather than stopping at the first.
package config
