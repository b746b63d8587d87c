package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "commit.workers").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError if any
// rules fail. All problems are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Providers.Anthropic.APIKey == "" {
		errs = append(errs, FieldError{
			Field:   "providers.anthropic.api_key",
			Message: "API key is required (set ANTHROPIC_API_KEY)",
		})
	}
	errs = append(errs, validateProvider("providers.anthropic", &cfg.Providers.Anthropic)...)
	errs = append(errs, validateProvider("providers.openai", &cfg.Providers.OpenAI)...)

	if cfg.Commit.Workers < 1 {
		errs = append(errs, FieldError{Field: "commit.workers", Message: "must be at least 1"})
	}
	if cfg.Commit.Batches < 1 {
		errs = append(errs, FieldError{Field: "commit.batches", Message: "must be at least 1"})
	}
	if cfg.Commit.ChunkThreshold < 1 {
		errs = append(errs, FieldError{Field: "commit.chunk_threshold", Message: "must be positive"})
	}
	if cfg.Commit.Temperature < 0 || cfg.Commit.Temperature > 1 {
		errs = append(errs, FieldError{Field: "commit.temperature", Message: "must be between 0 and 1"})
	}

	if cfg.Report.Workers < 1 {
		errs = append(errs, FieldError{Field: "report.workers", Message: "must be at least 1"})
	}
	if cfg.Report.BatchSize < 1 {
		errs = append(errs, FieldError{Field: "report.batch_size", Message: "must be at least 1"})
	}
	if cfg.Report.CommitTimeout <= 0 {
		errs = append(errs, FieldError{Field: "report.commit_timeout", Message: "must be positive"})
	}
	if cfg.Report.ReportTimeout <= 0 {
		errs = append(errs, FieldError{Field: "report.report_timeout", Message: "must be positive"})
	}

	if cfg.Retry.MaxRetries < 1 {
		errs = append(errs, FieldError{Field: "retry.max_retries", Message: "must be at least 1"})
	}
	if cfg.Retry.InitialDelay <= 0 {
		errs = append(errs, FieldError{Field: "retry.initial_delay", Message: "must be positive"})
	}
	if cfg.Retry.Timeout <= 0 {
		errs = append(errs, FieldError{Field: "retry.timeout", Message: "must be positive"})
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateProvider(prefix string, p *ProviderConfig) []FieldError {
	var errs []FieldError

	if p.Timeout <= 0 {
		errs = append(errs, FieldError{Field: prefix + ".timeout", Message: "must be positive"})
	}
	if p.Models.Small == "" {
		errs = append(errs, FieldError{Field: prefix + ".models.small", Message: "model is required"})
	}
	if p.Models.Large == "" {
		errs = append(errs, FieldError{Field: prefix + ".models.large", Message: "model is required"})
	}
	return errs
}
