package config

import "time"

// Config is the root configuration for the ccai tool suite.
type Config struct {
	// Providers configures the AI providers. The "anthropic" entry is
	// the primary provider; "openai" is the approval-gated fallback.
	Providers ProvidersConfig `yaml:"providers"`

	// Commit configures commit message generation.
	Commit CommitConfig `yaml:"commit"`

	// Report configures progress report generation.
	Report ReportConfig `yaml:"report"`

	// Branch configures branch name generation.
	Branch BranchConfig `yaml:"branch"`

	// Retry configures request supervision for AI calls.
	Retry RetryConfig `yaml:"retry"`

	// Audit configures prompt/run audit logging.
	Audit AuditConfig `yaml:"audit"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// ProvidersConfig holds per-provider settings and model tiers.
type ProvidersConfig struct {
	// Anthropic is the primary provider.
	Anthropic ProviderConfig `yaml:"anthropic"`

	// OpenAI is the fallback provider, used only after the user
	// approves falling back.
	OpenAI ProviderConfig `yaml:"openai"`
}

// ProviderConfig configures a single AI provider.
type ProviderConfig struct {
	// APIKey authenticates requests. Usually supplied via environment
	// (ANTHROPIC_API_KEY, OPENAI_API_KEY) rather than the YAML file.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider endpoint. Empty uses the
	// provider's public API.
	BaseURL string `yaml:"base_url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Models maps capability tiers to concrete model identifiers.
	Models ModelsConfig `yaml:"models"`
}

// ModelsConfig maps capability tiers to model identifiers.
type ModelsConfig struct {
	Small  string `yaml:"small"`
	Medium string `yaml:"medium"`
	Large  string `yaml:"large"`
}

// CommitConfig configures commit message generation.
type CommitConfig struct {
	// Model is the model used for diff analysis and message drafting.
	Model string `yaml:"model"`

	// Temperature for generation requests.
	Temperature float64 `yaml:"temperature"`

	// ChunkThreshold is the diff size in bytes above which the diff is
	// split per file and summarized in parallel.
	ChunkThreshold int `yaml:"chunk_threshold"`

	// Workers is the number of concurrent per-file summarization calls.
	Workers int `yaml:"workers"`

	// Batches is the number of batches file chunks are split into.
	Batches int `yaml:"batches"`

	// LargeCommitThreshold is the file count above which an extra
	// high-level summary is generated.
	LargeCommitThreshold int `yaml:"large_commit_threshold"`
}

// ReportConfig configures progress report generation.
type ReportConfig struct {
	// Model is the model used for per-commit analysis and the final
	// report.
	Model string `yaml:"model"`

	// Workers is the number of concurrent per-commit analysis calls.
	Workers int `yaml:"workers"`

	// BatchSize is the number of commits analyzed per batch.
	BatchSize int `yaml:"batch_size"`

	// CommitTimeout bounds a single per-commit analysis call.
	CommitTimeout time.Duration `yaml:"commit_timeout"`

	// ReportTimeout bounds the final report call.
	ReportTimeout time.Duration `yaml:"report_timeout"`
}

// BranchConfig configures branch name generation.
type BranchConfig struct {
	// Model is the model used for branch name suggestions.
	Model string `yaml:"model"`
}

// RetryConfig configures the retry supervisor for AI calls.
type RetryConfig struct {
	// MaxRetries is the total number of attempts per call.
	MaxRetries int `yaml:"max_retries"`

	// InitialDelay is the delay before the first retry; it doubles on
	// each subsequent retry.
	InitialDelay time.Duration `yaml:"initial_delay"`

	// Timeout bounds a single attempt.
	Timeout time.Duration `yaml:"timeout"`
}

// AuditConfig configures prompt and run audit logging.
type AuditConfig struct {
	// Enabled turns audit logging on.
	Enabled bool `yaml:"enabled"`

	// Dir is the directory for prompt log files. Defaults to
	// .commit_logs inside the repository.
	Dir string `yaml:"dir"`

	// DatabasePath is the SQLite database recording runs. Defaults to
	// runs.db inside Dir.
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the log output format ("text", "json").
	Format string `yaml:"format"`
}
