package config

import "time"

// Default model identifiers per provider tier.
const (
	defaultAnthropicSmall  = "claude-3-haiku-20240307"
	defaultAnthropicMedium = "claude-3-5-sonnet-20240620"
	defaultAnthropicLarge  = "claude-3-5-sonnet-20240620"

	defaultOpenAISmall  = "gpt-4o-mini"
	defaultOpenAIMedium = "gpt-4o-mini"
	defaultOpenAILarge  = "gpt-4o-mini"
)

// ApplyDefaults fills in default values for any fields not set in the
// configuration. It only modifies zero-valued fields.
func ApplyDefaults(cfg *Config) {
	applyProviderDefaults(&cfg.Providers.Anthropic, 60*time.Second,
		ModelsConfig{Small: defaultAnthropicSmall, Medium: defaultAnthropicMedium, Large: defaultAnthropicLarge})
	applyProviderDefaults(&cfg.Providers.OpenAI, 60*time.Second,
		ModelsConfig{Small: defaultOpenAISmall, Medium: defaultOpenAIMedium, Large: defaultOpenAILarge})

	if cfg.Commit.Model == "" {
		cfg.Commit.Model = cfg.Providers.Anthropic.Models.Small
	}
	if cfg.Commit.Temperature == 0 {
		cfg.Commit.Temperature = 0.2
	}
	if cfg.Commit.ChunkThreshold == 0 {
		cfg.Commit.ChunkThreshold = 10000
	}
	if cfg.Commit.Workers == 0 {
		cfg.Commit.Workers = 5
	}
	if cfg.Commit.Batches == 0 {
		cfg.Commit.Batches = 5
	}
	if cfg.Commit.LargeCommitThreshold == 0 {
		cfg.Commit.LargeCommitThreshold = 10
	}

	if cfg.Report.Model == "" {
		cfg.Report.Model = cfg.Providers.Anthropic.Models.Small
	}
	if cfg.Report.Workers == 0 {
		cfg.Report.Workers = 5
	}
	if cfg.Report.BatchSize == 0 {
		cfg.Report.BatchSize = 10
	}
	if cfg.Report.CommitTimeout == 0 {
		cfg.Report.CommitTimeout = 30 * time.Second
	}
	if cfg.Report.ReportTimeout == 0 {
		cfg.Report.ReportTimeout = 60 * time.Second
	}

	if cfg.Branch.Model == "" {
		cfg.Branch.Model = cfg.Providers.Anthropic.Models.Small
	}

	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.InitialDelay == 0 {
		cfg.Retry.InitialDelay = time.Second
	}
	if cfg.Retry.Timeout == 0 {
		cfg.Retry.Timeout = 30 * time.Second
	}

	if cfg.Audit.Dir == "" {
		cfg.Audit.Dir = ".commit_logs"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func applyProviderDefaults(p *ProviderConfig, timeout time.Duration, models ModelsConfig) {
	if p.Timeout == 0 {
		p.Timeout = timeout
	}
	if p.Models.Small == "" {
		p.Models.Small = models.Small
	}
	if p.Models.Medium == "" {
		p.Models.Medium = models.Medium
	}
	if p.Models.Large == "" {
		p.Models.Large = models.Large
	}
}
