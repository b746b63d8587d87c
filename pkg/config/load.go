package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default configuration file path
// (~/.ccai.yaml). It returns an empty string if the home directory
// cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ccai.yaml")
}

// Load builds the final configuration. It reads the YAML file at path
// (a missing file is not an error unless the path was set explicitly),
// loads a .env file from the current directory if one exists, applies
// defaults and environment overrides, and validates the result.
func Load(path string, explicit bool) (*Config, error) {
	// .env first so its variables are visible to the override pass.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Optional default path; defaults and env cover everything.
		default:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Provider
// credentials and model tiers use the conventional variable names the
// tools have always honored; everything else uses the CCAI_ prefix.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
		cfg.Providers.Anthropic.APIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		cfg.Providers.OpenAI.APIKey = val
	}

	applyModelOverrides(&cfg.Providers.Anthropic.Models, "CLAUDE")
	applyModelOverrides(&cfg.Providers.OpenAI.Models, "OPENAI")

	if val := os.Getenv("CCAI_COMMIT_MODEL"); val != "" {
		cfg.Commit.Model = val
	}
	if val := os.Getenv("CCAI_COMMIT_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Commit.Workers = i
		}
	}
	if val := os.Getenv("CCAI_COMMIT_CHUNK_THRESHOLD"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Commit.ChunkThreshold = i
		}
	}

	if val := os.Getenv("CCAI_REPORT_MODEL"); val != "" {
		cfg.Report.Model = val
	}
	if val := os.Getenv("CCAI_REPORT_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Report.Workers = i
		}
	}
	if val := os.Getenv("CCAI_REPORT_BATCH_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Report.BatchSize = i
		}
	}

	if val := os.Getenv("CCAI_BRANCH_MODEL"); val != "" {
		cfg.Branch.Model = val
	}

	if val := os.Getenv("CCAI_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxRetries = i
		}
	}
	if val := os.Getenv("CCAI_RETRY_INITIAL_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.InitialDelay = d
		}
	}
	if val := os.Getenv("CCAI_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.Timeout = d
		}
	}

	if val := os.Getenv("CCAI_AUDIT_DIR"); val != "" {
		cfg.Audit.Dir = val
	}
	if val := os.Getenv("CCAI_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}

	if val := os.Getenv("CCAI_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("CCAI_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

func applyModelOverrides(m *ModelsConfig, prefix string) {
	if val := os.Getenv(prefix + "_SMALL_MODEL"); val != "" {
		m.Small = val
	}
	if val := os.Getenv(prefix + "_MEDIUM_MODEL"); val != "" {
		m.Medium = val
	}
	if val := os.Getenv(prefix + "_LARGE_MODEL"); val != "" {
		m.Large = val
	}
}
