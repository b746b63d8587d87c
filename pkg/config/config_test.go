package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Commit.ChunkThreshold != 10000 {
		t.Errorf("ChunkThreshold = %d, want 10000", cfg.Commit.ChunkThreshold)
	}
	if cfg.Commit.Workers != 5 {
		t.Errorf("Workers = %d, want 5", cfg.Commit.Workers)
	}
	if cfg.Commit.Batches != 5 {
		t.Errorf("Batches = %d, want 5", cfg.Commit.Batches)
	}
	if cfg.Commit.LargeCommitThreshold != 10 {
		t.Errorf("LargeCommitThreshold = %d, want 10", cfg.Commit.LargeCommitThreshold)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialDelay != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", cfg.Retry.InitialDelay)
	}
	if cfg.Providers.Anthropic.Models.Small == "" {
		t.Error("expected a default small model for anthropic")
	}
	if cfg.Commit.Model != cfg.Providers.Anthropic.Models.Small {
		t.Errorf("Commit.Model = %q, want the small tier default", cfg.Commit.Model)
	}
}

func TestApplyDefaultsPreservesValues(t *testing.T) {
	cfg := Config{}
	cfg.Commit.Workers = 2
	cfg.Commit.Model = "custom-model"
	ApplyDefaults(&cfg)

	if cfg.Commit.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Commit.Workers)
	}
	if cfg.Commit.Model != "custom-model" {
		t.Errorf("Model = %q, want custom-model", cfg.Commit.Model)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		var cfg Config
		ApplyDefaults(&cfg)
		cfg.Providers.Anthropic.APIKey = "sk-test"
		return &cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := Validate(valid()); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing anthropic key", func(t *testing.T) {
		cfg := valid()
		cfg.Providers.Anthropic.APIKey = ""
		err := Validate(cfg)
		if err == nil {
			t.Fatal("expected error for missing API key")
		}
		if !strings.Contains(err.Error(), "providers.anthropic.api_key") {
			t.Errorf("error should name the field, got %v", err)
		}
	})

	t.Run("multiple errors collected", func(t *testing.T) {
		cfg := valid()
		cfg.Commit.Workers = 0
		cfg.Report.BatchSize = 0
		err := Validate(cfg)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		if len(verr.Errors) != 2 {
			t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := valid()
		cfg.Logging.Level = "loud"
		if err := Validate(cfg); err == nil {
			t.Error("expected error for unknown log level")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")

	t.Run("missing optional file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Commit.Workers != 5 {
			t.Errorf("Workers = %d, want default 5", cfg.Commit.Workers)
		}
		if cfg.Providers.Anthropic.APIKey != "sk-env" {
			t.Errorf("APIKey = %q, want value from environment", cfg.Providers.Anthropic.APIKey)
		}
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("file values are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccai.yaml")
		data := "commit:\n  workers: 3\n  model: file-model\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path, true)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Commit.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Commit.Workers)
		}
		if cfg.Commit.Model != "file-model" {
			t.Errorf("Model = %q, want file-model", cfg.Commit.Model)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("CCAI_COMMIT_WORKERS", "7")
		t.Setenv("CLAUDE_SMALL_MODEL", "claude-env-small")

		path := filepath.Join(t.TempDir(), "ccai.yaml")
		if err := os.WriteFile(path, []byte("commit:\n  workers: 3\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path, true)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Commit.Workers != 7 {
			t.Errorf("Workers = %d, want env override 7", cfg.Commit.Workers)
		}
		if cfg.Providers.Anthropic.Models.Small != "claude-env-small" {
			t.Errorf("Small model = %q, want env override", cfg.Providers.Anthropic.Models.Small)
		}
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccai.yaml")
		if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path, true); err == nil {
			t.Error("expected parse error")
		}
	})
}
