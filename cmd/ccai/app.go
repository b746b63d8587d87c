package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Caleb68864/CC-AI-Tools/pkg/ai"
	"github.com/Caleb68864/CC-AI-Tools/pkg/auditlog"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/config"
	"github.com/Caleb68864/CC-AI-Tools/pkg/gitx"
	"github.com/Caleb68864/CC-AI-Tools/pkg/logging"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
)

// app bundles the dependencies every subcommand needs: configuration,
// the AI gateway, the repository, the interactive prompter, and the
// optional audit store.
type app struct {
	cfg      *config.Config
	gateway  *ai.Gateway
	repo     *gitx.Repo
	prompter *cli.Prompter
	store    *auditlog.Store
}

// newApp loads configuration, configures logging, and wires the shared
// services. It opens the repository in the current working directory.
func newApp() (*app, error) {
	path := cfgFile
	explicit := cfgFile != ""
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	}); err != nil {
		return nil, err
	}

	repo, err := gitx.Open(".")
	if err != nil {
		return nil, err
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	gateway, err := buildGateway(cfg, prompter)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		gateway:  gateway,
		repo:     repo,
		prompter: prompter,
	}

	if cfg.Audit.Enabled {
		dbPath := cfg.Audit.DatabasePath
		if dbPath == "" {
			dbPath = filepath.Join(cfg.Audit.Dir, "runs.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create audit directory: %w", err)
		}
		store, err := auditlog.NewStore(dbPath)
		if err != nil {
			// Audit failures never block the main workflow.
			slog.Warn("failed to open audit store", "path", dbPath, "error", err)
		} else {
			a.store = store
		}
	}

	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close audit store", "error", err)
		}
	}
}

// auditDir returns the prompt log directory, or empty when audit
// logging is disabled.
func (a *app) auditDir() string {
	if !a.cfg.Audit.Enabled {
		return ""
	}
	return a.cfg.Audit.Dir
}

func (a *app) retryOptions() retry.Options {
	return retry.Options{
		MaxRetries:   a.cfg.Retry.MaxRetries,
		InitialDelay: a.cfg.Retry.InitialDelay,
		Timeout:      a.cfg.Retry.Timeout,
	}
}

// buildGateway assembles the Anthropic primary and, when an OpenAI key
// is configured, the approval-gated OpenAI fallback.
func buildGateway(cfg *config.Config, prompter *cli.Prompter) (*ai.Gateway, error) {
	primary, err := ai.NewAnthropicClient(ai.ProviderConfig{
		Name:    "anthropic",
		BaseURL: cfg.Providers.Anthropic.BaseURL,
		APIKey:  cfg.Providers.Anthropic.APIKey,
		Timeout: cfg.Providers.Anthropic.Timeout,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Providers.OpenAI.APIKey == "" {
		return ai.NewGateway(primary, nil, ai.ModelMap{}, nil), nil
	}

	fallback, err := ai.NewOpenAIClient(ai.ProviderConfig{
		Name:    "openai",
		BaseURL: cfg.Providers.OpenAI.BaseURL,
		APIKey:  cfg.Providers.OpenAI.APIKey,
		Timeout: cfg.Providers.OpenAI.Timeout,
	})
	if err != nil {
		return nil, err
	}

	models := ai.ModelMap{
		Small:  cfg.Providers.OpenAI.Models.Small,
		Medium: cfg.Providers.OpenAI.Models.Medium,
		Large:  cfg.Providers.OpenAI.Models.Large,
	}

	approve := func(err error) bool {
		fmt.Printf("\nAI request failed: %v\n", err)
		ok, promptErr := prompter.YesNo("Try OpenAI fallback?")
		if promptErr != nil {
			return false
		}
		return ok
	}

	return ai.NewGateway(primary, fallback, models, approve), nil
}
