package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Caleb68864/CC-AI-Tools/pkg/auditlog"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/report"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
)

var (
	reportSince         string
	reportUntil         string
	reportDate          string
	reportRecentCommits int
	reportWorkers       int
	reportBatchSize     int
	reportCommitTimeout time.Duration
	reportReportTimeout time.Duration
	reportMaxRetries    int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a progress report from commit history",
	Long: `Generate a progress report for the current branch.

Commits in the selected window are analyzed in parallel, grouped by
type and scope, and condensed into a short report suitable for a
standup or status update. Without window flags the report covers
everything since the last report run on this branch, or since 3AM
today when no previous run is recorded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		cfg := app.cfg
		if reportWorkers > 0 {
			cfg.Report.Workers = reportWorkers
		}
		if reportBatchSize > 0 {
			cfg.Report.BatchSize = reportBatchSize
		}
		if reportCommitTimeout > 0 {
			cfg.Report.CommitTimeout = reportCommitTimeout
		}
		if reportReportTimeout > 0 {
			cfg.Report.ReportTimeout = reportReportTimeout
		}
		if reportMaxRetries > 0 {
			cfg.Retry.MaxRetries = reportMaxRetries
		}

		opts := report.WindowOptions{
			Since:         reportSince,
			Until:         reportUntil,
			Date:          reportDate,
			RecentCommits: reportRecentCommits,
		}

		analyzer := report.NewAnalyzer(app.gateway, report.AnalyzerConfig{
			Model:     cfg.Report.Model,
			Workers:   cfg.Report.Workers,
			BatchSize: cfg.Report.BatchSize,
			Retry: retry.Options{
				MaxRetries:   cfg.Retry.MaxRetries,
				InitialDelay: cfg.Retry.InitialDelay,
				Timeout:      cfg.Report.CommitTimeout,
			},
			Progress: cli.NewProgressReporter(os.Stdout, "commits"),
		})

		generator := report.NewGenerator(app.gateway, report.GeneratorConfig{
			Model: cfg.Report.Model,
			Retry: retry.Options{
				MaxRetries:   cfg.Retry.MaxRetries,
				InitialDelay: 2 * time.Second,
				Timeout:      cfg.Report.ReportTimeout,
			},
		})

		wf := &report.Workflow{
			Repo:      app.repo,
			Analyzer:  analyzer,
			Generator: generator,
			Prompter:  app.prompter,
			Out:       os.Stdout,
			Store:     app.store,
			Model:     cfg.Report.Model,
		}
		if cfg.Audit.Enabled {
			wf.LastRun = auditlog.NewLastRunFile(filepath.Join(cfg.Audit.Dir, "last_run.yaml"))
		}

		_, err = wf.Run(cmd.Context(), opts)
		return err
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportSince, "since", "s", "", "start of the report window (e.g. \"2024-01-15\" or \"2024-01-15 09:00\")")
	reportCmd.Flags().StringVarP(&reportUntil, "until", "u", "", "end of the report window (default now)")
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "report a single day (overrides --since/--until)")
	reportCmd.Flags().IntVar(&reportRecentCommits, "recent-commits", 0, "pick the starting commit from the N most recent commits")
	reportCmd.Flags().IntVar(&reportWorkers, "workers", 0, "concurrent commit analysis calls")
	reportCmd.Flags().IntVar(&reportBatchSize, "batch-size", 0, "commits analyzed per batch")
	reportCmd.Flags().DurationVar(&reportCommitTimeout, "commit-timeout", 0, "timeout per commit analysis call")
	reportCmd.Flags().DurationVar(&reportReportTimeout, "report-timeout", 0, "timeout for the final report call")
	reportCmd.Flags().IntVar(&reportMaxRetries, "max-retries", 0, "attempts per AI call")
	rootCmd.AddCommand(reportCmd)
}
