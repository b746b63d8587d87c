package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/commitmsg"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

var commitCmd = &cobra.Command{
	Use:   "commit [message]",
	Short: "Generate a commit message for staged changes",
	Long: `Generate a structured commit message from the staged diff.

The optional message argument guides the AI toward what the change is
about and seeds the fallback title when generation fails. Large diffs
are split per file and summarized in parallel before the message is
drafted.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		userMsg := strings.TrimSpace(strings.Join(args, " "))
		if userMsg == "" {
			userMsg, err = app.prompter.Line("Enter a message to guide the AI (optional): ")
			if err != nil {
				return err
			}
		}

		builder := structdiff.NewBuilder(app.gateway, structdiff.BuilderConfig{
			Model:                app.cfg.Commit.Model,
			Temperature:          app.cfg.Commit.Temperature,
			ChunkThreshold:       app.cfg.Commit.ChunkThreshold,
			Workers:              app.cfg.Commit.Workers,
			Batches:              app.cfg.Commit.Batches,
			LargeCommitThreshold: app.cfg.Commit.LargeCommitThreshold,
			Retry:                app.retryOptions(),
			Progress:             cli.NewProgressReporter(os.Stdout, "files"),
		})

		generator := commitmsg.NewGenerator(app.gateway, commitmsg.GeneratorConfig{
			Model:       app.cfg.Commit.Model,
			Temperature: app.cfg.Commit.Temperature,
			Retry:       app.retryOptions(),
		})

		wf := &commitmsg.Workflow{
			Repo:      app.repo,
			Builder:   builder,
			Generator: generator,
			Prompter:  app.prompter,
			Out:       os.Stdout,
			AuditDir:  app.auditDir(),
			Store:     app.store,
			Model:     app.cfg.Commit.Model,
		}

		_, err = wf.Run(cmd.Context(), userMsg)
		return err
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
