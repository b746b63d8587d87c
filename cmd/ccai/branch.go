package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Caleb68864/CC-AI-Tools/pkg/branchname"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Create a standardized branch name",
	Long: `Create a new branch with a standardized name.

Branch names follow the pattern YYYY/MM/DD-HHMM-username-type-description.
You can describe the change and pick from AI suggestions, or assemble
the name manually from the supported branch types.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		generator := branchname.NewGenerator(app.gateway, branchname.GeneratorConfig{
			Model: app.cfg.Branch.Model,
			Retry: app.retryOptions(),
		})

		wf := &branchname.Workflow{
			Repo:      app.repo,
			Generator: generator,
			Prompter:  app.prompter,
			Out:       os.Stdout,
			EnvPath:   ".env",
			Store:     app.store,
			Model:     app.cfg.Branch.Model,
		}

		_, err = wf.Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
