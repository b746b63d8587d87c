/*
Package cli provides the terminal plumbing shared by the ccai commands.

It includes a progress reporter for the parallel analysis stages, an
interactive prompter whose reads convert user interrupts into a graceful
ErrInterrupted instead of a stack trace, and signal handling that cancels
a context on SIGINT/SIGTERM.

Progress Reporting:

	progress := cli.NewProgressReporter(os.Stdout, "files")
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Prompting:

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	ok, err := prompter.YesNo("Do you want to commit these changes?")
	if errors.Is(err, cli.ErrInterrupted) {
		// exit gracefully
	}
*/
package cli
