// ccai is a suite of AI-assisted git productivity tools.
//
// It generates structured commit messages from staged changes, progress
// reports from commit history, and standardized branch names, using
// Anthropic's API with an approval-gated OpenAI fallback.
//
// Usage:
//
//	# Generate a commit message for staged changes
//	ccai commit "optional guidance message"
//
//	# Generate a progress report since the last run
//	ccai report
//
//	# Report a specific window
//	ccai report --since "2024-03-20" --until "2024-03-25"
//
//	# Pick the starting commit interactively
//	ccai report --recent-commits 10
//
//	# Create a new branch from AI suggestions
//	ccai branch
//
//	# Show version information
//	ccai version
//
// Configuration is read from ~/.ccai.yaml (override with --config), a
// .env file in the working directory, and environment variables such as
// ANTHROPIC_API_KEY, OPENAI_API_KEY, and CLAUDE_SMALL_MODEL.
package main

func main() {
	Execute()
}
