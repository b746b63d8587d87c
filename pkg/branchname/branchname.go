package branchname

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

// BranchTypes are the allowed branch type prefixes.
var BranchTypes = []string{"feat", "fix", "refactor", "docs", "style", "test", "hotfix"}

// Suggestion is one AI-proposed branch name.
type Suggestion struct {
	Number      int    `yaml:"number"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type suggestionList struct {
	Suggestions []Suggestion `yaml:"suggestions"`
}

const suggestPrompt = "Generate 5 git branch names based on the provided description. Return the response in YAML format like this:\n" +
	"suggestions:\n" +
	"  - number: 1\n" +
	"    name: feat/example-branch\n" +
	"    description: Brief explanation of the branch\n" +
	"  - number: 2\n" +
	"    name: fix/another-example\n" +
	"    description: Another brief explanation\n\n" +
	"Rules for branch names:\n" +
	"1. Use kebab-case (lowercase with hyphens)\n" +
	"2. Start with type (feat/fix/refactor/docs/style/test/hotfix) only use these types\n" +
	"3. Include a brief but clear description\n" +
	"4. Keep total length under 50 characters\n" +
	"5. No special characters except hyphens\n" +
	"6. Make each unique and specific\n\n" +
	"Return ONLY the YAML, no other text."

// GeneratorConfig tunes suggestion generation.
type GeneratorConfig struct {
	// Model used for the suggestion call.
	Model string

	// Retry wraps the suggestion call.
	Retry retry.Options
}

// Generator produces branch name suggestions.
type Generator struct {
	sender structdiff.Sender
	cfg    GeneratorConfig
}

// NewGenerator creates a Generator using sender for AI calls.
func NewGenerator(sender structdiff.Sender, cfg GeneratorConfig) *Generator {
	return &Generator{sender: sender, cfg: cfg}
}

// Suggest asks for five branch names matching the naming rules.
func (g *Generator) Suggest(ctx context.Context, description string) ([]Suggestion, error) {
	text, err := retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (string, error) {
		return g.sender.Send(ctx, suggestPrompt, description, g.cfg.Model, 300, 0.7)
	})
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(text)
}

// ParseSuggestions parses the YAML suggestion reply. Models sometimes
// wrap the YAML in a code fence; that is tolerated.
func ParseSuggestions(text string) ([]Suggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```yaml")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var list suggestionList
	if err := yaml.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	if len(list.Suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions in reply")
	}
	return list.Suggestions, nil
}

// SplitTypeDescription splits a suggested name like "feat/add-login"
// into its type and description parts. Names without a slash default to
// type "feat".
func SplitTypeDescription(name string) (branchType, description string) {
	parts := strings.SplitN(name, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "feat", name
}

// Kebab converts free text into a kebab-case branch segment: lowercase,
// runs of anything non-alphanumeric become single hyphens.
func Kebab(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// Format builds the full branch name from its parts at the given time:
// YYYY/MM/DD-HHMM-username-type-description.
func Format(now time.Time, username, branchType, description string) string {
	return fmt.Sprintf("%d/%02d/%02d-%02d%02d-%s-%s-%s",
		now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute(),
		Kebab(username), branchType, Kebab(description))
}
