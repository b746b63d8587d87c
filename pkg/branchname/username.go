package branchname

import (
	"fmt"
	"os"
	"strings"

	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
)

// ResolveUsername returns the branch-name username: the GIT_USERNAME
// environment variable when set, otherwise the user is prompted and the
// answer saved to envPath for next time.
func ResolveUsername(p *cli.Prompter, envPath string) (string, error) {
	if username := strings.TrimSpace(os.Getenv("GIT_USERNAME")); username != "" {
		return username, nil
	}

	for {
		answer, err := p.Line("No username found in .env file. Please enter your username: ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			continue
		}

		sanitized := Kebab(answer)
		ok, err := p.YesNo(fmt.Sprintf("Your sanitized username will be: %s. Is this correct?", sanitized))
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}

		if err := saveUsername(envPath, sanitized); err != nil {
			return sanitized, fmt.Errorf("could not save username: %w", err)
		}
		return sanitized, nil
	}
}

// saveUsername writes GIT_USERNAME to the .env file, replacing an
// existing entry or appending one.
func saveUsername(envPath, username string) error {
	line := "GIT_USERNAME=" + username

	data, err := os.ReadFile(envPath)
	if os.IsNotExist(err) {
		return os.WriteFile(envPath, []byte(line+"\n"), 0o644)
	}
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "GIT_USERNAME=") {
			lines[i] = line
			replaced = true
		}
	}
	out := strings.Join(lines, "\n")
	if !replaced {
		out = strings.TrimRight(out, "\n") + "\n" + line + "\n"
	}
	return os.WriteFile(envPath, []byte(out), 0o644)
}
