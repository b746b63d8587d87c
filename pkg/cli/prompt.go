package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInterrupted indicates the user cancelled an interactive prompt.
// Workflows propagate it untouched; the command layer converts it into a
// graceful exit instead of a stack trace.
var ErrInterrupted = errors.New("cancelled by user")

// Prompter reads interactive answers from a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints the prompt and reads one trimmed line.
// EOF and read failures (including an interrupt closing stdin) become
// ErrInterrupted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrInterrupted
	}
	return strings.TrimSpace(line), nil
}

// YesNo asks a yes/no question with a default yes answer: Enter or "y"
// mean yes, anything else means no.
func (p *Prompter) YesNo(question string) (bool, error) {
	answer, err := p.Line(fmt.Sprintf("%s (Y/n): ", question))
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y", nil
}

// SelectNumber asks the user to pick a number in [1, max]. An empty answer
// returns 0 (caller-defined meaning, usually "cancel" or "all"). Invalid
// answers re-prompt.
func (p *Prompter) SelectNumber(prompt string, max int) (int, error) {
	for {
		answer, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}

		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > max {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", max)
			continue
		}
		return choice, nil
	}
}
