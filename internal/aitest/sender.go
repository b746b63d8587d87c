package aitest

import (
	"context"
	"sync"
)

// Call records one Send invocation.
type Call struct {
	SystemPrompt string
	UserMessage  string
	Model        string
	MaxTokens    int
}

// Sender is a scripted in-memory stand-in for the AI gateway. Responses
// are matched by a classifier function so a single fake can answer
// different prompt kinds differently.
type Sender struct {
	mu    sync.Mutex
	calls []Call

	// Respond produces the reply for a call. Nil means echo an empty
	// string.
	Respond func(call Call) (string, error)
}

// NewSender creates a Sender answering every call with respond.
func NewSender(respond func(call Call) (string, error)) *Sender {
	return &Sender{Respond: respond}
}

// Static creates a Sender that replies with the same text to every call.
func Static(reply string) *Sender {
	return NewSender(func(Call) (string, error) { return reply, nil })
}

// Failing creates a Sender that fails every call with err.
func Failing(err error) *Sender {
	return NewSender(func(Call) (string, error) { return "", err })
}

// Send implements the gateway surface used by generators.
func (s *Sender) Send(ctx context.Context, systemPrompt, userMessage, model string, maxTokens int, temperature float64) (string, error) {
	call := Call{
		SystemPrompt: systemPrompt,
		UserMessage:  userMessage,
		Model:        model,
		MaxTokens:    maxTokens,
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Respond == nil {
		return "", nil
	}
	return s.Respond(call)
}

// Calls returns a copy of every recorded call.
func (s *Sender) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many calls were made.
func (s *Sender) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
