package ai

import (
	"context"
	"log/slog"
)

// ApproveFallback decides whether a failed primary request may be replayed
// against the fallback provider. Interactive tools prompt the human here;
// tests and non-interactive runs supply a constant.
type ApproveFallback func(err error) bool

// Gateway routes prompt exchanges to a primary provider with an optional
// human-approved fallback. Both clients receive identical prompts; the
// fallback model is chosen from the primary model's capability tier.
//
// The gateway does not retry and does not log prompts. Wrap calls with
// retry.Do for resilience and auditlog for the prompt trail.
type Gateway struct {
	primary        Client
	fallback       Client
	fallbackModels ModelMap
	approve        ApproveFallback
}

// NewGateway creates a gateway over a primary client. fallback may be nil.
// approve may be nil, which disables the fallback path entirely.
func NewGateway(primary, fallback Client, fallbackModels ModelMap, approve ApproveFallback) *Gateway {
	return &Gateway{
		primary:        primary,
		fallback:       fallback,
		fallbackModels: fallbackModels,
		approve:        approve,
	}
}

// Send sends one (system prompt, user message) exchange to the given model
// and returns the trimmed reply text. On primary failure the error is
// offered to the approval callback; if approved, the request is replayed
// against the fallback provider at the equivalent model tier. The original
// primary error is returned when the fallback is declined or absent.
func (g *Gateway) Send(ctx context.Context, systemPrompt, userMessage, model string, maxTokens int, temperature float64) (string, error) {
	req := &Request{
		SystemPrompt: systemPrompt,
		UserMessage:  userMessage,
		Model:        model,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	}

	text, err := g.primary.Complete(ctx, req)
	if err == nil {
		return text, nil
	}

	if g.fallback == nil || g.approve == nil || !g.approve(err) {
		return "", err
	}

	fallbackReq := *req
	fallbackReq.Model = g.fallbackModels.Resolve(TierForModel(model))

	slog.Info("falling back to secondary provider",
		"primary", g.primary.Name(),
		"fallback", g.fallback.Name(),
		"model", fallbackReq.Model,
		"cause", err,
	)

	text, fallbackErr := g.fallback.Complete(ctx, &fallbackReq)
	if fallbackErr != nil {
		slog.Warn("fallback provider failed",
			"fallback", g.fallback.Name(),
			"error", fallbackErr,
		)
		return "", fallbackErr
	}

	return text, nil
}
