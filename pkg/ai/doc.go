// Package ai implements the request gateway for LLM providers.
//
// # Overview
//
// The ai package provides a minimal, provider-agnostic abstraction for the
// single operation the git tools need: send a (system prompt, user message)
// pair to a model and get the reply text back. It ships two adapters,
// Anthropic's Messages API and OpenAI's Chat Completions API, built on a
// shared HTTP base that classifies failures into typed errors.
//
// The gateway performs exactly one network attempt per call. Retries,
// backoff, and hard timeouts are the retry package's job; the gateway's job
// is to make failures distinguishable so callers can degrade appropriately.
//
// # Basic Usage
//
//	client, err := ai.NewAnthropicClient(ai.ProviderConfig{
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	text, err := client.Complete(ctx, &ai.Request{
//	    SystemPrompt: "Summarize the following diff.",
//	    UserMessage:  diff,
//	    Model:        "claude-3-haiku-20240307",
//	    MaxTokens:    500,
//	    Temperature:  0.2,
//	})
//
// # Fallback
//
// The Gateway wraps a primary client and an optional fallback client. When
// the primary fails and an approval callback confirms, the request is
// replayed against the fallback using the equivalent model tier
// (small/medium/large):
//
//	gw := ai.NewGateway(primary, fallback, fallbackModels, approveFn)
//	text, err := gw.Send(ctx, system, user, model, maxTokens, temperature)
//
// # Error Handling
//
// Failures surface as typed errors: AuthError (401/403), OverloadedError
// (429/503/529 or an "overloaded_error" body), TimeoutError (context
// deadline), ParseError (malformed reply), and ProviderError for the rest.
// Use ai.IsOverloaded to decide whether to show a provider-overloaded
// message instead of a generic one.
package ai
