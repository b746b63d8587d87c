package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Caleb68864/CC-AI-Tools/internal/aitest"
)

func testRequest() *Request {
	return &Request{
		SystemPrompt: "You are a test",
		UserMessage:  "hello",
		Model:        "claude-3-haiku-20240307",
		MaxTokens:    50,
		Temperature:  0.2,
	}
}

func TestAnthropicClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewAnthropicClient(ProviderConfig{})
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("err = %v, want ConfigError", err)
		}
		if ce.Field != "api_key" {
			t.Errorf("Field = %q", ce.Field)
		}
	})

	t.Run("returns trimmed reply text", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.RespondText("/v1/messages", "  a reply  ")

		client, err := NewAnthropicClient(ProviderConfig{
			APIKey:  "test-key",
			BaseURL: server.URL(),
		})
		if err != nil {
			t.Fatalf("NewAnthropicClient: %v", err)
		}

		text, err := client.Complete(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if text != "a reply" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("classifies overload", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.RespondOverloaded("/v1/messages")

		client, _ := NewAnthropicClient(ProviderConfig{APIKey: "k", BaseURL: server.URL()})
		_, err := client.Complete(context.Background(), testRequest())
		if !IsOverloaded(err) {
			t.Errorf("err = %v, want overloaded", err)
		}
	})

	t.Run("classifies auth failure", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.Respond("/v1/messages", aitest.Response{
			StatusCode: http.StatusUnauthorized,
			Body: map[string]interface{}{
				"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
			},
		})

		client, _ := NewAnthropicClient(ProviderConfig{APIKey: "bad", BaseURL: server.URL()})
		_, err := client.Complete(context.Background(), testRequest())
		var ae *AuthError
		if !errors.As(err, &ae) {
			t.Fatalf("err = %v, want AuthError", err)
		}
		if ae.Message != "invalid x-api-key" {
			t.Errorf("Message = %q", ae.Message)
		}
	})

	t.Run("retry-after header is carried", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.Respond("/v1/messages", aitest.Response{
			StatusCode: http.StatusTooManyRequests,
			Headers:    map[string]string{"Retry-After": "7"},
		})

		client, _ := NewAnthropicClient(ProviderConfig{APIKey: "k", BaseURL: server.URL()})
		_, err := client.Complete(context.Background(), testRequest())
		var oe *OverloadedError
		if !errors.As(err, &oe) {
			t.Fatalf("err = %v, want OverloadedError", err)
		}
		if oe.RetryAfter != 7*time.Second {
			t.Errorf("RetryAfter = %s, want 7s", oe.RetryAfter)
		}
	})

	t.Run("empty content is a parse error", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.Respond("/v1/messages", aitest.Response{
			StatusCode: http.StatusOK,
			Body:       map[string]interface{}{"content": []interface{}{}},
		})

		client, _ := NewAnthropicClient(ProviderConfig{APIKey: "k", BaseURL: server.URL()})
		_, err := client.Complete(context.Background(), testRequest())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("err = %v, want ParseError", err)
		}
	})

	t.Run("validates request fields", func(t *testing.T) {
		client, _ := NewAnthropicClient(ProviderConfig{APIKey: "k"})
		_, err := client.Complete(context.Background(), &Request{Model: "m"})
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("err = %v, want ConfigError", err)
		}
		if ce.Field != "system_prompt" {
			t.Errorf("Field = %q", ce.Field)
		}
	})
}

func TestOpenAIClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewOpenAIClient(ProviderConfig{})
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("err = %v, want ConfigError", err)
		}
	})

	t.Run("returns reply text", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.RespondOpenAIText("/chat/completions", "fallback reply")

		client, err := NewOpenAIClient(ProviderConfig{APIKey: "k", BaseURL: server.URL()})
		if err != nil {
			t.Fatalf("NewOpenAIClient: %v", err)
		}

		req := testRequest()
		req.Model = "gpt-4o-mini"
		text, err := client.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if text != "fallback reply" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("empty choices is a parse error", func(t *testing.T) {
		server := aitest.NewServer()
		defer server.Close()
		server.Respond("/chat/completions", aitest.Response{
			StatusCode: http.StatusOK,
			Body:       map[string]interface{}{"choices": []interface{}{}},
		})

		client, _ := NewOpenAIClient(ProviderConfig{APIKey: "k", BaseURL: server.URL()})
		_, err := client.Complete(context.Background(), testRequest())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("err = %v, want ParseError", err)
		}
	})
}
