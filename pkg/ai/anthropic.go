package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"

	// anthropicVersion is the Messages API version to use.
	anthropicVersion = "2023-06-01"
)

// AnthropicClient is the adapter for Anthropic's Messages API.
type AnthropicClient struct {
	base *httpBase
}

// NewAnthropicClient creates an Anthropic adapter.
func NewAnthropicClient(config ProviderConfig) (*AnthropicClient, error) {
	config.applyDefaults("anthropic", defaultAnthropicBaseURL)

	if config.APIKey == "" {
		return nil, &ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Anthropic",
		}
	}

	return &AnthropicClient{base: newHTTPBase(config)}, nil
}

// Name returns the configured provider name.
func (c *AnthropicClient) Name() string {
	return c.base.config.Name
}

// anthropicRequest is a Messages API request.
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is a Messages API response.
type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete sends one prompt exchange and returns the trimmed reply text.
func (c *AnthropicClient) Complete(ctx context.Context, req *Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024 // required by the Messages API
	}

	body := &anthropicRequest{
		Model:       req.Model,
		System:      req.SystemPrompt,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.UserMessage},
		},
	}

	url := fmt.Sprintf("%s/v1/messages", c.base.config.BaseURL)
	headers := map[string]string{
		"x-api-key":         c.base.config.APIKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	if err := c.base.doJSON(ctx, url, body, &resp, headers); err != nil {
		return "", err
	}

	if len(resp.Content) == 0 {
		return "", &ParseError{
			Provider: c.Name(),
			Cause:    fmt.Errorf("response contains no content blocks"),
		}
	}

	return strings.TrimSpace(resp.Content[0].Text), nil
}

// validateRequest checks the fields every adapter requires.
func validateRequest(req *Request) error {
	if req == nil {
		return &ConfigError{Field: "request", Message: "request cannot be nil"}
	}
	if req.SystemPrompt == "" {
		return &ConfigError{Field: "system_prompt", Message: "system prompt is required"}
	}
	if req.Model == "" {
		return &ConfigError{Field: "model", Message: "model is required"}
	}
	return nil
}
