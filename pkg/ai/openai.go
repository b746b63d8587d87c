package ai

import (
	"context"
	"fmt"
	"strings"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient is the adapter for OpenAI's Chat Completions API.
// The git tools use it as the fallback provider.
type OpenAIClient struct {
	base *httpBase
}

// NewOpenAIClient creates an OpenAI adapter.
func NewOpenAIClient(config ProviderConfig) (*OpenAIClient, error) {
	config.applyDefaults("openai", defaultOpenAIBaseURL)

	if config.APIKey == "" {
		return nil, &ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for OpenAI",
		}
	}

	return &OpenAIClient{base: newHTTPBase(config)}, nil
}

// Name returns the configured provider name.
func (c *OpenAIClient) Name() string {
	return c.base.config.Name
}

// openAIRequest is a Chat Completions API request.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse is a Chat Completions API response.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends one prompt exchange and returns the trimmed reply text.
func (c *OpenAIClient) Complete(ctx context.Context, req *Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	body := &openAIRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []openAIMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
	}

	url := fmt.Sprintf("%s/chat/completions", c.base.config.BaseURL)
	headers := map[string]string{
		"Authorization": "Bearer " + c.base.config.APIKey,
	}

	var resp openAIResponse
	if err := c.base.doJSON(ctx, url, body, &resp, headers); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &ParseError{
			Provider: c.Name(),
			Cause:    fmt.Errorf("response contains no choices"),
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
