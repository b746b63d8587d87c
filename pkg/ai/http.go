package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// httpBase is the shared transport for HTTP provider adapters.
// It owns connection pooling and failure classification. It performs
// exactly one attempt per call; resilience lives in the retry package.
type httpBase struct {
	config ProviderConfig
	client *http.Client
}

func newHTTPBase(config ProviderConfig) *httpBase {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &httpBase{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// providerErrorBody is the error envelope both Anthropic and OpenAI use.
type providerErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// doJSON performs one POST with a JSON body, decodes the JSON reply into
// respBody, and classifies failures into the package's typed errors.
func (b *httpBase) doJSON(ctx context.Context, url string, reqBody, respBody interface{}, headers map[string]string) error {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	slog.Debug("sending request to provider",
		"provider", b.config.Name,
		"url", url,
	)

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &TimeoutError{
				Provider: b.config.Name,
				Timeout:  b.config.Timeout,
			}
		}
		return &ProviderError{
			Provider: b.config.Name,
			Message:  "request failed",
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ParseError{
			Provider: b.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return b.classifyStatus(resp, responseBytes)
	}

	if err := json.Unmarshal(responseBytes, respBody); err != nil {
		return &ParseError{
			Provider:    b.config.Name,
			RawResponse: string(responseBytes),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	return nil
}

// classifyStatus maps a non-2xx reply to a typed error.
func (b *httpBase) classifyStatus(resp *http.Response, body []byte) error {
	var envelope providerErrorBody
	_ = json.Unmarshal(body, &envelope)
	message := envelope.Error.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{
			Provider: b.config.Name,
			Message:  message,
		}

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, statusOverloaded:
		return &OverloadedError{
			Provider:   b.config.Name,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    message,
		}
	}

	// Anthropic reports overload through the error type as well.
	if envelope.Error.Type == "overloaded_error" {
		return &OverloadedError{
			Provider: b.config.Name,
			Message:  message,
		}
	}

	return &ProviderError{
		Provider:   b.config.Name,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// statusOverloaded is Anthropic's non-standard overloaded status code.
const statusOverloaded = 529

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
