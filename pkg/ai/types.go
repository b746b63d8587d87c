package ai

import (
	"context"
	"strings"
	"time"
)

// Request is a single prompt exchange with a model.
// The reply is plain text with no structural guarantee; callers must
// parse defensively.
type Request struct {
	// SystemPrompt contains the instructions for the model. Must be non-empty.
	SystemPrompt string

	// UserMessage is the user-role content. May be empty.
	UserMessage string

	// Model is the provider-specific model identifier.
	Model string

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness (0.0 to 1.0).
	Temperature float64
}

// Client is the contract every provider adapter implements.
// Complete performs exactly one attempt; resilience belongs to callers.
type Client interface {
	// Complete sends the request and returns the trimmed reply text.
	Complete(ctx context.Context, req *Request) (string, error)

	// Name returns the adapter's provider name (e.g. "anthropic").
	Name() string
}

// Tier is a coarse capability/cost class mapped to concrete model
// identifiers by configuration.
type Tier string

const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
)

// ModelMap maps tiers to concrete model identifiers for one provider.
type ModelMap struct {
	// Small is the fast, cheap model (e.g. "claude-3-haiku-20240307").
	Small string `yaml:"small"`

	// Medium is the balanced model.
	Medium string `yaml:"medium"`

	// Large is the most capable model.
	Large string `yaml:"large"`
}

// Resolve returns the model identifier for a tier.
// Unknown tiers resolve to the large model.
func (m ModelMap) Resolve(tier Tier) string {
	switch tier {
	case TierSmall:
		return m.Small
	case TierMedium:
		return m.Medium
	default:
		return m.Large
	}
}

// TierForModel infers the capability tier of an Anthropic model identifier
// so an equivalent fallback model can be selected.
func TierForModel(model string) Tier {
	switch {
	case strings.Contains(model, "haiku"):
		return TierSmall
	case strings.Contains(model, "sonnet"):
		return TierMedium
	default:
		return TierLarge
	}
}

// ProviderConfig configures an HTTP provider adapter.
type ProviderConfig struct {
	// Name identifies the provider in logs and errors.
	// Defaults to the adapter's own name when empty.
	Name string `yaml:"name"`

	// BaseURL is the API endpoint root. Adapters supply their public
	// endpoint when empty.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates requests. Required.
	APIKey string `yaml:"api_key"`

	// Timeout bounds a single HTTP round trip.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns limits pooled connections across all hosts.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost limits pooled connections per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

func (c *ProviderConfig) applyDefaults(name, baseURL string) {
	if c.Name == "" {
		c.Name = name
	}
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
}
