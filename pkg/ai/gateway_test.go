package ai

import (
	"context"
	"errors"
	"testing"
)

// fakeClient is a minimal scripted Client.
type fakeClient struct {
	name  string
	reply string
	err   error
	calls []*Request
}

func (f *fakeClient) Complete(ctx context.Context, req *Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Name() string { return f.name }

func TestGatewaySend(t *testing.T) {
	ctx := context.Background()
	models := ModelMap{Small: "gpt-4o-mini", Medium: "gpt-4o-mini", Large: "gpt-4o"}

	t.Run("primary success skips fallback", func(t *testing.T) {
		primary := &fakeClient{name: "anthropic", reply: "hello"}
		fallback := &fakeClient{name: "openai", reply: "unused"}
		g := NewGateway(primary, fallback, models, func(error) bool {
			t.Error("approval callback invoked on success")
			return true
		})

		text, err := g.Send(ctx, "system", "user", "claude-3-haiku-20240307", 50, 0.2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "hello" {
			t.Errorf("text = %q", text)
		}
		if len(fallback.calls) != 0 {
			t.Errorf("fallback called %d times", len(fallback.calls))
		}
	})

	t.Run("declined fallback returns primary error", func(t *testing.T) {
		wantErr := &OverloadedError{Provider: "anthropic", Message: "busy"}
		primary := &fakeClient{name: "anthropic", err: wantErr}
		fallback := &fakeClient{name: "openai", reply: "unused"}
		g := NewGateway(primary, fallback, models, func(error) bool { return false })

		_, err := g.Send(ctx, "system", "user", "claude-3-haiku-20240307", 50, 0.2)
		var oe *OverloadedError
		if !errors.As(err, &oe) {
			t.Fatalf("err = %v, want OverloadedError", err)
		}
		if len(fallback.calls) != 0 {
			t.Errorf("fallback called despite decline")
		}
	})

	t.Run("approved fallback replays at equivalent tier", func(t *testing.T) {
		primary := &fakeClient{name: "anthropic", err: errors.New("down")}
		fallback := &fakeClient{name: "openai", reply: "rescued"}
		var offered error
		g := NewGateway(primary, fallback, models, func(err error) bool {
			offered = err
			return true
		})

		text, err := g.Send(ctx, "system", "user", "claude-3-5-sonnet-20240620", 100, 0.2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "rescued" {
			t.Errorf("text = %q", text)
		}
		if offered == nil {
			t.Error("approval callback not given the primary error")
		}
		if len(fallback.calls) != 1 {
			t.Fatalf("fallback calls = %d, want 1", len(fallback.calls))
		}
		req := fallback.calls[0]
		if req.Model != "gpt-4o-mini" {
			t.Errorf("fallback model = %q, want gpt-4o-mini (medium tier)", req.Model)
		}
		if req.SystemPrompt != "system" || req.UserMessage != "user" {
			t.Errorf("fallback request changed: %+v", req)
		}
	})

	t.Run("nil fallback disables the path", func(t *testing.T) {
		primary := &fakeClient{name: "anthropic", err: errors.New("down")}
		g := NewGateway(primary, nil, ModelMap{}, func(error) bool {
			t.Error("approval callback invoked without fallback")
			return true
		})

		_, err := g.Send(ctx, "system", "user", "claude-3-haiku-20240307", 50, 0.2)
		if err == nil || err.Error() != "down" {
			t.Errorf("err = %v, want primary error", err)
		}
	})

	t.Run("fallback failure returns fallback error", func(t *testing.T) {
		primary := &fakeClient{name: "anthropic", err: errors.New("primary down")}
		fallback := &fakeClient{name: "openai", err: errors.New("fallback down")}
		g := NewGateway(primary, fallback, models, func(error) bool { return true })

		_, err := g.Send(ctx, "system", "user", "claude-3-haiku-20240307", 50, 0.2)
		if err == nil || err.Error() != "fallback down" {
			t.Errorf("err = %v, want fallback error", err)
		}
	})
}

func TestTierForModel(t *testing.T) {
	tests := []struct {
		model string
		want  Tier
	}{
		{"claude-3-haiku-20240307", TierSmall},
		{"claude-3-5-sonnet-20240620", TierMedium},
		{"claude-3-opus-20240229", TierLarge},
		{"something-else", TierLarge},
	}
	for _, tt := range tests {
		if got := TierForModel(tt.model); got != tt.want {
			t.Errorf("TierForModel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestModelMapResolve(t *testing.T) {
	m := ModelMap{Small: "s", Medium: "m", Large: "l"}
	if got := m.Resolve(TierSmall); got != "s" {
		t.Errorf("small = %q", got)
	}
	if got := m.Resolve(TierMedium); got != "m" {
		t.Errorf("medium = %q", got)
	}
	if got := m.Resolve(Tier("bogus")); got != "l" {
		t.Errorf("unknown tier = %q, want large", got)
	}
}

func TestIsOverloaded(t *testing.T) {
	direct := &OverloadedError{Provider: "anthropic"}
	if !IsOverloaded(direct) {
		t.Error("direct OverloadedError not detected")
	}
	wrapped := &ProviderError{Provider: "anthropic", Message: "wrapped", Cause: direct}
	if !IsOverloaded(wrapped) {
		t.Error("wrapped OverloadedError not detected")
	}
	if IsOverloaded(errors.New("plain")) {
		t.Error("plain error misclassified")
	}
	if IsOverloaded(nil) {
		t.Error("nil misclassified")
	}
}
