package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Options controls the supervision of one logical call.
type Options struct {
	// MaxRetries is the total number of attempts. Values below 1 mean one
	// attempt.
	MaxRetries int

	// InitialDelay is the wait before the second attempt. The delay doubles
	// after every failure.
	// Default: 1s
	InitialDelay time.Duration

	// Timeout is the hard wall-clock limit per attempt. An attempt that
	// exceeds it is abandoned and counted as failed, whether or not the
	// wrapped call honors cancellation.
	// Default: 30s
	Timeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.MaxRetries < 1 {
		o.MaxRetries = 1
	}
	if o.InitialDelay == 0 {
		o.InitialDelay = time.Second
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
}

// Func is one attempt of the supervised call. The context carries the
// per-attempt deadline.
type Func func(ctx context.Context) (string, error)

type attemptResult struct {
	text string
	err  error
}

// Do runs fn up to opts.MaxRetries times with exponential backoff between
// attempts and a hard timeout around each one. It returns the first
// successful result, or the last error once attempts are exhausted.
// Cancelling ctx stops both the current wait and further attempts.
func Do(ctx context.Context, opts Options, fn Func) (string, error) {
	opts.applyDefaults()

	var lastErr error
	delay := opts.InitialDelay

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 1 {
			slog.Debug("retrying after failure",
				"attempt", attempt,
				"max_retries", opts.MaxRetries,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		text, err := runAttempt(ctx, opts.Timeout, fn)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

// runAttempt executes fn under a hard deadline. The goroutine running fn is
// abandoned on timeout; nothing it later returns is observed.
func runAttempt(ctx context.Context, timeout time.Duration, fn Func) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		text, err := fn(attemptCtx)
		done <- attemptResult{text: text, err: err}
	}()

	select {
	case result := <-done:
		return result.text, result.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("request timed out after %s", timeout)
	}
}
