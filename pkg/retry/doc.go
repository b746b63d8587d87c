/*
Package retry supervises AI gateway calls with bounded retries and hard
per-attempt timeouts.

Each attempt runs in its own goroutine under a wall-clock deadline that is
enforced even when the wrapped call ignores cancellation. Failed attempts
are retried after exponentially growing delays (initial, 2*initial,
4*initial, ...). The supervisor does not inspect error types; any failure
or timeout counts. After the final attempt the last error is returned to
the caller, which decides how to degrade.

	text, err := retry.Do(ctx, retry.Options{
		MaxRetries:   3,
		InitialDelay: time.Second,
		Timeout:      30 * time.Second,
	}, func(ctx context.Context) (string, error) {
		return gateway.Send(ctx, system, user, model, 500, 0.2)
	})

Do is safe to invoke from multiple goroutines; every invocation owns its
own attempt state.
*/
package retry
