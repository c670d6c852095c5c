package contract

import (
	"context"
	"errors"
	"time"

	"spw/internal/client"
)

// BackoffPolicy bounds a caller-driven retry loop around orchestrator or
// client calls. The orchestrator itself stays retry-free (except the
// single stale-sequence resubmit) so its state machine is predictable;
// transient network faults are the call site's concern.
type BackoffPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultBackoff returns the recommended policy: three attempts, delays
// growing 1.5x from 500ms.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, Multiplier: 1.5}
}

// IsTransient reports whether err is a transport-level fault worth
// retrying (connection failure, RPC timeout, bad gateway). Logical
// failures - simulation rejections, custody errors, terminal transaction
// failures - are never transient.
func IsTransient(err error) bool {
	var reqErr *client.RequestError
	return errors.As(err, &reqErr)
}

// Retry runs fn until it succeeds, fails non-transiently, or the policy is
// exhausted. The last error is returned.
func Retry(ctx context.Context, policy BackoffPolicy, fn func(ctx context.Context) error) error {
	delay := policy.BaseDelay
	var err error

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * policy.Multiplier)
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
	}
	return err
}
