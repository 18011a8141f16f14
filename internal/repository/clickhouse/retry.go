package clickhouse

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryPolicy captures the query retry knobs from configuration. interval is
// the initial backoff interval; it grows exponentially between attempts.
type retryPolicy struct {
	attempts uint
	interval time.Duration
}

// isTransient classifies errors worth retrying. Structural failures such as
// malformed SQL or scan type mismatches fail the same way every attempt and
// are treated as permanent.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"eof",
		"too many simultaneous queries",
		"memory limit",
		// corrupted response stream markers
		"decompress",
		"decode",
		"malformed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// withRetry runs op up to policy.attempts times with exponential backoff
// between attempts, bailing out immediately on permanent errors.
func withRetry(ctx context.Context, policy retryPolicy, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	attempts := policy.attempts
	if attempts == 0 {
		attempts = 1
	}
	expo := backoff.NewExponentialBackOff()
	if policy.interval > 0 {
		expo.InitialInterval = policy.interval
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(expo, uint64(attempts-1)),
		ctx,
	)
	return backoff.Retry(wrapped, b)
}
