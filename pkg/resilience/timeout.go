package resilience

import (
	"context"
	"fmt"
	"time"
)

// WithTimeout runs fn with a derived context cancelled after timeout,
// bounding a single sidecar round-trip (a Redis Get/Set in pkg/redis, for
// instance) independently of whatever deadline the caller's own context
// already carries. This is what lets a slow cache degrade the query result
// cache instead of stalling the HTTP response RunQuery is building. If fn
// does not complete in time, context.DeadlineExceeded is returned.
func WithTimeout(ctx context.Context, timeout time.Duration, name string, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	boundedCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- fn(boundedCtx)
	}()
	select {
	case err := <-done:
		return err
	case <-boundedCtx.Done():
		if ctx.Err() != nil {
			return fmt.Errorf("%s: caller cancelled before the sidecar responded: %w", name, ctx.Err())
		}
		return fmt.Errorf("%s: %w (limit: %v)", name, context.DeadlineExceeded, timeout)
	}
}
