// Package resilience provides fault-tolerance primitives for this module's
// two optional sidecars — the Postgres catalog and the Redis query cache.
// Neither sidecar sits on the path that keeps the index file itself
// correct: a circuit breaker, retry, and timeout here bound how long a
// flaky sidecar can slow down an ingest or a query before this module gives
// up on it and falls back to "skip and log" (spec.md §5/§7 — the core never
// faults on a degraded ambient dependency).
package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrDependencyUnavailable is returned when a breaker-guarded call is
// rejected because the dependency has been tripped open.
var ErrDependencyUnavailable = errors.New("dependency circuit is open")

// State represents the current phase of a CircuitBreaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig controls failure thresholds and recovery timing. The
// zero value is filled in with defaults tuned for a low-traffic sidecar
// (one catalog write per ingested document, one cache round-trip per
// query) rather than a high-QPS service mesh: a single-process CLI or
// query server doesn't see enough sidecar calls to justify the longer
// cool-downs a fan-out gateway would use.
type CircuitBreakerConfig struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	HalfOpenMaxRequests int
}

func defaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold:    3,
		ResetTimeout:        15 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// CircuitBreaker tracks consecutive failures against one dependency and
// trips open when the threshold is reached, so a stalled Postgres or
// Redis connection stops being retried on every call. After a cool-down it
// transitions to half-open and lets one probe call through.
type CircuitBreaker struct {
	dependency          string
	cfg                 CircuitBreakerConfig
	mu                  sync.Mutex
	state               State
	logger              *slog.Logger
	consecutiveFailures int
	lastFailureTime     time.Time
	halfOpenProbes      int
}

// NewCircuitBreaker creates a CircuitBreaker guarding calls to dependency
// (e.g. "catalog", "query-cache"), filling in defaults for zero-value
// fields of cfg.
func NewCircuitBreaker(dependency string, cfg CircuitBreakerConfig) *CircuitBreaker {
	defaults := defaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaults.ResetTimeout
	}
	if cfg.HalfOpenMaxRequests <= 0 {
		cfg.HalfOpenMaxRequests = defaults.HalfOpenMaxRequests
	}
	return &CircuitBreaker{
		dependency: dependency,
		cfg:        cfg,
		state:      StateClosed,
		logger:     slog.Default().With("component", "resilience", "dependency", dependency),
	}
}

// Execute runs fn if the breaker currently allows calls through, recording
// the outcome to drive the next state transition.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	cb.record(err)
	return err
}

// State reports the breaker's current phase, used by the query server to
// surface catalog/cache health without making a live call.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(cb.lastFailureTime) >= cb.cfg.ResetTimeout {
			cb.state = StateHalfOpen
			cb.halfOpenProbes = 0
			cb.logger.Info("probing dependency again", "cooldown", cb.cfg.ResetTimeout)
			return nil
		}
		return fmt.Errorf("%w: %s (retry after %v)", ErrDependencyUnavailable, cb.dependency, cb.cfg.ResetTimeout-time.Since(cb.lastFailureTime))
	case StateHalfOpen:
		if cb.halfOpenProbes >= cb.cfg.HalfOpenMaxRequests {
			return fmt.Errorf("%w: %s (already probing)", ErrDependencyUnavailable, cb.dependency)
		}
		cb.halfOpenProbes++
		return nil
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err == nil {
		cb.recordSuccess()
		return
	}
	cb.recordFailure()
}

func (cb *CircuitBreaker) recordSuccess() {
	switch cb.state {
	case StateClosed:
		cb.consecutiveFailures = 0
	case StateHalfOpen:
		cb.state = StateClosed
		cb.consecutiveFailures = 0
		cb.halfOpenProbes = 0
		cb.logger.Info("dependency recovered, resuming normal calls")
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.lastFailureTime = time.Now()
	cb.consecutiveFailures++
	switch cb.state {
	case StateClosed:
		if cb.consecutiveFailures >= cb.cfg.FailureThreshold {
			cb.state = StateOpen
			cb.logger.Warn("tripping breaker open", "consecutive_failures", cb.consecutiveFailures, "threshold", cb.cfg.FailureThreshold)
		}
	case StateHalfOpen:
		cb.state = StateOpen
		cb.logger.Warn("probe failed, re-opening breaker")
	}
}

// Reset forces the breaker back to Closed, used by tests and by an operator
// who has confirmed the sidecar is healthy again.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.consecutiveFailures = 0
	cb.halfOpenProbes = 0
	cb.logger.Info("breaker reset")
}
