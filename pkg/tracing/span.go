// Package tracing provides a lightweight span-based tracing system that
// propagates trace context through Go contexts. Spans form parent-child
// trees and are logged as structured records via slog. It exists to time
// RunQuery's four phases (parse, translate, prepare, drain — see the Phase*
// constants) when a query runs behind the optional HTTP query server; the
// one-shot CLI path never opens a trace, since there's no operator watching
// a live dashboard for a process that exits after one query.
package tracing

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Phase* name the stages RunQuery is split into for tracing purposes,
// matching SPEC_FULL.md's description of what the query server times.
const (
	PhaseParse     = "parse"
	PhaseTranslate = "translate"
	PhasePrepare   = "prepare"
	PhaseDrain     = "drain"
)

// slowSpanThreshold is the latency above which a span is logged at Warn
// instead of Debug. An in-memory boolean search over a loaded index should
// resolve in well under this; a span past it points at either a huge
// posting list or a sidecar call (cache/catalog) that has stopped being
// fast, not normal query variance.
const slowSpanThreshold = 50 * time.Millisecond

type contextKey string

const spanKey contextKey = "librarian_trace_span"

// Span represents a timed operation within a trace.
type Span struct {
	Name      string
	TraceID   string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Children  []*Span
	Attrs     map[string]any
	err       error
	mu        sync.Mutex
}

// StartSpan creates a new root span and stores it in the returned context.
func StartSpan(ctx context.Context, name string, traceID string) (context.Context, *Span) {
	span := &Span{
		Name:      name,
		TraceID:   traceID,
		StartTime: time.Now(),
		Children:  make([]*Span, 0),
		Attrs:     make(map[string]any),
	}
	return context.WithValue(ctx, spanKey, span), span
}

// StartChildSpan creates a child span linked to the parent in ctx. Passing
// one of the Phase* constants as name is how RunQuery's phases show up
// nested under the request's root "http.query" span.
func StartChildSpan(ctx context.Context, name string) (context.Context, *Span) {
	parent := SpanFromContext(ctx)
	child := &Span{
		Name:      name,
		StartTime: time.Now(),
		Children:  make([]*Span, 0),
		Attrs:     make(map[string]any),
	}

	if parent != nil {
		child.TraceID = parent.TraceID
		parent.mu.Lock()
		parent.Children = append(parent.Children, child)
		parent.mu.Unlock()
	}

	return context.WithValue(ctx, spanKey, child), child
}

// End records the span's end time and duration.
func (s *Span) End() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// Fail marks the span as having ended in failure, so Log reports it at
// Error level regardless of duration. Used for phases like parse that can
// fail with a syntax error rather than merely run slow.
func (s *Span) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// SetAttr attaches a key-value attribute to the span.
func (s *Span) SetAttr(key string, value any) {
	s.mu.Lock()
	s.Attrs[key] = value
	s.mu.Unlock()
}

// SpanFromContext extracts the current Span from ctx, or nil if none.
func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey).(*Span); ok {
		return span
	}
	return nil
}

// Log writes the span tree to slog. Fast, successful spans log at Debug so
// a healthy query server stays quiet; a span that failed or ran past
// slowSpanThreshold logs at a louder level so it surfaces in default
// production log filtering.
func (s *Span) Log() {
	s.logRecursive(0)
}

func (s *Span) logRecursive(depth int) {
	attrs := []any{
		"trace_id", s.TraceID,
		"span", s.Name,
		"duration_ms", s.Duration.Milliseconds(),
		"depth", depth,
	}
	for k, v := range s.Attrs {
		attrs = append(attrs, k, v)
	}

	switch {
	case s.err != nil:
		slog.Error("span failed", append(attrs, "error", s.err)...)
	case s.Duration > slowSpanThreshold:
		slog.Warn("slow span", attrs...)
	default:
		slog.Debug("span", attrs...)
	}

	for _, child := range s.Children {
		child.logRecursive(depth + 1)
	}
}
