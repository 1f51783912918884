package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunAggregatesDownOnlyForRequired(t *testing.T) {
	c := NewChecker()
	c.Register("index", true, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusUp}
	})
	c.Register("redis", false, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusDown, Message: "connection refused"}
	})

	report := c.Run(context.Background())
	if report.Status != StatusDegraded {
		t.Fatalf("overall status = %v, want degraded (optional dependency down)", report.Status)
	}
}

func TestRunFailsOnRequiredDown(t *testing.T) {
	c := NewChecker()
	c.Register("index", true, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusDown, Message: "index not loaded"}
	})
	c.Register("redis", false, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusUp}
	})

	report := c.Run(context.Background())
	if report.Status != StatusDown {
		t.Fatalf("overall status = %v, want down (required dependency down)", report.Status)
	}
}

func TestReadyHandlerReturns200WhenOnlyOptionalDegraded(t *testing.T) {
	c := NewChecker()
	c.Register("index", true, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusUp}
	})
	c.Register("catalog", false, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusDegraded, Message: "circuit open"}
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	c.ReadyHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200 (optional catalog degradation must not fail readiness)", w.Code)
	}
}

func TestReadyHandlerReturns503WhenRequiredDown(t *testing.T) {
	c := NewChecker()
	c.Register("index", true, func(context.Context) ComponentHealth {
		return ComponentHealth{Status: StatusDown}
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	c.ReadyHandler()(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status code = %d, want 503", w.Code)
	}
}
