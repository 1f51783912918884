package searchserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-librarian/librarian/internal/catalog"
	"github.com/go-librarian/librarian/internal/exec"
	"github.com/go-librarian/librarian/internal/index"
	apperrors "github.com/go-librarian/librarian/pkg/errors"
	"github.com/go-librarian/librarian/pkg/logger"
	"github.com/go-librarian/librarian/pkg/metrics"
	"github.com/go-librarian/librarian/pkg/middleware"
	"github.com/go-librarian/librarian/pkg/status"
	"github.com/go-librarian/librarian/pkg/tracing"
)

// queryResult is the JSON body returned by the /query endpoint.
type queryResult struct {
	Query   string   `json:"query"`
	Count   int      `json:"count"`
	Results []string `json:"results"`
}

// Handler serves the optional read-only HTTP query server described in
// SPEC_FULL.md §4. Its Query method never mutates idx.
type Handler struct {
	idx     *index.Index
	cache   *QueryCache
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns a Handler over idx. cache, cat, and m are all optional
// (nil-safe) — the server runs identically without any of them, just
// without caching, cataloging, or Prometheus counters respectively.
func New(idx *index.Index, cache *QueryCache, cat *catalog.Catalog, m *metrics.Metrics) *Handler {
	return &Handler{
		idx:     idx,
		cache:   cache,
		catalog: cat,
		metrics: m,
		logger:  slog.Default().With("component", "search-handler"),
	}
}

// Query handles GET /query?q=<text>, running the same RunQuery the CLI's
// `run` verb uses, optionally through the result cache.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	traceCtx, span := tracing.StartSpan(ctx, "http.query", middleware.GetRequestID(ctx))
	defer span.End()

	var (
		names    []string
		cacheHit bool
	)
	compute := func() ([]string, error) {
		result, st := exec.RunQueryTraced(traceCtx, q, h.idx)
		if !st.OK() {
			return nil, st
		}
		return result, nil
	}

	var err error
	if h.cache != nil {
		names, cacheHit, err = h.cache.GetOrCompute(traceCtx, q, compute)
	} else {
		names, err = compute()
	}

	if st, ok := err.(*status.Status); ok && !st.OK() {
		appErr := apperrors.FromStatus(st.Kind.String(), st.Error())
		h.observeQuery(cacheHit, "syntax_error")
		span.Fail(st)
		span.Log()
		h.writeError(w, appErr.StatusCode, appErr.Message)
		return
	}
	if err != nil {
		log.Error("query failed", "query", q, "error", err)
		appErr := apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "query failed")
		h.observeQuery(cacheHit, "error")
		span.Fail(err)
		span.Log()
		h.writeError(w, appErr.StatusCode, appErr.Message)
		return
	}

	elapsed := time.Since(start)
	h.observeQuery(cacheHit, "success")
	if h.metrics != nil {
		h.metrics.ResultCount.Observe(float64(len(names)))
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		h.metrics.QueryLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	}

	log.Info("query completed", "query", q, "results", len(names), "cache_hit", cacheHit, "latency_ms", elapsed.Milliseconds())
	span.SetAttr("results", len(names))
	span.SetAttr("cache_hit", cacheHit)
	span.Log()

	h.writeJSON(w, http.StatusOK, queryResult{Query: q, Count: len(names), Results: names})
}

func (h *Handler) observeQuery(cacheHit bool, outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	if cacheHit {
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
}

// CacheStats reports cumulative cache hit/miss counts.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	h.writeJSON(w, http.StatusOK, map[string]int64{"hits": hits, "misses": misses})
}

// Catalog serves the most recent ingest audit entries from the optional
// Postgres catalog, when configured.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		appErr := apperrors.New(apperrors.ErrCatalogUnavailable, http.StatusServiceUnavailable, "catalog is not configured")
		h.writeError(w, appErr.StatusCode, appErr.Message)
		return
	}
	entries, err := h.catalog.RecentIngests(r.Context(), 50)
	if err != nil {
		h.logger.Error("catalog query failed", "error", err)
		appErr := apperrors.New(apperrors.ErrCatalogUnavailable, apperrors.HTTPStatusCode(apperrors.ErrCatalogUnavailable), "catalog unavailable")
		h.writeError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, map[string]string{"error": message})
}
