// Package searchserver is the optional HTTP query server described in
// SPEC_FULL.md §4 (cmd/query serve). It is a read-only view over an
// already-loaded *index.Index for its whole lifetime — nothing here ever
// calls Index.RegisterDocument or Index.AddPosting.
package searchserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-librarian/librarian/internal/catalog"
	"github.com/go-librarian/librarian/internal/index"
	"github.com/go-librarian/librarian/pkg/config"
	"github.com/go-librarian/librarian/pkg/health"
	"github.com/go-librarian/librarian/pkg/metrics"
	"github.com/go-librarian/librarian/pkg/middleware"
	pkgredis "github.com/go-librarian/librarian/pkg/redis"
	"github.com/go-librarian/librarian/pkg/resilience"
)

// Server bundles the optional integrations (Redis cache, Postgres catalog,
// Prometheus metrics) around an http.Server serving queries against idx.
type Server struct {
	cfg             *config.Config
	http            *http.Server
	handler         *Handler
	redis           *pkgredis.Client
	catalog         *catalog.Catalog
	checker         *health.Checker
	metricsShutdown func(context.Context) error
}

// NewServer wires up the optional dependencies named in cfg and returns a
// Server ready to Run. Every optional dependency that fails to connect is
// logged and left disabled rather than aborting startup — a degraded query
// server (no cache, no catalog) is still useful; a query server that
// refuses to start because Redis is down is not.
func NewServer(ctx context.Context, cfg *config.Config, idx *index.Index) (*Server, error) {
	var (
		redisClient *pkgredis.Client
		queryCache  *QueryCache
		cat         *catalog.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Redis.Enabled {
		g.Go(func() error {
			client, err := pkgredis.NewClient(cfg.Redis)
			if err != nil {
				slog.Warn("redis unavailable, query caching disabled", "error", err)
				return nil
			}
			redisClient = client
			queryCache = NewQueryCache(client, cfg.Redis)
			return nil
		})
	}
	if cfg.Postgres.Enabled {
		g.Go(func() error {
			c, err := catalog.Open(cfg.Postgres)
			if err != nil {
				slog.Warn("postgres catalog unavailable, ingest history disabled", "error", err)
				return nil
			}
			cat = c
			return nil
		})
	}
	// errgroup.WithContext's derived context exists so probes can honor
	// cancellation if the caller aborts startup; the probes above are fast
	// pings, but a slower future probe can select on gctx.Done().
	_ = gctx
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("starting query server dependencies: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	handler := New(idx, queryCache, cat, m)

	checker := health.NewChecker()
	checker.Register("index", true, func(context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents, %d terms", idx.NumDocuments()-1, idx.TermCount()),
		}
	})
	if redisClient != nil {
		checker.Register("redis", false, func(ctx context.Context) health.ComponentHealth {
			if err := redisClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}
	if cat != nil {
		checker.Register("catalog", false, func(context.Context) health.ComponentHealth {
			state := cat.BreakerState()
			if m != nil {
				m.CircuitBreakerState.WithLabelValues("catalog").Set(float64(state))
			}
			if state != resilience.StateClosed {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: "circuit " + state.String()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /query", handler.Query)
	mux.HandleFunc("GET /cache/stats", handler.CacheStats)
	mux.HandleFunc("GET /catalog", handler.Catalog)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	var metricsShutdown func(context.Context) error
	if m != nil {
		chain = middleware.Metrics(m)(chain)
		// Prometheus scrapes on its own port (metrics.Serve), not on the
		// query server's listener, so scrape load and query load never
		// compete for the same accept queue.
		metricsShutdown = metrics.Serve(cfg.Metrics.Port)
	}
	chain = middleware.RequestID(chain)

	return &Server{
		cfg:             cfg,
		handler:         handler,
		redis:           redisClient,
		catalog:         cat,
		checker:         checker,
		metricsShutdown: metricsShutdown,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      chain,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// gracefully shuts down.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("query server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	s.Close()
	return nil
}

// Close releases the server's optional dependency connections.
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
	if s.catalog != nil {
		s.catalog.Close()
	}
	if s.metricsShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metricsShutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown error", "error", err)
		}
	}
}
