package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Serve starts a scrape-only HTTP server on port, separate from the query
// server's own listener. Prometheus scrape traffic and query traffic never
// share a port: a scraper hammering /metrics (or a query server under load)
// can't starve the other, and a deployment can put the scrape port behind a
// different network policy than the public query endpoint. It returns a
// shutdown func for the caller to invoke during graceful shutdown; Serve
// itself never blocks.
func Serve(port int) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><h1>librarian metrics</h1><p>scrape target for the query server's Prometheus collectors</p><p><a href="/metrics">/metrics</a></p></body></html>`)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("metrics scrape server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics scrape server error", "error", err)
		}
	}()

	return server.Shutdown
}
