// Package catalog is the optional Postgres-backed document catalog
// described in SPEC_FULL.md §3: a durable (docid, name, indexed_at,
// term_count) audit table that supplements, but never replaces, the
// textual index file that is the actual source of truth (spec.md §6.1).
// The core packages (index, query, exec) have no dependency on this
// package and function identically whether or not a catalog is configured.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-librarian/librarian/pkg/config"
	"github.com/go-librarian/librarian/pkg/postgres"
	"github.com/go-librarian/librarian/pkg/resilience"
)

// Catalog records ingest events for later auditing/reporting. It never
// gates or blocks an ingest: every method degrades to a logged failure
// rather than an error the caller must handle.
type Catalog struct {
	db     *postgres.Client
	logger *slog.Logger
	cb     *resilience.CircuitBreaker
}

// Open connects to Postgres and ensures the catalog table exists.
func Open(cfg config.PostgresConfig) (*Catalog, error) {
	db, err := postgres.New(cfg)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		db:     db,
		logger: slog.Default().With("component", "catalog"),
		cb:     resilience.NewCircuitBreaker("catalog", resilience.CircuitBreakerConfig{}),
	}
	if err := c.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS indexed_documents (
	docid       BIGINT PRIMARY KEY,
	name        TEXT NOT NULL,
	indexed_at  TIMESTAMPTZ NOT NULL,
	term_count  INTEGER NOT NULL
)`
	_, err := c.db.DB.ExecContext(ctx, ddl)
	return err
}

// RecordIngest upserts a row describing one ingested document. Failures are
// logged and swallowed: a catalog outage must never fail cmd/indexer add,
// which has already committed the authoritative index file by the time
// this is called.
func (c *Catalog) RecordIngest(ctx context.Context, docID uint64, name string, termCount int) {
	op := func() error {
		const stmt = `
INSERT INTO indexed_documents (docid, name, indexed_at, term_count)
VALUES ($1, $2, $3, $4)
ON CONFLICT (docid) DO UPDATE SET name = $2, indexed_at = $3, term_count = $4`
		_, err := c.db.DB.ExecContext(ctx, stmt, docID, name, time.Now().UTC(), termCount)
		return err
	}
	if err := c.cb.Execute(op); err != nil {
		c.logger.Warn("failed to record document in catalog", "doc_id", docID, "name", name, "error", err)
	}
}

// Entry is one row of the ingest audit trail.
type Entry struct {
	DocID     uint64    `json:"doc_id"`
	Name      string    `json:"name"`
	IndexedAt time.Time `json:"indexed_at"`
	TermCount int       `json:"term_count"`
}

// RecentIngests returns the most recently ingested documents, newest first,
// used by the query server's /catalog endpoint. Returns an error (rather
// than swallowing it) since this is a read explicitly requested by a
// caller who can decide how to handle catalog unavailability.
func (c *Catalog) RecentIngests(ctx context.Context, limit int) ([]Entry, error) {
	const q = `
SELECT docid, name, indexed_at, term_count
FROM indexed_documents
ORDER BY indexed_at DESC
LIMIT $1`
	rows, err := c.db.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.DocID, &e.Name, &e.IndexedAt, &e.TermCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BreakerState reports the current state of the circuit guarding Postgres
// calls, so callers (the query server's "catalog" health check) can expose
// it without reaching into resilience internals.
func (c *Catalog) BreakerState() resilience.State {
	return c.cb.State()
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}
