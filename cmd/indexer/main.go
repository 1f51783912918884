// Command indexer is the ingest-side CLI described in spec.md §6.5: it
// creates empty index files and adds documents to them. Ingest is a
// synchronous, one-document-at-a-time operation — there is no queue, no
// consumer, no background worker. The index file on disk is always the
// source of truth; the optional Kafka publish and Postgres catalog row are
// side effects that never gate or block a successful add.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"log/slog"

	"github.com/go-librarian/librarian/internal/catalog"
	"github.com/go-librarian/librarian/internal/index"
	"github.com/go-librarian/librarian/internal/searchserver"
	"github.com/go-librarian/librarian/internal/tokenizer"
	"github.com/go-librarian/librarian/pkg/config"
	"github.com/go-librarian/librarian/pkg/kafka"
	"github.com/go-librarian/librarian/pkg/logger"
	pkgredis "github.com/go-librarian/librarian/pkg/redis"
	"github.com/go-librarian/librarian/pkg/status"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(os.Args[2:])
	case "add":
		err = runAdd(os.Args[2:])
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "indexer: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "indexer: %s\n", err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  indexer create <path>
  indexer add [--title name] <index> <file>
  indexer help`)
}

// runCreate writes a fresh, empty index file to path (spec.md §6.1: two
// lines, "0\n0\n").
func runCreate(args []string) error {
	if len(args) != 1 {
		return status.New(status.Syntax, "create requires exactly one argument: <path>")
	}
	idx := index.New()
	if err := idx.Dump(args[0]); err != nil {
		return err
	}
	fmt.Printf("created empty index at %s\n", args[0])
	return nil
}

// runAdd tokenizes file, registers it as a new document, adds one posting
// per distinct normalized term, and dumps the updated index back to disk.
// If Kafka or the Postgres catalog are enabled via LIBRARIAN_* environment
// variables, it also fires a best-effort document.indexed event and audit
// row — neither failure affects the command's exit code, since the index
// file has already been durably updated by that point.
func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "document name to register (defaults to the file path)")
	if err := fs.Parse(args); err != nil {
		return status.New(status.Syntax, err.Error())
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return status.New(status.Syntax, "add requires exactly two arguments: <index> <file>")
	}
	indexPath, filePath := rest[0], rest[1]
	name := *title
	if name == "" {
		name = filePath
	}

	idx := index.New()
	if err := idx.Load(indexPath); err != nil {
		return err
	}

	terms, err := tokenizer.DistinctTerms(filePath)
	if err != nil {
		return status.Newf(status.IO, "reading %s: %v", filePath, err)
	}

	docID := idx.RegisterDocument(name)
	for _, term := range terms {
		idx.AddPosting(term, docID)
	}

	if err := idx.Dump(indexPath); err != nil {
		return err
	}

	log := logger.WithIndex(indexPath)
	publishSideEffects(log, docID, name, len(terms))

	fmt.Printf("indexed document %d (%s): %d distinct terms\n", docID, name, len(terms))
	return nil
}

// publishSideEffects fires the optional Kafka, Postgres, and Redis
// integrations if LIBRARIAN_KAFKA_ENABLED / LIBRARIAN_POSTGRES_ENABLED /
// LIBRARIAN_REDIS_ENABLED are set. All three are best-effort: every failure
// is logged and swallowed, matching spec.md §7's rule that ingest's core
// operation (updating the index file) never waits on or fails for these.
func publishSideEffects(log *slog.Logger, docID uint64, name string, termCount int) {
	cfg, err := config.Load("")
	if err != nil {
		log.Warn("failed to load config for optional integrations", "error", err)
		return
	}

	ctx := context.Background()
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		producer.PublishIndexed(ctx, docID, name)
		producer.Close()
	}
	if cfg.Postgres.Enabled {
		cat, err := catalog.Open(cfg.Postgres)
		if err != nil {
			log.Warn("catalog unavailable, skipping audit row", "error", err)
		} else {
			cat.RecordIngest(ctx, docID, name, termCount)
			cat.Close()
		}
	}
	if cfg.Redis.Enabled {
		invalidateQueryCache(ctx, log, cfg)
	}
}

// invalidateQueryCache flushes every cached query result after add commits a
// new document to the index. A running cmd/query serve process caches
// RunQuery results by query text alone (internal/searchserver.QueryCache),
// so without this an ingested document would be invisible to queries the
// cache already has a stale answer for until each key's TTL expires.
func invalidateQueryCache(ctx context.Context, log *slog.Logger, cfg *config.Config) {
	client, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		log.Warn("query cache unavailable, skipping invalidation", "error", err)
		return
	}
	defer client.Close()
	deleted, err := client.FlushByPattern(ctx, searchserver.CacheKeyPrefix+"*")
	if err != nil {
		log.Warn("query cache invalidation failed", "error", err)
		return
	}
	log.Info("invalidated query cache", "keys_deleted", deleted)
}
