// Command query is the query-side CLI described in spec.md §6.5: it runs a
// single boolean query against an index file and prints the results, or
// starts the optional read-only HTTP query server described in
// SPEC_FULL.md §3/§4.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-librarian/librarian/internal/exec"
	"github.com/go-librarian/librarian/internal/index"
	"github.com/go-librarian/librarian/internal/searchserver"
	"github.com/go-librarian/librarian/pkg/config"
	"github.com/go-librarian/librarian/pkg/logger"
	"github.com/go-librarian/librarian/pkg/status"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runQuery(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "query: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %s\n", err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  query run <index> <query>
  query serve [--addr :port] [--config path] <index>
  query help`)
}

// runQuery loads indexPath, runs text against it, and prints the results
// to standard output per spec.md §7: the document count line, then one
// document name per line.
func runQuery(args []string) error {
	if len(args) != 2 {
		return status.New(status.Syntax, "run requires exactly two arguments: <index> <query>")
	}
	indexPath, queryText := args[0], args[1]

	idx := index.New()
	if err := idx.Load(indexPath); err != nil {
		return err
	}

	names, st := exec.RunQuery(queryText, idx)
	if !st.OK() {
		return st
	}

	fmt.Println(len(names))
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// runServe starts the optional read-only HTTP query server over the index
// loaded from indexPath, honoring spec.md §5's read-only-during-query
// invariant for the server's entire lifetime: nothing in this command ever
// calls Index.RegisterDocument or Index.AddPosting after Load.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "override the listen address, e.g. :9200")
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return status.New(status.Syntax, err.Error())
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return status.New(status.Syntax, "serve requires exactly one argument: <index>")
	}
	indexPath := rest[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *addr != "" {
		var port int
		if _, scanErr := fmt.Sscanf(*addr, ":%d", &port); scanErr == nil {
			cfg.Server.Port = port
		}
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	idx := index.New()
	if err := idx.Load(indexPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := searchserver.NewServer(ctx, cfg, idx)
	if err != nil {
		return fmt.Errorf("starting query server: %w", err)
	}
	return srv.Run(ctx)
}
