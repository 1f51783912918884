package exec

import (
	"context"

	"github.com/go-librarian/librarian/internal/index"
	"github.com/go-librarian/librarian/internal/query"
	"github.com/go-librarian/librarian/pkg/status"
	"github.com/go-librarian/librarian/pkg/tracing"
)

// RunQuery implements the top-level operation from spec.md §4.5.2: parse,
// translate, prepare, drain the root cursor, and resolve docids to names.
// Results are returned in strictly ascending docid order. idx must not be
// mutated concurrently with this call. Used directly by the one-shot CLI
// (cmd/query run), which has no tracing context to thread through.
func RunQuery(text string, idx *index.Index) ([]string, *status.Status) {
	ast, err := query.Parse(text)
	if err != nil {
		return nil, err
	}

	root := Translate(ast)
	root.Prepare(idx)

	var names []string
	for root.Advance() {
		names = append(names, idx.DocumentName(root.Current()))
	}
	return names, status.Ok()
}

// RunQueryTraced is RunQuery with each of its four phases wrapped in a
// tracing.Span (see pkg/tracing's Phase* constants), used by the optional
// HTTP query server so a slow query's time can be attributed to parsing,
// translation, cursor preparation, or draining rather than reported as one
// opaque duration.
func RunQueryTraced(ctx context.Context, text string, idx *index.Index) ([]string, *status.Status) {
	parseCtx, parseSpan := tracing.StartChildSpan(ctx, tracing.PhaseParse)
	ast, err := query.Parse(text)
	if err != nil {
		parseSpan.Fail(err)
	}
	parseSpan.End()
	_ = parseCtx
	if err != nil {
		return nil, err
	}

	_, translateSpan := tracing.StartChildSpan(ctx, tracing.PhaseTranslate)
	root := Translate(ast)
	translateSpan.End()

	_, prepareSpan := tracing.StartChildSpan(ctx, tracing.PhasePrepare)
	root.Prepare(idx)
	prepareSpan.End()

	_, drainSpan := tracing.StartChildSpan(ctx, tracing.PhaseDrain)
	var names []string
	for root.Advance() {
		names = append(names, idx.DocumentName(root.Current()))
	}
	drainSpan.SetAttr("results", len(names))
	drainSpan.End()

	return names, status.Ok()
}
