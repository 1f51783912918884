// Package exec implements the executor (spec.md §4.5): a translation of the
// query AST into a tree of streaming, sorted cursors over docids, and the
// top-level RunQuery orchestration.
package exec

import "github.com/go-librarian/librarian/internal/index"

// exhausted is the sentinel "current" value a cursor reports once it has no
// more docids to produce. Every real docid is < exhausted.
const exhausted = ^uint64(0)

// Cursor is a forward-only, sorted iterator over docids. All cursors emit
// docids in strictly ascending order and report exhausted (sentinel ∞) once
// spent.
type Cursor interface {
	// Prepare readies the cursor against idx. Must be called exactly once,
	// before any Advance.
	Prepare(idx *index.Index)
	// Advance moves to the next docid, returning false once exhausted.
	Advance() bool
	// Current returns the docid the cursor is positioned at, or exhausted.
	Current() uint64
	// Count is a cardinality estimate used for planning, not a promise of
	// the exact number of results Advance will yield (NotCursor especially:
	// its count is numDocuments-child.count computed at Prepare time).
	Count() int
}
