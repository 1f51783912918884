package exec

import (
	"strings"

	"github.com/go-librarian/librarian/internal/index"
)

// TermCursor walks the posting list of a single term. Absent terms degrade
// to an immediately-exhausted, zero-count cursor rather than an error —
// spec.md §5 requires prepare/advance to never fault.
type TermCursor struct {
	term     string
	postings index.PostingList
	pos      int
	current  uint64
}

// NewTermCursor returns a cursor over term. term is lowercased at Prepare
// time, matching how postings were built at ingest.
func NewTermCursor(term string) *TermCursor {
	return &TermCursor{term: term}
}

func (c *TermCursor) Prepare(idx *index.Index) {
	lowered := strings.ToLower(c.term)
	postings, ok := idx.Find(lowered)
	if !ok {
		c.postings = nil
		c.pos = -1
		c.current = exhausted
		return
	}
	c.postings = postings
	c.pos = -1
	c.current = exhausted
}

func (c *TermCursor) Advance() bool {
	if c.pos+1 >= len(c.postings) {
		c.pos = len(c.postings)
		c.current = exhausted
		return false
	}
	c.pos++
	c.current = c.postings[c.pos]
	return true
}

func (c *TermCursor) Current() uint64 { return c.current }
func (c *TermCursor) Count() int      { return len(c.postings) }
