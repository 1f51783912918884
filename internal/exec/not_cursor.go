package exec

import "github.com/go-librarian/librarian/internal/index"

// NotCursor represents "documents NOT matching child". It is kept fully
// self-contained — it never gets re-wired into an enclosing AndCursor's
// negator set — trading the O(|child|) isolated cost the source's design
// achieves for a simpler O(|Docs|) walk that an AndCursor can drive exactly
// like any other cursor. Both behave identically from the outside.
type NotCursor struct {
	child   Cursor
	docIDs  []uint64
	pos     int
	current uint64
	count   int
}

// NewNotCursor returns a cursor over documents that do not match child.
func NewNotCursor(child Cursor) *NotCursor {
	return &NotCursor{child: child}
}

func (c *NotCursor) Prepare(idx *index.Index) {
	c.child.Prepare(idx)
	c.child.Advance()
	c.docIDs = idx.DocumentIDs()
	c.count = idx.NumDocuments() - c.child.Count()
	if c.count < 0 {
		c.count = 0
	}
	c.pos = -1
	c.current = exhausted
}

func (c *NotCursor) Advance() bool {
	for {
		c.pos++
		if c.pos >= len(c.docIDs) {
			c.current = exhausted
			return false
		}
		d := c.docIDs[c.pos]
		for c.child.Current() < d {
			if !c.child.Advance() {
				break
			}
		}
		if c.child.Current() == d {
			continue
		}
		c.current = d
		return true
	}
}

func (c *NotCursor) Current() uint64 { return c.current }
func (c *NotCursor) Count() int      { return c.count }
