package exec

import "github.com/go-librarian/librarian/internal/index"

// OrCursor is a sorted-merge union over its children. The source sorts
// children non-Not-before-Not as a minor optimization hint; correctness
// never depends on child order here (every step scans all children for the
// minimum), so this cursor does not bother sorting them.
type OrCursor struct {
	children []Cursor
	current  uint64
	count    int
}

// NewOrCursor returns a cursor over the union of children.
func NewOrCursor(children []Cursor) *OrCursor {
	return &OrCursor{children: children}
}

func (c *OrCursor) Prepare(idx *index.Index) {
	for _, ch := range c.children {
		ch.Prepare(idx)
		c.count += ch.Count()
	}
	for _, ch := range c.children {
		ch.Advance()
	}
	c.current = exhausted
}

func (c *OrCursor) Advance() bool {
	min := exhausted
	for _, ch := range c.children {
		if v := ch.Current(); v < min {
			min = v
		}
	}
	if min == exhausted {
		c.current = exhausted
		return false
	}
	for _, ch := range c.children {
		if ch.Current() == min {
			ch.Advance()
		}
	}
	c.current = min
	return true
}

func (c *OrCursor) Current() uint64 { return c.current }
func (c *OrCursor) Count() int      { return c.count }
