package exec

import (
	"sort"

	"github.com/go-librarian/librarian/internal/index"
)

// AndCursor is an intersection over its children. Because NotCursor is
// self-contained (see not_cursor.go), planning here needs no negator/
// intersector split: every child, Not or otherwise, is driven the same way.
type AndCursor struct {
	children []Cursor
	current  uint64
	count    int
}

// NewAndCursor returns a cursor over the intersection of children. children
// must have at least one element; the parser never emits a degenerate
// single-child And node, but a lone child here is still handled correctly
// (it degenerates to a pass-through).
func NewAndCursor(children []Cursor) *AndCursor {
	return &AndCursor{children: children}
}

func (c *AndCursor) Prepare(idx *index.Index) {
	for _, ch := range c.children {
		ch.Prepare(idx)
	}
	sort.Slice(c.children, func(i, j int) bool {
		return c.children[i].Count() < c.children[j].Count()
	})
	for _, ch := range c.children[1:] {
		ch.Advance()
	}
	if len(c.children) > 0 {
		c.count = c.children[0].Count()
	}
	c.current = exhausted
}

func (c *AndCursor) Advance() bool {
	if len(c.children) == 0 {
		c.current = exhausted
		return false
	}
	driver := c.children[0]
	probes := c.children[1:]

	for driver.Advance() {
		d := driver.Current()
		matched := true
		for _, p := range probes {
			for p.Current() < d {
				if !p.Advance() {
					break
				}
			}
			if p.Current() != d {
				matched = false
				break
			}
		}
		if matched {
			c.current = d
			return true
		}
	}
	c.current = exhausted
	return false
}

func (c *AndCursor) Current() uint64 { return c.current }
func (c *AndCursor) Count() int      { return c.count }
