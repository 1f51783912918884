package index

import "sort"

// PostingList is a strictly ascending, duplicate-free sequence of document
// IDs asserting that each contained document has a given term.
type PostingList []uint64

// insert adds id to the list in sorted position, preserving strict ascending
// order (I2). It is a no-op if id is already present. The fast path appends
// when id extends the list; otherwise it binary-searches for the insertion
// point, which is what keeps this correct even when id is smaller than every
// existing entry (unlike the linear scan-from-front the original indexer
// used, which could misplace an insert at the very front of the list).
func (p PostingList) insert(id uint64) PostingList {
	n := len(p)
	if n == 0 || id > p[n-1] {
		return append(p, id)
	}
	pos := sort.Search(n, func(i int) bool { return p[i] >= id })
	if pos < n && p[pos] == id {
		return p
	}
	p = append(p, 0)
	copy(p[pos+1:], p[pos:])
	p[pos] = id
	return p
}

// remove deletes id from the list if present, preserving order.
func (p PostingList) remove(id uint64) PostingList {
	n := len(p)
	pos := sort.Search(n, func(i int) bool { return p[i] >= id })
	if pos >= n || p[pos] != id {
		return p
	}
	return append(p[:pos], p[pos+1:]...)
}

// contains reports whether id is present, via binary search.
func (p PostingList) contains(id uint64) bool {
	n := len(p)
	pos := sort.Search(n, func(i int) bool { return p[i] >= id })
	return pos < n && p[pos] == id
}
