// Package index implements the inverted index: a docid<->name table and a
// term->posting-list map, with textual persistence (see persist.go).
package index

import "sync"

// sentinelName is the name registered for docid 0, the reserved "no
// document" value (I1: 0 never appears in any posting list).
const sentinelName = ""

// Index holds the docid/name table and the term->postings map. It is the
// single collaborator shared by ingest (mutating) and query execution
// (read-only, per spec's single-threaded model — see package exec).
type Index struct {
	mu    sync.RWMutex
	docs  []string // docs[id] is the name of document id; docs[0] is the sentinel.
	terms map[string]PostingList
}

// New returns an empty Index: sentinel-only document table, no terms, and
// next-free docid 1 (I4).
func New() *Index {
	return &Index{
		docs:  []string{sentinelName},
		terms: make(map[string]PostingList),
	}
}

// RegisterDocument assigns the next free docid to name and returns it.
// Names are not deduplicated: registering the same name twice yields two
// distinct docids.
func (idx *Index) RegisterDocument(name string) uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	id := uint64(len(idx.docs))
	idx.docs = append(idx.docs, name)
	return id
}

// AddPosting records that document docid contains term, preserving I2
// (strictly ascending, no duplicates). Idempotent for repeated calls with
// the same (term, docid) pair (P3).
func (idx *Index) AddPosting(term string, docid uint64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.terms[term] = idx.terms[term].insert(docid)
}

// RemovePosting deletes docid from term's posting list if present. Not
// exercised by the ingest path; provided for completeness (spec.md §3).
func (idx *Index) RemovePosting(term string, docid uint64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	list, ok := idx.terms[term]
	if !ok {
		return
	}
	idx.terms[term] = list.remove(docid)
}

// Find returns the posting list for term and whether it is present. Terms
// are matched byte-exact; callers normalize before calling Find.
func (idx *Index) Find(term string) (PostingList, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	list, ok := idx.terms[term]
	return list, ok
}

// DocumentName returns the name registered for id, or "" if id is unknown
// (which is also the sentinel's name, so unknown IDs degrade safely).
func (idx *Index) DocumentName(id uint64) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if id >= uint64(len(idx.docs)) {
		return sentinelName
	}
	return idx.docs[id]
}

// NumDocuments returns the size of the document table including the
// sentinel entry, so the real document count is NumDocuments()-1.
func (idx *Index) NumDocuments() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// DocumentIDs returns every real (non-sentinel) docid in ascending order.
// Docids are assigned sequentially, so this is simply 1..NumDocuments()-1;
// used by NotCursor to walk the document table.
func (idx *Index) DocumentIDs() []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids := make([]uint64, 0, len(idx.docs)-1)
	for id := uint64(1); id < uint64(len(idx.docs)); id++ {
		ids = append(ids, id)
	}
	return ids
}

// Terms returns every term currently present in the index, in unspecified
// order (map iteration order).
func (idx *Index) Terms() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	terms := make([]string, 0, len(idx.terms))
	for t := range idx.terms {
		terms = append(terms, t)
	}
	return terms
}

// TermCount returns the number of distinct terms in the index.
func (idx *Index) TermCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.terms)
}

// reset restores the index to the empty state (sentinel-only, no terms).
// Used by Load to guarantee that a failed load leaves the caller observing
// an empty index rather than a partial one (spec.md §7).
func (idx *Index) reset() {
	idx.docs = []string{sentinelName}
	idx.terms = make(map[string]PostingList)
}
