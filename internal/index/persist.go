package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-librarian/librarian/pkg/status"
)

// Dump serializes idx to path in the textual format described in spec.md
// §6.1: a document-count line, one "<docid> <name>" line per real document
// in ascending docid order, a term-count line, then one
// "<term> <npostings> <d1> ... <dn>" line per term. It writes to a temp file
// and renames into place, following the atomic-write pattern used
// throughout this repo's persistence layer. Any write failure is reported
// as status.IO.
func (idx *Index) Dump(path string) error {
	idx.mu.RLock()
	docs := append([]string(nil), idx.docs...)
	terms := make(map[string]PostingList, len(idx.terms))
	for t, list := range idx.terms {
		terms[t] = append(PostingList(nil), list...)
	}
	idx.mu.RUnlock()

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return status.Newf(status.IO, "creating index file: %v", err)
	}
	w := bufio.NewWriter(f)

	realDocs := len(docs) - 1
	if _, err := fmt.Fprintf(w, "%d\n", realDocs); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return status.Newf(status.IO, "writing document count: %v", err)
	}
	for id := 1; id < len(docs); id++ {
		if _, err := fmt.Fprintf(w, "%d %s\n", id, docs[id]); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return status.Newf(status.IO, "writing document %d: %v", id, err)
		}
	}

	termNames := make([]string, 0, len(terms))
	for t := range terms {
		termNames = append(termNames, t)
	}
	sort.Strings(termNames)

	if _, err := fmt.Fprintf(w, "%d\n", len(termNames)); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return status.Newf(status.IO, "writing term count: %v", err)
	}
	for _, term := range termNames {
		list := terms[term]
		if _, err := fmt.Fprintf(w, "%s %d", term, len(list)); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return status.Newf(status.IO, "writing term %q: %v", term, err)
		}
		for _, id := range list {
			if _, err := fmt.Fprintf(w, " %d", id); err != nil {
				f.Close()
				os.Remove(tmpPath)
				return status.Newf(status.IO, "writing postings for term %q: %v", term, err)
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return status.Newf(status.IO, "writing term %q: %v", term, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return status.Newf(status.IO, "flushing index file: %v", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return status.Newf(status.IO, "syncing index file: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return status.Newf(status.IO, "closing index file: %v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return status.Newf(status.IO, "renaming index file: %v", err)
	}
	return nil
}

// Load reads path in the format written by Dump and replaces idx's contents.
// On any parse or I/O failure, idx is reset to the empty state (sentinel
// only, no terms) before status.IO("File corrupted") is returned, so a
// caller never observes a partially loaded index (spec.md §7).
func (idx *Index) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		idx.mu.Lock()
		idx.reset()
		idx.mu.Unlock()
		return status.New(status.IO, "File corrupted")
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	docs, terms, err := parseIndexFile(sc)
	if err != nil {
		idx.mu.Lock()
		idx.reset()
		idx.mu.Unlock()
		return status.New(status.IO, "File corrupted")
	}

	idx.mu.Lock()
	idx.docs = docs
	idx.terms = terms
	idx.mu.Unlock()
	return nil
}

func parseIndexFile(sc *bufio.Scanner) ([]string, map[string]PostingList, error) {
	nextLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of file")
		}
		return sc.Text(), nil
	}

	line, err := nextLine()
	if err != nil {
		return nil, nil, err
	}
	ndocs, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("bad document count: %w", err)
	}

	maxID := uint64(0)
	type docEntry struct {
		id   uint64
		name string
	}
	entries := make([]docEntry, 0, ndocs)
	for i := uint64(0); i < ndocs; i++ {
		line, err := nextLine()
		if err != nil {
			return nil, nil, err
		}
		fields := strings.SplitN(strings.TrimRight(line, "\n"), " ", 2)
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("malformed document line %q", line)
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad docid: %w", err)
		}
		entries = append(entries, docEntry{id: id, name: fields[1]})
		if id > maxID {
			maxID = id
		}
	}

	docs := make([]string, maxID+1)
	for _, e := range entries {
		docs[e.id] = e.name
	}

	line, err = nextLine()
	if err != nil {
		return nil, nil, err
	}
	nterms, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("bad term count: %w", err)
	}

	terms := make(map[string]PostingList, nterms)
	for i := uint64(0); i < nterms; i++ {
		line, err := nextLine()
		if err != nil {
			return nil, nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("malformed term line %q", line)
		}
		term := fields[0]
		npostings, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad posting count for term %q: %w", term, err)
		}
		if uint64(len(fields)-2) != npostings {
			return nil, nil, fmt.Errorf("truncated posting list for term %q", term)
		}
		list := make(PostingList, 0, npostings)
		for _, f := range fields[2:] {
			id, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad docid in posting list for term %q: %w", term, err)
			}
			list = append(list, id)
		}
		terms[term] = list
	}

	return docs, terms, nil
}
