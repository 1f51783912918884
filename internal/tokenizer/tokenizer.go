// Package tokenizer is the ingest-side collaborator described in spec.md
// §6.3: it reads whitespace-separated tokens from a document and normalizes
// each one. Unlike the teacher's tokenizer, this one performs no stemming
// and no stop-word removal — spec.md's non-goals rule those out; the only
// transform applied is normalizer.Normalize (case-fold + alnum stripping).
package tokenizer

import (
	"bufio"
	"fmt"
	"os"
)

// Tokenizer streams whitespace-delimited tokens out of an opened source,
// mirroring the open/close/loadNext/get shape spec.md §6.3 specifies for
// the ingest-side collaborator.
type Tokenizer struct {
	file *os.File
	scan *bufio.Scanner
	cur  string
}

// New returns an unopened Tokenizer.
func New() *Tokenizer {
	return &Tokenizer{}
}

// Open opens the file at uri for whitespace-delimited token scanning, using
// the standard "stream extraction" rule: any run of whitespace is a
// delimiter.
func (t *Tokenizer) Open(uri string) error {
	f, err := os.Open(uri)
	if err != nil {
		return fmt.Errorf("opening %s: %w", uri, err)
	}
	t.file = f
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	t.scan = sc
	return nil
}

// Close releases the underlying file handle.
func (t *Tokenizer) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	t.scan = nil
	return err
}

// LoadNextToken advances to the next whitespace-delimited token, returning
// false once the source is exhausted.
func (t *Tokenizer) LoadNextToken() bool {
	if t.scan == nil || !t.scan.Scan() {
		t.cur = ""
		return false
	}
	t.cur = t.scan.Text()
	return true
}

// GetToken returns the token most recently loaded by LoadNextToken.
func (t *Tokenizer) GetToken() string {
	return t.cur
}
