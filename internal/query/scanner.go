// Package query implements the query-language front end described in
// spec.md §4.3/§4.4: a position-tracking scanner, a lexer built on top of
// it, and a recursive-descent parser producing a boolean AST.
package query

// Character is a single scanned byte with its source position. End of input
// is represented by Value == 0 (a query string cannot legally contain a NUL
// byte, so it is a safe sentinel).
type Character struct {
	Value    byte
	Line     int
	Column   int
	Position int
}

// Scanner walks a query string byte by byte, tracking 0-based byte offsets
// and 1-based line/column, incrementing Line and resetting Column to 1 on
// '\n'.
type Scanner struct {
	src    string
	pos    int
	line   int
	column int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, column: 1}
}

// Peek returns the next Character without consuming it.
func (s *Scanner) Peek() Character {
	if s.pos >= len(s.src) {
		return Character{Value: 0, Line: s.line, Column: s.column, Position: s.pos}
	}
	return Character{Value: s.src[s.pos], Line: s.line, Column: s.column, Position: s.pos}
}

// Next consumes and returns the next Character, advancing position tracking.
// At end of input it keeps returning the End character (Value 0) without
// erroring.
func (s *Scanner) Next() Character {
	c := s.Peek()
	if c.Value == 0 {
		return c
	}
	s.pos++
	if c.Value == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}
