package query

import "testing"

func tokenize(src string) []Token {
	l := NewLexer(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == TokenEnd {
			break
		}
	}
	return toks
}

func TestLexerClassifiesKeywordsCaseSensitively(t *testing.T) {
	toks := tokenize("cat AND dog and OR not NOT")
	want := []struct {
		val string
		typ TokenType
	}{
		{"cat", TokenTerm},
		{"AND", TokenBinaryOp},
		{"dog", TokenTerm},
		{"and", TokenTerm},
		{"OR", TokenBinaryOp},
		{"not", TokenTerm},
		{"NOT", TokenUnaryOp},
		{"", TokenEnd},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Value != w.val || toks[i].Type != w.typ {
			t.Fatalf("token %d: got {%q %v}, want {%q %v}", i, toks[i].Value, toks[i].Type, w.val, w.typ)
		}
	}
}

func TestLexerParenthesisAdhesion(t *testing.T) {
	toks := tokenize("(cat)")
	want := []struct {
		val string
		typ TokenType
	}{
		{"(", TokenSymbol},
		{"cat", TokenTerm},
		{")", TokenSymbol},
		{"", TokenEnd},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Value != w.val || toks[i].Type != w.typ {
			t.Fatalf("token %d: got {%q %v}, want {%q %v}", i, toks[i].Value, toks[i].Type, w.val, w.typ)
		}
	}
}

func TestLexerOnlyASCIISpaceIsWhitespace(t *testing.T) {
	toks := tokenize("cat\tdog\nfish")
	if len(toks) != 2 {
		t.Fatalf("expected tab/newline to glue words together, got %d tokens: %+v", len(toks), toks)
	}
	if toks[0].Value != "cat\tdog\nfish" {
		t.Fatalf("got %q", toks[0].Value)
	}
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	l := NewLexer("cat (dog")
	l.Next() // cat
	paren := l.Next()
	if paren.Line != 1 || paren.Column != 5 {
		t.Fatalf("paren position = (%d,%d), want (1,5)", paren.Line, paren.Column)
	}
}
