package tokenizer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestTokenizerLoadsWhitespaceDelimitedTokens(t *testing.T) {
	path := writeTemp(t, "cat  dog\tfish\nbird")
	tok := New()
	if err := tok.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tok.Close()

	var got []string
	for tok.LoadNextToken() {
		got = append(got, tok.GetToken())
	}
	want := []string{"cat", "dog", "fish", "bird"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDistinctTermsDeduplicatesAndNormalizes(t *testing.T) {
	path := writeTemp(t, "Cat cat CAT. dog, dog!")
	terms, err := DistinctTerms(path)
	if err != nil {
		t.Fatalf("DistinctTerms: %v", err)
	}
	seen := map[string]bool{}
	for _, term := range terms {
		seen[term] = true
	}
	if !seen["cat"] || !seen["dog"] {
		t.Fatalf("expected cat and dog, got %v", terms)
	}
	if len(terms) != 2 {
		t.Fatalf("expected exactly 2 distinct terms, got %v", terms)
	}
}

func TestDistinctTermsDiscardsEmptyNormalizations(t *testing.T) {
	path := writeTemp(t, "... !!! cat")
	terms, err := DistinctTerms(path)
	if err != nil {
		t.Fatalf("DistinctTerms: %v", err)
	}
	if len(terms) != 1 || terms[0] != "cat" {
		t.Fatalf("got %v, want [cat]", terms)
	}
}
