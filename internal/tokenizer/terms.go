package tokenizer

import "github.com/go-librarian/librarian/internal/normalizer"

// DistinctTerms opens uri, tokenizes it on whitespace, normalizes every
// token, discards empties, and returns the set of distinct normalized terms
// — exactly what spec.md §6.3 says becomes postings for a document (multiple
// occurrences of a term in one file produce exactly one posting).
func DistinctTerms(uri string) ([]string, error) {
	t := New()
	if err := t.Open(uri); err != nil {
		return nil, err
	}
	defer t.Close()

	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for t.LoadNextToken() {
		term := normalizer.Normalize(t.GetToken())
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms, nil
}
