package exec

import (
	"reflect"
	"testing"

	"github.com/go-librarian/librarian/internal/index"
)

func buildSampleIndex() *index.Index {
	idx := index.New()
	a := idx.RegisterDocument("a.txt")
	b := idx.RegisterDocument("b.txt")
	c := idx.RegisterDocument("c.txt")
	idx.AddPosting("cat", a)
	idx.AddPosting("dog", a)
	idx.AddPosting("dog", b)
	idx.AddPosting("fish", b)
	idx.AddPosting("cat", c)
	idx.AddPosting("fish", c)
	return idx
}

func run(t *testing.T, idx *index.Index, q string) []string {
	t.Helper()
	names, err := RunQuery(q, idx)
	if !err.OK() {
		t.Fatalf("RunQuery(%q): %v", q, err)
	}
	return names
}

func TestScenario1BuildAndQuery(t *testing.T) {
	idx := buildSampleIndex()
	cases := []struct {
		query string
		want  []string
	}{
		{"cat", []string{"a.txt", "c.txt"}},
		{"cat AND dog", []string{"a.txt"}},
		{"cat OR dog", []string{"a.txt", "b.txt", "c.txt"}},
		{"NOT cat", []string{"b.txt"}},
		{"(cat OR dog) AND NOT fish", []string{"a.txt"}},
		{"fish AND NOT (cat OR dog)", nil},
	}
	for _, tc := range cases {
		got := run(t, idx, tc.query)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("query %q: got %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestScenario2CaseFolding(t *testing.T) {
	idx := buildSampleIndex()
	got := run(t, idx, "CAT")
	want := run(t, idx, "cat")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenario3UnknownTerm(t *testing.T) {
	idx := buildSampleIndex()
	if got := run(t, idx, "xyzzy"); got != nil {
		t.Fatalf("got %v, want empty", got)
	}
	if got := run(t, idx, "cat AND xyzzy"); got != nil {
		t.Fatalf("got %v, want empty", got)
	}
	want := []string{"a.txt", "c.txt"}
	if got := run(t, idx, "cat OR xyzzy"); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSyntaxErrorSkipsExecutor(t *testing.T) {
	idx := buildSampleIndex()
	names, err := RunQuery("cat AND", idx)
	if err.OK() {
		t.Fatal("expected syntax error")
	}
	if err.Kind.String() != "Syntax" {
		t.Fatalf("got kind %v", err.Kind)
	}
	if names != nil {
		t.Fatalf("expected no results on syntax error, got %v", names)
	}
}

func TestDoubleNegationEqualsOriginal(t *testing.T) {
	idx := buildSampleIndex()
	got := run(t, idx, "NOT NOT cat")
	want := run(t, idx, "cat")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NOT NOT cat = %v, want %v", got, want)
	}
}

func TestAndOrChildOrderDoesNotAffectResult(t *testing.T) {
	idx := index.New()
	d1 := idx.RegisterDocument("d1.txt")
	idx.AddPosting("a", d1)
	idx.AddPosting("b", d1)
	idx.AddPosting("c", d1)
	abc := run(t, idx, "a AND b AND c")
	cba := run(t, idx, "c AND b AND a")
	if !reflect.DeepEqual(abc, cba) {
		t.Fatalf("AND order affected result: %v vs %v", abc, cba)
	}

	idx2 := index.New()
	e1 := idx2.RegisterDocument("e1.txt")
	e2 := idx2.RegisterDocument("e2.txt")
	idx2.AddPosting("x", e1)
	idx2.AddPosting("y", e2)
	xy := run(t, idx2, "x OR y")
	yx := run(t, idx2, "y OR x")
	if !reflect.DeepEqual(xy, yx) {
		t.Fatalf("OR order affected result: %v vs %v", xy, yx)
	}
}

func TestResultsAreAscendingAndDuplicateFree(t *testing.T) {
	idx := buildSampleIndex()
	for _, q := range []string{"cat OR dog OR fish", "cat AND (dog OR fish OR cat)", "NOT fish"} {
		names, err := RunQuery(q, idx)
		if !err.OK() {
			t.Fatalf("RunQuery(%q): %v", q, err)
		}
		var lastID uint64
		for _, name := range names {
			id := docIDByName(idx, name)
			if id <= lastID && lastID != 0 {
				t.Fatalf("query %q: results not ascending: %v", q, names)
			}
			lastID = id
		}
	}
}

func docIDByName(idx *index.Index, name string) uint64 {
	for _, id := range idx.DocumentIDs() {
		if idx.DocumentName(id) == name {
			return id
		}
	}
	return 0
}

func TestNotOverEmptyIndexYieldsNoDocuments(t *testing.T) {
	idx := index.New()
	got := run(t, idx, "NOT cat")
	if got != nil {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestOrUnionMatchesManualUnion(t *testing.T) {
	idx := buildSampleIndex()
	cat := run(t, idx, "cat")
	dog := run(t, idx, "dog")
	union := run(t, idx, "cat OR dog")
	seen := map[string]bool{}
	for _, n := range cat {
		seen[n] = true
	}
	for _, n := range dog {
		seen[n] = true
	}
	if len(union) != len(seen) {
		t.Fatalf("union %v does not match manual union of %v and %v", union, cat, dog)
	}
	for _, n := range union {
		if !seen[n] {
			t.Fatalf("union contains %q not in either operand", n)
		}
	}
}
