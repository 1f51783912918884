package index

import "testing"

func TestRegisterDocumentAssignsSequentialIDs(t *testing.T) {
	idx := New()
	a := idx.RegisterDocument("a.txt")
	b := idx.RegisterDocument("b.txt")
	if a != 1 || b != 2 {
		t.Fatalf("got ids %d, %d; want 1, 2", a, b)
	}
	if idx.NumDocuments() != 3 { // sentinel + 2 real docs
		t.Fatalf("NumDocuments() = %d, want 3", idx.NumDocuments())
	}
}

func TestRegisterDocumentDoesNotDeduplicate(t *testing.T) {
	idx := New()
	a := idx.RegisterDocument("dup.txt")
	b := idx.RegisterDocument("dup.txt")
	if a == b {
		t.Fatal("expected distinct docids for duplicate names")
	}
}

func TestAddPostingKeepsSortedNoDuplicates(t *testing.T) {
	idx := New()
	idx.AddPosting("cat", 5)
	idx.AddPosting("cat", 1)
	idx.AddPosting("cat", 3)
	idx.AddPosting("cat", 1) // duplicate, idempotent
	list, ok := idx.Find("cat")
	if !ok {
		t.Fatal("expected term to be present")
	}
	want := PostingList{1, 3, 5}
	if len(list) != len(want) {
		t.Fatalf("got %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("got %v, want %v", list, want)
		}
	}
}

func TestAddPostingSmallerThanAllExisting(t *testing.T) {
	// Regression for the open question in spec.md §9: inserting a docid
	// smaller than every existing entry must not break sort order.
	idx := New()
	idx.AddPosting("t", 10)
	idx.AddPosting("t", 5)
	idx.AddPosting("t", 1)
	list, _ := idx.Find("t")
	want := PostingList{1, 5, 10}
	for i, id := range want {
		if list[i] != id {
			t.Fatalf("got %v, want %v", list, want)
		}
	}
}

func TestRemovePosting(t *testing.T) {
	idx := New()
	idx.AddPosting("t", 1)
	idx.AddPosting("t", 2)
	idx.RemovePosting("t", 1)
	list, _ := idx.Find("t")
	if len(list) != 1 || list[0] != 2 {
		t.Fatalf("got %v, want [2]", list)
	}
	idx.RemovePosting("t", 99) // no-op, absent
	idx.RemovePosting("absent-term", 1)
}

func TestFindAbsentTerm(t *testing.T) {
	idx := New()
	if _, ok := idx.Find("nope"); ok {
		t.Fatal("expected absent marker for unknown term")
	}
}

func TestDocumentNameSentinelAndUnknown(t *testing.T) {
	idx := New()
	if got := idx.DocumentName(0); got != "" {
		t.Fatalf("sentinel name = %q, want \"\"", got)
	}
	if got := idx.DocumentName(999); got != "" {
		t.Fatalf("unknown docid name = %q, want \"\"", got)
	}
	id := idx.RegisterDocument("a.txt")
	if got := idx.DocumentName(id); got != "a.txt" {
		t.Fatalf("got %q, want a.txt", got)
	}
}

func TestDocumentIDsSkipsSentinel(t *testing.T) {
	idx := New()
	idx.RegisterDocument("a")
	idx.RegisterDocument("b")
	ids := idx.DocumentIDs()
	want := []uint64{1, 2}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}
