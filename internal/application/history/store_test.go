package history

import (
	"fmt"
	"testing"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

func result(name string) *analysis.Result {
	return &analysis.Result{FileName: name, Verdict: analysis.VerdictReal}
}

func names(list []*analysis.Result) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.FileName
	}
	return out
}

func TestStore_BoundedNewestFirst(t *testing.T) {
	s := New()
	for i := 1; i <= 8; i++ {
		s.InsertFront(result(fmt.Sprintf("file%d.jpg", i)))
		if s.Size() > Capacity {
			t.Fatalf("size %d exceeds capacity after %d inserts", s.Size(), i)
		}
	}

	got := names(s.List())
	want := []string{"file8.jpg", "file7.jpg", "file6.jpg", "file5.jpg", "file4.jpg"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestStore_RemoveAtShiftsLaterEntries(t *testing.T) {
	s := New()
	// newest first: c.jpg, b.jpg, a.jpg
	s.InsertFront(result("a.jpg"))
	s.InsertFront(result("b.jpg"))
	s.InsertFront(result("c.jpg"))

	s.RemoveAt(1)

	got := names(s.List())
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0] != "c.jpg" || got[1] != "a.jpg" {
		t.Errorf("expected [c.jpg a.jpg], got %v", got)
	}
	for _, n := range got {
		if n == "b.jpg" {
			t.Error("removed entry still present")
		}
	}
}

func TestStore_RemoveAtOutOfRangeIsNoop(t *testing.T) {
	s := New()
	s.InsertFront(result("a.jpg"))
	s.InsertFront(result("b.jpg"))

	before := names(s.List())
	s.RemoveAt(s.Size())
	s.RemoveAt(-1)
	s.RemoveAt(99)
	after := names(s.List())

	if len(before) != len(after) {
		t.Fatalf("out-of-range removal changed size: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("index %d changed: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestStore_SequentialRemovalsUseRecomputedIndices(t *testing.T) {
	s := New()
	s.InsertFront(result("a.jpg"))
	s.InsertFront(result("b.jpg"))
	s.InsertFront(result("c.jpg"))
	s.InsertFront(result("d.jpg"))

	// remove "c.jpg" (index 1), then "a.jpg" (now index 2, was 3)
	s.RemoveAt(1)
	s.RemoveAt(2)

	got := names(s.List())
	if len(got) != 2 || got[0] != "d.jpg" || got[1] != "b.jpg" {
		t.Errorf("expected [d.jpg b.jpg], got %v", got)
	}
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.InsertFront(result("a.jpg"))
	s.Clear()
	if s.Size() != 0 {
		t.Errorf("expected empty store after Clear, size=%d", s.Size())
	}
	if len(s.List()) != 0 {
		t.Error("List returned entries after Clear")
	}
}
