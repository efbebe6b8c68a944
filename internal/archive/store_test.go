package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tokamak-network/reportgen/internal/activity"
)

func fileStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "archive.json"))
}

func TestStore_PutAssignsID(t *testing.T) {
	s := fileStore(t)
	id := s.Put(Entry{Title: "Report A", Markdown: "# A"})
	if id == "" {
		t.Fatal("empty id")
	}
	got, ok := s.Get(id)
	if !ok {
		t.Fatalf("entry %s not found", id)
	}
	if got.Markdown != "# A" {
		t.Fatalf("markdown = %q", got.Markdown)
	}
	if got.Scope != "biweekly" || got.ReportType != "technical" || got.Format != "structured" {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := fileStore(t)
	if _, ok := s.Get("rpt-nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestStore_ListNewestFirstWithoutBody(t *testing.T) {
	s := fileStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.Put(Entry{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Title:     "r",
			Markdown:  "body",
			Totals:    activity.Totals{Commits: i},
		})
	}

	got := s.List(0)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Fatalf("order = %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	for _, e := range got {
		if e.Markdown != "" {
			t.Fatalf("listing carries body: %+v", e)
		}
	}

	if got := s.List(2); len(got) != 2 {
		t.Fatalf("limit ignored: %d", len(got))
	}
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	id := New(path).Put(Entry{Title: "persisted", Markdown: "body"})

	reopened := New(path)
	got, ok := reopened.Get(id)
	if !ok || got.Title != "persisted" {
		t.Fatalf("reload failed: ok=%v entry=%+v", ok, got)
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store
	if id := s.Put(Entry{}); id != "" {
		t.Fatalf("id = %q", id)
	}
	if _, ok := s.Get("x"); ok {
		t.Fatal("nil store returned entry")
	}
	if s.List(5) != nil {
		t.Fatal("nil store returned list")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
