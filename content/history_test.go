// ABOUTME: Tests for the SQLite revision log: record, newest-first listing, and point lookups.
// ABOUTME: Uses a temp-dir database per test; the cgo sqlite driver needs no external service.
package content

import (
	"path/filepath"
	"testing"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistory_Record_ReturnsID(t *testing.T) {
	h := newTestHistory(t)
	id, err := h.Record("homepage", DefaultHomepage())
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Error("empty revision id")
	}
}

func TestHistory_List_NewestFirst(t *testing.T) {
	h := newTestHistory(t)

	first, err := h.Record("homepage", block.Collection{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Record("homepage", DefaultHomepage())
	if err != nil {
		t.Fatal(err)
	}

	revisions, err := h.List("homepage", 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("len = %d, want 2", len(revisions))
	}
	if revisions[0].ID != second || revisions[1].ID != first {
		t.Errorf("order = [%s, %s], want newest first", revisions[0].ID, revisions[1].ID)
	}
}

func TestHistory_List_FiltersByRoute(t *testing.T) {
	h := newTestHistory(t)
	if _, err := h.Record("homepage", block.Collection{}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Record("foo", block.Collection{}); err != nil {
		t.Fatal(err)
	}

	revisions, err := h.List("foo", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(revisions) != 1 || revisions[0].Route != "foo" {
		t.Errorf("revisions = %+v", revisions)
	}
}

func TestHistory_List_RespectsLimit(t *testing.T) {
	h := newTestHistory(t)
	for i := 0; i < 5; i++ {
		if _, err := h.Record("homepage", block.Collection{}); err != nil {
			t.Fatal(err)
		}
	}
	revisions, err := h.List("homepage", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(revisions) != 3 {
		t.Errorf("len = %d, want 3", len(revisions))
	}
}

func TestHistory_Get_RoundTripsPayload(t *testing.T) {
	h := newTestHistory(t)
	c := DefaultHomepage()
	id, err := h.Record("homepage", c)
	if err != nil {
		t.Fatal(err)
	}

	rev, ok, err := h.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("revision not found")
	}
	back, err := block.ParseCollection([]byte(rev.Payload))
	if err != nil {
		t.Fatalf("stored payload unparsable: %v", err)
	}
	if !back.Equal(c) {
		t.Error("stored payload differs from published collection")
	}
	if rev.PublishedAt.IsZero() {
		t.Error("revision missing publish time")
	}
}

func TestHistory_Get_MissingID(t *testing.T) {
	h := newTestHistory(t)
	_, ok, err := h.Get("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("found a revision that was never recorded")
	}
}
