// ABOUTME: Tests for the tab bar: exclusive selection, no-op writes, wraparound, and defaulting.
// ABOUTME: Verifies TabChangedMsg fires only on real changes with the correct previous value.
package tui

import (
	"strings"
	"testing"
)

func editorTabs() []Tab {
	return []Tab{
		{ID: TabList, Label: "List View"},
		{ID: TabJSON, Label: "JSON View"},
	}
}

func TestTabs_NewTabsModel_DefaultsToFirstTab(t *testing.T) {
	m := NewTabsModel(editorTabs(), "")
	if m.ActiveTab() != TabList {
		t.Errorf("ActiveTab = %q, want %q", m.ActiveTab(), TabList)
	}
}

func TestTabs_NewTabsModel_HonorsInitial(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabJSON)
	if m.ActiveTab() != TabJSON {
		t.Errorf("ActiveTab = %q, want %q", m.ActiveTab(), TabJSON)
	}
}

func TestTabs_NewTabsModel_UnknownInitialFallsBack(t *testing.T) {
	m := NewTabsModel(editorTabs(), "bogus")
	if m.ActiveTab() != TabList {
		t.Errorf("ActiveTab = %q, want %q", m.ActiveTab(), TabList)
	}
}

func TestTabs_SetActive_EmitsChangeWithPrevious(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabList)
	cmd := m.SetActive(TabJSON)
	if cmd == nil {
		t.Fatal("SetActive returned nil for a real change")
	}
	msg, ok := cmd().(TabChangedMsg)
	if !ok {
		t.Fatalf("expected TabChangedMsg, got %T", cmd())
	}
	if msg.ActiveTab != TabJSON || msg.PreviousTab != TabList {
		t.Errorf("got %+v, want {json list}", msg)
	}
	if m.ActiveTab() != TabJSON {
		t.Errorf("ActiveTab = %q after SetActive", m.ActiveTab())
	}
}

func TestTabs_SetActive_NoOpOnSameValue(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabList)
	if cmd := m.SetActive(TabList); cmd != nil {
		t.Error("writing the current value must not emit")
	}
}

func TestTabs_SetActive_IgnoresUnknownID(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabList)
	if cmd := m.SetActive("bogus"); cmd != nil {
		t.Error("unknown tab id must not emit")
	}
	if m.ActiveTab() != TabList {
		t.Error("unknown tab id changed the active tab")
	}
}

func TestTabs_Next_WrapsAround(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabList)

	_ = m.Next()
	if m.ActiveTab() != TabJSON {
		t.Fatalf("after first Next: %q", m.ActiveTab())
	}
	_ = m.Next()
	if m.ActiveTab() != TabList {
		t.Fatalf("after second Next: %q", m.ActiveTab())
	}
}

func TestTabs_View_ShowsAllLabels(t *testing.T) {
	m := NewTabsModel(editorTabs(), TabList)
	view := m.View()
	if !strings.Contains(view, "List View") || !strings.Contains(view, "JSON View") {
		t.Errorf("view missing tab labels: %q", view)
	}
}
