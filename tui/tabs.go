// ABOUTME: Exclusive-selection tab bar controlling which editor view is visible.
// ABOUTME: Emits TabChangedMsg only on real changes; writes of the current value are no-ops.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Well-known tab identifiers for the editor's two views.
const (
	TabList = "list"
	TabJSON = "json"
)

// Tab is one selectable entry in the tab bar.
type Tab struct {
	ID    string
	Label string
}

// TabsModel holds the single source of truth for which view is active.
type TabsModel struct {
	tabs   []Tab
	active string
}

// NewTabsModel creates a tab bar. If initial is empty or names no known tab,
// the first tab is active; with no tabs at all, TabList is the default.
func NewTabsModel(tabs []Tab, initial string) TabsModel {
	m := TabsModel{tabs: tabs, active: TabList}
	if len(tabs) > 0 {
		m.active = tabs[0].ID
	}
	for _, t := range tabs {
		if t.ID == initial {
			m.active = initial
			break
		}
	}
	return m
}

// ActiveTab returns the currently active tab ID.
func (m TabsModel) ActiveTab() string {
	return m.active
}

// SetActive activates the given tab. Writes of the already-active value are
// no-ops and emit nothing; unknown IDs are likewise ignored.
func (m *TabsModel) SetActive(id string) tea.Cmd {
	if id == m.active {
		return nil
	}
	known := false
	for _, t := range m.tabs {
		if t.ID == id {
			known = true
			break
		}
	}
	if !known {
		return nil
	}

	previous := m.active
	m.active = id
	return func() tea.Msg {
		return TabChangedMsg{ActiveTab: id, PreviousTab: previous}
	}
}

// Next activates the tab after the current one, wrapping around.
func (m *TabsModel) Next() tea.Cmd {
	if len(m.tabs) < 2 {
		return nil
	}
	for i, t := range m.tabs {
		if t.ID == m.active {
			return m.SetActive(m.tabs[(i+1)%len(m.tabs)].ID)
		}
	}
	return m.SetActive(m.tabs[0].ID)
}

// View renders the tab bar with the active tab highlighted.
func (m TabsModel) View() string {
	var b strings.Builder
	for i, t := range m.tabs {
		if i > 0 {
			b.WriteString(" ")
		}
		if t.ID == m.active {
			b.WriteString(ActiveTabStyle.Render(t.Label))
		} else {
			b.WriteString(TabStyle.Render(t.Label))
		}
	}
	return b.String()
}
