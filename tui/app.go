// ABOUTME: Top-level Bubble Tea AppModel wiring the tab bar, block list, JSON surface, and banner.
// ABOUTME: Owns the bidirectional list/JSON synchronization protocol and keeps it free of feedback loops.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

// Publisher persists a published collection for a route. The web/content
// layers provide the real implementation; the TUI only produces the data.
type Publisher interface {
	Publish(route string, c block.Collection) error
}

// AppModel composes the editor components and routes messages between them.
// Components never reference each other; every cross-component effect flows
// through a typed message handled here.
type AppModel struct {
	tabs    TabsModel
	list    BlockListModel
	surface Surface
	banner  BannerModel

	publisher Publisher
	route     string

	width  int
	height int
}

// NewAppModel creates the editor wired to the given surface implementation.
// bannerDuration <= 0 falls back to the default.
func NewAppModel(route string, initial block.Collection, surface Surface, publisher Publisher, bannerDuration time.Duration) AppModel {
	m := AppModel{
		tabs: NewTabsModel([]Tab{
			{ID: TabList, Label: "List View"},
			{ID: TabJSON, Label: "JSON View"},
		}, TabList),
		list:      NewBlockListModel(initial),
		surface:   surface,
		banner:    NewBannerModel(bannerDuration),
		publisher: publisher,
		route:     route,
	}
	m.list.SetFocused(true)
	return m
}

// Init implements tea.Model. Seeds the surface with the list's serialized
// state and lets surfaces with deferred setup (the rich editor's highlighter
// report) run it.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.surface.SetFormattedValue(m.list.BlocksData())}
	if init, ok := m.surface.(interface{ Init() tea.Cmd }); ok {
		cmds = append(cmds, init.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.banner.SetWidth(msg.Width)
		m.list.SetSize(msg.Width, msg.Height-6)
		m.surface.SetSize(msg.Width-2, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TabChangedMsg:
		return m.handleTabChanged(msg)

	case BlocksChangedMsg:
		return m, m.syncListToSurface(msg.Blocks)

	case JSONValidMsg:
		return m, m.syncSurfaceToList(msg)

	case JSONInvalidMsg:
		return m, m.banner.ShowMessage("Invalid JSON: "+msg.Error, KindError)

	case BlocksErrorMsg:
		return m, m.banner.ShowMessage(fmt.Sprintf("Could not apply blocks data: %v", msg.Cause), KindError)

	case EditorLoadErrorMsg:
		return m, m.banner.ShowMessage("Rich editor unavailable, using plain editor", KindWarning)

	case JSONFormatErrorMsg:
		return m, m.banner.ShowMessage(fmt.Sprintf("Could not format value: %v", msg.Err), KindError)

	case PublishResultMsg:
		if msg.Err != nil {
			return m, m.banner.ShowMessage(fmt.Sprintf("Failed to publish %s: %v", msg.Route, msg.Err), KindError)
		}
		return m, m.banner.ShowMessage("✓ Published "+msg.Route, KindSuccess)

	case ContentChangedMsg:
		// Typing feedback only; the authoritative result arrives after the
		// debounce as JSONValidMsg or JSONInvalidMsg.
		return m, nil

	case MessageDismissedMsg:
		return m, nil

	case bannerTickMsg:
		return m, m.banner.Update(msg)

	case debounceTickMsg:
		return m, m.surface.Update(msg)
	}

	return m, nil
}

// handleKey processes global shortcuts and routes the rest to the active view.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.tabs.Next()
	case "ctrl+s":
		return m, m.publish()
	case "esc":
		if m.banner.Visible() {
			return m, m.banner.Dismiss()
		}
	case "q":
		// Only quit from the list view; in the JSON view 'q' is text.
		if m.tabs.ActiveTab() == TabList {
			return m, tea.Quit
		}
	}

	switch m.tabs.ActiveTab() {
	case TabList:
		return m, m.list.Update(msg)
	case TabJSON:
		return m, m.surface.Update(msg)
	}
	return m, nil
}

// handleTabChanged moves focus and re-syncs the newly visible view, matching
// the original editor's on-switch synchronization.
func (m AppModel) handleTabChanged(msg TabChangedMsg) (tea.Model, tea.Cmd) {
	switch msg.ActiveTab {
	case TabJSON:
		m.list.SetFocused(false)
		return m, tea.Batch(m.surface.Focus(), m.syncListToSurface(m.list.BlocksData()))
	case TabList:
		m.surface.Blur()
		m.list.SetFocused(true)
		if !m.surface.Valid() {
			return m, m.banner.ShowMessage("Invalid JSON, cannot sync to list view", KindError)
		}
		if parsed, ok := m.surface.ParsedValue(); ok {
			return m, m.syncSurfaceToList(JSONValidMsg{Value: m.surface.Value(), Parsed: parsed})
		}
	}
	return m, nil
}

// syncListToSurface pushes the collection into the JSON surface, but only
// when the surface's current parse differs structurally. Skipping no-op
// writes is what keeps an echoing json-valid from ping-ponging and avoids
// clobbering the cursor while the user types.
func (m *AppModel) syncListToSurface(c block.Collection) tea.Cmd {
	if parsed, ok := m.surface.ParsedValue(); ok {
		if current, err := block.ParseCollection(parsed); err == nil && current.Equal(c) {
			return nil
		}
	}
	return m.surface.SetFormattedValue(c)
}

// syncSurfaceToList applies an authoritative valid parse to the block list,
// but only when it differs structurally from the list's current data.
func (m *AppModel) syncSurfaceToList(msg JSONValidMsg) tea.Cmd {
	c, err := block.ParseCollection(msg.Parsed)
	if err != nil {
		// Syntactically valid JSON with the wrong shape: hand it to the
		// list's external-JSON path, which resets safely and reports.
		return m.list.SetBlocksJSON(msg.Value)
	}
	if m.list.BlocksData().Equal(c) {
		return nil
	}
	return m.list.SetBlocksData(c)
}

// publish validates the active view's data and hands it to the publisher.
func (m *AppModel) publish() tea.Cmd {
	if m.publisher == nil {
		return m.banner.ShowMessage("No publish destination configured", KindWarning)
	}

	var c block.Collection
	if m.tabs.ActiveTab() == TabJSON {
		if !m.surface.Valid() {
			return m.banner.ShowMessage("Invalid JSON: "+m.surface.LastError(), KindError)
		}
		parsed, ok := m.surface.ParsedValue()
		if !ok {
			return m.banner.ShowMessage("Invalid JSON: "+m.surface.LastError(), KindError)
		}
		var err error
		c, err = block.ParseCollection(parsed)
		if err != nil {
			return m.banner.ShowMessage(fmt.Sprintf("Invalid blocks data: %v", err), KindError)
		}
	} else {
		c = m.list.BlocksData()
	}

	route := m.route
	publisher := m.publisher
	return func() tea.Msg {
		return PublishResultMsg{Route: route, Err: publisher.Publish(route, c)}
	}
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	title := TitleStyle.Render("Edit " + m.route + " Content")

	var body string
	switch m.tabs.ActiveTab() {
	case TabJSON:
		body = m.surface.View()
	default:
		body = m.list.View()
	}

	help := HelpStyle.Render("tab: switch view • ctrl+s: publish • ctrl+c: quit")

	sections := []string{title, m.tabs.View(), body}
	if banner := m.banner.View(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
