// ABOUTME: Plain textarea-backed implementation of the JSON Surface contract.
// ABOUTME: The lightweight counterpart to RichEditorModel; both are interchangeable behind Surface.
package tui

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// EditorModel is the textarea-backed JSON surface.
type EditorModel struct {
	core surfaceCore
}

// NewEditorModel creates a plain JSON editor holding the given initial text.
// A non-positive debounce falls back to DefaultDebounce.
func NewEditorModel(initial string, debounce time.Duration) *EditorModel {
	return &EditorModel{core: newSurfaceCore(initial, debounce)}
}

func (m *EditorModel) Value() string                          { return m.core.Value() }
func (m *EditorModel) SetValue(text string) tea.Cmd           { return m.core.SetValue(text) }
func (m *EditorModel) ParsedValue() (json.RawMessage, bool)   { return m.core.ParsedValue() }
func (m *EditorModel) SetFormattedValue(v any) tea.Cmd        { return m.core.SetFormattedValue(v) }
func (m *EditorModel) Update(msg tea.Msg) tea.Cmd             { return m.core.Update(msg) }
func (m *EditorModel) Focus() tea.Cmd                         { return m.core.Focus() }
func (m *EditorModel) Blur()                                  { m.core.Blur() }
func (m *EditorModel) Focused() bool                          { return m.core.Focused() }
func (m *EditorModel) SetSize(w, h int)                       { m.core.SetSize(w, h) }
func (m *EditorModel) Valid() bool                            { return m.core.Valid() }
func (m *EditorModel) LastError() string                      { return m.core.LastError() }

// View renders the textarea with the validity footer.
func (m *EditorModel) View() string {
	return m.core.ta.View() + "\n" + m.core.statusLine()
}
