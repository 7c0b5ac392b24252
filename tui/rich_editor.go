// ABOUTME: Syntax-highlighted implementation of the JSON Surface contract, backed by chroma.
// ABOUTME: Highlighter setup happens once process-wide; on failure the model degrades to the plain path.
package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// highlighter is the process-wide chroma pipeline. Initialization is guarded
// by a sync.Once so concurrent surface mounts share one load instead of each
// starting their own; the per-instance mount itself is cheap.
var (
	highlighterOnce sync.Once
	highlighterErr  error
	jsonLexer       chroma.Lexer
	termFormatter   chroma.Formatter
	termStyle       *chroma.Style
)

func loadHighlighter() error {
	highlighterOnce.Do(func() {
		jsonLexer = lexers.Get("json")
		if jsonLexer == nil {
			highlighterErr = fmt.Errorf("no JSON lexer registered")
			return
		}
		jsonLexer = chroma.Coalesce(jsonLexer)

		termFormatter = formatters.Get("terminal256")
		if termFormatter == nil {
			highlighterErr = fmt.Errorf("no terminal256 formatter registered")
			return
		}

		termStyle = styles.Get("monokai")
		if termStyle == nil {
			termStyle = styles.Fallback
		}
	})
	return highlighterErr
}

// RichEditorModel is the highlighted JSON surface. While focused it shows the
// editable textarea; blurred, it shows the same text through the
// highlighter. If the highlighter failed to load it behaves exactly like the
// plain editor, so losing rich display never loses editing capability.
type RichEditorModel struct {
	core     surfaceCore
	fallback bool
	loadErr  error
	reported bool
}

// NewRichEditorModel creates a highlighted JSON editor holding the given
// initial text.
func NewRichEditorModel(initial string, debounce time.Duration) *RichEditorModel {
	m := &RichEditorModel{core: newSurfaceCore(initial, debounce)}
	if err := loadHighlighter(); err != nil {
		m.fallback = true
		m.loadErr = err
	}
	return m
}

// Init reports a highlighter load failure exactly once.
func (m *RichEditorModel) Init() tea.Cmd {
	if !m.fallback || m.reported {
		return nil
	}
	m.reported = true
	err := m.loadErr
	return func() tea.Msg {
		return EditorLoadErrorMsg{Err: err}
	}
}

// Fallback reports whether the plain degraded path is in use.
func (m *RichEditorModel) Fallback() bool {
	return m.fallback
}

func (m *RichEditorModel) Value() string                        { return m.core.Value() }
func (m *RichEditorModel) SetValue(text string) tea.Cmd         { return m.core.SetValue(text) }
func (m *RichEditorModel) SetFormattedValue(v any) tea.Cmd      { return m.core.SetFormattedValue(v) }
func (m *RichEditorModel) Update(msg tea.Msg) tea.Cmd           { return m.core.Update(msg) }
func (m *RichEditorModel) Focus() tea.Cmd                       { return m.core.Focus() }
func (m *RichEditorModel) Blur()                                { m.core.Blur() }
func (m *RichEditorModel) Focused() bool                        { return m.core.Focused() }
func (m *RichEditorModel) SetSize(w, h int)                     { m.core.SetSize(w, h) }
func (m *RichEditorModel) Valid() bool                          { return m.core.Valid() }
func (m *RichEditorModel) LastError() string                    { return m.core.LastError() }

// ParsedValue is a best-effort parse of the current text.
func (m *RichEditorModel) ParsedValue() (json.RawMessage, bool) {
	return m.core.ParsedValue()
}

// View renders the editable textarea while focused and the highlighted text
// otherwise. Highlighting failures at render time fall back to the raw text.
func (m *RichEditorModel) View() string {
	if m.fallback || m.core.Focused() {
		return m.core.ta.View() + "\n" + m.core.statusLine()
	}
	return m.highlighted() + "\n" + m.core.statusLine()
}

func (m *RichEditorModel) highlighted() string {
	text := m.core.Value()
	it, err := jsonLexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var b strings.Builder
	if err := termFormatter.Format(&b, termStyle, it); err != nil {
		return text
	}
	return b.String()
}
