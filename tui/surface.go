// ABOUTME: The JSON surface contract and the shared debounced-validation core behind both editors.
// ABOUTME: Edits coalesce through a 500 ms generation-tokened debounce; only the final state emits an event.
package tui

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period after the last edit before the
// authoritative validation pass runs.
const DefaultDebounce = 500 * time.Millisecond

// Surface is the behavioral contract shared by the plain and rich JSON
// editors, which are interchangeable at composition time.
type Surface interface {
	// Value returns the literal editor contents, valid or not.
	Value() string
	// SetValue replaces the text and validates synchronously, without
	// arming the debounce. The returned command emits the validation
	// result message.
	SetValue(text string) tea.Cmd
	// ParsedValue is a best-effort parse of the current text. It reports
	// false on failure and never panics.
	ParsedValue() (json.RawMessage, bool)
	// SetFormattedValue serializes v with stable 2-space indentation and
	// applies it via SetValue. Serialization failures surface as a
	// JSONFormatErrorMsg and leave the text untouched.
	SetFormattedValue(v any) tea.Cmd
	// Update processes input and timer messages, emitting ContentChangedMsg
	// per edit and arming the debounced validation.
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	// Blur drops focus and cancels any pending debounce. Idempotent.
	Blur()
	Focused() bool
	SetSize(w, h int)
	// Valid reports the outcome of the most recent validation pass.
	Valid() bool
	// LastError returns the parser message from the most recent failed
	// validation pass, or "" when the last pass succeeded.
	LastError() string
}

// surfaceID hands out instance identifiers so debounce ticks can be routed
// back to the surface that armed them. The TUI runs on a single event loop,
// so a plain counter is safe.
var surfaceSeq int

func nextSurfaceID() int {
	surfaceSeq++
	return surfaceSeq
}

// surfaceCore is the editing state machine shared by both Surface
// implementations: raw text in a textarea, a generation-tokened debounce, and
// the last validation outcome. At most one of lastParse/lastErr is current.
type surfaceCore struct {
	id       int
	ta       textarea.Model
	gen      int
	debounce time.Duration

	valid     bool
	lastParse json.RawMessage
	lastErr   string
}

func newSurfaceCore(initial string, debounce time.Duration) surfaceCore {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ta := textarea.New()
	ta.Placeholder = `{"blocks":[]}`
	ta.CharLimit = 0
	ta.SetValue(initial)

	c := surfaceCore{id: nextSurfaceID(), ta: ta, debounce: debounce}
	c.revalidate()
	return c
}

// Value returns the literal editor contents.
func (c *surfaceCore) Value() string {
	return c.ta.Value()
}

// SetValue replaces the text and validates synchronously. The generation
// bump cancels any debounce already in flight, so a programmatic write never
// races a pending keystroke validation.
func (c *surfaceCore) SetValue(text string) tea.Cmd {
	c.ta.SetValue(text)
	c.gen++
	return c.emitValidation()
}

// ParsedValue parses the current text fresh, independent of the cached
// validation state.
func (c *surfaceCore) ParsedValue() (json.RawMessage, bool) {
	text := []byte(c.ta.Value())
	if !json.Valid(text) {
		return nil, false
	}
	raw := make(json.RawMessage, len(text))
	copy(raw, text)
	return raw, true
}

// SetFormattedValue pretty-prints v and applies it via SetValue.
func (c *surfaceCore) SetFormattedValue(v any) tea.Cmd {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return func() tea.Msg {
			return JSONFormatErrorMsg{Err: err}
		}
	}
	return c.SetValue(string(data))
}

// Update feeds input to the textarea. A content change emits an immediate
// ContentChangedMsg and re-arms the debounce; the authoritative validation
// only runs when the quiet period elapses without another edit.
func (c *surfaceCore) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(debounceTickMsg); ok {
		return c.handleDebounce(tick)
	}

	before := c.ta.Value()
	var taCmd tea.Cmd
	c.ta, taCmd = c.ta.Update(msg)
	after := c.ta.Value()

	if after == before {
		return taCmd
	}

	c.gen++
	gen := c.gen
	contentCmd := func() tea.Msg {
		return ContentChangedMsg{Value: after, IsValid: json.Valid([]byte(after))}
	}
	debounceCmd := tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return debounceTickMsg{surfaceID: c.id, gen: gen}
	})
	return tea.Batch(taCmd, contentCmd, debounceCmd)
}

// handleDebounce runs the validation pass when the tick is current. Ticks
// for other surfaces or superseded generations are dropped, which is what
// coalesces N rapid edits into exactly one event.
func (c *surfaceCore) handleDebounce(tick debounceTickMsg) tea.Cmd {
	if tick.surfaceID != c.id || tick.gen != c.gen {
		return nil
	}
	return c.emitValidation()
}

// revalidate runs the parse and records the outcome without emitting.
func (c *surfaceCore) revalidate() {
	text := c.ta.Value()
	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		c.valid = false
		c.lastParse = nil
		c.lastErr = err.Error()
		return
	}
	c.valid = true
	c.lastParse = parsed
	c.lastErr = ""
}

// emitValidation revalidates and returns a command carrying the result.
func (c *surfaceCore) emitValidation() tea.Cmd {
	c.revalidate()
	value := c.ta.Value()
	if c.valid {
		parsed := c.lastParse
		return func() tea.Msg {
			return JSONValidMsg{Value: value, Parsed: parsed}
		}
	}
	errMsg := c.lastErr
	return func() tea.Msg {
		return JSONInvalidMsg{Value: value, Error: errMsg}
	}
}

func (c *surfaceCore) Focus() tea.Cmd {
	return c.ta.Focus()
}

// Blur drops focus and invalidates any pending debounce tick. Calling it on
// an already-blurred surface is a no-op.
func (c *surfaceCore) Blur() {
	c.ta.Blur()
	c.gen++
}

func (c *surfaceCore) Focused() bool {
	return c.ta.Focused()
}

func (c *surfaceCore) SetSize(w, h int) {
	if w > 0 {
		c.ta.SetWidth(w)
	}
	if h > 0 {
		c.ta.SetHeight(h)
	}
}

func (c *surfaceCore) Valid() bool {
	return c.valid
}

func (c *surfaceCore) LastError() string {
	return c.lastErr
}

// statusLine renders the shared validity footer under an editor.
func (c *surfaceCore) statusLine() string {
	if c.valid {
		return ValidStyle.Render("✓ valid JSON")
	}
	return InvalidStyle.Render("✗ " + c.lastErr)
}
