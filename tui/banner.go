// ABOUTME: Transient status banner with generation-tokened auto-dismiss timing.
// ABOUTME: Re-showing while visible restarts the timer; stale timers never dismiss a newer message.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MessageKind classifies a banner message.
type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
	KindWarning MessageKind = "warning"
	KindInfo    MessageKind = "info"
)

// DefaultBannerDuration is how long a banner stays visible without further calls.
const DefaultBannerDuration = 5 * time.Second

// BannerModel is a transient notification bar. At most one auto-dismiss
// timer is live: every ShowMessage bumps the generation, and ticks carrying
// an older generation are discarded.
type BannerModel struct {
	message  string
	kind     MessageKind
	visible  bool
	gen      int
	duration time.Duration
	width    int
}

// NewBannerModel creates a hidden banner. A non-positive duration falls back
// to DefaultBannerDuration.
func NewBannerModel(duration time.Duration) BannerModel {
	if duration <= 0 {
		duration = DefaultBannerDuration
	}
	return BannerModel{duration: duration}
}

// ShowMessage makes the banner visible with the given text and kind and arms
// a fresh auto-dismiss timer, cancelling any timer already in flight.
func (m *BannerModel) ShowMessage(text string, kind MessageKind) tea.Cmd {
	m.message = text
	m.kind = kind
	m.visible = true
	m.gen++

	gen := m.gen
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return bannerTickMsg{gen: gen}
	})
}

// Dismiss hides the banner immediately. Safe to call when already hidden, in
// which case no event is emitted.
func (m *BannerModel) Dismiss() tea.Cmd {
	if !m.visible {
		return nil
	}
	m.visible = false
	m.gen++ // invalidate any pending timer
	text := m.message
	return func() tea.Msg {
		return MessageDismissedMsg{Text: text}
	}
}

// Update handles the auto-dismiss timer. Ticks from superseded generations
// are ignored so a restarted banner never gets cut short.
func (m *BannerModel) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(bannerTickMsg)
	if !ok {
		return nil
	}
	if tick.gen != m.gen || !m.visible {
		return nil
	}
	m.visible = false
	text := m.message
	return func() tea.Msg {
		return MessageDismissedMsg{Text: text}
	}
}

// Visible reports whether the banner is currently shown.
func (m BannerModel) Visible() bool {
	return m.visible
}

// Message returns the current banner text.
func (m BannerModel) Message() string {
	return m.message
}

// Kind returns the current banner kind.
func (m BannerModel) Kind() MessageKind {
	return m.kind
}

// Duration returns the configured auto-dismiss duration.
func (m BannerModel) Duration() time.Duration {
	return m.duration
}

// SetWidth sets the render width.
func (m *BannerModel) SetWidth(w int) {
	m.width = w
}

// View renders the banner, or nothing when hidden. Rendering is a pure
// function of the current message and kind, so repeated renders of the same
// state are identical.
func (m BannerModel) View() string {
	if !m.visible {
		return ""
	}
	style := styleForKind(m.kind)
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(m.message)
}
