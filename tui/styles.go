// ABOUTME: Lipgloss style constants for the editor layout, tabs, banner kinds, and block list.
// ABOUTME: Provides styleForKind to map banner kinds to their display styles.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	// Banner kinds
	SuccessBannerStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("42")).
				Foreground(lipgloss.Color("232")).
				Padding(0, 1)
	ErrorBannerStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("196")).
				Foreground(lipgloss.Color("231")).
				Padding(0, 1)
	WarningBannerStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("214")).
				Foreground(lipgloss.Color("232")).
				Padding(0, 1)
	InfoBannerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("231")).
			Padding(0, 1)

	// Block list
	BlockTypeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))
	BlockPropsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	// Surface status line
	ValidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
	InvalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// Help / footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// styleForKind returns the banner style for a message kind.
func styleForKind(kind MessageKind) lipgloss.Style {
	switch kind {
	case KindSuccess:
		return SuccessBannerStyle
	case KindError:
		return ErrorBannerStyle
	case KindWarning:
		return WarningBannerStyle
	case KindInfo:
		return InfoBannerStyle
	default:
		return InfoBannerStyle
	}
}
