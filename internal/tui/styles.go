package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorBrand     = lipgloss.Color("#C8102E")
	ColorHeader    = lipgloss.Color("15")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("250")
	ColorValue     = lipgloss.Color("15")
	ColorInput     = lipgloss.Color("196")
	ColorMuted     = lipgloss.Color("243")
	ColorHighlight = lipgloss.Color("229")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("203")
	ColorOK        = lipgloss.Color("42")
)

// Icons.
const (
	IconArrowRight = "→"
	IconWarning    = "⚠"
)

// Shared styles.
//
//nolint:gochecknoglobals // Immutable lipgloss styles shared by all views.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Background(ColorBrand).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	FocusedLabelStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	UnitStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Background(ColorBrand).
			Padding(0, 3)

	ButtonFocusedStyle = ButtonStyle.
				Underline(true).
				Background(ColorInput)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(lipgloss.Color("236")).
				Padding(0, 3)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Foreground(ColorWarning).
			Bold(true).
			Padding(1, 2)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
