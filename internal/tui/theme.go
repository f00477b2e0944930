package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the screen.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	FocusLabel  lipgloss.Style
	Error       lipgloss.Style
	Total       lipgloss.Style
	FormBox     lipgloss.Style
	SummaryBox  lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
	ErrorColour lipgloss.Color
}

var DefaultTheme = Theme{
	Primary:     lipgloss.Color("#007bff"),
	Border:      lipgloss.Color("#404040"),
	ErrorColour: lipgloss.Color("#dc2626"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a3a3a3")),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#404040")),
	Cell: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e5e5e5")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#007bff")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),
	Label: lipgloss.NewStyle().
		Width(13).
		Foreground(lipgloss.Color("#a3a3a3")),
	FocusLabel: lipgloss.NewStyle().
		Width(13).
		Bold(true).
		Foreground(lipgloss.Color("#007bff")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dc2626")).
		Background(lipgloss.Color("#fee2e2")).
		Padding(0, 1),
	Total: lipgloss.NewStyle().
		Bold(true),
	FormBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 2).
		MarginBottom(1),
	SummaryBox: lipgloss.NewStyle().
		MarginTop(1),
}
