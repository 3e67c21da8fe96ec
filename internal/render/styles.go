package render

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, faults
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - scenario headers
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - tiles
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text, empty sets
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - points
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ScenarioStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TileStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PointsStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
