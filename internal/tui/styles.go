// Package tui provides an interactive terminal UI for tenpai.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/tenpai/internal/render"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.ColorPrimary).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(render.ColorSecondary)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorBorder).
			Padding(0, 1)

	InputBoxActiveStyle = InputBoxStyle.
				BorderForeground(render.ColorAccent)

	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess).
			Bold(true)

	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(render.ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(render.ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(render.ColorAccent).
			Bold(true).
			Italic(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess).
			Bold(true)

	ContentStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
