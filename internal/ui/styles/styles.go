// Package styles provides shared lipgloss styles for UI components.
//
// Colors come from the active [Theme]; call [Init] once after loading the
// config. Every other ui package reads the variables below, so a theme
// change is picked up everywhere.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme.
var (
	Primary color.Color = DefaultTheme.Primary
	Accent  color.Color = DefaultTheme.Accent
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Muted   color.Color = DefaultTheme.Muted
	Normal  color.Color = DefaultTheme.Normal
	Info    color.Color = DefaultTheme.Info
	Warning color.Color = DefaultTheme.Warning
)

// Common styles
var (
	Bold   = lipgloss.NewStyle().Bold(true)
	Italic = lipgloss.NewStyle().Italic(true)

	PrimaryStyle lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	NormalStyle  lipgloss.Style
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style

	// TitleStyle renders section headings such as a coffee name.
	TitleStyle lipgloss.Style

	// LabelStyle renders the left column of key/value detail views.
	LabelStyle lipgloss.Style

	// Card frames a detail view.
	Card lipgloss.Style

	// HighlightStyle marks fuzzy-matched characters.
	HighlightStyle lipgloss.Style
)

func init() {
	applyTheme(DefaultTheme)
}
