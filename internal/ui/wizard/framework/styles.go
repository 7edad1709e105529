package framework

import (
	"charm.land/lipgloss/v2"

	"github.com/raphi011/brewlog/internal/ui/styles"
)

// Styles are functions rather than variables so they pick up the theme
// applied by styles.Init after package initialization.

// BorderStyle wraps the entire wizard (left border only)
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Primary).
		MarginTop(1).
		MarginBottom(1).
		PaddingLeft(2).
		PaddingRight(2)
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
}

func StepActiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
}

func StepCompletedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Normal)
}

func StepCheckStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Success)
}

func StepInactiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted)
}

// OptionSelectedStyle for the cursor-highlighted option
func OptionSelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
}

func OptionNormalStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Normal)
}

// OptionDescriptionStyle for the second line under an option, and for
// disabled options.
func OptionDescriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted).MarginTop(1)
}

// InfoStyle for the dynamic info line (e.g. "Ratio 1:16.7")
func InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Info).Italic(true)
}

func FilterStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
}

func MatchHighlightStyle() lipgloss.Style {
	return styles.HighlightStyle
}

// ErrorStyle for validation error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Error)
}
