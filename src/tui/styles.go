package tui

import (
	"github.com/charmbracelet/lipgloss"

	"lintwell/src/pylint"
)

// StyleConfig holds all customizable style colors for the triage UI.
type StyleConfig struct {
	Primary        lipgloss.Color
	DarkBackground lipgloss.Color
	CardBackground lipgloss.Color
	TextPrimary    lipgloss.Color
	TextSecondary  lipgloss.Color
	BorderColor    lipgloss.Color
	SelectedColor  lipgloss.Color

	// Severity accent colors
	FatalColor      lipgloss.Color
	ErrorColor      lipgloss.Color
	WarningColor    lipgloss.Color
	RefactorColor   lipgloss.Color
	ConventionColor lipgloss.Color
}

// DefaultStyles returns the default color palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Primary:        lipgloss.Color("#8AB4F8"),
		DarkBackground: lipgloss.Color("#1E1E1E"),
		CardBackground: lipgloss.Color("#2D2D2D"),
		TextPrimary:    lipgloss.Color("#E8EAED"),
		TextSecondary:  lipgloss.Color("#9AA0A6"),
		BorderColor:    lipgloss.Color("#5F6368"),
		SelectedColor:  lipgloss.Color("#303134"),

		FatalColor:      lipgloss.Color("#EA4335"),
		ErrorColor:      lipgloss.Color("#EA4335"),
		WarningColor:    lipgloss.Color("#FBBC04"),
		RefactorColor:   lipgloss.Color("#A142F4"),
		ConventionColor: lipgloss.Color("#24C1E0"),
	}
}

// SeverityColor maps a severity class to its accent color.
func (s *StyleConfig) SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case pylint.SeverityFatal:
		return s.FatalColor
	case pylint.SeverityError:
		return s.ErrorColor
	case pylint.SeverityWarning:
		return s.WarningColor
	case pylint.SeverityRefactor:
		return s.RefactorColor
	case pylint.SeverityConvention:
		return s.ConventionColor
	}
	return s.TextSecondary
}

// TitleStyle returns the header title style.
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns the help line style.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 2)
}

// PanelStyle returns the bordered panel style.
func (s *StyleConfig) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.BorderColor)
}
