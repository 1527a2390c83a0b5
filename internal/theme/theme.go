package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header             *lipgloss.Style
	Version            *lipgloss.Style
	DirLabel           *lipgloss.Style
	DirValue           *lipgloss.Style
	DirUnset           *lipgloss.Style
	ClassDigit         *lipgloss.Style
	ClassLabel         *lipgloss.Style
	ClassCount         *lipgloss.Style
	Position           *lipgloss.Style
	Banner             *lipgloss.Style
	BannerAction       *lipgloss.Style
	Error              *lipgloss.Style
	Info               *lipgloss.Style
	Footer             *lipgloss.Style
	PanelBorder        *lipgloss.Style
	PanelTitle         *lipgloss.Style
	PanelBody          *lipgloss.Style
	PromptTitle        *lipgloss.Style
	Suggestion         *lipgloss.Style
	SelectedSuggestion *lipgloss.Style
	Cursor             *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Version: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	DirLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	DirValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	DirUnset: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	ClassDigit: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	ClassLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ClassCount: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Position: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Banner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true),
	),
	BannerAction: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	PromptTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedSuggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
