// Package cli provides the terminal surface of carpicker: lipgloss styles,
// the interactive questionnaire, and result rendering.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#EB0A1E") // showroom red
	AccentColor  = lipgloss.Color("86")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
)

var (
	// TitleStyle renders result headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	// HeaderStyle renders table column headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	// ModelStyle renders a vehicle's model name.
	ModelStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// CardStyle frames the best match.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	// PromptStyle renders questionnaire prompts.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CarIcon     = "🚗"
)

// Similarity bands used to color scores.
const (
	strongScore = 85.0
	fairScore   = 60.0
)

// ScoreStyle picks a color for a similarity score.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= strongScore:
		return SuccessStyle
	case score >= fairScore:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle prefixes a heading with the car icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CarIcon + " " + title)
}

// FormatPrompt formats a questionnaire prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderCard renders content under a heading inside a bordered card.
func RenderCard(heading, content string) string {
	return CardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(heading),
		content,
	))
}
