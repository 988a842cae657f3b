package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// primaryColor is the main theme color (veld green).
	primaryColor = lipgloss.Color("#7FB069")
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

// confidenceStyle colors a confidence value by how trustworthy it is.
func confidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 0.85:
		return categoryStyle
	case confidence >= 0.60:
		return lipgloss.NewStyle().Foreground(primaryColor)
	default:
		return warningStyle
	}
}
