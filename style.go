package main

import "github.com/charmbracelet/lipgloss"

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).
			Background(lipgloss.AdaptiveColor{Light: "#EBFFF5", Dark: "#1A3D2C"})

	paragraphStyle = lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2)
)

func keyword(s string) string {
	return keywordStyle.Render(" " + s + " ")
}

func paragraph(s string) string {
	return paragraphStyle.Render(s)
}
