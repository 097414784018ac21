package ui

import "github.com/charmbracelet/lipgloss"

var (
	fuchsia = lipgloss.Color("#EE6FF8")
	green   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	yellow  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#ECFD65"}
	red     = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	gray    = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	dimGray = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(fuchsia).
			Padding(0, 1)

	labelStyle        = lipgloss.NewStyle().Bold(true)
	focusedLabelStyle = labelStyle.Foreground(fuchsia)
	subtleStyle       = lipgloss.NewStyle().Foreground(gray)
	selectedStyle     = lipgloss.NewStyle().Foreground(fuchsia).Bold(true)
	deviceStyle       = lipgloss.NewStyle().Foreground(dimGray)
	statusStyle       = lipgloss.NewStyle().Foreground(green)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)
