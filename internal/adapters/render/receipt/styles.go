package receipt

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	buyer     lipgloss.Style
	border    lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	total     lipgloss.Style
	timestamp lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		buyer:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:      lipgloss.NewStyle().Padding(0, 1),
		total:     lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("39")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
