package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	card       lipgloss.Style
	cardTitle  lipgloss.Style
	detail     lipgloss.Style
	statusOpen lipgloss.Style
	statusDone lipgloss.Style
	option     lipgloss.Style
	hint       lipgloss.Style
	tableHead  lipgloss.Style
	tableCell  lipgloss.Style
	tableEdge  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	notice     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("244")).Padding(0, 1),
		cardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		statusOpen: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		statusDone: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		option:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		hint:       lipgloss.NewStyle().Faint(true),
		tableHead:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		tableCell:  lipgloss.NewStyle().Padding(0, 1),
		tableEdge:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		notice:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
	}
}
