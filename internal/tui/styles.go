package tui

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)
