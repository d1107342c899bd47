package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	slowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("24"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	fastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	particleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	deepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))

	coldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
	mildStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	warmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
