package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)

	lightSquare    = lipgloss.NewStyle().Background(lipgloss.Color("#EEEED2")).Foreground(lipgloss.Color("#000000"))
	darkSquare     = lipgloss.NewStyle().Background(lipgloss.Color("#769656")).Foreground(lipgloss.Color("#000000"))
	cursorSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#F7B801")).Foreground(lipgloss.Color("#000000")).Bold(true)
	selectedSquare = lipgloss.NewStyle().Background(lipgloss.Color("#5B8DEF")).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	fenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)
