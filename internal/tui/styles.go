package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/logmap/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initStyles.
var (
	panelStyle        lipgloss.Style
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	dimStyle          lipgloss.Style
	valueStyle        lipgloss.Style
	okStyle           lipgloss.Style
	failedStyle       lipgloss.Style
	pendingStyle      lipgloss.Style
	footerKeyStyle    lipgloss.Style
	busySparkStyle    lipgloss.Style
	cpuSparkStyle     lipgloss.Style
	statusPausedStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again after the theme has been chosen.
func initStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Dim).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	okStyle = lipgloss.NewStyle().Foreground(p.OK)
	failedStyle = lipgloss.NewStyle().Foreground(p.Failed)
	pendingStyle = lipgloss.NewStyle().Foreground(p.Warning)
	footerKeyStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	busySparkStyle = lipgloss.NewStyle().Foreground(p.Accent)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(p.Warning)
	statusPausedStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
}
