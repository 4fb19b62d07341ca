package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Style variables for the calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	elapsedStyle     lipgloss.Style
	promptStyle      lipgloss.Style
	exprStyle        lipgloss.Style
	resultStyle      lipgloss.Style
	errorStyle       lipgloss.Style
	detailStyle      lipgloss.Style
	statusLabelStyle lipgloss.Style
	statusValueStyle lipgloss.Style
	sparklineStyle   lipgloss.Style
	busyStyle        lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)

	promptStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	exprStyle = lipgloss.NewStyle().Foreground(t.Info)
	resultStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	detailStyle = lipgloss.NewStyle().Foreground(t.Dim)

	statusLabelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	statusValueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Warning)
	busyStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
}
