package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/logmap/internal/format"
)

// HeaderModel renders the top bar: title, version, map parameters and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	version   string
	params    string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, params string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, params: params}
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() { h.startTime = time.Now() }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "logmap dispatch monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	elapsed := fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(time.Since(h.startTime).Round(time.Second)))
	row := titleStyle.Render(titleText) + pipe + dimStyle.Render(h.params) + pipe + valueStyle.Render(elapsed)

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
