package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used for block output such as result
// headers and key/value summaries.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	OK     lipgloss.Style
	Failed lipgloss.Style
}

// CurrentPalette returns the colors of the active theme.
func CurrentPalette() Palette { return Current().Palette }

// CurrentStyles returns the styles matching the active theme. With the
// none theme every style renders its text unchanged.
func CurrentStyles() Styles {
	t := Current()
	p := t.Palette

	s := Styles{
		Header: lipgloss.NewStyle().Foreground(p.Accent),
		Label:  lipgloss.NewStyle().Foreground(p.Dim),
		Value:  lipgloss.NewStyle().Foreground(p.Text),
		OK:     lipgloss.NewStyle().Foreground(p.OK),
		Failed: lipgloss.NewStyle().Foreground(p.Failed),
	}
	if t.Name != ThemeNone {
		s.Header = s.Header.Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.Dim)
		s.OK = s.OK.Bold(true)
		s.Failed = s.Failed.Bold(true)
	}
	return s
}
