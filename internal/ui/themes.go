package ui

import (
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by -theme and LOGMAP_THEME.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeOrange = "orange"
	ThemeNone   = "none"
)

// ThemeNames lists the selectable themes in display order.
var ThemeNames = []string{ThemeDark, ThemeLight, ThemeOrange, ThemeNone}

// Theme is a named color scheme. The ANSI codes color line output such as
// error messages and the calibration table; the palette feeds lipgloss
// blocks and the dashboard.
type Theme struct {
	Name      string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Underline string
	Reset     string
	Palette   Palette
}

// Palette holds the lipgloss colors of a theme.
type Palette struct {
	Accent, Dim, Text, OK, Warning, Failed lipgloss.TerminalColor
}

var themes = map[string]Theme{
	ThemeDark: {
		Name:      ThemeDark,
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette:   Palette{
			Accent:  lipgloss.Color("#4488FF"),
			Dim:     lipgloss.Color("#8A8A8A"),
			Text:    lipgloss.Color("#E0E0E0"),
			OK:      lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#E0AF68"),
			Failed:  lipgloss.Color("#FF4444"),
		},
	},
	ThemeLight: {
		Name:      ThemeLight,
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette:   Palette{
			Accent:  lipgloss.Color("#005FD7"),
			Dim:     lipgloss.Color("#585858"),
			Text:    lipgloss.Color("#1C1C1C"),
			OK:      lipgloss.Color("#008700"),
			Warning: lipgloss.Color("#AF5F00"),
			Failed:  lipgloss.Color("#AF0000"),
		},
	},
	ThemeOrange: {
		Name:      ThemeOrange,
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;69m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette:   Palette{
			Accent:  lipgloss.Color("#FF8C00"),
			Dim:     lipgloss.Color("#666666"),
			Text:    lipgloss.Color("#E0E0E0"),
			OK:      lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#E0AF68"),
			Failed:  lipgloss.Color("#FF4444"),
		},
	},
	ThemeNone: {
		Name:    ThemeNone,
		Palette: Palette{
			Accent:  lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
			Text:    lipgloss.NoColor{},
			OK:      lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Failed:  lipgloss.NoColor{},
		},
	},
}

var (
	current   = themes[ThemeDark]
	currentMu sync.RWMutex
)

// Lookup returns the theme called name.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// IsTheme reports whether name is a selectable theme.
func IsTheme(name string) bool { return slices.Contains(ThemeNames, name) }

// Current returns the active theme.
func Current() Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme. Tests use it to restore state.
func SetCurrent(t Theme) {
	currentMu.Lock()
	current = t
	currentMu.Unlock()
}

// InitTheme activates the named theme. noColor, or a NO_COLOR variable with
// any value (https://no-color.org/), selects the none theme instead. Unknown
// names fall back to dark.
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		name = ThemeNone
	}
	t, ok := Lookup(name)
	if !ok {
		t = themes[ThemeDark]
	}
	SetCurrent(t)
}
