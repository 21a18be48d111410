// Package ui holds the color themes selected with -theme (dark, light,
// orange, none). Each theme carries ANSI codes for line output and a
// lipgloss palette for result blocks and the dashboard.
package ui
