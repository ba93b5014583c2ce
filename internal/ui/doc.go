// Package ui provides the theme and color layer shared by the CLI output
// and the TUI dashboard. It defines ANSI color accessors for plain-text
// presenters and lipgloss palettes for the dashboard, keeping color
// decisions out of the measurement and presentation logic.
package ui
