// Package ui holds the color themes shared by the CLI and the dashboard:
// ANSI sequences for plain terminal output and a lipgloss palette for the
// bubbletea views.
package ui
