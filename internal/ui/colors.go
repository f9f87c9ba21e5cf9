package ui

import "github.com/charmbracelet/lipgloss"

// ColorReset returns the reset sequence of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold sequence of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence of the active theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorCyan returns the primary color, used for values.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorGrey returns the secondary color, used for labels.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// Banner renders a boxed title with the dashboard palette, falling back to
// plain text when colors are disabled.
func Banner(title, subtitle string) string {
	t := GetCurrentTUITheme()
	head := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render(title)
	body := head
	if subtitle != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, head, lipgloss.NewStyle().Foreground(t.Dim).Render(subtitle))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	return box.Render(body)
}
