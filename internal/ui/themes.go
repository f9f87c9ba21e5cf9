package ui

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences, one per color role.
type Theme struct {
	Name      string
	Primary   string // values and operation names
	Secondary string // labels and separators
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// fg256 returns the escape sequence selecting xterm-256 foreground color n.
func fg256(n int) string { return "\033[38;5;" + strconv.Itoa(n) + "m" }

// ansiTheme builds a theme from xterm-256 color indices listed in the order
// primary, secondary, success, warning, error, info.
func ansiTheme(name string, palette [6]int) Theme {
	return Theme{
		Name:      name,
		Primary:   fg256(palette[0]),
		Secondary: fg256(palette[1]),
		Success:   fg256(palette[2]),
		Warning:   fg256(palette[3]),
		Error:     fg256(palette[4]),
		Info:      fg256(palette[5]),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	// DarkTheme is the default.
	DarkTheme = ansiTheme("dark", [6]int{45, 245, 82, 220, 196, 141})
	// LightTheme keeps contrast on white backgrounds.
	LightTheme = ansiTheme("light", [6]int{25, 240, 28, 130, 124, 54})
	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}
)

var current atomic.Pointer[Theme]

func init() { SetCurrentTheme(DarkTheme) }

// TUITheme is the lipgloss palette of the verification dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

func hexTUITheme(bg, text, border, accent, success, warning, errColor, dim, info string) TUITheme {
	c := func(s string) lipgloss.TerminalColor { return lipgloss.Color(s) }
	return TUITheme{c(bg), c(text), c(border), c(accent), c(success), c(warning), c(errColor), c(dim), c(info)}
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = hexTUITheme("#0B0E14", "#D8DEE9", "#3B82F6", "#22D3EE", "#A3E635", "#FBBF24", "#F87171", "#6B7280", "#A78BFA")
	// LightTUITheme pairs with LightTheme.
	LightTUITheme = hexTUITheme("#FAFAF9", "#1F2937", "#2563EB", "#0E7490", "#15803D", "#B45309", "#B91C1C", "#9CA3AF", "#6D28D9")
	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{},
		lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	switch GetCurrentTheme().Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme { return *current.Load() }

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) { current.Store(&t) }

// SetTheme activates "dark", "light" or "none". Unknown names select dark.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme selects the startup theme. Colors are off when noColor is set
// or the NO_COLOR variable exists, whatever its value (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
