package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigint/internal/format"
)

// HeaderModel is the top bar. It owns the run's stopwatch.
type HeaderModel struct {
	title   string
	details string
	started time.Time
	frozen  time.Duration // set once the run is over
	done    bool
	width   int
}

// NewHeaderModel starts the stopwatch. A "dev" version is not shown.
func NewHeaderModel(version string, seed uint64, oracles string) HeaderModel {
	title := "bigcalc verify"
	if version != "" && version != "dev" {
		title += " " + version
	}
	return HeaderModel{
		title:   title,
		details: "seed " + strconv.FormatUint(seed, 10) + " vs " + oracles,
		started: time.Now(),
	}
}

// SetDone stops the stopwatch.
func (h *HeaderModel) SetDone() {
	h.frozen, h.done = time.Since(h.started), true
}

// Reset restarts the stopwatch from zero.
func (h *HeaderModel) Reset() {
	h.started, h.frozen, h.done = time.Now(), 0, false
}

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed is the running time, or the final time after SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if h.done {
		return h.frozen
	}
	return time.Since(h.started)
}

func (h HeaderModel) View() string {
	sep := versionStyle.Render(" | ")
	line := strings.Join([]string{
		titleStyle.Render(h.title),
		versionStyle.Render(h.details),
		elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed())),
	}, sep)
	return headerStyle.Width(h.width).Render(line + spaces(h.width-2-lipgloss.Width(line)))
}

// spaces returns n blanks, or "" when n is not positive.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
