package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the run status and the key help.
type FooterModel struct {
	help     help.Model
	keymap   KeyMap
	paused   bool
	done     bool
	failed   bool
	mismatch bool
	width    int
}

// NewFooterModel creates a footer describing keymap.
func NewFooterModel(keymap KeyMap) FooterModel {
	return FooterModel{help: help.New(), keymap: keymap}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as stopped by an error.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetMismatch marks the run as having found a disagreement.
func (f *FooterModel) SetMismatch(m bool) { f.mismatch = m }

// ToggleHelp switches between the short and the full key help.
func (f *FooterModel) ToggleHelp() { f.help.ShowAll = !f.help.ShowAll }

// Status returns the plain status word.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.mismatch:
		return "MISMATCH"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// Height returns the number of lines View renders.
func (f FooterModel) Height() int {
	return lipgloss.Height(f.View())
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch s := f.Status(); s {
	case "ERROR", "MISMATCH":
		status = statusErrorStyle.Render(" " + s + " ")
	case "DONE":
		status = statusDoneStyle.Render(" " + s + " ")
	case "PAUSED":
		status = statusPausedStyle.Render(" " + s + " ")
	default:
		status = statusRunningStyle.Render(" " + s + " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, status, " ", f.help.View(f.keymap))
}
