package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigint/internal/format"
)

// OpsTableModel lists every verified operation with its live counters.
type OpsTableModel struct {
	ops      []string
	perOp    int
	stats    map[string]OpStats
	offset   int
	width    int
	height   int
	finished bool
}

// NewOpsTableModel creates a table for ops, each with casesPerOp cases.
func NewOpsTableModel(ops []string, casesPerOp int) OpsTableModel {
	return OpsTableModel{ops: ops, perOp: casesPerOp, stats: map[string]OpStats{}}
}

// SetSize updates dimensions.
func (t *OpsTableModel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.clampOffset()
}

// Update replaces the counters with a fresh snapshot.
func (t *OpsTableModel) Update(stats map[string]OpStats) {
	t.stats = stats
}

// SetFinished marks the run as over; operations with no case left pending
// stop showing a progress bar.
func (t *OpsTableModel) SetFinished(done bool) {
	t.finished = done
}

// Reset clears the counters and scroll position.
func (t *OpsTableModel) Reset() {
	t.stats = map[string]OpStats{}
	t.offset = 0
	t.finished = false
}

// Scroll moves the first visible row by delta.
func (t *OpsTableModel) Scroll(delta int) {
	t.offset += delta
	t.clampOffset()
}

// visibleRows is the number of operation rows that fit in the panel.
func (t OpsTableModel) visibleRows() int {
	// border (2) + title + column header
	return max(1, t.height-4)
}

// PageSize is the scroll step for page up and page down.
func (t OpsTableModel) PageSize() int {
	return t.visibleRows()
}

func (t *OpsTableModel) clampOffset() {
	t.offset = min(t.offset, max(0, len(t.ops)-t.visibleRows()))
	t.offset = max(t.offset, 0)
}

// Totals sums the counters of every operation.
func (t OpsTableModel) Totals() OpStats {
	var sum OpStats
	for _, s := range t.stats {
		sum.Cases += s.Cases
		sum.Rejected += s.Rejected
		sum.Mismatches += s.Mismatches
		sum.EngineTime += s.EngineTime
	}
	return sum
}

const (
	colOp     = 10
	colCases  = 13
	colNum    = 9
	colMean   = 9
	colStatus = 12
)

// View renders the table panel.
func (t OpsTableModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Operations"))
	b.WriteString("\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-*s%*s%*s%*s%*s  %-*s",
		colOp, "Op", colCases, "Cases", colNum, "Rejected", colNum, "Mismatch", colMean, "Mean", colStatus, "Status")))

	end := min(len(t.ops), t.offset+t.visibleRows())
	for _, name := range t.ops[t.offset:end] {
		b.WriteString("\n")
		b.WriteString(t.renderRow(name))
	}
	if len(t.ops) > t.visibleRows() {
		b.WriteString("\n")
		b.WriteString(opPendingStyle.Render(fmt.Sprintf("%d-%d of %d", t.offset+1, end, len(t.ops))))
	}

	return panelStyle.
		Width(max(0, t.width-2)).
		Height(max(0, t.height-2)).
		Render(b.String())
}

func (t OpsTableModel) renderRow(name string) string {
	s := t.stats[name]
	mean := "-"
	if s.Cases > 0 {
		mean = format.FormatExecutionDuration(s.MeanTime())
	}
	row := opNameStyle.Render(fmt.Sprintf("%-*s", colOp, truncateString(name, colOp-1))) +
		fmt.Sprintf("%*s%*d%*d%*s  ",
			colCases, fmt.Sprintf("%d/%d", s.Cases, t.perOp),
			colNum, s.Rejected, colNum, s.Mismatches, colMean, mean)

	var status string
	switch {
	case s.Mismatches > 0:
		status = opMismatchStyle.Render("✗ MISMATCH")
	case s.Cases >= t.perOp && t.perOp > 0:
		status = opOKStyle.Render("✓ ok")
	case s.Cases == 0 && t.finished:
		status = opPendingStyle.Render("- not run")
	default:
		frac := 0.0
		if t.perOp > 0 {
			frac = float64(s.Cases) / float64(t.perOp)
		}
		status = renderBar(frac, colStatus-2)
	}
	return row + status
}

// renderBar draws a colored progress bar of the given width.
func renderBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// truncateString shortens s to maxLen runes, ending with "…".
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if len(r) > maxLen {
		r = r[:maxLen-1]
	}
	return string(r) + "…"
}
