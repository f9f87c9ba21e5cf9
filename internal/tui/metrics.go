package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigint/internal/format"
)

// MetricsModel displays run progress, throughput and process memory.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	rss          uint64

	progress   float64
	eta        time.Duration
	finished   int
	numWorkers int

	cases      int
	totalCases int
	throughput float64 // cases per second, exponentially smoothed
	lastCases  int
	lastSample time.Time

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel for a run of totalCases.
func NewMetricsModel(totalCases, numWorkers int) MetricsModel {
	return MetricsModel{totalCases: totalCases, numWorkers: numWorkers}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateRSS records the resident set size of the process.
func (m *MetricsModel) UpdateRSS(rss uint64) {
	m.rss = rss
}

// UpdateProgress records the aggregated worker progress.
func (m *MetricsModel) UpdateProgress(msg ProgressMsg) {
	m.progress = msg.AverageProgress
	m.eta = msg.ETA
	m.finished = msg.FinishedWorkers
	if msg.NumWorkers > 0 {
		m.numWorkers = msg.NumWorkers
	}
}

// UpdateCases records the total case count at time at and returns the
// smoothed throughput in cases per second.
func (m *MetricsModel) UpdateCases(total int, at time.Time) float64 {
	if !m.lastSample.IsZero() {
		if dt := at.Sub(m.lastSample).Seconds(); dt > 0.05 {
			rate := float64(total-m.lastCases) / dt
			if m.throughput > 0 {
				m.throughput = 0.7*m.throughput + 0.3*rate
			} else {
				m.throughput = rate
			}
			m.lastCases, m.lastSample = total, at
		}
	} else {
		m.lastCases, m.lastSample = total, at
	}
	m.cases = total
	return m.throughput
}

// Throughput returns the smoothed case rate.
func (m MetricsModel) Throughput() float64 { return m.throughput }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Run"))

	barWidth := max(10, m.width-24)
	fmt.Fprintf(&rows, "\n %s %s %s",
		metricLabelStyle.Render("Progress"),
		renderBar(m.progress, barWidth),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.progress*100)))

	colWidth := max(0, (m.width-4)/2)
	left := []string{
		formatMetricCol("Cases:", fmt.Sprintf("%d/%d", m.cases, m.totalCases), colWidth),
		formatMetricCol("Rate:", fmt.Sprintf("%.0f/s", m.throughput), colWidth),
		formatMetricCol("Heap:", formatBytes(m.alloc)+" / "+formatBytes(m.heapSys), colWidth),
	}
	right := []string{
		formatMetricCol("Workers:", fmt.Sprintf("%d/%d done", m.finished, m.numWorkers), colWidth),
		formatMetricCol("ETA:", format.FormatETA(m.eta), colWidth),
		formatMetricCol("RSS:", formatBytes(m.rss), colWidth),
	}
	left = append(left, formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), colWidth))
	right = append(right, formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))

	for i := range left {
		rows.WriteString("\n")
		rows.WriteString(left[i])
		rows.WriteString(right[i])
	}

	return panelStyle.
		Width(max(0, m.width-2)).
		Height(max(0, m.height-2)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
