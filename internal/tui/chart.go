package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigint/internal/format"
)

// ChartModel plots the case throughput over time, with CPU and memory
// sparklines underneath.
type ChartModel struct {
	throughput *RingBuffer
	cpu        *RingBuffer
	mem        *RingBuffer
	doneAfter  time.Duration
	width      int
	height     int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		throughput: NewRingBuffer(120),
		cpu:        NewRingBuffer(60),
		mem:        NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the history to fit.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	inner := max(1, w-14)
	c.throughput.Resize(inner * 2)
	c.cpu.Resize(inner)
	c.mem.Resize(inner)
}

// AddThroughput appends a cases-per-second sample.
func (c *ChartModel) AddThroughput(rate float64) {
	c.throughput.Push(rate)
}

// UpdateSysStats appends system CPU and memory samples.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpu.Push(cpuPercent)
	c.mem.Push(memPercent)
}

// SetDone records the final duration shown in the chart title.
func (c *ChartModel) SetDone(d time.Duration) {
	c.doneAfter = d
}

// Reset clears every series.
func (c *ChartModel) Reset() {
	c.throughput.Reset()
	c.cpu.Reset()
	c.mem.Reset()
	c.doneAfter = 0
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	title := "Throughput"
	if c.doneAfter > 0 {
		title += " (finished in " + format.FormatExecutionDuration(c.doneAfter) + ")"
	}
	b.WriteString(panelTitleStyle.Render(title))

	peak := c.throughput.Max()
	chartRows := max(1, c.height-6)
	chartWidth := max(1, c.width-14)
	lines := RenderBrailleChart(c.throughput.Slice(), peak, chartWidth, chartRows)
	for i := range chartRows {
		label := spaces(9)
		switch i {
		case 0:
			label = fmt.Sprintf("%7.0f/s", peak)
		case chartRows - 1:
			label = fmt.Sprintf("%7d/s", 0)
		}
		line := ""
		if i < len(lines) {
			line = throughputStyle.Render(lines[i])
		}
		fmt.Fprintf(&b, "\n%s %s", metricLabelStyle.Render(label), line)
	}

	fmt.Fprintf(&b, "\n%s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", "CPU")),
		cpuSparklineStyle.Render(RenderSparkline(c.cpu.Slice(), 100)),
		metricValueStyle.Render(fmt.Sprintf("%3.0f%%", c.cpu.Last())))
	fmt.Fprintf(&b, "\n%s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", "MEM")),
		memSparklineStyle.Render(RenderSparkline(c.mem.Slice(), 100)),
		metricValueStyle.Render(fmt.Sprintf("%3.0f%%", c.mem.Last())))

	return panelStyle.
		Width(max(0, c.width-2)).
		Height(max(0, c.height-2)).
		Render(b.String())
}
