package tui

import "slices"

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer keeps the most recent samples of a series, oldest first, up to
// a fixed capacity.
type RingBuffer struct {
	samples  []float64
	capacity int
}

// NewRingBuffer returns an empty buffer. Capacities below one are raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	capacity = max(1, capacity)
	return &RingBuffer{samples: make([]float64, 0, capacity), capacity: capacity}
}

// Push appends v, dropping the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	if len(r.samples) == r.capacity {
		r.samples = append(r.samples[:0], r.samples[1:]...)
	}
	r.samples = append(r.samples, v)
}

func (r *RingBuffer) Len() int { return len(r.samples) }

func (r *RingBuffer) Cap() int { return r.capacity }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	return r.samples[len(r.samples)-1]
}

// Max returns the largest sample, or 0 when empty.
func (r *RingBuffer) Max() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	return slices.Max(r.samples)
}

// Slice returns a copy of the samples, oldest first. It is nil when empty.
func (r *RingBuffer) Slice() []float64 {
	if len(r.samples) == 0 {
		return nil
	}
	return slices.Clone(r.samples)
}

// Resize changes the capacity, keeping the newest samples that still fit.
func (r *RingBuffer) Resize(capacity int) {
	r.capacity = max(1, capacity)
	if drop := len(r.samples) - r.capacity; drop > 0 {
		r.samples = slices.Clone(r.samples[drop:])
	}
}

func (r *RingBuffer) Reset() { r.samples = r.samples[:0] }

// level maps v in [0, ceiling] onto [0, steps-1].
func level(v, ceiling float64, steps int) int {
	if ceiling <= 0 || v <= 0 {
		return 0
	}
	l := int(v / ceiling * float64(steps-1))
	return min(max(l, 0), steps-1)
}

// RenderSparkline renders values scaled to ceiling as Unicode blocks.
func RenderSparkline(values []float64, ceiling float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparklineChars[level(v, ceiling, len(sparklineChars))]
	}
	return string(runes)
}

// brailleDots maps (column, row) within a cell to its dot bit.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots values scaled to ceiling as a braille dot chart of
// rows text rows and width columns. Each character holds 2x4 dots; the most
// recent value is on the right.
func RenderBrailleChart(values []float64, ceiling float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotRows, dotCols := rows*4, width*2

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	values = values[max(0, len(values)-dotCols):]
	shift := dotCols - len(values)
	for i, v := range values {
		dotCol := shift + i
		dotRow := dotRows - 1 - level(v, ceiling, dotRows)
		grid[dotRow/4][dotCol/2] |= brailleDots[dotCol%2][dotRow%4]
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
