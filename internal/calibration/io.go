package calibration

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/ui"
)

const barWidth = 20

// printCalibrationResults writes one row per candidate threshold, each with
// its time per product and a bar scaled to the slowest correct candidate.
func printCalibrationResults(out io.Writer, results []calibrationResult, best, limbs int) {
	var slowest float64
	for _, r := range results {
		if r.Err == nil {
			slowest = max(slowest, float64(r.Duration))
		}
	}

	fmt.Fprintf(out, "\nKaratsuba cutover on %d-limb operands:\n", limbs)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  threshold\tper product\t")
	for _, r := range results {
		label := fmt.Sprintf("%d limbs", r.Threshold)
		if r.Threshold > limbs {
			label += " (schoolbook)"
		}
		if r.Err != nil {
			fmt.Fprintf(tw, "  %s\t%s%v%s\t\n", label, ui.ColorRed(), r.Err, ui.ColorReset())
			continue
		}
		timing := format.FormatExecutionDuration(r.Duration)
		if slowest > 0 {
			timing += " " + format.ProgressBar(float64(r.Duration)/slowest, barWidth)
		}
		mark := ""
		if r.Threshold == best {
			mark = ui.ColorGreen() + " <- Optimal" + ui.ColorReset()
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", label, timing, mark)
	}
	tw.Flush()
}

// printCalibrationOutput prints the threshold that will be used from now on.
func printCalibrationOutput(out io.Writer, p *CalibrationProfile) {
	fmt.Fprintf(out, "%sKaratsuba threshold%s set to %s%d%s limbs, calibrated in %s.\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), p.OptimalKaratsubaThreshold, ui.ColorReset(),
		p.CalibrationTime)
}
