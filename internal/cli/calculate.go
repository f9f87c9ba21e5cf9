package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/config"
	"github.com/agbru/bigint/internal/oracle"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/ui"
)

// PrintExecutionConfig displays the timeout, the environment and the active
// multiplication threshold.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Timeout: %s%s%s.\n", ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Karatsuba threshold: %s%d%s limbs.\n",
		ui.ColorCyan(), bigint.KaratsubaThreshold(), ui.ColorReset())
}

// PrintVerificationPlan describes a verification run before it starts.
func PrintVerificationPlan(opts orchestration.VerifyOptions, out io.Writer) {
	names := make([]string, len(opts.Ops))
	for i, op := range opts.Ops {
		names[i] = op.Name
	}
	oracles := make([]string, len(opts.Oracles))
	for i, o := range opts.Oracles {
		oracles[i] = o.Name()
	}
	fmt.Fprintf(out, "Verifying %s%d%s operation(s) x %s%d%s cases, operands up to %d limbs.\n",
		ui.ColorMagenta(), len(opts.Ops), ui.ColorReset(),
		ui.ColorMagenta(), opts.Cases, ui.ColorReset(), opts.MaxLimbs)
	fmt.Fprintf(out, "Operations: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(out, "Reference: %s%s%s (available: %s)\n",
		ui.ColorGreen(), strings.Join(oracles, ", "), ui.ColorReset(), strings.Join(oracle.List(), ", "))
	fmt.Fprintf(out, "Seed: %d, workers: %d\n", opts.Seed, opts.Workers)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
