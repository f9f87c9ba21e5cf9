// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayEvalResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the values, one per line.
	Quiet bool
	// Verbose prints full values instead of truncated ones.
	Verbose bool
	// Hex prints values as 0x-prefixed two's complement.
	Hex bool
}

// FormatValue renders x in decimal or hexadecimal. Unless full is set,
// values longer than TruncationLimit characters are cut to their edges; the
// second result reports whether that happened.
func FormatValue(x bigint.BigInteger, hex, full bool) (string, bool) {
	s, edges := x.String(), DisplayEdges
	if hex {
		s, edges = ops.FormatHex(x), HexDisplayEdges
	}
	if full || len(s) <= TruncationLimit {
		return s, false
	}
	return s[:edges] + "..." + s[len(s)-edges:], true
}

// formatCall renders "op(a, b)" with operands truncated like results.
func formatCall(res orchestration.EvalResult, hex bool) string {
	parts := make([]string, len(res.Args))
	for i, a := range res.Args {
		parts[i], _ = FormatValue(a, hex, false)
	}
	return fmt.Sprintf("%s(%s)", res.Op, strings.Join(parts, ", "))
}

// FormatQuietResult formats the values of a result one per line, never
// truncated, for scripting.
func FormatQuietResult(res orchestration.EvalResult, hex bool) string {
	lines := make([]string, len(res.Values))
	for i, v := range res.Values {
		lines[i], _ = FormatValue(v, hex, true)
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, res orchestration.EvalResult, hex bool) {
	fmt.Fprintln(out, FormatQuietResult(res, hex))
}

// DisplayEvalResult prints the call, the values with their size, and the
// engine time.
func DisplayEvalResult(out io.Writer, res orchestration.EvalResult, hex, verbose bool) {
	fmt.Fprintf(out, "%s%s%s =\n", ui.ColorBold(), formatCall(res, hex), ui.ColorReset())
	truncated := false
	for _, v := range res.Values {
		s, cut := FormatValue(v, hex, verbose)
		truncated = truncated || cut
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorGreen(), s, ui.ColorReset())
	}
	for i, v := range res.Values {
		label := "Value"
		if len(res.Values) > 1 {
			label = fmt.Sprintf("Value %d", i+1)
		}
		fmt.Fprintf(out, "%s%s:%s %s, %s\n", ui.ColorGrey(), label, ui.ColorReset(),
			countNoun(v.DigitCount(), "digit"), countNoun(v.UnsignedBitLength(), "bit"))
	}
	fmt.Fprintf(out, "%sTime:%s %s%s%s\n", ui.ColorGrey(), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "%s(truncated) Tip: use -v to print full values or -o to save them.%s\n", ui.ColorGrey(), ui.ColorReset())
	}
}

// countNoun renders "1 digit" or "1,234 digits".
func countNoun(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return format.FormatNumberString(strconv.Itoa(n)) + " " + noun
}

// WriteResultToFile writes an evaluation result, with a commented header, to
// config.OutputFile. It does nothing when no file is configured.
func WriteResultToFile(res orchestration.EvalResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", res.Op)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	for i, a := range res.Args {
		s, _ := FormatValue(a, config.Hex, true)
		fmt.Fprintf(file, "# Operand %d: %s\n", i+1, s)
	}
	fmt.Fprintf(file, "\n")
	for _, v := range res.Values {
		s, _ := FormatValue(v, config.Hex, true)
		fmt.Fprintln(file, s)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig displays a result according to config and saves
// it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, res orchestration.EvalResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res, config.Hex)
	} else {
		DisplayEvalResult(out, res, config.Hex, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(res, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
