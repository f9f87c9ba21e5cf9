package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/nat"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/oracle"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/ui"
)

// lastResultToken stands for the first value of the previous result.
const lastResultToken = "_"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// HexOutput displays results in hexadecimal format.
	HexOutput bool
	// Verbose prints full values instead of truncated ones.
	Verbose bool
	// Oracles are used by the "check" command.
	Oracles []oracle.Oracle
	// Observer, if set, is notified of every evaluation.
	Observer EvalObserver
}

// EvalObserver receives the outcome of every REPL evaluation.
type EvalObserver interface {
	ObserveEval(op string, elapsed time.Duration, err error)
}

// REPL is an interactive calculator session over the operation catalog.
type REPL struct {
	config REPLConfig
	last   *bigint.BigInteger
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL reading from stdin and writing to stdout.
func NewREPL(config REPLConfig) *REPL {
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until "exit", EOF, or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 64<<20)

	prompt := true
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if prompt {
			fmt.Fprint(r.out, ui.ColorGreen()+"bigcalc> "+ui.ColorReset())
		}
		prompt = true
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Comments are silent, so a commented script reads as one prompt per command.
		if strings.HasPrefix(input, "#") {
			prompt = false
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 bigcalc - Interactive Mode%s                         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <operands...>%s   - Evaluate an operation, e.g. %smul 12 34%s\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scheck <op> <operands>%s - Evaluate and compare with %s\n", ui.ColorYellow(), ui.ColorReset(), r.oracleList())
	fmt.Fprintf(r.out, "  %s_%s                    - Stands for the previous result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                 - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s                  - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s              - Toggle full values\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sthreshold [n]%s        - Show or set the Karatsuba threshold\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s               - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

func (r *REPL) oracleList() string {
	if len(r.config.Oracles) == 0 {
		return "no reference"
	}
	names := make([]string, len(r.config.Oracles))
	for i, o := range r.config.Oracles {
		names[i] = o.Name()
	}
	return strings.Join(names, ", ")
}

// processCommand executes one line. It returns false when the session ends.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "help", "h", "?":
		r.printHelp()
	case "list", "ls":
		r.cmdList()
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %s\n", onOff(r.config.HexOutput))
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full values: %s\n", onOff(r.config.Verbose))
	case "threshold":
		r.cmdThreshold(args)
	case "status", "st":
		r.cmdStatus()
	case "check":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%sUsage: check <op> <operands...>%s\n", ui.ColorRed(), ui.ColorReset())
			return true
		}
		r.evaluate(ctx, strings.ToLower(args[0]), args[1:], true)
	default:
		r.evaluate(ctx, cmd, args, false)
	}
	return true
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range ops.All() {
		fmt.Fprintf(r.out, "  %s\n", op.Describe())
	}
}

func (r *REPL) cmdThreshold(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Karatsuba threshold: %s%d%s limbs\n", ui.ColorCyan(), bigint.KaratsubaThreshold(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < nat.MinKaratsubaThreshold {
		fmt.Fprintf(r.out, "%sThreshold must be an integer >= %d%s\n", ui.ColorRed(), nat.MinKaratsubaThreshold, ui.ColorReset())
		return
	}
	bigint.SetKaratsubaThreshold(n)
	fmt.Fprintf(r.out, "Karatsuba threshold set to %s%d%s limbs\n", ui.ColorGreen(), bigint.KaratsubaThreshold(), ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:             %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Hexadecimal display: %s\n", onOff(r.config.HexOutput))
	fmt.Fprintf(r.out, "  Full values:         %s\n", onOff(r.config.Verbose))
	fmt.Fprintf(r.out, "  Karatsuba threshold: %s%d%s limbs\n", ui.ColorCyan(), bigint.KaratsubaThreshold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Reference:           %s\n", r.oracleList())
	if r.last != nil {
		s, _ := FormatValue(*r.last, r.config.HexOutput, false)
		fmt.Fprintf(r.out, "  Previous result:     %s\n", s)
	}
}

// resolveArgs parses operands, substituting the previous result for "_".
func (r *REPL) resolveArgs(args []string) ([]bigint.BigInteger, error) {
	out := make([]bigint.BigInteger, len(args))
	for i, a := range args {
		if a == lastResultToken {
			if r.last == nil {
				return nil, errors.New("no previous result")
			}
			out[i] = *r.last
			continue
		}
		x, err := ops.ParseOperand(a)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (r *REPL) evaluate(ctx context.Context, name string, rawArgs []string, check bool) {
	op, ok := ops.Get(name)
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	if len(rawArgs) != op.Arity {
		fmt.Fprintf(r.out, "%sUsage: %s %s%s\n", ui.ColorRed(), op.Name, op.Usage, ui.ColorReset())
		return
	}
	args, err := r.resolveArgs(rawArgs)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	evalCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	res := orchestration.ExecuteEval(evalCtx, op, args)
	if r.config.Observer != nil {
		r.config.Observer.ObserveEval(op.Name, res.Duration, res.Err)
	}

	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
	} else {
		DisplayEvalResult(r.out, res, r.config.HexOutput, r.config.Verbose)
		last := res.Values[0]
		r.last = &last
	}
	if check {
		r.crossCheck(op, res)
	}
	fmt.Fprintln(r.out)
}

// crossCheck compares a result with every configured oracle that supports
// the operation.
func (r *REPL) crossCheck(op ops.Operation, res orchestration.EvalResult) {
	if errors.Is(res.Err, context.DeadlineExceeded) || errors.Is(res.Err, context.Canceled) {
		return
	}
	checked := 0
	for _, o := range r.config.Oracles {
		if !o.Supports(op.Name) {
			continue
		}
		checked++
		want, wantErr := o.Evaluate(op.Name, res.Args)
		agree := false
		switch {
		case res.Err == nil && wantErr == nil:
			agree = slices.EqualFunc(res.Values, want, bigint.BigInteger.Equal)
		case res.Err != nil && wantErr != nil:
			agree = errors.Is(wantErr, oracle.ErrorClass(res.Err))
		}
		if agree {
			fmt.Fprintf(r.out, "  %s%-10s%s %s✓ agrees%s\n", ui.ColorYellow(), o.Name(), ui.ColorReset(), ui.ColorGreen(), ui.ColorReset())
			continue
		}
		fmt.Fprintf(r.out, "  %s%-10s%s %s✗ INCONSISTENT%s (reference: %s)\n", ui.ColorYellow(), o.Name(), ui.ColorReset(),
			ui.ColorRed(), ui.ColorReset(), CLIResultPresenter{}.formatOutcome(want, wantErr))
	}
	if checked == 0 {
		fmt.Fprintf(r.out, "  %sNo reference implementation supports %s%s\n", ui.ColorGrey(), op.Name, ui.ColorReset())
	}
}

func onOff(b bool) string {
	if b {
		return ui.ColorGreen() + "on" + ui.ColorReset()
	}
	return ui.ColorGrey() + "off" + ui.ColorReset()
}
