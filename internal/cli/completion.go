package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Name      string   // flag name without "-" (e.g., "timeout")
	Short     string   // single-letter alias, if any
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsOpList  bool     // true if values come from the operation catalog
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Name: "help", Short: "h", Help: "Show help message"},
	{Name: "repl", Help: "Start an interactive session"},
	{Name: "verify", Help: "Cross-check the engine against reference implementations"},
	{Name: "ops", Help: "Operations to verify", IsOpList: true, ValueName: "operations"},
	{Name: "cases", Help: "Random cases per operation", Values: []string{"100", "1000", "10000"}, ValueName: "number"},
	{Name: "max-limbs", Help: "Maximum operand size in 64-bit words", Values: []string{"8", "64", "512", "4096"}, ValueName: "limbs"},
	{Name: "workers", Help: "Verification workers", ValueName: "number"},
	{Name: "seed", Help: "Random seed for verification", ValueName: "number"},
	{Name: "oracles", Help: "Reference implementations", Values: []string{"all", "math/big", "gmp"}, ValueName: "oracles"},
	{Name: "tui", Help: "Show verification in the dashboard"},
	{Name: "calibrate", Help: "Benchmark Karatsuba thresholds"},
	{Name: "quick", Help: "Quick calibration"},
	{Name: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Name: "karatsuba-threshold", Help: "Karatsuba threshold in limbs", Values: []string{"8", "16", "24", "32", "48"}, ValueName: "limbs"},
	{Name: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Name: "quiet", Short: "q", Help: "Print only results"},
	{Name: "verbose", Short: "v", Help: "Print full values"},
	{Name: "hex", Help: "Print results in hexadecimal"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Name: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9090", "127.0.0.1:9090"}, ValueName: "address"},
	{Name: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). operations are offered as the first positional argument and as
// values of -ops.
func GenerateCompletion(out io.Writer, shell string, operations []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, operations)
	case "zsh":
		return generateZshCompletion(out, operations)
	case "fish":
		return generateFishCompletion(out, operations)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns every spelling of f, long form first.
func flagNames(f FlagCompletion) []string {
	names := []string{"-" + f.Name}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, operations []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsOpList:
			body = `COMPREPLY=( $(compgen -W "${operations} all" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		case f.ValueName != "":
			body = "COMPREPLY=()"
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    operations="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), strings.Join(operations, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, operations []string) error {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:operation:($operations)'", "        '*:operand:'")

	script := fmt.Sprintf(`#compdef bigcalc

# Zsh completion script for bigcalc
# Add this to your ~/.zshrc or place in $fpath

_bigcalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(operations, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsOpList:
		valueSuffix = fmt.Sprintf(":%s:($operations all)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Name, f.Short, f.Name, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, operations []string) error {
	opList := strings.Join(operations, " ")
	lines := []string{
		"# Fish completion script for bigcalc",
		"# Add this to ~/.config/fish/completions/bigcalc.fish",
		"",
		"# Operations as the first argument",
		"complete -c bigcalc -f",
		fmt.Sprintf("complete -c bigcalc -n '__fish_is_first_arg' -a '%s'", opList),
		"",
		"# Flags",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, opList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go flags take a single dash, which fish calls an old-style option (-o).
func fishCompleteLine(f FlagCompletion, opList string) string {
	parts := []string{"complete -c bigcalc", "-o " + f.Name}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsOpList:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", opList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
