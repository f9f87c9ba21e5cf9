package config

import (
	"flag"
	"os"
	"slices"
	"strconv"
	"strings"
)

// envFlags binds each BIGCALC_ variable to the flag it overrides. Aliases
// such as -q and -quiet share one entry; the first name is the one written.
// Mode selection (-repl, -verify, -calibrate) is command-line only.
var envFlags = []struct {
	key   string
	flags []string
}{
	{"CASES", []string{"cases"}},
	{"MAX_LIMBS", []string{"max-limbs"}},
	{"WORKERS", []string{"workers"}},
	{"SEED", []string{"seed"}},
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}},
	{"TIMEOUT", []string{"timeout"}},
	{"OPS", []string{"ops"}},
	{"ORACLES", []string{"oracles"}},
	{"OUTPUT", []string{"output", "o"}},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}},
	{"METRICS_ADDR", []string{"metrics-addr"}},
	{"LOG_LEVEL", []string{"log-level"}},
	{"VERBOSE", []string{"verbose", "v"}},
	{"QUIET", []string{"quiet", "q"}},
	{"HEX", []string{"hex"}},
	{"NO_COLOR", []string{"no-color"}},
	{"TUI", []string{"tui"}},
}

// envBool accepts true/1/yes and false/0/no in any case.
func envBool(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// parseBoolEnv is envBool with a fallback for unrecognized input.
func parseBoolEnv(val string, defaultVal bool) bool {
	if b, ok := envBool(val); ok {
		return b
	}
	return defaultVal
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// applyEnvOverrides feeds BIGCALC_* values through the parsed flag set for
// every flag the command line left alone, so flags beat the environment and
// the environment beats defaults. A value the flag rejects is ignored.
func applyEnvOverrides(fs *flag.FlagSet) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for _, e := range envFlags {
		val := os.Getenv(EnvPrefix + e.key)
		if val == "" || slices.ContainsFunc(e.flags, func(n string) bool { return explicit[n] }) {
			continue
		}
		f := fs.Lookup(e.flags[0])
		if f == nil {
			continue
		}
		if isBoolFlag(f) {
			b, ok := envBool(val)
			if !ok {
				continue
			}
			val = strconv.FormatBool(b)
		}
		// flag.Value setters may clobber the target before failing.
		prev := f.Value.String()
		if err := f.Value.Set(val); err != nil {
			_ = f.Value.Set(prev)
		}
	}
}
