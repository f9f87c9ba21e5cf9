package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Build information, set with -ldflags "-X github.com/agbru/bigint/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that "--version" works alongside any other flag.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-version", "--version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// resolvedVersion prefers the linker-set version, then the module version
// recorded by "go install".
func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// PrintVersion writes the version line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s", resolvedVersion())
	if Commit != "" {
		fmt.Fprintf(out, " (%s", Commit)
		if BuildDate != "" {
			fmt.Fprintf(out, ", %s", BuildDate)
		}
		fmt.Fprint(out, ")")
	}
	fmt.Fprintf(out, " %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
