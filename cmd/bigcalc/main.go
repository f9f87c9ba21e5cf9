// Command bigcalc evaluates, verifies and benchmarks arbitrary-precision
// integer arithmetic. Run "bigcalc -h" for usage.
package main

import (
	"context"
	"os"

	"github.com/agbru/bigint/internal/app"
	apperrors "github.com/agbru/bigint/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}
	application, err := app.New(args, os.Stderr)
	switch {
	case app.IsHelpError(err):
		return apperrors.ExitSuccess
	case err != nil:
		return apperrors.ExitCode(err)
	}
	return application.Run(context.Background(), os.Stdout)
}
