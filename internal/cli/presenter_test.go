package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigint"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/orchestration"
)

func TestPresentVerification(t *testing.T) {
	t.Parallel()
	report := orchestration.VerificationReport{
		Seed:    7,
		Workers: 4,
		Oracles: []string{"math/big"},
		Ops: []orchestration.OpReport{
			{Op: "add", Cases: 100, EngineTime: 3 * time.Millisecond},
			{Op: "div", Cases: 100, Rejected: 4, Mismatches: 2},
			{Op: "lowbit", Cases: 100, Unchecked: 100},
		},
		Mismatches: []orchestration.Mismatch{{
			Op: "div", Oracle: "math/big", CaseIndex: 12,
			Args:    []bigint.BigInteger{bigint.NewInt64(-7), bigint.NewInt64(2)},
			Got:     []bigint.BigInteger{bigint.NewInt64(-4)},
			WantErr: bigint.ErrDivideByZero,
		}},
		TotalCases:      300,
		TotalMismatches: 2,
		Duration:        time.Second,
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentVerification(report, &buf)
	output := buf.String()

	for _, want := range []string{
		"Seed 7, 4 worker(s), oracles: math/big",
		"Operation", "Engine time", "Status",
		"OK", "2 mismatch(es)", "unchecked",
		"300 cases in 1s",
		"(first 1 of 2)",
		"div case 12 vs math/big",
		"args: -7, 2",
		"got:  -4",
		"want: error: division by zero",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPresentVerificationAlignsColumns(t *testing.T) {
	t.Parallel()
	report := orchestration.VerificationReport{
		Ops: []orchestration.OpReport{
			{Op: "add", Cases: 1},
			{Op: "clearbit", Cases: 1000},
		},
		TotalCases: 1001,
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentVerification(report, &buf)

	var rows []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "add ") || strings.HasPrefix(line, "clearbit ") {
			rows = append(rows, line)
		}
	}
	if len(rows) != 2 {
		t.Fatalf("found %d table rows, want 2:\n%s", len(rows), buf.String())
	}
	col := func(row string) int { return strings.IndexFunc(row[len("clearbit"):], func(r rune) bool { return r != ' ' }) }
	if col(rows[0]) != col(rows[1]) {
		t.Errorf("cases column is not aligned:\n%s\n%s", rows[0], rows[1])
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}
	if got := p.FormatDuration(0); got != "< 1µs" {
		t.Errorf("FormatDuration(0) = %q", got)
	}
	if got := p.FormatDuration(250 * time.Millisecond); got != "250ms" {
		t.Errorf("FormatDuration(250ms) = %q", got)
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"nil", nil, apperrors.ExitSuccess, ""},
		{"deadline", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"timeout error", apperrors.TimeoutError{Operation: "pow", Limit: time.Second}, apperrors.ExitErrorTimeout, "Timeout"},
		{"canceled", fmt.Errorf("eval: %w", context.Canceled), apperrors.ExitErrorCanceled, "Canceled"},
		{"config", apperrors.NewConfigError("bad flag"), apperrors.ExitErrorConfig, "bad flag"},
		{"arithmetic", apperrors.NewArithmeticError("div", bigint.ErrDivideByZero), apperrors.ExitErrorGeneric, "division by zero"},
		{"other", errors.New("boom"), apperrors.ExitErrorGeneric, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := CLIResultPresenter{}.HandleError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("HandleError() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantText) {
				t.Errorf("output %q does not mention %q", buf.String(), tt.wantText)
			}
		})
	}
}
