package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds cmd/bigcalc and runs it as a user would.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmpDir := t.TempDir()
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName = "bigcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build bigcalc: %v", err)
	}

	profile := filepath.Join(tmpDir, "profile.json")
	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Quiet Multiplication",
			args:     []string{"-q", "mul", "65536", "65536"},
			wantOut:  "4294967296",
			wantCode: 0,
		},
		{
			name:     "Full Display",
			args:     []string{"sqrt", "1000000"},
			wantOut:  "sqrt(1000000) =",
			wantCode: 0,
		},
		{
			name:     "Truncated Division",
			args:     []string{"-q", "divrem", "-7", "2"},
			wantOut:  "-3\n-1",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Division By Zero",
			args:     []string{"div", "1", "0"},
			wantOut:  "division by zero",
			wantCode: 1,
		},
		{
			name:     "Unknown Operation",
			args:     []string{"frobnicate", "1"},
			wantOut:  "unknown operation",
			wantCode: 4,
		},
		{
			name:     "Verification",
			args:     []string{"-verify", "-q", "-ops", "add,sub,mul,gcd", "-cases", "50", "-seed", "3"},
			wantOut:  "Global Status: Success",
			wantCode: 0,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-timeout", "1ns", "-verify", "-cases", "100000"},
			wantCode: 2,
		},
		{
			name:     "Completion",
			args:     []string{"-completion", "bash"},
			wantOut:  "complete -F",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "bigcalc",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-calibration-profile", profile}, tt.args...)
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running bigcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
