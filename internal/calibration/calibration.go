// Package calibration measures the Karatsuba cutover on the current machine,
// stores it in a profile, and loads cached profiles at startup.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/agbru/bigint"
	"github.com/agbru/bigint/internal/config"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/format"
	"github.com/agbru/bigint/internal/nat"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/progress"
)

const (
	// calibrationLimbs is the operand size benchmarked, large enough for
	// several recursion levels at every candidate threshold.
	calibrationLimbs = 384
	calibrationReps  = 8
	calibrationRuns  = 3

	// maxProfileAge is how long a cached profile is trusted.
	maxProfileAge = 90 * 24 * time.Hour
)

var errProductMismatch = errors.New("product differs from the reference threshold")

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Options configures RunCalibration.
type Options struct {
	// ProfilePath is where the profile is saved. Empty means the default
	// path in the home directory.
	ProfilePath string
	// Quick measures only the thresholds around the hardware estimate.
	Quick bool
	// Limbs overrides the benchmarked operand size. Zero uses the default.
	Limbs int
}

// RunCalibration benchmarks the candidate thresholds, prints a summary, and
// saves the fastest one to the profile. The process-wide threshold is
// restored afterwards. It returns an exit code.
func RunCalibration(ctx context.Context, out io.Writer, opts Options, reporter orchestration.ProgressReporter) int {
	start := time.Now()
	limbs := opts.Limbs
	if limbs <= 0 {
		limbs = calibrationLimbs
	}
	thresholds := GenerateKaratsubaThresholds()
	if opts.Quick {
		thresholds = GenerateQuickKaratsubaThresholds()
	}

	fmt.Fprintf(out, "--- Calibration: %d Karatsuba thresholds on %d-limb operands ---\n", len(thresholds), limbs)
	results, err := benchmarkThresholds(ctx, thresholds, limbs, reporter, out)
	if err != nil {
		if apperrors.IsContextError(err) {
			fmt.Fprintf(out, "Calibration interrupted: %v\n", err)
		} else {
			fmt.Fprintf(out, "Calibration failed: %v\n", err)
		}
		return apperrors.ExitCode(err)
	}

	best, ok := bestThreshold(results)
	printCalibrationResults(out, results, best, limbs)
	if !ok {
		fmt.Fprintln(out, "Calibration failed: no threshold produced a correct product.")
		return apperrors.ExitErrorGeneric
	}

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = best
	profile.CalibrationLimbs = limbs
	profile.CalibrationTime = format.FormatExecutionDuration(time.Since(start))

	path := opts.ProfilePath
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	} else {
		fmt.Fprintf(out, "Profile saved to %s\n", path)
	}
	printCalibrationOutput(out, profile)
	return apperrors.ExitSuccess
}

// calibrationOperand returns a value of exactly limbs words.
func calibrationOperand(r *rand.Rand, limbs int) bigint.BigInteger {
	buf := make([]byte, 1+8*limbs)
	for i := 1; i < len(buf); i++ {
		buf[i] = byte(r.Uint32())
	}
	buf[1] |= 0x80
	return bigint.FromBytes(buf, false)
}

func benchmarkThresholds(ctx context.Context, thresholds []int, limbs int, reporter orchestration.ProgressReporter, out io.Writer) ([]calibrationResult, error) {
	orig := bigint.KaratsubaThreshold()
	defer bigint.SetKaratsubaThreshold(orig)

	progressChan := make(chan progress.ProgressUpdate, len(thresholds)+1)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, 1, out)
	defer func() {
		close(progressChan)
		wg.Wait()
	}()
	tracker := progress.NewTracker(progressChan, 0, len(thresholds))

	r := rand.New(rand.NewPCG(uint64(limbs), 0x6b617261))
	x, y := calibrationOperand(r, limbs), calibrationOperand(r, limbs)

	var reference bigint.BigInteger
	results := make([]calibrationResult, 0, len(thresholds))
	for i, t := range thresholds {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		bigint.SetKaratsubaThreshold(t)
		product := x.Multiply(y)
		res := calibrationResult{Threshold: t}
		if i == 0 {
			reference = product
		} else if !product.Equal(reference) {
			res.Err = errProductMismatch
		}
		if res.Err == nil {
			res.Duration = timeMultiply(x, y)
		}
		results = append(results, res)
		tracker.Advance(1)
	}
	tracker.Done()
	return results, nil
}

// timeMultiply returns the best of calibrationRuns timings of
// calibrationReps products.
func timeMultiply(x, y bigint.BigInteger) time.Duration {
	best := time.Duration(-1)
	for range calibrationRuns {
		start := time.Now()
		for range calibrationReps {
			_ = x.Multiply(y)
		}
		if d := time.Since(start); best < 0 || d < best {
			best = d
		}
	}
	return best / calibrationReps
}

// bestThreshold picks the fastest correct threshold; ties go to the smaller
// threshold.
func bestThreshold(results []calibrationResult) (int, bool) {
	best, found := 0, false
	var bestDur time.Duration
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < bestDur {
			best, bestDur, found = r.Threshold, r.Duration, true
		}
	}
	return best, found
}

// LoadCachedCalibration fills a zero KaratsubaThreshold from the profile at
// path (or the default path). It reports whether a valid, fresh profile was
// applied. A threshold set by flag or environment is never replaced.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.KaratsubaThreshold != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(maxProfileAge) {
		return cfg, false
	}
	if p.OptimalKaratsubaThreshold < nat.MinKaratsubaThreshold {
		return cfg, false
	}
	cfg.KaratsubaThreshold = p.OptimalKaratsubaThreshold
	return cfg, true
}
