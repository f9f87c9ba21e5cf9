// This file generates the candidate thresholds benchmarked by calibration.

package calibration

import (
	"slices"

	"github.com/agbru/bigint/internal/config"
	"github.com/agbru/bigint/internal/nat"
)

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Karatsuba Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaThresholds returns the sorted candidate cutovers, in limbs.
// The list brackets the hardware estimate so the estimate itself is always
// measured, and never goes below nat.MinKaratsubaThreshold.
func GenerateKaratsubaThresholds() []int {
	estimate := EstimateOptimalKaratsubaThreshold()
	candidates := []int{8, 12, 16, 20, 24, 32, 48, 64, 96}
	candidates = append(candidates, estimate/2, estimate, estimate*2)
	out := candidates[:0]
	for _, c := range candidates {
		if c >= nat.MinKaratsubaThreshold {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// GenerateQuickKaratsubaThresholds returns a short list around the estimate,
// measured by -calibrate -quick.
func GenerateQuickKaratsubaThresholds() []int {
	e := EstimateOptimalKaratsubaThreshold()
	out := []int{max(nat.MinKaratsubaThreshold, e/2), e, 2 * e}
	return slices.Compact(out)
}

// EstimateOptimalKaratsubaThreshold delegates to
// config.EstimateOptimalKaratsubaThreshold.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateOptimalKaratsubaThreshold() }
