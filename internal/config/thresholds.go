package config

import (
	"runtime"

	"github.com/agbru/bigint/internal/nat"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flag (-karatsuba-threshold)
//   2. Environment variable (BIGCALC_KARATSUBA_THRESHOLD)
//   3. Cached calibration profile (~/.bigcalc_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. nat.DefaultKaratsubaThreshold

// ApplyAdaptiveThresholds fills a zero Karatsuba threshold with a hardware
// estimate. A value set by flag or environment is kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateOptimalKaratsubaThreshold()
	}
	return cfg
}

// EstimateOptimalKaratsubaThreshold provides a heuristic estimate of the
// Karatsuba crossover without running benchmarks.
func EstimateOptimalKaratsubaThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	if wordSize == 32 {
		// 32-bit limbs make each schoolbook step cheaper relative to the
		// recursion bookkeeping.
		return 2 * nat.DefaultKaratsubaThreshold
	}
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return nat.DefaultKaratsubaThreshold
	default:
		return nat.DefaultKaratsubaThreshold + nat.DefaultKaratsubaThreshold/2
	}
}
