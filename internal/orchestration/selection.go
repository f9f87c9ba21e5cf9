package orchestration

import (
	"math/rand/v2"
	"runtime"

	"github.com/agbru/bigint/internal/config"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/oracle"
)

// GetOperationsToRun resolves the -ops selection against the catalog, in the
// order given. "all" selects the whole catalog in sorted order.
func GetOperationsToRun(cfg config.AppConfig) ([]ops.Operation, error) {
	names := cfg.VerifyOps(ops.Names())
	selected := make([]ops.Operation, 0, len(names))
	for _, name := range names {
		op, ok := ops.Get(name)
		if !ok {
			return nil, apperrors.NewConfigError("unknown operation %q", name)
		}
		selected = append(selected, op)
	}
	return selected, nil
}

// GetOraclesToRun instantiates the -oracles selection.
func GetOraclesToRun(cfg config.AppConfig) ([]oracle.Oracle, error) {
	oracles, err := oracle.Select(cfg.OracleNames(oracle.List()))
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	if len(oracles) == 0 {
		return nil, apperrors.NewConfigError("no oracle selected")
	}
	return oracles, nil
}

// BuildVerifyOptions turns the configuration into VerifyOptions. A zero seed
// is replaced by a random one so the report always names a replayable seed;
// zero workers means one per available CPU.
func BuildVerifyOptions(cfg config.AppConfig) (VerifyOptions, error) {
	selected, err := GetOperationsToRun(cfg)
	if err != nil {
		return VerifyOptions{}, err
	}
	oracles, err := GetOraclesToRun(cfg)
	if err != nil {
		return VerifyOptions{}, err
	}
	if cfg.Cases <= 0 {
		return VerifyOptions{}, apperrors.NewConfigError("cases must be positive, got %d", cfg.Cases)
	}

	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return VerifyOptions{
		Ops:      selected,
		Oracles:  oracles,
		Cases:    cfg.Cases,
		MaxLimbs: max(1, cfg.MaxLimbs),
		Workers:  workers,
		Seed:     seed,
	}, nil
}
