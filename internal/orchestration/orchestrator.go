package orchestration

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigint"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/ops"
	"github.com/agbru/bigint/internal/oracle"
	"github.com/agbru/bigint/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking workers when
// the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// MaxRecordedMismatches bounds the mismatches kept in a report. Further
// mismatches are only counted.
const MaxRecordedMismatches = 20

const tracerName = "github.com/agbru/bigint/internal/orchestration"

// VerifyOptions describes one verification run.
type VerifyOptions struct {
	// Ops are the operations to exercise.
	Ops []ops.Operation
	// Oracles are the reference implementations to compare against.
	Oracles []oracle.Oracle
	// Cases is the number of random cases per operation.
	Cases int
	// MaxLimbs bounds the size of generated operands, in 64-bit words.
	MaxLimbs int
	// Workers is the number of concurrent workers.
	Workers int
	// Seed makes the run reproducible.
	Seed uint64
	// Observer, if set, is notified after every case.
	Observer CaseObserver
}

// Mismatch records one case where an oracle disagreed with the engine.
type Mismatch struct {
	Op        string
	Oracle    string
	CaseIndex int
	Args      []bigint.BigInteger
	Got       []bigint.BigInteger
	GotErr    error
	Want      []bigint.BigInteger
	WantErr   error
}

// OpReport aggregates the cases run for one operation.
type OpReport struct {
	Op string
	// Cases is the number of cases evaluated.
	Cases int
	// Rejected counts cases where the engine returned an error and every
	// oracle agreed on its class.
	Rejected int
	// Mismatches counts disagreeing (case, oracle) pairs.
	Mismatches int
	// Unchecked counts cases no oracle supported.
	Unchecked int
	// EngineTime is the total time spent in the engine.
	EngineTime time.Duration
}

// VerificationReport is the outcome of ExecuteVerification.
type VerificationReport struct {
	Seed            uint64
	Workers         int
	Oracles         []string
	Ops             []OpReport
	Mismatches      []Mismatch
	TotalCases      int
	TotalMismatches int
	Duration        time.Duration
}

// Passed reports whether the run found no disagreement.
func (r VerificationReport) Passed() bool { return r.TotalMismatches == 0 }

// CaseSeed returns the PCG stream of case j of a run. Operands depend only on
// the seed, the operation position and the case index, never on the number
// of workers, so a reported case can be replayed.
func CaseSeed(seed uint64, opIndex, caseIndex int) (uint64, uint64) {
	return seed, uint64(opIndex)<<32 | uint64(caseIndex)
}

type workerResult struct {
	ops        map[string]*OpReport
	mismatches []Mismatch
	total      int
}

// ExecuteVerification evaluates opts.Cases random cases per operation on the
// engine and on every oracle, spread over opts.Workers goroutines.
//
// Progress is reported per worker on a channel consumed by progressReporter.
// The report is complete even when ctx is cancelled part-way through; the
// returned error is then the context error.
func ExecuteVerification(ctx context.Context, opts VerifyOptions, progressReporter ProgressReporter, out io.Writer) (VerificationReport, error) {
	start := time.Now()
	total := len(opts.Ops) * opts.Cases
	workers := max(1, min(opts.Workers, total))

	oracleNames := make([]string, len(opts.Oracles))
	for i, o := range opts.Oracles {
		oracleNames[i] = o.Name()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "bigcalc.verify", trace.WithAttributes(
		attribute.Int64("bigcalc.seed", int64(opts.Seed)),
		attribute.Int("bigcalc.cases", total),
		attribute.Int("bigcalc.workers", workers),
		attribute.StringSlice("bigcalc.oracles", oracleNames),
	))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	results := make([]workerResult, workers)
	progressChan := make(chan progress.ProgressUpdate, workers*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, workers, out)

	for w := range workers {
		g.Go(func() error {
			res, err := runWorker(gctx, opts, w, workers, total, progressChan)
			results[w] = res
			return err
		})
	}

	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	report := mergeResults(results, opts)
	report.Oracles = oracleNames
	report.Workers = workers
	report.Duration = time.Since(start)

	if report.TotalMismatches > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d mismatches", report.TotalMismatches))
	}
	if err != nil {
		span.RecordError(err)
	}
	return report, err
}

func runWorker(ctx context.Context, opts VerifyOptions, w, workers, total int, ch chan<- progress.ProgressUpdate) (workerResult, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "bigcalc.verify.worker",
		trace.WithAttributes(attribute.Int("bigcalc.worker", w)))
	defer span.End()

	res := workerResult{ops: make(map[string]*OpReport, len(opts.Ops))}
	share := (total - w + workers - 1) / workers
	tracker := progress.NewTracker(ch, w, share)

	for j := w; j < total; j += workers {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		opIndex, caseIndex := j/opts.Cases, j%opts.Cases
		op := opts.Ops[opIndex]
		stats := res.ops[op.Name]
		if stats == nil {
			stats = &OpReport{Op: op.Name}
			res.ops[op.Name] = stats
		}

		r := rand.New(rand.NewPCG(CaseSeed(opts.Seed, opIndex, caseIndex)))
		args := op.Operands(r, opts.MaxLimbs)

		began := time.Now()
		got, gotErr := op.Apply(args)
		elapsed := time.Since(began)

		stats.Cases++
		stats.EngineTime += elapsed
		res.total++

		checked, failed := false, false
		for _, o := range opts.Oracles {
			if !o.Supports(op.Name) {
				continue
			}
			checked = true
			want, wantErr := o.Evaluate(op.Name, args)
			if sameOutcome(got, gotErr, want, wantErr) {
				continue
			}
			failed = true
			stats.Mismatches++
			span.AddEvent("mismatch", trace.WithAttributes(
				attribute.String("bigcalc.op", op.Name),
				attribute.String("bigcalc.oracle", o.Name()),
				attribute.Int("bigcalc.case", caseIndex),
			))
			res.mismatches = append(res.mismatches, Mismatch{
				Op: op.Name, Oracle: o.Name(), CaseIndex: caseIndex,
				Args: args, Got: got, GotErr: gotErr, Want: want, WantErr: wantErr,
			})
		}
		switch {
		case !checked:
			stats.Unchecked++
		case gotErr != nil && !failed:
			stats.Rejected++
		}
		if opts.Observer != nil {
			opts.Observer.ObserveCase(op.Name, elapsed, gotErr, failed)
		}
		tracker.Advance(1)
	}
	tracker.Done()
	return res, nil
}

// sameOutcome compares an engine outcome with an oracle outcome: both must
// fail with the same error class or both succeed with equal values.
func sameOutcome(got []bigint.BigInteger, gotErr error, want []bigint.BigInteger, wantErr error) bool {
	switch {
	case gotErr == nil && wantErr == nil:
		return slices.EqualFunc(got, want, bigint.BigInteger.Equal)
	case gotErr == nil || wantErr == nil:
		return false
	}
	return errors.Is(wantErr, oracle.ErrorClass(gotErr))
}

func mergeResults(results []workerResult, opts VerifyOptions) VerificationReport {
	report := VerificationReport{Seed: opts.Seed}
	byOp := make(map[string]*OpReport, len(opts.Ops))
	for _, op := range opts.Ops {
		byOp[op.Name] = &OpReport{Op: op.Name}
	}
	for _, res := range results {
		report.TotalCases += res.total
		for name, s := range res.ops {
			agg := byOp[name]
			agg.Cases += s.Cases
			agg.Rejected += s.Rejected
			agg.Mismatches += s.Mismatches
			agg.Unchecked += s.Unchecked
			agg.EngineTime += s.EngineTime
		}
		report.TotalMismatches += len(res.mismatches)
		report.Mismatches = append(report.Mismatches, res.mismatches...)
	}
	for _, op := range opts.Ops {
		report.Ops = append(report.Ops, *byOp[op.Name])
	}
	slices.SortFunc(report.Mismatches, func(a, b Mismatch) int {
		return cmp.Or(
			cmp.Compare(a.Op, b.Op),
			cmp.Compare(a.CaseIndex, b.CaseIndex),
			cmp.Compare(a.Oracle, b.Oracle),
		)
	})
	if len(report.Mismatches) > MaxRecordedMismatches {
		report.Mismatches = report.Mismatches[:MaxRecordedMismatches]
	}
	return report
}

// AnalyzeVerificationResults presents the report and derives the exit code:
// ExitErrorMismatch when any oracle disagreed with the engine.
func AnalyzeVerificationResults(report VerificationReport, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentVerification(report, out)

	if report.TotalCases == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No case was evaluated.\n")
		return apperrors.ExitErrorGeneric
	}
	if !report.Passed() {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d disagreement(s) between the engine and the reference implementations.\n", report.TotalMismatches)
		return apperrors.ExitErrorMismatch
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. %d cases agree with %v.\n", report.TotalCases, report.Oracles)
	return apperrors.ExitSuccess
}

// ExecuteEval evaluates op once. The engine is not interruptible, so when ctx
// ends first the evaluation is abandoned and the context error returned.
func ExecuteEval(ctx context.Context, op ops.Operation, args []bigint.BigInteger) EvalResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "bigcalc.eval",
		trace.WithAttributes(attribute.String("bigcalc.op", op.Name)))
	defer span.End()

	type outcome struct {
		values []bigint.BigInteger
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		v, err := op.Apply(args)
		done <- outcome{v, err}
	}()

	res := EvalResult{Op: op.Name, Args: args}
	select {
	case o := <-done:
		res.Values, res.Err = o.values, o.err
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	res.Duration = time.Since(start)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	return res
}
