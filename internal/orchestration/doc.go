// Package orchestration runs engine evaluations and verification sweeps
// against the reference oracles, and aggregates the results. It decouples
// the work from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
