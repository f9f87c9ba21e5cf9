package tui

import (
	"time"

	"github.com/agbru/bigint/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the workers.
type ProgressMsg struct {
	WorkerIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	FinishedWorkers int
	NumWorkers      int
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// TickMsg drives the periodic sampling of counters and system stats.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	ProcessRSS uint64
}

// CasesMsg is a snapshot of the per-operation counters.
type CasesMsg struct {
	Stats map[string]OpStats
	Total int
	At    time.Time
}

// ReportMsg carries the final verification report.
type ReportMsg struct {
	Report orchestration.VerificationReport
}

// ErrorMsg reports a run that stopped on an error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// VerificationCompleteMsg ends a run of the given generation.
type VerificationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context of a generation ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
