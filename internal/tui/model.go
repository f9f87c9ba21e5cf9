// Package tui is the interactive dashboard of a verification run: a live
// per-operation table, progress and memory figures, and a throughput chart.
package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/metrics"
	"github.com/agbru/bigint/internal/orchestration"
	"github.com/agbru/bigint/internal/sysmon"
)

// tickInterval is the sampling period of counters and system stats.
const tickInterval = 500 * time.Millisecond

const (
	headerHeight  = 1
	minBodyHeight = 8
	// The operations table takes this share of the width; the metrics and
	// chart panels stack in the rest.
	tableWidthPercent = 55
	maxMetricsHeight  = 9
)

// run is one verification run driven by the dashboard. Reset replaces it.
type run struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	report     *orchestration.VerificationReport
	err        error
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	table   OpsTableModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap

	run
	opts      orchestration.VerifyOptions
	tally     *CaseTally
	parentCtx context.Context
	ref       *programRef
	paused    bool

	width, height int
}

// NewModel creates a dashboard for a run of opts. opts.Observer, if set, is
// still notified of every case.
func NewModel(parentCtx context.Context, opts orchestration.VerifyOptions, version string) Model {
	names := make([]string, len(opts.Ops))
	for i, op := range opts.Ops {
		names[i] = op.Name
	}
	oracles := make([]string, len(opts.Oracles))
	for i, o := range opts.Oracles {
		oracles[i] = o.Name()
	}

	tally := NewCaseTally()
	opts.Observer = orchestration.CaseObservers{tally, opts.Observer}
	keymap := DefaultKeyMap()

	m := Model{
		header:    NewHeaderModel(version, opts.Seed, strings.Join(oracles, ", ")),
		table:     NewOpsTableModel(names, opts.Cases),
		metrics:   NewMetricsModel(len(opts.Ops)*opts.Cases, opts.Workers),
		chart:     NewChartModel(),
		footer:    NewFooterModel(keymap),
		keymap:    keymap,
		opts:      opts,
		tally:     tally,
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
	m.run = m.newRun(0)
	return m
}

func (m Model) newRun(generation uint64) run {
	ctx, cancel := context.WithCancel(m.parentCtx)
	return run{ctx: ctx, cancel: cancel, generation: generation, exitCode: apperrors.ExitSuccess}
}

// startCmds launches the current run and its companions.
func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startVerificationCmd(m.ctx, m.ref, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

func (m Model) Init() tea.Cmd { return m.startCmds() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()

	case ProgressMsg:
		if !m.paused {
			m.metrics.UpdateProgress(msg)
		}

	case TickMsg:
		switch {
		case m.done:
			return m, nil
		case m.paused:
			return m, tickCmd()
		}
		return m, tea.Batch(sampleCasesCmd(m.tally), sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case CasesMsg:
		m.applyCases(msg)

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateRSS(msg.ProcessRSS)

	case ReportMsg:
		report := msg.Report
		m.report = &report
		m.footer.SetMismatch(!report.Passed())

	case ErrorMsg:
		m.err = msg.Err
		m.footer.SetError(true)

	case VerificationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		// Counters may have moved since the last tick.
		stats, total := m.tally.Snapshot()
		m.applyCases(CasesMsg{Stats: stats, Total: total, At: time.Now()})
		m.finish(msg.ExitCode)
		m.table.SetFinished(true)
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetMismatch(msg.ExitCode == apperrors.ExitErrorMismatch)
		m.footer.SetError(msg.ExitCode != apperrors.ExitSuccess && msg.ExitCode != apperrors.ExitErrorMismatch)

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(m.exitCode)
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) finish(exitCode int) {
	m.done = true
	m.exitCode = exitCode
	m.header.SetDone()
	m.footer.SetDone(true)
}

func (m *Model) applyCases(msg CasesMsg) {
	m.table.Update(msg.Stats)
	rate := m.metrics.UpdateCases(msg.Total, msg.At)
	m.chart.AddThroughput(rate)
	if m.table.Totals().Mismatches > 0 {
		m.footer.SetMismatch(true)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.run = m.newRun(m.generation + 1)
		m.paused = false
		m.tally.Reset()
		m.header.Reset()
		m.table.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel(len(m.opts.Ops)*m.opts.Cases, m.opts.Workers)
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetMismatch(false)
		m.footer.SetPaused(false)
		m.layoutPanels()
		return m, m.startCmds()

	case key.Matches(msg, m.keymap.Up):
		m.table.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.table.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.table.Scroll(-m.table.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.table.Scroll(m.table.PageSize())
	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		m.layoutPanels()
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	body := max(minBodyHeight, m.height-headerHeight-m.footer.Height())
	left := m.width * tableWidthPercent / 100
	right := m.width - left
	metricsH := min(maxMetricsHeight, body/2)
	m.table.SetSize(left, body)
	m.metrics.SetSize(right, metricsH)
	m.chart.SetSize(right, body-metricsH)
}

// Run shows the dashboard while opts is verified and returns the exit code
// of the last run. Leaving the dashboard early cancels the run.
func Run(ctx context.Context, opts orchestration.VerifyOptions, version string) int {
	initTUIStyles()

	model := NewModel(ctx, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	m, ok := finalModel.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	m.cancel()
	if !m.done || (m.err != nil && apperrors.IsContextError(m.err)) {
		return apperrors.ExitErrorCanceled
	}
	return m.exitCode
}

// startVerificationCmd runs the verification to completion and reports its
// exit code tagged with gen.
func startVerificationCmd(ctx context.Context, ref *programRef, opts orchestration.VerifyOptions, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		report, err := orchestration.ExecuteVerification(ctx, opts, progressReporter, io.Discard)
		if err != nil {
			return VerificationCompleteMsg{
				ExitCode:   presenter.HandleError(err, report.Duration, io.Discard),
				Generation: gen,
			}
		}
		exitCode := orchestration.AnalyzeVerificationResults(report, presenter, io.Discard)
		return VerificationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCasesCmd snapshots the case counters.
func sampleCasesCmd(tally *CaseTally) tea.Cmd {
	return func() tea.Msg {
		stats, total := tally.Snapshot()
		return CasesMsg{Stats: stats, Total: total, At: time.Now()}
	}
}

var runtimeSampler = metrics.NewRuntimeSampler(0)

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		snap := runtimeSampler.Sample()
		return MemStatsMsg{
			Alloc:        snap.HeapAlloc,
			HeapSys:      snap.HeapSys,
			NumGC:        snap.NumGC,
			PauseTotalNs: uint64(snap.PauseTotal),
			NumGoroutine: snap.Goroutines,
		}
	}
}

// sampleSysStatsCmd reads host CPU and memory use and the process RSS.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			ProcessRSS: s.ProcessRSS,
		}
	}
}

// watchContextCmd fires once ctx ends, so a SIGINT closes the dashboard.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
