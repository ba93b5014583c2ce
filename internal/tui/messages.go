package tui

import (
	"time"

	"github.com/certlab/certmeter/internal/cert/consistency"
	runtimemetrics "github.com/certlab/certmeter/internal/metrics"
	"github.com/certlab/certmeter/internal/sysmon"
)

// TickMsg drives the periodic refresh of the dashboard.
type TickMsg time.Time

// MemStatsMsg carries a process memory snapshot.
type MemStatsMsg struct {
	Snapshot runtimemetrics.MemorySnapshot
}

// SysStatsMsg carries a system-wide CPU and memory snapshot.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// SampleMsg reports one response collected during live probing.
type SampleMsg struct {
	Collected  int
	Total      int
	Generation uint64
}

// ResponsesMsg reports the full response set once collection finished.
type ResponsesMsg struct {
	Count      int
	Source     string // "replay" or model name
	Generation uint64
}

// PairMsg reports one pairwise distance as it is computed.
type PairMsg struct {
	Index      int
	Total      int
	Distance   float64
	Generation uint64
}

// ResultMsg carries the finished consistency measurement.
type ResultMsg struct {
	Result     consistency.Result
	Duration   time.Duration
	Generation uint64
}

// MeasureErrorMsg reports a failed measurement.
type MeasureErrorMsg struct {
	Err        error
	Generation uint64
}

// ContextCancelledMsg signals that the run context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
