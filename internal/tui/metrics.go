package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/format"
	runtimemetrics "github.com/certlab/certmeter/internal/metrics"
)

// MetricsModel displays runtime memory statistics and the measurement
// figures of the current run.
type MetricsModel struct {
	mem       runtimemetrics.MemorySnapshot
	samples   int
	pairsDone int
	pairTotal int
	result    *consistency.Result
	width     int
	height    int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg.Snapshot
}

// UpdateSamples records the number of responses collected so far.
func (m *MetricsModel) UpdateSamples(collected int) {
	m.samples = collected
}

// UpdatePairs records pairwise distance progress.
func (m *MetricsModel) UpdatePairs(done, total int) {
	m.pairsDone = done
	m.pairTotal = total
}

// UpdateResult stores the finished measurement.
func (m *MetricsModel) UpdateResult(r consistency.Result) {
	m.result = &r
	m.samples = 0
	m.pairsDone = r.PairCount
	m.pairTotal = r.PairCount
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	// Compact top line: Heap: X / Y | GC: N (Xms)
	heapStr := metricValueStyle.Render(formatBytes(m.mem.HeapAlloc) + " / " + formatBytes(m.mem.HeapSys))
	gcPauseStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	topLine := fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcPauseStr)
	rows.WriteString(topLine)

	colWidth := (m.width - 6) / 2

	pairs := fmt.Sprintf("%d/%d", m.pairsDone, m.pairTotal)
	if m.pairTotal == 0 {
		pairs = fmt.Sprintf("sampling (%d)", m.samples)
	}

	leftCol := []string{
		formatMetricCol("Pairs:", pairs, colWidth),
	}
	rightCol := []string{
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.Goroutines), colWidth),
	}

	if m.result != nil {
		leftCol = append(leftCol,
			formatMetricCol("Score:", format.FormatScore(m.result.Score), colWidth),
			formatMetricCol("Mean dist:", fmt.Sprintf("%.4f", m.result.MeanDistance), colWidth),
		)
		rightCol = append(rightCol,
			formatMetricCol("Std dist:", fmt.Sprintf("%.4f", m.result.StdDistance), colWidth),
			formatMetricCol("Digest:", shortDigest(m.result.PromptDigest), colWidth),
		)
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

// shortDigest abbreviates a hex digest for single-line display.
func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12] + "…"
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
