package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/certlab/certmeter/internal/format"
	"github.com/certlab/certmeter/internal/sysmon"
)

// chartHistory is the sample capacity of each chart series.
const chartHistory = 120

// ChartModel renders the pairwise distance history alongside system-wide
// CPU and memory sparklines.
type ChartModel struct {
	distances *RingBuffer // pairwise distances in [0,1], stored as 0..100
	cpu       *RingBuffer
	mem       *RingBuffer
	doneIn    time.Duration
	done      bool
	width     int
	height    int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		distances: NewRingBuffer(chartHistory),
		cpu:       NewRingBuffer(chartHistory),
		mem:       NewRingBuffer(chartHistory),
	}
}

// SetSize updates dimensions and resizes the series to the drawable width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	inner := w - 4
	if inner < 1 {
		inner = 1
	}
	if inner > chartHistory {
		inner = chartHistory
	}
	c.distances.Resize(inner)
	c.cpu.Resize(inner)
	c.mem.Resize(inner)
}

// AddDistance records one pairwise distance in [0,1].
func (c *ChartModel) AddDistance(d float64) {
	c.distances.Push(d * 100)
}

// UpdateSysStats records a system CPU and memory sample.
func (c *ChartModel) UpdateSysStats(s sysmon.Stats) {
	c.cpu.Push(s.CPUPercent)
	c.mem.Push(s.MemPercent)
}

// SetDone records the total measurement duration for display.
func (c *ChartModel) SetDone(d time.Duration) {
	c.done = true
	c.doneIn = d
}

// Reset clears the distance series for a fresh measurement. The CPU and
// memory series keep running across measurements.
func (c *ChartModel) Reset() {
	c.distances.Reset()
	c.done = false
	c.doneIn = 0
}

// View renders the chart panel.
func (c ChartModel) View() string {
	inner := c.width - 4
	if inner < 1 {
		inner = 1
	}

	var b strings.Builder

	label := metricLabelStyle.Render("Pair distance [0,1]")
	if c.done {
		label += metricLabelStyle.Render("  done in ") +
			metricValueStyle.Render(format.FormatExecutionDuration(c.doneIn))
	}
	b.WriteString(" " + label + "\n")

	if c.distances.Len() == 0 {
		b.WriteString(" " + chartEmptyStyle.Render(strings.Repeat("░", inner)) + "\n")
	} else {
		b.WriteString(" " + chartBarStyle.Render(RenderSparkline(c.distances.Slice(), inner)) + "\n")
		b.WriteString(" " + metricLabelStyle.Render(fmt.Sprintf("last %.4f  n=%d", c.distances.Last()/100, c.distances.Len())) + "\n")
	}

	b.WriteString(" " + metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%% ", c.cpu.Last())) +
		cpuSparklineStyle.Render(RenderSparkline(c.cpu.Slice(), inner-11)) + "\n")
	b.WriteString(" " + metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%% ", c.mem.Last())) +
		memSparklineStyle.Render(RenderSparkline(c.mem.Slice(), inner-11)))

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}
