package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/certlab/certmeter/internal/config"
	"github.com/certlab/certmeter/internal/format"
)

// maxLogLines caps the log buffer so long sessions do not grow unbounded.
const maxLogLines = 500

// LogsModel is the scrolling event log on the left side of the dashboard.
// Lines are stored pre-styled; offset is the number of lines scrolled up
// from the bottom (0 means following the tail).
type LogsModel struct {
	lines  []string
	offset int
	width  int
	height int
}

// NewLogsModel creates an empty log panel.
func NewLogsModel() LogsModel {
	return LogsModel{}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears all log lines and scroll state.
func (l *LogsModel) Reset() {
	l.lines = nil
	l.offset = 0
}

func (l *LogsModel) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

func (l *LogsModel) addEntry(body string) {
	ts := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.add(ts + " " + body)
}

// AddConfig logs the measurement parameters at the start of a run.
func (l *LogsModel) AddConfig(cfg config.AppConfig, provider string) {
	l.addEntry(logProviderStyle.Render("agent ") + cfg.AgentID +
		logProviderStyle.Render("  distance ") + provider)
	source := fmt.Sprintf("live sampling, %d responses", cfg.Samples)
	if cfg.ResponsesFile != "" {
		source = "replay from " + cfg.ResponsesFile
	}
	l.addEntry(logProviderStyle.Render("source ") + source)
}

// AddSample logs one collected response during live probing.
func (l *LogsModel) AddSample(msg SampleMsg) {
	l.addEntry(logProgressStyle.Render(fmt.Sprintf("sample %d/%d collected", msg.Collected, msg.Total)))
}

// AddResponses logs the completed response collection.
func (l *LogsModel) AddResponses(msg ResponsesMsg) {
	l.addEntry(logSuccessStyle.Render(fmt.Sprintf("%d responses ready (%s)", msg.Count, msg.Source)))
}

// AddPair logs one computed pairwise distance.
func (l *LogsModel) AddPair(msg PairMsg) {
	l.addEntry(logProgressStyle.Render(fmt.Sprintf("pair %d/%d", msg.Index, msg.Total)) +
		fmt.Sprintf("  distance %.4f", msg.Distance))
}

// AddResult logs the finished measurement.
func (l *LogsModel) AddResult(msg ResultMsg) {
	l.addEntry(logSuccessStyle.Render("consistency "+format.FormatScore(msg.Result.Score)) +
		fmt.Sprintf("  μ=%.4f σ=%.4f pairs=%d in %s",
			msg.Result.MeanDistance, msg.Result.StdDistance, msg.Result.PairCount,
			format.FormatExecutionDuration(msg.Duration)))
}

// AddError logs a failed measurement.
func (l *LogsModel) AddError(err error) {
	l.addEntry(logErrorStyle.Render("error: " + err.Error()))
}

// ScrollUp moves the view up by n lines.
func (l *LogsModel) ScrollUp(n int) {
	max := len(l.lines) - l.visibleLines()
	if max < 0 {
		max = 0
	}
	l.offset += n
	if l.offset > max {
		l.offset = max
	}
}

// ScrollDown moves the view down by n lines, back toward the tail.
func (l *LogsModel) ScrollDown(n int) {
	l.offset -= n
	if l.offset < 0 {
		l.offset = 0
	}
}

// PageSize returns the scroll step for page up and page down.
func (l *LogsModel) PageSize() int {
	p := l.visibleLines() - 1
	if p < 1 {
		p = 1
	}
	return p
}

func (l *LogsModel) visibleLines() int {
	v := l.height - 2
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the log panel at its configured size.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}

// renderToHeight renders the log panel stretched to the given outer height.
func (l LogsModel) renderToHeight(height int) string {
	visible := height - 2
	if visible < 1 {
		visible = 1
	}

	end := len(l.lines) - l.offset
	if end > len(l.lines) {
		end = len(l.lines)
	}
	start := end - visible
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(" " + l.lines[i])
	}

	return panelStyle.
		Width(l.width - 2).
		Height(height - 2).
		Render(b.String())
}
