package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/certlab/certmeter/internal/cert/consistency"
)

func TestLogsModel_Entries(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(80, 12)

	l.AddConfig(testConfig(), "levenshtein")
	l.AddSample(SampleMsg{Collected: 1, Total: 3})
	l.AddResponses(ResponsesMsg{Count: 3, Source: "replay"})
	l.AddPair(PairMsg{Index: 2, Total: 3, Distance: 0.1234})
	l.AddResult(ResultMsg{
		Result:   consistency.Result{Score: 0.95, MeanDistance: 0.1, StdDistance: 0.005, PairCount: 3},
		Duration: 2 * time.Second,
	})
	l.AddError(errors.New("backend unreachable"))

	view := l.View()
	for _, want := range []string{
		"agent-1",
		"sample 1/3 collected",
		"3 responses ready (replay)",
		"pair 2/3",
		"0.1234",
		"consistency 0.9500",
		"error: backend unreachable",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected the log view to contain %q", want)
		}
	}
}

func TestLogsModel_ScrollClamps(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(40, 5) // 3 visible lines
	for i := 0; i < 10; i++ {
		l.AddSample(SampleMsg{Collected: i + 1, Total: 10})
	}

	l.ScrollDown(5)
	if l.offset != 0 {
		t.Errorf("offset = %d, want 0 after scrolling past the tail", l.offset)
	}

	l.ScrollUp(100)
	if l.offset != 10-l.visibleLines() {
		t.Errorf("offset = %d, want %d after scrolling past the top", l.offset, 10-l.visibleLines())
	}

	l.ScrollDown(1)
	if l.offset != 10-l.visibleLines()-1 {
		t.Errorf("offset = %d after scrolling down one", l.offset)
	}
}

func TestLogsModel_ScrollShowsOlderLines(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(40, 4) // 2 visible lines
	for i := 0; i < 6; i++ {
		l.AddSample(SampleMsg{Collected: i + 1, Total: 6})
	}

	if view := l.View(); !strings.Contains(view, "sample 6/6") {
		t.Error("expected the tail to be visible by default")
	}

	l.ScrollUp(4)
	view := l.View()
	if strings.Contains(view, "sample 6/6") {
		t.Error("expected the tail to scroll out of view")
	}
	if !strings.Contains(view, "sample 2/6") {
		t.Error("expected older lines to become visible")
	}
}

func TestLogsModel_BufferCap(t *testing.T) {
	l := NewLogsModel()
	for i := 0; i < maxLogLines+50; i++ {
		l.AddSample(SampleMsg{Collected: i, Total: maxLogLines})
	}
	if len(l.lines) != maxLogLines {
		t.Errorf("lines = %d, want %d", len(l.lines), maxLogLines)
	}
}

func TestLogsModel_Reset(t *testing.T) {
	l := NewLogsModel()
	l.AddSample(SampleMsg{Collected: 1, Total: 2})
	l.ScrollUp(1)

	l.Reset()
	if len(l.lines) != 0 || l.offset != 0 {
		t.Errorf("lines = %d, offset = %d after Reset, want 0, 0", len(l.lines), l.offset)
	}
}

func TestLogsModel_PageSize(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(40, 10)
	if l.PageSize() != l.visibleLines()-1 {
		t.Errorf("PageSize() = %d", l.PageSize())
	}

	tiny := NewLogsModel()
	tiny.SetSize(40, 0)
	if tiny.PageSize() != 1 {
		t.Errorf("PageSize() = %d, want 1 for a degenerate height", tiny.PageSize())
	}
}
