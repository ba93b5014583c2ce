package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/briandowns/spinner"
)

// fakeSpinner records spinner interactions for assertions.
type fakeSpinner struct {
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start()                     { f.started = true }
func (f *fakeSpinner) Stop()                      { f.stopped = true }
func (f *fakeSpinner) UpdateSuffix(suffix string) { f.suffixes = append(f.suffixes, suffix) }

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = original })
	return fake
}

func TestProbeProgress(t *testing.T) {
	fake := withFakeSpinner(t)

	p := NewProbeProgress(io.Discard, 4, false)
	if !fake.started {
		t.Error("spinner should start immediately")
	}

	p.Update(2, 4)
	p.Update(4, 4)
	p.Done()

	if !fake.stopped {
		t.Error("Done should stop the spinner")
	}
	if len(fake.suffixes) < 3 {
		t.Fatalf("suffix updates = %d, want at least 3", len(fake.suffixes))
	}

	last := fake.suffixes[len(fake.suffixes)-1]
	if !strings.Contains(last, "4/4") {
		t.Errorf("final suffix = %q, should show 4/4", last)
	}
	if !strings.Contains(last, strings.Repeat("█", ProgressBarWidth)) {
		t.Errorf("final suffix = %q, should show a full bar", last)
	}
}

func TestProbeProgressQuiet(t *testing.T) {
	fake := withFakeSpinner(t)

	p := NewProbeProgress(io.Discard, 4, true)
	p.Update(1, 4)
	p.Done()

	if fake.started || len(fake.suffixes) != 0 {
		t.Error("quiet mode should not touch the spinner")
	}
}
