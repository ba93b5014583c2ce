package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the sampling
	// spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the sampling progress display to be decoupled from a specific
// spinner implementation, facilitating easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProbeProgress displays a spinner with a progress bar while an agent is
// being sampled. Construct it with NewProbeProgress, pass Update as the
// prober's progress callback and call Done when sampling finishes.
type ProbeProgress struct {
	spinner Spinner
	total   int
}

// NewProbeProgress creates and starts a sampling progress display writing
// to out. When quiet is true the returned value is a no-op.
func NewProbeProgress(out io.Writer, total int, quiet bool) *ProbeProgress {
	if quiet {
		return &ProbeProgress{}
	}
	p := &ProbeProgress{
		spinner: newSpinner(spinner.WithWriter(out)),
		total:   total,
	}
	p.spinner.UpdateSuffix(fmt.Sprintf(" sampling [%s] 0/%d", progressBar(0, ProgressBarWidth), total))
	p.spinner.Start()
	return p
}

// Update refreshes the progress bar. It matches the signature expected by
// the prober's progress callback.
func (p *ProbeProgress) Update(collected, total int) {
	if p.spinner == nil {
		return
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(collected) / float64(total)
	}
	p.spinner.UpdateSuffix(fmt.Sprintf(" sampling [%s] %d/%d",
		progressBar(ratio, ProgressBarWidth), collected, total))
}

// Done stops the spinner.
func (p *ProbeProgress) Done() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
