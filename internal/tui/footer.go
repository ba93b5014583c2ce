package tui

import "github.com/charmbracelet/lipgloss"

// FooterModel renders the bottom bar: key hints and run status.
type FooterModel struct {
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused toggles the paused status indicator.
func (f *FooterModel) SetPaused(p bool) {
	f.paused = p
}

// SetDone toggles the done status indicator.
func (f *FooterModel) SetDone(d bool) {
	f.done = d
}

// SetError toggles the error status indicator.
func (f *FooterModel) SetError(e bool) {
	f.failed = e
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" re-measure  ") +
		footerKeyStyle.Render("d") + footerDescStyle.Render(" distance  ") +
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause  ") +
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" scroll")

	var status string
	switch {
	case f.failed:
		status = statusErrorStyle.Render("ERROR")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	gap := f.width - lipgloss.Width(hints) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}

	return " " + hints + spaces(gap) + status
}
