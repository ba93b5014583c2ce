// Package format provides presentation helpers shared by the CLI and TUI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatScore formats a measurement score with four decimal places, the
// reporting precision used across CLI output and result files. Values far
// outside the typical range still render in full rather than scientific
// notation, since the consistency score is unbounded above.
//
// Parameters:
//   - score: The score to format.
//
// Returns:
//   - string: The formatted score.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}

// FormatPercentChange renders a signed percentage with two decimal places
// (e.g., "+6.67%", "-16.67%").
//
// Parameters:
//   - pct: The percentage to format.
//
// Returns:
//   - string: The formatted signed percentage.
func FormatPercentChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}
