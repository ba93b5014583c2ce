// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayConsistencyResult], [DisplayCoordinationResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietConsistency], [FormatClassification].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cert/coordination"
	"github.com/certlab/certmeter/internal/format"
	"github.com/certlab/certmeter/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result as JSON (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the headline number.
	Quiet bool
	// Verbose shows the full measurement detail.
	Verbose bool
}

// WriteResultToFile writes a measurement result to a file as indented JSON.
// A missing parent directory is created.
//
// Parameters:
//   - path: The destination file path.
//   - result: Any JSON-serializable measurement result.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(path string, result any) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	payload = append(payload, '\n')

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietConsistency formats a consistency result for quiet mode.
// Returns a single-line score suitable for scripting.
func FormatQuietConsistency(result consistency.Result) string {
	return format.FormatScore(result.Score)
}

// FormatQuietCoordination formats a coordination result for quiet mode.
func FormatQuietCoordination(result coordination.Result) string {
	return fmt.Sprintf("%s %s", format.FormatScore(result.Effect), result.Classification)
}

// FormatClassification returns a colorized label for a coordination
// classification.
func FormatClassification(class coordination.Classification) string {
	switch class {
	case coordination.ClassSynergy:
		return fmt.Sprintf("%s%s%s", ui.ColorGreen(), class, ui.ColorReset())
	case coordination.ClassInterference:
		return fmt.Sprintf("%s%s%s", ui.ColorRed(), class, ui.ColorReset())
	default:
		return fmt.Sprintf("%s%s%s", ui.ColorYellow(), class, ui.ColorReset())
	}
}

// DisplayConsistencyResult displays a consistency measurement.
//
// Parameters:
//   - out: The output writer.
//   - result: The measurement to display.
//   - config: Output configuration.
func DisplayConsistencyResult(out io.Writer, result consistency.Result, config OutputConfig) {
	if config.Quiet {
		fmt.Fprintln(out, FormatQuietConsistency(result))
		return
	}

	fmt.Fprintf(out, "\n--- Consistency Measurement ---\n")
	fmt.Fprintf(out, "Agent:           %s%s%s\n", ui.ColorBlue(), result.AgentID, ui.ColorReset())
	fmt.Fprintf(out, "Score:           %s%s%s\n", ui.ColorBold(), format.FormatScore(result.Score), ui.ColorReset())
	fmt.Fprintf(out, "Mean distance:   %s\n", format.FormatScore(result.MeanDistance))
	fmt.Fprintf(out, "Std distance:    %s\n", format.FormatScore(result.StdDistance))
	fmt.Fprintf(out, "Pairs compared:  %d\n", result.PairCount)
	if config.Verbose {
		fmt.Fprintf(out, "Prompt digest:   %s%s%s\n", ui.ColorCyan(), result.PromptDigest, ui.ColorReset())
	}
}

// DisplayCoordinationResult displays a coordination measurement.
//
// Parameters:
//   - out: The output writer.
//   - input: The measured pair and baselines.
//   - result: The measurement to display.
//   - config: Output configuration.
func DisplayCoordinationResult(out io.Writer, input coordination.Input, result coordination.Result, config OutputConfig) {
	if config.Quiet {
		fmt.Fprintln(out, FormatQuietCoordination(result))
		return
	}

	fmt.Fprintf(out, "\n--- Coordination Measurement ---\n")
	fmt.Fprintf(out, "Pair:            %s%s%s + %s%s%s (%s)\n",
		ui.ColorBlue(), input.AgentAID, ui.ColorReset(),
		ui.ColorBlue(), input.AgentBID, ui.ColorReset(),
		input.Pattern)
	fmt.Fprintf(out, "Reference:       %s\n", format.FormatScore(result.BaselineReference))
	fmt.Fprintf(out, "Effect (gamma):  %s%s%s\n", ui.ColorBold(), format.FormatScore(result.Effect), ui.ColorReset())
	fmt.Fprintf(out, "Change:          %s\n", format.FormatPercentChange(result.PerformanceChangePercent))
	fmt.Fprintf(out, "Classification:  %s\n", FormatClassification(result.Classification))
	if result.OutOfRange {
		fmt.Fprintf(out, "%s! Inputs outside the conventional [0,1] performance range%s\n",
			ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplaySavedNotice reports where a result was written, unless quiet.
func DisplaySavedNotice(out io.Writer, path string, config OutputConfig) {
	if config.Quiet || path == "" {
		return
	}
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
