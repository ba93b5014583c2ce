package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/certlab/certmeter/internal/config"
	"github.com/certlab/certmeter/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user: the agent under measurement, sampling plan and distance function.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Measurement Configuration ---\n")
	fmt.Fprintf(out, "Measuring agent %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.AgentID, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Sampling plan: %s%d%s responses, %s%s%s distance, %s%d%s pair workers.\n",
		ui.ColorCyan(), cfg.Samples, ui.ColorReset(),
		ui.ColorCyan(), cfg.Distance, ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintResponseSource displays where the responses under measurement come
// from (a replay file or live sampling).
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintResponseSource(cfg config.AppConfig, out io.Writer) {
	var sourceDesc string
	if cfg.ResponsesFile != "" {
		sourceDesc = fmt.Sprintf("replaying recorded responses from %s%s%s",
			ui.ColorGreen(), cfg.ResponsesFile, ui.ColorReset())
	} else {
		sourceDesc = fmt.Sprintf("live sampling via the %s%s%s model",
			ui.ColorGreen(), cfg.OpenAIModel, ui.ColorReset())
	}
	fmt.Fprintf(out, "Response source: %s.\n", sourceDesc)
	fmt.Fprintf(out, "\n--- Starting Measurement ---\n")
}
