// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive behavioral measurements.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cert/coordination"
	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/format"
	"github.com/certlab/certmeter/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultProvider is the distance function used for measurements.
	DefaultProvider string
	// DefaultPattern is the interaction pattern for coordination commands.
	DefaultPattern string
	// Timeout is the maximum duration for each measurement.
	Timeout time.Duration
	// AgentID labels the working response set in results.
	AgentID string
}

// REPL represents an interactive measurement session. Responses are
// accumulated with "add" and measured with "consistency"; coordination
// effects are computed directly from their three scalars.
type REPL struct {
	config          REPLConfig
	factory         *distance.ProviderFactory
	currentProvider string
	currentPattern  string
	responses       []string
	in              io.Reader
	out             io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: Registry of available distance providers.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory *distance.ProviderFactory, config REPLConfig) *REPL {
	currentProvider := config.DefaultProvider
	if _, err := factory.Get(currentProvider); err != nil {
		names := factory.List()
		if len(names) > 0 {
			currentProvider = names[0]
		}
	}

	currentPattern := config.DefaultPattern
	if _, err := coordination.ParsePattern(currentPattern); err != nil {
		currentPattern = string(coordination.PatternSequential)
	}

	return &REPL{
		config:          config,
		factory:         factory,
		currentProvider: currentProvider,
		currentPattern:  currentPattern,
		in:              os.Stdin,
		out:             os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input
// and processes commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"cert> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s📏 Behavioral Measurement - Interactive Mode%s          %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd <response>%s         - Add a response to the working set\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sconsistency%s            - Measure consistency of the working set\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdistance <a> | <b>%s     - Distance between two texts\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scoord <a> <b> <joint>%s  - Coordination effect for baselines a, b\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprovider <name>%s        - Change distance function (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getProviderList())
	fmt.Fprintf(r.out, "  %spattern <name>%s         - Change interaction pattern\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclear%s                  - Discard the working set\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                   - List distance functions\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s                 - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                   - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s           - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getProviderList returns a comma-separated list of available providers.
func (r *REPL) getProviderList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	args := parts[1:]

	switch cmd {
	case "add", "a":
		r.cmdAdd(rest)
	case "consistency", "con":
		r.cmdConsistency()
	case "distance", "d":
		r.cmdDistance(rest)
	case "coord", "coordination":
		r.cmdCoordination(args)
	case "provider", "p":
		r.cmdProvider(args)
	case "pattern":
		r.cmdPattern(args)
	case "clear":
		r.cmdClear()
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// cmdAdd handles the "add" command.
func (r *REPL) cmdAdd(text string) {
	if text == "" {
		fmt.Fprintf(r.out, "%sUsage: add <response>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.responses = append(r.responses, text)
	fmt.Fprintf(r.out, "Working set: %s%d%s response(s)\n", ui.ColorCyan(), len(r.responses), ui.ColorReset())
}

// cmdConsistency measures the working set with the current provider.
func (r *REPL) cmdConsistency() {
	provider, err := r.factory.Get(r.currentProvider)
	if err != nil {
		fmt.Fprintf(r.out, "%sProvider not found: %s%s\n", ui.ColorRed(), r.currentProvider, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	analyzer := consistency.NewAnalyzer(provider)
	result, err := analyzer.MeasureConsistency(ctx, r.config.AgentID, "", r.responses)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sConsistency:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Score:  %s%s%s\n", ui.ColorGreen(), format.FormatScore(result.Score), ui.ColorReset())
	fmt.Fprintf(r.out, "  Mean:   %s%s%s\n", ui.ColorCyan(), format.FormatScore(result.MeanDistance), ui.ColorReset())
	fmt.Fprintf(r.out, "  Std:    %s%s%s\n", ui.ColorCyan(), format.FormatScore(result.StdDistance), ui.ColorReset())
	fmt.Fprintf(r.out, "  Pairs:  %s%d%s\n", ui.ColorCyan(), result.PairCount, ui.ColorReset())
	fmt.Fprintln(r.out)
}

// cmdDistance handles the "distance" command. The two texts are separated
// by " | " so they may contain spaces.
func (r *REPL) cmdDistance(rest string) {
	texts := strings.SplitN(rest, "|", 2)
	if len(texts) != 2 {
		fmt.Fprintf(r.out, "%sUsage: distance <text a> | <text b>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	a := strings.TrimSpace(texts[0])
	b := strings.TrimSpace(texts[1])

	provider, err := r.factory.Get(r.currentProvider)
	if err != nil {
		fmt.Fprintf(r.out, "%sProvider not found: %s%s\n", ui.ColorRed(), r.currentProvider, ui.ColorReset())
		return
	}

	d, err := provider.Distance(a, b)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s(%s) = %s%s%s\n",
		provider.Name(), r.currentProvider, ui.ColorGreen(), format.FormatScore(d), ui.ColorReset())
}

// cmdCoordination handles the "coord" command.
func (r *REPL) cmdCoordination(args []string) {
	if len(args) < 3 {
		fmt.Fprintf(r.out, "%sUsage: coord <baseline a> <baseline b> <coordinated>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	values := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[i], ui.ColorReset())
			return
		}
		values[i] = v
	}

	analyzer := coordination.NewAnalyzer()
	result, err := analyzer.Effect(coordination.Input{
		AgentAID:               "a",
		AgentBID:               "b",
		AgentABaseline:         values[0],
		AgentBBaseline:         values[1],
		CoordinatedPerformance: values[2],
		Pattern:                coordination.Pattern(r.currentPattern),
	})
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sCoordination (%s):%s\n", ui.ColorBold(), r.currentPattern, ui.ColorReset())
	fmt.Fprintf(r.out, "  Reference:  %s%s%s\n", ui.ColorCyan(), format.FormatScore(result.BaselineReference), ui.ColorReset())
	fmt.Fprintf(r.out, "  Effect:     %s%s%s\n", ui.ColorGreen(), format.FormatScore(result.Effect), ui.ColorReset())
	fmt.Fprintf(r.out, "  Change:     %s%s%s\n", ui.ColorCyan(), format.FormatPercentChange(result.PerformanceChangePercent), ui.ColorReset())
	fmt.Fprintf(r.out, "  Class:      %s\n", FormatClassification(result.Classification))
	fmt.Fprintln(r.out)
}

// cmdProvider handles the "provider" command.
func (r *REPL) cmdProvider(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: provider <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available providers: %s\n", r.getProviderList())
		return
	}

	name := strings.ToLower(args[0])
	provider, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown provider: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available providers: %s\n", r.getProviderList())
		return
	}

	r.currentProvider = name
	fmt.Fprintf(r.out, "Distance function changed to: %s%s%s\n", ui.ColorGreen(), provider.Name(), ui.ColorReset())
}

// cmdPattern handles the "pattern" command.
func (r *REPL) cmdPattern(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: pattern <sequential|parallel|hierarchical>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	name := strings.ToLower(args[0])
	if _, err := coordination.ParsePattern(name); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.currentPattern = name
	fmt.Fprintf(r.out, "Interaction pattern changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

// cmdClear discards the working response set.
func (r *REPL) cmdClear() {
	r.responses = nil
	fmt.Fprintf(r.out, "Working set cleared.\n")
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable distance functions:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentProvider {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		provider, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "%s%s%-12s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), provider.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Distance:     %s%s%s\n", ui.ColorCyan(), r.currentProvider, ui.ColorReset())
	fmt.Fprintf(r.out, "  Pattern:      %s%s%s\n", ui.ColorCyan(), r.currentPattern, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Working set:  %s%d%s response(s)\n", ui.ColorCyan(), len(r.responses), ui.ColorReset())
	fmt.Fprintln(r.out)
}
