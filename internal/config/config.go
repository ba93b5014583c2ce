// Package config defines the application configuration and the command-line
// and environment parsing that produces it.
//
// Configuration priority is: CLI flags > Environment variables > Defaults.
// Environment variables use the CERTMETER_ prefix (e.g. CERTMETER_TIMEOUT).
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/certlab/certmeter/internal/errors"
)

// EnvPrefix is prepended to every environment variable key consulted by
// applyEnvOverrides.
const EnvPrefix = "CERTMETER_"

// Default values applied before flags and environment overrides.
const (
	DefaultAddr     = ":8080"
	DefaultSamples  = 5
	DefaultTimeout  = 5 * time.Minute
	DefaultDistance = "levenshtein"
	DefaultWorkers  = 1
	DefaultPattern  = "sequential"
)

// AppConfig holds the complete runtime configuration of the application.
// Zero values are never used directly; ParseConfig fills in defaults.
type AppConfig struct {
	// Mode selection.
	Serve       bool   // run the HTTP measurement API instead of a one-shot CLI run
	TUI         bool   // run the interactive dashboard
	Interactive bool   // run the measurement REPL
	Addr        string // listen address for --serve
	Completion  string // emit a shell completion script and exit

	// Consistency measurement.
	AgentID       string // identifier recorded in measurement results
	Prompt        string // prompt submitted to the agent for each sample
	ResponsesFile string // pre-recorded responses (one per line) instead of live probing
	Samples       int    // number of responses to collect when probing live
	Distance      string // distance provider name (exact, levenshtein, jaccard, cosine)
	Workers       int    // parallel workers for pairwise distance computation

	// Coordination measurement. A coordination run is selected when
	// Coordinated is explicitly provided.
	Pattern     string  // interaction pattern: sequential, parallel or hierarchical
	BaselineA   float64 // solo performance of agent A
	BaselineB   float64 // solo performance of agent B
	Coordinated float64 // joint performance of the coordinated pair
	AgentBID    string  // identifier of the second agent

	// Agent backend.
	OpenAIModel string  // chat model used by the live prober
	Temperature float64 // sampling temperature passed to the model

	// Common behavior.
	Timeout    time.Duration // overall deadline for the run
	OutputFile string        // write the result as JSON to this file
	Quiet      bool          // suppress progress output, print only the result
	Verbose    bool          // enable debug logging

	// coordination records that the coordinated-performance flag was given,
	// which switches the run into coordination mode.
	coordination bool
}

// coordinationRequested reports whether the coordinated-performance flag was
// given, which switches the run into coordination mode.
func coordinationRequested(fs *flag.FlagSet) bool {
	return isFlagSet(fs, "coordinated")
}

// CoordinationMode reports whether this configuration describes a
// coordination measurement rather than a consistency measurement.
// It is set during ParseConfig and read by the application dispatcher.
func (c *AppConfig) CoordinationMode() bool {
	return c.coordination
}

// ParseConfig parses command-line arguments and environment variables into an
// AppConfig. The returned error, if any, is an *apperrors.ConfigError suitable
// for mapping to an exit code.
//
// Parameters:
//   - programName: the name used in usage output (os.Args[0]).
//   - args: the argument list to parse (os.Args[1:]).
//   - errWriter: destination for flag-package usage and error output.
//
// Returns:
//   - AppConfig: the fully resolved configuration.
//   - error: flag.ErrHelp when -h/--help was requested, or a ConfigError on
//     invalid input.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	config := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.BoolVar(&config.Serve, "serve", false, "Run the HTTP measurement API")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive measurement dashboard")
	fs.BoolVar(&config.Interactive, "interactive", false, "Run the measurement REPL")
	fs.BoolVar(&config.Interactive, "i", false, "Run the measurement REPL (shorthand)")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address for --serve")
	fs.StringVar(&config.Completion, "completion", "", "Generate a shell completion script (bash, zsh, fish, powershell)")

	fs.StringVar(&config.AgentID, "agent-id", "agent", "Agent identifier recorded in results")
	fs.StringVar(&config.Prompt, "prompt", "", "Prompt submitted to the agent for each sample")
	fs.StringVar(&config.ResponsesFile, "responses-file", "", "File of pre-recorded responses, one per line (- for stdin)")
	fs.IntVar(&config.Samples, "samples", DefaultSamples, "Number of responses to collect when probing live")
	fs.StringVar(&config.Distance, "distance", DefaultDistance, "Distance provider: exact, levenshtein, jaccard or cosine")
	fs.IntVar(&config.Workers, "parallel-pairs", DefaultWorkers, "Parallel workers for pairwise distance computation")

	fs.StringVar(&config.Pattern, "pattern", DefaultPattern, "Interaction pattern: sequential, parallel or hierarchical")
	fs.Float64Var(&config.BaselineA, "baseline-a", 0, "Solo performance of agent A")
	fs.Float64Var(&config.BaselineB, "baseline-b", 0, "Solo performance of agent B")
	fs.Float64Var(&config.Coordinated, "coordinated", 0, "Joint performance of the coordinated pair")
	fs.StringVar(&config.AgentBID, "agent-b-id", "agent-b", "Identifier of the second agent")

	fs.StringVar(&config.OpenAIModel, "openai-model", "", "Chat model used by the live prober")
	fs.Float64Var(&config.Temperature, "temperature", 1.0, "Sampling temperature for the live prober")

	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Overall deadline for the run")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result as JSON to this file")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result as JSON to this file (shorthand)")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress output, print only the result")
	fs.BoolVar(&config.Quiet, "q", false, "Suppress progress output (shorthand)")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return config, err
		}
		return config, apperrors.NewConfigError(fmt.Sprintf("invalid arguments: %v", err))
	}

	applyEnvOverrides(&config, fs)
	config.coordination = coordinationRequested(fs)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks cross-field constraints that the flag package cannot
// express. It returns an *apperrors.ConfigError describing the first
// violation found.
func (c *AppConfig) Validate() error {
	if c.Samples < 1 {
		return apperrors.NewConfigError(fmt.Sprintf("samples must be at least 1, got %d", c.Samples))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("timeout must be positive, got %v", c.Timeout))
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError(fmt.Sprintf("parallel-pairs must be at least 1, got %d", c.Workers))
	}
	if c.Serve && strings.TrimSpace(c.Addr) == "" {
		return apperrors.NewConfigError("addr must not be empty when --serve is set")
	}
	if strings.TrimSpace(c.AgentID) == "" {
		return apperrors.NewConfigError("agent-id must not be empty")
	}
	return nil
}
