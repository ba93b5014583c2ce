package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/certlab/certmeter/internal/agent"
	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cli"
	apperrors "github.com/certlab/certmeter/internal/errors"
)

// openAIKeyEnv names the environment variable carrying the API key for
// live sampling.
const openAIKeyEnv = "OPENAI_API_KEY"

// runConsistency orchestrates a one-shot consistency measurement: collect
// responses (replay file or live sampling), analyze them, present the
// result.
func (a *Application) runConsistency(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	provider, err := a.Distances.Get(a.Config.Distance)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintResponseSource(a.Config, out)
	}

	responses, code := a.collectResponses(ctx, out)
	if code != apperrors.ExitSuccess {
		return code
	}

	analyzer := consistency.NewAnalyzer(provider, consistency.WithWorkers(a.Config.Workers))
	result, err := analyzer.MeasureConsistency(ctx, a.Config.AgentID, a.Config.Prompt, responses)
	if err != nil {
		return a.reportError(err)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	cli.DisplayConsistencyResult(out, result, outputCfg)

	if err := cli.WriteResultToFile(a.Config.OutputFile, result); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	cli.DisplaySavedNotice(out, a.Config.OutputFile, outputCfg)

	return apperrors.ExitSuccess
}

// collectResponses returns the response set to measure, either replayed
// from a file or sampled live from the configured model.
func (a *Application) collectResponses(ctx context.Context, out io.Writer) ([]string, int) {
	if a.Config.ResponsesFile != "" {
		responses, err := readResponsesFile(a.Config.ResponsesFile)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error reading responses: %v\n", err)
			return nil, apperrors.ExitErrorInput
		}
		return responses, apperrors.ExitSuccess
	}

	apiKey := os.Getenv(openAIKeyEnv)
	if apiKey == "" {
		fmt.Fprintf(a.ErrWriter,
			"Error: live sampling requires %s (or use --responses-file)\n", openAIKeyEnv)
		return nil, apperrors.ExitErrorConfig
	}

	generator := a.newGenerator(apiKey)
	progress := cli.NewProbeProgress(out, a.Config.Samples, a.Config.Quiet)
	defer progress.Done()

	prober := agent.NewProber(generator,
		agent.WithProbeLogger(a.Logger),
		agent.WithProgress(progress.Update))
	responses, err := prober.Collect(ctx, a.Config.Prompt, a.Config.Samples)
	if err != nil {
		progress.Done()
		return nil, a.reportError(err)
	}
	return responses, apperrors.ExitSuccess
}

// newGenerator builds the live text generator from the configuration.
func (a *Application) newGenerator(apiKey string) agent.TextGenerator {
	opts := []agent.OpenAIOption{agent.WithTemperature(float32(a.Config.Temperature))}
	if a.Config.OpenAIModel != "" {
		opts = append(opts, agent.WithModel(a.Config.OpenAIModel))
	}
	return agent.NewOpenAI(apiKey, opts...)
}

// readResponsesFile loads pre-recorded responses, one per line. The path
// "-" reads from standard input. Blank lines are skipped so recorded
// transcripts can be grouped visually.
func readResponsesFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var responses []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		responses = append(responses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return responses, nil
}

// reportError prints a measurement error and maps it to an exit code.
func (a *Application) reportError(err error) int {
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return apperrors.ExitErrorCanceled
	}

	var (
		configErr       apperrors.ConfigError
		insufficientErr apperrors.InsufficientDataError
		invalidErr      apperrors.InvalidInputError
		patternErr      apperrors.UnknownPatternError
		degenerateErr   apperrors.DegenerateBaselineError
	)
	switch {
	case errors.As(err, &configErr):
		return apperrors.ExitErrorConfig
	case errors.As(err, &insufficientErr),
		errors.As(err, &invalidErr),
		errors.As(err, &patternErr),
		errors.As(err, &degenerateErr):
		return apperrors.ExitErrorInput
	default:
		return apperrors.ExitErrorGeneric
	}
}
