package tui

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/certlab/certmeter/internal/agent"
	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/config"
	apperrors "github.com/certlab/certmeter/internal/errors"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the measurement goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// startMeasurementCmd returns a tea.Cmd that runs a full consistency
// measurement: collect responses, stream each pairwise distance to the
// dashboard, then compute the aggregate result. The generation tags every
// message so a re-measure can discard output from a superseded run.
func startMeasurementCmd(ref *programRef, ctx context.Context, cfg config.AppConfig, provider distance.Provider, gen uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		responses, source, err := gatherResponses(ctx, ref, cfg, gen)
		if err != nil {
			return MeasureErrorMsg{Err: err, Generation: gen}
		}
		ref.Send(ResponsesMsg{Count: len(responses), Source: source, Generation: gen})

		if err := streamPairDistances(ctx, ref, provider, responses, gen); err != nil {
			return MeasureErrorMsg{Err: err, Generation: gen}
		}

		analyzer := consistency.NewAnalyzer(provider, consistency.WithWorkers(cfg.Workers))
		result, err := analyzer.MeasureConsistency(ctx, cfg.AgentID, cfg.Prompt, responses)
		if err != nil {
			return MeasureErrorMsg{Err: err, Generation: gen}
		}

		return ResultMsg{Result: result, Duration: time.Since(start), Generation: gen}
	}
}

// gatherResponses returns the response set to measure plus a short source
// label, either replayed from a file or sampled live from the configured
// model. Live sampling reports per-response progress through the ref.
func gatherResponses(ctx context.Context, ref *programRef, cfg config.AppConfig, gen uint64) ([]string, string, error) {
	if cfg.ResponsesFile != "" {
		responses, err := loadReplayResponses(cfg.ResponsesFile)
		if err != nil {
			return nil, "", err
		}
		return responses, "replay", nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, "", apperrors.NewConfigError(
			"live sampling requires OPENAI_API_KEY (or use --responses-file)")
	}

	opts := []agent.OpenAIOption{agent.WithTemperature(float32(cfg.Temperature))}
	if cfg.OpenAIModel != "" {
		opts = append(opts, agent.WithModel(cfg.OpenAIModel))
	}
	generator := agent.NewOpenAI(apiKey, opts...)

	prober := agent.NewProber(generator,
		agent.WithProgress(func(collected, total int) {
			ref.Send(SampleMsg{Collected: collected, Total: total, Generation: gen})
		}))
	responses, err := prober.Collect(ctx, cfg.Prompt, cfg.Samples)
	if err != nil {
		return nil, "", err
	}
	return responses, generator.Info().Model, nil
}

// streamPairDistances computes every unordered pairwise distance and sends
// each one to the dashboard as it lands. The aggregate result is computed
// separately by the analyzer; this pass only feeds the live chart.
func streamPairDistances(ctx context.Context, ref *programRef, provider distance.Provider, responses []string, gen uint64) error {
	n := len(responses)
	total := n * (n - 1) / 2
	idx := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := provider.Distance(responses[i], responses[j])
			if err != nil {
				return err
			}
			idx++
			ref.Send(PairMsg{Index: idx, Total: total, Distance: d, Generation: gen})
		}
	}
	return nil
}

// loadReplayResponses loads pre-recorded responses, one per line. Blank
// lines are skipped so recorded transcripts can be grouped visually.
func loadReplayResponses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var responses []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		responses = append(responses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return responses, nil
}

// exitCodeFor maps a measurement error to the process exit code.
func exitCodeFor(err error) int {
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
