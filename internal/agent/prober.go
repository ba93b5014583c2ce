package agent

import (
	"context"
	"time"

	apperrors "github.com/certlab/certmeter/internal/errors"
	"github.com/certlab/certmeter/internal/logging"
)

// Prober samples one agent repeatedly on one prompt, collecting the
// response set the consistency analyzer consumes. Sampling is sequential:
// parallel requests against the same backend tend to share rate-limiter
// and batching state, which skews exactly the variance being measured.
type Prober struct {
	generator TextGenerator
	logger    logging.Logger
	delay     time.Duration
	progress  func(collected, total int)
}

// ProberOption configures a Prober during construction.
type ProberOption func(*Prober)

// WithDelay inserts a pause between samples, e.g. to respect rate limits.
func WithDelay(d time.Duration) ProberOption {
	return func(p *Prober) { p.delay = d }
}

// WithProbeLogger sets the logger for per-sample progress events.
func WithProbeLogger(l logging.Logger) ProberOption {
	return func(p *Prober) { p.logger = l }
}

// WithProgress registers a callback invoked after each collected sample.
// The callback runs on the sampling goroutine and must be fast.
func WithProgress(fn func(collected, total int)) ProberOption {
	return func(p *Prober) { p.progress = fn }
}

// NewProber creates a Prober sampling the given generator.
//
// Parameters:
//   - generator: The text-generation source to sample.
//   - opts: Optional configuration.
//
// Returns:
//   - *Prober: The configured prober.
func NewProber(generator TextGenerator, opts ...ProberOption) *Prober {
	p := &Prober{generator: generator}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collect samples the generator count times on prompt and returns the
// responses in generation order.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - prompt: The prompt to sample.
//   - count: The number of samples, at least 1.
//
// Returns:
//   - []string: The collected responses.
//   - error: A ConfigError for count < 1, the context error on
//     cancellation, or the first generation failure wrapped with its
//     sample index.
func (p *Prober) Collect(ctx context.Context, prompt string, count int) ([]string, error) {
	if count < 1 {
		return nil, apperrors.NewConfigError("sample count must be at least 1, got %d", count)
	}

	responses := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.delay):
			}
		}

		resp, err := p.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, apperrors.WrapError(err, "sample %d/%d", i+1, count)
		}
		responses = append(responses, resp)

		if p.progress != nil {
			p.progress(i+1, count)
		}
		if p.logger != nil {
			p.logger.Debug("collected sample",
				logging.Int("sample", i+1),
				logging.Int("total", count),
				logging.Int("length", len(resp)),
			)
		}
	}
	return responses, nil
}
