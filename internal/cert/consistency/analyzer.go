package consistency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/cert/stats"
	apperrors "github.com/certlab/certmeter/internal/errors"
)

// Result holds the outcome of a single consistency measurement.
// It is value-computed once per call and owned exclusively by the caller;
// nothing is retained between invocations.
type Result struct {
	// AgentID identifies the agent whose responses were measured.
	AgentID string `json:"agent_id"`
	// PromptDigest is the hex-encoded SHA-256 of the prompt, a stable
	// identifier that avoids echoing prompt text into results.
	PromptDigest string `json:"prompt_digest"`
	// Score is the consistency score (1 - σ) / μ over pairwise distances.
	// Unbounded above by design; it is never clamped.
	Score float64 `json:"consistency_score"`
	// MeanDistance is the arithmetic mean of the pairwise distances.
	MeanDistance float64 `json:"mean_distance"`
	// StdDistance is the population standard deviation of the pairwise
	// distances (divide by n).
	StdDistance float64 `json:"std_distance"`
	// PairCount is the number of unordered response pairs measured,
	// n·(n-1)/2 for n responses.
	PairCount int `json:"pair_count"`
}

// Analyzer measures how consistent one agent's responses to one prompt are.
// It is a pure, stateless computation over its inputs: a single Analyzer is
// safe for concurrent use from multiple goroutines.
//
// The distance function is an explicit collaborator injected at
// construction, initialized once and shared read-only by all calls.
type Analyzer struct {
	provider distance.Provider
	workers  int
}

// Option configures an Analyzer during construction.
type Option func(*Analyzer)

// WithWorkers bounds the number of goroutines evaluating pairwise distances
// concurrently. Values below 2 select sequential evaluation. Parallel and
// sequential evaluation produce identical results: each distance lands in
// its pair's slot and aggregation is order-independent.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// NewAnalyzer creates an Analyzer backed by the given distance provider.
// By default pairwise distances are evaluated sequentially; use
// WithWorkers to parallelize for large response sets or slow providers.
//
// Parameters:
//   - provider: The distance function collaborator.
//   - opts: Optional configuration.
//
// Returns:
//   - *Analyzer: The configured analyzer.
func NewAnalyzer(provider distance.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{provider: provider, workers: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MeasureConsistency computes the consistency score for an agent's response
// set to a single prompt.
//
// Edge-case policy (explicit rules, not errors):
//   - A single response reports score 1.0 with zero mean/stddev and zero
//     pairs: one response is trivially self-consistent.
//   - If the mean pairwise distance is 0 (all responses pairwise identical
//     under the distance function), the score is exactly 1.0, bypassing the
//     0/0 division.
//
// Parameters:
//   - ctx: The context for cancellation of pairwise evaluation.
//   - agentID: The identifier of the agent under measurement.
//   - prompt: The prompt the responses answer.
//   - responses: The agent's responses, at least one.
//
// Returns:
//   - Result: The consistency measurement.
//   - error: InsufficientDataError for an empty response set; distance
//     provider errors propagate unmodified.
func (a *Analyzer) MeasureConsistency(ctx context.Context, agentID, prompt string, responses []string) (Result, error) {
	if len(responses) == 0 {
		return Result{}, apperrors.InsufficientDataError{Got: 0, Need: 1}
	}

	result := Result{
		AgentID:      agentID,
		PromptDigest: PromptDigest(prompt),
	}

	if len(responses) == 1 {
		result.Score = 1.0
		return result, nil
	}

	distances, err := a.pairwiseDistances(ctx, responses)
	if err != nil {
		return Result{}, err
	}

	mu := stats.Mean(distances)
	sigma := stats.PopulationStdDev(distances)

	result.MeanDistance = mu
	result.StdDistance = sigma
	result.PairCount = len(distances)

	if mu == 0 {
		// All responses pairwise identical under the distance function.
		result.Score = 1.0
		return result, nil
	}

	result.Score = (1 - sigma) / mu
	return result, nil
}

// pairwiseDistances evaluates d(r_j, r_k) for every unordered pair j < k.
// Each distance is written to a fixed slot so the returned slice is
// identical whether evaluation runs sequentially or in parallel.
func (a *Analyzer) pairwiseDistances(ctx context.Context, responses []string) ([]float64, error) {
	n := len(responses)
	distances := make([]float64, n*(n-1)/2)

	if a.workers < 2 {
		idx := 0
		for j := 0; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				d, err := a.provider.Distance(responses[j], responses[k])
				if err != nil {
					return nil, err
				}
				distances[idx] = d
				idx++
			}
		}
		return distances, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := a.workers
	if max := runtime.NumCPU() * 2; workers > max {
		workers = max
	}
	g.SetLimit(workers)

	idx := 0
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			slot, rj, rk := idx, responses[j], responses[k]
			idx++
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				d, err := a.provider.Distance(rj, rk)
				if err != nil {
					return err
				}
				distances[slot] = d
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return distances, nil
}

// PromptDigest returns the hex-encoded SHA-256 digest of prompt.
//
// Parameters:
//   - prompt: The prompt text.
//
// Returns:
//   - string: The 64-character hex digest.
func PromptDigest(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
