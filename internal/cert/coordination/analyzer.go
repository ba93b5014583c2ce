package coordination

import (
	"github.com/certlab/certmeter/internal/cert/stats"
	apperrors "github.com/certlab/certmeter/internal/errors"
	"github.com/certlab/certmeter/internal/logging"
)

// Pattern enumerates how two agents' solo baselines combine into a
// reference point. The set is closed: any other value fails with
// UnknownPattern, never a silent default.
type Pattern string

const (
	// PatternSequential models a hand-off pipeline: the reference is the
	// arithmetic mean of the two baselines, the expectation that sequential
	// performance tracks average solo capability.
	PatternSequential Pattern = "sequential"
	// PatternParallel models redundant parallel work: the reference is the
	// max of the two baselines, the expectation that redundancy is no worse
	// than the better solo agent.
	PatternParallel Pattern = "parallel"
	// PatternHierarchical models a supervisor/worker relationship: the
	// reference is the first agent's baseline alone, the supervisor's solo
	// capability being the expected floor.
	PatternHierarchical Pattern = "hierarchical"
)

// ParsePattern validates a raw pattern string against the enumerated set.
//
// Parameters:
//   - raw: The pattern value as received from a caller.
//
// Returns:
//   - Pattern: The validated pattern.
//   - error: An UnknownPatternError for values outside the set.
func ParsePattern(raw string) (Pattern, error) {
	switch p := Pattern(raw); p {
	case PatternSequential, PatternParallel, PatternHierarchical:
		return p, nil
	default:
		return "", apperrors.UnknownPatternError{Pattern: raw}
	}
}

// Classification is the qualitative reading of a coordination effect.
type Classification string

const (
	// ClassSynergy indicates coordination outperformed the reference.
	ClassSynergy Classification = "synergy"
	// ClassNeutral indicates coordination performed within the noise band
	// around the reference.
	ClassNeutral Classification = "neutral"
	// ClassInterference indicates coordination underperformed the reference.
	ClassInterference Classification = "interference"
)

// Classification thresholds for the coordination effect γ. The ±5% band is
// a deliberate deadband absorbing measurement noise, not a hard 1.0 cut.
const (
	SynergyThreshold      = 1.05
	InterferenceThreshold = 0.95
)

// Input carries the observations for one coordination-effect calculation.
// Baselines and coordinated performance are conventionally in [0, 1];
// out-of-range values are accepted but flagged in the Result, since
// baseline scoring conventions vary by caller.
type Input struct {
	// AgentAID identifies the first agent (the supervisor under the
	// hierarchical pattern).
	AgentAID string `json:"agent_a_id"`
	// AgentBID identifies the second agent.
	AgentBID string `json:"agent_b_id"`
	// AgentABaseline is agent A's solo performance score.
	AgentABaseline float64 `json:"agent_a_baseline"`
	// AgentBBaseline is agent B's solo performance score.
	AgentBBaseline float64 `json:"agent_b_baseline"`
	// CoordinatedPerformance is the observed score of the coordinated pair.
	CoordinatedPerformance float64 `json:"coordinated_performance"`
	// Pattern selects the baseline combination rule.
	Pattern Pattern `json:"interaction_pattern"`
}

// Result holds the outcome of a coordination-effect calculation.
// Derived per call and never persisted.
type Result struct {
	// Effect is the coordination effect γ: observed coordinated performance
	// divided by the pattern-dependent reference.
	Effect float64 `json:"coordination_effect"`
	// BaselineReference is the combined reference the observation was
	// measured against.
	BaselineReference float64 `json:"baseline_reference"`
	// Classification is the qualitative reading of Effect.
	Classification Classification `json:"classification"`
	// PerformanceChangePercent is (γ - 1) · 100, a convenience diagnostic.
	PerformanceChangePercent float64 `json:"performance_change_percent"`
	// OutOfRange flags inputs outside the conventional [0, 1] scoring
	// range. Such inputs are measured, not rejected.
	OutOfRange bool `json:"out_of_range,omitempty"`
}

// Analyzer computes pairwise coordination effects. It is a pure, stateless
// computation over its inputs; a single Analyzer is safe for concurrent use.
type Analyzer struct {
	logger logging.Logger
}

// Option configures an Analyzer during construction.
type Option func(*Analyzer)

// WithLogger sets the logger used to flag out-of-range inputs.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates a coordination analyzer.
//
// Parameters:
//   - opts: Optional configuration.
//
// Returns:
//   - *Analyzer: The configured analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Effect calculates the coordination effect γ for a pair of agents.
//
// The reference baseline is selected by the interaction pattern
// (mean for sequential, max for parallel, agent A's baseline for
// hierarchical), then γ = coordinated performance / reference, classified
// against the ±5% deadband.
//
// Parameters:
//   - input: The baselines, observation, and pattern.
//
// Returns:
//   - Result: The effect, reference, and classification.
//   - error: InvalidInputError for non-finite scalars, UnknownPatternError
//     for a pattern outside the enumerated set, DegenerateBaselineError when
//     the reference evaluates to zero.
func (a *Analyzer) Effect(input Input) (Result, error) {
	if err := validateScalars(input); err != nil {
		return Result{}, err
	}

	reference, err := referenceBaseline(input)
	if err != nil {
		return Result{}, err
	}
	if reference == 0 {
		return Result{}, apperrors.DegenerateBaselineError{Pattern: string(input.Pattern)}
	}

	gamma := input.CoordinatedPerformance / reference

	result := Result{
		Effect:                   gamma,
		BaselineReference:        reference,
		Classification:           classify(gamma),
		PerformanceChangePercent: (gamma - 1) * 100,
		OutOfRange:               anyOutOfRange(input),
	}

	if result.OutOfRange && a.logger != nil {
		a.logger.Info("performance scalar outside conventional [0,1] range",
			logging.String("agent_a", input.AgentAID),
			logging.String("agent_b", input.AgentBID),
			logging.Float64("baseline_a", input.AgentABaseline),
			logging.Float64("baseline_b", input.AgentBBaseline),
			logging.Float64("coordinated", input.CoordinatedPerformance),
		)
	}

	return result, nil
}

// validateScalars rejects non-finite performance scalars with InvalidInput.
func validateScalars(input Input) error {
	checks := []struct {
		field string
		value float64
	}{
		{"agent_a_baseline", input.AgentABaseline},
		{"agent_b_baseline", input.AgentBBaseline},
		{"coordinated_performance", input.CoordinatedPerformance},
	}
	for _, c := range checks {
		if !stats.IsFinite(c.value) {
			return apperrors.NewInvalidInputError(c.field, "value %v is not finite", c.value)
		}
	}
	return nil
}

// referenceBaseline applies the pattern's combination rule.
func referenceBaseline(input Input) (float64, error) {
	switch input.Pattern {
	case PatternSequential:
		return (input.AgentABaseline + input.AgentBBaseline) / 2, nil
	case PatternParallel:
		if input.AgentBBaseline > input.AgentABaseline {
			return input.AgentBBaseline, nil
		}
		return input.AgentABaseline, nil
	case PatternHierarchical:
		return input.AgentABaseline, nil
	default:
		return 0, apperrors.UnknownPatternError{Pattern: string(input.Pattern)}
	}
}

// classify maps γ onto the qualitative scale using the deadband thresholds.
func classify(gamma float64) Classification {
	switch {
	case gamma > SynergyThreshold:
		return ClassSynergy
	case gamma < InterferenceThreshold:
		return ClassInterference
	default:
		return ClassNeutral
	}
}

// anyOutOfRange reports whether any performance scalar falls outside [0, 1].
func anyOutOfRange(input Input) bool {
	for _, v := range []float64{input.AgentABaseline, input.AgentBBaseline, input.CoordinatedPerformance} {
		if v < 0 || v > 1 {
			return true
		}
	}
	return false
}
