package consistency

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/certlab/certmeter/internal/cert/distance"
	apperrors "github.com/certlab/certmeter/internal/errors"
)

// TestMeasureConsistency_EmptyResponses verifies the InsufficientData error
// for an empty response set.
func TestMeasureConsistency_EmptyResponses(t *testing.T) {
	analyzer := NewAnalyzer(distance.Levenshtein{})

	_, err := analyzer.MeasureConsistency(context.Background(), "agent-1", "prompt", nil)

	var insufficient apperrors.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientDataError", err)
	}
	if insufficient.Got != 0 || insufficient.Need != 1 {
		t.Errorf("InsufficientDataError = %+v, want Got=0 Need=1", insufficient)
	}
}

// TestMeasureConsistency_SingleResponse verifies the explicit single-response
// policy: score 1.0, zero statistics, zero pairs.
func TestMeasureConsistency_SingleResponse(t *testing.T) {
	analyzer := NewAnalyzer(distance.Levenshtein{})

	result, err := analyzer.MeasureConsistency(context.Background(), "agent-1", "prompt", []string{"only response"})
	if err != nil {
		t.Fatalf("MeasureConsistency() error = %v", err)
	}

	if result.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", result.Score)
	}
	if result.PairCount != 0 {
		t.Errorf("PairCount = %d, want 0", result.PairCount)
	}
	if result.MeanDistance != 0 || result.StdDistance != 0 {
		t.Errorf("Mean/Std = %v/%v, want 0/0", result.MeanDistance, result.StdDistance)
	}
	if result.AgentID != "agent-1" {
		t.Errorf("AgentID = %q, want %q", result.AgentID, "agent-1")
	}
	if result.PromptDigest != PromptDigest("prompt") {
		t.Errorf("PromptDigest = %q, want digest of prompt", result.PromptDigest)
	}
}

// TestMeasureConsistency_IdenticalResponses verifies the zero-mean policy:
// when every pair is identical under the distance function, the score is
// exactly 1.0 regardless of set size, with no 0/0 division.
func TestMeasureConsistency_IdenticalResponses(t *testing.T) {
	analyzer := NewAnalyzer(distance.Levenshtein{})

	for _, n := range []int{2, 3, 5} {
		responses := make([]string, n)
		for i := range responses {
			responses[i] = "the same answer every time"
		}

		result, err := analyzer.MeasureConsistency(context.Background(), "agent-1", "p", responses)
		if err != nil {
			t.Fatalf("n=%d: MeasureConsistency() error = %v", n, err)
		}
		if result.Score != 1.0 {
			t.Errorf("n=%d: Score = %v, want exactly 1.0", n, result.Score)
		}
		if result.MeanDistance != 0 {
			t.Errorf("n=%d: MeanDistance = %v, want 0", n, result.MeanDistance)
		}
		if result.PairCount != n*(n-1)/2 {
			t.Errorf("n=%d: PairCount = %d, want %d", n, result.PairCount, n*(n-1)/2)
		}
	}
}

// TestMeasureConsistency_Formula verifies the score formula (1 - σ) / μ
// against hand-computed distance sets supplied by a mocked provider.
func TestMeasureConsistency_Formula(t *testing.T) {
	t.Run("uniform distances give zero sigma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		provider := NewMockProvider(ctrl)
		provider.EXPECT().Distance(gomock.Any(), gomock.Any()).Return(0.2, nil).Times(3)

		analyzer := NewAnalyzer(provider)
		result, err := analyzer.MeasureConsistency(context.Background(), "a", "p", []string{"r1", "r2", "r3"})
		if err != nil {
			t.Fatalf("MeasureConsistency() error = %v", err)
		}

		// μ = 0.2, σ = 0 → score (1 - 0) / 0.2 = 5.
		if math.Abs(result.Score-5.0) > 1e-12 {
			t.Errorf("Score = %v, want 5.0", result.Score)
		}
	})

	t.Run("dispersed distances", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		provider := NewMockProvider(ctrl)
		gomock.InOrder(
			provider.EXPECT().Distance("r1", "r2").Return(0.1, nil),
			provider.EXPECT().Distance("r1", "r3").Return(0.2, nil),
			provider.EXPECT().Distance("r2", "r3").Return(0.3, nil),
		)

		analyzer := NewAnalyzer(provider)
		result, err := analyzer.MeasureConsistency(context.Background(), "a", "p", []string{"r1", "r2", "r3"})
		if err != nil {
			t.Fatalf("MeasureConsistency() error = %v", err)
		}

		mu := 0.2
		sigma := math.Sqrt(0.02 / 3.0)
		want := (1 - sigma) / mu
		if math.Abs(result.Score-want) > 1e-12 {
			t.Errorf("Score = %v, want %v", result.Score, want)
		}
		if math.Abs(result.MeanDistance-mu) > 1e-12 {
			t.Errorf("MeanDistance = %v, want %v", result.MeanDistance, mu)
		}
		if math.Abs(result.StdDistance-sigma) > 1e-12 {
			t.Errorf("StdDistance = %v, want %v", result.StdDistance, sigma)
		}
		if result.PairCount != 3 {
			t.Errorf("PairCount = %d, want 3", result.PairCount)
		}
	})

	t.Run("score is not clamped to [0,1]", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// Tiny uniform distances: score (1 - 0) / 0.001 = 1000.
		provider := NewMockProvider(ctrl)
		provider.EXPECT().Distance(gomock.Any(), gomock.Any()).Return(0.001, nil).Times(1)

		analyzer := NewAnalyzer(provider)
		result, err := analyzer.MeasureConsistency(context.Background(), "a", "p", []string{"r1", "r2"})
		if err != nil {
			t.Fatalf("MeasureConsistency() error = %v", err)
		}
		if math.Abs(result.Score-1000) > 1e-9 {
			t.Errorf("Score = %v, want 1000 (unclamped)", result.Score)
		}
	})
}

// TestMeasureConsistency_PairCount verifies that exactly n·(n-1)/2 distance
// evaluations happen for n responses.
func TestMeasureConsistency_PairCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := NewMockProvider(ctrl)
	provider.EXPECT().Distance(gomock.Any(), gomock.Any()).Return(0.5, nil).Times(10)

	analyzer := NewAnalyzer(provider)
	responses := []string{"a1", "a2", "a3", "a4", "a5"}

	result, err := analyzer.MeasureConsistency(context.Background(), "a", "p", responses)
	if err != nil {
		t.Fatalf("MeasureConsistency() error = %v", err)
	}
	if result.PairCount != 10 {
		t.Errorf("PairCount = %d, want 10", result.PairCount)
	}
}

// TestMeasureConsistency_ProviderErrorPropagates verifies that a distance
// failure surfaces unmodified instead of being replaced by a default score.
func TestMeasureConsistency_ProviderErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	providerErr := apperrors.NewInvalidInputError("b", "empty string")
	provider := NewMockProvider(ctrl)
	provider.EXPECT().Distance(gomock.Any(), gomock.Any()).Return(0.0, providerErr)

	analyzer := NewAnalyzer(provider)
	_, err := analyzer.MeasureConsistency(context.Background(), "a", "p", []string{"r1", "r2"})

	var invalid apperrors.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidInputError", err)
	}
}

// TestMeasureConsistency_Determinism verifies bit-for-bit reproducibility
// under a fixed symmetric lexical distance function, across repeated runs
// and across sequential vs parallel pairwise evaluation.
func TestMeasureConsistency_Determinism(t *testing.T) {
	responses := []string{"A is B", "B is A", "A refers to B"}

	sequential := NewAnalyzer(distance.TokenJaccard{})
	parallel := NewAnalyzer(distance.TokenJaccard{}, WithWorkers(4))

	first, err := sequential.MeasureConsistency(context.Background(), "a", "p", responses)
	if err != nil {
		t.Fatalf("MeasureConsistency() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		again, err := sequential.MeasureConsistency(context.Background(), "a", "p", responses)
		if err != nil {
			t.Fatalf("run %d: MeasureConsistency() error = %v", i, err)
		}
		if again != first {
			t.Fatalf("run %d: result differs: %+v vs %+v", i, again, first)
		}

		par, err := parallel.MeasureConsistency(context.Background(), "a", "p", responses)
		if err != nil {
			t.Fatalf("run %d: parallel MeasureConsistency() error = %v", i, err)
		}
		if par != first {
			t.Fatalf("run %d: parallel result differs: %+v vs %+v", i, par, first)
		}
	}
}

// TestMeasureConsistency_ParallelMatchesSequential verifies identical output
// for a larger response set where scheduling order actually varies.
func TestMeasureConsistency_ParallelMatchesSequential(t *testing.T) {
	responses := []string{
		"the capital of France is Paris",
		"Paris is the capital of France",
		"France's capital city is Paris",
		"the French capital is Paris",
		"it is Paris",
		"probably Paris",
	}

	sequential := NewAnalyzer(distance.Levenshtein{})
	parallel := NewAnalyzer(distance.Levenshtein{}, WithWorkers(8))

	want, err := sequential.MeasureConsistency(context.Background(), "a", "p", responses)
	if err != nil {
		t.Fatalf("sequential error = %v", err)
	}
	got, err := parallel.MeasureConsistency(context.Background(), "a", "p", responses)
	if err != nil {
		t.Fatalf("parallel error = %v", err)
	}
	if got != want {
		t.Errorf("parallel result %+v differs from sequential %+v", got, want)
	}
}

// TestMeasureConsistency_ContextCanceled verifies that cancellation stops
// pairwise evaluation.
func TestMeasureConsistency_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewAnalyzer(distance.Levenshtein{})
	_, err := analyzer.MeasureConsistency(ctx, "a", "p", []string{"r1", "r2", "r3"})

	if !apperrors.IsContextError(err) {
		t.Errorf("error = %v, want context error", err)
	}
}

// TestPromptDigest verifies the digest helper.
func TestPromptDigest(t *testing.T) {
	t.Run("known SHA-256 of empty string", func(t *testing.T) {
		want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if got := PromptDigest(""); got != want {
			t.Errorf("PromptDigest(\"\") = %q, want %q", got, want)
		}
	})

	t.Run("stable across calls", func(t *testing.T) {
		if PromptDigest("what is 2+2?") != PromptDigest("what is 2+2?") {
			t.Error("PromptDigest should be deterministic")
		}
	})

	t.Run("distinct prompts yield distinct digests", func(t *testing.T) {
		if PromptDigest("a") == PromptDigest("b") {
			t.Error("distinct prompts should not collide")
		}
	})
}
