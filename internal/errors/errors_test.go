package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestConfigError verifies the ConfigError message and constructor.
func TestConfigError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := ConfigError{Message: "bad flag"}
		if err.Error() != "bad flag" {
			t.Errorf("Error() = %q, want %q", err.Error(), "bad flag")
		}
	})

	t.Run("NewConfigError formats message", func(t *testing.T) {
		err := NewConfigError("invalid value %d for %s", 42, "--samples")
		want := "invalid value 42 for --samples"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As recognizes ConfigError", func(t *testing.T) {
		err := NewConfigError("oops")
		var cfgErr ConfigError
		if !errors.As(err, &cfgErr) {
			t.Error("errors.As should match ConfigError")
		}
	})
}

// TestInsufficientDataError verifies the message content and type matching.
func TestInsufficientDataError(t *testing.T) {
	err := InsufficientDataError{Got: 0, Need: 1}

	t.Run("Message names got and need", func(t *testing.T) {
		want := "insufficient data: got 0 observations, need at least 1"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As matches through wrapping", func(t *testing.T) {
		wrapped := WrapError(err, "measuring consistency")
		var target InsufficientDataError
		if !errors.As(wrapped, &target) {
			t.Error("errors.As should match wrapped InsufficientDataError")
		}
		if target.Need != 1 {
			t.Errorf("target.Need = %d, want 1", target.Need)
		}
	})
}

// TestInvalidInputError verifies field and message formatting.
func TestInvalidInputError(t *testing.T) {
	t.Run("Message names field", func(t *testing.T) {
		err := InvalidInputError{Field: "responses[2]", Message: "empty string"}
		want := `invalid input for "responses[2]": empty string`
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("NewInvalidInputError formats message", func(t *testing.T) {
		err := NewInvalidInputError("coordinated_performance", "value %v is not finite", "NaN")
		var target InvalidInputError
		if !errors.As(err, &target) {
			t.Fatal("errors.As should match InvalidInputError")
		}
		if target.Field != "coordinated_performance" {
			t.Errorf("Field = %q, want %q", target.Field, "coordinated_performance")
		}
	})
}

// TestDegenerateBaselineError verifies the message names the pattern.
func TestDegenerateBaselineError(t *testing.T) {
	err := DegenerateBaselineError{Pattern: "sequential"}
	if got := err.Error(); got != `degenerate baseline: reference for pattern "sequential" is zero, coordination ratio undefined` {
		t.Errorf("Error() = %q", got)
	}
}

// TestUnknownPatternError verifies the message names the pattern and the
// accepted set.
func TestUnknownPatternError(t *testing.T) {
	err := UnknownPatternError{Pattern: "round_robin"}
	got := err.Error()
	if got != `unknown interaction pattern "round_robin" (expected sequential, parallel or hierarchical)` {
		t.Errorf("Error() = %q", got)
	}
}

// TestMeasurementError verifies cause preservation and unwrapping.
func TestMeasurementError(t *testing.T) {
	cause := errors.New("distance provider unavailable")
	err := MeasurementError{Cause: cause}

	t.Run("Error returns cause message", func(t *testing.T) {
		if err.Error() != cause.Error() {
			t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		if !errors.Is(err, cause) {
			t.Error("errors.Is should find the wrapped cause")
		}
	})
}

// TestTimeoutError verifies the timeout message.
func TestTimeoutError(t *testing.T) {
	err := TimeoutError{Operation: "measure_consistency", Limit: 5 * time.Minute}
	want := `operation "measure_consistency" timed out after 5m0s`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestWrapError verifies the wrapping helper.
func TestWrapError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil, ...) should return nil")
		}
	})

	t.Run("wrapped error preserves chain", func(t *testing.T) {
		base := errors.New("base")
		wrapped := WrapError(base, "while doing %s", "work")
		if !errors.Is(wrapped, base) {
			t.Error("wrapped error should match base via errors.Is")
		}
		want := fmt.Sprintf("while doing work: %s", base.Error())
		if wrapped.Error() != want {
			t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
		}
	})
}

// TestIsContextError verifies context error detection.
func TestIsContextError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "during probe"), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError() = %v, want %v", got, tt.want)
			}
		})
	}
}
