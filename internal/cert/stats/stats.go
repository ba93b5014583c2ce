// Package stats provides the shared numeric utilities used by the
// measurement analyzers: arithmetic mean and population standard deviation
// over a distance set, plus finiteness guards for performance scalars.
//
// The standard deviation divides by n (population form), not n-1. Both
// analyzers depend on this exact convention for bit-for-bit reproducibility
// of scores across runs and implementations.
package stats

import "math"

// Mean returns the arithmetic mean of values.
// An empty slice yields 0; callers enforce their own minimum-size
// preconditions before aggregating.
//
// Parameters:
//   - values: The sample values to average.
//
// Returns:
//   - float64: The arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the population standard deviation of values,
// dividing the summed squared deviations by n rather than n-1.
// An empty or single-element slice yields 0.
//
// Parameters:
//   - values: The sample values.
//
// Returns:
//   - float64: The population standard deviation.
func PopulationStdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mu := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mu
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// IsFinite reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: The value to check.
//
// Returns:
//   - bool: true if v is a finite number.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
