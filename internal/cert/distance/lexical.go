package distance

import (
	"strings"

	apperrors "github.com/certlab/certmeter/internal/errors"
)

// validateInputs rejects inputs the lexical providers cannot process.
// Empty strings carry no lexical signal, so they fail with InvalidInput
// rather than being scored with a default distance.
func validateInputs(a, b string) error {
	if a == "" {
		return apperrors.NewInvalidInputError("a", "empty string")
	}
	if b == "" {
		return apperrors.NewInvalidInputError("b", "empty string")
	}
	return nil
}

// ExactMatch is the simplest distance function: 0 for identical strings,
// 1 otherwise. Useful as a baseline and for agents expected to produce
// byte-identical output.
type ExactMatch struct{}

// Name returns the identifier of the distance function.
func (ExactMatch) Name() string { return "exact" }

// Distance returns 0 if a equals b, 1 otherwise.
//
// Parameters:
//   - a: The first response text.
//   - b: The second response text.
//
// Returns:
//   - float64: 0 or 1.
//   - error: An InvalidInputError for empty inputs.
func (ExactMatch) Distance(a, b string) (float64, error) {
	if err := validateInputs(a, b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	return 1, nil
}

// Levenshtein is a lexical distance function: the edit distance between
// two strings normalized by the length of the longer one, yielding a
// value in [0, 1]. Operates on runes so multi-byte text is measured by
// characters, not bytes.
type Levenshtein struct{}

// Name returns the identifier of the distance function.
func (Levenshtein) Name() string { return "levenshtein" }

// Distance returns the normalized edit distance between a and b.
//
// Parameters:
//   - a: The first response text.
//   - b: The second response text.
//
// Returns:
//   - float64: Edit distance divided by max(len(a), len(b)) in runes.
//   - error: An InvalidInputError for empty inputs.
func (Levenshtein) Distance(a, b string) (float64, error) {
	if err := validateInputs(a, b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	ra, rb := []rune(a), []rune(b)
	edits := editDistance(ra, rb)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return float64(edits) / float64(longest), nil
}

// editDistance computes the Levenshtein edit distance between two rune
// slices using the classic two-row dynamic programming formulation,
// requiring O(min(n, m)) memory.
func editDistance(a, b []rune) int {
	// Keep b as the shorter dimension to minimize the row size.
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// TokenJaccard measures distance as 1 minus the Jaccard similarity of the
// lowercased token sets of the two strings. Insensitive to word order and
// repetition, which makes it a useful middle ground between exact matching
// and embedding-based distances.
type TokenJaccard struct{}

// Name returns the identifier of the distance function.
func (TokenJaccard) Name() string { return "jaccard" }

// Distance returns 1 - |tokens(a) ∩ tokens(b)| / |tokens(a) ∪ tokens(b)|.
//
// Parameters:
//   - a: The first response text.
//   - b: The second response text.
//
// Returns:
//   - float64: The Jaccard distance in [0, 1].
//   - error: An InvalidInputError for empty or token-free inputs.
func (TokenJaccard) Distance(a, b string) (float64, error) {
	if err := validateInputs(a, b); err != nil {
		return 0, err
	}

	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 {
		return 0, apperrors.NewInvalidInputError("a", "no tokens")
	}
	if len(tb) == 0 {
		return 0, apperrors.NewInvalidInputError("b", "no tokens")
	}

	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return 1 - float64(intersection)/float64(union), nil
}

// tokenSet returns the set of lowercased whitespace-delimited tokens in s.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
