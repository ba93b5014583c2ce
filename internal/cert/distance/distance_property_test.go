package distance

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// contractProviders returns every built-in provider, all of which must
// satisfy the Provider contract.
func contractProviders() []Provider {
	return []Provider{
		ExactMatch{},
		Levenshtein{},
		TokenJaccard{},
		NewCosine(&HashedBagOfWords{}),
	}
}

// genText generates non-empty texts with at least one token, the domain
// every provider accepts.
func genText() gopter.Gen {
	return gen.SliceOfN(4, gen.Identifier()).Map(func(words []string) string {
		s := words[0]
		for _, w := range words[1:] {
			s += " " + w
		}
		return s
	})
}

// TestDistanceSymmetry_PropertyBased verifies that every provider is
// symmetric over random string pairs. The analyzer computes each unordered
// pair once, so an asymmetric provider would silently corrupt scores.
func TestDistanceSymmetry_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, provider := range contractProviders() {
		p := provider
		properties.Property(p.Name()+" is symmetric", prop.ForAll(
			func(a, b string) bool {
				dab, errAB := p.Distance(a, b)
				dba, errBA := p.Distance(b, a)
				if errAB != nil || errBA != nil {
					t.Logf("unexpected error: %v / %v", errAB, errBA)
					return false
				}
				return dab == dba
			},
			genText(),
			genText(),
		))
	}

	properties.TestingRun(t)
}

// TestDistanceIdentity_PropertyBased verifies distance(a, a) == 0 for all a.
func TestDistanceIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, provider := range contractProviders() {
		p := provider
		properties.Property(p.Name()+" is zero on identical inputs", prop.ForAll(
			func(a string) bool {
				d, err := p.Distance(a, a)
				if err != nil {
					t.Logf("unexpected error: %v", err)
					return false
				}
				return d == 0
			},
			genText(),
		))
	}

	properties.TestingRun(t)
}

// TestDistanceNonNegative_PropertyBased verifies distance(a, b) >= 0
// for all pairs.
func TestDistanceNonNegative_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, provider := range contractProviders() {
		p := provider
		properties.Property(p.Name()+" is non-negative", prop.ForAll(
			func(a, b string) bool {
				d, err := p.Distance(a, b)
				if err != nil {
					t.Logf("unexpected error: %v", err)
					return false
				}
				return d >= 0
			},
			genText(),
			genText(),
		))
	}

	properties.TestingRun(t)
}
