package distance

import (
	"fmt"
	"sort"
)

// ProviderFactory manages the registry of available distance functions,
// allowing callers to obtain implementations by name. The registry is
// built once at construction and read-only afterwards, so a single
// factory is safe for concurrent use.
type ProviderFactory struct {
	providers map[string]Provider
}

// NewDefaultFactory creates a factory pre-registered with the built-in
// distance functions: exact, levenshtein, jaccard, and cosine (backed by
// the hashed bag-of-words embedder).
//
// Returns:
//   - *ProviderFactory: The populated factory.
func NewDefaultFactory() *ProviderFactory {
	return NewFactory(
		ExactMatch{},
		Levenshtein{},
		TokenJaccard{},
		NewCosine(&HashedBagOfWords{}),
	)
}

// NewFactory creates a factory holding the given providers, keyed by
// their Name().
//
// Parameters:
//   - providers: The distance functions to register.
//
// Returns:
//   - *ProviderFactory: The populated factory.
func NewFactory(providers ...Provider) *ProviderFactory {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &ProviderFactory{providers: m}
}

// Get returns the provider registered under name.
//
// Parameters:
//   - name: The provider identifier (e.g., "levenshtein").
//
// Returns:
//   - Provider: The registered implementation.
//   - error: An error naming the unknown provider and the available set.
func (f *ProviderFactory) Get(name string) (Provider, error) {
	p, ok := f.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown distance function %q (available: %v)", name, f.List())
	}
	return p, nil
}

// List returns the sorted names of all registered providers.
// Sorted order keeps selection and reporting reproducible.
//
// Returns:
//   - []string: The sorted provider names.
func (f *ProviderFactory) List() []string {
	names := make([]string, 0, len(f.providers))
	for name := range f.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns all registered providers in List() order.
//
// Returns:
//   - []Provider: The registered implementations, sorted by name.
func (f *ProviderFactory) GetAll() []Provider {
	all := make([]Provider, 0, len(f.providers))
	for _, name := range f.List() {
		all = append(all, f.providers[name])
	}
	return all
}
