package distance

// Provider is the pluggable dissimilarity measure consumed by the
// consistency analyzer. Implementations MUST be symmetric
// (Distance(a, b) == Distance(b, a)) and return exactly 0 for identical
// inputs: the analyzer evaluates each unordered pair once and relies on
// both properties.
//
// A Provider may be lexical (edit distance, token overlap) or semantic
// (embedding-space distance); the analyzer is agnostic. Inputs the
// provider cannot process (e.g., empty strings) fail with an
// apperrors.InvalidInputError, never a substituted default distance.
type Provider interface {
	// Name returns the identifier of the distance function (e.g.,
	// "levenshtein"). Used for registry lookup and reporting.
	Name() string

	// Distance returns a non-negative dissimilarity score between two
	// response strings.
	//
	// Parameters:
	//   - a: The first response text.
	//   - b: The second response text.
	//
	// Returns:
	//   - float64: The dissimilarity score (>= 0, 0 for identical inputs).
	//   - error: An apperrors.InvalidInputError if an input cannot be processed.
	Distance(a, b string) (float64, error)
}

// Embedder maps a text to a fixed-dimension vector. It is the collaborator
// behind the embedding-based Cosine provider; the engine never implements
// a neural embedding model itself. An Embedder instance is initialized once
// and shared read-only by all calls.
type Embedder interface {
	// Embed returns the vector representation of text. The dimension must
	// be identical for every input so that vectors are comparable.
	Embed(text string) ([]float64, error)
}
