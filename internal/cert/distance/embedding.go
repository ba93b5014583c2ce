package distance

import (
	"hash/fnv"
	"math"
	"strings"

	apperrors "github.com/certlab/certmeter/internal/errors"
)

// Cosine measures distance in embedding space: 1 minus the cosine
// similarity of the two texts' vectors. The embedding computation itself is
// delegated to the injected Embedder collaborator, which is constructed once
// and shared read-only by all calls.
type Cosine struct {
	embedder Embedder
}

// NewCosine creates a Cosine provider backed by the given embedder.
//
// Parameters:
//   - embedder: The collaborator producing vector representations.
//
// Returns:
//   - *Cosine: The configured provider.
func NewCosine(embedder Embedder) *Cosine {
	return &Cosine{embedder: embedder}
}

// Name returns the identifier of the distance function.
func (*Cosine) Name() string { return "cosine" }

// Distance returns the cosine distance between the embeddings of a and b.
//
// Parameters:
//   - a: The first response text.
//   - b: The second response text.
//
// Returns:
//   - float64: 1 - cos(embed(a), embed(b)), clamped to 0 against
//     floating-point rounding below zero.
//   - error: An InvalidInputError for empty inputs or zero-norm vectors,
//     or any error from the embedder.
func (c *Cosine) Distance(a, b string) (float64, error) {
	if err := validateInputs(a, b); err != nil {
		return 0, err
	}

	// Identical inputs are exactly 0 by contract; skip the embedding
	// round-trip and its floating-point noise.
	if a == b {
		return 0, nil
	}

	va, err := c.embedder.Embed(a)
	if err != nil {
		return 0, apperrors.WrapError(err, "embedding first input")
	}
	vb, err := c.embedder.Embed(b)
	if err != nil {
		return 0, apperrors.WrapError(err, "embedding second input")
	}
	if len(va) != len(vb) {
		return 0, apperrors.NewInvalidInputError("embedding", "dimension mismatch: %d vs %d", len(va), len(vb))
	}

	var dot, normA, normB float64
	for i := range va {
		dot += va[i] * vb[i]
		normA += va[i] * va[i]
		normB += vb[i] * vb[i]
	}
	if normA == 0 {
		return 0, apperrors.NewInvalidInputError("a", "zero-norm embedding")
	}
	if normB == 0 {
		return 0, apperrors.NewInvalidInputError("b", "zero-norm embedding")
	}

	d := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	if d < 0 {
		// Rounding can push the similarity of near-identical vectors
		// marginally above 1; the contract requires a non-negative result.
		d = 0
	}
	return d, nil
}

// DefaultEmbeddingDim is the vector dimension of the hashed bag-of-words
// embedder. Large enough that token hash collisions are rare in typical
// LLM responses, small enough to keep pairwise evaluation cheap.
const DefaultEmbeddingDim = 256

// HashedBagOfWords is a deterministic, dependency-free Embedder: each
// lowercased token is hashed (FNV-1a) into a fixed-dimension count vector.
// It is the default collaborator for the Cosine provider in offline and
// test scenarios; deployments wanting true semantic distance substitute an
// Embedder backed by a sentence-embedding service.
type HashedBagOfWords struct {
	// Dim is the vector dimension. Zero selects DefaultEmbeddingDim.
	Dim int
}

// Embed returns the hashed token-count vector for text.
//
// Parameters:
//   - text: The text to embed.
//
// Returns:
//   - []float64: A vector of length Dim (or DefaultEmbeddingDim).
//   - error: An InvalidInputError if the text contains no tokens.
func (h *HashedBagOfWords) Embed(text string) ([]float64, error) {
	dim := h.Dim
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}

	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return nil, apperrors.NewInvalidInputError("text", "no tokens")
	}

	vec := make([]float64, dim)
	for _, tok := range fields {
		hasher := fnv.New32a()
		hasher.Write([]byte(tok))
		vec[int(hasher.Sum32())%dim]++
	}
	return vec, nil
}
