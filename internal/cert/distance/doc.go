// Package distance defines the pluggable dissimilarity contract consumed by
// the consistency analyzer, together with the built-in lexical (exact match,
// normalized Levenshtein, token Jaccard) and embedding-space (cosine)
// implementations. All providers are symmetric, return 0 for identical
// inputs, and reject inputs they cannot process instead of substituting a
// default score.
package distance
