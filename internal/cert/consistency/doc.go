// Package consistency implements behavioral consistency measurement for a
// single agent: all pairwise distances between the agent's responses to one
// prompt are aggregated into the score (1 - σ) / μ, with explicit policies
// for single-response sets and zero mean distance.
package consistency
