// Package coordination implements pairwise coordination-effect measurement:
// the ratio γ of observed coordinated performance to a pattern-dependent
// combination of two agents' solo baselines, classified as synergy, neutral
// or interference around a ±5% deadband.
package coordination
