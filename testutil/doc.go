// Package testutil provides testing utilities for vecdist.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG for generating float64 feature
// vectors and small helpers for building related vectors.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float64, 128)
//	rng.FillUniformRange(vec, -5, 5)         // uniform [-5, 5)
//	vecs := rng.UniformRangeVectors(100, 16) // uniform [-1, 1)
//	unit := rng.UnitVector(16)               // L2-normalized
//
// # Derived Vectors
//
//	opposite := testutil.Negate(vec)
//	scaled := testutil.Scale(vec, 3)
package testutil
