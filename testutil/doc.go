// Package testutil provides testing utilities for fcmeans.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random number generator and helpers
// for generating datasets with known cluster structure.
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformMatrix(100, 4)            // uniform [0, 1)
//	blobs, labels := rng.Blobs(centers, 50, 0.1) // Gaussian blobs
package testutil
