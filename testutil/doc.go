// Package testutil provides testing utilities for ppjoin.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random records, computing the exact
// set-similarity join by brute force, and comparing join results.
//
// # Random Record Generation
//
//	rng := testutil.NewRNG(seed)
//	records := rng.Records(500, 2, 12, 300)      // Zipf-skewed tokens
//	records = rng.WithNearDuplicates(records, 50, 0.2)
//
// # Exact Join (Ground Truth)
//
//	truth := testutil.BruteForceJoin(records, 0.6)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, got)
package testutil
