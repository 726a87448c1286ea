package mmf

import (
	"fmt"
	"math/rand"
)

const (
	minRandomRows = 1
	probMin       = 0.0
	probMax       = 1.0
)

// RandomSymmetric returns a SliceSource sampling an Erdős–Rényi-like
// symmetric matrix over n rows: each strict-lower pair (i,j), i > j, is
// stored independently with probability p, and every diagonal entry is
// present. The source declares symmetric=true, so BuildCSR mirrors the
// off-diagonal entries into the full matrix.
//
// Determinism: vertex pairs are visited in a fixed order (i asc, j asc)
// and all randomness comes from rng, so a fixed seed reproduces the
// same matrix, which the determinism tests rely on.
func RandomSymmetric(n int, p float64, rng *rand.Rand) (*SliceSource, error) {
	if n < minRandomRows {
		return nil, fmt.Errorf("n=%d < min=%d: %w", n, minRandomRows, ErrBadRandomShape)
	}
	if p < probMin || p > probMax {
		return nil, fmt.Errorf("p=%.6f not in [%.1f,%.1f]: %w", p, probMin, probMax, ErrBadRandomShape)
	}
	if rng == nil && p > probMin && p < probMax {
		return nil, ErrNeedRandSource
	}

	var rows, cols []int
	var vals []float64
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if p == probMax || (p > probMin && rng.Float64() < p) {
				val := 1.0
				if rng != nil {
					val += rng.Float64()
				}
				rows = append(rows, i)
				cols = append(cols, j)
				vals = append(vals, val)
			}
		}
		rows = append(rows, i)
		cols = append(cols, i)
		vals = append(vals, float64(2+i%5))
	}

	return NewSliceSource(n, n, true, rows, cols, vals), nil
}
