package pairwise

import (
	"fmt"

	matrix "github.com/skelterjohn/go.matrix"
)

// Squareform expands a condensed distance vector over n sequences into the
// full symmetric n x n distance matrix with a zero diagonal.
func Squareform(condensed []float64, n int) (*matrix.DenseMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("squareform requires a non-negative number "+
			"of sequences (got %d)", n)
	}
	if len(condensed) != n*(n-1)/2 {
		return nil, fmt.Errorf("a condensed distance vector over %d "+
			"sequences must have length %d (got %d)",
			n, n*(n-1)/2, len(condensed))
	}

	flat := make([]float64, n*n)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := condensed[Index(n, i, j)]
			flat[i*n+j] = d
			flat[j*n+i] = d
		}
	}
	return matrix.MakeDenseMatrix(flat, n, n), nil
}
