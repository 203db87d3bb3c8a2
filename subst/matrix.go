// Package subst provides residue substitution scoring matrices in the style
// of BLOSUM: a token index mapping residues to table positions, and a dense
// square table of substitution scores.
//
// A Matrix is immutable after construction and may be shared freely across
// any number of metric instances and goroutines.
package subst

import (
	"fmt"
	"math"

	"github.com/BenTenmann/setriq/seq"
)

// An UnknownTokenError is returned when a substitution score is requested
// for a residue absent from the matrix's token index.
type UnknownTokenError struct {
	Token seq.Residue
}

func (e UnknownTokenError) Error() string {
	return fmt.Sprintf("substitution matrix has no entry for residue %q",
		byte(e.Token))
}

// A Matrix maps pairs of residues to substitution scores. Lookups resolve
// both residues through the token index into row/column positions of a
// dense K x K score table.
type Matrix struct {
	index  [256]int
	scores []float64
	dim    int
}

// New creates a substitution matrix from a token index and a square score
// table. The index positions must be unique and cover [0, K) exactly, where
// K is the dimension of the table. Every table entry must be finite.
func New(index map[seq.Residue]int, scores [][]float64) (*Matrix, error) {
	if len(index) == 0 {
		return nil, fmt.Errorf("substitution matrix requires a non-empty " +
			"token index")
	}

	k := len(scores)
	if k != len(index) {
		return nil, fmt.Errorf("substitution matrix has %d rows, but its "+
			"token index has %d entries", k, len(index))
	}

	m := &Matrix{
		scores: make([]float64, k*k),
		dim:    k,
	}
	for i := range m.index {
		m.index[i] = -1
	}

	seen := make([]bool, k)
	for r, pos := range index {
		if pos < 0 || pos >= k {
			return nil, fmt.Errorf("token index position %d for residue %q "+
				"is out of range [0, %d)", pos, byte(r), k)
		}
		if seen[pos] {
			return nil, fmt.Errorf("token index position %d is assigned to "+
				"more than one residue", pos)
		}
		seen[pos] = true
		m.index[r] = pos
	}

	for i, row := range scores {
		if len(row) != k {
			return nil, fmt.Errorf("substitution matrix is not square: row "+
				"%d has %d entries, but there are %d rows", i, len(row), k)
		}
		for j, score := range row {
			if math.IsNaN(score) || math.IsInf(score, 0) {
				return nil, fmt.Errorf("substitution matrix entry (%d, %d) "+
					"is not finite", i, j)
			}
			m.scores[i*k+j] = score
		}
	}
	return m, nil
}

// Score returns the substitution score for replacing residue 'from' with
// residue 'to'. An UnknownTokenError is returned if either residue is
// missing from the token index.
func (m *Matrix) Score(from, to seq.Residue) (float64, error) {
	i := m.index[from]
	if i < 0 {
		return 0, UnknownTokenError{from}
	}
	j := m.index[to]
	if j < 0 {
		return 0, UnknownTokenError{to}
	}
	return m.scores[i*m.dim+j], nil
}

// Dim returns the dimension K of the score table.
func (m *Matrix) Dim() int {
	return m.dim
}

// Alphabet returns the indexed residues in table order.
func (m *Matrix) Alphabet() seq.Alphabet {
	alpha := make(seq.Alphabet, m.dim)
	for r, pos := range m.index {
		if pos >= 0 {
			alpha[pos] = seq.Residue(r)
		}
	}
	return alpha
}
