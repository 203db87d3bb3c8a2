// Package align implements local sequence alignment scoring in the style of
// Smith and Waterman. Only the maximal alignment score is computed; no
// traceback or alignment strings are produced.
package align

import (
	"fmt"

	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

// A Scratch holds the transient scoring matrix used during a single call to
// ScoreWith. It grows to fit the largest pair of sequences it has seen and
// is reused across calls. A Scratch must not be shared between goroutines.
type Scratch struct {
	cells []float64
}

func (s *Scratch) grid(size int) []float64 {
	if cap(s.cells) < size {
		s.cells = make([]float64, size)
	}
	cells := s.cells[:size]
	for i := range cells {
		cells[i] = 0
	}
	return cells
}

// SmithWaterman scores local alignments between pairs of sequences under a
// substitution matrix and a linear gap model: opening a gap costs gapOpen,
// and every residue extending it costs a further gapExtend.
type SmithWaterman struct {
	matrix    *subst.Matrix
	gapOpen   float64
	gapExtend float64
}

// New creates a Smith-Waterman aligner. Both penalties must be
// non-negative; they are subtracted from alignment scores.
func New(matrix *subst.Matrix, gapOpen, gapExtend float64) (*SmithWaterman, error) {
	if matrix == nil {
		return nil, fmt.Errorf("aligner requires a substitution matrix")
	}
	if gapOpen < 0 || gapExtend < 0 {
		return nil, fmt.Errorf("gap penalties must be non-negative "+
			"(got open %f, extend %f)", gapOpen, gapExtend)
	}
	return &SmithWaterman{
		matrix:    matrix,
		gapOpen:   gapOpen,
		gapExtend: gapExtend,
	}, nil
}

// Score returns the maximal local alignment score between a and b. It is
// equivalent to ScoreWith on a fresh Scratch.
func (sw *SmithWaterman) Score(a, b []seq.Residue) (float64, error) {
	return sw.ScoreWith(new(Scratch), a, b)
}

// ScoreWith fills an (n+1) x (m+1) scoring matrix held in scratch and
// returns its maximal cell. Cell (i, j) is the best score of any local
// alignment ending at a[i-1], b[j-1], clamped below at zero. Gap scores are
// scanned explicitly over every possible gap length ending at the cell.
//
// An UnknownTokenError from the substitution matrix aborts the computation.
func (sw *SmithWaterman) ScoreWith(scratch *Scratch, a, b []seq.Residue) (float64, error) {
	n, m := len(a), len(b)
	cols := m + 1
	h := scratch.grid((n + 1) * cols)

	best := 0.0
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub, err := sw.matrix.Score(a[i-1], b[j-1])
			if err != nil {
				return 0, err
			}

			score := h[(i-1)*cols+j-1] + sub
			if gap := sw.bestColumnGap(h, cols, i, j); gap > score {
				score = gap
			}
			if gap := sw.bestRowGap(h, cols, i, j); gap > score {
				score = gap
			}
			if score < 0 {
				score = 0
			}

			if score > best {
				best = score
			}
			h[i*cols+j] = score
		}
	}
	return best, nil
}

// bestColumnGap scans every gap length t ending at cell (i, j) that
// consumes residues of a, scoring h[i-t][j] - gapOpen - (t-1)*gapExtend.
// The result is clamped below at zero.
func (sw *SmithWaterman) bestColumnGap(h []float64, cols, i, j int) float64 {
	best := 0.0
	for t := 1; t <= i; t++ {
		score := h[(i-t)*cols+j] - sw.gapOpen - float64(t-1)*sw.gapExtend
		if score > best {
			best = score
		}
	}
	return best
}

// bestRowGap is the row-axis counterpart of bestColumnGap, consuming
// residues of b.
func (sw *SmithWaterman) bestRowGap(h []float64, cols, i, j int) float64 {
	best := 0.0
	for t := 1; t <= j; t++ {
		score := h[i*cols+j-t] - sw.gapOpen - float64(t-1)*sw.gapExtend
		if score > best {
			best = score
		}
	}
	return best
}

// Identity returns the sum of the self-substitution scores of a. This equals
// the score of aligning a with itself whenever the best self-alignment is
// the ungapped main diagonal, as it is for matrices with a dominant positive
// diagonal; for other matrices the two can differ.
func (sw *SmithWaterman) Identity(a []seq.Residue) (float64, error) {
	var total float64
	for _, r := range a {
		score, err := sw.matrix.Score(r, r)
		if err != nil {
			return 0, err
		}
		total += score
	}
	return total, nil
}
