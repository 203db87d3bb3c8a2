package metric

import (
	"math"

	"github.com/BenTenmann/setriq/align"
	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

// CdrDist is the sequence distance of Thakkar and Bailey-Kellogg: a local
// alignment score between the two sequences, normalised by the geometric
// mean of their self-alignment scores.
//
//	CdrDist(a, b) = 1 - sqrt(sw(a, b)^2 / (sw(a, a) * sw(b, b)))
//
// The self-alignment scores are computed as identity sums rather than full
// alignments. The result is not clamped into [0, 1]; substitution matrices
// with negative diagonal entries can push it outside that range.
type CdrDist struct {
	sw      *align.SmithWaterman
	scratch *align.Scratch
}

// NewCdrDist creates a CdrDist metric over the given substitution matrix
// and gap penalties. Both penalties must be non-negative.
func NewCdrDist(matrix *subst.Matrix, gapOpen, gapExtend float64) (*CdrDist, error) {
	sw, err := align.New(matrix, gapOpen, gapExtend)
	if err != nil {
		return nil, err
	}
	return &CdrDist{sw: sw}, nil
}

// Score computes CdrDist between a and b. If either sequence has a zero
// identity score (an empty sequence, or one whose self-substitution scores
// cancel), the normalisation is undefined and the distance is 1 by
// convention: such a sequence shares nothing alignable with anything.
func (c *CdrDist) Score(a, b seq.Sequence) (float64, error) {
	scratch := c.scratch
	if scratch == nil {
		scratch = new(align.Scratch)
	}

	ab, err := c.sw.ScoreWith(scratch, a.Residues, b.Residues)
	if err != nil {
		return 0, err
	}
	aa, err := c.sw.Identity(a.Residues)
	if err != nil {
		return 0, err
	}
	bb, err := c.sw.Identity(b.Residues)
	if err != nil {
		return 0, err
	}

	denom := aa * bb
	if denom == 0 {
		return 1, nil
	}
	return 1 - math.Sqrt(ab*ab/denom), nil
}

// Copy returns a private copy of the metric with its own alignment scratch.
func (c *CdrDist) Copy() Metric {
	return &CdrDist{sw: c.sw, scratch: new(align.Scratch)}
}
