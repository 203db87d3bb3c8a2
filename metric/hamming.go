package metric

import "github.com/BenTenmann/setriq/seq"

// Hamming sums a fixed mismatch score over the positions at which two
// equal-length sequences differ.
type Hamming struct {
	mismatchScore float64
}

func NewHamming(mismatchScore float64) *Hamming {
	return &Hamming{mismatchScore: mismatchScore}
}

// Score computes the Hamming distance between a and b. The sequences must
// have equal length.
func (h *Hamming) Score(a, b seq.Sequence) (float64, error) {
	if a.Len() != b.Len() {
		return 0, LengthMismatchError{a.Len(), b.Len()}
	}

	var distance float64
	for i := 0; i < a.Len(); i++ {
		if a.Residues[i] != b.Residues[i] {
			distance += h.mismatchScore
		}
	}
	return distance, nil
}
