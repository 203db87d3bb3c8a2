package metric

import "github.com/BenTenmann/setriq/seq"

// Jaro is the Jaro distance: one minus the weighted Jaro similarity, built
// from the number of residues matching within a sliding window and the
// number of half-transpositions among them.
//
// The three component weights apply to the match ratio of a, the match
// ratio of b, and the transposition ratio. They default to 1/3 each and
// need not sum to one. The metric is symmetric in its inputs only when the
// first two weights are equal; asymmetric weights break symmetry.
type Jaro struct {
	weights [3]float64
}

// NewJaro creates a Jaro metric with explicit component weights.
func NewJaro(w1, w2, w3 float64) *Jaro {
	return &Jaro{weights: [3]float64{w1, w2, w3}}
}

// DefaultJaro returns a Jaro metric with the customary equal weights.
func DefaultJaro() *Jaro {
	return NewJaro(1.0/3, 1.0/3, 1.0/3)
}

// Score computes the Jaro distance between a and b. Two empty sequences
// have distance 0; an empty sequence is at distance 1 from any non-empty
// sequence.
func (jm *Jaro) Score(a, b seq.Sequence) (float64, error) {
	return jm.distance(a.Residues, b.Residues), nil
}

func (jm *Jaro) distance(a, b []seq.Residue) float64 {
	na, nb := len(a), len(b)
	if na == 0 || nb == 0 {
		if na == 0 && nb == 0 {
			return 0
		}
		return 1
	}

	maxLen := na
	if nb > maxLen {
		maxLen = nb
	}
	window := maxLen/2 - 1
	if window < 0 {
		// Both sequences are single residues.
		if a[0] == b[0] {
			return 0
		}
		return 1
	}

	matchA := make([]int, na)
	matchB := make([]int, nb)
	matches := 0
	for i := 0; i < na; i++ {
		left := i - window
		if left < 0 {
			left = 0
		}
		right := i + window + 1
		if right > nb {
			right = nb
		}
		for j := left; j < right; j++ {
			if a[i] == b[j] && matchB[j] == 0 {
				matches++
				matchA[i] = i + 1
				matchB[j] = j + 1
				break
			}
		}
	}
	if matches == 0 {
		return 1
	}

	// Collapse both sequences down to their matched residues, in order, and
	// count half-transpositions between the two match strings.
	ma := collapseMatches(a, matchA, matches)
	mb := collapseMatches(b, matchB, matches)
	t := 0.0
	for k := 0; k < matches; k++ {
		if ma[k] != mb[k] {
			t += 0.5
		}
	}

	m := float64(matches)
	sim := jm.weights[0]*(m/float64(na)) +
		jm.weights[1]*(m/float64(nb)) +
		jm.weights[2]*((m-t)/m)
	return 1 - sim
}

func collapseMatches(rs []seq.Residue, matched []int, n int) []seq.Residue {
	out := make([]seq.Residue, 0, n)
	for i, mark := range matched {
		if mark != 0 {
			out = append(out, rs[i])
		}
	}
	return out
}
