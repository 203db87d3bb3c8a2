package metric

import (
	"fmt"

	"github.com/BenTenmann/setriq/seq"
)

// Levenshtein computes edit distance with unit insertion, deletion and
// substitution costs. A positive extra cost is added to the substitution
// branch of the recurrence, inflating substitutions relative to indels.
//
// Several optimisations keep the common case fast: trivial empty inputs,
// common prefix and suffix trimming, a fast path for single-residue cores,
// and (when the extra cost is zero) a single-row DP that skips the two
// corner triangles no optimal path can cross. None of them changes the
// result.
type Levenshtein struct {
	extraCost float64
	scratch   *scratch
}

// NewLevenshtein creates a Levenshtein metric. The extra substitution cost
// must be non-negative; zero gives the standard edit distance.
func NewLevenshtein(extraCost float64) (*Levenshtein, error) {
	if extraCost < 0 {
		return nil, fmt.Errorf("levenshtein extra cost must be "+
			"non-negative (got %f)", extraCost)
	}
	return &Levenshtein{extraCost: extraCost}, nil
}

// Score computes the edit distance between a and b.
func (l *Levenshtein) Score(a, b seq.Sequence) (float64, error) {
	return l.distance(a.Residues, b.Residues), nil
}

// Copy returns a private copy of the metric with its own row buffer.
func (l *Levenshtein) Copy() Metric {
	return &Levenshtein{extraCost: l.extraCost, scratch: new(scratch)}
}

func (l *Levenshtein) distance(a, b []seq.Residue) float64 {
	if len(a) == 0 {
		return float64(len(b))
	}
	if len(b) == 0 {
		return float64(len(a))
	}

	// Grind down the common prefix, then the common suffix. Neither can
	// contribute to the distance.
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}

	if len(a) == 0 {
		return float64(len(b))
	}
	if len(b) == 0 {
		return float64(len(a))
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 1 {
		return l.single(a[0], b)
	}
	if l.extraCost > 0 {
		return l.weighted(a, b)
	}
	return float64(l.banded(a, b))
}

// single resolves the trimmed core when the shorter side is one residue. If
// r occurs in b, the best edit script matches it and deletes the rest;
// otherwise every residue of b is deleted and, when cheaper than an extra
// deletion plus insertion, one deletion is replaced by a substitution.
func (l *Levenshtein) single(r seq.Residue, b []seq.Residue) float64 {
	found := false
	for _, rb := range b {
		if rb == r {
			found = true
			break
		}
	}
	n := float64(len(b))
	if found {
		return n - 1
	}
	if l.extraCost > 0 && l.extraCost < 1 {
		return n + l.extraCost
	}
	return n + boolToFloat(l.extraCost > 0)
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// weighted is the plain single-row DP used when the extra substitution cost
// is positive. The corner-triangle skip below assumes unit substitutions,
// so it cannot be used here.
func (l *Levenshtein) weighted(a, b []seq.Residue) float64 {
	row := floatbuf(l.scratch, len(b)+1)
	for j := range row {
		row[j] = float64(j)
	}

	subCost := 1 + l.extraCost
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = float64(i)
		for j := 1; j <= len(b); j++ {
			up := row[j]

			d := diag
			if a[i-1] != b[j-1] {
				d += subCost
			}
			if v := up + 1; v < d {
				d = v
			}
			if v := row[j-1] + 1; v < d {
				d = v
			}

			diag = up
			row[j] = d
		}
	}
	return row[len(b)]
}

// banded is the classic single-row edit distance with the half-band
// refinement: the two corner triangles of half-width len(a)/2 cannot lie on
// any optimal path, so the row is only maintained inside the band. The
// inputs must be the trimmed cores with 2 <= len(a) <= len(b).
func (l *Levenshtein) banded(a, b []seq.Residue) int {
	la, lb := len(a)+1, len(b)+1
	half := la / 2

	row := intbuf(l.scratch, lb)
	for j := 0; j < lb-half; j++ {
		row[j] = j
	}
	row[0] = la - half - 1

	end := 0
	for i := 1; i < la; i++ {
		r := a[i-1]

		var p, bi, up, left int
		if i >= la-half {
			// Enter the band partway along the row, skipping the upper
			// triangle. The first in-band cell has no left neighbour.
			offset := i - (la - half)
			bi = offset
			p = offset

			diag := row[p]
			if r != b[bi] {
				diag++
			}
			p++
			bi++

			left = row[p] + 1
			up = left
			if left > diag {
				left = diag
			}
			row[p] = left
			p++
		} else {
			p = 1
			bi = 0
			up, left = i, i
		}

		// The lower triangle shortens the row until the band reaches the
		// right edge.
		if i <= half+1 {
			end = lb + i - half - 2
		}

		for p <= end {
			up--
			diag := up
			if r != b[bi] {
				diag++
			}
			bi++

			left++
			if left > diag {
				left = diag
			}
			up = row[p] + 1
			if left > up {
				left = up
			}
			row[p] = left
			p++
		}

		// Lower band edge: the cell above lies outside the previous row's
		// band, leaving only the diagonal and left candidates.
		if i <= half {
			up--
			diag := up
			if r != b[bi] {
				diag++
			}
			left++
			if left > diag {
				left = diag
			}
			row[p] = left
		}
	}
	return row[end]
}
