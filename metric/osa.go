package metric

import "github.com/BenTenmann/setriq/seq"

// OptimalStringAlignment is the restricted Damerau-Levenshtein distance:
// edit distance where a transposition of two adjacent residues also counts
// as a single edit, with the restriction that no substring is edited more
// than once. It is not a true Damerau-Levenshtein distance.
type OptimalStringAlignment struct {
	scratch *scratch
}

func NewOptimalStringAlignment() *OptimalStringAlignment {
	return &OptimalStringAlignment{}
}

// Score computes the optimal string alignment distance between a and b.
func (o *OptimalStringAlignment) Score(a, b seq.Sequence) (float64, error) {
	return o.distance(a.Residues, b.Residues), nil
}

// Copy returns a private copy of the metric with its own scoring grid.
func (o *OptimalStringAlignment) Copy() Metric {
	return &OptimalStringAlignment{scratch: new(scratch)}
}

func (o *OptimalStringAlignment) distance(a, b []seq.Residue) float64 {
	n, m := len(a), len(b)
	if n == 0 {
		return float64(m)
	}
	if m == 0 {
		return float64(n)
	}

	cols := m + 1
	grid := intbuf(o.scratch, (n+1)*cols)
	for j := 0; j <= m; j++ {
		grid[j] = j
	}

	for i := 1; i <= n; i++ {
		grid[i*cols] = i
		for j := 1; j <= m; j++ {
			d := grid[(i-1)*cols+j-1]
			if a[i-1] != b[j-1] {
				d++
			}
			if v := grid[(i-1)*cols+j] + 1; v < d {
				d = v
			}
			if v := grid[i*cols+j-1] + 1; v < d {
				d = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := grid[(i-2)*cols+j-2] + 1; v < d {
					d = v
				}
			}
			grid[i*cols+j] = d
		}
	}
	return float64(grid[n*cols+m])
}
