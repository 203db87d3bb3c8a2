package metric

import "github.com/BenTenmann/setriq/seq"

// LongestCommonSubstring is the edit distance restricted to insertions and
// deletions: the number of residues that must be removed from both
// sequences until only a longest common subsequence remains.
type LongestCommonSubstring struct {
	scratch *scratch
}

func NewLongestCommonSubstring() *LongestCommonSubstring {
	return &LongestCommonSubstring{}
}

// Score computes the longest common substring distance between a and b.
func (l *LongestCommonSubstring) Score(a, b seq.Sequence) (float64, error) {
	return l.distance(a.Residues, b.Residues), nil
}

// Copy returns a private copy of the metric with its own scoring grid.
func (l *LongestCommonSubstring) Copy() Metric {
	return &LongestCommonSubstring{scratch: new(scratch)}
}

func (l *LongestCommonSubstring) distance(a, b []seq.Residue) float64 {
	n, m := len(a), len(b)
	if n == 0 {
		return float64(m)
	}
	if m == 0 {
		return float64(n)
	}

	cols := m + 1
	grid := intbuf(l.scratch, (n+1)*cols)
	for j := 0; j <= m; j++ {
		grid[j] = j
	}

	for i := 1; i <= n; i++ {
		grid[i*cols] = i
		for j := 1; j <= m; j++ {
			var d int
			if a[i-1] == b[j-1] {
				d = grid[(i-1)*cols+j-1]
			} else {
				d = grid[(i-1)*cols+j] + 1
				if v := grid[i*cols+j-1] + 1; v < d {
					d = v
				}
			}
			grid[i*cols+j] = d
		}
	}
	return float64(grid[n*cols+m])
}
