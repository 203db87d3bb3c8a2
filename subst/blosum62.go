package subst

import (
	"github.com/BurntSushi/cablastp/blosum"

	"github.com/BenTenmann/setriq/seq"
)

// Blosum62 returns the canonical BLOSUM62 substitution matrix. It is built
// once per call; callers computing many distances should construct it once
// and share it.
func Blosum62() *Matrix {
	index := make(map[seq.Residue]int, len(blosum.Alphabet62))
	for i := 0; i < len(blosum.Alphabet62); i++ {
		index[seq.Residue(blosum.Alphabet62[i])] = i
	}

	scores := make([][]float64, len(blosum.Matrix62))
	for i, row := range blosum.Matrix62 {
		scores[i] = make([]float64, len(row))
		for j, score := range row {
			scores[i][j] = float64(score)
		}
	}

	m, err := New(index, scores)
	if err != nil {
		// The BLOSUM62 table is fixed at compile time, so a failure here is
		// a bug in this package.
		panic(err)
	}
	return m
}
