package metric

import (
	"fmt"

	"github.com/BenTenmann/setriq/seq"
)

// DefaultPrefixCap is the customary bound on the shared-prefix length
// rewarded by the Winkler adjustment.
const DefaultPrefixCap = 4

// JaroWinkler scales the Jaro distance down for sequences sharing a common
// prefix: with shared-prefix length l (capped at maxL) and scaling factor
// p, the distance is jaro * (1 - l*p).
type JaroWinkler struct {
	jaro *Jaro
	p    float64
	maxL int
}

// NewJaroWinkler creates a JaroWinkler metric. The scaling factor p must
// lie in [0, 0.25] and maxL must be non-negative. With maxL at most 4 the
// adjustment can never turn a distance negative; a larger maxL is accepted,
// and then l*p can exceed 1. A nil inner Jaro metric selects the default
// equal weights.
func NewJaroWinkler(p float64, maxL int, jaro *Jaro) (*JaroWinkler, error) {
	if p < 0 || p > 0.25 {
		return nil, fmt.Errorf("jaro-winkler scaling factor must be in "+
			"[0, 0.25] (got %f)", p)
	}
	if maxL < 0 {
		return nil, fmt.Errorf("jaro-winkler prefix cap must be "+
			"non-negative (got %d)", maxL)
	}
	if jaro == nil {
		jaro = DefaultJaro()
	}
	return &JaroWinkler{jaro: jaro, p: p, maxL: maxL}, nil
}

// Score computes the Jaro-Winkler distance between a and b.
func (jw *JaroWinkler) Score(a, b seq.Sequence) (float64, error) {
	d := jw.jaro.distance(a.Residues, b.Residues)

	minLen := a.Len()
	if b.Len() < minLen {
		minLen = b.Len()
	}
	l := 0
	for l < minLen && l < jw.maxL && a.Residues[l] == b.Residues[l] {
		l++
	}
	return d * (1 - float64(l)*jw.p), nil
}
