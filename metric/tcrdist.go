package metric

import (
	"fmt"

	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

// tcrDistCeiling is the fixed saturation ceiling of the TcrDist formulation
// of Dash et al; per-position contributions never exceed it.
const tcrDistCeiling = 4.0

// A TcrDistComponent scores one pair of pre-aligned, equal-length CDR
// regions position by position. Matching positions contribute nothing; a
// gap symbol on either side contributes the gap penalty; any other mismatch
// contributes min(4, 4 - sub), where sub is the substitution score of the
// two residues. The total is multiplied by the component weight.
//
// Contributions are not clamped below: a substitution score above 4 yields
// a negative contribution.
type TcrDistComponent struct {
	matrix     *subst.Matrix
	gapPenalty float64
	gapSymbol  seq.Residue
	weight     float64
}

// NewTcrDistComponent creates a TcrDist component metric. The gap penalty
// must be non-negative and the substitution matrix is required.
func NewTcrDistComponent(matrix *subst.Matrix, gapPenalty float64, gapSymbol seq.Residue, weight float64) (*TcrDistComponent, error) {
	if matrix == nil {
		return nil, fmt.Errorf("tcr-dist component requires a substitution " +
			"matrix")
	}
	if gapPenalty < 0 {
		return nil, fmt.Errorf("tcr-dist gap penalty must be non-negative "+
			"(got %f)", gapPenalty)
	}
	return &TcrDistComponent{
		matrix:     matrix,
		gapPenalty: gapPenalty,
		gapSymbol:  gapSymbol,
		weight:     weight,
	}, nil
}

// Score computes the weighted component distance between a and b. The
// sequences must have equal length.
func (t *TcrDistComponent) Score(a, b seq.Sequence) (float64, error) {
	if a.Len() != b.Len() {
		return 0, LengthMismatchError{a.Len(), b.Len()}
	}

	var distance float64
	for i := 0; i < a.Len(); i++ {
		ra, rb := a.Residues[i], b.Residues[i]
		if ra == rb {
			continue
		}
		if ra == t.gapSymbol || rb == t.gapSymbol {
			distance += t.gapPenalty
			continue
		}

		sub, err := t.matrix.Score(ra, rb)
		if err != nil {
			return 0, err
		}
		d := tcrDistCeiling - sub
		if d > tcrDistCeiling {
			d = tcrDistCeiling
		}
		distance += d
	}
	return distance * t.weight, nil
}

// A Record holds the pre-aligned CDR regions of a single receptor, keyed by
// component name (e.g. "cdr_1", "cdr_3").
type Record map[string]seq.Sequence

// TcrDist is the full TcrDist metric: a sum of named component distances,
// one per CDR region of the receptor.
type TcrDist struct {
	names      []string
	components []*TcrDistComponent
}

// NewTcrDist creates a composite TcrDist metric from parallel slices of
// component names and components. Names must be unique and non-empty.
func NewTcrDist(names []string, components []*TcrDistComponent) (*TcrDist, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("tcr-dist requires at least one component")
	}
	if len(names) != len(components) {
		return nil, fmt.Errorf("tcr-dist has %d component names but %d "+
			"components", len(names), len(components))
	}

	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("tcr-dist component names must be " +
				"non-empty")
		}
		if seen[name] {
			return nil, fmt.Errorf("tcr-dist component %q is defined more "+
				"than once", name)
		}
		seen[name] = true
		if components[i] == nil {
			return nil, fmt.Errorf("tcr-dist component %q is nil", name)
		}
	}
	return &TcrDist{names: names, components: components}, nil
}

// DefaultTcrDist returns the composite metric with the component layout of
// Dash et al: cdr_1, cdr_2 and cdr_2_5 at gap penalty 4 and weight 1, and
// cdr_3 at gap penalty 8 and weight 3, all over BLOSUM62 with '-' as the
// gap symbol.
func DefaultTcrDist() *TcrDist {
	matrix := subst.Blosum62()

	names := []string{"cdr_1", "cdr_2", "cdr_2_5", "cdr_3"}
	components := make([]*TcrDistComponent, len(names))
	for i, name := range names {
		gap, weight := 4.0, 1.0
		if name == "cdr_3" {
			gap, weight = 8.0, 3.0
		}
		component, err := NewTcrDistComponent(matrix, gap, '-', weight)
		if err != nil {
			panic(err)
		}
		components[i] = component
	}

	t, err := NewTcrDist(names, components)
	if err != nil {
		panic(err)
	}
	return t
}

// ComponentNames returns the component names in scoring order.
func (t *TcrDist) ComponentNames() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// ScoreRecord sums the component distances between two receptor records.
// Both records must carry every component named at construction, and the
// paired regions of each component must have equal length.
func (t *TcrDist) ScoreRecord(a, b Record) (float64, error) {
	var total float64
	for i, name := range t.names {
		ra, ok := a[name]
		if !ok {
			return 0, fmt.Errorf("record is missing component %q", name)
		}
		rb, ok := b[name]
		if !ok {
			return 0, fmt.Errorf("record is missing component %q", name)
		}

		d, err := t.components[i].Score(ra, rb)
		if err != nil {
			return 0, fmt.Errorf("component %q: %w", name, err)
		}
		total += d
	}
	return total, nil
}
