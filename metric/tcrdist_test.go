package metric

import (
	"errors"
	"testing"

	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

func TestTcrDistComponentBlosum62(t *testing.T) {
	c, err := NewTcrDistComponent(subst.Blosum62(), 4, '-', 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	tests := []struct {
		a, b     string
		expected float64
	}{
		// A/P substitutes at -1 in BLOSUM62: min(4, 4 - (-1)) = 4.
		{"AASQ", "PASQ", 4},
		{"SEQVENCES", "SEQVENCES", 0},
		// A gap on either side costs the flat gap penalty.
		{"A-SQ", "AASQ", 4},
		{"AASQ", "A-SQ", 4},
	}
	for _, test := range tests {
		d, err := c.Score(seq.FromString("", test.a), seq.FromString("", test.b))
		if err != nil {
			t.Fatalf("Score(%s, %s): unexpected error: %s", test.a, test.b, err)
		}
		if d != test.expected {
			t.Fatalf("Score(%s, %s): expected %f, got %f",
				test.a, test.b, test.expected, d)
		}
	}
}

func TestTcrDistComponentWeight(t *testing.T) {
	c, err := NewTcrDistComponent(subst.Blosum62(), 4, '-', 3)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	d, err := c.Score(seq.FromString("", "AASQ"), seq.FromString("", "PASQ"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d != 12 {
		t.Fatalf("expected the weighted distance 12, got %f", d)
	}
}

func TestTcrDistComponentSaturation(t *testing.T) {
	// A substitution score above the ceiling gives a negative
	// contribution; the ceiling caps only from above.
	m, err := subst.New(
		map[seq.Residue]int{'A': 0, 'B': 1},
		[][]float64{{6, 5}, {5, 6}},
	)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}
	c, err := NewTcrDistComponent(m, 4, '-', 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	d, err := c.Score(seq.FromString("", "A"), seq.FromString("", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d != -1 {
		t.Fatalf("expected the unclamped contribution -1, got %f", d)
	}
}

func TestTcrDistComponentLengthMismatch(t *testing.T) {
	c, err := NewTcrDistComponent(subst.Blosum62(), 4, '-', 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	_, err = c.Score(seq.FromString("", "AASQ"), seq.FromString("", "AAS"))
	var mismatch LengthMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a LengthMismatchError, got %v", err)
	}
	if mismatch.LenA != 4 || mismatch.LenB != 3 {
		t.Fatalf("expected lengths (4, 3), got (%d, %d)",
			mismatch.LenA, mismatch.LenB)
	}
}

func TestTcrDistComponentValidation(t *testing.T) {
	if _, err := NewTcrDistComponent(nil, 4, '-', 1); err == nil {
		t.Fatalf("expected an error for a missing substitution matrix")
	}
	if _, err := NewTcrDistComponent(subst.Blosum62(), -4, '-', 1); err == nil {
		t.Fatalf("expected an error for a negative gap penalty")
	}
}

func record(cdrs ...string) Record {
	names := []string{"cdr_1", "cdr_2", "cdr_2_5", "cdr_3"}
	r := make(Record, len(cdrs))
	for i, cdr := range cdrs {
		r[names[i]] = seq.FromString(names[i], cdr)
	}
	return r
}

func TestTcrDistDefaultComposite(t *testing.T) {
	td := DefaultTcrDist()

	// Each of the three weight-1 components contributes 4; cdr_3 is
	// weighted 3x: 4 + 4 + 4 + 12 = 24.
	a := record("AASQ", "AASQ", "AASQ", "AASQ")
	b := record("PASQ", "PASQ", "PASQ", "PASQ")
	d, err := td.ScoreRecord(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d != 24 {
		t.Fatalf("expected the composite distance 24, got %f", d)
	}

	self, err := td.ScoreRecord(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if self != 0 {
		t.Fatalf("expected zero self-distance, got %f", self)
	}
}

func TestTcrDistMissingComponent(t *testing.T) {
	td := DefaultTcrDist()

	a := record("AASQ", "AASQ", "AASQ", "AASQ")
	b := record("PASQ", "PASQ", "PASQ")
	if _, err := td.ScoreRecord(a, b); err == nil {
		t.Fatalf("expected an error for a record missing cdr_3")
	}
}

func TestTcrDistValidation(t *testing.T) {
	c, err := NewTcrDistComponent(subst.Blosum62(), 4, '-', 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	if _, err := NewTcrDist(nil, nil); err == nil {
		t.Fatalf("expected an error for an empty component list")
	}
	if _, err := NewTcrDist([]string{"a", "a"}, []*TcrDistComponent{c, c}); err == nil {
		t.Fatalf("expected an error for duplicate component names")
	}
	if _, err := NewTcrDist([]string{"a"}, []*TcrDistComponent{nil}); err == nil {
		t.Fatalf("expected an error for a nil component")
	}
	if _, err := NewTcrDist([]string{"a", "b"}, []*TcrDistComponent{c}); err == nil {
		t.Fatalf("expected an error for mismatched lengths")
	}
}
