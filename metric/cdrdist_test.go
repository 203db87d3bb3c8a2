package metric

import (
	"errors"
	"math"
	"testing"

	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

func abMatrix(t *testing.T) *subst.Matrix {
	m, err := subst.New(
		map[seq.Residue]int{'A': 0, 'B': 1},
		[][]float64{{2, -1}, {-1, 2}},
	)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}
	return m
}

func TestCdrDistSmallMatrix(t *testing.T) {
	c, err := NewCdrDist(abMatrix(t), 1, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	tests := []struct {
		a, b     string
		expected float64
	}{
		// sw(AA, AB) = 2, identity(AA) = identity(AB) = 4:
		// 1 - sqrt(4/16) = 0.5.
		{"AA", "AB", 0.5},
		// Nothing aligns, so the distance is maximal.
		{"A", "B", 1},
		{"AA", "AA", 0},
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

func TestCdrDistIdentityBlosum62(t *testing.T) {
	c, err := NewCdrDist(subst.Blosum62(), 10, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	cdr3s := []string{"CASSLKPNTEAFF", "CASSAHIANYGYTF", "CASRGATETQYF"}
	for _, s := range cdr3s {
		d, err := c.Score(seq.FromString("", s), seq.FromString("", s))
		if err != nil {
			t.Fatalf("Score(%s, %s): unexpected error: %s", s, s, err)
		}
		if d != 0 {
			t.Fatalf("expected zero self-distance for %s, got %f", s, d)
		}
	}
}

func TestCdrDistSymmetry(t *testing.T) {
	c, err := NewCdrDist(subst.Blosum62(), 10, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	a := seq.FromString("", "CASSLKPNTEAFF")
	b := seq.FromString("", "CASRGATETQYF")
	ab, err := c.Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ba, err := c.Score(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ab != ba {
		t.Fatalf("expected symmetry, got %f and %f", ab, ba)
	}
	if ab <= 0 || ab > 1 {
		t.Fatalf("expected a distance in (0, 1] for distinct CDR3s, got %f",
			ab)
	}
}

func TestCdrDistDegenerate(t *testing.T) {
	c, err := NewCdrDist(abMatrix(t), 1, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	// An empty sequence has identity score 0; the distance is 1 by
	// convention.
	d, err := c.Score(seq.FromString("", ""), seq.FromString("", "AB"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d != 1 {
		t.Fatalf("expected distance 1 for an empty sequence, got %f", d)
	}
}

func TestCdrDistUnknownToken(t *testing.T) {
	c, err := NewCdrDist(abMatrix(t), 1, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	_, err = c.Score(seq.FromString("", "AZ"), seq.FromString("", "AB"))
	var unknown subst.UnknownTokenError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected an UnknownTokenError, got %v", err)
	}
}

func TestCdrDistCopy(t *testing.T) {
	c, err := NewCdrDist(subst.Blosum62(), 10, 1)
	if err != nil {
		t.Fatalf("unexpected construction error: %s", err)
	}

	private, ok := interface{}(c).(Copier)
	if !ok {
		t.Fatalf("CdrDist should implement Copier")
	}
	cp := private.Copy()

	a := seq.FromString("", "CASSLKPNTEAFF")
	b := seq.FromString("", "CASSAHIANYGYTF")
	d1, err := c.Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	d2, err := cp.Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d1 != d2 || math.IsNaN(d1) {
		t.Fatalf("copy disagreed with the original: %f vs %f", d1, d2)
	}
}
