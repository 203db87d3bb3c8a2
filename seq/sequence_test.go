package seq

import "testing"

func TestFromString(t *testing.T) {
	s := FromString("cdr3", "CASSLKPNTEAFF")
	if s.Name != "cdr3" {
		t.Fatalf("expected name 'cdr3', got '%s'", s.Name)
	}
	if s.Len() != 13 {
		t.Fatalf("expected 13 residues, got %d", s.Len())
	}
	if s.String() != "CASSLKPNTEAFF" {
		t.Fatalf("round trip failed: got '%s'", s.String())
	}
}

func TestCopyIsDeep(t *testing.T) {
	s := FromString("a", "GTA")
	c := s.Copy()
	c.Residues[0] = 'X'
	if s.Residues[0] != 'G' {
		t.Fatalf("mutating a copy changed the original")
	}
}

func TestSliceShares(t *testing.T) {
	s := FromString("a", "GTA")
	sl := s.Slice(1, 3)
	if sl.String() != "TA" {
		t.Fatalf("expected slice 'TA', got '%s'", sl.String())
	}
	sl.Residues[0] = 'X'
	if s.Residues[1] != 'X' {
		t.Fatalf("slices should share residues with the original")
	}
}

func TestAlphabetContains(t *testing.T) {
	if !AlphaAmino.Contains('W') {
		t.Fatalf("expected 'W' in the amino alphabet")
	}
	if AlphaAmino.Contains('-') {
		t.Fatalf("did not expect '-' in the amino alphabet")
	}
	if AlphaAmino.Len() != 20 {
		t.Fatalf("expected 20 amino acids, got %d", AlphaAmino.Len())
	}
}
