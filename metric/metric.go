// Package metric implements string distance functions over biological
// sequences: alignment-based distances (CdrDist, TcrDist), edit distances
// (Levenshtein, OptimalStringAlignment, LongestCommonSubstring, Hamming) and
// similarity-derived distances (Jaro, JaroWinkler).
//
// Every metric is configured once at construction and is thereafter
// immutable; Score is pure and safe to call from multiple goroutines,
// except on the private copies described under Copier.
package metric

import (
	"fmt"

	"github.com/BenTenmann/setriq/seq"
)

// A Metric computes a non-negative distance between two sequences. Score
// must be referentially transparent with respect to its inputs and free of
// observable side effects.
type Metric interface {
	Score(a, b seq.Sequence) (float64, error)
}

// A Copier is a metric that can produce a private copy of itself holding
// preallocated scratch space. Copies share the (immutable) configuration of
// the original but own their scratch, so each copy may be driven by exactly
// one goroutine at a time. Parallel dispatchers hand one copy to each
// worker; the original instance remains safe for concurrent use.
type Copier interface {
	Metric
	Copy() Metric
}

// A LengthMismatchError is returned by metrics defined only on sequence
// pairs of equal length.
type LengthMismatchError struct {
	LenA, LenB int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("sequences must have equal length (got %d and %d)",
		e.LenA, e.LenB)
}

// scratch holds reusable DP buffers for worker-private metric copies. A nil
// *scratch means "allocate per call", which is what shared metric instances
// do to stay goroutine-safe.
type scratch struct {
	ints   []int
	floats []float64
}

func intbuf(s *scratch, n int) []int {
	if s == nil {
		return make([]int, n)
	}
	if cap(s.ints) < n {
		s.ints = make([]int, n)
	}
	return s.ints[:n]
}

func floatbuf(s *scratch, n int) []float64 {
	if s == nil {
		return make([]float64, n)
	}
	if cap(s.floats) < n {
		s.floats = make([]float64, n)
	}
	return s.floats[:n]
}
