// Package pairwise drives a metric over every unordered pair of a sequence
// list, producing the flattened upper triangle of the distance matrix.
package pairwise

import (
	"runtime"
	"sync"

	"github.com/BenTenmann/setriq/metric"
	"github.com/BenTenmann/setriq/seq"
)

// Index returns the position of the pair (i, j), 0 <= i < j < n, in the
// condensed distance vector: pairs are enumerated row by row, and within
// row i column j runs from i+1 to n-1.
func Index(n, i, j int) int {
	return n*(n-1)/2 - (n-i)*(n-i-1)/2 + j - i - 1
}

// Compute evaluates the metric over all unordered pairs of seqs using one
// worker per CPU. See ComputeWorkers.
func Compute(m metric.Metric, seqs []seq.Sequence) ([]float64, error) {
	return ComputeWorkers(m, seqs, runtime.NumCPU())
}

// ComputeWorkers evaluates the metric over all unordered pairs of seqs
// using the given number of workers, returning the condensed distance
// vector of length len(seqs)*(len(seqs)-1)/2. Fewer than two sequences
// yield an empty vector.
//
// Rows of the upper triangle are distributed across workers; each worker
// writes to disjoint positions of the output, so the result depends only on
// the metric and the sequences, never on scheduling. If the metric
// implements metric.Copier, every worker scores through its own private
// copy. The first error from any Score call aborts the batch and discards
// the partial result.
func ComputeWorkers(m metric.Metric, seqs []seq.Sequence, workers int) ([]float64, error) {
	return compute(len(seqs), workers, func() scoreFunc {
		private := m
		if c, ok := m.(metric.Copier); ok {
			private = c.Copy()
		}
		return func(i, j int) (float64, error) {
			return private.Score(seqs[i], seqs[j])
		}
	})
}

// ComputeRecords evaluates a composite TcrDist metric over all unordered
// pairs of receptor records, using one worker per CPU.
func ComputeRecords(t *metric.TcrDist, records []metric.Record) ([]float64, error) {
	return ComputeRecordsWorkers(t, records, runtime.NumCPU())
}

// ComputeRecordsWorkers is ComputeRecords with an explicit worker count.
// The output layout matches ComputeWorkers.
func ComputeRecordsWorkers(t *metric.TcrDist, records []metric.Record, workers int) ([]float64, error) {
	return compute(len(records), workers, func() scoreFunc {
		return func(i, j int) (float64, error) {
			return t.ScoreRecord(records[i], records[j])
		}
	})
}

type scoreFunc func(i, j int) (float64, error)

func compute(n, workers int, newScorer func() scoreFunc) ([]float64, error) {
	distances := make([]float64, n*(n-1)/2)
	if n < 2 {
		return distances, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n-1 {
		workers = n - 1
	}

	// Every row is enqueued up front, so workers that bail out early on an
	// error can never strand a blocked send.
	rows := make(chan int, n-1)
	for i := 0; i < n-1; i++ {
		rows <- i
	}
	close(rows)

	errs := make(chan error, workers)
	wg := new(sync.WaitGroup)
	for w := 0; w < workers; w++ {
		score := newScorer()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				base := Index(n, i, i+1)
				for j := i + 1; j < n; j++ {
					d, err := score(i, j)
					if err != nil {
						errs <- err
						return
					}
					distances[base+j-i-1] = d
				}
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	return distances, nil
}
