package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"

	"github.com/TuftsBCB/io/fasta"
	tseq "github.com/TuftsBCB/seq"

	"github.com/BenTenmann/setriq/metric"
	"github.com/BenTenmann/setriq/pairwise"
	"github.com/BenTenmann/setriq/seq"
	"github.com/BenTenmann/setriq/subst"
)

var (
	flagMetric     = "levenshtein"
	flagCpu        = runtime.NumCPU()
	flagSquare     = false
	flagGapOpen    = 10.0
	flagGapExtend  = 1.0
	flagMismatch   = 1.0
	flagExtraCost  = 0.0
	flagScaling    = 0.1
	flagPrefixCap  = metric.DefaultPrefixCap
	flagGapPenalty = 4.0
	flagGapSymbol  = "-"
	flagWeight     = 1.0
)

func main() {
	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
	}

	fin, err := os.Open(flag.Arg(0))
	if err != nil {
		fatalf("Could not open FASTA file '%s': %s", flag.Arg(0), err)
	}
	defer fin.Close()

	entries, err := fasta.NewReader(fin).ReadAll()
	if err != nil {
		fatalf("Could not read FASTA file '%s': %s", flag.Arg(0), err)
	}

	seqs := make([]seq.Sequence, len(entries))
	for i, entry := range entries {
		seqs[i] = fromFasta(entry)
	}

	m, err := metricFromFlags()
	if err != nil {
		fatalf("Could not configure metric '%s': %s", flagMetric, err)
	}

	distances, err := pairwise.ComputeWorkers(m, seqs, flagCpu)
	if err != nil {
		fatalf("Could not compute distances: %s", err)
	}

	var out io.Writer
	if flag.NArg() == 1 {
		out = os.Stdout
	} else {
		fout, err := os.Create(flag.Arg(1))
		if err != nil {
			fatalf("Could not create output file '%s': %s", flag.Arg(1), err)
		}
		defer fout.Close()
		out = fout
	}

	buf := bufio.NewWriter(out)
	defer buf.Flush()
	if flagSquare {
		writeSquare(buf, seqs, distances)
	} else {
		writeCondensed(buf, seqs, distances)
	}
}

// fromFasta converts a FASTA entry into this library's sequence type. The
// two residue types cannot be converted as whole slices, so the residues
// are copied one by one.
func fromFasta(entry tseq.Sequence) seq.Sequence {
	residues := make([]seq.Residue, len(entry.Residues))
	for k, r := range entry.Residues {
		residues[k] = seq.Residue(r)
	}
	return seq.Sequence{Name: entry.Name, Residues: residues}
}

// metricFromFlags resolves the -metric flag (and its companion parameter
// flags) into a configured metric. Alignment-based metrics use BLOSUM62.
func metricFromFlags() (metric.Metric, error) {
	switch flagMetric {
	case "cdrdist":
		m, err := metric.NewCdrDist(subst.Blosum62(), flagGapOpen,
			flagGapExtend)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "tcrdist":
		if len(flagGapSymbol) != 1 {
			return nil, fmt.Errorf("gap symbol must be a single character "+
				"(got %q)", flagGapSymbol)
		}
		m, err := metric.NewTcrDistComponent(subst.Blosum62(), flagGapPenalty,
			seq.Residue(flagGapSymbol[0]), flagWeight)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "levenshtein":
		m, err := metric.NewLevenshtein(flagExtraCost)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "osa":
		return metric.NewOptimalStringAlignment(), nil
	case "lcs":
		return metric.NewLongestCommonSubstring(), nil
	case "hamming":
		return metric.NewHamming(flagMismatch), nil
	case "jaro":
		return metric.DefaultJaro(), nil
	case "jarowinkler":
		m, err := metric.NewJaroWinkler(flagScaling, flagPrefixCap, nil)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown metric (choose one of cdrdist, " +
		"tcrdist, levenshtein, osa, lcs, hamming, jaro or jarowinkler)")
}

// writeCondensed emits one CSV line per sequence pair, in condensed order.
func writeCondensed(w io.Writer, seqs []seq.Sequence, distances []float64) {
	fmt.Fprintln(w, "from,to,distance")
	n := len(seqs)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			fmt.Fprintf(w, "%s,%s,%s\n", seqs[i].Name, seqs[j].Name,
				formatDistance(distances[pairwise.Index(n, i, j)]))
		}
	}
}

// writeSquare emits the full symmetric distance matrix as CSV, with
// sequence names as header row and leading column.
func writeSquare(w io.Writer, seqs []seq.Sequence, distances []float64) {
	n := len(seqs)
	square, err := pairwise.Squareform(distances, n)
	if err != nil {
		fatalf("Could not build square matrix: %s", err)
	}

	fmt.Fprint(w, "name")
	for _, s := range seqs {
		fmt.Fprintf(w, ",%s", s.Name)
	}
	fmt.Fprintln(w)
	for i := 0; i < n; i++ {
		fmt.Fprint(w, seqs[i].Name)
		for j := 0; j < n; j++ {
			fmt.Fprintf(w, ",%s", formatDistance(square.Get(i, j)))
		}
		fmt.Fprintln(w)
	}
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
	fmt.Fprintln(os.Stderr, "")
	os.Exit(1)
}

func init() {
	flag.StringVar(&flagMetric, "metric", flagMetric,
		"The distance metric to compute. One of: cdrdist, tcrdist, "+
			"levenshtein, osa, lcs, hamming, jaro or jarowinkler.")
	flag.IntVar(&flagCpu, "cpu", flagCpu,
		"The max number of CPUs to use.")
	flag.BoolVar(&flagSquare, "square", flagSquare,
		"When set, the full symmetric distance matrix is written instead "+
			"of one line per pair.")
	flag.Float64Var(&flagGapOpen, "gap-open", flagGapOpen,
		"The gap opening penalty used by cdrdist.")
	flag.Float64Var(&flagGapExtend, "gap-extend", flagGapExtend,
		"The gap extension penalty used by cdrdist.")
	flag.Float64Var(&flagMismatch, "mismatch", flagMismatch,
		"The per-position mismatch score used by hamming.")
	flag.Float64Var(&flagExtraCost, "extra-cost", flagExtraCost,
		"The extra substitution cost used by levenshtein.")
	flag.Float64Var(&flagScaling, "scaling", flagScaling,
		"The prefix scaling factor used by jarowinkler.")
	flag.IntVar(&flagPrefixCap, "prefix-cap", flagPrefixCap,
		"The shared-prefix cap used by jarowinkler.")
	flag.Float64Var(&flagGapPenalty, "gap-penalty", flagGapPenalty,
		"The gap penalty used by tcrdist.")
	flag.StringVar(&flagGapSymbol, "gap-symbol", flagGapSymbol,
		"The gap symbol used by tcrdist.")
	flag.Float64Var(&flagWeight, "weight", flagWeight,
		"The component weight used by tcrdist.")
	flag.Usage = usage
	flag.Parse()

	runtime.GOMAXPROCS(flagCpu)
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %s [flags] in-fasta-file [out-csv-file]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
