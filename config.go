package novelins

import "flag"

// Options carries every tunable named in spec.md section 6, modeled on
// the teacher's DBConf/DefaultDBConf (dbconf.go): a plain struct of
// primitives with a package-level default instance that cmd/ mains
// bind flags onto directly.
type Options struct {
	MinEntropy float64

	QgramLength   int
	ErrorRate     float64
	MinimalLength int

	MatchScore   int
	ErrorPenalty int
	MinScore     int

	MinBranchLen int
	MinTipScore  int

	BatchIndex int
	TotalBatch int
	BatchWidth int
	Offset     int

	Verbose bool
}

// DefaultOptions mirrors dbconf.go's DefaultDBConf: a ready-to-use
// configuration that cmd/ mains override per flag.
var DefaultOptions = &Options{
	MinEntropy: 0.5,

	QgramLength:   11,
	ErrorRate:     0.05,
	MinimalLength: 50,

	MatchScore:   1,
	ErrorPenalty: 1,
	MinScore:     100,

	MinBranchLen: 50,
	MinTipScore:  50,

	BatchIndex: 0,
	TotalBatch: 1,
	BatchWidth: 0,
	Offset:     0,

	Verbose: false,
}

// BindFlags registers every Options field as a flag on fs, using the
// current value of each field as its default, the same shape
// cmd/cablastp-compress/main.go binds dbConf fields with flag.*Var.
func (o *Options) BindFlags(fs *flag.FlagSet) {
	fs.Float64Var(&o.MinEntropy, "min-entropy", o.MinEntropy,
		"Average dinucleotide entropy (0-1) below which a contig is dropped.")
	fs.IntVar(&o.QgramLength, "qgram-length", o.QgramLength,
		"Length of the q-grams used to build the shared index.")
	fs.Float64Var(&o.ErrorRate, "error-rate", o.ErrorRate,
		"SWIFT filter error rate, in (0,1).")
	fs.IntVar(&o.MinimalLength, "minimal-length", o.MinimalLength,
		"SWIFT filter minimal match length.")
	fs.IntVar(&o.MatchScore, "match-score", o.MatchScore,
		"Score awarded to a matching base pair.")
	fs.IntVar(&o.ErrorPenalty, "error-penalty", o.ErrorPenalty,
		"Penalty subtracted for a mismatch or a gap.")
	fs.IntVar(&o.MinScore, "min-score", o.MinScore,
		"Minimum banded-alignment score for a pair to be accepted.")
	fs.IntVar(&o.MinBranchLen, "min-branch-len", o.MinBranchLen,
		"Shortest unaligned tail that is kept as a new consensus-graph branch.")
	fs.IntVar(&o.MinTipScore, "min-tip-score", o.MinTipScore,
		"Accepted but not read by partitioning or merging; branch suppression uses -min-branch-len.")
	fs.IntVar(&o.BatchIndex, "batch-index", o.BatchIndex,
		"This worker's batch number, used in supercontig output naming.")
	fs.IntVar(&o.TotalBatch, "total-batches", o.TotalBatch,
		"Total number of batches/workers sharing this run.")
	fs.IntVar(&o.BatchWidth, "batch-width", o.BatchWidth,
		"Number of global ids this batch owns; 0 means unbounded.")
	fs.IntVar(&o.Offset, "offset", o.Offset,
		"First global id this batch owns.")
	fs.BoolVar(&o.Verbose, "verbose", o.Verbose,
		"When set, progress and diagnostics are printed to stderr.")
}

// AlignOptions derives the BandedAligner scoring configuration these
// options imply.
func (o *Options) AlignOptions(lowerDiag, upperDiag int, banded bool) AlignOptions {
	return AlignOptions{
		MatchScore:   o.MatchScore,
		ErrorPenalty: o.ErrorPenalty,
		LowerDiag:    lowerDiag,
		UpperDiag:    upperDiag,
		Banded:       banded,
	}
}
