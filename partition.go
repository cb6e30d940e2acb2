package novelins

import (
	"github.com/willf/bitset"
)

// Batch describes the contiguous global-id range one Partitioner
// worker owns, per spec.md section 4.5's inputs.
type Batch struct {
	Offset int
	Width  int
}

// PartitionResult is the output of running the Partitioner over a
// batch: the verified aligned-pair set and the UnionFind it built,
// ready for ComponentAssembler.
type PartitionResult struct {
	Pairs *PairSet
	UF    *UnionFind
}

// Partitioner discovers which contigs represent the same underlying
// insertion by running an all-pairs-equivalent search accelerated by
// a shared QGramIndex: each contig in the batch's id range is used as
// a SWIFT query against an index built over every surviving contig,
// candidate hits are verified with a BandedAligner, and verified
// pairs drive a UnionFind that also tracks the twin-closed
// reverse-complement partition.
type Partitioner struct {
	Opts  *Options
	Space *ContigSpace
	Skip  *SkipLog
}

// NewPartitioner returns a Partitioner for the given contig space and
// options.
func NewPartitioner(space *ContigSpace, opts *Options) *Partitioner {
	return &Partitioner{Opts: opts, Space: space}
}

// Run executes spec.md section 4.5's algorithm over the surviving ids
// (those that passed EntropyFilter, given as forward ids < Space.N)
// restricted to batch's id range.
func (p *Partitioner) Run(survivingForward []int, batch Batch) (*PartitionResult, error) {
	n := p.Space.N
	uf := NewUnionFind(2 * n)
	pairs := NewPairSet()

	if len(survivingForward) == 0 {
		return nil, &EmptyInputError{Path: "<batch>"}
	}

	surviving := make(map[int]bool, len(survivingForward))
	for _, id := range survivingForward {
		surviving[id] = true
	}

	idx := BuildQGramIndex(p.Space, survivingForward, p.Opts.QgramLength)
	diagExtension := p.Opts.MinScore / 10

	// oversized tracks, per contig, whether its component has already
	// crossed the size-100 cutoff, so a later batch id that shares a
	// component with an already-cutoff id can skip straight past its
	// SWIFT query instead of repeating work the cutoff would abort
	// anyway. Backed by a bitset rather than a map[int]bool since the
	// id space is dense and can run into the tens of thousands.
	oversized := bitset.New(uint(2 * n))

	lower, upper := batch.Offset, batch.Offset+batch.Width
	if batch.Width == 0 {
		upper = n
	}

	for a := lower; a < upper && a < n; a++ {
		if !surviving[a] {
			continue
		}
		if oversized.Test(uint(uf.Find(a))) {
			continue
		}
		p.queryOne(a, idx, uf, pairs, diagExtension, oversized)
	}

	if err := uf.ValidateTwinClosure(n); err != nil {
		return nil, err
	}

	return &PartitionResult{Pairs: pairs, UF: uf}, nil
}

const partitionSizeCap = 100

func (p *Partitioner) queryOne(a int, idx *QGramIndex, uf *UnionFind, pairs *PairSet, diagExtension int, oversized *bitset.BitSet) {
	space := p.Space
	n := space.N
	aligner := NewBandedAligner(p.Opts.AlignOptions(0, 0, true))

	hits := idx.Find(space.Contigs[a].Seq, p.Opts.ErrorRate, p.Opts.MinimalLength)
	for _, hit := range hits {
		b := hit.B
		if b == a {
			continue
		}
		if space.SampleOf(a) == space.SampleOf(b) {
			continue
		}
		if uf.Find(a) == uf.Find(b) {
			continue
		}

		upperDiag := hit.HstkPos - hit.NdlPos + diagExtension
		lowerDiag := hit.HstkPos - hit.NdlPos - hit.Delta - hit.Overlap - diagExtension
		aligner.Opts.LowerDiag = lowerDiag
		aligner.Opts.UpperDiag = upperDiag

		score := aligner.Score(space.Contigs[a].Seq, space.Contigs[b].Seq)
		if score <= p.Opts.MinScore {
			continue
		}

		pairs.InsertTwinClosed(a, b, n)
		uf.UnionTwins(a, b, n)

		if uf.Size(uf.Find(a)) > partitionSizeCap {
			root := uf.Find(a)
			oversized.Set(uint(root))
			if p.Skip != nil {
				p.Skip.Oversized(root, uf.Size(root), partitionSizeCap)
			}
			break
		}
	}
}
