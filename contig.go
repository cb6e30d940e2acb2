package novelins

import (
	"fmt"
)

// ContigID names a single contig as produced by one sample's assembler.
type ContigID struct {
	Sample  string
	Name    string
	Forward bool
}

func (id ContigID) String() string {
	if id.Forward {
		return fmt.Sprintf("%s/%s", id.Sample, id.Name)
	}
	return fmt.Sprintf("%s/%s/rc", id.Sample, id.Name)
}

// Contig is one assembled sequence, either as read from a sample's FASTA
// file (Forward) or its reverse complement, assigned a slot in the global
// id space.
type Contig struct {
	ID  ContigID
	Seq []byte
}

// Len returns the contig's residue count.
func (c *Contig) Len() int { return len(c.Seq) }

// ContigSpace holds every contig from every sample in a batch, forward
// strand at ids 0..N-1 and reverse complements at ids N..2N-1, so that
// rc(i) = (i + N) mod 2N is its own inverse, per the twin-id scheme
// every downstream component (UnionFind, AlignedPair, ComponentAssembler)
// relies on.
type ContigSpace struct {
	N       int
	Contigs []*Contig // length 2N
}

// RC returns the global id of the reverse-complement twin of i.
func (s *ContigSpace) RC(i int) int {
	return rc(i, s.N)
}

func rc(i, n int) int {
	return (i + n) % (2 * n)
}

// SampleOf reports the originating sample for a global contig id.
func (s *ContigSpace) SampleOf(i int) string {
	return s.Contigs[i].ID.Sample
}

// NewContigSpace builds a ContigSpace from per-sample forward contigs,
// computing and appending every reverse complement. Sample order fixes
// id order: forward ids are assigned in the order samples and their
// contigs are given, and rc ids mirror that order offset by N.
func NewContigSpace(perSample [][]*Contig) *ContigSpace {
	var forward []*Contig
	for _, contigs := range perSample {
		forward = append(forward, contigs...)
	}
	n := len(forward)
	all := make([]*Contig, 2*n)
	for i, c := range forward {
		all[i] = c
		all[i+n] = &Contig{
			ID:  ContigID{Sample: c.ID.Sample, Name: c.ID.Name, Forward: false},
			Seq: reverseComplement(c.Seq),
		}
	}
	return &ContigSpace{N: n, Contigs: all}
}

var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	t['A'], t['a'] = 'T', 't'
	t['T'], t['t'] = 'A', 'a'
	t['C'], t['c'] = 'G', 'g'
	t['G'], t['g'] = 'C', 'c'
	t['N'], t['n'] = 'N', 'n'
	return t
}()

// reverseComplement returns the DNA reverse complement of seq. N and n
// map to themselves and bytes outside ACGTNacgtn map to N, matching how assemblers represent gaps
// and ambiguous calls in contig output.
func reverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	last := len(seq) - 1
	for i, b := range seq {
		out[last-i] = complementTable[b]
	}
	return out
}
