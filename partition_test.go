package novelins

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func mkContig(sample, name, seq string) *Contig {
	return &Contig{ID: ContigID{Sample: sample, Name: name, Forward: true}, Seq: []byte(seq)}
}

// TestEntropyFilterThenPartitionSingleton is scenario S1: a
// homopolymer contig must be dropped by the entropy filter and logged
// as such, and partitioning whatever survives (here, a single
// remaining contig) must yield an empty aligned-pair set with one
// singleton component.
func TestEntropyFilterThenPartitionSingleton(t *testing.T) {
	homopolymer := strings.Repeat("A", 100)
	random := "ACGTTGCAGTCAACGGTTCAGCATCGATGCATTAGCCATGCATGCATGCAGTCAACGGTTCAGCATCGATGCATTAGCCATGCATGCATGCACGTTGCAG"
	space := NewContigSpace([][]*Contig{
		{mkContig("0000", "c0", homopolymer)},
		{mkContig("0001", "c0", random)},
	})

	minEntropy := 0.5
	var skipBuf bytes.Buffer
	skip := NewSkipLog(&skipBuf, "s1-run")

	var surviving []int
	for i := 0; i < space.N; i++ {
		entropy := AverageEntropy(space.Contigs[i].Seq)
		if entropy < minEntropy {
			skip.Entropy(i, space.Contigs[i].Seq, entropy)
			continue
		}
		surviving = append(surviving, i)
	}
	skip.Flush()

	if AverageEntropy([]byte(homopolymer)) != 0 {
		t.Fatalf("AverageEntropy(homopolymer) = %v, want 0", AverageEntropy([]byte(homopolymer)))
	}
	if !strings.Contains(skipBuf.String(), "entropy filter, entropy: 0.0000") {
		t.Errorf("skip log = %q, want a zero-entropy record for the dropped contig", skipBuf.String())
	}
	if len(surviving) != 1 || surviving[0] != 1 {
		t.Fatalf("surviving = %v, want only contig 1", surviving)
	}

	opts := &Options{
		QgramLength: 8, ErrorRate: 0.1, MinimalLength: 20,
		MatchScore: 1, ErrorPenalty: 1, MinScore: 20,
	}
	part := NewPartitioner(space, opts)
	res, err := part.Run(surviving, Batch{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Pairs.Len() != 0 {
		t.Fatalf("Pairs = %v, want empty (only one contig survived)", res.Pairs.Ordered())
	}

	assembler := NewComponentAssembler(space.N)
	components := assembler.FromPairs(res.Pairs, res.UF)
	key := assembler.canonicalKey(res.UF, 1)
	c, ok := components[key]
	if !ok {
		t.Fatalf("components %v missing the survivor's singleton", components)
	}
	if len(c.AlignedPairs) != 0 {
		t.Errorf("singleton component has %d aligned pairs, want 0", len(c.AlignedPairs))
	}
}

func TestPartitionerTrivialPartition(t *testing.T) {
	seq := "ACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCA"
	space := NewContigSpace([][]*Contig{
		{mkContig("0000", "c0", seq)},
		{mkContig("0001", "c0", seq)},
	})

	opts := &Options{
		QgramLength: 8, ErrorRate: 0.1, MinimalLength: 20,
		MatchScore: 1, ErrorPenalty: 1, MinScore: 20,
	}
	part := NewPartitioner(space, opts)
	res, err := part.Run([]int{0, 1}, Batch{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Pairs.Contains(0, 1) {
		t.Fatalf("expected aligned pair (0,1), got %v", res.Pairs.Ordered())
	}
	if res.UF.Find(0) != res.UF.Find(1) {
		t.Error("contigs 0 and 1 not unioned")
	}
	if res.UF.Find(space.RC(0)) != res.UF.Find(space.RC(1)) {
		t.Error("twin ids not unioned")
	}
}

func TestPartitionerSameSampleExcluded(t *testing.T) {
	seq := "ACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCA"
	space := NewContigSpace([][]*Contig{
		{mkContig("0000", "c0", seq), mkContig("0000", "c1", seq)},
	})

	opts := &Options{
		QgramLength: 8, ErrorRate: 0.1, MinimalLength: 20,
		MatchScore: 1, ErrorPenalty: 1, MinScore: 20,
	}
	part := NewPartitioner(space, opts)
	res, err := part.Run([]int{0, 1}, Batch{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Pairs.Len() != 0 {
		t.Fatalf("expected no aligned pairs across same-sample contigs, got %v", res.Pairs.Ordered())
	}
	if res.UF.Find(0) == res.UF.Find(1) {
		t.Error("same-sample contigs should not be unioned")
	}
}

// TestPartitionerOversizedCutoffLogsSkip builds a component with more
// than partitionSizeCap identical contigs, one per sample, and checks
// that the component grows past the cap and that crossing it is
// recorded in the SkipLog.
func TestPartitionerOversizedCutoffLogsSkip(t *testing.T) {
	seq := "ACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCAACGTTGCA"
	nSamples := partitionSizeCap + 5
	perSample := make([][]*Contig, nSamples)
	for i := 0; i < nSamples; i++ {
		perSample[i] = []*Contig{mkContig(fmt.Sprintf("%04d", i), "c0", seq)}
	}
	space := NewContigSpace(perSample)

	opts := &Options{
		QgramLength: 8, ErrorRate: 0.1, MinimalLength: 20,
		MatchScore: 1, ErrorPenalty: 1, MinScore: 20,
	}
	part := NewPartitioner(space, opts)
	var buf bytes.Buffer
	part.Skip = NewSkipLog(&buf, "test-run")

	surviving := make([]int, nSamples)
	for i := range surviving {
		surviving[i] = i
	}
	res, err := part.Run(surviving, Batch{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.UF.Size(res.UF.Find(0)) <= partitionSizeCap {
		t.Fatalf("Size(component) = %d, want > %d", res.UF.Size(res.UF.Find(0)), partitionSizeCap)
	}
	part.Skip.Flush()
	if !strings.Contains(buf.String(), "oversized") {
		t.Errorf("skip log = %q, want an oversized record", buf.String())
	}
}

func TestPartitionerEmptyInput(t *testing.T) {
	space := NewContigSpace([][]*Contig{{mkContig("0000", "c0", "ACGT")}})
	part := NewPartitioner(space, DefaultOptions)
	if _, err := part.Run(nil, Batch{}); err == nil {
		t.Fatal("Run(no surviving contigs) = nil error, want EmptyInputError")
	} else if _, ok := err.(*EmptyInputError); !ok {
		t.Errorf("Run error type = %T, want *EmptyInputError", err)
	}
}
