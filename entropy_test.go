package novelins

import (
	"math"
	"testing"
)

func TestAverageEntropyHomopolymer(t *testing.T) {
	seq := make([]byte, 100)
	for i := range seq {
		seq[i] = 'A'
	}
	if got := AverageEntropy(seq); got != 0 {
		t.Errorf("AverageEntropy(homopolymer) = %v, want 0", got)
	}
}

func TestAverageEntropyEmpty(t *testing.T) {
	if got := AverageEntropy(nil); got != 0 {
		t.Errorf("AverageEntropy(nil) = %v, want 0", got)
	}
	if got := AverageEntropy([]byte("A")); got != 0 {
		t.Errorf("AverageEntropy(single base) = %v, want 0", got)
	}
}

func TestAverageEntropyUniform(t *testing.T) {
	// ACGTACGT... cycles through all 4 bases so only 4 of the 16
	// dinucleotide buckets (AC, CG, GT, TA) are ever hit, each with
	// close to equal frequency: entropy should land near log2(4)/4
	// but strictly below the 1.0 ceiling a full 16-bucket uniform
	// distribution would reach.
	seq := []byte{}
	for i := 0; i < 40; i++ {
		seq = append(seq, "ACGT"[i%4])
	}
	got := AverageEntropy(seq)
	want := 2.0 / 4.0
	if math.Abs(got-want) > 0.05 {
		t.Errorf("AverageEntropy(ACGT repeat) = %v, want near %v", got, want)
	}
	if got >= 1 {
		t.Errorf("AverageEntropy(ACGT repeat) = %v, want < 1", got)
	}
}

func TestEntropyFilterKeep(t *testing.T) {
	f := EntropyFilter{MinEntropy: 0.5}
	low := &Contig{Seq: []byte("AAAAAAAAAAAAAAAAAAAA")}
	if f.Keep(low) {
		t.Error("Keep(homopolymer) = true, want false")
	}
}
