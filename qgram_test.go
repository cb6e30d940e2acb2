package novelins

import "testing"

func TestQGramIndexAddAndFind(t *testing.T) {
	idx := NewQGramIndex(8)
	idx.Add(0, []byte("ACGTACGTACGTACGTACGTACGTACGTACGT"))
	idx.Add(1, []byte("TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"))

	hits := idx.Find([]byte("ACGTACGTACGTACGTACGTACGTACGTACGT"), 0.05, 20)
	foundB0 := false
	for _, h := range hits {
		if h.B == 0 {
			foundB0 = true
		}
		if h.B == 1 {
			t.Errorf("Find matched unrelated sequence id 1")
		}
	}
	if !foundB0 {
		t.Error("Find did not report a hit against the identical indexed sequence")
	}
}

func TestQGramIndexFindNoHits(t *testing.T) {
	idx := NewQGramIndex(8)
	idx.Add(0, []byte("ACGTACGTACGTACGTACGTACGTACGTACGT"))

	hits := idx.Find([]byte("TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"), 0.05, 20)
	if len(hits) != 0 {
		t.Errorf("Find = %d hits, want 0 (no q-gram shared)", len(hits))
	}
}

func TestQGramIndexGrowPreservesOccurrences(t *testing.T) {
	idx := NewQGramIndex(4)
	seq := []byte("ACGTTGCAGTCAACGGTTCAGCATCGATGCATTAGCCATGCATGCATGCAGTCAACGGTT")
	idx.Add(0, seq)
	hits := idx.Find(seq, 0.05, len(seq))
	if len(hits) == 0 {
		t.Fatal("Find reported no hits after growth, occurrences appear lost")
	}
}

func TestCountDiagonalHitsIdentical(t *testing.T) {
	seq := []byte("ACGTACGTACGTACGTACGTACGTACGTACGT")
	diag, ok := CountDiagonalHits(seq, seq, 8)
	if !ok {
		t.Fatal("CountDiagonalHits reported no diagonal for identical sequences")
	}
	if diag != 0 {
		t.Errorf("diag = %d, want 0 for identical sequences", diag)
	}
}

func TestCountDiagonalHitsOffset(t *testing.T) {
	seq1 := []byte("GGGGGACGTACGTACGTACGTACGTACGTACGT")
	seq2 := []byte("ACGTACGTACGTACGTACGTACGTACGT")
	diag, ok := CountDiagonalHits(seq1, seq2, 8)
	if !ok {
		t.Fatal("CountDiagonalHits reported no diagonal")
	}
	if diag != -5 {
		t.Errorf("diag = %d, want -5 (seq2 offset - seq1 offset)", diag)
	}
}

func TestCountDiagonalHitsNoMatchReturnsSentinel(t *testing.T) {
	seq1 := []byte("AAAAAAAAAAAAAAAAAAAA")
	seq2 := []byte("TTTTTTTTTTTTTTTTTTTT")
	_, ok := CountDiagonalHits(seq1, seq2, 8)
	if ok {
		t.Error("CountDiagonalHits(ok) = true, want false (no shared q-gram, all bases homogeneous)")
	}
}

func TestCountDiagonalHitsHalvesQOnMiss(t *testing.T) {
	// A 6-bp shared region is too short to share any 8-mer against
	// flanking junk; the reduced-q retry (q*2/3 = 5) should still find
	// it at a smaller q before giving up.
	seq1 := []byte("TTTTTTTTTTTTTTTTTTTTACGTAC")
	seq2 := []byte("ACGTACGGGGGGGGGGGGGGGGGGGG")
	_, ok := CountDiagonalHits(seq1, seq2, 8)
	if !ok {
		t.Error("CountDiagonalHits(ok) = false, want true after q-length reduction")
	}
}
