package novelins

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// dinucleotides enumerates the 16 two-letter buckets counted by
// AverageEntropy: every ordered pair of A, C, G, T. Lowercase bases are
// counted as their uppercase form; pairs touching any other byte (N,
// ambiguity codes) are not counted at all, matching the reference
// averageEntropy's "skip anything but ACGT" behavior.
var dinucleotides = func() []string {
	bases := []byte{'A', 'C', 'G', 'T'}
	var pairs []string
	for _, a := range bases {
		for _, b := range bases {
			pairs = append(pairs, string([]byte{a, b}))
		}
	}
	return pairs
}()

// AverageEntropy computes the average dinucleotide Shannon entropy of
// seq, normalized to [0, 1]. It tallies the 16 ACGT-ACGT adjacent-pair
// buckets, computes H = -sum(p*log2(p)) over the buckets with at least
// one count, and returns H/4 (log2(16) == 4, so a perfectly uniform
// sequence scores 1). A sequence with no countable adjacent pair (too
// short, or entirely N/ambiguity codes) scores 0.
func AverageEntropy(seq []byte) float64 {
	counts := make(map[string]float64, 16)
	var total float64
	for i := 0; i+1 < len(seq); i++ {
		pair := upperPair(seq[i], seq[i+1])
		if pair == "" {
			continue
		}
		counts[pair]++
		total++
	}
	if total == 0 {
		return 0
	}
	probs := make([]float64, 0, 16)
	for _, pair := range dinucleotides {
		if c := counts[pair]; c > 0 {
			probs = append(probs, c/total)
		}
	}
	// stat.Entropy works in nats (natural log); convert to bits before
	// normalizing by log2(16) == 4.
	return stat.Entropy(probs) / math.Ln2 / 4
}

func upperPair(a, b byte) string {
	a, b = upper(a), upper(b)
	if !isACGT(a) || !isACGT(b) {
		return ""
	}
	return string([]byte{a, b})
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func isACGT(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// EntropyFilter drops contigs whose average dinucleotide entropy falls
// below minEntropy: low-complexity contigs (homopolymer runs, short
// tandem repeats) that would otherwise swamp the q-gram index with
// spurious seed hits.
type EntropyFilter struct {
	MinEntropy float64
}

// Keep reports whether c clears the entropy cutoff.
func (f EntropyFilter) Keep(c *Contig) bool {
	return AverageEntropy(c.Seq) >= f.MinEntropy
}

// Filter returns the ids of contigs in space that pass the entropy
// cutoff, restricted to the forward half id < space.N (reverse
// complements mirror their forward twin's entropy exactly, so the
// caller derives rc membership from forward membership rather than
// recomputing it).
func (f EntropyFilter) Filter(space *ContigSpace) []int {
	var kept []int
	for i := 0; i < space.N; i++ {
		if f.Keep(space.Contigs[i]) {
			kept = append(kept, i)
		}
	}
	return kept
}
