package novelins

// AlignOptions carries the scoring and banding parameters for
// BandedAlign, spec.md's linear match/mismatch=gap scheme: a positive
// match score and a single negative penalty applied uniformly to both
// mismatches and gaps.
type AlignOptions struct {
	MatchScore   int
	ErrorPenalty int // applied to both mismatch and gap, per spec.md
	LowerDiag    int
	UpperDiag    int
	Banded       bool // false requests unbanded local alignment
}

// GapTrack records, for one of the two aligned sequences, the source
// positions consumed along the optimal local alignment path, in
// increasing order; a repeated position marks a gap in the other
// sequence at that point. SupercontigMerger does not read the tracks;
// it takes the alignment's begin/end offsets from AlignResult's
// BeginA/EndA/BeginB/EndB fields.
type GapTrack []int

// AlignResult is the outcome of a BandedAlign call.
type AlignResult struct {
	Score    int
	TrackA   GapTrack
	TrackB   GapTrack
	BeginA   int
	EndA     int
	BeginB   int
	EndB     int
}

// BandedAligner computes local alignments between DNA sequences with
// spec.md's linear scoring scheme, adapted from the teacher's
// nwAlign (cmd/cablastp-compress/nw.go): same banded dynamic-programming
// table and traceback shape, generalized from global alignment with a
// BLOSUM substitution matrix to local (Smith-Waterman-style, clipped
// at zero) alignment with a two-valued match/mismatch score and an
// explicit diagonal band instead of nwAlign's |i-j| <= constraint
// band.
type BandedAligner struct {
	Opts AlignOptions
}

// NewBandedAligner returns an aligner configured by opts.
func NewBandedAligner(opts AlignOptions) *BandedAligner {
	return &BandedAligner{Opts: opts}
}

// Score returns the score of the best local alignment between a and b
// without building gap tracks; Partitioner verification compares it
// against minScore.
func (al *BandedAligner) Score(a, b []byte) int {
	res := al.Align(a, b, false)
	return res.Score
}

// Align computes the best local alignment between a and b. When
// withTracks is true, TrackA and TrackB are populated so the caller
// can thread the aligned region onto a ConsensusGraph; when false,
// only Score and the begin/end offsets are filled in: the traceback
// still walks back to find the begin offsets but records no tracks.
func (al *BandedAligner) Align(a, b []byte, withTracks bool) AlignResult {
	opts := al.Opts
	if !opts.Banded {
		return al.alignUnbanded(a, b, withTracks)
	}
	return al.alignBanded(a, b, opts.LowerDiag, opts.UpperDiag, withTracks)
}

func (al *BandedAligner) alignUnbanded(a, b []byte, withTracks bool) AlignResult {
	return al.alignBanded(a, b, -len(b), len(a), withTracks)
}

// alignBanded runs a Smith-Waterman-shaped dynamic program restricted
// to cells whose diagonal (i-j) falls in [lowerDiag, upperDiag],
// mirroring nwAlign's "(i-j) > constraint || (j-i) > constraint" band
// test but local (cells clip to zero, the best-scoring cell anywhere
// in the table seeds the traceback) rather than global.
func (al *BandedAligner) alignBanded(a, b []byte, lowerDiag, upperDiag int, withTracks bool) AlignResult {
	r, c := len(a)+1, len(b)+1
	table := make([]int, r*c)

	match := al.Opts.MatchScore
	penalty := -al.Opts.ErrorPenalty
	if penalty > 0 {
		penalty = -penalty
	}

	bestScore, bestI, bestJ := 0, 0, 0
	for i := 1; i < r; i++ {
		rowOff, prevRowOff := i*c, (i-1)*c
		for j := 1; j < c; j++ {
			diag := i - j
			if diag < lowerDiag || diag > upperDiag {
				continue
			}
			sub := penalty
			if a[i-1] == b[j-1] {
				sub = match
			}
			sdiag := table[prevRowOff+(j-1)] + sub
			sup := table[prevRowOff+j] + penalty
			sleft := table[rowOff+(j-1)] + penalty
			best := 0
			if sdiag > best {
				best = sdiag
			}
			if sup > best {
				best = sup
			}
			if sleft > best {
				best = sleft
			}
			table[rowOff+j] = best
			if best > bestScore {
				bestScore, bestI, bestJ = best, i, j
			}
		}
	}

	result := AlignResult{Score: bestScore, EndA: bestI, EndB: bestJ}
	if bestScore == 0 {
		result.BeginA, result.BeginB = bestI, bestJ
		return result
	}

	i, j := bestI, bestJ
	var trackA, trackB GapTrack
	for i > 0 && j > 0 && table[i*c+j] > 0 {
		diag := i - j
		sub := penalty
		if a[i-1] == b[j-1] {
			sub = match
		}
		cur := table[i*c+j]
		switch {
		case diag >= lowerDiag && diag <= upperDiag && cur == table[(i-1)*c+(j-1)]+sub:
			i--
			j--
			if withTracks {
				trackA = append(trackA, i)
				trackB = append(trackB, j)
			}
		case cur == table[(i-1)*c+j]+penalty:
			i--
			if withTracks {
				trackA = append(trackA, i)
				trackB = append(trackB, j)
			}
		default:
			j--
			if withTracks {
				trackA = append(trackA, i)
				trackB = append(trackB, j)
			}
		}
	}
	result.BeginA, result.BeginB = i, j

	if withTracks {
		reverseInts(trackA)
		reverseInts(trackB)
		result.TrackA = trackA
		result.TrackB = trackB
	}
	return result
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
