package novelins

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"slices"
)

// AlignedPair is one verified alignment between two contigs, named by
// their global ids. PairSet stores every pair ordered (A < B) via
// newAlignedPair; ContigComponent reuses the type for directed edges,
// where A may exceed B. The caller is responsible for inserting both a
// pair and its twin-closed counterpart (rc(a), rc(b)) per spec.md's
// twin-closure invariant.
type AlignedPair struct {
	A, B int
}

func newAlignedPair(a, b int) AlignedPair {
	if a > b {
		a, b = b, a
	}
	return AlignedPair{A: a, B: b}
}

// PairSet holds a duplicate-suppressed, totally ordered set of aligned
// pairs, matching the comparison partition.h's std::set<AlignedPair>
// gives the original: pairs compare first on A, then on B.
type PairSet struct {
	byKey map[AlignedPair]bool
	order []AlignedPair // kept sorted; rebuilt lazily
	dirty bool
}

// NewPairSet returns an empty set.
func NewPairSet() *PairSet {
	return &PairSet{byKey: make(map[AlignedPair]bool)}
}

// Insert adds (a, b) to the set if it is not already present. It
// returns whether a new pair was added.
func (s *PairSet) Insert(a, b int) bool {
	p := newAlignedPair(a, b)
	if s.byKey[p] {
		return false
	}
	s.byKey[p] = true
	s.dirty = true
	return true
}

// InsertTwinClosed inserts (a, b) and its reverse-complement twin
// (rc(a), rc(b)) against a contig space of size 2N, so every union
// performed from this pair also has its twin union available.
func (s *PairSet) InsertTwinClosed(a, b, n int) {
	s.Insert(a, b)
	s.Insert(rc(a, n), rc(b, n))
}

// Len reports the number of distinct pairs.
func (s *PairSet) Len() int { return len(s.byKey) }

// Contains reports whether (a, b) (in either order) is in the set.
func (s *PairSet) Contains(a, b int) bool {
	return s.byKey[newAlignedPair(a, b)]
}

// Ordered returns every pair in ascending (A, B) lexicographic order.
func (s *PairSet) Ordered() []AlignedPair {
	if s.dirty || s.order == nil {
		s.order = s.order[:0]
		for p := range s.byKey {
			s.order = append(s.order, p)
		}
		slices.SortFunc(s.order, func(a, b AlignedPair) int {
			if a.A != b.A {
				return a.A - b.A
			}
			return a.B - b.B
		})
		s.dirty = false
	}
	return s.order
}

// WritePairFile writes the set to w, one pair per line, "a b\n", in
// ascending order, the format ReadPairFile and
// ComponentAssembler.FromPairFiles expect.
func (s *PairSet) WritePairFile(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range s.Ordered() {
		if _, err := fmt.Fprintf(bw, "%d %d\n", p.A, p.B); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePairFileTo creates (or truncates) path and writes the pair set
// to it.
func (s *PairSet) WritePairFileTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IoError{Op: "create pair file", Path: path, Err: err}
	}
	defer f.Close()
	if err := s.WritePairFile(f); err != nil {
		return &IoError{Op: "write pair file", Path: path, Err: err}
	}
	return nil
}

// ReadPairFile reads a pair file written by WritePairFile. A malformed
// line aborts reading this file only (MalformedPairFileError); pairs
// already read are still returned alongside the error so a caller can
// decide whether to use a partial result.
func ReadPairFile(path string) (*PairSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Op: "open pair file", Path: path, Err: err}
	}
	defer f.Close()

	set := NewPairSet()
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		var a, b int
		if n, err := fmt.Sscanf(text, "%d %d", &a, &b); n != 2 || err != nil {
			return set, &MalformedPairFileError{Path: path, Line: line, Text: text}
		}
		set.Insert(a, b)
	}
	if err := sc.Err(); err != nil {
		return set, &IoError{Op: "read pair file", Path: path, Err: err}
	}
	return set, nil
}
