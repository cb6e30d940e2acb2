package novelins

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/willf/bitset"
)

// SkipLog is the structured skip writer spec.md section 6 names: a
// FASTA-like header-plus-sequence record for every contig dropped by
// the entropy filter, and a plain annotation line for every component
// dropped as oversized (by the Partitioner's size-100 cutoff or the
// merger's size cap) or overbranched during merging. Every record is
// tagged with the run's id so skip logs collected from many concurrent
// batch processes can be told apart.
type SkipLog struct {
	w      *bufio.Writer
	runID  string
	seen   *bitset.BitSet // contig ids Entropy has already logged this run
}

// NewSkipLog wraps w with a skip log writer tagged with runID.
func NewSkipLog(w io.Writer, runID string) *SkipLog {
	return &SkipLog{w: bufio.NewWriter(w), runID: runID, seen: bitset.New(0)}
}

// OpenSkipLog creates (or truncates) path and returns a SkipLog
// writing to it; the caller must Close it.
func OpenSkipLog(path, runID string) (*SkipLog, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &IoError{Op: "create skip log", Path: path, Err: err}
	}
	return NewSkipLog(f, runID), f, nil
}

// Entropy records a contig dropped by EntropyFilter, per spec.md's
// "><contig-id> (entropy filter, entropy: <float>)" format with the
// run id added inside the parentheses. A contig id already logged is
// not logged again.
func (l *SkipLog) Entropy(contigID int, seq []byte, entropy float64) {
	if l.reported(contigID) {
		return
	}
	fmt.Fprintf(l.w, ">%d (entropy filter, entropy: %.4f, run: %s)\n%s\n",
		contigID, entropy, l.runID, seq)
}

// Oversized records a component that crossed a size cap: the
// Partitioner's size-100 cutoff or SupercontigMerger's merge-time cap.
// Repeated calls for the same key each write a line.
func (l *SkipLog) Oversized(componentKey, size, cap int) {
	fmt.Fprintf(l.w, "#%d (oversized, size: %d, cap: %d, run: %s)\n",
		componentKey, size, cap, l.runID)
}

// Overbranched records a component abandoned because its consensus
// graph grew too many simultaneous paths.
func (l *SkipLog) Overbranched(componentKey, paths int) {
	fmt.Fprintf(l.w, "#%d (overbranched, paths: %d, run: %s)\n",
		componentKey, paths, l.runID)
}

// Flush flushes any buffered output.
func (l *SkipLog) Flush() error {
	return l.w.Flush()
}

func (l *SkipLog) reported(contigID int) bool {
	if l.seen.Test(uint(contigID)) {
		return true
	}
	l.seen.Set(uint(contigID))
	return false
}
