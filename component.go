package novelins

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"slices"
)

// ContigComponent is a connected set of contigs under the
// twin-symmetric aligned-pair relation, the unit SupercontigMerger
// consumes.
type ContigComponent struct {
	Key          int
	AlignedPairs map[AlignedPair]bool
}

func newComponent(key int) *ContigComponent {
	return &ContigComponent{Key: key, AlignedPairs: make(map[AlignedPair]bool)}
}

// addEdge records an ordered (from, to) edge inside the component,
// distinct from the canonical unordered AlignedPair key: the merger's
// BFS needs to know, for a given contig, every other contig it was
// verified against, in either direction.
func (c *ContigComponent) addEdge(a, b int) {
	c.AlignedPairs[AlignedPair{A: a, B: b}] = true
}

// Has reports whether the directed edge a->b was recorded.
func (c *ContigComponent) Has(a, b int) bool {
	return c.AlignedPairs[AlignedPair{A: a, B: b}]
}

// ComponentAssembler turns a PairSet + UnionFind, or a set of on-disk
// pair files, into the per-component membership spec.md section 4.6
// describes.
type ComponentAssembler struct {
	N int
}

// NewComponentAssembler returns an assembler for a contig space of
// size n (forward contigs).
func NewComponentAssembler(n int) *ComponentAssembler {
	return &ComponentAssembler{N: n}
}

// canonicalKey picks the canonical component key for id: the smaller
// of find(id) and find(rc(id)), with ties (impossible once union-find
// has run, but checked defensively) broken toward the forward-strand
// representative.
func (a *ComponentAssembler) canonicalKey(uf *UnionFind, id int) int {
	fa := uf.Find(id)
	fb := uf.Find(rc(id, a.N))
	if fa <= fb {
		return fa
	}
	return fb
}

// FromPairs builds components from an in-memory aligned-pair set and
// its UnionFind, per spec.md's "From in-memory AlignedPair set" entry
// point: every pair is filed under its canonical component key along
// with its reverse and twin-closed counterparts, and every remaining
// find-root with no recorded pairs becomes a singleton component.
func (a *ComponentAssembler) FromPairs(pairs *PairSet, uf *UnionFind) map[int]*ContigComponent {
	components := make(map[int]*ContigComponent)

	get := func(key int) *ContigComponent {
		c, ok := components[key]
		if !ok {
			c = newComponent(key)
			components[key] = c
		}
		return c
	}

	for _, p := range pairs.Ordered() {
		key := a.canonicalKey(uf, p.A)
		c := get(key)
		n := a.N
		c.addEdge(p.A, p.B)
		c.addEdge(p.B, p.A)
		c.addEdge(rc(p.A, n), rc(p.B, n))
		c.addEdge(rc(p.B, n), rc(p.A, n))
	}

	for i := 0; i < 2*a.N; i++ {
		if uf.Find(i) != i {
			continue
		}
		if _, ok := components[i]; !ok {
			components[i] = newComponent(i)
		}
	}
	return components
}

// FromPairFiles reads one or more on-disk pair files and re-derives
// components, per spec.md's "From pair files on disk" entry point: it
// builds a fresh UnionFind over 2N elements, joins both the ids and
// their rc-twins for every line (skipping ids already joined), then
// defers to FromPairs for the final assembly, so both entry points
// produce identical component shapes (P6, P7).
func (a *ComponentAssembler) FromPairFiles(paths []string) (map[int]*ContigComponent, error) {
	uf := NewUnionFind(2 * a.N)
	pairs := NewPairSet()

	for _, path := range paths {
		if err := a.readPairFileInto(path, uf, pairs); err != nil {
			return nil, err
		}
	}
	return a.FromPairs(pairs, uf), nil
}

func (a *ComponentAssembler) readPairFileInto(path string, uf *UnionFind, pairs *PairSet) error {
	f, err := os.Open(path)
	if err != nil {
		return &IoError{Op: "open pair file", Path: path, Err: err}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		var x, y int
		n, err := fmt.Sscanf(text, "%d %d", &x, &y)
		if n != 2 || err != nil {
			return &MalformedPairFileError{Path: path, Line: line, Text: text}
		}
		if x < 0 || y < 0 || x >= 2*a.N || y >= 2*a.N {
			return &MalformedPairFileError{Path: path, Line: line, Text: text}
		}
		if uf.Find(x) == uf.Find(y) {
			continue // redundant line, per spec.md: accept and skip
		}
		pairs.InsertTwinClosed(x, y, a.N)
		uf.UnionTwins(x, y, a.N)
	}
	if err := sc.Err(); err != nil {
		return &IoError{Op: "read pair file", Path: path, Err: err}
	}
	return nil
}

// Shard keeps only the components whose sorted-key rank matches
// workerID modulo total, per spec.md's optional sharding: rank(k) is
// the position of key k in ascending sorted order over every key in
// components, so sharding is stable regardless of map iteration
// order.
func Shard(components map[int]*ContigComponent, workerID, total int) map[int]*ContigComponent {
	if total <= 1 {
		return components
	}
	keys := make([]int, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[int]*ContigComponent)
	for rank, k := range keys {
		if rank%total == workerID {
			out[k] = components[k]
		}
	}
	return out
}

// writePairFileAppend appends pairs not already present to an
// existing pair file, used by batch workers that resume partial
// progress (spec.md section 5: pair files are "append-safe
// per-batch").
func writePairFileAppend(path string, pairs *PairSet) error {
	existing := NewPairSet()
	if _, err := os.Stat(path); err == nil {
		read, err := ReadPairFile(path)
		if err != nil {
			return err
		}
		existing = read
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &IoError{Op: "append pair file", Path: path, Err: err}
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, p := range pairs.Ordered() {
		if existing.Contains(p.A, p.B) {
			continue
		}
		if _, err := bw.WriteString(strconv.Itoa(p.A) + " " + strconv.Itoa(p.B) + "\n"); err != nil {
			return &IoError{Op: "append pair file", Path: path, Err: err}
		}
	}
	return bw.Flush()
}
