package novelins

import "slices"

const maxPaths = 30

// MergeResult is the outcome of merging one component. Err is a
// *OversizedError or *OverbranchedError when OK is false, naming which
// soft failure (per spec.md section 7) ended the merge early.
type MergeResult struct {
	OK        bool
	Err       error
	Count     int // contigs in the component (paths, on an overbranched failure)
	Paths     []Path
	Singleton bool
}

// SupercontigMerger merges a component's member contigs into one or a
// small number of consensus supercontigs, per spec.md section 4.8: it
// picks a BFS alignment order, grows a ConsensusGraph one contig at a
// time by enumerating paths, picking the best-scoring path via a
// diagonal estimate, and grafting the new contig onto it.
type SupercontigMerger struct {
	Opts  *Options
	Space *ContigSpace
	Skip  *SkipLog
}

// NewSupercontigMerger returns a merger over space, configured by opts.
func NewSupercontigMerger(space *ContigSpace, opts *Options) *SupercontigMerger {
	return &SupercontigMerger{Opts: opts, Space: space}
}

// getSeqsByAlignOrder performs the breadth-first traversal spec.md
// section 4.8 step 1 describes: starting at the smallest id appearing
// in the component's aligned-pair relation, it visits every contig
// reachable through that relation, each (after the first) linked to
// some earlier one. A component with no recorded pairs is a
// singleton; its sole member is its key.
func getSeqsByAlignOrder(c *ContigComponent) []int {
	if len(c.AlignedPairs) == 0 {
		return []int{c.Key}
	}

	adjacency := make(map[int][]int)
	start := -1
	for p := range c.AlignedPairs {
		adjacency[p.A] = append(adjacency[p.A], p.B)
		if start == -1 || p.A < start {
			start = p.A
		}
		if p.B < start {
			start = p.B
		}
	}
	for u := range adjacency {
		slices.Sort(adjacency[u])
	}

	visited := map[int]bool{start: true}
	order := []int{start}
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adjacency[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			order = append(order, v)
			queue = append(queue, v)
		}
	}
	return order
}

// MergeComponent runs spec.md section 4.8's algorithm over one
// component. samplesInBatch bounds the size cap (10x that count).
func (m *SupercontigMerger) MergeComponent(c *ContigComponent, samplesInBatch int) MergeResult {
	order := getSeqsByAlignOrder(c)

	sizeCap := 10 * samplesInBatch
	if sizeCap > 0 && len(order) > sizeCap {
		if m.Skip != nil {
			m.Skip.Oversized(c.Key, len(order), sizeCap)
		}
		return MergeResult{OK: false, Err: &OversizedError{ComponentKey: c.Key, Size: len(order), Cap: sizeCap}, Count: len(order)}
	}

	if len(order) == 1 {
		seq := m.Space.Contigs[order[0]].Seq
		return MergeResult{
			OK:        true,
			Singleton: true,
			Count:     1,
			Paths:     []Path{{Seq: append([]byte(nil), seq...), positionMap: []posEntry{{pos: len(seq), v: 0}}}},
		}
	}

	g := NewConsensusGraph(m.Space.Contigs[order[0]].Seq)

	for i := 1; i < len(order); i++ {
		seq := m.Space.Contigs[order[i]].Seq

		paths := g.EnumeratePaths()
		if len(paths) > maxPaths {
			if m.Skip != nil {
				m.Skip.Overbranched(c.Key, len(paths))
			}
			return MergeResult{OK: false, Err: &OverbranchedError{ComponentKey: c.Key, Paths: len(paths)}, Count: len(paths)}
		}

		best, bestPath, found := m.bestAlignment(seq, paths)
		if !found {
			// No path offered a positive-scoring alignment (for
			// example a zero-length sequence): add the contig as a
			// new, disconnected source vertex so it is not silently
			// dropped.
			m.attachUnaligned(g, seq)
			continue
		}

		mergeSeqWithGraph(g, bestPath, seq, best, m.Opts.MinBranchLen)
	}

	finalPaths := g.EnumeratePaths()
	if len(finalPaths) > maxPaths {
		if m.Skip != nil {
			m.Skip.Overbranched(c.Key, len(finalPaths))
		}
		return MergeResult{OK: false, Err: &OverbranchedError{ComponentKey: c.Key, Paths: len(finalPaths)}, Count: len(finalPaths)}
	}
	return MergeResult{OK: true, Count: len(order), Paths: finalPaths}
}

// bestAlignment evaluates every candidate path and returns the
// highest-scoring alignment between seq and that path's sequence,
// per spec.md section 4.8 step 5b-d: the diagonal is estimated with
// CountDiagonalHits, banded to [diag-25, diag+25] when a diagonal was
// found, or aligned unbanded when the estimator returned the
// sentinel.
func (m *SupercontigMerger) bestAlignment(seq []byte, paths []Path) (AlignResult, Path, bool) {
	bestScore := 0
	var bestResult AlignResult
	var bestPath Path
	found := false

	for _, path := range paths {
		diag, ok := CountDiagonalHits(path.Seq, seq, m.Opts.QgramLength)
		aligner := NewBandedAligner(m.Opts.AlignOptions(diag-25, diag+25, ok))
		res := aligner.Align(seq, path.Seq, true)
		if res.Score > bestScore {
			bestScore = res.Score
			bestResult = res
			bestPath = path
			found = true
		}
	}
	return bestResult, bestPath, found
}

// attachUnaligned adds seq as a new, disconnected source vertex; used
// only for the degenerate case bestAlignment finds nothing to align
// against.
func (m *SupercontigMerger) attachUnaligned(g *ConsensusGraph, seq []byte) {
	v := g.AddVertex(seq)
	g.AddSource(v)
}

// mergeSeqWithGraph grafts seq onto g along path, using the alignment
// result (seq as side A, path.Seq as side B) to locate where the
// aligned region begins and ends on both sequences, per spec.md
// section 4.8's "mergeSeqWithGraph": the right side is grafted first
// (it only ever touches vertices at or after the alignment's end), then
// the left side (at or before the alignment's start), so grafting the
// right side cannot invalidate the left side's vertex lookup.
func mergeSeqWithGraph(g *ConsensusGraph, path Path, seq []byte, res AlignResult, minBranchLen int) {
	graftRight(g, path, seq, res.EndA, res.EndB, minBranchLen)
	graftLeft(g, path, seq, res.BeginA, res.BeginB, minBranchLen)
}

func graftRight(g *ConsensusGraph, path Path, seq []byte, alignEndSeq, alignEndPath, minBranchLen int) {
	if alignEndSeq >= len(seq) {
		return
	}
	v, vPos, ok := path.VertexAt(alignEndPath)
	if !ok {
		return
	}

	if alignEndPath == len(path.Seq) {
		g.SetLabel(v, append(append([]byte(nil), g.Label(v)...), seq[alignEndSeq:]...))
		return
	}

	if len(seq)-alignEndSeq <= minBranchLen {
		return
	}

	target := v
	if vPos > alignEndPath {
		vStart := vPos - len(g.Label(v))
		splitAt := alignEndPath - vStart
		label := g.Label(v)
		uSeq, vSeq := label[:splitAt], label[splitAt:]
		g.SplitVertex(v, uSeq, vSeq)
		target = v
	}

	branch := g.AddVertex(seq[alignEndSeq:])
	g.AddEdge(target, branch)
}

func graftLeft(g *ConsensusGraph, path Path, seq []byte, alignBeginSeq, alignBeginPath, minBranchLen int) {
	if alignBeginPath == 0 {
		u, _, ok := path.VertexBefore(0)
		if !ok {
			return
		}
		g.SetLabel(u, append(append([]byte(nil), seq[:alignBeginSeq]...), g.Label(u)...))
		return
	}

	if alignBeginSeq <= minBranchLen {
		return
	}

	u, uStart, ok := path.VertexBefore(alignBeginPath)
	if !ok {
		return
	}

	target := u
	if uStart < alignBeginPath {
		label := g.Label(u)
		splitAt := alignBeginPath - uStart
		if splitAt < len(label) {
			uSeqPart, splitSeq := label[:splitAt], label[splitAt:]
			target = g.SplitVertex(u, uSeqPart, splitSeq)
		}
	}

	branch := g.AddVertex(seq[:alignBeginSeq])
	g.AddSource(branch)
	g.AddEdge(branch, target)
}
