package novelins

import "slices"

// vertex is one node of a ConsensusGraph: a labelled DNA substring
// plus its forward adjacency.
type vertex struct {
	label []byte
	out   []int
}

// ConsensusGraph is the directed, acyclic sequence graph spec.md
// section 4.7 describes: vertices carry DNA labels, edges are
// unlabelled, and concatenating labels along any source-to-sink walk
// reconstructs one candidate supercontig. Grafting only ever adds a
// new vertex as a fresh sink (one in-edge from a path vertex) or a
// fresh source (one out-edge into a path vertex), and splitting keeps
// edges pointing forward, so no cycle detection is needed at runtime
// (spec.md design note).
type ConsensusGraph struct {
	vertices []vertex
	sources  []int
}

// NewConsensusGraph returns a graph with a single vertex labelled seq,
// the sole source.
func NewConsensusGraph(seq []byte) *ConsensusGraph {
	g := &ConsensusGraph{}
	v := g.AddVertex(seq)
	g.sources = []int{v}
	return g
}

// AddVertex appends a new, edge-free vertex labelled seq and returns
// its descriptor.
func (g *ConsensusGraph) AddVertex(seq []byte) int {
	g.vertices = append(g.vertices, vertex{label: append([]byte(nil), seq...)})
	return len(g.vertices) - 1
}

// AddEdge adds a directed edge u -> v.
func (g *ConsensusGraph) AddEdge(u, v int) {
	g.vertices[u].out = append(g.vertices[u].out, v)
}

// AddSource registers v as an additional path origin.
func (g *ConsensusGraph) AddSource(v int) {
	g.sources = append(g.sources, v)
}

// Label returns vertex v's current label.
func (g *ConsensusGraph) Label(v int) []byte { return g.vertices[v].label }

// SetLabel overwrites vertex v's label.
func (g *ConsensusGraph) SetLabel(v int, seq []byte) {
	g.vertices[v].label = append([]byte(nil), seq...)
}

// NumVertices reports the number of vertices in the graph.
func (g *ConsensusGraph) NumVertices() int { return len(g.vertices) }

// SplitVertex replaces vertex u's label with uSeq, creates a new
// vertex v labelled vSeq, moves every one of u's out-edges onto v, and
// adds the edge u -> v. The caller must ensure uSeq+vSeq equals u's
// original label; SplitVertex does not check this, since callers
// already derive uSeq/vSeq from slicing that label.
func (g *ConsensusGraph) SplitVertex(u int, uSeq, vSeq []byte) int {
	v := g.AddVertex(vSeq)
	g.vertices[v].out = g.vertices[u].out
	g.vertices[u].out = []int{v}
	g.SetLabel(u, uSeq)
	return v
}

// Path is a source-to-sink walk through a ConsensusGraph: its
// concatenated sequence, and a map from the offset of the end of each
// visited vertex's label to that vertex's descriptor.
type Path struct {
	Seq         []byte
	positionMap []posEntry
}

type posEntry struct {
	pos int
	v   int
}

// VertexAt returns the first vertex (in path order) whose label ends
// at an offset >= target, and that offset, per spec.md's grafting
// rule "find the first vertex whose label-end offset on the path is
// >= alignEndPath". It reports ok=false if target is past the end of
// the path.
func (p *Path) VertexAt(target int) (v int, vPos int, ok bool) {
	idx, _ := slices.BinarySearchFunc(p.positionMap, target, func(e posEntry, t int) int {
		return e.pos - t
	})
	if idx >= len(p.positionMap) {
		return 0, 0, false
	}
	return p.positionMap[idx].v, p.positionMap[idx].pos, true
}

// VertexBefore returns the last vertex (in path order) whose
// label-start offset is <= target, per spec.md's grafting rule for
// the left end ("find the last vertex whose label-start offset is <=
// alignBeginPath"). Start offsets are read from this path's own
// snapshot (the cumulative position of the previous entry), not from
// the graph's current vertex labels, so the result stays valid even
// after an earlier graft has already truncated this same vertex's
// label on its right side.
func (p *Path) VertexBefore(target int) (v int, vStart int, ok bool) {
	for i := len(p.positionMap) - 1; i >= 0; i-- {
		start := 0
		if i > 0 {
			start = p.positionMap[i-1].pos
		}
		if start <= target {
			return p.positionMap[i].v, start, true
		}
	}
	return 0, 0, false
}

// EnumeratePaths returns every source-to-sink walk, depth-first, in a
// fixed order determined by each vertex's out-edge order (itself
// fixed by insertion order), so repeated calls against an unchanged
// graph always produce paths in the same order (spec.md's
// determinism requirement for supercontig letter assignment).
func (g *ConsensusGraph) EnumeratePaths() []Path {
	var paths []Path
	sources := append([]int(nil), g.sources...)
	slices.Sort(sources)
	for _, s := range sources {
		g.walk(s, nil, nil, &paths)
	}
	return paths
}

func (g *ConsensusGraph) walk(v int, seq []byte, pm []posEntry, out *[]Path) {
	label := g.vertices[v].label
	seq = append(append([]byte(nil), seq...), label...)
	pm = append(append([]posEntry(nil), pm...), posEntry{pos: len(seq), v: v})

	if len(g.vertices[v].out) == 0 {
		*out = append(*out, Path{Seq: seq, positionMap: pm})
		return
	}
	for _, next := range g.vertices[v].out {
		g.walk(next, seq, pm, out)
	}
}

// PathPosition is one entry of a Path's position map: the vertex
// descriptor whose label ends at Pos.
type PathPosition struct {
	Pos int
	V   int
}

// PositionMap exposes the path's offset->vertex entries in increasing
// order, satisfying spec.md's P5 (strictly increasing keys, last key
// equals len(Seq)).
func (p *Path) PositionMap() []PathPosition {
	out := make([]PathPosition, len(p.positionMap))
	for i, e := range p.positionMap {
		out[i] = PathPosition{Pos: e.pos, V: e.v}
	}
	return out
}
