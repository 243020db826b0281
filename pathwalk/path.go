// Package pathwalk discovers anchor-to-anchor paths through an ograph.Graph
// using two complementary heuristics: a weighted-random Monte-Carlo walk
// with bounded rebuild/backtrack (BuildMonteCarlo), and a deterministic
// best-first walk with a single-step backtrack (BuildDeterministic). Both
// produce []Path; callers hand the result to registry.Registry for
// de-duplication and anchor-pair indexing.
package pathwalk

import "github.com/nanopath/scaffold/ograph"

// Path is an alternating sequence n0,e0,n1,e1,...,e(k-1),nk: Nodes holds node
// indices into the owning Graph, Edges holds edge indices, and
// len(Edges) == len(Nodes)-1. Both endpoints are anchors; every intermediate
// node is a read; no node index repeats. Length is a cached value in base
// pairs, computed once at construction via the formula.
type Path struct {
	Nodes  []int
	Edges  []int
	Length int64
}

// newPath builds a Path and eagerly computes its cached Length from g.
func newPath(g *ograph.Graph, nodes, edges []int) Path {
	return Path{
		Nodes:  nodes,
		Edges:  edges,
		Length: computeLength(g, nodes, edges),
	}
}

// computeLength derives Length from a path's edge overlap bookkeeping:
//
//	length = e0.TEnd
//	       + sum_{i=1..k-1} (ei.TEnd - e(i-1).QEnd)
//	       + nk.Length - e(k-1).QEnd
//
// A degenerate single-node path (no edges) has length 0.
func computeLength(g *ograph.Graph, nodes, edges []int) int64 {
	if len(edges) == 0 {
		return 0
	}

	e0 := g.Edge(edges[0])
	length := e0.TEnd
	for i := 1; i < len(edges); i++ {
		ei := g.Edge(edges[i])
		eprev := g.Edge(edges[i-1])
		length += ei.TEnd - eprev.QEnd
	}
	last := g.Edge(edges[len(edges)-1])
	lastNode := g.Node(nodes[len(nodes)-1])
	length += lastNode.Length - last.QEnd
	return length
}

// SameNodeSequence reports whether p and other visit the same node indices
// in the same order — the equality predicate used throughout this engine
// (registry dedupe, group consensus membership).
func (p Path) SameNodeSequence(other Path) bool {
	if len(p.Nodes) != len(other.Nodes) {
		return false
	}
	for i, n := range p.Nodes {
		if other.Nodes[i] != n {
			return false
		}
	}
	return true
}
