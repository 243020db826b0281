package ograph

import "math"

// Stats summarizes a Graph for observability; it has no effect on behavior
// and mirrors the original tool's OverlapGraph::stats() report.
type Stats struct {
	AnchorCount, ReadCount int
	MinNodeLen, MaxNodeLen int64
	MinAdjSize, MaxAdjSize int
	MinOverlapScore        float64
	MaxOverlapScore        float64
	MinExtensionScore      float64
	MaxExtensionScore      float64
	MinOverlapLen          int64
	MaxOverlapLen          int64
}

// Stats computes observability statistics over the current graph contents.
// It returns the zero Stats for an empty graph.
func (g *Graph) Stats() Stats {
	var s Stats
	if len(g.nodes) == 0 {
		return s
	}

	s.MinNodeLen = math.MaxInt64
	s.MinAdjSize = math.MaxInt32
	for _, n := range g.nodes {
		if n.IsAnchor {
			s.AnchorCount++
		} else {
			s.ReadCount++
		}
		if n.Length < s.MinNodeLen {
			s.MinNodeLen = n.Length
		}
		if n.Length > s.MaxNodeLen {
			s.MaxNodeLen = n.Length
		}
		adj := len(n.EdgeIdx)
		if adj < s.MinAdjSize {
			s.MinAdjSize = adj
		}
		if adj > s.MaxAdjSize {
			s.MaxAdjSize = adj
		}
	}

	if len(g.edges) == 0 {
		return s
	}
	s.MinOverlapScore = math.MaxFloat64
	s.MinExtensionScore = math.MaxFloat64
	s.MinOverlapLen = math.MaxInt64
	for _, e := range g.edges {
		if e.OverlapScore < s.MinOverlapScore {
			s.MinOverlapScore = e.OverlapScore
		}
		if e.OverlapScore > s.MaxOverlapScore {
			s.MaxOverlapScore = e.OverlapScore
		}
		if e.ExtensionScore < s.MinExtensionScore {
			s.MinExtensionScore = e.ExtensionScore
		}
		if e.ExtensionScore > s.MaxExtensionScore {
			s.MaxExtensionScore = e.ExtensionScore
		}
		ol := e.QEnd - e.QStart
		if ol < s.MinOverlapLen {
			s.MinOverlapLen = ol
		}
		if ol > s.MaxOverlapLen {
			s.MaxOverlapLen = ol
		}
	}
	return s
}
