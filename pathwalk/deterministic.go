package pathwalk

import (
	"sort"

	"github.com/nanopath/scaffold/ograph"
)

// DeterministicParams configures BuildDeterministic.
type DeterministicParams struct {
	Metric Metric
}

// DefaultDeterministicParams returns MetricOverlapScore, matching
// DefaultMonteCarloParams' metric choice.
func DefaultDeterministicParams() DeterministicParams {
	return DeterministicParams{Metric: MetricOverlapScore}
}

// BuildDeterministic builds exactly one walk per (start anchor, first edge)
// pair: every anchor node, every edge in its adjacency, best-first from
// there with a single-step backtrack allowance. Order is anchor-index then
// adjacency order, so output order is stable across calls.
func BuildDeterministic(g *ograph.Graph, params DeterministicParams) []Path {
	var out []Path

	nodes := g.Nodes()
	for i := range nodes {
		if !nodes[i].IsAnchor {
			continue
		}
		start := nodes[i].ID
		for _, edgeIdx0 := range nodes[i].EdgeIdx {
			if p, ok := detWalkOne(g, start, edgeIdx0, params); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func detWalkOne(g *ograph.Graph, start, edgeIdx0 int, params DeterministicParams) (Path, bool) {
	e0 := g.Edge(edgeIdx0)
	w := &detWalker{
		g:       g,
		metric:  params.Metric,
		nodes:   []int{start, e0.QID},
		edges:   []int{edgeIdx0},
		visited: map[int]bool{start: true, e0.QID: true},
	}
	if g.Node(e0.QID).IsAnchor {
		return w.finish(), true
	}
	return w.run()
}

// detWalker carries one deterministic walk's mutable state. skipNBest ranks
// how far into the descending-sorted adjacency the next selection starts;
// backtracked enforces the single-backtrack-per-path rule.
type detWalker struct {
	g      *ograph.Graph
	metric Metric

	nodes   []int
	edges   []int
	visited map[int]bool

	stepIndex   int
	skipNBest   int
	backtracked bool
}

func (w *detWalker) run() (Path, bool) {
	for {
		cur := w.nodes[len(w.nodes)-1]
		n := w.g.Node(cur)
		sorted := sortedEdgesByMetricDesc(w.g, n.EdgeIdx, w.metric)

		found := -1
		for i := w.skipNBest; i < len(sorted); i++ {
			e := w.g.Edge(sorted[i])
			if !w.visited[e.QID] {
				found = sorted[i]
				break
			}
		}

		if found == -1 {
			if w.stepIndex == 0 || w.backtracked {
				return Path{}, false
			}
			if !w.popOne() {
				return Path{}, false
			}
			w.skipNBest++
			w.backtracked = true
			continue
		}

		w.appendEdge(found)
		w.stepIndex++
		w.skipNBest = 0
		if w.g.Node(w.nodes[len(w.nodes)-1]).IsAnchor {
			return w.finish(), true
		}
	}
}

// sortedEdgesByMetricDesc returns a copy of idxs sorted by descending
// metric value; ties preserve original adjacency order (stable sort).
func sortedEdgesByMetricDesc(g *ograph.Graph, idxs []int, m Metric) []int {
	sorted := append([]int(nil), idxs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metricValue(g.Edge(sorted[i]), m) > metricValue(g.Edge(sorted[j]), m)
	})
	return sorted
}

func (w *detWalker) appendEdge(edgeIdx int) {
	e := w.g.Edge(edgeIdx)
	w.nodes = append(w.nodes, e.QID)
	w.edges = append(w.edges, edgeIdx)
	w.visited[e.QID] = true
}

// popOne undoes the walk's most recent step.
func (w *detWalker) popOne() bool {
	if len(w.nodes) <= 2 {
		return false
	}
	last := w.nodes[len(w.nodes)-1]
	delete(w.visited, last)
	w.nodes = w.nodes[:len(w.nodes)-1]
	w.edges = w.edges[:len(w.edges)-1]
	return true
}

func (w *detWalker) finish() Path {
	nodes := append([]int(nil), w.nodes...)
	edges := append([]int(nil), w.edges...)
	return newPath(w.g, nodes, edges)
}
