package pathwalk

import (
	"math/rand"

	"github.com/nanopath/scaffold/ograph"
)

// MonteCarloParams configures BuildMonteCarlo. Defaults: RebuildAttempts=500,
// BacktrackAttempts=30, NodeNumThreshold=50, Metric=MetricOverlapScore,
// Seed=42.
type MonteCarloParams struct {
	RebuildAttempts   int
	BacktrackAttempts int
	NodeNumThreshold  int
	Metric            Metric
	Seed              int64
}

// DefaultMonteCarloParams returns the default Monte-Carlo configuration.
func DefaultMonteCarloParams() MonteCarloParams {
	return MonteCarloParams{
		RebuildAttempts:   500,
		BacktrackAttempts: 30,
		NodeNumThreshold:  50,
		Metric:            MetricOverlapScore,
		Seed:              42,
	}
}

// BuildMonteCarlo runs the weighted-random-walk heuristic from every anchor
// node, RebuildAttempts times per anchor, and returns every walk that
// reached a different anchor before hitting NodeNumThreshold or exhausting
// its backtrack budget. The walk is seeded once from params.Seed and
// consumed in anchor-index, then attempt order, so two calls with identical
// inputs produce byte-identical output in identical order.
func BuildMonteCarlo(g *ograph.Graph, params MonteCarloParams) []Path {
	rng := rand.New(rand.NewSource(params.Seed))
	var out []Path

	nodes := g.Nodes()
	for i := range nodes {
		if !nodes[i].IsAnchor {
			continue
		}
		start := nodes[i].ID
		w := &mcWalker{g: g, params: params, rng: rng, start: start}
		for attempt := 0; attempt < params.RebuildAttempts; attempt++ {
			if p, ok := w.run(); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// mcWalker carries one random walk's mutable state; run() is called
// repeatedly (once per rebuild attempt) and resets this state each time.
type mcWalker struct {
	g      *ograph.Graph
	params MonteCarloParams
	rng    *rand.Rand
	start  int

	nodes      []int
	edges      []int
	visited    map[int]bool
	backtracks int
}

func (w *mcWalker) run() (Path, bool) {
	w.nodes = []int{w.start}
	w.edges = nil
	w.visited = map[int]bool{w.start: true}
	w.backtracks = 0

	for {
		if len(w.nodes) >= w.params.NodeNumThreshold {
			return Path{}, false
		}

		cur := w.nodes[len(w.nodes)-1]
		n := w.g.Node(cur)

		if idx, ok := w.anchorShortcut(n); ok {
			w.advance(idx)
			return w.finish(), true
		}

		idx, ok := w.sampleEdge(n)
		if !ok {
			if !w.backtrack() {
				return Path{}, false
			}
			continue
		}
		w.advance(idx)
		if w.g.Node(w.nodes[len(w.nodes)-1]).IsAnchor {
			return w.finish(), true
		}
	}
}

// anchorShortcut reports the first adjacency-order edge leading to an anchor
// other than the walk's start, forcing the walk to take it immediately
// rather than continue sampling.
func (w *mcWalker) anchorShortcut(n *ograph.Node) (int, bool) {
	for _, idx := range n.EdgeIdx {
		e := w.g.Edge(idx)
		if e.QID != w.start && w.g.Node(e.QID).IsAnchor {
			return idx, true
		}
	}
	return 0, false
}

// sampleEdge picks one adjacent edge whose query-side node is unvisited,
// weighted by metricValue, via cumulative-sum sampling in adjacency order.
// It reports false when no unvisited candidate carries positive weight.
func (w *mcWalker) sampleEdge(n *ograph.Node) (int, bool) {
	var sum float64
	for _, idx := range n.EdgeIdx {
		e := w.g.Edge(idx)
		if w.visited[e.QID] {
			continue
		}
		sum += metricValue(e, w.params.Metric)
	}
	if sum <= 0 {
		return 0, false
	}

	threshold := w.rng.Float64() * sum
	var cum float64
	for _, idx := range n.EdgeIdx {
		e := w.g.Edge(idx)
		if w.visited[e.QID] {
			continue
		}
		cum += metricValue(e, w.params.Metric)
		if cum >= threshold {
			return idx, true
		}
	}
	// Floating point edge case: fall back to the last candidate.
	for i := len(n.EdgeIdx) - 1; i >= 0; i-- {
		idx := n.EdgeIdx[i]
		if !w.visited[w.g.Edge(idx).QID] {
			return idx, true
		}
	}
	return 0, false
}

func (w *mcWalker) advance(edgeIdx int) {
	e := w.g.Edge(edgeIdx)
	w.nodes = append(w.nodes, e.QID)
	w.edges = append(w.edges, edgeIdx)
	w.visited[e.QID] = true
}

// backtrack pops the walk's most recent step repeatedly until the new tail
// has an edge to an unvisited node, or the backtrack budget/path is
// exhausted.
func (w *mcWalker) backtrack() bool {
	for {
		if len(w.nodes) <= 1 {
			return false
		}
		if w.backtracks >= w.params.BacktrackAttempts {
			return false
		}
		w.backtracks++

		last := w.nodes[len(w.nodes)-1]
		delete(w.visited, last)
		w.nodes = w.nodes[:len(w.nodes)-1]
		w.edges = w.edges[:len(w.edges)-1]

		newTail := w.g.Node(w.nodes[len(w.nodes)-1])
		if w.hasUnvisitedEdge(newTail) {
			return true
		}
	}
}

func (w *mcWalker) hasUnvisitedEdge(n *ograph.Node) bool {
	for _, idx := range n.EdgeIdx {
		if !w.visited[w.g.Edge(idx).QID] {
			return true
		}
	}
	return false
}

func (w *mcWalker) finish() Path {
	nodes := append([]int(nil), w.nodes...)
	edges := append([]int(nil), w.edges...)
	return newPath(w.g, nodes, edges)
}
