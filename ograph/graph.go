// Package ograph builds the directed overlap graph the rest of the engine
// walks: one arena of Node values and one arena of Edge values, both
// append-only and never reallocated-away-from after construction.
//
// Both arenas are plain slices indexed by a dense integer ID assigned at
// insertion time; every downstream package (pathwalk, registry, group,
// consensus) stores these indices rather than pointers, so a Graph must
// never shrink, reorder, or mutate an already-inserted Node or Edge. A Graph
// is built once, from one or more PAF streams via AddFromReader, and is read
// only thereafter.
//
// Traversal convention: edge e is in the adjacency list of node n if and
// only if e.TID == n.ID (adjacency is owned by the edge's target side only);
// following e from n lands on node e.QID.
package ograph

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nanopath/scaffold/pafio"
)

// ErrRecordIO is returned by AddFromReader when the underlying PAF stream
// fails; per spec this is fatal to the whole source.
var ErrRecordIO = errors.New("ograph: overlap record stream failed")

// AggMode selects how a pair of per-side quantities (query, target) is
// combined into the single scalar used by the filter predicate.
type AggMode int

const (
	// ModeAvg averages the query and target quantities. This is the default.
	ModeAvg AggMode = iota
	ModeMin
	ModeMax
	ModeSum
)

// FilterParams configures PAF record quality filtering.
//
// Defaults: Mode=ModeAvg, MinOverlapLen=0, MinOverlapFrac=0,
// MaxOverhangLen=+Inf, MaxOverhangFrac=1.0. These defaults still reject a
// record whose aggregated overhang is longer than its aggregated overlap
// length (OH/OL > 1.0), besides self-overlaps.
type FilterParams struct {
	Mode            AggMode
	MinOverlapLen   float64
	MinOverlapFrac  float64
	MaxOverhangLen  float64
	MaxOverhangFrac float64
}

// DefaultFilterParams returns the default filter configuration.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		Mode:            ModeAvg,
		MinOverlapLen:   0,
		MinOverlapFrac:  0,
		MaxOverhangLen:  math.Inf(1),
		MaxOverhangFrac: 1.0,
	}
}

// Node is a sequence (contig or read) in the overlap graph.
type Node struct {
	ID       int
	Name     string
	Length   int64
	IsAnchor bool
	// EdgeIdx holds indices into Graph.Edges() of edges adjacent to this
	// node as their target (see package doc traversal convention).
	EdgeIdx []int
}

// Edge is a directed overlap target -> query between two nodes.
type Edge struct {
	QID, TID                   int
	QStart, QEnd, TStart, TEnd int64
	RelativeStrand             bool
	OverlapScore               float64
	SequenceIdentity           float64
	ExtensionScore             float64
}

// Graph is the overlap graph: an append-only arena of nodes and edges.
type Graph struct {
	nodes   []Node
	edges   []Edge
	nameIdx map[string]int // node name -> index into nodes; O(1) lookup (spec permits linear scan or map)
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nameIdx: make(map[string]int)}
}

// Nodes returns the node arena. Callers must not retain a reference across a
// subsequent AddFromReader call; indices remain valid, the slice header may
// not (a new node may grow the backing array).
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge arena; see Nodes for the aliasing caveat.
func (g *Graph) Edges() []Edge { return g.edges }

// Node returns the node at idx.
func (g *Graph) Node(idx int) *Node { return &g.nodes[idx] }

// Edge returns the edge at idx.
func (g *Graph) Edge(idx int) *Edge { return &g.edges[idx] }

// AddFromReader reads every record from r, filters it through the default
// FilterParams, and inserts the survivors into the graph. anchors selects
// whether the "ctg"-named side of each record is marked as an anchor node
// (see package doc); when false, no node created from this source is ever
// marked an anchor.
//
// A read error from r is fatal: AddFromReader returns immediately and the
// graph retains whatever was already inserted from earlier records of this
// same call (partial retention within one source is permitted; spec forbids
// retrying the failed source, not rolling back prior records).
func (g *Graph) AddFromReader(r *pafio.Reader, anchors bool) error {
	return g.addFromReader(r, anchors, DefaultFilterParams())
}

// AddFromReaderWithParams is AddFromReader with explicit FilterParams.
func (g *Graph) AddFromReaderWithParams(r *pafio.Reader, anchors bool, params FilterParams) error {
	return g.addFromReader(r, anchors, params)
}

func (g *Graph) addFromReader(r *pafio.Reader, anchors bool, params FilterParams) error {
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrRecordIO, err)
		}

		if rec.QueryName == rec.TargetName {
			continue
		}

		d := derive(rec)
		if !accept(d, params) {
			continue
		}

		side := anchorSide(anchors, rec.QueryName, rec.TargetName)
		g.insert(rec, d, side)
	}
}

// contigPosition names which side of a record (if any) is the anchor side.
type contigPosition int

const (
	posNone contigPosition = iota
	posQuery
	posTarget
)

// anchorSide decides which side of a record is the anchor:
// when anchorsFlag is true, the side whose name begins (case-insensitively)
// with "ctg" is the anchor side. If neither side matches (an edge case left
// open — see DESIGN.md), neither side is marked an anchor.
func anchorSide(anchorsFlag bool, queryName, targetName string) contigPosition {
	if !anchorsFlag {
		return posNone
	}
	if startsWithCTG(targetName) {
		return posTarget
	}
	if startsWithCTG(queryName) {
		return posQuery
	}
	return posNone
}

func startsWithCTG(name string) bool {
	return len(name) >= 3 && strings.EqualFold(name[:3], "ctg")
}

// derived holds the per-record quantities the filter predicate uses,
// before aggregation.
type derived struct {
	queryLen, targetLen float64
	queryOL, targetOL   float64
	queryOH, targetOH   float64
	queryExt, targetExt float64
	seqIdentity         float64
}

func derive(r pafio.PAFRecord) derived {
	qLen, tLen := float64(r.QueryLen), float64(r.TargetLen)
	d := derived{
		queryLen:  qLen,
		targetLen: tLen,
		queryOL:   float64(r.QEnd - r.QStart),
		targetOL:  float64(r.TEnd - r.TStart),
		queryOH:   qLen - float64(r.QEnd),
		targetOH:  float64(r.TStart),
		queryExt:  float64(r.QStart),
		targetExt: tLen - float64(r.TEnd),
	}
	minLen := qLen
	if tLen < minLen {
		minLen = tLen
	}
	if minLen != 0 {
		d.seqIdentity = float64(r.ResidueMatches) / minLen
	}
	return d
}

// combine applies mode pointwise to a (query, target) pair.
func combine(mode AggMode, q, t float64) float64 {
	switch mode {
	case ModeMin:
		if q < t {
			return q
		}
		return t
	case ModeMax:
		if q > t {
			return q
		}
		return t
	case ModeSum:
		return q + t
	default: // ModeAvg
		return (q + t) / 2.0
	}
}

// accept applies the filter predicate.
func accept(d derived, p FilterParams) bool {
	ol := combine(p.Mode, d.queryOL, d.targetOL)
	oh := combine(p.Mode, d.queryOH, d.targetOH)
	tl := combine(p.Mode, d.queryLen, d.targetLen)

	if ol < p.MinOverlapLen {
		return false
	}
	if tl != 0 && ol/tl < p.MinOverlapFrac {
		return false
	}
	if oh > p.MaxOverhangLen {
		return false
	}
	if ol != 0 && oh/ol > p.MaxOverhangFrac {
		return false
	}
	return true
}

// insert performs the insertion protocol: look up or create the query and
// target nodes, append the edge, and register it only in the target node's
// adjacency list.
func (g *Graph) insert(rec pafio.PAFRecord, d derived, side contigPosition) {
	qID := g.nodeID(rec.QueryName, rec.QueryLen, side == posQuery)
	tID := g.nodeID(rec.TargetName, rec.TargetLen, side == posTarget)

	overlapScore := (d.queryOL + d.targetOL) / 2.0 * d.seqIdentity
	extensionScore := math.Abs(overlapScore + d.queryExt/2.0 - (d.queryOH+d.targetOH)/2.0)

	edge := Edge{
		QID:              qID,
		TID:              tID,
		QStart:           rec.QStart,
		QEnd:             rec.QEnd,
		TStart:           rec.TStart,
		TEnd:             rec.TEnd,
		RelativeStrand:   rec.Strand == '-',
		OverlapScore:     overlapScore,
		SequenceIdentity: d.seqIdentity,
		ExtensionScore:   extensionScore,
	}
	edgeIdx := len(g.edges)
	g.edges = append(g.edges, edge)
	g.nodes[tID].EdgeIdx = append(g.nodes[tID].EdgeIdx, edgeIdx)
}

// nodeID returns the index of the named node, creating it (with the given
// length and anchor flag) on first sight. Subsequent sightings of the same
// name never change its length or anchor flag.
func (g *Graph) nodeID(name string, length int64, isAnchor bool) int {
	if id, ok := g.nameIdx[name]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Name: name, Length: length, IsAnchor: isAnchor})
	g.nameIdx[name] = id
	return id
}
