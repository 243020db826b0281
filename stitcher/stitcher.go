// Package stitcher builds the final contiguous sequence for a consensus
// path by walking its edges and concatenating/trimming the overlap regions,
// a generalization of the original tool's Scaffolder::write.
package stitcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nanopath/scaffold/ograph"
	"github.com/nanopath/scaffold/pathwalk"
	"github.com/nanopath/scaffold/seqio"
)

// ErrEmptyPath is returned by Stitch when the path has no nodes.
var ErrEmptyPath = errors.New("stitcher: path has no nodes")

// ErrMissingSequence is returned when a path node's name has no entry in
// the sequence source.
var ErrMissingSequence = errors.New("stitcher: sequence not found")

var complement = map[byte]byte{'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G'}

// swapBases complements each base in place, without reversing the string.
func swapBases(s string) string {
	b := []byte(s)
	for i, c := range b {
		if rc, ok := complement[c]; ok {
			b[i] = rc
		}
	}
	return string(b)
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// substr returns s[start..end] inclusive, clamped to s's bounds. A start
// past the end of the string, or an end before start, yields "".
func substr(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(s) {
		end = len(s) - 1
	}
	if start > end {
		return ""
	}
	return s[start : end+1]
}

func sequenceFor(seqs seqio.Sequences, name string) (string, error) {
	s, ok := seqs[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingSequence, name)
	}
	return s, nil
}

// Stitch walks p's nodes and edges over g and returns the assembled
// sequence, reading node sequences from seqs by name.
//
// A path of a single node returns that node's sequence reversed, matching
// the original single-node shortcut. Otherwise each inter-node overlap is
// trimmed per the edge's TEnd/QEnd bookkeeping: an edge on the relative
// (reverse) strand has its node's bases complemented before splicing, and a
// path whose walk doubles back over already-emitted sequence truncates the
// already-built result instead of appending.
func Stitch(g *ograph.Graph, p pathwalk.Path, seqs seqio.Sequences) (string, error) {
	if len(p.Nodes) == 0 {
		return "", ErrEmptyPath
	}

	if len(p.Nodes) == 1 {
		name := g.Node(p.Nodes[0]).Name
		s, err := sequenceFor(seqs, name)
		if err != nil {
			return "", err
		}
		return reverseString(s), nil
	}

	var sb strings.Builder

	first, err := sequenceFor(seqs, g.Node(p.Nodes[0]).Name)
	if err != nil {
		return "", err
	}
	e0 := g.Edge(p.Edges[0])
	sb.WriteString(reverseString(substr(first, int(e0.TEnd)+1, len(first)-1)))

	for i := 1; i < len(p.Edges); i++ {
		e := g.Edge(p.Edges[i-1])
		eNext := g.Edge(p.Edges[i])

		start := int(eNext.TEnd)
		end := int(e.QEnd)

		switch {
		case start < end:
			tmp, err := sequenceFor(seqs, g.Node(p.Nodes[i]).Name)
			if err != nil {
				return "", err
			}
			if e.RelativeStrand {
				tmp = swapBases(tmp)
			}
			sb.WriteString(reverseString(substr(tmp, start+1, end)))
		case start == end:
			continue
		default:
			built := sb.String()
			trim := len(built) - 1 - (start - end)
			sb.Reset()
			sb.WriteString(substr(built, 0, trim))
		}
	}

	lastEdge := g.Edge(p.Edges[len(p.Edges)-1])
	last, err := sequenceFor(seqs, g.Node(p.Nodes[len(p.Nodes)-1]).Name)
	if err != nil {
		return "", err
	}
	sb.WriteString(reverseString(substr(last, 0, int(lastEdge.QEnd))))

	return reverseString(sb.String()), nil
}
