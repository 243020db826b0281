package ograph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanopath/scaffold/pafio"
)

func paf(lines ...string) *pafio.Reader {
	return pafio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestAddFromReader_BuildsNodesAndEdges(t *testing.T) {
	g := New()
	r := paf("read1 1000 100 900 + ctg1 5000 200 1000 750 800 60 x y z w")
	require.NoError(t, g.AddFromReader(r, true))

	require.Len(t, g.Nodes(), 2)
	require.Len(t, g.Edges(), 1)

	// ctg1 is the target and starts with "ctg" -> anchor.
	var ctg, read *Node
	for i := range g.Nodes() {
		n := g.Node(i)
		if n.Name == "ctg1" {
			ctg = n
		} else {
			read = n
		}
	}
	require.NotNil(t, ctg)
	require.NotNil(t, read)
	assert.True(t, ctg.IsAnchor)
	assert.False(t, read.IsAnchor)

	// Edge only registered under the target node's adjacency (ctg1, since
	// record lists ctg1 as target).
	assert.Len(t, ctg.EdgeIdx, 1)
	assert.Len(t, read.EdgeIdx, 0)
}

func TestAddFromReader_DedupesNodesByName(t *testing.T) {
	g := New()
	r := paf(
		"read1 1000 100 900 + ctg1 5000 200 1000 750 800 60 x y z w",
		"read1 1000 50 950 + ctg2 6000 100 1000 800 900 60 x y z w",
	)
	require.NoError(t, g.AddFromReader(r, true))

	// read1 appears twice but should only be inserted once.
	count := 0
	for i := range g.Nodes() {
		if g.Node(i).Name == "read1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, g.Nodes(), 3) // read1, ctg1, ctg2
	assert.Len(t, g.Edges(), 2)
}

func TestAddFromReader_RejectsSelfOverlap(t *testing.T) {
	g := New()
	r := paf("readX 1000 100 900 + readX 1000 100 900 60 800 60 x y z w")
	require.NoError(t, g.AddFromReader(r, false))
	assert.Len(t, g.Nodes(), 0)
	assert.Len(t, g.Edges(), 0)
}

func TestAddFromReaderWithParams_FiltersByMinOverlapLen(t *testing.T) {
	g := New()
	r := paf("read1 1000 100 200 + ctg1 5000 200 300 90 100 60 x y z w") // OL=100 avg
	params := DefaultFilterParams()
	params.MinOverlapLen = 500
	require.NoError(t, g.AddFromReaderWithParams(r, true, params))
	assert.Len(t, g.Edges(), 0)
}

func TestAddFromReader_AnchorsFlagFalseMarksNothingAnchor(t *testing.T) {
	g := New()
	r := paf("ctg1 1000 100 900 + ctg2 5000 200 1000 750 800 60 x y z w")
	require.NoError(t, g.AddFromReader(r, false))
	for i := range g.Nodes() {
		assert.False(t, g.Node(i).IsAnchor)
	}
}

func TestAddFromReader_NoCtgPrefixLeavesNeitherAnchor(t *testing.T) {
	g := New()
	r := paf("read1 1000 100 900 + read2 5000 200 1000 750 800 60 x y z w")
	require.NoError(t, g.AddFromReader(r, true))
	for i := range g.Nodes() {
		assert.False(t, g.Node(i).IsAnchor)
	}
}

func TestStats_EmptyGraph(t *testing.T) {
	g := New()
	s := g.Stats()
	assert.Equal(t, Stats{}, s)
}

func TestStats_ComputesMinMax(t *testing.T) {
	g := New()
	r := paf(
		"read1 1000 100 900 + ctg1 5000 200 1000 750 800 60 x y z w",
		"read2 2000 100 900 + ctg1 5000 200 1000 750 800 60 x y z w",
	)
	require.NoError(t, g.AddFromReader(r, true))
	s := g.Stats()
	assert.Equal(t, 1, s.AnchorCount)
	assert.Equal(t, 2, s.ReadCount)
	assert.EqualValues(t, 1000, s.MinNodeLen)
	assert.EqualValues(t, 5000, s.MaxNodeLen)
	assert.Equal(t, 2, s.MaxAdjSize) // ctg1 gets both edges
}
