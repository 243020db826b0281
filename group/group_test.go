package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanopath/scaffold/pathwalk"
)

func withLength(n int64) *pathwalk.Path {
	return &pathwalk.Path{Length: n}
}

func pathWithNodes(nodes ...int) *pathwalk.Path {
	return &pathwalk.Path{Nodes: nodes}
}

func TestConstructGroups_BelowThresholdIsOneGroup(t *testing.T) {
	paths := make([]*pathwalk.Path, 10)
	for i := range paths {
		paths[i] = withLength(int64(100 + i))
	}
	groups := ConstructGroups(paths, DefaultParams())
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Paths, 10)
}

func TestConstructGroups_BubbleTwoPeaksSplit(t *testing.T) {
	var paths []*pathwalk.Path
	for i := 0; i < 5; i++ {
		paths = append(paths, withLength(900))
	}
	for i := 0; i < 5; i++ {
		paths = append(paths, withLength(1100))
	}
	params := Params{LenThreshold: 10, WindowSize: 100, RatioThreshold: 0.9}
	groups := ConstructGroups(paths, params)
	require.Len(t, groups, 2)
	assert.EqualValues(t, 900, groups[0].Paths[0].Length)
	assert.EqualValues(t, 1100, groups[1].Paths[0].Length)
}

func TestConstructGroups_ConcatenationEqualsSortedInput(t *testing.T) {
	paths := []*pathwalk.Path{withLength(500), withLength(100), withLength(900), withLength(300)}
	groups := ConstructGroups(paths, Params{LenThreshold: 10000, WindowSize: 100, RatioThreshold: 0.9})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Paths, 4)
	prev := int64(-1)
	for _, p := range groups[0].Paths {
		assert.GreaterOrEqual(t, p.Length, prev)
		prev = p.Length
	}
}

func TestGroup_DiscardInfrequent(t *testing.T) {
	g := newGroup([]*pathwalk.Path{
		withLength(100), withLength(100), withLength(100), withLength(100),
		withLength(200),
	})
	g.DiscardInfrequent()
	// fMax=4 (length 100), threshold=floor(4/2)=2; length-200 has freq 1 < 2, dropped.
	assert.Len(t, g.Paths, 4)
	for _, p := range g.Paths {
		assert.EqualValues(t, 100, p.Length)
	}
}

func TestGroup_DiscardInfrequentNoOpWhenThresholdZero(t *testing.T) {
	g := newGroup([]*pathwalk.Path{withLength(100)})
	g.DiscardInfrequent() // fMax=1, floor(1/2)=0 -> no-op
	assert.Len(t, g.Paths, 1)
}

func TestGroup_ComputeConsensus_PicksFirstAtOrAboveAverage(t *testing.T) {
	g := newGroup([]*pathwalk.Path{withLength(100), withLength(200), withLength(300)})
	g.ComputeConsensus()
	require.NotNil(t, g.Consensus)
	// average = 200; first path with length >= 200 is the second one.
	assert.EqualValues(t, 200, g.Consensus.Length)
}

func TestGroup_ComputeConsensus_SinglePathGroup(t *testing.T) {
	g := newGroup([]*pathwalk.Path{withLength(50)})
	g.ComputeConsensus()
	require.NotNil(t, g.Consensus)
	assert.EqualValues(t, 50, g.Consensus.Length)
}

func TestGroup_ComputeConsensus_UnsetBeyondThreshold(t *testing.T) {
	g := newGroup([]*pathwalk.Path{withLength(0), withLength(consensusThreshold + 1)})
	g.ComputeConsensus()
	assert.Nil(t, g.Consensus)
}

func TestGroup_ComputeConsensus_EmptyGroupStaysUnset(t *testing.T) {
	g := newGroup(nil)
	g.ComputeConsensus()
	assert.Nil(t, g.Consensus)
}

func TestGroup_ValidPathCount(t *testing.T) {
	a := pathWithNodes(1, 2, 3)
	b := pathWithNodes(1, 2, 3)
	c := pathWithNodes(1, 9, 3)
	g := newGroup([]*pathwalk.Path{a, b, c})
	g.Consensus = a
	assert.Equal(t, 2, g.ValidPathCount())
}

func TestGroup_ValidPathCount_ZeroWithoutConsensus(t *testing.T) {
	g := newGroup([]*pathwalk.Path{pathWithNodes(1, 2)})
	assert.Equal(t, 0, g.ValidPathCount())
}
