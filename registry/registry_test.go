package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanopath/scaffold/pathwalk"
)

func path(nodes ...int) pathwalk.Path {
	return pathwalk.Path{Nodes: nodes}
}

func TestDedupe_CollapsesOnlyAdjacentRuns(t *testing.T) {
	r := New()
	r.AddAll([]pathwalk.Path{
		path(1, 2, 3),
		path(1, 2, 3), // adjacent duplicate, collapsed
		path(4, 5, 6),
		path(1, 2, 3), // not adjacent to the first run, kept
		path(1, 2, 3), // adjacent to the previous one, collapsed
	})
	r.Dedupe()

	require.Len(t, r.Paths(), 3)
	assert.Equal(t, []int{1, 2, 3}, r.Paths()[0].Nodes)
	assert.Equal(t, []int{4, 5, 6}, r.Paths()[1].Nodes)
	assert.Equal(t, []int{1, 2, 3}, r.Paths()[2].Nodes)
}

func TestDedupe_EmptyAndSingleton(t *testing.T) {
	r := New()
	r.Dedupe()
	assert.Len(t, r.Paths(), 0)

	r.Add(path(1, 2))
	r.Dedupe()
	require.Len(t, r.Paths(), 1)
}

func TestPathsBetweenAnchors_GroupsByFirstAndLastNode(t *testing.T) {
	r := New()
	r.AddAll([]pathwalk.Path{
		path(1, 9, 2),
		path(1, 8, 2),
		path(1, 7, 3),
	})
	idx := r.PathsBetweenAnchors()

	require.Len(t, idx, 2)
	assert.Len(t, idx[AnchorPair{First: 1, Last: 2}], 2)
	assert.Len(t, idx[AnchorPair{First: 1, Last: 3}], 1)
}
