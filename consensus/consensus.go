// Package consensus reduces an anchor pair's candidate groups down to a
// single representative path.
package consensus

import (
	"sort"

	"github.com/nanopath/scaffold/group"
	"github.com/nanopath/scaffold/pathwalk"
)

// Reduce picks the anchor-pair consensus among groups:
//
//   - 0 groups with a consensus -> nil.
//   - 1 -> that consensus.
//   - 2 -> the one with the longer consensus.
//   - >=3 -> sort by consensus length descending; walk pairwise, replacing
//     the running "longer" candidate with the next "shorter" one whenever
//     the shorter is at least twice as well supported
//     (2*longer.ValidPathCount() <= shorter.ValidPathCount()).
func Reduce(groups []*group.Group) *pathwalk.Path {
	var withConsensus []*group.Group
	for _, g := range groups {
		if g.Consensus != nil {
			withConsensus = append(withConsensus, g)
		}
	}

	switch len(withConsensus) {
	case 0:
		return nil
	case 1:
		return withConsensus[0].Consensus
	case 2:
		a, b := withConsensus[0], withConsensus[1]
		if a.Consensus.Length >= b.Consensus.Length {
			return a.Consensus
		}
		return b.Consensus
	default:
		sort.SliceStable(withConsensus, func(i, j int) bool {
			return withConsensus[i].Consensus.Length > withConsensus[j].Consensus.Length
		})
		longer := withConsensus[0]
		for _, shorter := range withConsensus[1:] {
			if 2*longer.ValidPathCount() <= shorter.ValidPathCount() {
				longer = shorter
			}
		}
		return longer.Consensus
	}
}
