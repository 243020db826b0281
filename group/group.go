// Package group partitions the paths between one anchor pair into
// length-based groups via windowed valley/peak detection over the
// length-frequency histogram, then selects a representative consensus path
// per group.
package group

import (
	"sort"

	"github.com/nanopath/scaffold/pathwalk"
)

// consensusThreshold bounds how wide a group's length spread may be before
// ComputeConsensus gives up.
const consensusThreshold = 100000

// Params configures ConstructGroups. Defaults:
// LenThreshold=10000, WindowSize=1000, RatioThreshold=0.9.
type Params struct {
	LenThreshold   int64
	WindowSize     int64
	RatioThreshold float64
}

// DefaultParams returns the default grouping configuration.
func DefaultParams() Params {
	return Params{LenThreshold: 10000, WindowSize: 1000, RatioThreshold: 0.9}
}

// Group is a non-empty ordered collection of paths (ascending by length)
// between one anchor pair, a length-frequency map, and an optional
// consensus path.
type Group struct {
	Paths     []*pathwalk.Path
	Freq      map[int64]int
	Consensus *pathwalk.Path
}

func newGroup(paths []*pathwalk.Path) *Group {
	freq := make(map[int64]int, len(paths))
	for _, p := range paths {
		freq[p.Length]++
	}
	return &Group{Paths: append([]*pathwalk.Path(nil), paths...), Freq: freq}
}

// DiscardInfrequent removes every path whose length's frequency is
// strictly less than floor(f_max/2), where f_max is the group's highest
// per-length frequency. A no-op when floor(f_max/2) == 0.
func (g *Group) DiscardInfrequent() {
	fMax := 0
	for _, c := range g.Freq {
		if c > fMax {
			fMax = c
		}
	}
	threshold := fMax / 2
	if threshold == 0 {
		return
	}
	kept := g.Paths[:0]
	for _, p := range g.Paths {
		if g.Freq[p.Length] >= threshold {
			kept = append(kept, p)
		}
	}
	g.Paths = kept
}

// ComputeConsensus sets g.Consensus, or leaves it nil when the group's
// length spread exceeds consensusThreshold or the group is empty.
func (g *Group) ComputeConsensus() {
	g.Consensus = nil
	if len(g.Paths) == 0 {
		return
	}
	minLen, maxLen := g.Paths[0].Length, g.Paths[len(g.Paths)-1].Length
	if maxLen-minLen > consensusThreshold {
		return
	}

	var sum int64
	for _, p := range g.Paths {
		sum += p.Length
	}
	avg := sum / int64(len(g.Paths))

	for _, p := range g.Paths {
		if p.Length >= avg {
			g.Consensus = p
			return
		}
	}
	g.Consensus = g.Paths[len(g.Paths)-1]
}

// ValidPathCount counts paths whose node sequence equals the consensus'.
// It is 0 when no consensus has been computed.
func (g *Group) ValidPathCount() int {
	if g.Consensus == nil {
		return 0
	}
	n := 0
	for _, p := range g.Paths {
		if p.SameNodeSequence(*g.Consensus) {
			n++
		}
	}
	return n
}

// ConstructGroups sorts paths ascending by length and splits them into
// groups at any detected dividing lengths. paths is sorted in
// place.
func ConstructGroups(paths []*pathwalk.Path, params Params) []*Group {
	if len(paths) == 0 {
		return nil
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Length < paths[j].Length
	})

	minLen, maxLen := paths[0].Length, paths[len(paths)-1].Length
	if maxLen-minLen < params.LenThreshold {
		return []*Group{newGroup(paths)}
	}

	windows := tileWindows(paths, minLen, maxLen, params.WindowSize)
	dividers := dividingLengths(windows, params.RatioThreshold)
	if len(dividers) == 0 {
		return []*Group{newGroup(paths)}
	}
	return splitAtDividers(paths, dividers)
}

// window is one contiguous length bucket over [lower, lower+size).
type window struct {
	lower     int64
	paths     []*pathwalk.Path
	freq      map[int64]int
	totalFreq int
}

// tileWindows tiles [minLen, maxLen] into fixed-width windows and trims any
// leading/trailing windows that end up empty (tiling overshoot past
// maxLen). An empty window *between* two non-empty ones is kept: it is the
// valley the interior-triple scan in dividingLengths is looking for.
func tileWindows(paths []*pathwalk.Path, minLen, maxLen, size int64) []*window {
	n := int((maxLen-minLen)/size) + 1
	all := make([]*window, n)
	for i := range all {
		all[i] = &window{lower: minLen + int64(i)*size, freq: map[int64]int{}}
	}
	for _, p := range paths {
		idx := int((p.Length - minLen) / size)
		if idx >= n {
			idx = n - 1
		}
		w := all[idx]
		w.paths = append(w.paths, p)
		w.freq[p.Length]++
		w.totalFreq++
	}

	start := 0
	for start < len(all) && all[start].totalFreq == 0 {
		start++
	}
	end := len(all)
	for end > start && all[end-1].totalFreq == 0 {
		end--
	}
	return all[start:end]
}

// dividingLengths implements step 4: for each interior window
// triple, compare the valley's lowest-frequency length entry against the
// peak's highest-frequency entry, recording the valley length as a
// dividing length when the valley is significantly under-represented.
func dividingLengths(windows []*window, ratio float64) []int64 {
	if len(windows) < 3 {
		return nil
	}
	seen := make(map[int64]bool)
	var out []int64
	for i := 1; i <= len(windows)-2; i++ {
		triple := [3]*window{windows[i-1], windows[i], windows[i+1]}

		valleyIdx, peakIdx := 0, 0
		for k := 1; k < 3; k++ {
			if triple[k].totalFreq < triple[valleyIdx].totalFreq {
				valleyIdx = k
			}
			if triple[k].totalFreq > triple[peakIdx].totalFreq {
				peakIdx = k
			}
		}

		lv, fv := extremeFrequencyEntry(triple[valleyIdx], false)
		_, fp := extremeFrequencyEntry(triple[peakIdx], true)
		if float64(fv) < ratio*float64(fp) && !seen[lv] {
			seen[lv] = true
			out = append(out, lv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// extremeFrequencyEntry returns the (length, count) entry of w.freq with
// the highest (highest=true) or lowest count, breaking ties toward the
// smallest length. A window with no paths at all (an interior valley with
// zero frequency) has no length entries; its window start stands in for
// the missing length, at count 0.
func extremeFrequencyEntry(w *window, highest bool) (int64, int) {
	if len(w.freq) == 0 {
		return w.lower, 0
	}
	lengths := make([]int64, 0, len(w.freq))
	for l := range w.freq {
		lengths = append(lengths, l)
	}
	sort.Slice(lengths, func(i, j int) bool { return lengths[i] < lengths[j] })

	bestL := lengths[0]
	bestF := w.freq[bestL]
	for _, l := range lengths[1:] {
		f := w.freq[l]
		if (highest && f > bestF) || (!highest && f < bestF) {
			bestL, bestF = l, f
		}
	}
	return bestL, bestF
}

// splitAtDividers splits the ascending-sorted paths at each dividing
// length: a path with length exactly equal to a divider belongs to the
// group that follows it.
func splitAtDividers(paths []*pathwalk.Path, dividers []int64) []*Group {
	var groups []*Group
	start, di := 0, 0
	for i, p := range paths {
		for di < len(dividers) && p.Length >= dividers[di] {
			if i > start {
				groups = append(groups, newGroup(paths[start:i]))
				start = i
			}
			di++
		}
	}
	if start < len(paths) {
		groups = append(groups, newGroup(paths[start:]))
	}
	return groups
}
