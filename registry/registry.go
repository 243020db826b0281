// Package registry owns every path discovered by pathwalk's heuristics: it
// deduplicates adjacent runs and indexes paths by the anchor pair they
// connect.
package registry

import "github.com/nanopath/scaffold/pathwalk"

// AnchorPair identifies the anchor nodes a path starts and ends at.
type AnchorPair struct {
	First, Last int
}

// Registry holds all paths appended so far, in discovery order.
type Registry struct {
	paths []pathwalk.Path
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add appends a newly discovered path.
func (r *Registry) Add(p pathwalk.Path) {
	r.paths = append(r.paths, p)
}

// AddAll appends every path in ps, in order.
func (r *Registry) AddAll(ps []pathwalk.Path) {
	r.paths = append(r.paths, ps...)
}

// Paths returns every path currently held, in discovery order.
func (r *Registry) Paths() []pathwalk.Path {
	return r.paths
}

// Dedupe removes adjacent duplicate paths by node-id-sequence equality.
// This is intentionally not a full-set dedupe: it preserves discovery
// order and only collapses bursts produced by the same heuristic
// invocation.
func (r *Registry) Dedupe() {
	if len(r.paths) < 2 {
		return
	}
	out := r.paths[:1]
	for i := 1; i < len(r.paths); i++ {
		if !r.paths[i].SameNodeSequence(out[len(out)-1]) {
			out = append(out, r.paths[i])
		}
	}
	r.paths = out
}

// PathsBetweenAnchors indexes paths by (first node, last node). Callers
// must call this only after Dedupe and must not Add further paths
// afterward: the returned pointers alias Registry's backing array, and a
// later append could reallocate it.
func (r *Registry) PathsBetweenAnchors() map[AnchorPair][]*pathwalk.Path {
	out := make(map[AnchorPair][]*pathwalk.Path)
	for i := range r.paths {
		p := &r.paths[i]
		if len(p.Nodes) == 0 {
			continue
		}
		key := AnchorPair{First: p.Nodes[0], Last: p.Nodes[len(p.Nodes)-1]}
		out[key] = append(out[key], p)
	}
	return out
}
