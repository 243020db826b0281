// Package scaffold is a genome scaffolding engine: given pairwise overlap
// alignments between long reads, and overlap alignments between assembled
// contigs (anchors) and those reads, it discovers anchor-to-anchor paths
// through the read overlap graph and reduces them to a consensus scaffold.
//
// The pipeline, leaf packages first:
//
//	pafio/      — PAF overlap record type and line-oriented reader
//	seqio/      — FASTA/FASTQ sequence loading
//	stopwatch/  — lap/total timing for CLI progress reporting
//	ograph/     — overlap graph construction with quality filtering
//	pathwalk/   — Path type and the Monte-Carlo / deterministic path heuristics
//	registry/   — path de-duplication and per-anchor-pair indexing
//	group/      — length-histogram grouping and per-group consensus
//	consensus/  — anchor-pair consensus reduction across groups
//	stitcher/   — final sequence stitching from a consensus path
//
// Everything here is synchronous, single-threaded, and operates on
// in-memory structures built once and never mutated after construction;
// see ograph's package doc for the node/edge arena invariants that every
// downstream package relies on.
//
//	go get github.com/nanopath/scaffold
package scaffold
