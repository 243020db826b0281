// scaffold is the batch CLI entry point: it loads PAF overlap streams and
// FASTA/FASTQ sequence sources, builds the overlap graph, runs both path
// heuristics, reduces the discovered paths to one consensus scaffold per
// anchor pair, and writes the stitched sequences to a FASTA file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nanopath/scaffold/consensus"
	"github.com/nanopath/scaffold/group"
	"github.com/nanopath/scaffold/ograph"
	"github.com/nanopath/scaffold/pafio"
	"github.com/nanopath/scaffold/pathwalk"
	"github.com/nanopath/scaffold/registry"
	"github.com/nanopath/scaffold/seqio"
	"github.com/nanopath/scaffold/stitcher"
	"github.com/nanopath/scaffold/stopwatch"
)

var (
	readsPAF   = flag.String("reads", "", "PAF file of read-vs-read overlaps (required)")
	anchorsPAF = flag.String("anchors", "", "PAF file of contig-vs-read overlaps (required)")
	contigsSeq = flag.String("contigs", "", "FASTA/FASTQ file of contig (anchor) sequences (required)")
	readsSeq   = flag.String("reads-seq", "", "FASTA/FASTQ file of read sequences (required)")
	out        = flag.String("out", "scaffold.fasta", "Output FASTA path")

	filterAvg = flag.Bool("filter-avg", true, "Aggregate query/target overlap quantities by average (default)")
	filterMin = flag.Bool("filter-min", false, "Aggregate query/target overlap quantities by minimum")
	filterMax = flag.Bool("filter-max", false, "Aggregate query/target overlap quantities by maximum")
	filterSum = flag.Bool("filter-sum", false, "Aggregate query/target overlap quantities by sum")

	minOLL = flag.Float64("min-oll", 0, "Minimum overlap length")
	minOLP = flag.Float64("min-olp", 0, "Minimum overlap length as a fraction of sequence length, in [0,1]")
	maxOHL = flag.Float64("max-ohl", -1, "Maximum overhang length (negative = unbounded)")
	maxOHP = flag.Float64("max-ohp", 1.0, "Maximum overhang length as a fraction of overlap length, in [0,1]")

	rbAtt = flag.Int("rb-att", 500, "Monte-Carlo rebuild attempts per anchor")
	btAtt = flag.Int("bt-att", 30, "Monte-Carlo backtrack attempts per walk")
	nnThr = flag.Int("nn-thr", 50, "Monte-Carlo node-count abort threshold")
	seed  = flag.Int64("seed", 42, "Monte-Carlo RNG seed")

	lenThr = flag.Int64("len-thr", 10000, "Group length-spread threshold below which no splitting occurs")
	wSize  = flag.Int64("w-size", 1000, "Group length-histogram window size")
	rThr   = flag.Float64("r-thr", 0.9, "Group valley/peak frequency ratio threshold, in [0,1]")
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if err := validateFlags(); err != nil {
		log.Error().Err(err).Msg("invalid flags")
		os.Exit(1)
	}

	if err := run(); err != nil {
		log.Error().Err(err).Msg("scaffold run failed")
		os.Exit(1)
	}
}

func validateFlags() error {
	if *readsPAF == "" || *anchorsPAF == "" || *contigsSeq == "" || *readsSeq == "" {
		return fmt.Errorf("-reads, -anchors, -contigs, and -reads-seq are all required")
	}
	for _, frac := range []struct {
		name string
		val  float64
	}{{"-min-olp", *minOLP}, {"-max-ohp", *maxOHP}, {"-r-thr", *rThr}} {
		if frac.val < 0.0 || frac.val > 1.0 {
			return fmt.Errorf("%s must be in [0.0, 1.0], got %v", frac.name, frac.val)
		}
	}
	set := 0
	for _, v := range []bool{*filterMin, *filterMax, *filterSum} {
		if v {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("-filter-min, -filter-max, and -filter-sum are mutually exclusive")
	}
	return nil
}

func aggMode() ograph.AggMode {
	switch {
	case *filterMin:
		return ograph.ModeMin
	case *filterMax:
		return ograph.ModeMax
	case *filterSum:
		return ograph.ModeSum
	default:
		return ograph.ModeAvg
	}
}

func run() error {
	var sw stopwatch.Stopwatch
	sw.Start()

	filterParams := ograph.DefaultFilterParams()
	filterParams.Mode = aggMode()
	filterParams.MinOverlapLen = *minOLL
	filterParams.MinOverlapFrac = *minOLP
	if *maxOHL >= 0 {
		filterParams.MaxOverhangLen = *maxOHL
	}
	filterParams.MaxOverhangFrac = *maxOHP

	g := ograph.New()
	if err := loadPAF(g, *readsPAF, false, filterParams); err != nil {
		return err
	}
	if err := loadPAF(g, *anchorsPAF, true, filterParams); err != nil {
		return err
	}
	stats := g.Stats()
	log.Info().
		Dur("elapsed", sw.Lap()).
		Int("anchors", stats.AnchorCount).
		Int("reads", stats.ReadCount).
		Msg("overlap graph built")

	mcParams := pathwalk.DefaultMonteCarloParams()
	mcParams.RebuildAttempts = *rbAtt
	mcParams.BacktrackAttempts = *btAtt
	mcParams.NodeNumThreshold = *nnThr
	mcParams.Seed = *seed

	reg := registry.New()
	reg.AddAll(pathwalk.BuildMonteCarlo(g, mcParams))
	reg.AddAll(pathwalk.BuildDeterministic(g, pathwalk.DefaultDeterministicParams()))
	log.Info().Dur("elapsed", sw.Lap()).Int("paths", len(reg.Paths())).Msg("path heuristics done")

	reg.Dedupe()
	byAnchorPair := reg.PathsBetweenAnchors()
	log.Info().Int("deduped", len(reg.Paths())).Int("anchor_pairs", len(byAnchorPair)).Msg("registry deduped")

	groupParams := group.Params{LenThreshold: *lenThr, WindowSize: *wSize, RatioThreshold: *rThr}

	contigSeqs, err := seqio.Load(*contigsSeq)
	if err != nil {
		return err
	}
	readSeqs, err := seqio.Load(*readsSeq)
	if err != nil {
		return err
	}
	allSeqs := mergeSequences(contigSeqs, readSeqs)

	var records []stitcher.Record
	for pair, paths := range byAnchorPair {
		consensusPath := anchorPairConsensus(paths, groupParams)
		if consensusPath == nil {
			continue
		}
		seq, err := stitcher.Stitch(g, *consensusPath, allSeqs)
		if err != nil {
			log.Error().Err(err).Int("first", pair.First).Int("last", pair.Last).Msg("stitching failed, skipping bridge")
			continue
		}
		records = append(records, stitcher.Record{
			Header:   fmt.Sprintf("%s_%s", g.Node(pair.First).Name, g.Node(pair.Last).Name),
			Sequence: seq,
		})
	}
	log.Info().Dur("elapsed", sw.Lap()).Int("bridges", len(records)).Msg("grouping and consensus done")

	if err := stitcher.WriteFASTA(*out, records); err != nil {
		return err
	}
	log.Info().Dur("total", sw.Stop()).Str("out", *out).Msg("scaffold written")
	return nil
}

func loadPAF(g *ograph.Graph, path string, anchors bool, params ograph.FilterParams) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	defer f.Close()

	r := pafio.NewReader(f)
	if err := g.AddFromReaderWithParams(r, anchors, params); err != nil {
		return fmt.Errorf("scaffold: %s: %w", path, err)
	}
	return nil
}

func mergeSequences(a, b seqio.Sequences) seqio.Sequences {
	out := make(seqio.Sequences, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// anchorPairConsensus runs the length-histogram grouper and per-group
// consensus selection over one anchor pair's paths, then reduces every
// group's consensus down to a single path for that pair.
func anchorPairConsensus(paths []*pathwalk.Path, params group.Params) *pathwalk.Path {
	groups := group.ConstructGroups(paths, params)
	for _, grp := range groups {
		grp.DiscardInfrequent()
		grp.ComputeConsensus()
	}
	return consensus.Reduce(groups)
}
