package pathwalk

import (
	"math"

	"github.com/nanopath/scaffold/ograph"
)

// Metric selects the per-edge scalar both heuristics walk toward.
type Metric int

const (
	// MetricOverlapScore walks on raw overlap score.
	MetricOverlapScore Metric = iota
	// MetricExtensionScore walks on raw extension score.
	MetricExtensionScore
	// MetricOverlapScoreSqrt walks on sqrt(overlap score), flattening the
	// distribution so long tails dominate sampling less.
	MetricOverlapScoreSqrt
	// MetricExtensionScoreSqrt walks on sqrt(extension score).
	MetricExtensionScoreSqrt
)

// metricValue extracts the scalar m selects from e. Negative inputs are
// clamped to 0 before the square root so a degenerate negative overlap score
// never produces NaN.
func metricValue(e *ograph.Edge, m Metric) float64 {
	switch m {
	case MetricOverlapScore:
		return e.OverlapScore
	case MetricExtensionScore:
		return e.ExtensionScore
	case MetricOverlapScoreSqrt:
		return math.Sqrt(math.Max(e.OverlapScore, 0))
	case MetricExtensionScoreSqrt:
		return math.Sqrt(math.Max(e.ExtensionScore, 0))
	default:
		return 0
	}
}
