package runio

import (
	"math"
	"sort"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/groundtruth"
)

// ScoreStats describes the off-diagonal score distribution of the
// real-document relevance matrix, rounded to 3 decimal places.
type ScoreStats struct {
	Mean   float64 `json:"mean_relevance"`
	Median float64 `json:"median_relevance"`
	Std    float64 `json:"std_relevance"`
	Min    float64 `json:"min_relevance"`
	Max    float64 `json:"max_relevance"`
}

// GroundTruthStats summarizes the generated ground truth.
type GroundTruthStats struct {
	TotalQueries          int     `json:"total_queries"`
	AvgRelevantPerQuery   float64 `json:"avg_relevant_docs_per_query"`
	QueriesWithNoRelevant int     `json:"queries_with_no_relevant"`
}

// Summary is the per-run rollup written next to the matrices.
type Summary struct {
	Timestamp                string           `json:"timestamp"`
	RunID                    string           `json:"run_id"`
	SourceDirectory          string           `json:"source_directory"`
	TotalDocuments           int              `json:"total_documents"`
	TotalVirtualDocuments    int              `json:"total_virtual_documents"`
	TotalEdgesAboveThreshold int              `json:"total_edges_above_threshold"`
	Threshold                float64          `json:"threshold"`
	Statistics               ScoreStats       `json:"statistics"`
	GroundTruth              GroundTruthStats `json:"ground_truth_stats"`
}

// BuildSummary computes the rollup from the real-document relevance matrix
// (virtual nodes already stripped via Submatrix), the virtual-node count,
// and the generated ground truth.
func BuildSummary(rc *RunContext, sourceDir string, real *core.Matrix, virtualCount int,
	entries []groundtruth.Entry, threshold float64) Summary {
	s := Summary{
		Timestamp:             rc.Stamp.Format(stampLayout),
		RunID:                 rc.ID,
		SourceDirectory:       sourceDir,
		TotalDocuments:        real.Len(),
		TotalVirtualDocuments: virtualCount,
		Threshold:             threshold,
	}

	n := real.Len()
	var offDiag []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v, _ := real.At(i, j)
			offDiag = append(offDiag, v)
			if i < j && v >= threshold {
				s.TotalEdgesAboveThreshold++
			}
		}
	}
	s.Statistics = scoreStats(offDiag)

	s.GroundTruth.TotalQueries = len(entries)
	totalRelevant := 0
	for _, e := range entries {
		totalRelevant += e.TotalRelevant
		if e.TotalRelevant == 0 {
			s.GroundTruth.QueriesWithNoRelevant++
		}
	}
	if len(entries) > 0 {
		avg := float64(totalRelevant) / float64(len(entries))
		s.GroundTruth.AvgRelevantPerQuery = math.Round(avg*10) / 10
	}

	return s
}

// SaveSummary writes the rollup as indented JSON.
func SaveSummary(path string, s Summary) error {
	return writeJSON(path, s)
}

// scoreStats computes mean/median/population-std/min/max of values; all
// zeros when the sample is empty.
func scoreStats(values []float64) ScoreStats {
	if len(values) == 0 {
		return ScoreStats{}
	}

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	variance := 0.0
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return ScoreStats{
		Mean:   round3(mean),
		Median: round3(median),
		Std:    round3(math.Sqrt(variance)),
		Min:    round3(sorted[0]),
		Max:    round3(sorted[len(sorted)-1]),
	}
}
