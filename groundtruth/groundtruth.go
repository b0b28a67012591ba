// Package groundtruth turns a relevance matrix restricted to real
// documents into per-document ranked lists of relevant peers — the
// reference answer set for scoring a document-retrieval system.
//
// For each query document, all other documents are ranked by descending
// score; entries below the threshold are dropped; TotalRelevant records
// the kept count before truncation to top-k. Ties are broken by a stable
// sort, so equal scores keep the matrix's label order and two runs over
// the same inputs produce byte-identical output.
//
// The matrix is a parameter on purpose: the caller picks which relevance
// signal feeds the ground truth (the combined blend by default, or either
// Jaccard variant — see package relevance).
package groundtruth

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/refmatrix/core"
)

// Defaults for the ground-truth cut.
const (
	// DefaultThreshold is the minimum relevance score a peer must reach.
	DefaultThreshold = 0.3

	// DefaultTopK is the maximum list length per query document.
	DefaultTopK = 10
)

// Sentinel errors for ground-truth generation.
var (
	// ErrBadThreshold indicates a threshold outside [0,1] or NaN.
	ErrBadThreshold = errors.New("groundtruth: threshold must be in [0,1]")

	// ErrBadTopK indicates a non-positive top-k.
	ErrBadTopK = errors.New("groundtruth: top_k must be positive")
)

// ScoredDoc is one ranked peer.
type ScoredDoc struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Entry is the ground truth for one query document.
type Entry struct {
	// QueryDoc is the document the list answers for.
	QueryDoc string `json:"query_doc"`

	// RelevantDocs are peers with Score ≥ Threshold, descending, stable
	// ties, truncated to top-k.
	RelevantDocs []ScoredDoc `json:"relevant_docs"`

	// TotalRelevant is the number of peers above the threshold before
	// truncation.
	TotalRelevant int `json:"total_relevant"`

	// Threshold echoes the cut used, for self-describing output files.
	Threshold float64 `json:"threshold"`
}

// Generate produces one Entry per matrix row, in label order.
// The caller restricts m to real document ids beforehand
// (core.Matrix.Submatrix); virtual nodes have no place in retrieval
// evaluation.
// Complexity: O(n² log n).
func Generate(m *core.Matrix, threshold float64, topK int) ([]Entry, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, ErrBadThreshold
	}
	if topK <= 0 {
		return nil, ErrBadTopK
	}

	ids := m.IDs()
	n := len(ids)
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		row, err := m.Row(i)
		if err != nil {
			return nil, err
		}

		var kept []ScoredDoc
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if row[j] >= threshold {
				kept = append(kept, ScoredDoc{ID: ids[j], Score: row[j]})
			}
		}
		// Stable: equal scores keep label order for reproducible ties.
		sort.SliceStable(kept, func(a, b int) bool { return kept[a].Score > kept[b].Score })

		total := len(kept)
		if total > topK {
			kept = kept[:topK]
		}
		entries = append(entries, Entry{
			QueryDoc:      ids[i],
			RelevantDocs:  kept,
			TotalRelevant: total,
			Threshold:     threshold,
		})
	}

	return entries, nil
}
