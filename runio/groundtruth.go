package runio

import (
	"math"

	"github.com/katalvlaran/refmatrix/groundtruth"
)

// round3 keeps ground-truth files readable; full precision lives in the
// matrix CSVs.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// SaveGroundTruth writes the entries as indented JSON with scores and the
// threshold rounded to 3 decimal places. The caller's slice is not
// modified.
func SaveGroundTruth(path string, entries []groundtruth.Entry) error {
	out := make([]groundtruth.Entry, len(entries))
	for i, e := range entries {
		docs := make([]groundtruth.ScoredDoc, len(e.RelevantDocs))
		for j, d := range e.RelevantDocs {
			docs[j] = groundtruth.ScoredDoc{ID: d.ID, Score: round3(d.Score)}
		}
		out[i] = groundtruth.Entry{
			QueryDoc:      e.QueryDoc,
			RelevantDocs:  docs,
			TotalRelevant: e.TotalRelevant,
			Threshold:     round3(e.Threshold),
		}
	}

	return writeJSON(path, out)
}
