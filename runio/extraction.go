package runio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/refgraph"
)

// ErrCountMismatch indicates metadata totals that do not account for every
// extracted reference.
var ErrCountMismatch = errors.New("runio: metadata counts do not reconcile")

// Metadata summarizes one extraction run.
type Metadata struct {
	ExtractionDate         time.Time `json:"extraction_date"`
	SourceDirectory        string    `json:"source_directory"`
	TotalDocuments         int       `json:"total_documents"`
	TotalMatchedLinks      int       `json:"total_matched_links"`
	TotalUnmatchedLinks    int       `json:"total_unmatched_links"`
	SubdirectoriesSearched int       `json:"subdirectories_searched"`
	RunID                  string    `json:"run_id"`
}

// ExtractionResult is the persisted outcome of extraction plus graph
// building. Documents carry their raw extracted_links, so editing them in
// the JSON and re-running graph building reproduces the downstream
// artifacts without touching the source spreadsheets.
type ExtractionResult struct {
	Metadata       Metadata                  `json:"metadata"`
	Documents      []core.Document           `json:"documents"`
	Links          []core.Edge               `json:"links"`
	UnmatchedLinks []core.UnmatchedReference `json:"unmatched_links"`
}

// NewExtractionResult assembles the persisted record from the extracted
// documents and the resolved graph.
func NewExtractionResult(rc *RunContext, sourceDir string, docs []core.Document, g *refgraph.Result) ExtractionResult {
	dirs := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		dirs[d.Directory] = struct{}{}
	}

	return ExtractionResult{
		Metadata: Metadata{
			ExtractionDate:         rc.Stamp,
			SourceDirectory:        sourceDir,
			TotalDocuments:         len(docs),
			TotalMatchedLinks:      len(g.Edges),
			TotalUnmatchedLinks:    len(g.Unmatched),
			SubdirectoriesSearched: len(dirs),
			RunID:                  rc.ID,
		},
		Documents:      docs,
		Links:          g.Edges,
		UnmatchedLinks: g.Unmatched,
	}
}

// Reconcile verifies the accounting invariant: every extracted reference
// appears exactly once, as a matched link or an unmatched record.
func (r *ExtractionResult) Reconcile() error {
	extracted := 0
	for _, d := range r.Documents {
		extracted += d.ExtractedLinksCount
	}
	if len(r.Links)+len(r.UnmatchedLinks) != extracted {
		return fmt.Errorf("%w: %d links + %d unmatched != %d extracted",
			ErrCountMismatch, len(r.Links), len(r.UnmatchedLinks), extracted)
	}
	if r.Metadata.TotalMatchedLinks != len(r.Links) ||
		r.Metadata.TotalUnmatchedLinks != len(r.UnmatchedLinks) ||
		r.Metadata.TotalDocuments != len(r.Documents) {
		return fmt.Errorf("%w: metadata totals disagree with record contents", ErrCountMismatch)
	}

	return nil
}

// SaveExtraction writes the extraction result as indented JSON.
func SaveExtraction(path string, r ExtractionResult) error {
	return writeJSON(path, r)
}

// LoadExtraction reads an extraction result back, tolerating a UTF-8 BOM
// that spreadsheet-adjacent editors like to prepend. Counts are NOT
// re-validated here: the whole point of loading is the rebuild workflow,
// where a human has edited extracted_links and the totals will be
// recomputed from scratch.
func LoadExtraction(path string) (ExtractionResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{}, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var r ExtractionResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return ExtractionResult{}, err
	}

	return r, nil
}
