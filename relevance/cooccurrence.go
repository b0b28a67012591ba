package relevance

import (
	"sort"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/normalize"
)

// Cooccurrence counts, for every pair of referenced targets, how many
// documents cite both together. The axis label set is the sorted union of
// all normalized reference texts across documents — the targets, not the
// citing documents.
//
// The result is co-occurrence typed: integer counts, diagonal 0,
// unbounded. Consumers must detect that via core.Matrix.DetectKind before
// converting to distances.
// Complexity: O(D · R²) with R the mean reference-set size.
func Cooccurrence(documents []core.Document) (*core.Matrix, error) {
	if len(documents) == 0 {
		return nil, ErrNoNodes
	}

	targetSet := make(map[string]struct{})
	normalized := make([][]string, len(documents))
	for di, d := range documents {
		seen := make(map[string]struct{}, len(d.ExtractedLinks))
		for _, raw := range d.ExtractedLinks {
			norm := normalize.Normalize(raw)
			if norm == "" {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}
			normalized[di] = append(normalized[di], norm)
			targetSet[norm] = struct{}{}
		}
	}
	if len(targetSet) == 0 {
		return nil, ErrNoNodes
	}

	targets := make([]string, 0, len(targetSet))
	for t := range targetSet {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	out, err := core.NewMatrix(targets)
	if err != nil {
		return nil, err
	}
	for _, refs := range normalized {
		for i := 0; i < len(refs); i++ {
			for j := i + 1; j < len(refs); j++ {
				a, _ := out.Index(refs[i])
				b, _ := out.Index(refs[j])
				va, _ := out.At(a, b)
				vb, _ := out.At(b, a)
				_ = out.Set(a, b, va+1)
				_ = out.Set(b, a, vb+1)
			}
		}
	}

	return out, nil
}
