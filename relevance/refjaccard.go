package relevance

import (
	"sort"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/normalize"
)

// ReferenceJaccard computes Jaccard similarity directly over each
// document's normalized raw reference set, bypassing edge resolution
// entirely. Unlike the adjacency-based CommonLinks, this signal is stable
// under corpus growth: adding a new document can re-resolve other
// documents' edges (virtual nodes becoming real), but it never changes
// what a document literally references.
//
// The matrix is labeled by real document ids, sorted; diagonal 1;
// both-empty pairs score 0.
// Complexity: O(D² · R) with R the mean reference-set size.
func ReferenceJaccard(documents []core.Document) (*core.Matrix, error) {
	if len(documents) == 0 {
		return nil, ErrNoNodes
	}

	docs := make([]core.Document, len(documents))
	copy(docs, documents)
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	ids := make([]string, len(docs))
	sets := make([]map[string]struct{}, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		set := make(map[string]struct{}, len(d.ExtractedLinks))
		for _, raw := range d.ExtractedLinks {
			set[normalize.Normalize(raw)] = struct{}{}
		}
		sets[i] = set
	}

	out, err := core.NewMatrix(ids)
	if err != nil {
		return nil, err
	}
	n := len(ids)
	for i := 0; i < n; i++ {
		if err = out.Set(i, i, 1); err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			score := jaccard(sets[i], sets[j])
			if err = out.Set(i, j, score); err != nil {
				return nil, err
			}
			if err = out.Set(j, i, score); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// jaccard returns |a ∩ b| / |a ∪ b|, 0 when the union is empty.
func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}

	return float64(inter) / float64(union)
}
