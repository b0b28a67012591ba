package reorder

import (
	"errors"

	"github.com/katalvlaran/refmatrix/core"
)

// Strategy selects the clustering linkage and leaf-ordering behavior.
type Strategy string

const (
	// Average — UPGMA linkage, plain dendrogram leaf order.
	Average Strategy = "average"

	// Ward — Ward's minimum-variance linkage, plain dendrogram leaf order.
	Ward Strategy = "ward"

	// WardOptimal — Ward linkage with optimal leaf ordering on top.
	WardOptimal Strategy = "optimal"
)

// ErrUnknownStrategy is returned for a Strategy value outside the set above.
var ErrUnknownStrategy = errors.New("reorder: unknown strategy")

// Reorder permutes m so that similar rows sit adjacently and returns the
// reordered matrix together with the permutation that produced it
// (result row i is original row order[i]).
//
// The matrix kind is detected from the data; see the package doc for the
// full pipeline. A matrix whose derived distances are all zero, or a 1×1
// matrix, comes back unchanged under the identity permutation.
// Complexity: O(n³) time, O(n²) memory.
func Reorder(m *core.Matrix, strategy Strategy) (*core.Matrix, []int, error) {
	if m == nil || m.Len() == 0 {
		return nil, nil, core.ErrEmptyMatrix
	}

	var linkage Linkage
	switch strategy {
	case Average:
		linkage = linkAverage
	case Ward, WardOptimal:
		linkage = linkWard
	default:
		return nil, nil, ErrUnknownStrategy
	}

	n := m.Len()
	d := toDistance(m)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n > 1 && !allZero(d) {
		merges := cluster(d, linkage)
		if strategy == WardOptimal {
			order = optimalLeafOrder(d, merges, n)
		} else {
			order = leafOrder(merges, n)
		}
	}

	out, err := m.Permute(order)
	if err != nil {
		return nil, nil, err
	}

	return out, order, nil
}
