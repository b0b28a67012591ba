package relevance

import (
	"errors"
	"sort"

	"github.com/katalvlaran/refmatrix/core"
)

// Sentinel errors for relevance calculation.
var (
	// ErrNoNodes indicates an empty node set.
	ErrNoNodes = errors.New("relevance: empty node set")

	// ErrForeignEdge indicates an edge endpoint outside the node set.
	ErrForeignEdge = errors.New("relevance: edge endpoint not in node set")

	// ErrUnknownMethod indicates a Method outside the declared set.
	ErrUnknownMethod = errors.New("relevance: unknown method")
)

// Method selects the relevance matrix derivation.
type Method string

const (
	// Direct — the adjacency matrix itself, diagonal forced to 1.
	Direct Method = "direct"

	// Bidirectional — mutual links score 1.0, one-directional 0.5.
	Bidirectional Method = "bidirectional"

	// CommonLinks — Jaccard similarity of outgoing link sets.
	CommonLinks Method = "common_links"

	// Combined — fixed-weight blend of the three; the default for
	// ground-truth generation.
	Combined Method = "combined"
)

// Blend weights for the Combined method. Fixed by contract.
const (
	WeightDirect        = 0.5
	WeightBidirectional = 0.3
	WeightCommonLinks   = 0.2
)

// NodeSet returns the sorted union of all real document ids and all edge
// endpoints. This is the axis label set for full-graph matrices.
func NodeSet(documents []core.Document, edges []core.Edge) []string {
	set := make(map[string]struct{}, len(documents))
	for _, d := range documents {
		set[d.ID] = struct{}{}
	}
	for _, e := range edges {
		set[e.Source] = struct{}{}
		set[e.Target] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Adjacency builds the directed, unweighted adjacency matrix over nodeIDs:
// A[i][j] = 1 iff some edge i → j exists. Self-loops are dropped.
// Every edge endpoint must belong to nodeIDs (ErrForeignEdge otherwise).
// Complexity: O(n² + E).
func Adjacency(edges []core.Edge, nodeIDs []string) (*core.Matrix, error) {
	if len(nodeIDs) == 0 {
		return nil, ErrNoNodes
	}
	adj, err := core.NewMatrix(nodeIDs)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		i, err := adj.Index(e.Source)
		if err != nil {
			return nil, ErrForeignEdge
		}
		j, err := adj.Index(e.Target)
		if err != nil {
			return nil, ErrForeignEdge
		}
		if i == j {
			continue
		}
		if err = adj.Set(i, j, 1); err != nil {
			return nil, err
		}
	}

	return adj, nil
}

// Calculate derives the relevance matrix for method from the adjacency
// matrix adj. The result shares adj's labels and carries a unit diagonal.
// Bidirectional and CommonLinks are symmetric by construction; Direct (and
// therefore Combined) inherits the directedness of the input — only
// CommonLinks is inherently symmetric from directed input without forcing.
// Complexity: O(n²) for direct/bidirectional, O(n³) worst case for the
// Jaccard scan, O(n³) for combined.
func Calculate(adj *core.Matrix, method Method) (*core.Matrix, error) {
	switch method {
	case Direct:
		return direct(adj)
	case Bidirectional:
		return bidirectional(adj)
	case CommonLinks:
		return commonLinks(adj)
	case Combined:
		return combined(adj)
	default:
		return nil, ErrUnknownMethod
	}
}

// direct copies adjacency and forces the diagonal to 1.
func direct(adj *core.Matrix) (*core.Matrix, error) {
	out := adj.Clone()
	n := out.Len()
	for i := 0; i < n; i++ {
		if err := out.Set(i, i, 1); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// bidirectional scores 1.0 for mutual links, 0.5 for exactly one
// direction, 0 otherwise; diagonal 1.
func bidirectional(adj *core.Matrix) (*core.Matrix, error) {
	out, err := core.NewMatrix(adj.IDs())
	if err != nil {
		return nil, err
	}
	n := adj.Len()
	for i := 0; i < n; i++ {
		if err = out.Set(i, i, 1); err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			ab, _ := adj.At(i, j)
			ba, _ := adj.At(j, i)
			var score float64
			switch {
			case ab > 0 && ba > 0:
				score = 1.0
			case ab > 0 || ba > 0:
				score = 0.5
			}
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

// commonLinks computes the Jaccard similarity of outgoing link sets:
// R[i][j] = |S_i ∩ S_j| / |S_i ∪ S_j| with S_i = {k : A[i][k] > 0},
// 0 when the union is empty; diagonal 1.
func commonLinks(adj *core.Matrix) (*core.Matrix, error) {
	out, err := core.NewMatrix(adj.IDs())
	if err != nil {
		return nil, err
	}
	n := adj.Len()

	// Materialize outgoing sets once: rows[i][k] = A[i][k] > 0.
	rows := make([][]bool, n)
	sizes := make([]int, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]bool, n)
		for k := 0; k < n; k++ {
			v, _ := adj.At(i, k)
			if v > 0 {
				rows[i][k] = true
				sizes[i]++
			}
		}
	}

	for i := 0; i < n; i++ {
		if err = out.Set(i, i, 1); err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			inter := 0
			for k := 0; k < n; k++ {
				if rows[i][k] && rows[j][k] {
					inter++
				}
			}
			union := sizes[i] + sizes[j] - inter
			var score float64
			if union > 0 {
				score = float64(inter) / float64(union)
			}
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

// combined blends the three matrices with the fixed weights, clamps to
// [0,1], and forces the diagonal to 1 after blending.
func combined(adj *core.Matrix) (*core.Matrix, error) {
	d, err := direct(adj)
	if err != nil {
		return nil, err
	}
	b, err := bidirectional(adj)
	if err != nil {
		return nil, err
	}
	c, err := commonLinks(adj)
	if err != nil {
		return nil, err
	}

	out, err := core.NewMatrix(adj.IDs())
	if err != nil {
		return nil, err
	}
	n := adj.Len()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dv, _ := d.At(i, j)
			bv, _ := b.At(i, j)
			cv, _ := c.At(i, j)
			v := WeightDirect*clamp01(dv) + WeightBidirectional*clamp01(bv) + WeightCommonLinks*clamp01(cv)
			if err = out.Set(i, j, clamp01(v)); err != nil {
				return nil, err
			}
		}
		if err = out.Set(i, i, 1); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// clamp01 clips v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
