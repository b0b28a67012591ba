package reorder_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/reorder"
)

// matrix builds a labeled matrix from a dense row-major literal.
func matrix(t *testing.T, ids []string, rows [][]float64) *core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(ids)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

// requireBijection asserts order is a permutation of 0..n-1.
func requireBijection(t *testing.T, order []int, n int) {
	t.Helper()
	require.Len(t, order, n)
	sorted := append([]int{}, order...)
	sort.Ints(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v, "order must be a bijection over 0..n-1")
	}
}

// position returns the index of id in the reordered label list.
func position(t *testing.T, m *core.Matrix, id string) int {
	t.Helper()
	i, err := m.Index(id)
	require.NoError(t, err)

	return i
}

// adjacent reports whether two labels ended up next to each other.
func adjacent(t *testing.T, m *core.Matrix, a, b string) bool {
	t.Helper()
	diff := position(t, m, a) - position(t, m, b)

	return diff == 1 || diff == -1
}

func TestReorder_Validation(t *testing.T) {
	_, _, err := reorder.Reorder(nil, reorder.Ward)
	assert.ErrorIs(t, err, core.ErrEmptyMatrix)

	m := matrix(t, []string{"A"}, [][]float64{{1}})
	_, _, err = reorder.Reorder(m, reorder.Strategy("centroid"))
	assert.ErrorIs(t, err, reorder.ErrUnknownStrategy)
}

// TestReorder_SingleDocument: a 1×1 matrix is its own reordering.
func TestReorder_SingleDocument(t *testing.T) {
	m := matrix(t, []string{"only"}, [][]float64{{1}})

	out, order, err := reorder.Reorder(m, reorder.WardOptimal)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, order)
	assert.Equal(t, []string{"only"}, out.IDs())
}

// TestReorder_DegenerateDistances: a similarity matrix of all ones derives
// an all-zero distance matrix, which must short-circuit to the identity.
func TestReorder_DegenerateDistances(t *testing.T) {
	m := matrix(t,
		[]string{"A", "B", "C"},
		[][]float64{
			{1, 1, 1},
			{1, 1, 1},
			{1, 1, 1},
		})

	for _, s := range []reorder.Strategy{reorder.Average, reorder.Ward, reorder.WardOptimal} {
		out, order, err := reorder.Reorder(m, s)
		require.NoError(t, err, "strategy %s", s)
		assert.Equal(t, []int{0, 1, 2}, order, "strategy %s", s)
		assert.Equal(t, []string{"A", "B", "C"}, out.IDs(), "strategy %s", s)
	}
}

// TestReorder_BlockStructure: two tight pairs interleaved in the input must
// come out adjacent, under every strategy.
func TestReorder_BlockStructure(t *testing.T) {
	// A≈B and C≈D, weak cross-pair similarity. Input order interleaves
	// the pairs so the identity permutation would not group them.
	m := matrix(t,
		[]string{"A", "C", "B", "D"},
		[][]float64{
			{1.0, 0.1, 0.9, 0.1},
			{0.1, 1.0, 0.1, 0.9},
			{0.9, 0.1, 1.0, 0.1},
			{0.1, 0.9, 0.1, 1.0},
		})

	for _, s := range []reorder.Strategy{reorder.Average, reorder.Ward, reorder.WardOptimal} {
		out, order, err := reorder.Reorder(m, s)
		require.NoError(t, err, "strategy %s", s)
		requireBijection(t, order, 4)
		assert.True(t, adjacent(t, out, "A", "B"), "strategy %s: A and B should be adjacent", s)
		assert.True(t, adjacent(t, out, "C", "D"), "strategy %s: C and D should be adjacent", s)
	}
}

// TestReorder_PreservesValuesAndSymmetry: the output is the input under a
// relabeling, nothing more.
func TestReorder_PreservesValuesAndSymmetry(t *testing.T) {
	m := matrix(t,
		[]string{"A", "B", "C", "D"},
		[][]float64{
			{1.0, 0.2, 0.7, 0.4},
			{0.2, 1.0, 0.3, 0.8},
			{0.7, 0.3, 1.0, 0.1},
			{0.4, 0.8, 0.1, 1.0},
		})

	out, order, err := reorder.Reorder(m, reorder.Ward)
	require.NoError(t, err)
	requireBijection(t, order, 4)
	assert.True(t, out.IsSymmetric(1e-12))

	// Every labeled cell keeps its value.
	for _, a := range m.IDs() {
		for _, b := range m.IDs() {
			want, err := m.AtID(a, b)
			require.NoError(t, err)
			got, err := out.AtID(a, b)
			require.NoError(t, err)
			assert.Equal(t, want, got, "cell (%s,%s)", a, b)
		}
	}
}

// TestReorder_Cooccurrence: integral zero-diagonal matrices route through
// the max−v distance conversion and still cluster the strong pair.
func TestReorder_Cooccurrence(t *testing.T) {
	m := matrix(t,
		[]string{"A", "B", "C"},
		[][]float64{
			{0, 1, 5},
			{1, 0, 1},
			{5, 1, 0},
		})
	require.Equal(t, core.KindCooccurrence, m.DetectKind())

	out, order, err := reorder.Reorder(m, reorder.Average)
	require.NoError(t, err)
	requireBijection(t, order, 3)
	assert.True(t, adjacent(t, out, "A", "C"), "strongest co-occurring pair should sit together")
}

// TestReorder_OptimalImprovesAdjacency: on a chain-structured similarity,
// optimal leaf ordering never produces a worse adjacent-pair cost than the
// plain dendrogram order.
func TestReorder_OptimalImprovesAdjacency(t *testing.T) {
	// Chain A—B—C—D—E: each document resembles only its neighbors.
	ids := []string{"C", "A", "E", "B", "D"}
	sim := map[[2]string]float64{
		{"A", "B"}: 0.9, {"B", "C"}: 0.8, {"C", "D"}: 0.7, {"D", "E"}: 0.6,
		{"A", "C"}: 0.3, {"B", "D"}: 0.3, {"C", "E"}: 0.3,
		{"A", "D"}: 0.1, {"B", "E"}: 0.1, {"A", "E"}: 0.05,
	}
	lookup := func(a, b string) float64 {
		if a == b {
			return 1
		}
		if v, ok := sim[[2]string{a, b}]; ok {
			return v
		}

		return sim[[2]string{b, a}]
	}
	rows := make([][]float64, len(ids))
	for i, a := range ids {
		rows[i] = make([]float64, len(ids))
		for j, b := range ids {
			rows[i][j] = lookup(a, b)
		}
	}
	m := matrix(t, ids, rows)

	// Sum of (1 − similarity) over adjacent output labels.
	cost := func(out *core.Matrix) float64 {
		labels := out.IDs()
		total := 0.0
		for i := 0; i+1 < len(labels); i++ {
			total += 1 - lookup(labels[i], labels[i+1])
		}

		return total
	}

	plain, _, err := reorder.Reorder(m, reorder.Ward)
	require.NoError(t, err)
	optimal, order, err := reorder.Reorder(m, reorder.WardOptimal)
	require.NoError(t, err)
	requireBijection(t, order, 5)

	assert.LessOrEqual(t, cost(optimal), cost(plain))
}

// TestReorder_Deterministic: repeated runs agree exactly.
func TestReorder_Deterministic(t *testing.T) {
	m := matrix(t,
		[]string{"A", "B", "C", "D"},
		[][]float64{
			{1.0, 0.5, 0.5, 0.2},
			{0.5, 1.0, 0.5, 0.2},
			{0.5, 0.5, 1.0, 0.2},
			{0.2, 0.2, 0.2, 1.0},
		})

	for _, s := range []reorder.Strategy{reorder.Average, reorder.Ward, reorder.WardOptimal} {
		first, firstOrder, err := reorder.Reorder(m, s)
		require.NoError(t, err)
		second, secondOrder, err := reorder.Reorder(m, s)
		require.NoError(t, err)
		assert.Equal(t, firstOrder, secondOrder, "strategy %s", s)
		assert.Equal(t, first.IDs(), second.IDs(), "strategy %s", s)
	}
}
