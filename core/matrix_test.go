package core_test

import (
	"testing"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMatrix_Validation verifies constructor sentinels for empty and
// duplicated label sets.
func TestNewMatrix_Validation(t *testing.T) {
	_, err := core.NewMatrix(nil)
	assert.ErrorIs(t, err, core.ErrEmptyMatrix, "empty label set must error")

	_, err = core.NewMatrix([]string{"A", "B", "A"})
	assert.ErrorIs(t, err, core.ErrDuplicateID, "repeated label must error")
}

// TestMatrix_AtSet verifies bounds checking and element round-trips.
func TestMatrix_AtSet(t *testing.T) {
	m, err := core.NewMatrix([]string{"A", "B"})
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 1, 0.5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, core.ErrIndexOutOfBounds)
	assert.ErrorIs(t, m.Set(0, -1, 1), core.ErrIndexOutOfBounds)

	v, err = m.AtID("A", "B")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
	_, err = m.AtID("A", "Z")
	assert.ErrorIs(t, err, core.ErrUnknownID)
}

// TestMatrix_DetectKind_Similarity: diagonal all 1, values in [0,1].
func TestMatrix_DetectKind_Similarity(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B"})
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(1, 1, 1))
	require.NoError(t, m.Set(0, 1, 0.3))
	require.NoError(t, m.Set(1, 0, 0.3))

	assert.Equal(t, core.KindSimilarity, m.DetectKind())
}

// TestMatrix_DetectKind_Cooccurrence: diagonal all 0, integer values.
func TestMatrix_DetectKind_Cooccurrence(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B"})
	require.NoError(t, m.Set(0, 1, 4))
	require.NoError(t, m.Set(1, 0, 4))

	assert.Equal(t, core.KindCooccurrence, m.DetectKind())
}

// TestMatrix_DetectKind_AmbiguousDefaultsToSimilarity: a matrix that fits
// neither pattern must fall back to similarity handling.
func TestMatrix_DetectKind_AmbiguousDefaultsToSimilarity(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B"})
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(1, 1, 1))
	require.NoError(t, m.Set(0, 1, 2.5)) // out of [0,1] and non-integral diag pattern

	assert.Equal(t, core.KindSimilarity, m.DetectKind())
}

// TestMatrix_Submatrix restricts a 3×3 matrix to two labels and preserves
// the requested order.
func TestMatrix_Submatrix(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B", "C"})
	require.NoError(t, m.Set(0, 2, 0.7))
	require.NoError(t, m.Set(2, 0, 0.7))

	sub, err := m.Submatrix([]string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, sub.IDs())

	v, err := sub.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.7, v, "C-A cell must carry over")

	_, err = m.Submatrix([]string{"A", "Z"})
	assert.ErrorIs(t, err, core.ErrUnknownID)
}

// TestMatrix_Permute verifies label/value co-permutation, symmetry
// preservation, and bijection validation.
func TestMatrix_Permute(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B", "C"})
	require.NoError(t, m.Set(0, 1, 0.2))
	require.NoError(t, m.Set(1, 0, 0.2))
	require.NoError(t, m.Set(1, 2, 0.9))
	require.NoError(t, m.Set(2, 1, 0.9))

	p, err := m.Permute([]int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, p.IDs())
	assert.True(t, p.IsSymmetric(0), "permuting both axes must preserve symmetry")

	v, err := p.AtID("B", "C")
	require.NoError(t, err)
	assert.Equal(t, 0.9, v)

	_, err = m.Permute([]int{0, 0, 1})
	assert.ErrorIs(t, err, core.ErrBadPermutation)
	_, err = m.Permute([]int{0, 1})
	assert.ErrorIs(t, err, core.ErrBadPermutation)
}

// TestMatrix_CloneIndependence ensures Clone yields detached storage.
func TestMatrix_CloneIndependence(t *testing.T) {
	m, _ := core.NewMatrix([]string{"A", "B"})
	require.NoError(t, m.Set(0, 1, 0.4))

	c := m.Clone()
	require.NoError(t, c.Set(0, 1, 0.8))

	v, _ := m.At(0, 1)
	assert.Equal(t, 0.4, v, "mutating the clone must not touch the original")
}
