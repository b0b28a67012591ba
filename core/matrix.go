package core

import "math"

// MatrixKind classifies a labeled matrix by its data, not by declaration.
// Downstream consumers (reordering, ground truth) must detect the kind from
// the diagonal and value range rather than assume it.
type MatrixKind int

const (
	// KindSimilarity — diagonal ≈ 1, all values in [0,1].
	KindSimilarity MatrixKind = iota

	// KindCooccurrence — diagonal ≈ 0, all values integral and ≥ 0.
	KindCooccurrence
)

// kindEpsilon is the tolerance used by DetectKind for diagonal and
// integrality checks.
const kindEpsilon = 1e-9

// Matrix is a square matrix of float64 values labeled by document ids.
// Both axes share the same label set in the same order. Storage is a flat
// row-major slice for cache friendliness.
type Matrix struct {
	ids   []string       // axis labels, fixed order
	index map[string]int // label → axis position
	data  []float64      // flat backing storage, length == n*n
}

// NewMatrix creates an n×n zero matrix labeled by ids.
// The label order is preserved as given; callers that need determinism
// sort ids before construction.
// Returns ErrEmptyMatrix for an empty label set, ErrDuplicateID on repeats.
// Complexity: O(n²) time and memory.
func NewMatrix(ids []string) (*Matrix, error) {
	n := len(ids)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}
	index := make(map[string]int, n)
	labels := make([]string, n)
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, ErrDuplicateID
		}
		index[id] = i
		labels[i] = id
	}

	return &Matrix{ids: labels, index: index, data: make([]float64, n*n)}, nil
}

// Len returns the number of rows (== columns).
func (m *Matrix) Len() int { return len(m.ids) }

// IDs returns the axis labels in order. The slice is a copy; mutating it
// does not affect the matrix.
func (m *Matrix) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)

	return out
}

// Index returns the axis position of id, or ErrUnknownID.
func (m *Matrix) Index(id string) (int, error) {
	i, ok := m.index[id]
	if !ok {
		return 0, ErrUnknownID
	}

	return i, nil
}

// At retrieves the element at (i, j).
// Complexity: O(1).
func (m *Matrix) At(i, j int) (float64, error) {
	n := len(m.ids)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, ErrIndexOutOfBounds
	}

	return m.data[i*n+j], nil
}

// Set assigns v at (i, j).
// Complexity: O(1).
func (m *Matrix) Set(i, j int, v float64) error {
	n := len(m.ids)
	if i < 0 || i >= n || j < 0 || j >= n {
		return ErrIndexOutOfBounds
	}
	m.data[i*n+j] = v

	return nil
}

// AtID retrieves the element addressed by row and column labels.
func (m *Matrix) AtID(row, col string) (float64, error) {
	i, err := m.Index(row)
	if err != nil {
		return 0, err
	}
	j, err := m.Index(col)
	if err != nil {
		return 0, err
	}

	return m.data[i*len(m.ids)+j], nil
}

// Clone returns a deep copy, independent of the original.
// Complexity: O(n²).
func (m *Matrix) Clone() *Matrix {
	c, _ := NewMatrix(m.ids) // labels already validated
	copy(c.data, m.data)

	return c
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	n := len(m.ids)
	if i < 0 || i >= n {
		return nil, ErrIndexOutOfBounds
	}
	out := make([]float64, n)
	copy(out, m.data[i*n:(i+1)*n])

	return out, nil
}

// IsSymmetric reports whether m equals its transpose within eps.
// Complexity: O(n²).
func (m *Matrix) IsSymmetric(eps float64) bool {
	n := len(m.ids)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > eps {
				return false
			}
		}
	}

	return true
}

// DetectKind classifies the matrix from its data:
//
//	diagonal ≈ 1 and all values in [0,1]        → KindSimilarity
//	diagonal ≈ 0 and all values integral, ≥ 0   → KindCooccurrence
//	anything else                               → KindSimilarity (default)
//
// The default branch is deliberate: ambiguous matrices are treated as
// similarity-typed so the 1−v distance conversion applies.
// Complexity: O(n²).
func (m *Matrix) DetectKind() MatrixKind {
	n := len(m.ids)

	diagOne, diagZero := true, true
	for i := 0; i < n; i++ {
		d := m.data[i*n+i]
		if math.Abs(d-1) > kindEpsilon {
			diagOne = false
		}
		if math.Abs(d) > kindEpsilon {
			diagZero = false
		}
	}

	inUnit, integral := true, true
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := m.data[i*n+j]
			if v < 0 || v > 1 {
				inUnit = false
			}
			if v < 0 || math.Abs(v-math.Round(v)) > kindEpsilon {
				integral = false
			}
		}
	}

	if diagOne && inUnit {
		return KindSimilarity
	}
	if diagZero && integral {
		return KindCooccurrence
	}

	return KindSimilarity
}

// Submatrix extracts the square submatrix restricted to keep, preserving
// the order of keep. Every label must exist in m.
// Used to restrict a full-node-set relevance matrix to real documents
// before ground-truth generation and reporting.
// Complexity: O(k²) plus label lookups.
func (m *Matrix) Submatrix(keep []string) (*Matrix, error) {
	sub, err := NewMatrix(keep)
	if err != nil {
		return nil, err
	}
	n := len(m.ids)
	rows := make([]int, len(keep))
	for i, id := range keep {
		pos, ok := m.index[id]
		if !ok {
			return nil, ErrUnknownID
		}
		rows[i] = pos
	}
	for i, ri := range rows {
		for j, rj := range rows {
			sub.data[i*len(keep)+j] = m.data[ri*n+rj]
		}
	}

	return sub, nil
}

// Permute applies order to both rows and columns and returns the reordered
// matrix: out[i][j] = m[order[i]][order[j]], with labels permuted the same
// way. order must be a bijection over 0..n-1 (ErrBadPermutation otherwise).
// Applying the same permutation to both axes preserves symmetry.
// Complexity: O(n²).
func (m *Matrix) Permute(order []int) (*Matrix, error) {
	n := len(m.ids)
	if len(order) != n {
		return nil, ErrBadPermutation
	}
	seen := make([]bool, n)
	labels := make([]string, n)
	for i, o := range order {
		if o < 0 || o >= n || seen[o] {
			return nil, ErrBadPermutation
		}
		seen[o] = true
		labels[i] = m.ids[o]
	}
	out, err := NewMatrix(labels)
	if err != nil {
		return nil, err
	}
	for i, oi := range order {
		for j, oj := range order {
			out.data[i*n+j] = m.data[oi*n+oj]
		}
	}

	return out, nil
}
