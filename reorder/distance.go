package reorder

import "github.com/katalvlaran/refmatrix/core"

// toDistance converts a labeled score matrix into a plain symmetric
// distance matrix per the detected kind. Diagonal forced to 0, negative
// numerical noise clamped, symmetrized by transpose averaging.
// Complexity: O(n²).
func toDistance(m *core.Matrix) [][]float64 {
	n := m.Len()
	kind := m.DetectKind()

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}

	switch kind {
	case core.KindCooccurrence:
		maxV := 0.0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, _ := m.At(i, j)
				if v > maxV {
					maxV = v
				}
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if maxV == 0 {
					// No signal at all: uniform off-diagonal distance.
					d[i][j] = 1
				} else {
					v, _ := m.At(i, j)
					d[i][j] = maxV - v
				}
			}
		}
	default: // KindSimilarity, including the ambiguous fallback
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, _ := m.At(i, j)
				d[i][j] = 1 - v
			}
		}
	}

	// Symmetrize, clamp noise, zero the diagonal.
	for i := 0; i < n; i++ {
		d[i][i] = 0
		for j := i + 1; j < n; j++ {
			avg := (d[i][j] + d[j][i]) / 2
			if avg < 0 {
				avg = 0
			}
			d[i][j] = avg
			d[j][i] = avg
		}
	}

	return d
}

// allZero reports whether every off-diagonal distance is zero — the
// degenerate case clustering must not be attempted on.
func allZero(d [][]float64) bool {
	for i := range d {
		for j := range d[i] {
			if i != j && d[i][j] != 0 {
				return false
			}
		}
	}

	return true
}
