package reorder

import "math"

// Linkage selects the between-cluster dissimilarity criterion.
type Linkage int

const (
	// linkAverage — UPGMA: mean pairwise distance between clusters.
	linkAverage Linkage = iota

	// linkWard — Ward's minimum-variance criterion.
	linkWard
)

// merge is one agglomeration step. Child ids < n are leaves; ids ≥ n refer
// to the merge created at step id−n.
type merge struct {
	a, b int     // children, a < b
	dist float64 // linkage distance at which they merged
}

// cluster runs naive agglomerative clustering on the symmetric distance
// matrix d and returns the n−1 merges in order.
//
// At each step the active pair with minimal current distance merges;
// ties resolve to the lexicographically smallest (a, b), so the dendrogram
// is deterministic. Cluster distances update via the Lance–Williams
// formulas:
//
//	average: d(m,k) = (n_a·d(a,k) + n_b·d(b,k)) / (n_a + n_b)
//	ward:    d(m,k) = sqrt(((n_a+n_k)·d(a,k)² + (n_b+n_k)·d(b,k)²
//	                        − n_k·d(a,b)²) / (n_a + n_b + n_k))
//
// Complexity: O(n³) time, O(n²) memory — ample for document-scale inputs.
func cluster(d [][]float64, linkage Linkage) []merge {
	n := len(d)
	total := 2*n - 1

	// work[i][j] holds the current distance between active nodes i and j,
	// where nodes 0..n-1 are leaves and n..2n-2 are merges.
	work := make([][]float64, total)
	for i := range work {
		work[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		copy(work[i][:n], d[i])
	}

	size := make([]int, total)
	active := make([]bool, total)
	for i := 0; i < n; i++ {
		size[i] = 1
		active[i] = true
	}

	merges := make([]merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		// Find the closest active pair; smallest indices win ties.
		bestA, bestB, bestD := -1, -1, math.Inf(1)
		limit := n + step
		for i := 0; i < limit; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < limit; j++ {
				if !active[j] {
					continue
				}
				if work[i][j] < bestD {
					bestA, bestB, bestD = i, j, work[i][j]
				}
			}
		}

		next := n + step
		merges = append(merges, merge{a: bestA, b: bestB, dist: bestD})
		active[bestA] = false
		active[bestB] = false
		active[next] = true
		size[next] = size[bestA] + size[bestB]

		// Lance–Williams update against every remaining active node.
		na, nb := float64(size[bestA]), float64(size[bestB])
		for k := 0; k < next; k++ {
			if !active[k] {
				continue
			}
			dak, dbk := work[bestA][k], work[bestB][k]
			var dmk float64
			switch linkage {
			case linkWard:
				nk := float64(size[k])
				num := (na+nk)*dak*dak + (nb+nk)*dbk*dbk - nk*bestD*bestD
				dmk = math.Sqrt(math.Max(num/(na+nb+nk), 0))
			default:
				dmk = (na*dak + nb*dbk) / (na + nb)
			}
			work[next][k] = dmk
			work[k][next] = dmk
		}
	}

	return merges
}

// leafOrder reads the dendrogram leaves left-to-right without any
// optimization: child a before child b, recursively.
func leafOrder(merges []merge, n int) []int {
	order := make([]int, 0, n)
	var walk func(node int)
	walk = func(node int) {
		if node < n {
			order = append(order, node)
			return
		}
		m := merges[node-n]
		walk(m.a)
		walk(m.b)
	}
	walk(n + len(merges) - 1)

	return order
}

// leavesOf collects the leaf set under every node, indexed by node id.
func leavesOf(merges []merge, n int) [][]int {
	total := n + len(merges)
	leaves := make([][]int, total)
	for i := 0; i < n; i++ {
		leaves[i] = []int{i}
	}
	for s, m := range merges {
		node := n + s
		leaves[node] = append(append([]int{}, leaves[m.a]...), leaves[m.b]...)
	}

	return leaves
}
