package reorder

import "math"

// optimalLeafOrder reorders the dendrogram leaves to minimize the sum of
// distances between adjacent leaves, without changing the tree structure
// (each internal node may only flip or re-anchor its two subtrees). This
// is the Bar-Joseph dynamic program:
//
//	M(v, u, w) — minimal adjacent-pair cost of an ordering of v's leaves
//	that starts at leaf u and ends at leaf w, with u and w taken from
//	opposite subtrees of v. For a leaf, M(v, v, v) = 0. For an internal
//	node with children L and R:
//
//	  M(v, u, w) = min over m∈L, k∈R of  M(L, u, m) + d[m][k] + M(R, k, w)
//
// computed in two passes (first minimizing over m per (u, k), then over k
// per (u, w)) to keep the whole program at O(n³) time.
//
// Reversing a subtree ordering costs nothing, so M is symmetric in its
// endpoints and only canonical (u∈L, w∈R) pairs are stored.
// Complexity: O(n³) time, O(n²) memory.
func optimalLeafOrder(d [][]float64, merges []merge, n int) []int {
	if n == 1 {
		return []int{0}
	}

	leaves := leavesOf(merges, n)
	total := n + len(merges)

	// cost[v] and pick[v] are keyed by canonical endpoint pairs (u, w)
	// with u under child a and w under child b; pick holds the chosen
	// inner boundary (m, k).
	cost := make([]map[[2]int]float64, total)
	pick := make([]map[[2]int][2]int, total)

	// endpointCost resolves M(node, u, w) in either endpoint orientation.
	endpointCost := func(node, u, w int) float64 {
		if node < n {
			if u == node && w == node {
				return 0
			}
			return math.Inf(1)
		}
		if c, ok := cost[node][[2]int{u, w}]; ok {
			return c
		}
		if c, ok := cost[node][[2]int{w, u}]; ok {
			return c
		}
		return math.Inf(1)
	}

	for s, m := range merges {
		node := n + s
		left, right := m.a, m.b
		cost[node] = make(map[[2]int]float64, len(leaves[left])*len(leaves[right]))
		pick[node] = make(map[[2]int][2]int, len(leaves[left])*len(leaves[right]))

		// Pass 1: inner[u][k] = min over m∈left of M(left,u,m) + d[m][k].
		inner := make(map[[2]int]float64, len(leaves[left])*len(leaves[right]))
		innerPick := make(map[[2]int]int, len(leaves[left])*len(leaves[right]))
		for _, u := range leaves[left] {
			for _, k := range leaves[right] {
				best, bestM := math.Inf(1), -1
				for _, mm := range leaves[left] {
					c := endpointCost(left, u, mm)
					if math.IsInf(c, 1) {
						continue
					}
					if v := c + d[mm][k]; v < best {
						best, bestM = v, mm
					}
				}
				inner[[2]int{u, k}] = best
				innerPick[[2]int{u, k}] = bestM
			}
		}

		// Pass 2: M(v,u,w) = min over k∈right of inner[u][k] + M(right,k,w).
		for _, u := range leaves[left] {
			for _, w := range leaves[right] {
				best, bestK := math.Inf(1), -1
				for _, k := range leaves[right] {
					c := endpointCost(right, k, w)
					if math.IsInf(c, 1) {
						continue
					}
					if v := inner[[2]int{u, k}] + c; v < best {
						best, bestK = v, k
					}
				}
				cost[node][[2]int{u, w}] = best
				pick[node][[2]int{u, w}] = [2]int{innerPick[[2]int{u, bestK}], bestK}
			}
		}
	}

	// Pick the cheapest root endpoints; smallest pair wins ties.
	root := total - 1
	bestU, bestW, bestC := -1, -1, math.Inf(1)
	for _, u := range leaves[merges[len(merges)-1].a] {
		for _, w := range leaves[merges[len(merges)-1].b] {
			c := cost[root][[2]int{u, w}]
			if c < bestC || (c == bestC && (u < bestU || (u == bestU && w < bestW))) {
				bestU, bestW, bestC = u, w, c
			}
		}
	}

	// onLeft[v] marks leaves under child a, for orientation checks during
	// reconstruction.
	onLeft := make([]map[int]bool, total)
	for s, m := range merges {
		set := make(map[int]bool, len(leaves[m.a]))
		for _, l := range leaves[m.a] {
			set[l] = true
		}
		onLeft[n+s] = set
	}

	var build func(node, u, w int) []int
	build = func(node, u, w int) []int {
		if node < n {
			return []int{node}
		}
		if !onLeft[node][u] {
			// Mirrored orientation: build canonically and reverse.
			seq := build(node, w, u)
			for l, r := 0, len(seq)-1; l < r; l, r = l+1, r-1 {
				seq[l], seq[r] = seq[r], seq[l]
			}
			return seq
		}
		m := merges[node-n]
		boundary := pick[node][[2]int{u, w}]
		return append(build(m.a, u, boundary[0]), build(m.b, boundary[1], w)...)
	}

	return build(root, bestU, bestW)
}
