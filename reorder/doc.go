// Package reorder permutes a symmetric relevance or co-occurrence matrix
// so that related documents sit adjacently, for visual inspection of the
// score structure.
//
// Pipeline:
//
//  1. Detect the matrix kind from the data (core.Matrix.DetectKind):
//     similarity (diagonal 1, values in [0,1]) or co-occurrence
//     (diagonal 0, integral); ambiguous matrices default to similarity.
//  2. Convert to a distance matrix: similarity ⇒ 1−v; co-occurrence ⇒
//     max(v)−v (uniform 1 off-diagonal when max is 0). The diagonal is
//     forced to 0, negative noise is clamped, and the matrix is
//     symmetrized by averaging with its transpose.
//  3. Degenerate guard: when every off-diagonal distance is 0 the
//     clustering problem is undefined, so the identity permutation is
//     returned without invoking the algorithm.
//  4. Run agglomerative hierarchical clustering (average or Ward linkage,
//     Lance–Williams updates) and read the dendrogram leaf order as the
//     permutation. The WardOptimal strategy additionally reorders the
//     dendrogram leaves to minimize the sum of adjacent-leaf distances
//     (optimal leaf ordering, Bar-Joseph dynamic program) before reading
//     them off.
//
// The permutation is a bijection over the original index set; applying it
// to both rows and columns preserves symmetry. All tie-breaks (minimum
// merge pair, equal-cost orderings) resolve to the smallest indices, so
// the output is deterministic.
package reorder
