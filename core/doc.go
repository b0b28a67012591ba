// Package core defines the central domain types shared by every stage of
// the refmatrix pipeline: Document, VirtualDocument, Edge, and the labeled
// square Matrix used for relevance and co-occurrence scores.
//
// Conventions enforced here and relied upon by all downstream packages:
//
//   - Document IDs are filename stems and are always processed in sorted
//     order; no package may depend on filesystem discovery order.
//   - An Edge's Source is always a real Document id; Target may name a
//     VirtualDocument synthesized for a referenced-but-absent file.
//   - A Matrix carries one label set for both axes, in one fixed order.
//   - Matrix "kind" (similarity vs co-occurrence) is detected from the
//     data — diagonal value and value range — never assumed by callers.
//
// Errors:
//
//	ErrIndexOutOfBounds — row/column index outside the matrix.
//	ErrUnknownID        — label not present in the matrix index.
//	ErrDuplicateID      — constructor received a repeated label.
//	ErrEmptyMatrix      — constructor received no labels.
//	ErrBadPermutation   — permutation is not a bijection over the index set.
package core
