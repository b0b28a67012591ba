// Package relevance converts the directed reference graph into relevance
// matrices over document nodes.
//
// An adjacency matrix is built first: A[i][j] = 1 iff an edge i → j exists
// (directed, unweighted, no self-loops). Four matrices derive from it:
//
//	direct        — R = A with the diagonal forced to 1
//	bidirectional — 1.0 for mutual links, 0.5 for one direction, else 0
//	common_links  — Jaccard similarity of outgoing link sets (the only
//	                method inherently symmetric from directed input)
//	combined      — 0.5·direct + 0.3·bidirectional + 0.2·common_links,
//	                clamped to [0,1], diagonal forced to 1 after blending
//
// Two Jaccard variants exist on purpose and stay separately invocable:
//
//   - CommonLinks operates on the resolved adjacency matrix. Adding one new
//     document can retroactively change other documents' edges through
//     virtual-node re-resolution, so this variant is sensitive to the
//     corpus composition.
//   - ReferenceJaccard operates directly on each document's normalized raw
//     reference set, which a new document can never change.
//
// They answer different stability questions; the ground-truth generator
// takes whichever matrix the caller computed.
//
// Cooccurrence is a supplementary signal: how often two referenced targets
// are cited together inside one document. Its matrix is co-occurrence
// typed (integer counts, diagonal 0) — consumers detect that from the
// data, see core.Matrix.DetectKind.
package relevance
