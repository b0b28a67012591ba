// Package refgraph resolves raw document references against the set of
// real documents and produces the directed reference graph: edges,
// unmatched references, and synthesized virtual nodes.
//
// Two resolution policies exist and must be chosen explicitly:
//
//   - Strict     — exact normalized-name match only; anything else becomes
//     an UnmatchedReference. No virtual nodes are synthesized.
//   - Permissive — exact match first, then substring fallback (the shorter
//     normalized string must be fully contained in the longer one), then a
//     VirtualDocument keyed by the normalized reference text.
//
// Resolution is a pure function of (normalized reference, sorted
// document-id list): iteration over candidate documents is always in
// sorted-id order, so the "first substring match wins" tie-break is
// deterministic and reproducible. That tie-break is pragmatic but lossy —
// a reference can plausibly match several documents — so every reference
// with more than one viable substring candidate is additionally reported
// in the Ambiguous diagnostics list rather than silently picking one.
//
// Virtual nodes are deduplicated by normalized text: the same unresolved
// reference cited from many documents maps to one shared node.
package refgraph
