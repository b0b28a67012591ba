// Package refmatrix builds a cross-reference graph between structured
// specification documents and derives pairwise relevance scores usable as
// ground truth for evaluating a document-retrieval system.
//
// 🚀 What is refmatrix?
//
//	A pipeline of small, independent packages that turn a directory of
//	tabular specification files into:
//	  • a directed reference graph (real + virtual nodes)
//	  • relevance matrices (Jaccard, bidirectional, direct, blended)
//	  • per-document ranked ground-truth lists for retrieval evaluation
//	  • cluster-reordered matrices for visual inspection
//
// Under the hood, everything is organized into per-concern packages:
//
//	core/        — shared domain types: documents, edges, labeled matrices
//	normalize/   — canonical document-name normalization
//	extract/     — reference extraction from untyped spreadsheet grids
//	refgraph/    — reference resolution and graph construction
//	relevance/   — relevance matrix calculators (four methods + variants)
//	groundtruth/ — ranked relevant-peer lists above a threshold
//	reorder/     — hierarchical-clustering matrix reordering (incl. OLO)
//	runio/       — run context and on-disk artifacts (JSON/CSV)
//
// Data flow:
//
//	extract (per file) → refgraph (all files) → relevance → groundtruth
//	any saved matrix → reorder
//
// All computations are deterministic: document sets are sorted by id before
// processing, ties are broken stably, and no component reads ambient global
// state. See cmd/refmatrix for the end-to-end CLI.
package refmatrix
