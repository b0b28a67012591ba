package core

import "errors"

// Sentinel errors for core domain operations.
var (
	// ErrIndexOutOfBounds indicates a row or column index outside the matrix.
	ErrIndexOutOfBounds = errors.New("core: index out of bounds")

	// ErrUnknownID indicates a label that is not part of the matrix index.
	ErrUnknownID = errors.New("core: unknown id")

	// ErrDuplicateID indicates a repeated label passed to a constructor.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrEmptyMatrix indicates a constructor received an empty label set.
	ErrEmptyMatrix = errors.New("core: empty label set")

	// ErrBadPermutation indicates a permutation that is not a bijection
	// over the matrix index set.
	ErrBadPermutation = errors.New("core: permutation is not a bijection")
)

// MatchType classifies how a reference was resolved to its target.
type MatchType string

const (
	// MatchExact — the normalized reference equals a real document's
	// normalized name.
	MatchExact MatchType = "exact"

	// MatchPartial — one normalized name is a substring of the other
	// (the longer string is the matching basis).
	MatchPartial MatchType = "partial"

	// MatchVirtual — no real document matched; the target is a
	// synthesized VirtualDocument.
	MatchVirtual MatchType = "virtual"
)

// Document describes one real source file discovered on disk.
// Instances are created once per file and treated as immutable afterward.
//
// ExtractedLinks holds the raw reference strings exactly as found in the
// file, duplicates removed, first-seen order preserved. The JSON shape is
// the hand-editable contract between extraction and graph rebuilding: a
// human may edit extracted_links and re-run refgraph without re-scanning
// source files.
type Document struct {
	// ID is the filename stem and the stable identifier used everywhere.
	ID string `json:"id"`

	// Filename is the base name including extension.
	Filename string `json:"filename"`

	// RelativePath is the path relative to the scanned root directory.
	RelativePath string `json:"relative_path"`

	// Directory is the containing directory relative to the scanned root,
	// "." for files at the root itself.
	Directory string `json:"directory"`

	// NormalizedName is ID passed through normalize.Normalize.
	NormalizedName string `json:"normalized_name"`

	// ExtractedLinksCount mirrors len(ExtractedLinks) in serialized form.
	ExtractedLinksCount int `json:"extracted_links_count"`

	// ExtractedLinks are raw reference strings, deduplicated in
	// first-seen order.
	ExtractedLinks []string `json:"extracted_links"`
}

// VirtualDocument is a graph node synthesized for a referenced document
// that has no corresponding real file. Virtual nodes are deduplicated by
// normalized reference text, so differently-spelled references that
// normalize identically collapse to one shared node.
type VirtualDocument struct {
	// ID is the normalized reference text with spaces joined by "_".
	ID string `json:"id"`

	// NormalizedName is the normalized reference text the node was keyed by.
	NormalizedName string `json:"normalized_name"`
}

// Edge is one resolved reference: Source cited Target.
// Source is always a real Document id; Target is a Document or
// VirtualDocument id depending on MatchType.
type Edge struct {
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	OriginalText string    `json:"original_text"`
	MatchType    MatchType `json:"match_type"`
}

// UnmatchedReference is a raw reference the strict resolution policy
// declined to resolve. It is reported, never silently dropped.
type UnmatchedReference struct {
	Source       string `json:"source"`
	OriginalText string `json:"original_text"`
	Normalized   string `json:"normalized"`
}
