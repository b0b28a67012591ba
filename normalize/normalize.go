// Package normalize canonicalizes document names and reference strings so
// that two spellings of the same document compare equal.
//
// Normalization is applied to both document ids and raw reference strings;
// both sides of every comparison in refgraph pass through the exact same
// logic. The transformation is intentionally narrow:
//
//  1. strip one trailing recognized document extension (case-insensitive)
//  2. strip one trailing _<digits> suffix (version marker)
//  3. replace full-width spaces and underscores with a regular space
//  4. trim surrounding whitespace
//
// No case folding and no interior-punctuation removal: ids that differ only
// in those respects are distinct documents by contract.
package normalize

import (
	"regexp"
	"strings"
)

// extensionPattern matches one trailing document extension from the fixed
// recognized set: xls, xlsx, xlsm, doc, docx, pdf (case-insensitive).
var extensionPattern = regexp.MustCompile(`(?i)\.(xlsx?m?|xls|docx?|pdf)$`)

// versionPattern matches a trailing _<digits> suffix treated as a version
// marker, e.g. "payment spec_03".
var versionPattern = regexp.MustCompile(`_\d+$`)

// fullWidthSpace is the ideographic space (U+3000) commonly pasted into
// spreadsheet cells alongside ASCII spaces.
const fullWidthSpace = "　"

// Normalize returns the canonical form of a document name or reference
// string. Pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
// Complexity: O(len(text)).
func Normalize(text string) string {
	out := extensionPattern.ReplaceAllString(text, "")
	out = versionPattern.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, fullWidthSpace, " ")
	out = strings.ReplaceAll(out, "_", " ")

	return strings.TrimSpace(out)
}

// VirtualID derives the synthetic node id for an unresolved reference:
// the normalized text with spaces converted to the "_" join character.
// Two differently-spelled references that normalize identically therefore
// map to the same virtual id — intended deduplication.
func VirtualID(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "_")
}
