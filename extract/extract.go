package extract

import "strings"

// Grid is an untyped, header-less view of a spreadsheet: rows of cell
// texts. Rows may have ragged lengths; missing cells read as empty.
type Grid [][]string

// cell returns the text at (row, col), or "" when the row is short.
func (g Grid) cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}

	return r[col]
}

// Extract scans the grid for reference strings per the configured markers
// and returns them in row order, duplicates removed with first-seen order
// preserved.
//
// Algorithm, per scanned column:
//  1. walk rows top-down; the first cell containing the start marker opens
//     the candidate range at the next row;
//  2. the range closes at the first later cell containing the end marker,
//     or at the bottom of the grid;
//  3. every cell in the range passes the acceptance filter
//     (see acceptCell) or is skipped.
//
// Complexity: O(rows × columns scanned).
func Extract(grid Grid, opts ...Option) []string {
	o := gatherOptions(opts...)

	var refs []string
	seen := make(map[string]struct{})
	for _, col := range o.columns {
		start, end := -1, -1
		for row := 0; row < len(grid); row++ {
			text := strings.TrimSpace(grid.cell(row, col))
			if text == "" {
				continue
			}
			if start < 0 {
				if strings.Contains(text, o.startMarker) {
					start = row + 1
				}
				continue
			}
			if strings.Contains(text, o.endMarker) {
				end = row
				break
			}
		}
		if start < 0 {
			continue
		}
		if end < 0 {
			end = len(grid)
		}
		for row := start; row < end; row++ {
			text := strings.TrimSpace(grid.cell(row, col))
			if !acceptCell(text) {
				continue
			}
			if _, dup := seen[text]; dup {
				continue
			}
			seen[text] = struct{}{}
			refs = append(refs, text)
		}
	}

	return refs
}

// acceptCell reports whether a trimmed cell text is a plausible reference:
// non-empty, not a NaN sentinel, and not composed purely of digits, dots,
// and dashes (row numbers, separators).
func acceptCell(text string) bool {
	if text == "" || text == "NaN" || text == "nan" {
		return false
	}
	numericOnly := true
	for _, r := range text {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			numericOnly = false
			break
		}
	}

	return !numericOnly
}
