// Package extract scans tabular specification files for the delimited block
// of referenced document names and returns the raw (unnormalized) reference
// strings found in each document.
//
// The source file is treated as an untyped, header-less grid of cells.
// Two fixed columns are scanned independently (the reference list is
// conventionally rendered in either of two adjacent columns). Within a
// column, a cell containing the start-marker fragment opens the candidate
// range; the range closes at a cell containing the end-marker fragment, or
// at the end of the column. Cells inside the range are accepted when they
// are non-empty, not purely numeric/dash characters, and not a NaN
// sentinel. Accepted cells are returned in row order, duplicates removed
// while preserving first-seen order.
//
// Batch extraction over a directory is an embarrassingly parallel map:
// every file is processed independently and aggregation is deterministic
// (documents sorted by id). A file that cannot be parsed yields zero
// references and a logged warning; it never aborts the batch. The only
// terminal condition is an empty input set (ErrNoInputFiles).
package extract
