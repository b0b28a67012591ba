// Package runio reads and writes the run artifacts: the hand-editable
// extraction-result JSON, labeled matrix CSVs, ground-truth JSON, reorder
// order records, and the run summary.
//
// Every artifact lands in a per-run directory derived from an explicit
// RunContext (output root + timestamp + run id) that the caller threads
// through the pipeline; nothing here reads ambient global state. The
// extraction result is the contract between extraction and relevance
// calculation: a human may edit documents[*].extracted_links in the JSON
// and rebuild the graph without re-scanning the source spreadsheets.
//
// Matrix CSVs carry a UTF-8 byte-order mark so spreadsheet tools open the
// non-ASCII document labels correctly, and round-trip through
// SaveMatrixCSV/LoadMatrixCSV without loss.
package runio
