package extract_test

import (
	"testing"

	"github.com/katalvlaran/refmatrix/extract"
	"github.com/stretchr/testify/assert"
)

// refGrid builds a grid with the reference block in column 1:
// a heading row, the given names, then an end-marker row.
func refGrid(names ...string) extract.Grid {
	g := extract.Grid{{"", "functional specification name list"}}
	for _, n := range names {
		g = append(g, []string{"", n})
	}
	g = append(g, []string{"", "handling content follows"})

	return g
}

// TestExtract_BasicBlock returns the cells between the start and end
// markers, in row order.
func TestExtract_BasicBlock(t *testing.T) {
	g := refGrid("payment spec", "refund spec", "ledger spec")

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec", "refund spec", "ledger spec"}, refs)
}

// TestExtract_NoEndMarkerRunsToBottom: a missing end marker extends the
// block to the end of the column.
func TestExtract_NoEndMarkerRunsToBottom(t *testing.T) {
	g := extract.Grid{
		{"", "specification name"},
		{"", "payment spec"},
		{"", "refund spec"},
	}

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec", "refund spec"}, refs)
}

// TestExtract_NoStartMarkerYieldsNothing: without the heading fragment the
// column contributes no references.
func TestExtract_NoStartMarkerYieldsNothing(t *testing.T) {
	g := extract.Grid{
		{"", "overview"},
		{"", "payment spec"},
	}

	assert.Empty(t, extract.Extract(g))
}

// TestExtract_FiltersSentinelsAndNumerics drops empty, NaN, and purely
// numeric/dash cells inside the block.
func TestExtract_FiltersSentinelsAndNumerics(t *testing.T) {
	g := refGrid("payment spec", "", "NaN", "nan", "42", "3.14", "-", "1-2", "refund spec")

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec", "refund spec"}, refs)
}

// TestExtract_DeduplicatesPreservingOrder: repeats collapse to the first
// occurrence, across both scanned columns.
func TestExtract_DeduplicatesPreservingOrder(t *testing.T) {
	g := extract.Grid{
		{"", "specification name", "specification name"},
		{"", "payment spec", "refund spec"},
		{"", "refund spec", "payment spec"},
		{"", "payment spec", "ledger spec"},
	}

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec", "refund spec", "ledger spec"}, refs)
}

// TestExtract_SecondColumnOnly: the block may live in either scanned
// column; column 2 alone must still be found.
func TestExtract_SecondColumnOnly(t *testing.T) {
	g := extract.Grid{
		{"", "", "specification name"},
		{"", "", "payment spec"},
		{"", "", "handling content"},
	}

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec"}, refs)
}

// TestExtract_CustomOptions: markers and scan columns are configurable.
func TestExtract_CustomOptions(t *testing.T) {
	g := extract.Grid{
		{"related docs"},
		{"payment spec"},
		{"end of list"},
	}

	refs := extract.Extract(g,
		extract.WithColumns(0),
		extract.WithStartMarker("related docs"),
		extract.WithEndMarker("end of list"),
	)
	assert.Equal(t, []string{"payment spec"}, refs)
}

// TestExtract_RaggedRows: short rows read as empty cells, not panics.
func TestExtract_RaggedRows(t *testing.T) {
	g := extract.Grid{
		{"", "specification name"},
		{"only one cell"},
		{"", "payment spec"},
	}

	refs := extract.Extract(g)
	assert.Equal(t, []string{"payment spec"}, refs)
}
