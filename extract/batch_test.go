package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/refmatrix/extract"
)

// writeWorkbook creates an .xlsx file whose column B carries a reference
// block listing refs.
func writeWorkbook(t *testing.T, path string, refs ...string) {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "specification name"))
	row := 2
	for _, r := range refs {
		cell, err := excelize.CoordinatesToCellName(2, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, r))
		row++
	}
	cell, err := excelize.CoordinatesToCellName(2, row)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", cell, "handling content"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

// TestReadGrid_RoundTrip writes a workbook and reads it back as a grid.
func TestReadGrid_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payment spec.xlsx")
	writeWorkbook(t, path, "refund spec", "ledger spec")

	grid, err := extract.ReadGrid(path)
	require.NoError(t, err)

	refs := extract.Extract(grid)
	assert.Equal(t, []string{"refund spec", "ledger spec"}, refs)
}

// TestReadGrid_CorruptFile: a non-zip payload with an .xlsx name errors
// instead of panicking.
func TestReadGrid_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := extract.ReadGrid(path)
	assert.Error(t, err)
}

// TestDiscover_SkipsTemporaryAndHiddenFiles honors the ~$ and dot-prefix
// naming conventions and sorts results.
func TestDiscover_SkipsTemporaryAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"b.xlsx", "~$b.xlsx", ".hidden.xlsx", "a.txt", filepath.Join("sub", "a.xlsx")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := extract.Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), files[0])
	assert.Equal(t, filepath.Join(dir, "sub", "a.xlsx"), files[1])
}

// TestDir_IsolatesPerFileFailures: a corrupt workbook yields a document
// with zero references while the batch continues, and documents come back
// sorted by id.
func TestDir_IsolatesPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "payment spec.xlsx"), "refund spec")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("junk"), 0o644))

	docs, err := extract.Dir(context.Background(), dir, log.Default())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "broken", docs[0].ID)
	assert.Empty(t, docs[0].ExtractedLinks)
	assert.Equal(t, 0, docs[0].ExtractedLinksCount)

	assert.Equal(t, "payment spec", docs[1].ID)
	assert.Equal(t, []string{"refund spec"}, docs[1].ExtractedLinks)
	assert.Equal(t, "payment spec", docs[1].NormalizedName)
	assert.Equal(t, "payment spec.xlsx", docs[1].Filename)
	assert.Equal(t, ".", docs[1].Directory)
}

// TestDir_NoInputFiles: an empty directory is terminal.
func TestDir_NoInputFiles(t *testing.T) {
	_, err := extract.Dir(context.Background(), t.TempDir(), log.Default())
	assert.ErrorIs(t, err, extract.ErrNoInputFiles)
}
