package runio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/katalvlaran/refmatrix/core"
)

// utf8BOM is prepended to CSVs so spreadsheet tools decode the labels as
// UTF-8 rather than the platform legacy encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMalformedCSV indicates a matrix CSV that is not a labeled square
// table.
var ErrMalformedCSV = errors.New("runio: malformed matrix csv")

// SaveMatrixCSV writes m as a labeled square table: an empty corner cell,
// column labels across the header, each row prefixed with its label.
// Values are written with full float precision so the file round-trips
// through LoadMatrixCSV exactly.
func SaveMatrixCSV(path string, m *core.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	ids := m.IDs()
	if err := w.Write(append([]string{""}, ids...)); err != nil {
		return err
	}
	for i := range ids {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		record := make([]string, 0, len(ids)+1)
		record = append(record, ids[i])
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

// LoadMatrixCSV reads a labeled square table written by SaveMatrixCSV
// (or re-saved by a spreadsheet tool). Row labels must repeat the header
// labels in the same order.
func LoadMatrixCSV(path string) (*core.Matrix, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrMalformedCSV)
	}

	ids := records[0][1:]
	n := len(ids)
	if len(records)-1 != n {
		return nil, fmt.Errorf("%w: %d labels but %d data rows", ErrMalformedCSV, n, len(records)-1)
	}

	m, err := core.NewMatrix(ids)
	if err != nil {
		return nil, err
	}
	for i, record := range records[1:] {
		if len(record) != n+1 {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedCSV, i+1, len(record), n+1)
		}
		if record[0] != ids[i] {
			return nil, fmt.Errorf("%w: row label %q does not match column label %q", ErrMalformedCSV, record[0], ids[i])
		}
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", ErrMalformedCSV, i, j, err)
			}
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
