package extract

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates a workbook without any worksheet.
var ErrNoSheets = errors.New("extract: workbook has no sheets")

// ReadGrid loads the first worksheet of an .xlsx/.xlsm workbook as an
// untyped Grid. Cell values are the formatted texts excelize reports;
// trailing empty cells may be absent (Grid tolerates ragged rows).
func ReadGrid(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("extract: read %s: %w", path, err)
	}

	return Grid(rows), nil
}
