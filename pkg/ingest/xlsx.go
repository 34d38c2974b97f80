package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one sheet of an Excel workbook into a raw table. An
// empty sheet name selects the workbook's first sheet. The source
// dataset ships as an XLSX export, so this path matters as much as CSV.
func ReadXLSX(path, sheet string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("sheet %q has no header row", sheet)
	}

	table := Table{Columns: rows[0], Rows: rows[1:]}
	return dropIndexLike(table), nil
}
