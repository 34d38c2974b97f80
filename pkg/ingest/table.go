package ingest

import "strings"

// Table is a raw tabular dataset as read from a source file: named
// columns over string cells, before any schema normalization.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the row's cell under a column index, tolerating ragged
// rows (short rows read as empty cells).
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// dropIndexLike removes a leading auto-index column (spreadsheet
// exports often carry "Unnamed: 0", "field_1" or a blank header).
func dropIndexLike(t Table) Table {
	if len(t.Columns) == 0 {
		return t
	}
	first := t.Columns[0]
	if !isIndexLike(first) {
		return t
	}
	out := Table{Columns: t.Columns[1:]}
	for _, row := range t.Rows {
		if len(row) > 0 {
			row = row[1:]
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func isIndexLike(name string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "unnamed") ||
		strings.HasPrefix(trimmed, "field_")
}
