package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV loads a CSV file into a raw table. The delimiter is sniffed
// from the header line (some exports of the source dataset were saved
// semicolon-separated), and a leading auto-index column is dropped.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) (Table, error) {
	buffered := bufio.NewReader(r)
	header, err := buffered.Peek(4096)
	if err != nil && err != io.EOF {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	firstLine := string(header)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}

	reader := csv.NewReader(buffered)
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1 // ragged rows handled at cell access

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv has no header row")
	}

	table := Table{Columns: records[0], Rows: records[1:]}
	return dropIndexLike(table), nil
}
