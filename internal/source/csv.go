package source

import (
	"encoding/csv"
	"io"
	"strings"

	"quant-dashboard/internal/normalize"
)

// parseCSV reads header-keyed raw rows from r. Values are kept as strings;
// normalization happens downstream. Short records are tolerated (missing
// trailing columns stay absent from the row map).
func parseCSV(r io.Reader) ([]normalize.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		// Strip a UTF-8 BOM some Windows log writers prepend.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []normalize.RawRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(normalize.RawRow, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
