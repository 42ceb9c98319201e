package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromRows builds a table from a header row and raw data rows, running
// the per-column type detection pass. Cells are trimmed of surrounding
// whitespace first. A trimmed empty cell is the missing marker. A
// column is numeric exactly when every non-missing cell parses as a
// finite number; otherwise it is text. Rows must not be wider than the
// header; shorter rows are padded with missing cells.
func FromRows(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	names := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty column name at position %d", i+1)
		}
		names[i] = name
	}

	raw := make([][]string, len(names))
	for i := range raw {
		raw[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", r+1, len(row), len(names))
		}
		for c := range names {
			if c < len(row) {
				raw[c][r] = strings.TrimSpace(row[c])
			}
		}
	}

	columns := make([]Column, len(names))
	for c, name := range names {
		columns[c] = buildColumn(name, raw[c])
	}
	return New(columns)
}

// buildColumn detects the column kind over all raw values, then builds
// typed cells with the decided kind.
func buildColumn(name string, raw []string) Column {
	kind := detectColumnKind(raw)
	cells := make([]Cell, len(raw))
	for i, v := range raw {
		switch {
		case v == "":
			cells[i] = NewMissingCell()
		case kind == ColumnNumeric:
			n, _ := strconv.ParseFloat(v, 64)
			cells[i] = NewNumericCell(n)
		default:
			cells[i] = NewTextCell(v)
		}
	}
	return Column{Name: name, Kind: kind, Cells: cells}
}

// detectColumnKind returns numeric when every non-missing value parses
// as a finite number. A column with no values at all is numeric.
func detectColumnKind(raw []string) ColumnKind {
	for _, v := range raw {
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return ColumnText
		}
	}
	return ColumnNumeric
}
