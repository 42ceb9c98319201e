package clean

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"datasweep/domain/core"
	"datasweep/domain/table"
)

// Apply runs the selected cleaning operations on t and returns the
// cleaned table. t itself is never mutated. The operations always run
// in canonical order: remove duplicates, fill missing values,
// standardize column names, remove columns. Drop targets name columns
// as they exist when the removal runs, so with standardization
// selected they refer to the standardized names.
func Apply(t *table.Table, req Request) (*table.Table, error) {
	out := t.Clone()

	if req.RemoveDuplicates {
		out = removeDuplicates(out)
	}
	if req.FillMissing {
		fillMissing(out)
	}
	if req.StandardizeNames {
		if err := standardizeNames(out); err != nil {
			return nil, err
		}
	}
	if len(req.DropColumns) > 0 {
		var err error
		out, err = removeColumns(out, req.DropColumns)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// removeDuplicates drops every row whose cells exactly match an earlier
// row, keeping first occurrences in order. Missing matches missing.
func removeDuplicates(t *table.Table) *table.Table {
	rows := t.NumRows()
	seen := make(map[string]bool, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := rowKey(t, i)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep = append(keep, i)
	}
	if len(keep) == rows {
		return t
	}

	columns := make([]table.Column, len(t.Columns))
	for c, col := range t.Columns {
		cells := make([]table.Cell, 0, len(keep))
		for _, i := range keep {
			cells = append(cells, col.Cells[i])
		}
		columns[c] = table.Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	return &table.Table{Columns: columns}
}

// rowKey builds an injective encoding of row i for exact comparison
func rowKey(t *table.Table, i int) string {
	var b strings.Builder
	for _, col := range t.Columns {
		cell := col.Cells[i]
		switch {
		case cell.IsMissing():
			b.WriteString("m;")
		case cell.IsNumeric():
			b.WriteString("n:")
			b.WriteString(strconv.FormatFloat(cell.NumericVal, 'g', -1, 64))
			b.WriteString(";")
		default:
			b.WriteString("t:")
			b.WriteString(strconv.Quote(cell.StringVal))
			b.WriteString(";")
		}
	}
	return b.String()
}

// fillMissing replaces the missing cells of each numeric column with
// the mean of the values present before any fill. A column with no
// values at all is left as is. Text columns are never touched.
func fillMissing(t *table.Table) {
	for c := range t.Columns {
		col := &t.Columns[c]
		if col.Kind != table.ColumnNumeric {
			continue
		}
		mean, err := stats.Mean(col.NonMissingFloats())
		if err != nil {
			// All cells missing: nothing to average, leave them missing.
			continue
		}
		for i, cell := range col.Cells {
			if cell.IsMissing() {
				col.Cells[i] = table.NewNumericCell(mean)
			}
		}
	}
}

// StandardName is the standardized form of a column name: lowercase
// with spaces replaced by underscores.
func StandardName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// standardizeNames rewrites every column name to its standard form.
// Names that collide after the rewrite are an error.
func standardizeNames(t *table.Table) error {
	seen := make(map[string]bool, len(t.Columns))
	for c := range t.Columns {
		name := StandardName(t.Columns[c].Name)
		if seen[name] {
			return core.NewDuplicateColumnError(name)
		}
		seen[name] = true
		t.Columns[c].Name = name
	}
	return nil
}

// removeColumns drops the named columns, preserving the order of the
// rest. Every target must name an existing column.
func removeColumns(t *table.Table, names []string) (*table.Table, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); !ok {
			return nil, core.NewUnknownColumnError(name)
		}
		drop[name] = true
	}

	columns := make([]table.Column, 0, len(t.Columns)-len(drop))
	for _, col := range t.Columns {
		if !drop[col.Name] {
			columns = append(columns, col)
		}
	}
	return &table.Table{Columns: columns}, nil
}
