package table

import (
	"fmt"

	"datasweep/domain/core"
)

// ColumnKind defines the detected type of a column
type ColumnKind string

const (
	ColumnNumeric ColumnKind = "numeric"
	ColumnText    ColumnKind = "text"
)

// Column is an ordered, named sequence of cells of one kind. A numeric
// column holds only numeric or missing cells; a text column only text
// or missing cells. A column whose cells are all missing is numeric.
type Column struct {
	Name  string     `json:"name"`
	Kind  ColumnKind `json:"kind"`
	Cells []Cell     `json:"cells"`
}

// NonMissingFloats returns the values of the non-missing cells.
// It returns nil if the column is not numeric.
func (c *Column) NonMissingFloats() []float64 {
	if c.Kind != ColumnNumeric {
		return nil
	}
	vals := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.IsNumeric() {
			vals = append(vals, cell.NumericVal)
		}
	}
	return vals
}

// MissingCount returns the number of missing cells in the column
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// clone deep-copies the column
func (c *Column) clone() Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// Table is the uniform in-memory tabular value: ordered named columns
// of equal length. All transformations treat it as a value, returning
// a new Table and leaving the input untouched.
type Table struct {
	Columns []Column `json:"columns"`
}

// New creates a table from columns after checking its invariants
func New(columns []Column) (*Table, error) {
	t := &Table{Columns: columns}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NumRows returns the shared column length
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumColumns returns the column count
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Names returns the column names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnByName returns the named column
func (t *Table) ColumnByName(name string) (*Column, bool) {
	if i, ok := t.ColumnIndex(name); ok {
		return &t.Columns[i], true
	}
	return nil, false
}

// NumericColumnNames returns the names of the numeric columns in table order
func (t *Table) NumericColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Kind == ColumnNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = col.Cells[i]
	}
	return row
}

// Clone deep-copies the table
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = col.clone()
	}
	return &Table{Columns: columns}
}

// Validate checks the table invariants: equal column lengths, unique
// column names, and cell kinds consistent with each column's kind.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	rows := t.NumRows()
	for _, col := range t.Columns {
		if seen[col.Name] {
			return core.NewDuplicateColumnError(col.Name)
		}
		seen[col.Name] = true

		if len(col.Cells) != rows {
			return fmt.Errorf("column %q has %d cells, want %d", col.Name, len(col.Cells), rows)
		}

		for i, cell := range col.Cells {
			switch col.Kind {
			case ColumnNumeric:
				if cell.IsText() {
					return fmt.Errorf("numeric column %q holds text at row %d", col.Name, i)
				}
			case ColumnText:
				if cell.IsNumeric() {
					return fmt.Errorf("text column %q holds a number at row %d", col.Name, i)
				}
			default:
				return fmt.Errorf("column %q has unknown kind %q", col.Name, col.Kind)
			}
		}
	}
	return nil
}

// Equal compares two tables column by column. Numeric cells compare
// within tol, text exactly, missing only to missing.
func (t *Table) Equal(other *Table, tol float64) bool {
	if len(t.Columns) != len(other.Columns) {
		return false
	}
	for i, col := range t.Columns {
		o := other.Columns[i]
		if col.Name != o.Name || col.Kind != o.Kind || len(col.Cells) != len(o.Cells) {
			return false
		}
		for j, cell := range col.Cells {
			if !cell.Equal(o.Cells[j], tol) {
				return false
			}
		}
	}
	return true
}
