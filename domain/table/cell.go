package table

import (
	"math"
	"strconv"
)

// Cell represents a single typed value with an explicit missing state
type Cell struct {
	Kind       CellKind `json:"kind"`
	NumericVal float64  `json:"numeric_val,omitempty"`
	StringVal  string   `json:"string_val,omitempty"`
}

// CellKind defines the storage type for cells
type CellKind string

const (
	CellNumeric CellKind = "numeric"
	CellText    CellKind = "text"
	CellMissing CellKind = "missing"
)

// NewNumericCell creates a numeric cell
func NewNumericCell(n float64) Cell {
	return Cell{Kind: CellNumeric, NumericVal: n}
}

// NewTextCell creates a text cell. The empty string is the missing
// marker's serialized form, so it maps to a missing cell.
func NewTextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellMissing}
	}
	return Cell{Kind: CellText, StringVal: s}
}

// NewMissingCell creates a missing cell
func NewMissingCell() Cell {
	return Cell{Kind: CellMissing}
}

// String returns the serialized form of the cell: the shortest
// round-trippable decimal for numerics, the text itself for text, and
// the empty string for missing.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumeric:
		return strconv.FormatFloat(c.NumericVal, 'g', -1, 64)
	case CellText:
		return c.StringVal
	}
	return ""
}

// IsMissing returns true if the cell holds no value
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// IsNumeric returns true if the cell holds a number
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumeric
}

// IsText returns true if the cell holds text
func (c Cell) IsText() bool {
	return c.Kind == CellText
}

// AsFloat64 returns the numeric value, or 0 if the cell is not numeric
func (c Cell) AsFloat64() float64 {
	if c.Kind == CellNumeric {
		return c.NumericVal
	}
	return 0.0
}

// AsString returns the text value, or empty string if the cell is not text
func (c Cell) AsString() string {
	if c.Kind == CellText {
		return c.StringVal
	}
	return ""
}

// Equal compares two cells. Missing matches only missing, text matches
// exactly, and numerics match within tol (tol 0 means exact).
func (c Cell) Equal(other Cell, tol float64) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case CellNumeric:
		return math.Abs(c.NumericVal-other.NumericVal) <= tol
	case CellText:
		return c.StringVal == other.StringVal
	}
	return true
}
