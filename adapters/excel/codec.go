package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"datasweep/domain/core"
	"datasweep/domain/table"
	"datasweep/ports"
)

const sheetName = "Sheet1"

// Codec reads and writes single-sheet Excel workbooks with a header row
type Codec struct{}

// NewCodec creates an XLSX codec
func NewCodec() *Codec {
	return &Codec{}
}

// Format names the file format this codec handles
func (c *Codec) Format() ports.Format {
	return ports.FormatXLSX
}

// Decode parses workbook bytes into a table. The first sheet is read;
// its first row is the header. GetRows drops trailing empty cells, so
// short rows are padded back to the header width as missing.
func (c *Codec) Decode(data []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewParseError("xlsx", err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewParseError("xlsx", "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewParseError("xlsx", fmt.Sprintf("failed to read sheet %q: %s", sheets[0], err))
	}
	if len(rows) == 0 {
		return nil, core.NewParseError("xlsx", "missing header row")
	}

	t, err := table.FromRows(rows[0], rows[1:])
	if err != nil {
		return nil, core.NewParseError("xlsx", err.Error())
	}
	return t, nil
}

// Encode serializes a table as a single-sheet workbook. Numeric cells
// are written as native numbers, text as strings, missing cells are
// left blank.
func (c *Codec) Encode(t *table.Table) ([]byte, error) {
	if t.NumColumns() == 0 {
		return nil, fmt.Errorf("cannot encode a table with no columns")
	}

	f := excelize.NewFile()
	defer f.Close()

	for j, name := range t.Names() {
		cellRef, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header reference: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellRef, name); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", name, err)
		}
	}

	for i := 0; i < t.NumRows(); i++ {
		for j := range t.Columns {
			cell := t.Columns[j].Cells[i]
			if cell.IsMissing() {
				continue
			}
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell reference: %w", err)
			}
			var v interface{}
			if cell.IsNumeric() {
				v = cell.NumericVal
			} else {
				v = cell.StringVal
			}
			if err := f.SetCellValue(sheetName, cellRef, v); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cellRef, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
