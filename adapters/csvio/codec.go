package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"datasweep/domain/core"
	"datasweep/domain/table"
	"datasweep/ports"
)

// Codec reads and writes comma-delimited files with a header row
type Codec struct{}

// NewCodec creates a CSV codec
func NewCodec() *Codec {
	return &Codec{}
}

// Format names the file format this codec handles
func (c *Codec) Format() ports.Format {
	return ports.FormatCSV
}

// Decode parses CSV bytes into a table. The first record is the header
// row; every record must have the header's field count.
func (c *Codec) Decode(data []byte) (*table.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewParseError("csv", err.Error())
	}
	if len(rows) == 0 {
		return nil, core.NewParseError("csv", "missing header row")
	}

	t, err := table.FromRows(rows[0], rows[1:])
	if err != nil {
		return nil, core.NewParseError("csv", err.Error())
	}
	return t, nil
}

// Encode serializes a table as CSV bytes: header row first, numerics
// in their shortest round-trippable form, missing cells empty.
func (c *Codec) Encode(t *table.Table) ([]byte, error) {
	if t.NumColumns() == 0 {
		return nil, fmt.Errorf("cannot encode a table with no columns")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Names()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, t.NumColumns())
	for i := 0; i < t.NumRows(); i++ {
		for j := range t.Columns {
			record[j] = t.Columns[j].Cells[i].String()
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush: %w", err)
	}
	return buf.Bytes(), nil
}
