package ports

import (
	"strings"

	"datasweep/domain/core"
	"datasweep/domain/table"
)

// Format identifies a supported tabular file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a format name or file extension. Anything
// outside the supported set is an ErrUnsupportedFormat.
func ParseFormat(s string) (Format, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, ".")
	switch Format(norm) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", core.NewUnsupportedFormatError(s)
}

// String returns the format name
func (f Format) String() string {
	return string(f)
}

// Ext returns the canonical file extension, dot included
func (f Format) Ext() string {
	return "." + string(f)
}

// MIME returns the content type served with exported files
func (f Format) MIME() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Codec converts one file format to and from the uniform table value.
// Decode and Encode are pure transformations of bytes already in
// memory; neither touches the filesystem.
type Codec interface {
	// Format names the file format this codec handles
	Format() Format

	// Decode parses raw file bytes into a table
	Decode(data []byte) (*table.Table, error)

	// Encode serializes a table into raw file bytes
	Encode(t *table.Table) ([]byte, error)
}
