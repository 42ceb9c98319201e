package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Ingestion errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParse             = errors.New("malformed input")

	// Column errors
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotNumeric      = errors.New("column is not numeric")
	ErrDuplicateColumn = errors.New("duplicate column name")

	// Summary signals
	ErrNoNumericColumns = errors.New("fewer than two numeric columns")
)

// Error constructors with context
func NewUnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func NewParseError(format string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrParse, format, reason)
}

func NewUnknownColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func NewNotNumericError(name string) error {
	return fmt.Errorf("%w: %q", ErrNotNumeric, name)
}

func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrParse)
}

func IsColumnError(err error) bool {
	return errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrDuplicateColumn)
}

// IsSoft reports whether err is an informational signal rather than a
// pipeline failure. Callers surface it to the user and carry on.
func IsSoft(err error) bool {
	return errors.Is(err, ErrNoNumericColumns)
}
