package htmltable

import "fmt"

// MissingColumnError is returned when reading a column absent from the table header.
type MissingColumnError struct {
	Section string
	Label   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("section %q has no column %q", e.Section, e.Label)
}

// CellError is returned when a cell cannot be read or converted.
type CellError struct {
	Label string
	Value string // raw cell text
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("column %q: invalid value %q: %v", e.Label, e.Value, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }
