package broker

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound is returned when the statement header paragraph is
// missing or does not contain the client and account details.
var ErrHeaderNotFound = errors.New("statement header not found")

// ParseError is returned by Parse, it identifies the statement that failed.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("cannot parse %s: %v", e.File, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }
