package duration

import (
	"errors"
	"fmt"
)

// Duration errors.
var (
	// ErrInvalidFormat is matched by every *FormatError via errors.Is.
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrDivisionByZero is returned by Divide when the factor is zero.
	ErrDivisionByZero = errors.New("cannot divide by zero")
)

// FormatError reports a string that does not match the unit-suffixed grammar.
type FormatError struct {
	// Input is the offending string, unmodified.
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidFormat, e.Input)
}

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
