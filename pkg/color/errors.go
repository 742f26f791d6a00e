package color

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongLength is returned when the input is neither a keyword
	// nor exactly 7 characters.
	ErrWrongLength = errors.New("Must be 7 characters long (including #)")

	// ErrMissingHash is returned when a 7-character input does not
	// start with "#".
	ErrMissingHash = errors.New("No leading #")

	// ErrInvalidHex is the sentinel wrapped by InvalidHexError.
	ErrInvalidHex = errors.New("invalid hex color")
)

// InvalidHexError reports the first non-hexadecimal character after the
// leading "#", at the position the hex decoder saw it.
type InvalidHexError struct {
	Char byte
	Pos  int
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("Invalid character '%c' at position %d", e.Char, e.Pos)
}

func (e *InvalidHexError) Unwrap() error {
	return ErrInvalidHex
}
