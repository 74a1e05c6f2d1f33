package intseries

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCharacter is returned when the input holds a byte that is neither
// a digit, a separator, nor (for signed input) a sign.
var ErrInvalidCharacter = errors.New("intseries: invalid character")

// ErrInvalidSignPlacement is returned when '+' or '-' does not directly follow
// a separator (or the start of input), or is not followed by a digit.
var ErrInvalidSignPlacement = errors.New("intseries: invalid sign placement")

// ErrInvalidSeparators is returned by NewSeparators for an unusable set.
var ErrInvalidSeparators = errors.New("intseries: invalid separator set")

// ErrNotLoaded is returned when a Reader is used before Load().
var ErrNotLoaded = errors.New("intseries: reader not loaded")

// ErrPositionOutOfRange is returned when accessing a position beyond the stored values.
var ErrPositionOutOfRange = errors.New("intseries: position out of range")

// SyntaxError reports the offending byte and its offset within the decoded buffer.
// Err is ErrInvalidCharacter or ErrInvalidSignPlacement.
type SyntaxError struct {
	Offset int
	Char   byte
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", e.Err, strconv.QuoteRune(rune(e.Char)), e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func invalidCharacter(data []byte, i int) error {
	return &SyntaxError{Offset: i, Char: data[i], Err: ErrInvalidCharacter}
}

func invalidSign(data []byte, i int) error {
	return &SyntaxError{Offset: i, Char: data[i], Err: ErrInvalidSignPlacement}
}
