package intseries

import (
	"fmt"
	"slices"
)

// maxSeparators bounds the separator set so it fits a single 16-byte
// comparison vector.
const maxSeparators = 16

// DefaultSeparators holds the comma, semicolon and space separators.
var DefaultSeparators = MustSeparators(",; ")

// Separators is an immutable set of separator bytes. It never contains a
// digit, '+' or '-'. A Separators value is safe for concurrent use.
type Separators struct {
	member [256]bool
	list   []byte
}

// NewSeparators validates s and builds a separator set from its distinct
// bytes. The set must hold between 1 and 16 distinct bytes, none of which may
// be '0'..'9', '+' or '-'.
func NewSeparators(s string) (*Separators, error) {
	seps := &Separators{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) || c == '+' || c == '-' {
			return nil, fmt.Errorf("%w: forbidden character %q", ErrInvalidSeparators, c)
		}
		if !seps.member[c] {
			seps.member[c] = true
			seps.list = append(seps.list, c)
		}
	}
	if len(seps.list) == 0 {
		return nil, fmt.Errorf("%w: empty set", ErrInvalidSeparators)
	}
	if len(seps.list) > maxSeparators {
		return nil, fmt.Errorf("%w: %d distinct characters (max %d)",
			ErrInvalidSeparators, len(seps.list), maxSeparators)
	}
	slices.Sort(seps.list)
	return seps, nil
}

// MustSeparators is like NewSeparators but panics on an invalid set.
func MustSeparators(s string) *Separators {
	seps, err := NewSeparators(s)
	if err != nil {
		panic(err)
	}
	return seps
}

// Contains reports whether c is a separator.
func (s *Separators) Contains(c byte) bool {
	return s.member[c]
}

// Len returns the number of distinct separators.
func (s *Separators) Len() int {
	return len(s.list)
}

// String returns the separators in ascending byte order.
func (s *Separators) String() string {
	return string(s.list)
}

// Mask returns a bitmask with bit i set iff window[i] is a separator.
func (s *Separators) Mask(window *[16]byte) uint16 {
	var mask uint16
	for i, c := range window {
		if s.member[c] {
			mask |= 1 << i
		}
	}
	return mask
}

func isDigit(c byte) bool {
	return c-'0' < 10
}
