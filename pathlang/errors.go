package pathlang

import (
	"errors"
	"fmt"
)

// ErrUnknown is the single error kind parse failures collapse to, per
// spec.md §4.2: the grammar is simple enough that callers only need to
// know parsing failed and where, not a taxonomy of parse failure kinds.
var ErrUnknown = errors.New("pathlang: parse error")

// ParseError carries the offset at which parsing failed, wrapping
// ErrUnknown so callers can still match on it.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pathlang: parse error at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrUnknown }

func newParseError(offset int, reason string) *ParseError {
	return &ParseError{Offset: offset, Reason: reason}
}
