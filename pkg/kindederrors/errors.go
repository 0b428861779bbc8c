// Package kindederrors provides errors returned by generated kind parsers.
package kindederrors

import (
	"errors"
	"fmt"
)

// ErrParseKind matches every [ParseKindError] with [errors.Is].
var ErrParseKind = errors.New("failed to parse kind")

// ParseKindError is returned when a string does not name any value of a kind
// type.
type ParseKindError struct {
	kindType string
	given    string
}

// NewParseKindError creates a [ParseKindError]. Generated parsers call it with
// the name of their kind type and the rejected input.
func NewParseKindError(kindType, given string) *ParseKindError {
	return &ParseKindError{kindType: kindType, given: given}
}

// KindType returns the name of the kind type.
func (e *ParseKindError) KindType() string { return e.kindType }

// Given returns the rejected input verbatim.
func (e *ParseKindError) Given() string { return e.given }

func (e *ParseKindError) Error() string {
	return fmt.Sprintf(`Failed to parse "%s" as %s`, e.given, e.kindType)
}

func (e *ParseKindError) Is(target error) bool {
	return target == ErrParseKind
}
