package codefmt

import (
	"fmt"
	"go/token"
)

// CodeError is an error located in the user's source code.
type CodeError struct {
	err      error
	pos, end token.Pos
	fset     *token.FileSet
}

func (e CodeError) Unwrap() error  { return e.err }
func (e CodeError) Pos() token.Pos { return e.pos }
func (e CodeError) End() token.Pos { return e.end }

// Error prefixes the message with "file:line:col: " when the position is
// valid.
func (e CodeError) Error() string {
	if e.err == nil {
		return ""
	}
	if !e.pos.IsValid() || e.fset == nil {
		return e.err.Error()
	}
	return FormatPosition(e.fset.Position(e.pos)) + ": " + e.err.Error()
}

// Errorf builds a [CodeError] at the position of poser, which may be nil.
// Arguments accept the %t and %b verbs. Wrapping another error is not
// allowed; it panics if any argument is an error.
func (f Formatter) Errorf(poser Poser, format string, args ...any) error {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("codefmt: CodeError cannot wrap an error")
		}
	}

	var pos, end token.Pos
	if poser != nil {
		pos = poser.Pos()
		if ender, ok := poser.(Ender); ok {
			end = ender.End()
		}
	}
	return &CodeError{err: fmt.Errorf(format, f.wrap(args)...), pos: pos, end: end, fset: f.Fset}
}
