package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"io"
)

// verbArg adapts positions, objects and types to two extra verbs:
//
//	%t: a type spelled as Go source
//	%b: a position as file:line:col
//
// Other verbs format the argument as fmt does.
type verbArg struct {
	x any
	f Formatter
}

func (f Formatter) wrap(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case token.Pos, types.Object, types.Type, Poser:
			args[i] = verbArg{arg, f}
		}
	}
	return args
}

func (a verbArg) typ() types.Type {
	switch x := a.x.(type) {
	case types.Type:
		return x
	case types.Object:
		return x.Type()
	}
	return nil
}

func (a verbArg) pos() (token.Pos, bool) {
	switch x := a.x.(type) {
	case token.Pos:
		return x, true
	case Poser:
		return x.Pos(), true
	}
	return token.NoPos, false
}

// Format implements [fmt.Formatter].
func (a verbArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 't':
		typ := a.typ()
		if typ == nil {
			fmt.Fprintf(s, "%%!t(%T)", a.x)
			return
		}
		_, _ = io.WriteString(s, a.f.Type(typ))
	case 'b':
		pos, ok := a.pos()
		if !ok {
			fmt.Fprintf(s, "%%!b(%T)", a.x)
			return
		}
		_, _ = io.WriteString(s, a.f.Pos(pos))
	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), a.x)
	}
}

func (f Formatter) Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, f.wrap(args)...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, f.wrap(args)...)
}
