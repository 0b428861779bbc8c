package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
)

// Formatter renders types and positions as they read from inside a package.
type Formatter struct {
	PkgPath string
	Fset    *token.FileSet
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset}
}

func of(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// Type spells typ as Go source in the formatter's package. Types declared in
// the same package are unqualified.
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, func(pkg *types.Package) string {
		if pkg.Path() == f.PkgPath {
			return ""
		}
		return pkg.Name()
	})
}

func (f Formatter) Pos(pos token.Pos) string {
	return FormatPosition(f.Fset.Position(pos))
}

// FormatType spells typ as Go source in the package of pkger.
func FormatType(pkger Pkger, typ types.Type) string {
	return of(pkger).Type(typ)
}

func FormatPos(pkger Pkger, pos token.Pos) string {
	return of(pkger).Pos(pos)
}

// Errorf is [Formatter.Errorf] in the package of pkger.
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return of(pkger).Errorf(poser, format, args...)
}

type rawPos token.Pos

func (p rawPos) Pos() token.Pos { return token.Pos(p) }

// Pos turns a bare position into a [Poser].
func Pos(pos token.Pos) Poser { return rawPos(pos) }

var wd, _ = os.Getwd()

// FormatPosition renders "file:line:col" with the file relative to the working
// directory of the process when possible.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}
	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
