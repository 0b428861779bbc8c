// Package kindedanalysis reports misuses of kinded directives as analysis
// diagnostics without generating code.
package kindedanalysis

import (
	"errors"
	"reflect"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/kinded/internal/codefmt"
	kindedinternal "github.com/sublee/kinded/internal/kinded"
)

// Analyzer validates the kinded directives in the package. Its result is the
// list of sum types deriving kind types, as [Result].
var Analyzer = &analysis.Analyzer{
	Name:       "kinded",
	Doc:        "linter for kinded directives",
	Run:        run,
	ResultType: reflect.TypeFor[Result](),
}

// Result describes the kind types the package would generate. It is empty if
// any directive is invalid.
type Result []kindedinternal.Description

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	kd, err := kindedinternal.New(pkg)
	if err != nil {
		return nil, err
	}

	err = kd.Build()
	if err == nil {
		return Result(kd.Describe()), nil
	}

	// Positioned errors become diagnostics. The others fail the analysis.
	var rest error
	for _, err := range leaves(err) {
		var codeErr *codefmt.CodeError
		if errors.As(err, &codeErr) && codeErr.Pos().IsValid() {
			pass.Report(analysis.Diagnostic{
				Pos:     codeErr.Pos(),
				End:     codeErr.End(),
				Message: codeErr.Unwrap().Error(),
			})
			continue
		}
		rest = errors.Join(rest, err)
	}
	return Result(nil), rest
}

// leaves unrolls joined errors.
func leaves(err error) []error {
	var list []error
	queue := []error{err}
	for len(queue) != 0 {
		err := queue[0]
		queue = queue[1:]

		if u, ok := err.(interface{ Unwrap() []error }); ok {
			queue = append(queue, u.Unwrap()...)
			continue
		}
		list = append(list, err)
	}
	return list
}
