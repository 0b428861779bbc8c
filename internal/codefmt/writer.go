package codefmt

import (
	"cmp"
	"go/types"
	"io"
	pathpkg "path"
	"slices"

	"golang.org/x/tools/go/packages"
)

// Writer writes generated code for a package. It collects the imports the
// code needs so that the caller can render the import block afterwards.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	ns      NS
}

// NewWriter returns a [Writer] without a namespace. Use [Writer.WithNS] to
// name locals.
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes with the %t and %b verbs of [Formatter]. Packages of the
// objects and types in args are imported.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	w.importArgs(args)
	return w.fmt.Fprintf(w.w, format, args...)
}

func (w *Writer) Sprintf(format string, args ...any) string {
	w.importArgs(args)
	return w.fmt.Sprintf(format, args...)
}

func (w *Writer) Name(name string) string { return w.ns.Name(name) }
func (w *Writer) Reserve(name string) bool { return w.ns.Reserve(name) }

// WithNS returns a writer sharing the output and the imports but naming in ns.
func (w *Writer) WithNS(ns NS) *Writer {
	cp := *w
	cp.ns = ns
	return &cp
}

// Import is a package the generated code refers to by its name.
type Import struct {
	*types.Package

	// HasAlias is set when the name differs from the package's own name.
	HasAlias bool
}

func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// ImportNames returns the import names ordered by path.
func (w *Writer) ImportNames() []string {
	names := make([]string, 0, len(w.imports))
	for name := range w.imports {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(w.imports[a].Path(), w.imports[b].Path())
	})
	return names
}

// Import imports path and returns the name to refer to it. name is the
// preferred name; empty means the name the package is known by. The name is
// numbered when it would shadow a package-level declaration or another
// import.
//
//	strconvName := w.Import("strconv", "")
//	w.Printf("%s.Itoa(n)", strconvName)
func (w *Writer) Import(path, name string) string {
	pkgName := ""
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			pkgName = imp.Name()
			break
		}
	}
	if pkgName == "" {
		pkgName = pathpkg.Base(path)
	}
	if name == "" {
		name = pkgName
	}

	for cand := range DisambiguateName(name) {
		prev, ok := w.imports[cand]
		if ok && prev.Path() == path {
			return cand
		}
		if !ok && w.pkg.Types.Scope().Lookup(cand) == nil {
			w.imports[cand] = Import{Package: types.NewPackage(path, cand), HasAlias: cand != pkgName}
			return cand
		}
	}
	panic("unreachable")
}

func (w *Writer) importArgs(args []any) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case types.Object:
			w.importObj(arg)
		case types.Type:
			w.importType(arg)
		}
	}
}

// importType imports the packages declaring typ and every type it is built
// from, such as the terms of a constraint.
func (w *Writer) importType(typ types.Type) {
	switch typ := typ.(type) {
	case *types.Pointer:
		w.importType(typ.Elem())
	case *types.Slice:
		w.importType(typ.Elem())
	case *types.Array:
		w.importType(typ.Elem())
	case *types.Chan:
		w.importType(typ.Elem())
	case *types.Map:
		w.importType(typ.Key())
		w.importType(typ.Elem())
	case *types.Alias:
		w.importObj(typ.Obj())
		for arg := range typ.TypeArgs().Types() {
			w.importType(arg)
		}
	case *types.Named:
		w.importObj(typ.Obj())
		for arg := range typ.TypeArgs().Types() {
			w.importType(arg)
		}
	case *types.Union:
		for term := range typ.Terms() {
			w.importType(term.Type())
		}
	case *types.Interface:
		for embedded := range typ.EmbeddedTypes() {
			w.importType(embedded)
		}
		for m := range typ.ExplicitMethods() {
			w.importType(m.Type())
		}
	case *types.Signature:
		for v := range typ.Params().Variables() {
			w.importType(v.Type())
		}
		for v := range typ.Results().Variables() {
			w.importType(v.Type())
		}
	}
}

// importObj imports the package declaring obj unless it is the universe or
// the package being generated. A package renamed to avoid a conflict keeps the
// new name so that %t spells it that way.
func (w *Writer) importObj(obj types.Object) {
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() == w.pkg.PkgPath {
		return
	}

	pkg := obj.Pkg()
	for cand := range DisambiguateName(pkg.Name()) {
		prev, ok := w.imports[cand]
		if ok && prev.Package == pkg {
			return
		}
		if !ok && w.pkg.Types.Scope().Lookup(cand) == nil {
			w.imports[cand] = Import{Package: pkg, HasAlias: cand != pkg.Name()}
			if cand != pkg.Name() {
				pkg.SetName(cand)
			}
			return
		}
	}
}
