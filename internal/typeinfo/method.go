package typeinfo

import (
	"go/types"
	"slices"

	"golang.org/x/tools/go/types/typeutil"
)

// MethodSets computes method sets of types. It caches the results because
// every named type in a package is tested against every sum type.
type MethodSets struct {
	cache typeutil.MethodSetCache
}

// Lookup returns the method with the given name in the method set of t. pkg is
// required to find an unexported method.
func (ms *MethodSets) Lookup(t Type, pkg *types.Package, name string) (*types.Func, bool) {
	sel := ms.cache.MethodSet(t.T).Lookup(pkg, name)
	if sel == nil {
		return nil, false
	}
	fn, ok := sel.Obj().(*types.Func)
	return fn, ok
}

// Implements reports whether t or *t has every method of iface except the
// methods named in except. ptr is true if only *t has them.
//
// Signatures are compared only when neither t nor iface is generic, because
// type parameters of a generic variant are not related to those of a generic
// sum type.
func (ms *MethodSets) Implements(t Type, iface *types.Interface, except ...string) (ok, ptr bool) {
	if ms.implements(t, iface, except) {
		return true, false
	}
	if !t.IsPointer() && ms.implements(t.Ref(), iface, except) {
		return true, true
	}
	return false, false
}

func (ms *MethodSets) implements(t Type, iface *types.Interface, except []string) bool {
	generic := t.IsGeneric() || isGeneric(iface)

	n := 0
	for m := range iface.Methods() {
		if slices.Contains(except, m.Name()) {
			continue
		}
		n++

		fn, ok := ms.Lookup(t, m.Pkg(), m.Name())
		if !ok {
			return false
		}
		if !generic && !types.Identical(fn.Type(), m.Type()) {
			return false
		}
	}
	return n != 0
}
