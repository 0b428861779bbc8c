package parse

import (
	"go/types"
	"slices"

	"github.com/sublee/kinded/internal/codefmt"
	"github.com/sublee/kinded/internal/kinded/model"
	"github.com/sublee/kinded/internal/typeinfo"
)

// kindMethod is excluded from matching variants against a sum type. It is
// what the generator adds to variants.
const kindMethod = "Kind"

// sourceType describes a declaration marked by //kinded:derive. If the
// declaration is a sum type, its variants are discovered in the package. The
// returned type names correspond to the variants.
func (p *Parser) sourceType(d decl) (model.SourceType, []*types.TypeName) {
	t := typeinfo.TypeOf(d.obj.Type())
	src := model.SourceType{
		Name:      d.obj.Name(),
		Exported:  d.obj.Exported(),
		Interface: !d.obj.IsAlias() && t.IsNamed() && t.IsInterface() && t.Interface.IsMethodSet(),
		Pos:       d.Pos(),
	}
	if !src.Interface {
		return src, nil
	}

	for tp := range t.Named.TypeParams().TypeParams() {
		src.TypeParams = append(src.TypeParams, model.TypeParam{
			Name:           tp.Obj().Name(),
			Constraint:     codefmt.FormatType(p, tp.Constraint()),
			ConstraintType: tp.Constraint(),
		})
	}

	objs := p.discover(t)
	for _, obj := range objs {
		vt := typeinfo.TypeOf(obj.Type())
		_, ptr := p.ms.Implements(vt, t.Interface, kindMethod)
		src.Variants = append(src.Variants, model.Variant{
			Name:       obj.Name(),
			TypeParams: vt.TypeParams(),
			Shape:      shapeOf(vt),
			Pointer:    ptr,
			Pos:        obj.Pos(),
		})
	}
	return src, objs
}

// discover finds the named types implementing the sum type in the package,
// ordered by their declaration positions.
func (p *Parser) discover(sum typeinfo.Type) []*types.TypeName {
	scope := p.pkg.Types.Scope()

	var objs []*types.TypeName
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() || p.IsGenerated(obj.Pos()) {
			continue
		}

		t := typeinfo.TypeOf(obj.Type())
		if !t.IsNamed() || t.IsInterface() || t.IsInvalid() {
			continue
		}

		if ok, _ := p.ms.Implements(t, sum.Interface, kindMethod); ok {
			objs = append(objs, obj)
		}
	}

	slices.SortFunc(objs, func(a, b *types.TypeName) int {
		return int(a.Pos() - b.Pos())
	})
	return objs
}

func shapeOf(t typeinfo.Type) model.Shape {
	switch {
	case t.IsEmptyStruct():
		return model.Unit
	case t.IsStruct():
		return model.Named
	default:
		return model.Positional
	}
}
