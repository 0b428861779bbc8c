package typeinfo

import "go/types"

// Type classifies a [types.Type] by the shapes that matter to sum types and
// their variants. Named types are classified by their underlying types and
// keep Named set.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Named     *types.Named

	// Elem is the pointee of a pointer.
	Elem *Type
}

func TypeOf(t types.Type) Type {
	switch u := types.Unalias(t).(type) {
	case *types.Named:
		ti := TypeOf(u.Underlying())
		ti.T, ti.Named = t, u
		return ti
	case *types.Pointer:
		elem := TypeOf(u.Elem())
		return Type{T: t, Pointer: u, Elem: &elem}
	case *types.Basic:
		return Type{T: t, Basic: u}
	case *types.Struct:
		return Type{T: t, Struct: u}
	case *types.Interface:
		return Type{T: t, Interface: u}
	}
	return Type{T: t}
}

func (t Type) String() string    { return t.T.String() }
func (t Type) IsNamed() bool     { return t.Named != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }

// IsInvalid reports whether type checking failed for the type.
func (t Type) IsInvalid() bool {
	return t.Basic != nil && t.Basic.Kind() == types.Invalid
}

// IsEmptyStruct reports whether the type is a unit variant.
func (t Type) IsEmptyStruct() bool {
	return t.Struct != nil && t.Struct.NumFields() == 0
}

// Obj returns nil unless the type is named.
func (t Type) Obj() *types.TypeName {
	if t.Named == nil {
		return nil
	}
	return t.Named.Obj()
}

// Ref returns *t.
func (t Type) Ref() Type {
	return TypeOf(types.NewPointer(t.T))
}

// Deref strips every level of pointers.
func (t Type) Deref() Type {
	for t.Pointer != nil {
		t = *t.Elem
	}
	return t
}

// TypeParams counts the type parameters declared by a named type.
func (t Type) TypeParams() int {
	if t.Named == nil {
		return 0
	}
	return t.Named.TypeParams().Len()
}

// IsGeneric reports whether the type mentions a type parameter. An
// instantiation with only concrete arguments such as Pair[int, string] is not
// generic.
func (t Type) IsGeneric() bool {
	return isGeneric(t.T)
}

func isGeneric(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Named:
		if t.TypeParams().Len() == 0 {
			return false
		}
		if t.TypeArgs().Len() == 0 {
			// Declared but not instantiated.
			return true
		}
		for arg := range t.TypeArgs().Types() {
			if isGeneric(arg) {
				return true
			}
		}
	case *types.Pointer:
		return isGeneric(t.Elem())
	case *types.Struct:
		for f := range t.Fields() {
			if isGeneric(f.Type()) {
				return true
			}
		}
	case *types.Interface:
		for m := range t.Methods() {
			if isGeneric(m.Type()) {
				return true
			}
		}
	case *types.Signature:
		if t.TypeParams().Len() != 0 {
			return true
		}
		for v := range t.Params().Variables() {
			if isGeneric(v.Type()) {
				return true
			}
		}
		for v := range t.Results().Variables() {
			if isGeneric(v.Type()) {
				return true
			}
		}
	}
	return false
}
