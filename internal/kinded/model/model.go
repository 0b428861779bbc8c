// Package model holds the validated description of a sum type and the kind
// type derived from it.
package model

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"slices"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/sublee/kinded/internal/casing"
)

// Shape is the payload layout of a variant.
type Shape int

const (
	// Named is a struct with fields.
	Named Shape = iota
	// Positional is a non-struct type such as string or []int.
	Positional
	// Unit is an empty struct.
	Unit
)

func (s Shape) String() string {
	switch s {
	case Named:
		return "named"
	case Positional:
		return "positional"
	case Unit:
		return "unit"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TypeParam is a type parameter of a generic sum type.
type TypeParam struct {
	Name           string
	Constraint     string
	ConstraintType types.Type
}

// Attr is a pass-through attribute relayed verbatim onto generated code.
type Attr struct {
	Text string
	Pos  token.Pos
}

// SourceType is a declaration marked for deriving.
type SourceType struct {
	Name       string
	Exported   bool
	Interface  bool
	TypeParams []TypeParam
	Variants   []Variant
	Pos        token.Pos
}

// Variant is a type implementing a sum type.
type Variant struct {
	Name string
	// TypeParams is the number of type parameters of the variant.
	TypeParams int
	Shape      Shape
	// Pointer is true if only the pointer type implements the sum type.
	Pointer bool
	Pos     token.Pos
	Config  VariantConfig
}

// KindConfig is the option list of a //kinded:derive directive. Nil slices and
// pointers mean absent options.
type KindConfig struct {
	Pos     token.Pos
	Kind    string
	Derive  []Trait
	Skip    []Trait
	Display *casing.Policy
	Attrs   []Attr
}

// Skips reports whether t is in skip_derive.
func (c KindConfig) Skips(t Trait) bool {
	return slices.Contains(c.Skip, t)
}

// VariantConfig is the option list of a //kinded:variant directive.
type VariantConfig struct {
	Pos    token.Pos
	Rename *string
	Attrs  []Attr
}

// Model is a sum type ready to synthesize its kind type. Build it by [Build]
// and do not modify it.
type Model struct {
	Source SourceType
	Config KindConfig

	// KindName is the name of the kind type.
	KindName string

	// Derives is the final derive list. Defaults come first in the canonical
	// order, then extras in declaration order.
	Derives []Trait

	// Displays is the display name of each variant.
	Displays []string
}

// Error is a model error at a source position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errorf(pos token.Pos, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Build validates a source type with its directives and derives the facts of
// the kind type. cfgs are every //kinded:derive directive found on the
// declaration.
func Build(src SourceType, cfgs []KindConfig) (*Model, error) {
	if len(cfgs) == 0 {
		return nil, errorf(src.Pos, "no kinded:derive directive on %s", src.Name)
	}

	var errs error
	if !src.Interface {
		errs = errors.Join(errs, errorf(cfgs[0].Pos, "kinded can only be derived on enums; %s is not an interface", src.Name))
	}
	for _, dup := range cfgs[1:] {
		errs = errors.Join(errs, errorf(dup.Pos, "multiple kinded:derive directives are not allowed on %s", src.Name))
	}
	if errs != nil {
		return nil, errs
	}

	if len(src.Variants) == 0 {
		return nil, errorf(src.Pos, "%s has no variants", src.Name)
	}

	cfg := cfgs[0]
	switch {
	case cfg.Kind == "_":
		return nil, errorf(cfg.Pos, "cannot use _ as kind name")
	case cfg.Kind != "" && types.Universe.Lookup(cfg.Kind) != nil:
		return nil, errorf(cfg.Pos, "cannot use %s as kind name: predeclared identifier", cfg.Kind)
	}

	m := &Model{
		Source:   src,
		Config:   cfg,
		KindName: KindName(src.Name, cfg),
		Derives:  Derives(cfg),
	}

	for _, v := range src.Variants {
		m.Displays = append(m.Displays, DisplayName(v, cfg.Display))
	}
	return m, nil
}

// KindName returns the explicit kind name or the source name followed by
// "Kind".
func KindName(source string, cfg KindConfig) string {
	if cfg.Kind != "" {
		return cfg.Kind
	}
	return source + "Kind"
}

// Derives computes the derive list: defaults minus skips, then extras.
// Duplicates are dropped on their second occurrence.
func Derives(cfg KindConfig) []Trait {
	set := linkedhashset.New()
	for _, t := range Defaults() {
		if !cfg.Skips(t) {
			set.Add(t)
		}
	}
	for _, t := range cfg.Derive {
		set.Add(t)
	}

	derives := make([]Trait, 0, set.Size())
	for _, v := range set.Values() {
		derives = append(derives, v.(Trait))
	}
	return derives
}

// DisplayName returns the rename of the variant if present, else its name in
// the display policy, else its name.
func DisplayName(v Variant, policy *casing.Policy) string {
	if v.Config.Rename != nil {
		return *v.Config.Rename
	}
	if policy != nil {
		return policy.Apply(v.Name)
	}
	return v.Name
}

// Has reports whether the kind type gets the capability t. Display, FromStr,
// and From are generated unless skipped. The others follow the derive list.
func (m *Model) Has(t Trait) bool {
	switch t {
	case Display, FromStr, From:
		return !m.Config.Skips(t)
	}
	return slices.Contains(m.Derives, t)
}

// Exported reports whether the kind type is exported.
func (m *Model) Exported() bool {
	return token.IsExported(m.KindName)
}

// Generic reports whether the sum type has type parameters.
func (m *Model) Generic() bool {
	return len(m.Source.TypeParams) != 0
}
