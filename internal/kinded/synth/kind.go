// Package synth synthesizes the kind type of a sum type and the projections
// attached to its variants. Both are pure functions of a [model.Model]; the
// emitter renders them as Go code.
package synth

import (
	"go/types"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sublee/kinded/internal/casing"
	"github.com/sublee/kinded/internal/kinded/model"
)

// KindType describes a fieldless enum mirroring the variants of a sum type.
type KindType struct {
	Name       string        `json:"name" yaml:"name"`
	Exported   bool          `json:"exported" yaml:"exported"`
	Source     string        `json:"source" yaml:"source"`
	TypeParams []TypeParam   `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`
	Derives    []model.Trait `json:"derives" yaml:"derives"`
	Attrs      []string      `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Variants   []Variant     `json:"variants" yaml:"variants"`

	// Parse is the table of accepted strings in priority order. It is empty if
	// FromStr is skipped.
	Parse []ParseEntry `json:"parse,omitempty" yaml:"parse,omitempty"`

	Display bool `json:"display" yaml:"display"`
	FromStr bool `json:"fromStr" yaml:"fromStr"`
	From    bool `json:"from" yaml:"from"`

	// ParseFunc, OfFunc and OfPtrFunc are the names of the generated
	// functions. They are empty if not generated.
	ParseFunc string `json:"parseFunc,omitempty" yaml:"parseFunc,omitempty"`
	OfFunc    string `json:"ofFunc,omitempty" yaml:"ofFunc,omitempty"`
	OfPtrFunc string `json:"ofPtrFunc,omitempty" yaml:"ofPtrFunc,omitempty"`
}

// TypeParam is a type parameter of a generic sum type.
type TypeParam struct {
	Name       string `json:"name" yaml:"name"`
	Constraint string `json:"constraint" yaml:"constraint"`

	// ConstraintType lets the emitter import packages the constraint refers to.
	ConstraintType types.Type `json:"-" yaml:"-"`
}

// Variant is a value of a kind type.
type Variant struct {
	// Name is the identifier of the source variant. The debug form of the
	// value is always Name.
	Name    string   `json:"name" yaml:"name"`
	Const   string   `json:"const" yaml:"const"`
	Display string   `json:"display" yaml:"display"`
	Attrs   []string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// ParseEntry binds an accepted string to a variant index.
type ParseEntry struct {
	Input   string `json:"input" yaml:"input"`
	Variant int    `json:"variant" yaml:"variant"`
}

// Kind synthesizes the kind type of m.
func Kind(m *model.Model) KindType {
	kt := KindType{
		Name:     m.KindName,
		Exported: m.Exported(),
		Source:   m.Source.Name,
		Display:  m.Has(model.Display),
		FromStr:  m.Has(model.FromStr),
		From:     m.Has(model.From),
	}
	for _, tp := range m.Source.TypeParams {
		kt.TypeParams = append(kt.TypeParams, TypeParam{
			Name:           tp.Name,
			Constraint:     tp.Constraint,
			ConstraintType: tp.ConstraintType,
		})
	}
	kt.Attrs = attrTexts(m.Config.Attrs)

	// A skip overrides an explicit derive of Display, FromStr or From.
	kt.Derives = make([]model.Trait, 0, len(m.Derives))
	for _, t := range m.Derives {
		if m.Has(t) {
			kt.Derives = append(kt.Derives, t)
		}
	}

	for i, v := range m.Source.Variants {
		kt.Variants = append(kt.Variants, Variant{
			Name:    v.Name,
			Const:   m.KindName + v.Name,
			Display: m.Displays[i],
			Attrs:   attrTexts(v.Config.Attrs),
		})
	}

	if kt.FromStr {
		kt.Parse = ParseTable(m.Source.Variants)
		kt.ParseFunc = funcName("parse", m.KindName, kt.Exported)
	}
	if kt.From {
		kt.OfFunc = m.KindName + "Of"
		kt.OfPtrFunc = m.KindName + "OfPtr"
	}
	return kt
}

// ParseTable lists the strings a kind parser accepts. Renames come first, then
// the original identifiers, then every case conversion of each identifier. A
// string bound earlier is never rebound.
func ParseTable(variants []model.Variant) []ParseEntry {
	table := linkedhashmap.New()
	bind := func(s string, i int) {
		if _, found := table.Get(s); !found {
			table.Put(s, i)
		}
	}

	for i, v := range variants {
		if v.Config.Rename != nil {
			bind(*v.Config.Rename, i)
		}
	}
	for i, v := range variants {
		bind(v.Name, i)
	}
	for i, v := range variants {
		for _, s := range casing.Variants(v.Name) {
			bind(s, i)
		}
	}

	entries := make([]ParseEntry, 0, table.Size())
	it := table.Iterator()
	for it.Next() {
		entries = append(entries, ParseEntry{Input: it.Key().(string), Variant: it.Value().(int)})
	}
	return entries
}

// Lookup returns the variant index bound to s in the parse table.
func (kt KindType) Lookup(s string) (int, bool) {
	for _, e := range kt.Parse {
		if e.Input == s {
			return e.Variant, true
		}
	}
	return 0, false
}

// Generic reports whether the source type has type parameters.
func (kt KindType) Generic() bool {
	return len(kt.TypeParams) != 0
}

// funcName prefixes name by prefix. The result is exported only if exported
// is true.
//
//	funcName("parse", "DrinkKind", true)  // "ParseDrinkKind"
//	funcName("parse", "drinkKind", false) // "parseDrinkKind"
func funcName(prefix, name string, exported bool) string {
	r, size := utf8.DecodeRuneInString(name)
	name = string(unicode.ToUpper(r)) + name[size:]
	if exported {
		r, size := utf8.DecodeRuneInString(prefix)
		prefix = string(unicode.ToUpper(r)) + prefix[size:]
	}
	return prefix + name
}

func attrTexts(attrs []model.Attr) []string {
	var texts []string
	for _, attr := range attrs {
		texts = append(texts, attr.Text)
	}
	return texts
}
