// Package emit renders synthesized kind types as Go declarations.
package emit

import (
	"maps"
	"strconv"
	"strings"

	"github.com/sublee/kinded/internal/codefmt"
	"github.com/sublee/kinded/internal/kinded/model"
	"github.com/sublee/kinded/internal/kinded/synth"
)

const (
	kindedPath       = "github.com/sublee/kinded"
	kindederrorsPath = "github.com/sublee/kinded/pkg/kindederrors"
)

type emitter struct {
	w   *codefmt.Writer
	ns  codefmt.NS
	kt  synth.KindType
	aug synth.Augmentation
}

// Emit writes the declarations of a kind type and the projections attached to
// the variants of its sum type. ns reserves package-level names. Local names in
// generated functions never shadow them.
func Emit(w *codefmt.Writer, ns codefmt.NS, kt synth.KindType, aug synth.Augmentation) {
	e := emitter{w: w, ns: ns, kt: kt, aug: aug}

	e.typeDecl()
	e.consts()
	e.all()

	for _, t := range kt.Derives {
		switch t {
		case model.Debug:
			e.goString()
		case model.Clone:
			e.clone()
		case model.PartialEq:
			e.equal()
		case model.PartialOrd:
			e.compare()
		case model.Ord:
			e.less()
		case model.Serialize:
			e.marshalText()
		case model.Deserialize:
			e.unmarshalText()
		}
	}

	if kt.Display {
		e.display()
	}
	if kt.FromStr {
		e.parse()
	}
	if kt.From {
		e.of()
		e.ofPtr()
	}

	e.projections()
}

// local returns a writer with a namespace for one function.
func (e *emitter) local() *codefmt.Writer {
	ns := maps.Clone(e.ns)
	if ns == nil {
		ns = make(codefmt.NS)
	}
	return e.w.WithNS(ns)
}

func (e *emitter) typeDecl() {
	e.w.Printf("// %s is the kind of [%s].\n", e.kt.Name, e.kt.Source)
	if len(e.kt.Derives) != 0 {
		e.w.Printf("//\n")
		e.w.Printf("// Derived: %s.\n", traitList(e.kt.Derives))
	}
	for _, attr := range e.kt.Attrs {
		e.w.Printf("//%s\n", attr)
	}
	e.w.Printf("type %s int\n\n", e.kt.Name)
}

func (e *emitter) consts() {
	e.w.Printf("const (\n")
	for i, v := range e.kt.Variants {
		for _, attr := range v.Attrs {
			e.w.Printf("//%s\n", attr)
		}
		if i == 0 {
			e.w.Printf("%s %s = iota + 1\n", v.Const, e.kt.Name)
		} else {
			e.w.Printf("%s\n", v.Const)
		}
	}
	e.w.Printf(")\n\n")
}

func (e *emitter) all() {
	consts := make([]string, len(e.kt.Variants))
	for i, v := range e.kt.Variants {
		consts[i] = v.Const
	}

	e.w.Printf("// All returns every %s in declaration order.\n", e.kt.Name)
	e.w.Printf("func (%s) All() []%s {\n", e.kt.Name, e.kt.Name)
	e.w.Printf("return []%s{%s}\n", e.kt.Name, strings.Join(consts, ", "))
	e.w.Printf("}\n\n")
}

// nameSwitch writes a method returning a string per variant. Values out of
// range are written as "Kind(n)".
func (e *emitter) nameSwitch(doc, method string, name func(v synth.Variant) string) {
	w := e.local()
	k := w.Name("k")
	strconvName := w.Import("strconv", "strconv")

	w.Printf("// %s\n", doc)
	w.Printf("func (%s %s) %s() string {\n", k, e.kt.Name, method)
	w.Printf("switch %s {\n", k)
	for _, v := range e.kt.Variants {
		w.Printf("case %s:\n", v.Const)
		w.Printf("return %s\n", strconv.Quote(name(v)))
	}
	w.Printf("}\n")
	w.Printf("return %s + %s.Itoa(int(%s)) + \")\"\n", strconv.Quote(e.kt.Name+"("), strconvName, k)
	w.Printf("}\n\n")
}

func (e *emitter) goString() {
	e.nameSwitch("GoString returns the variant name of k.", "GoString", func(v synth.Variant) string {
		return v.Name
	})
}

func (e *emitter) display() {
	e.nameSwitch("String returns the display name of k.", "String", func(v synth.Variant) string {
		return v.Display
	})
}

func (e *emitter) clone() {
	w := e.local()
	k := w.Name("k")
	w.Printf("func (%s %s) Clone() %s { return %s }\n\n", k, e.kt.Name, e.kt.Name, k)
}

func (e *emitter) equal() {
	w := e.local()
	k, other := w.Name("k"), w.Name("other")
	w.Printf("func (%s %s) Equal(%s %s) bool { return %s == %s }\n\n", k, e.kt.Name, other, e.kt.Name, k, other)
}

func (e *emitter) compare() {
	w := e.local()
	k, other := w.Name("k"), w.Name("other")
	cmpName := w.Import("cmp", "cmp")
	w.Printf("// Compare orders kinds by declaration.\n")
	w.Printf("func (%s %s) Compare(%s %s) int { return %s.Compare(%s, %s) }\n\n", k, e.kt.Name, other, e.kt.Name, cmpName, k, other)
}

func (e *emitter) less() {
	w := e.local()
	k, other := w.Name("k"), w.Name("other")
	w.Printf("func (%s %s) Less(%s %s) bool { return %s < %s }\n\n", k, e.kt.Name, other, e.kt.Name, k, other)
}

func (e *emitter) marshalText() {
	w := e.local()
	k := w.Name("k")
	w.Printf("// MarshalText encodes k as its display name.\n")
	w.Printf("func (%s %s) MarshalText() ([]byte, error) {\n", k, e.kt.Name)
	w.Printf("return []byte(%s.String()), nil\n", k)
	w.Printf("}\n\n")
}

func (e *emitter) unmarshalText() {
	w := e.local()
	k, text, parsed, err := w.Name("k"), w.Name("text"), w.Name("parsed"), w.Name("err")
	w.Printf("// UnmarshalText decodes any string accepted by [%s].\n", e.kt.ParseFunc)
	w.Printf("func (%s *%s) UnmarshalText(%s []byte) error {\n", k, e.kt.Name, text)
	w.Printf("%s, %s := %s(string(%s))\n", parsed, err, e.kt.ParseFunc, text)
	w.Printf("if %s != nil {\n", err)
	w.Printf("return %s\n", err)
	w.Printf("}\n")
	w.Printf("*%s = %s\n", k, parsed)
	w.Printf("return nil\n")
	w.Printf("}\n\n")
}

func (e *emitter) parse() {
	w := e.local()
	s := w.Name("s")
	errorsName := w.Import(kindederrorsPath, "kindederrors")

	inputs := make([][]string, len(e.kt.Variants))
	for _, entry := range e.kt.Parse {
		inputs[entry.Variant] = append(inputs[entry.Variant], strconv.Quote(entry.Input))
	}

	w.Printf("// %s returns the %s named by %s. It accepts display names, variant\n", e.kt.ParseFunc, e.kt.Name, s)
	w.Printf("// names, and variant names in any case convention.\n")
	w.Printf("func %s(%s string) (%s, error) {\n", e.kt.ParseFunc, s, e.kt.Name)
	w.Printf("switch %s {\n", s)
	for i, v := range e.kt.Variants {
		if len(inputs[i]) == 0 {
			continue
		}
		w.Printf("case %s:\n", strings.Join(inputs[i], ", "))
		w.Printf("return %s, nil\n", v.Const)
	}
	w.Printf("}\n")
	w.Printf("return 0, %s.NewParseKindError(%s, %s)\n", errorsName, strconv.Quote(e.kt.Name), s)
	w.Printf("}\n\n")
}

// typeParams returns the type parameter list and the type argument list of
// the sum type. Both are empty if it is not generic. The type parameter names
// are reserved in the namespace of w.
func (e *emitter) typeParams(w *codefmt.Writer) (params, args string) {
	if !e.kt.Generic() {
		return "", ""
	}

	var ps, as []string
	for _, tp := range e.kt.TypeParams {
		w.Reserve(tp.Name)
		constraint := tp.Constraint
		if tp.ConstraintType != nil {
			constraint = w.Sprintf("%t", tp.ConstraintType)
		}
		ps = append(ps, tp.Name+" "+constraint)
		as = append(as, tp.Name)
	}
	return "[" + strings.Join(ps, ", ") + "]", "[" + strings.Join(as, ", ") + "]"
}

// of writes a type switch over the variants. A nil pointer to a variant is
// matched without being dereferenced. Generic variants cannot be named in a
// case, so they are reached through their projections.
func (e *emitter) of() {
	w := e.local()
	params, args := e.typeParams(w)
	v := w.Name("v")

	var cases []string
	generic := false
	for _, p := range e.aug.Projections {
		if p.TypeParams != 0 {
			generic = true
			continue
		}
		typs := "*" + p.Variant
		if !p.Pointer {
			typs = p.Variant + ", " + typs
		}
		cases = append(cases, w.Sprintf("case %s:\nreturn %s\n", typs, p.Const))
	}

	w.Printf("// %s returns the kind of %s. It returns the zero %s, which is not a valid\n", e.kt.OfFunc, v, e.kt.Name)
	w.Printf("// kind, if %s is nil or holds a type that is not a variant of %s.\n", v, e.kt.Source)
	w.Printf("func %s%s(%s %s%s) %s {\n", e.kt.OfFunc, params, v, e.kt.Source, args, e.kt.Name)
	if len(cases) != 0 {
		// A method of a generic sum type may mention its type parameters, which
		// would make a case impossible to the compiler.
		subject := v
		if e.kt.Generic() {
			subject = "any(" + v + ")"
		}
		w.Printf("switch %s.(type) {\n", subject)
		for _, c := range cases {
			w.Printf("%s", c)
		}
		w.Printf("}\n")
	}
	if generic {
		k, ok := w.Name("k"), w.Name("ok")
		kindedName := w.Import(kindedPath, "kinded")
		w.Printf("if %s, %s := %s.(%s.Kinded[%s]); %s {\n", k, ok, v, kindedName, e.kt.Name, ok)
		w.Printf("return %s.Kind()\n", k)
		w.Printf("}\n")
	}
	w.Printf("return 0\n")
	w.Printf("}\n\n")
}

func (e *emitter) ofPtr() {
	w := e.local()
	params, args := e.typeParams(w)
	v := w.Name("v")

	w.Printf("// %s is like [%s] but takes a pointer.\n", e.kt.OfPtrFunc, e.kt.OfFunc)
	w.Printf("func %s%s(%s *%s%s) %s {\n", e.kt.OfPtrFunc, params, v, e.kt.Source, args, e.kt.Name)
	w.Printf("if %s == nil {\n", v)
	w.Printf("return 0\n")
	w.Printf("}\n")
	w.Printf("return %s(*%s)\n", e.kt.OfFunc, v)
	w.Printf("}\n\n")
}

// projections writes a constant Kind method per variant. Variants
// implementing the sum type through their pointers get pointer receivers, so a
// nil pointer still has a kind.
func (e *emitter) projections() {
	aug := e.aug
	var asserts []string
	for _, p := range aug.Projections {
		recv := p.Variant
		if p.TypeParams != 0 {
			recv += "[" + strings.Repeat("_, ", p.TypeParams-1) + "_]"
		}
		if p.Pointer {
			recv = "*" + recv
		}
		e.w.Printf("func (%s) Kind() %s { return %s }\n\n", recv, aug.Kind, p.Const)

		if p.Assert {
			asserts = append(asserts, p.Variant)
		}
	}
	if len(asserts) == 0 {
		return
	}

	kindedName := e.w.Import(kindedPath, "kinded")
	e.w.Printf("var (\n")
	for _, variant := range asserts {
		e.w.Printf("_ %s.Kinded[%s] = (*%s)(nil)\n", kindedName, aug.Kind, variant)
	}
	e.w.Printf(")\n\n")
}
