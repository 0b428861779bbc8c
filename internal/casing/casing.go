// Package casing converts Go identifiers between naming conventions.
package casing

import (
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy is a naming convention.
type Policy int

const (
	SnakeCase Policy = iota
	CamelCase
	PascalCase
	ScreamingSnakeCase
	KebabCase
	ScreamingKebabCase
	TitleCase
	LowerCase
	UpperCase
)

var literals = [...]string{
	SnakeCase:          "snake_case",
	CamelCase:          "camelCase",
	PascalCase:         "PascalCase",
	ScreamingSnakeCase: "SCREAMING_SNAKE_CASE",
	KebabCase:          "kebab-case",
	ScreamingKebabCase: "SCREAMING-KEBAB-CASE",
	TitleCase:          "Title Case",
	LowerCase:          "lowercase",
	UpperCase:          "UPPERCASE",
}

// All returns every policy in the canonical order.
func All() []Policy {
	return []Policy{
		SnakeCase,
		CamelCase,
		PascalCase,
		ScreamingSnakeCase,
		KebabCase,
		ScreamingKebabCase,
		TitleCase,
		LowerCase,
		UpperCase,
	}
}

// Literals returns the names of every policy in the canonical order. A name
// shows how the policy writes "case convention" words.
func Literals() []string {
	return literals[:]
}

// Parse returns the policy named by s. The name must be exactly one of
// [Literals].
func Parse(s string) (Policy, bool) {
	for i, lit := range literals {
		if s == lit {
			return Policy(i), true
		}
	}
	return 0, false
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(literals) {
		return "Policy(?)"
	}
	return literals[p]
}

// MarshalText implements [encoding.TextMarshaler].
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Apply converts an identifier into the policy.
//
//	SnakeCase.Apply("HotMate")  // "hot_mate"
//	TitleCase.Apply("HotMate")  // "Hot Mate"
//	LowerCase.Apply("HotMate")  // "hotmate"
func (p Policy) Apply(s string) string {
	switch p {
	case SnakeCase:
		return strcase.ToSnake(s)
	case CamelCase:
		return strcase.ToLowerCamel(s)
	case PascalCase:
		return strcase.ToCamel(s)
	case ScreamingSnakeCase:
		return strcase.ToScreamingSnake(s)
	case KebabCase:
		return strcase.ToKebab(s)
	case ScreamingKebabCase:
		return strcase.ToScreamingKebab(s)
	case TitleCase:
		return cases.Title(language.English).String(strcase.ToDelimited(s, ' '))
	case LowerCase:
		return strings.ReplaceAll(strcase.ToSnake(s), "_", "")
	case UpperCase:
		return strings.ReplaceAll(strcase.ToScreamingSnake(s), "_", "")
	}
	panic("unknown policy")
}

// Variants returns s in every policy. The result may contain duplicates.
func Variants(s string) []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.Apply(s))
	}
	return out
}
