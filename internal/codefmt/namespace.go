package codefmt

import (
	"go/token"
	"iter"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS is a set of names taken in a scope of generated code.
type NS map[string]struct{}

// Reserve takes name. It returns false if name was already taken.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name takes and returns the first free spelling of name: name itself, then
// name2, name3 and so on. Keywords pass through untaken. A nil NS takes
// nothing.
func (ns NS) Name(name string) string {
	name = NormalizeName(name)
	if ns == nil || token.Lookup(name).IsKeyword() {
		return name
	}
	for cand := range DisambiguateName(name) {
		if ns.Reserve(cand) {
			return cand
		}
	}
	panic("unreachable")
}

// NormalizeName joins the identifier-safe chunks of name in camel case:
// "picked-up" becomes "pickedUp".
func NormalizeName(name string) string {
	if name == "" {
		panic("codefmt: empty name")
	}

	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})
	title := cases.Title(language.English)
	for i := 1; i < len(chunks); i++ {
		chunks[i] = title.String(chunks[i])
	}
	return strings.Join(chunks, "")
}

// DisambiguateName yields name and then numbered alternatives forever. Names
// ending in a digit get an underscore before the number: answer42_2.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("codefmt: empty name")
	}

	sep := ""
	if last := name[len(name)-1]; '0' <= last && last <= '9' {
		sep = "_"
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}
		for i := 2; ; i++ {
			if !yield(name + sep + strconv.Itoa(i)) {
				return
			}
		}
	}
}
