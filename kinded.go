// Package kinded provides the runtime side of kind enum generation.
//
// A sum type in Go is usually a sealed interface whose variants are the types
// implementing its unexported marker method. Kinded derives a companion
// fieldless "kind" enum for such an interface so that callers can categorize a
// value by its variant without touching the payload.
//
// Mark the interface with a kinded directive in its doc comment:
//
//	//kinded:derive
//	type Drink interface{ isDrink() }
//
//	type Mate struct{ Sugar bool }
//	type Coffee string
//	type Tea struct{}
//
//	func (Mate) isDrink()   {}
//	func (Coffee) isDrink() {}
//	func (Tea) isDrink()    {}
//
// Then run the kinded command. It writes kinded_gen.go for the package:
//
//	go run github.com/sublee/kinded/cmd/kinded ./...
//
//	// generated: (simplified)
//	type DrinkKind int
//
//	const (
//		DrinkKindMate DrinkKind = iota + 1
//		DrinkKindCoffee
//		DrinkKindTea
//	)
//
//	func (DrinkKind) All() []DrinkKind { ... }
//	func (k DrinkKind) String() string { ... }
//	func ParseDrinkKind(s string) (DrinkKind, error) { ... }
//	func DrinkKindOf(v Drink) DrinkKind { ... }
//
//	func (Mate) Kind() DrinkKind   { return DrinkKindMate }
//	func (Coffee) Kind() DrinkKind { return DrinkKindCoffee }
//	func (Tea) Kind() DrinkKind    { return DrinkKindTea }
//
// # Options
//
// The derive directive accepts comma-separated options in parentheses:
//
//	//kinded:derive(kind = Beverage, display = "snake_case", skip_derive(From), derive(PartialOrd))
//
//   - kind = Name: names the kind type. The default is the interface name
//     followed by "Kind".
//   - display = "...": the case convention of String(). One of "snake_case",
//     "camelCase", "PascalCase", "SCREAMING_SNAKE_CASE", "kebab-case",
//     "SCREAMING-KEBAB-CASE", "Title Case", "lowercase", and "UPPERCASE".
//   - skip_derive(...): drops default capabilities. Debug, Clone, Copy,
//     PartialEq, Eq, Display, FromStr, and From can be skipped.
//   - derive(...): adds capabilities such as PartialOrd, Ord, Hash, Serialize,
//     and Deserialize.
//   - attrs(...): relays each attribute as a comment line above the kind type.
//
// A variant accepts its own directive:
//
//	//kinded:variant(rename = "yerba mate", attrs(nolint:revive))
//	type Mate struct{ Sugar bool }
//
// # Parsing
//
// The generated parser accepts, in order of priority, renamed display names,
// the original variant names, and the variant names in any of the nine case
// conventions. A failure is reported as a
// [github.com/sublee/kinded/pkg/kindederrors.ParseKindError].
package kinded

// Kind is implemented by every generated kind type. All returns every kind
// value in declaration order.
type Kind[K any] interface {
	comparable
	All() []K
}

// Kinded is implemented by every variant of a sum type with a generated kind
// type.
type Kinded[K Kind[K]] interface {
	Kind() K
}

// All returns every value of the kind type K in declaration order. The
// returned slice is never shared between calls.
func All[K Kind[K]]() []K {
	var zero K
	return zero.All()
}

// KindOf returns the kind of v. It returns false if v is not a variant of a sum
// type with the kind type K.
func KindOf[K Kind[K]](v any) (K, bool) {
	if k, ok := v.(Kinded[K]); ok {
		return k.Kind(), true
	}
	var zero K
	return zero, false
}
