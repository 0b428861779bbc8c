package drink

import "fmt"

// Drink is served in a cup.
//
//kinded:derive(derive(Hash, PartialOrd, Ord, Serialize, Deserialize), display = "kebab-case", attrs(nolint:revive))
type Drink interface {
	fmt.Stringer
	isDrink()
}

//kinded:variant(rename = "yerba mate")
type Mate struct{ Sugar bool }

type HotCoffee struct{ Roast string }

type Water int

func (Mate) isDrink()       {}
func (*HotCoffee) isDrink() {}
func (Water) isDrink()      {}

func (Mate) String() string      { return "mate" }
func (HotCoffee) String() string { return "coffee" }
func (Water) String() string     { return "water" }

//kinded:derive(kind = Flavor, skip_derive(From))
type maybe[T any] interface{ isMaybe() }

type just[T any] struct{ Value T }
type none[T any] struct{}

func (just[T]) isMaybe() {}
func (none[T]) isMaybe() {}
