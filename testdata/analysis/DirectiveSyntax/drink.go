package drink

//kinded:derive(kind = "A") // want `expected identifier as kind name, found "A"`
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

//kinded:derive(display = "snake") // want `invalid value for display: "snake"; valid values are: "snake_case"`
type Food interface{ isFood() }

type Bread struct{}

func (Bread) isFood() {}

//kinded:derive(skip_derive(Clone, Hash), foo = 1) // want `unknown trait to skip: Hash; allowed traits: Debug, Clone` `unknown attribute: foo`
type Shape interface{ isShape() }

//kinded:variant(rename = "disc", rename = "round") // want `duplicated attribute: rename`
type Circle struct{ Radius float64 }

func (Circle) isShape() {}

//kinded:derive(attrs(a,,b)) // want `empty attribute`
type Tool interface{ isTool() }

//kinded:variant(attrs("a\nb")) // want `attribute must be a single line`
type Hammer struct{}

func (Hammer) isTool() {}
