package drink

//kinded:derive(derive(Serde)) // want `unsupported trait to derive: Serde; supported traits: Debug, Clone, Copy, PartialEq, Eq, Display, FromStr, From, Hash, PartialOrd, Ord, Serialize, Deserialize`
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

//kinded:derive(derive(Serialize, Deserialize), skip_derive(Display, FromStr)) // want `cannot derive Serialize for FoodKind: Display is skipped` `cannot derive Deserialize for FoodKind: FromStr is skipped`
type Food interface{ isFood() }

type Bread struct{}

func (Bread) isFood() {}

//kinded:derive(derive(Hash, PartialOrd, Ord, Serialize, Deserialize))
type Shape interface{ isShape() }

type Circle struct{}

func (Circle) isShape() {}
