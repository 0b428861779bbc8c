package drink

//kinded:derive // want `cannot generate ParseDrinkKind: already declared at`
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

func ParseDrinkKind(s string) int { return len(s) }

//kinded:derive(kind = Kind)
type Food interface{ isFood() }

//kinded:derive(kind = Kind) // want `cannot generate Kind for Tool: also generated for Food` `cannot generate ParseKind for Tool` `cannot generate KindOf for Tool` `cannot generate KindOfPtr for Tool`
type Tool interface{ isTool() }

type Bread struct{}

func (Bread) isFood() {}

type Hammer struct{}

func (Hammer) isTool() {}
