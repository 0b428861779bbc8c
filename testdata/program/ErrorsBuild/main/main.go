package main

//kinded:derive(derive(Serialize), skip_derive(Display))
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

func DrinkKindOf(Drink) int { return 0 }

func main() {}
