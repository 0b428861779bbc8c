package main

//kinded:derive(display = "snake")
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

//kinded:variant(rename = "sourdough")
type Bread struct{}

func main() {}
