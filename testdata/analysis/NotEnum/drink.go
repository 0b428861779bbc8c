package drink

//kinded:derive // want `kinded can only be derived on enums; Drink is not an interface`
type Drink struct{ Name string }

//kinded:derive // want `kinded can only be derived on enums; Number is not an interface`
type Number interface{ ~int | ~float64 }

//kinded:derive(kind = int) // want `cannot use int as kind name: predeclared identifier`
type Food interface{ isFood() }

type Bread struct{}

func (Bread) isFood() {}

//kinded:derive(kind = _) // want `cannot use _ as kind name`
type Shape interface{ isShape() }

type Circle struct{}

func (Circle) isShape() {}
