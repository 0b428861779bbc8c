package drink

//kinded:derive
type Drink interface{ isDrink() } // want `Drink has no variants`

//kinded:derive
//kinded:derive(derive(Hash)) // want `multiple kinded:derive directives are not allowed on Food`
type Food interface{ isFood() }

type Bread struct{}

func (Bread) isFood() {}
