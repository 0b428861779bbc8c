package drink

//kinded:derives // want `unknown directive: kinded:derives`
type Food interface{ isFood() }

//kinded:derive
type Drink interface{ isDrink() }

type Mate struct{}

func (Mate) isDrink() {}

func (Mate) Kind() int { return 0 } // want `Mate already has a Kind method`

//kinded:variant(rename = "still")
//kinded:variant(rename = "sparkling") // want `multiple kinded:variant directives are not allowed on Water`
type Water struct{}

func (Water) isDrink() {}

//kinded:variant(rename = "sourdough") // want `Bread is not a variant of any enum deriving kinded`
type Bread struct{}

func serve() {
	//kinded:derive // want `misplaced directive: kinded:derive must be in the doc comment of a type declaration`
	type Local interface{ isLocal() }
}

var _ = serve
