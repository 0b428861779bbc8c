package main

import "fmt"

//kinded:derive
type Drink interface{ isDrink() }

type HotMate struct{ Temperature int }
type Calabaza struct{}

func (HotMate) isDrink()  {}
func (Calabaza) isDrink() {}

func main() {
	for _, s := range []string{
		"hot_mate",
		"hotMate",
		"HotMate",
		"HOT_MATE",
		"hot-mate",
		"HOT-MATE",
		"Hot Mate",
		"hotmate",
		"HOTMATE",
		"calabaza",
		"CALABAZA",
		"Calabaza",
		"Hot_Mate",
		"hot mate",
	} {
		k, err := ParseDrinkKind(s)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(s, "=>", k)
	}
}
