package main

import (
	"errors"
	"fmt"

	"github.com/sublee/kinded"
	"github.com/sublee/kinded/pkg/kindederrors"
)

//kinded:derive
type Drink interface{ isDrink() }

type Mate struct{}
type Coffee struct{ Roast string }
type Tea [2]string

func (Mate) isDrink()   {}
func (Coffee) isDrink() {}
func (Tea) isDrink()    {}

func main() {
	var d Drink = Coffee{Roast: "dark"}
	fmt.Println(DrinkKindOf(d))
	fmt.Println(d.(kinded.Kinded[DrinkKind]).Kind() == DrinkKindCoffee)
	fmt.Printf("%#v\n", DrinkKindTea)
	fmt.Println(DrinkKind(0).All())
	fmt.Println(kinded.All[DrinkKind]())

	k, err := ParseDrinkKind("coffee")
	fmt.Println(k, err)

	_, err = ParseDrinkKind("Juice")
	fmt.Println(err)
	fmt.Println(errors.Is(err, kindederrors.ErrParseKind))

	var perr *kindederrors.ParseKindError
	if errors.As(err, &perr) {
		fmt.Println(perr.KindType(), perr.Given())
	}

	fmt.Println(DrinkKindOf(nil) == 0)
	fmt.Println(DrinkKindOfPtr(nil) == 0)
	fmt.Println(DrinkKindOfPtr(&d))

	k, ok := kinded.KindOf[DrinkKind](Mate{})
	fmt.Println(k, ok)
	_, ok = kinded.KindOf[DrinkKind]("mate")
	fmt.Println(ok)

	fmt.Println(DrinkKind(7))
	fmt.Println(DrinkKindMate.Equal(DrinkKindMate.Clone()))
}
