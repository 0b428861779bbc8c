package main

import "fmt"

// Shape keeps only the debug form and equality.
//
//kinded:derive(skip_derive(Clone, Copy, Display, FromStr, From))
type Shape interface{ Area() float64 }

type Circle struct{ R float64 }
type Square struct{ Side float64 }

func (c Circle) Area() float64 { return 3 * c.R * c.R }
func (s Square) Area() float64 { return s.Side * s.Side }

// Debug and PartialEq are skipped but derived again.
//
//kinded:derive(skip_derive(Debug, PartialEq), derive(Debug, PartialEq, Hash))
type Color interface{ RGB() (r, g, b uint8) }

type Red struct{}
type Green struct{}

func (Red) RGB() (uint8, uint8, uint8)   { return 255, 0, 0 }
func (Green) RGB() (uint8, uint8, uint8) { return 0, 255, 0 }

func main() {
	var s Shape = Square{Side: 2}
	k := s.(interface{ Kind() ShapeKind }).Kind()
	fmt.Printf("%#v %v %v\n", k, k.Equal(ShapeKindSquare), s.Area())
	fmt.Println(int(ShapeKindCircle), int(ShapeKindSquare))

	for _, c := range ColorKind(0).All() {
		fmt.Printf("%v %#v\n", c, c)
	}
	fmt.Println(ColorKindOf(Green{}).Equal(ColorKindGreen))
}
