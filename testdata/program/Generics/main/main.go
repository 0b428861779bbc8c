package main

import (
	"cmp"
	"fmt"
)

//kinded:derive(kind = ResultKind)
type Result[T any, E cmp.Ordered] interface{ isResult() }

type Ok[T any] struct{ Value T }
type Err[E cmp.Ordered] struct{ Reason E }
type Pending struct{}

func (Ok[T]) isResult()   {}
func (Err[E]) isResult()  {}
func (Pending) isResult() {}

// node is unexported, so is its kind type.
//
//kinded:derive
type node interface{ isNode() }

type leaf struct{ value int }
type branch struct{ left, right node }

func (*leaf) isNode()   {}
func (*branch) isNode() {}

func main() {
	var r Result[string, int] = Err[int]{Reason: 404}
	fmt.Println(ResultKindOf(r))
	fmt.Println(ResultKindOf[string, int](Ok[string]{Value: "done"}))
	fmt.Println(ResultKindOf[string, int](nil) == 0)
	fmt.Println(Pending{}.Kind(), Ok[float64]{}.Kind())

	var n node = &branch{left: &leaf{1}, right: &leaf{2}}
	fmt.Println(nodeKindOf(n), nodeKindOf(n.(*branch).left))
	k, err := parseNodeKind("LEAF")
	fmt.Println(k, err)
	fmt.Println((&leaf{}).Kind() == nodeKindLeaf)

	var nilLeaf *leaf
	fmt.Println(nodeKindOf(nilLeaf), nilLeaf.Kind())
}
