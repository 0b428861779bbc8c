package typeinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/kinded/internal/typeinfo"
)

func TestImplements(t *testing.T) {
	_, _, pkg, err := parse(`
package p

type Drink interface {
	isDrink()
	Kind() int
}

type Mate struct{}
type Coffee string
type Tea struct{}
type Water struct{}

func (Mate) isDrink()    {}
func (*Coffee) isDrink() {}
func (Tea) isDrink(int)  {}
`)
	require.NoError(t, err)

	iface := lookupType(t, pkg, "Drink").Interface
	var ms typeinfo.MethodSets

	ok, ptr := ms.Implements(lookupType(t, pkg, "Mate"), iface, "Kind")
	assert.True(t, ok)
	assert.False(t, ptr)

	ok, ptr = ms.Implements(lookupType(t, pkg, "Coffee"), iface, "Kind")
	assert.True(t, ok)
	assert.True(t, ptr)

	ok, _ = ms.Implements(lookupType(t, pkg, "Tea"), iface, "Kind")
	assert.False(t, ok, "signature mismatch")

	ok, _ = ms.Implements(lookupType(t, pkg, "Water"), iface, "Kind")
	assert.False(t, ok)

	ok, _ = ms.Implements(lookupType(t, pkg, "Mate"), iface)
	assert.False(t, ok, "Kind is required unless excepted")
}

func TestImplementsGeneric(t *testing.T) {
	_, _, pkg, err := parse(`
package p

type Maybe[T any] interface{ isMaybe() }

type Just[T any] struct{ v T }
type Nothing struct{}

func (Just[T]) isMaybe()  {}
func (Nothing) isMaybe()  {}
`)
	require.NoError(t, err)

	iface := lookupType(t, pkg, "Maybe").Interface
	var ms typeinfo.MethodSets

	ok, _ := ms.Implements(lookupType(t, pkg, "Just"), iface)
	assert.True(t, ok)

	ok, _ = ms.Implements(lookupType(t, pkg, "Nothing"), iface)
	assert.True(t, ok)
}

func TestImplementsNoMethods(t *testing.T) {
	_, _, pkg, err := parse(`
package p

type Any interface{ Kind() int }
type Mate struct{}
`)
	require.NoError(t, err)

	iface := lookupType(t, pkg, "Any").Interface
	var ms typeinfo.MethodSets

	ok, _ := ms.Implements(lookupType(t, pkg, "Mate"), iface, "Kind")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	_, _, pkg, err := parse(`
package p

type Mate struct{}

func (Mate) Kind() int { return 0 }
func (*Mate) private() {}
`)
	require.NoError(t, err)

	var ms typeinfo.MethodSets
	mate := lookupType(t, pkg, "Mate")

	fn, ok := ms.Lookup(mate, nil, "Kind")
	require.True(t, ok)
	assert.Equal(t, "Kind", fn.Name())

	_, ok = ms.Lookup(mate, pkg, "private")
	assert.False(t, ok, "pointer method is not in the value method set")

	_, ok = ms.Lookup(mate.Ref(), pkg, "private")
	assert.True(t, ok)
}
