package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassScopeIndices(t *testing.T) {
	c := NewClassScope("Foo")
	x := c.AddField("x", "int")
	y := c.AddField("y", "int")
	s := c.AddStatic("count", "int")

	require.Equal(t, uint16(0), x.Index)
	require.Equal(t, uint16(1), y.Index)
	require.Equal(t, uint16(0), s.Index)
	require.Equal(t, uint16(2), c.Count(Field))
	require.Equal(t, uint16(1), c.Count(Static))

	got, ok := c.Get("y")
	require.True(t, ok)
	require.Equal(t, y, got)

	_, ok = c.Get("nope")
	require.False(t, ok)
}

func TestMethodScopeReservesThis(t *testing.T) {
	class := NewClassScope("Foo")
	sub := NewSubroutineScope(class, "bar", Method, "void")

	this, ok := sub.Get("this")
	require.True(t, ok)
	require.Equal(t, Symbol{Kind: Arg, Type: "Foo", Index: 0}, this)

	y := sub.AddArg("y", "int")
	require.Equal(t, uint16(1), y.Index)
}

func TestFunctionScopeHasNoImplicitThis(t *testing.T) {
	class := NewClassScope("Foo")
	sub := NewSubroutineScope(class, "bar", Function, "void")

	_, ok := sub.Get("this")
	require.False(t, ok)

	a := sub.AddArg("a", "int")
	require.Equal(t, uint16(0), a.Index)
}

func TestSubroutineScopeFallsBackToClass(t *testing.T) {
	class := NewClassScope("Foo")
	class.AddField("shared", "int")

	sub := NewSubroutineScope(class, "bar", Function, "void")
	sym, ok := sub.Get("shared")
	require.True(t, ok)
	require.Equal(t, Field, sym.Kind)
}

func TestSubroutineScopeShadowsClass(t *testing.T) {
	class := NewClassScope("Foo")
	class.AddField("x", "int")

	sub := NewSubroutineScope(class, "bar", Function, "void")
	sub.AddVar("x", "boolean")

	sym, ok := sub.Get("x")
	require.True(t, ok)
	require.Equal(t, Var, sym.Kind)
}

func TestVarAndFieldCounts(t *testing.T) {
	class := NewClassScope("Foo")
	class.AddField("a", "int")
	class.AddField("b", "int")

	sub := NewSubroutineScope(class, "ctor", Constructor, "Foo")
	sub.AddVar("tmp", "int")

	require.Equal(t, uint16(2), sub.FieldCount())
	require.Equal(t, uint16(1), sub.VarCount())
}
