package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaInternIsIdempotent(t *testing.T) {
	a := NewArena()
	t1 := a.Atomic(Int)
	t2 := a.Atomic(Int)
	assert.Same(t, t1, t2, "repeated Atomic(Int) must share one pointer")

	p1 := a.PointerTo(t1)
	p2 := a.PointerTo(t2)
	assert.Same(t, p1, p2)
}

func TestArenaInternDistinguishesQualifiers(t *testing.T) {
	a := NewArena()
	plain := a.Atomic(Int)
	constInt := a.Qualify(plain, Const)
	assert.NotSame(t, plain, constInt)
	assert.Equal(t, Const, constInt.Quals())
	assert.Same(t, constInt, a.Qualify(a.Atomic(Int), Const))
}

func TestArenaTagTypesOptOutOfInterning(t *testing.T) {
	a := NewArena()
	t1 := &Tag{TagKind: KindStruct, Decl: 1, Name: "Point"}
	t2 := &Tag{TagKind: KindStruct, Decl: 1, Name: "Point"}
	i1 := a.Intern(t1)
	i2 := a.Intern(t2)
	assert.Same(t, t1, i1, "tag interning must pass the value through unchanged")
	assert.NotSame(t, i1, i2, "two distinct Tag values are never unified even with equal fields")
}

func TestArenaQualifyPointerLeavesPointeeAlone(t *testing.T) {
	a := NewArena()
	elem := a.Atomic(Int)
	ptr := a.PointerTo(elem)
	constPtr := a.Qualify(ptr, Const)
	cp, ok := constPtr.(*Pointer)
	if assert.True(t, ok) {
		assert.Same(t, elem, cp.Elem)
		assert.Equal(t, Const, cp.Qual)
	}
}

func TestConstSize(t *testing.T) {
	var s SizeExpr = ConstSize(7)
	assert.True(t, s.IsConstantExpression())
	v, ok := s.ConstIntValue()
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestArenaArrayOfIncompleteSize(t *testing.T) {
	a := NewArena()
	elem := a.Atomic(Char)
	arr := a.ArrayOf(elem, nil)
	assert.Equal(t, "char[?]", arr.String())
}
