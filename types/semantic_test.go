package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoteInteger(t *testing.T) {
	a := NewArena()
	assert.Same(t, a.Atomic(Int), a.PromoteInteger(a.Atomic(Char)))
	assert.Same(t, a.Atomic(Int), a.PromoteInteger(a.Atomic(Short)))
	assert.Same(t, a.Atomic(UnsignedInt), a.PromoteInteger(a.Atomic(UnsignedInt)))
	assert.Same(t, a.Atomic(Long), a.PromoteInteger(a.Atomic(Long)))
}

func TestArithmeticConversions(t *testing.T) {
	a := NewArena()

	// int + double -> double
	res := a.Arithmetic(a.Atomic(Int), a.Atomic(Double))
	assert.Equal(t, Double, res.(*Basic).AKind)

	// char + char -> int (both promote first)
	res = a.Arithmetic(a.Atomic(Char), a.Atomic(Char))
	assert.Equal(t, Int, res.(*Basic).AKind)

	// int + unsigned int -> unsigned int (same rank, unsigned wins)
	res = a.Arithmetic(a.Atomic(Int), a.Atomic(UnsignedInt))
	assert.Equal(t, UnsignedInt, res.(*Basic).AKind)

	// long + int -> long (higher rank wins when same signedness)
	res = a.Arithmetic(a.Atomic(Long), a.Atomic(Int))
	assert.Equal(t, Long, res.(*Basic).AKind)

	// float + long double -> long double
	res = a.Arithmetic(a.Atomic(Float), a.Atomic(LongDouble))
	assert.Equal(t, LongDouble, res.(*Basic).AKind)
}

func TestIsNullPointerConstant(t *testing.T) {
	a := NewArena()
	zero := &fakeConstExpr{t: a.Atomic(Int), val: 0, constant: true}
	one := &fakeConstExpr{t: a.Atomic(Int), val: 1, constant: true}
	nonConst := &fakeConstExpr{t: a.Atomic(Int), val: 0, constant: false}

	assert.True(t, IsNullPointerConstant(zero))
	assert.False(t, IsNullPointerConstant(one))
	assert.False(t, IsNullPointerConstant(nonConst))
	assert.False(t, IsNullPointerConstant(nil))
}

type fakeConstExpr struct {
	t        Type
	val      int64
	constant bool
}

func (f *fakeConstExpr) ExprType() Type                { return f.t }
func (f *fakeConstExpr) IsConstantExpression() bool     { return f.constant }
func (f *fakeConstExpr) ConstIntValue() (int64, bool) {
	if !f.constant {
		return 0, false
	}
	return f.val, true
}

func TestAssignArithmeticAlwaysOK(t *testing.T) {
	a := NewArena()
	cast := a.Assign(a.Atomic(Double), a.Atomic(Int), false)
	assert.NotNil(t, cast)
	assert.Equal(t, Double, cast.(*Basic).AKind)
}

func TestAssignPointerQualifierRules(t *testing.T) {
	a := NewArena()
	constInt := a.Qualify(a.Atomic(Int), Const)
	plainInt := a.Atomic(Int)

	// int* = const int* is rejected: assigning away const.
	toPlain := a.PointerTo(plainInt)
	fromConst := a.PointerTo(constInt)
	assert.Nil(t, a.Assign(toPlain, fromConst, false))

	// const int* = int* is fine: adding const is always safe.
	toConst := a.PointerTo(constInt)
	fromPlain := a.PointerTo(plainInt)
	assert.NotNil(t, a.Assign(toConst, fromPlain, false))
}

func TestAssignNullPointerConstantToAnyPointer(t *testing.T) {
	a := NewArena()
	ptr := a.PointerTo(a.Atomic(Int))
	assert.NotNil(t, a.Assign(ptr, a.Atomic(Int), true))
}

func TestAssignIncompatibleTypesRejected(t *testing.T) {
	a := NewArena()
	ptr := a.PointerTo(a.Atomic(Int))
	assert.Nil(t, a.Assign(ptr, a.Atomic(Double), false))
}

func TestCompatibleStructuralTypes(t *testing.T) {
	a := NewArena()
	arr1 := &Array{Elem: a.Atomic(Int), Size: ConstSize(4)}
	arr2 := &Array{Elem: a.Atomic(Int), Size: ConstSize(4)}
	assert.True(t, Compatible(arr1, arr2))

	arr3 := &Array{Elem: a.Atomic(Int), Size: ConstSize(5)}
	assert.False(t, Compatible(arr1, arr3))
}

func TestConditionalResultArithmeticPromotes(t *testing.T) {
	a := NewArena()
	res := a.ConditionalResult(a.Atomic(Int), a.Atomic(Double))
	assert.Equal(t, Double, res.(*Basic).AKind)
}

func TestConditionalResultVoidPointerUnifies(t *testing.T) {
	a := NewArena()
	voidPtr := a.PointerTo(a.Atomic(Void))
	intPtr := a.PointerTo(a.Atomic(Int))
	res := a.ConditionalResult(voidPtr, intPtr)
	assert.Equal(t, intPtr, res)
}
