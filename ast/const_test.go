package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azw413/cparser/token"
)

func intLit(v uint64) *IntLiteral {
	return &IntLiteral{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindIntLiteral}}, Value: v}
}

func TestEvalConstIntArithmetic(t *testing.T) {
	// (2 + 3) * 4 == 20
	sum := &BinaryExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindBinaryExpr}}, Op: token.PLUS, Left: intLit(2), Right: intLit(3)}
	prod := &BinaryExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindBinaryExpr}}, Op: token.STAR, Left: sum, Right: intLit(4)}

	v, ok := prod.ConstIntValue()
	assert.True(t, ok)
	assert.Equal(t, int64(20), v)
}

func TestEvalConstIntDivisionByZeroIsNotConstant(t *testing.T) {
	div := &BinaryExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindBinaryExpr}}, Op: token.SLASH, Left: intLit(1), Right: intLit(0)}
	_, ok := div.ConstIntValue()
	assert.False(t, ok)
}

func TestEvalConstIntUnaryAndParen(t *testing.T) {
	neg := &UnaryExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindUnaryExpr}}, Op: token.MINUS, Operand: intLit(5)}
	paren := &ParenExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindParenExpr}}, Inner: neg}

	v, ok := paren.ConstIntValue()
	assert.True(t, ok)
	assert.Equal(t, int64(-5), v)
	assert.True(t, paren.IsConstantExpression())
}

func TestEvalConstIntConditional(t *testing.T) {
	cond := &ConditionalExpr{
		ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindConditionalExpr}},
		Cond:     intLit(0),
		Then:     intLit(1),
		Else:     intLit(2),
	}
	v, ok := cond.ConstIntValue()
	assert.True(t, ok)
	assert.Equal(t, int64(2), v, "false condition selects the else-branch")
}

func TestEvalConstIntCallIsNotConstant(t *testing.T) {
	call := &CallExpr{ExprBase: ExprBase{BaseNode: BaseNode{NodeKind: KindCallExpr}}}
	assert.False(t, call.IsConstantExpression())
}
