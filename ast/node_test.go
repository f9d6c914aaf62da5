package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azw413/cparser/symbol"
)

type countingVisitor struct {
	kinds []Kind
}

func (v *countingVisitor) Visit(n Node) bool {
	v.kinds = append(v.kinds, n.GetKind())
	return true
}

func TestWalkVisitsEveryDescendant(t *testing.T) {
	decl := &Declarator{BaseNode: BaseNode{NodeKind: KindDeclarator}, Name: &symbol.Symbol{Name: "x"}}
	init := &ExprInitializer{BaseNode: BaseNode{NodeKind: KindExprInitializer}, Value: intLit(1)}
	id := &InitDeclarator{BaseNode: BaseNode{NodeKind: KindInitDeclarator}, Decl: decl, Init: init}
	stmt := &DeclarationStatement{StmtBase: StmtBase{BaseNode: BaseNode{NodeKind: KindDeclarationStatement}}, Declarators: []*InitDeclarator{id}}

	v := &countingVisitor{}
	Walk(v, stmt)

	assert.Contains(t, v.kinds, KindDeclarationStatement)
	assert.Contains(t, v.kinds, KindInitDeclarator)
	assert.Contains(t, v.kinds, KindDeclarator)
	assert.Contains(t, v.kinds, KindExprInitializer)
	assert.Contains(t, v.kinds, KindIntLiteral)
}

type stoppingVisitor struct {
	visited int
}

func (v *stoppingVisitor) Visit(n Node) bool {
	v.visited++
	return false
}

func TestWalkStopsWhenVisitReturnsFalse(t *testing.T) {
	decl := &Declarator{BaseNode: BaseNode{NodeKind: KindDeclarator}}
	id := &InitDeclarator{BaseNode: BaseNode{NodeKind: KindInitDeclarator}, Decl: decl}

	v := &stoppingVisitor{}
	Walk(v, id)
	assert.Equal(t, 1, v.visited, "a false return must skip descending into children")
}

func TestWalkOnNilNodeIsNoop(t *testing.T) {
	v := &countingVisitor{}
	Walk(v, nil)
	assert.Empty(t, v.kinds)
}

func TestGetAttributesLazilyAllocates(t *testing.T) {
	b := &BaseNode{NodeKind: KindDeclarator}
	attrs := b.GetAttributes()
	assert.NotNil(t, attrs)
	attrs["foo"] = "bar"
	assert.Equal(t, "bar", b.GetAttributes()["foo"])
}
