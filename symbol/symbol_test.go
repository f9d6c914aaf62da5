package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableInsertIsStable(t *testing.T) {
	table := NewTable()
	a := table.Insert("foo")
	b := table.Insert("foo")
	assert.Same(t, a, b)

	c := table.Insert("bar")
	assert.NotSame(t, a, c)
}

func TestTableDeclByID(t *testing.T) {
	table := NewTable()
	d1 := table.NewDecl()
	d2 := table.NewDecl()
	assert.NotEqual(t, d1.ID, d2.ID)
	assert.Same(t, d1, table.DeclByID(d1.ID))
	assert.Same(t, d2, table.DeclByID(d2.ID))
	assert.Nil(t, table.DeclByID(DeclID(999)))
}

func TestScopeAppendAndDeclarations(t *testing.T) {
	scope := NewScope(nil)
	sym := &Symbol{Name: "x"}
	d := &Declaration{Symbol: sym}
	scope.Append(d)
	assert.Same(t, scope, d.OwningScope)

	decls := scope.Declarations()
	if assert.Len(t, decls, 1) {
		assert.Same(t, d, decls[0])
	}
}

func TestDeclarationModifiers(t *testing.T) {
	d := &Declaration{}
	assert.False(t, d.IsInline())
	d.SetInline()
	assert.True(t, d.IsInline())

	assert.False(t, d.IsUsed())
	d.SetUsed()
	assert.True(t, d.IsUsed())
	assert.True(t, d.IsInline(), "setting Used must not clear Inline")
}

func TestSymbolNamespaceLookup(t *testing.T) {
	sym := &Symbol{Name: "Point"}
	assert.Nil(t, sym.Namespace(NSStructTag))

	env := NewEnvironmentStack()
	d := &Declaration{Symbol: sym, Namespace: NSStructTag}
	env.Push(d)
	assert.Same(t, d, sym.Namespace(NSStructTag))

	env.PopTo(0)
	assert.Nil(t, sym.Namespace(NSStructTag))
}
