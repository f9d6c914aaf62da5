package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentStackShadowing(t *testing.T) {
	table := NewTable()
	sym := table.Insert("x")
	env := NewEnvironmentStack()

	outer := &Declaration{Symbol: sym, Namespace: NSOrdinary}
	env.Push(outer)
	assert.Same(t, outer, sym.Namespace(NSOrdinary))

	mark := env.Mark()
	inner := &Declaration{Symbol: sym, Namespace: NSOrdinary}
	env.Push(inner)
	assert.Same(t, inner, sym.Namespace(NSOrdinary), "inner block's declaration shadows the outer one")

	env.PopTo(mark)
	assert.Same(t, outer, sym.Namespace(NSOrdinary), "leaving the block restores the outer declaration")
}

func TestLabelStackPatchesOwningScope(t *testing.T) {
	table := NewTable()
	sym := table.Insert("done")
	labels := NewLabelStack()
	funcScope := NewScope(nil)
	blockScope := NewScope(funcScope)

	d := &Declaration{Symbol: sym, Namespace: NSLabel}
	blockScope.Append(d)
	labels.Push(d, funcScope)

	assert.Same(t, funcScope, d.OwningScope, "labels have function scope regardless of lexical position")
	assert.Same(t, d, sym.Namespace(NSLabel))

	labels.PopTo(0)
	assert.Nil(t, sym.Namespace(NSLabel))
}
