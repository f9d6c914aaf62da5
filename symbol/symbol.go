// Package symbol implements the process-wide symbol table (spec §4.1),
// the Declaration/Scope model of spec §3, and the environment/label
// push-down stacks of spec §4.4. Declaration and Scope are kept in one
// package because their fields reference each other directly
// (Declaration.OwningScope, Scope's declaration chain) the way the
// original C implementation keeps declaration_t and scope_t in one
// translation unit; splitting them would only trade a real coupling
// for an import-cycle workaround.
package symbol

import (
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// Namespace is one of the disjoint identifier spaces a given symbol may
// be separately declared in (spec §3 Declaration, glossary "Namespace").
type Namespace int

const (
	NSOrdinary Namespace = iota
	NSStructTag
	NSUnionTag
	NSEnumTag
	NSLabel
	nsCount
)

// StorageClass enumerates the storage classes a Declaration may carry.
type StorageClass int

const (
	SCNone StorageClass = iota
	SCTypedef
	SCExtern
	SCStatic
	SCAuto
	SCRegister
	SCEnumEntry
	SCThread
	SCThreadExtern
	SCThreadStatic
)

// Modifier is a bitmask of declaration flags.
type Modifier uint8

const (
	ModInline Modifier = 1 << iota
	ModAddressTaken
	ModUsed
)

// Builtin identifies a compiler-intrinsic name. Table.Insert creates
// every Symbol with BuiltinNone and nothing in this module sets another
// value; the intrinsics are recognized as keyword tokens instead.
type Builtin int

const (
	BuiltinNone Builtin = iota
	BuiltinVaList
	BuiltinClassifyType
	BuiltinExtension
)

// Symbol is an interned identifier. Table.Insert is insertion-stable:
// equal byte sequences always yield the same *Symbol (spec §4.1).
type Symbol struct {
	Name    string
	Builtin Builtin

	// namespaces[ns] is the head of the namespace chain for ns: the
	// most recently visible Declaration, or nil. EnvironmentStack is
	// what pushes and pops this head as scopes are entered and left
	// (spec §4.4, invariant I4).
	namespaces [nsCount]*Declaration
}

// Namespace returns the current (most recently visible) declaration of
// sym in ns, or nil (spec §4.1 lookup).
func (s *Symbol) Namespace(ns Namespace) *Declaration {
	return s.namespaces[ns]
}

// DeclID is the public alias of types.DeclID: the opaque handle a
// types.Tag or types.Alias uses to refer back to the Declaration that
// introduced it, without package types importing this package (spec §9
// Design Notes).
type DeclID = types.DeclID

// KindSlot is the per-declaration payload that differs by what the
// declaration denotes: an initializer for an object, a function-body
// statement, an enum-value expression, or nil for a tag not yet
// defined. Concrete slot values are ast nodes; declared as an opaque
// interface here so this package need not import ast.
type KindSlot interface{}

// Declaration describes one named entity (spec §3 Declaration).
type Declaration struct {
	ID DeclID

	Symbol    *Symbol
	Namespace Namespace
	Storage   StorageClass
	Type      types.Type
	Pos       token.Position
	Modifiers Modifier

	OwningScope *Scope

	Slot KindSlot

	Defined bool // for tag declarations: true once the body has been parsed

	// Next threads all declarations of OwningScope in source order
	// (spec invariant I3).
	Next *Declaration
	// SymbolNext is set by EnvironmentStack.Push and LabelStack.Push to
	// the previous head of this declaration's own namespace chain;
	// declarations of Symbol in other namespaces are not linked
	// through it.
	SymbolNext *Declaration

	shadowed *Declaration // this declaration's predecessor in its namespace chain
}

func (d *Declaration) IsInline() bool       { return d.Modifiers&ModInline != 0 }
func (d *Declaration) IsAddressTaken() bool { return d.Modifiers&ModAddressTaken != 0 }
func (d *Declaration) IsUsed() bool         { return d.Modifiers&ModUsed != 0 }
func (d *Declaration) SetInline()           { d.Modifiers |= ModInline }
func (d *Declaration) SetAddressTaken()     { d.Modifiers |= ModAddressTaken }
func (d *Declaration) SetUsed()             { d.Modifiers |= ModUsed }

// Scope is an ordered list of declarations plus a parent (spec §3
// Scope). Scopes nest for function bodies, blocks, struct/union
// bodies, and for-statement headers.
type Scope struct {
	Parent *Scope
	head   *Declaration
	tail   *Declaration
}

// NewScope creates a scope nested under parent (parent may be nil for
// the file/global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent}
}

// Append adds d to the end of the scope's declaration chain in source
// order (spec invariant I3) and returns d.
func (s *Scope) Append(d *Declaration) *Declaration {
	d.OwningScope = s
	if s.tail == nil {
		s.head = d
		s.tail = d
	} else {
		s.tail.Next = d
		s.tail = d
	}
	return d
}

// Declarations returns the scope's declaration chain in source order.
// Callers observe declarations through this iteration method rather
// than walking Next directly (spec §9 Design Notes).
func (s *Scope) Declarations() []*Declaration {
	var out []*Declaration
	for d := s.head; d != nil; d = d.Next {
		out = append(out, d)
	}
	return out
}
