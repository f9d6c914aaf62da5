package ast

import (
	"fmt"
	"strings"

	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/types"
)

// Declarator names one entity and its fully-composed type; it is the
// persisted result of the declarator-constructor list spec §4.6
// describes (the pointer/array/function constructor chain itself is
// transient parser state, released once the base type has been
// wrapped — see parser.parseDeclarator).
type Declarator struct {
	BaseNode
	Name *symbol.Symbol // nil for an abstract declarator (cast/sizeof type-name, parameter without a name)
	Type types.Type
}

func (n *Declarator) GetChildren() []Node { return nil }
func (n *Declarator) String() string {
	if n.Name == nil {
		return n.Type.String()
	}
	return fmt.Sprintf("%s %s", n.Type.String(), n.Name.Name)
}

// Parameter is one entry of a function's parameter-type list (spec
// §4.7); Name is nil for an unnamed prototype parameter.
type Parameter struct {
	BaseNode
	Name *symbol.Symbol
	Type types.Type
}

func (n *Parameter) GetChildren() []Node { return nil }
func (n *Parameter) String() string {
	if n.Name == nil {
		return n.Type.String()
	}
	return fmt.Sprintf("%s %s", n.Type.String(), n.Name.Name)
}

// InitDeclarator pairs a Declarator with its optional initializer
// (spec §4.10): `int x = 1` inside a declaration-statement's
// comma-separated declarator list.
type InitDeclarator struct {
	BaseNode
	Decl *Declarator
	Init Initializer
}

func (n *InitDeclarator) GetChildren() []Node {
	if n.Init != nil {
		return []Node{n.Decl, n.Init}
	}
	return []Node{n.Decl}
}
func (n *InitDeclarator) String() string {
	if n.Init != nil {
		return n.Decl.String() + " = " + n.Init.String()
	}
	return n.Decl.String()
}

// FunctionDefinition is a function declarator followed by a compound-
// statement body (spec §2 "translation unit", §4.11 "function
// definitions additionally run checks on main").
type FunctionDefinition struct {
	BaseNode
	Decl   *Declarator
	Params []*Parameter // K&R parameter-declaration-list types, if any
	Body   *CompoundStatement
}

func (n *FunctionDefinition) GetChildren() []Node {
	children := make([]Node, 0, len(n.Params)+2)
	children = append(children, n.Decl)
	for _, p := range n.Params {
		children = append(children, p)
	}
	children = append(children, n.Body)
	return children
}
func (n *FunctionDefinition) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s) %s", n.Decl.String(), strings.Join(params, ", "), n.Body.String())
}
func (n *FunctionDefinition) externalDeclarationNode() {}

// TranslationUnit is the root node: a source-ordered list of function
// definitions and declaration statements (spec §2 data flow).
type TranslationUnit struct {
	BaseNode
	Decls []ExternalDeclaration
}

func (n *TranslationUnit) GetChildren() []Node {
	out := make([]Node, len(n.Decls))
	for i, d := range n.Decls {
		out[i] = d
	}
	return out
}
func (n *TranslationUnit) String() string {
	parts := make([]string, len(n.Decls))
	for i, d := range n.Decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n\n")
}
