// Package ast implements the syntactic node hierarchy of spec §3/§4:
// statements, expressions, declarators, and initializers, each tagged
// with its defining token's source position and, for expressions, the
// type attached by the semantic rule that produced it.
//
// Structurally this follows the teacher's ast package: one concrete Go
// struct per node kind embedding a common BaseNode, a Kind enum plus
// name table, an encoding/json ToJSON for AST dumping, and a Visitor
// interface walked via GetChildren rather than a single tagged-union
// node type.
package ast

import (
	"encoding/json"

	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// Node is the common interface implemented by every AST node.
type Node interface {
	GetKind() Kind
	GetPosition() token.Position
	GetAttributes() map[string]interface{}
	GetChildren() []Node
	String() string
	ToJSON() ([]byte, error)
	Accept(v Visitor)
}

// Statement is implemented by every statement node (spec §4.9).
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression node (spec §4.8). It
// additionally satisfies types.ConstExpr so array sizes, bitfield
// widths, and the null-pointer-constant check (spec §4.8 "Pointer
// assignability") can consume an Expression without package types
// importing ast.
type Expression interface {
	Node
	types.ConstExpr
	expressionNode()
}

// Initializer is implemented by the two initializer shapes of spec
// §4.10: a bare assignment-expression or a brace-enclosed list.
type Initializer interface {
	Node
	initializerNode()
}

// Designator is implemented by the two designator shapes spec §4.10
// parses (but, per the Open Questions decision in DESIGN.md, does not
// match against the target structure): `[index]` and `.field`.
type Designator interface {
	Node
	designatorNode()
}

// ExternalDeclaration is implemented by the two top-level constructs a
// translation unit is made of: a function definition or a declaration
// statement (spec §2 "translation unit").
type ExternalDeclaration interface {
	Node
	externalDeclarationNode()
}

// Visitor traverses a Node tree depth-first; Visit returning false
// skips the node's children.
type Visitor interface {
	Visit(n Node) bool
}

// Walk drives v over node and its descendants.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v.Visit(node) {
		for _, child := range node.GetChildren() {
			Walk(v, child)
		}
	}
}

// BaseNode supplies the fields and default methods common to every
// node; concrete node types embed it and override GetChildren and
// String, and use its Accept unchanged.
type BaseNode struct {
	NodeKind   Kind                   `json:"kind"`
	Pos        token.Position         `json:"position"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

func (b *BaseNode) GetKind() Kind                        { return b.NodeKind }
func (b *BaseNode) GetPosition() token.Position          { return b.Pos }
func (b *BaseNode) GetChildren() []Node                  { return nil }
func (b *BaseNode) String() string                       { return b.NodeKind.String() }
func (b *BaseNode) ToJSON() ([]byte, error)               { return json.MarshalIndent(b, "", "  ") }
func (b *BaseNode) Accept(v Visitor)                      { v.Visit(b) }
func (b *BaseNode) GetAttributes() map[string]interface{} {
	if b.Attributes == nil {
		b.Attributes = make(map[string]interface{})
	}
	return b.Attributes
}

// ExprBase is the BaseNode for every expression node: it carries the
// type the semantic rule attached (spec §3 "expressions additionally
// carry a resolved type") and a constant-foldable-integer default of
// "not constant", overridden by the handful of node kinds evalConstInt
// actually folds (see const.go).
type ExprBase struct {
	BaseNode
	Type types.Type
}

func (e *ExprBase) ExprType() types.Type         { return e.Type }
func (e *ExprBase) IsConstantExpression() bool   { return false }
func (e *ExprBase) ConstIntValue() (int64, bool) { return 0, false }
func (e *ExprBase) expressionNode()              {}

// fmtNode renders a possibly-nil child for String(); abstract
// declarators and omitted for-loop clauses leave fields nil.
func fmtNode(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
