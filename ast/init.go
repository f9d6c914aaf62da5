package ast

import (
	"strings"

	"github.com/azw413/cparser/symbol"
)

// ExprInitializer is the scalar form of spec §4.10: a bare assignment-
// expression used to initialize a scalar, or the single brace-wrapped
// value that "scalar target with brace-wrapped single value" reduces
// to.
type ExprInitializer struct {
	BaseNode
	Value Expression
}

func (n *ExprInitializer) GetChildren() []Node { return []Node{n.Value} }
func (n *ExprInitializer) String() string      { return n.Value.String() }
func (n *ExprInitializer) initializerNode()    {}

// ListInitializer is a brace-enclosed initializer list for an array or
// struct/union target (spec §4.10 "array/struct target with list
// form").
type ListInitializer struct {
	BaseNode
	Elements []*InitializerElement
}

func (n *ListInitializer) GetChildren() []Node {
	out := make([]Node, len(n.Elements))
	for i, e := range n.Elements {
		out[i] = e
	}
	return out
}
func (n *ListInitializer) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
func (n *ListInitializer) initializerNode() {}

// InitializerElement is one entry of a ListInitializer, optionally
// preceded by designators (spec §4.10 "designators `[i]` and `.field`
// are parsed but not yet matched beyond skipping" — see DESIGN.md's
// Open Questions decision).
type InitializerElement struct {
	BaseNode
	Designators []Designator
	Value       Initializer
}

func (n *InitializerElement) GetChildren() []Node {
	children := make([]Node, 0, len(n.Designators)+1)
	for _, d := range n.Designators {
		children = append(children, d)
	}
	return append(children, n.Value)
}
func (n *InitializerElement) String() string {
	var b strings.Builder
	for _, d := range n.Designators {
		b.WriteString(d.String())
	}
	if len(n.Designators) > 0 {
		b.WriteString(" = ")
	}
	b.WriteString(n.Value.String())
	return b.String()
}

// IndexDesignator is `[index] =`.
type IndexDesignator struct {
	BaseNode
	Index Expression
}

func (n *IndexDesignator) GetChildren() []Node { return []Node{n.Index} }
func (n *IndexDesignator) String() string      { return "[" + n.Index.String() + "]" }
func (n *IndexDesignator) designatorNode()     {}

// FieldDesignator is `.field =`.
type FieldDesignator struct {
	BaseNode
	Field *symbol.Symbol
}

func (n *FieldDesignator) GetChildren() []Node { return nil }
func (n *FieldDesignator) String() string      { return "." + n.Field.Name }
func (n *FieldDesignator) designatorNode()     {}
