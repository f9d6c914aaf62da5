package ast

import (
	"fmt"
	"strings"

	"github.com/azw413/cparser/symbol"
)

// StmtBase is the BaseNode embedded by every statement node.
type StmtBase struct {
	BaseNode
}

func (s *StmtBase) statementNode() {}

// LabelStatement is `identifier : statement` (spec §4.9 labeled
// statement).
type LabelStatement struct {
	StmtBase
	Label *symbol.Symbol
	Body  Statement
}

func (n *LabelStatement) GetChildren() []Node { return []Node{n.Body} }
func (n *LabelStatement) String() string {
	return fmt.Sprintf("%s: %s", n.Label.Name, n.Body.String())
}

// CaseStatement is `case const-expr : statement`; the switch parser
// also appends it to the enclosing SwitchStatement's Cases list (spec
// §4.9 "case and default append themselves to a linked list on the
// current switch").
type CaseStatement struct {
	StmtBase
	Value Expression
	Body  Statement
}

func (n *CaseStatement) GetChildren() []Node { return []Node{n.Value, n.Body} }
func (n *CaseStatement) String() string {
	return fmt.Sprintf("case %s: %s", n.Value.String(), n.Body.String())
}

// DefaultStatement is `default : statement`.
type DefaultStatement struct {
	StmtBase
	Body Statement
}

func (n *DefaultStatement) GetChildren() []Node { return []Node{n.Body} }
func (n *DefaultStatement) String() string      { return "default: " + n.Body.String() }

// CompoundStatement is a brace-enclosed block-item list: statements
// and declarations interleaved in source order (spec §4.9 "compound").
type CompoundStatement struct {
	StmtBase
	Items []Statement
}

func (n *CompoundStatement) GetChildren() []Node {
	out := make([]Node, len(n.Items))
	for i, s := range n.Items {
		out[i] = s
	}
	return out
}
func (n *CompoundStatement) String() string {
	parts := make([]string, len(n.Items))
	for i, s := range n.Items {
		parts[i] = s.String()
	}
	return "{\n" + strings.Join(parts, "\n") + "\n}"
}

// ExpressionStatement is an expression followed by `;`.
type ExpressionStatement struct {
	StmtBase
	Expr Expression
}

func (n *ExpressionStatement) GetChildren() []Node { return []Node{n.Expr} }
func (n *ExpressionStatement) String() string      { return n.Expr.String() + ";" }

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	StmtBase
}

func (n *EmptyStatement) String() string { return ";" }

// IfStatement is `if (cond) then [else else]` (spec §4.9 selection).
type IfStatement struct {
	StmtBase
	Cond Expression
	Then Statement
	Else Statement
}

func (n *IfStatement) GetChildren() []Node {
	children := []Node{n.Cond, n.Then}
	if n.Else != nil {
		children = append(children, n.Else)
	}
	return children
}
func (n *IfStatement) String() string {
	s := fmt.Sprintf("if (%s) %s", n.Cond.String(), n.Then.String())
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

// SwitchStatement is `switch (cond) body`; Cases and Default are
// populated as the statement parser walks Body (spec §4.9 "case/
// default and switch are linked"). A switch whose Default stays nil
// draws a switch-default warning.
type SwitchStatement struct {
	StmtBase
	Cond    Expression
	Body    Statement
	Cases   []*CaseStatement
	Default *DefaultStatement
}

func (n *SwitchStatement) GetChildren() []Node { return []Node{n.Cond, n.Body} }
func (n *SwitchStatement) String() string {
	return fmt.Sprintf("switch (%s) %s", n.Cond.String(), n.Body.String())
}

// WhileStatement is `while (cond) body` (spec §4.9 iteration).
type WhileStatement struct {
	StmtBase
	Cond Expression
	Body Statement
}

func (n *WhileStatement) GetChildren() []Node { return []Node{n.Cond, n.Body} }
func (n *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) %s", n.Cond.String(), n.Body.String())
}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	StmtBase
	Body Statement
	Cond Expression
}

func (n *DoWhileStatement) GetChildren() []Node { return []Node{n.Body, n.Cond} }
func (n *DoWhileStatement) String() string {
	return fmt.Sprintf("do %s while (%s);", n.Body.String(), n.Cond.String())
}

// ForStatement is `for (init; cond; post) body`. Init may be an
// ExpressionStatement, a DeclarationStatement, or an EmptyStatement;
// Cond and Post may be nil.
type ForStatement struct {
	StmtBase
	Init Statement
	Cond Expression
	Post Expression
	Body Statement
}

func (n *ForStatement) GetChildren() []Node {
	children := []Node{}
	if n.Init != nil {
		children = append(children, n.Init)
	}
	if n.Cond != nil {
		children = append(children, n.Cond)
	}
	if n.Post != nil {
		children = append(children, n.Post)
	}
	return append(children, n.Body)
}
func (n *ForStatement) String() string {
	return fmt.Sprintf("for (%s; %s; %s) %s", fmtNode(n.Init), fmtNode(n.Cond), fmtNode(n.Post), n.Body.String())
}

// GotoStatement is `goto label;` (spec §4.9 jump).
type GotoStatement struct {
	StmtBase
	Label *symbol.Symbol
}

func (n *GotoStatement) String() string { return fmt.Sprintf("goto %s;", n.Label.Name) }

// ContinueStatement is `continue;`.
type ContinueStatement struct{ StmtBase }

func (n *ContinueStatement) String() string { return "continue;" }

// BreakStatement is `break;`.
type BreakStatement struct{ StmtBase }

func (n *BreakStatement) String() string { return "break;" }

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	StmtBase
	Value Expression
}

func (n *ReturnStatement) GetChildren() []Node {
	if n.Value != nil {
		return []Node{n.Value}
	}
	return nil
}
func (n *ReturnStatement) String() string {
	if n.Value != nil {
		return "return " + n.Value.String() + ";"
	}
	return "return;"
}

// AsmStatement is an inline-assembler statement (spec §4.9, §7
// supplemented feature): the raw text between the parentheses is kept
// opaque since instruction-set semantics are out of the core's scope.
type AsmStatement struct {
	StmtBase
	Text string
}

func (n *AsmStatement) String() string { return fmt.Sprintf("asm(%q);", n.Text) }

// DeclarationStatement wraps one or more declarators sharing a
// declaration-specifier sequence (spec §4.5/§4.11); it is both a
// Statement (usable as a compound-statement block item or a for-loop
// initializer) and an ExternalDeclaration (usable at file scope).
type DeclarationStatement struct {
	StmtBase
	Declarators []*InitDeclarator
	IsTypedef   bool
}

func (n *DeclarationStatement) GetChildren() []Node {
	out := make([]Node, len(n.Declarators))
	for i, d := range n.Declarators {
		out[i] = d
	}
	return out
}
func (n *DeclarationStatement) String() string {
	parts := make([]string, len(n.Declarators))
	for i, d := range n.Declarators {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ") + ";"
}
func (n *DeclarationStatement) externalDeclarationNode() {}
