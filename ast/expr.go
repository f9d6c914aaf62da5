package ast

import (
	"fmt"
	"strings"

	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// IntLiteral is an integer constant (spec §4.8 primary expressions);
// Value/Signed come straight from the lexer's token payload.
type IntLiteral struct {
	ExprBase
	Value  uint64
	Signed bool
}

func (n *IntLiteral) GetChildren() []Node { return nil }
func (n *IntLiteral) String() string      { return fmt.Sprintf("%d", n.Value) }

func (n *IntLiteral) ConstIntValue() (int64, bool)  { return int64(n.Value), true }
func (n *IntLiteral) IsConstantExpression() bool    { return true }

// FloatLiteral is a floating constant.
type FloatLiteral struct {
	ExprBase
	Value float64
}

func (n *FloatLiteral) GetChildren() []Node { return nil }
func (n *FloatLiteral) String() string      { return fmt.Sprintf("%g", n.Value) }

// StringLiteral is a narrow string literal, already concatenated with
// any adjacent literals at lex time (spec §4.3).
type StringLiteral struct {
	ExprBase
	Value string
}

func (n *StringLiteral) GetChildren() []Node { return nil }
func (n *StringLiteral) String() string      { return fmt.Sprintf("%q", n.Value) }

// WideStringLiteral is an L"..." wide string literal.
type WideStringLiteral struct {
	ExprBase
	Value string
}

func (n *WideStringLiteral) GetChildren() []Node { return nil }
func (n *WideStringLiteral) String() string      { return fmt.Sprintf("L%q", n.Value) }

// IdentExpr is a name reference after lookup: Decl is the resolved
// declaration (nil if lookup failed and a diagnostic was already
// issued), Decayed records whether array-to-pointer or function-to-
// pointer decay (spec glossary "Decay") was applied so that
// RevertDecay can undo it for sizeof/&/member-access sites.
type IdentExpr struct {
	ExprBase
	Name    *symbol.Symbol
	Decl    *symbol.Declaration
	Decayed bool
	PreDecayType types.Type
}

func (n *IdentExpr) GetChildren() []Node { return nil }
func (n *IdentExpr) String() string      { return n.Name.Name }

// RevertDecay reports the pre-decay type for operators that need the
// original array/function type (spec §4.8 "revert_automatic_type_
// conversion"): sizeof, unary &, and member-access.
func (n *IdentExpr) RevertDecay() types.Type {
	if n.Decayed {
		return n.PreDecayType
	}
	return n.Type
}

// ConstIntValue folds a reference to an enum constant through its
// declaration's Slot (spec §3's enum-entry "kind slot" payload), so an
// enumerator used as an array size, bitfield width, or case label
// constant-folds the same as a literal would (spec §4.9 "case requires
// an integer constant expression", §4.6 array size).
func (n *IdentExpr) ConstIntValue() (int64, bool) {
	if n.Decl == nil || n.Decl.Storage != symbol.SCEnumEntry {
		return 0, false
	}
	expr, ok := n.Decl.Slot.(Expression)
	if !ok || expr == nil {
		return 0, false
	}
	return expr.ConstIntValue()
}

func (n *IdentExpr) IsConstantExpression() bool {
	_, ok := n.ConstIntValue()
	return ok
}

// ParenExpr is an explicitly parenthesized expression, kept as its own
// node (rather than folded away) so the formatter can re-emit the
// parentheses and round-trip parsing reproduces the same type (spec
// §8 R2).
type ParenExpr struct {
	ExprBase
	Inner Expression
}

func (n *ParenExpr) GetChildren() []Node { return []Node{n.Inner} }
func (n *ParenExpr) String() string      { return "(" + n.Inner.String() + ")" }

func (n *ParenExpr) ConstIntValue() (int64, bool) { return evalConstInt(n) }
func (n *ParenExpr) IsConstantExpression() bool   { _, ok := evalConstInt(n); return ok }

// UnaryExpr is a prefix operator: + - ! ~ * & ++ -- (spec §4.8
// precedence level 25).
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expression
}

func (n *UnaryExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *UnaryExpr) String() string      { return n.Op.String() + n.Operand.String() }

func (n *UnaryExpr) ConstIntValue() (int64, bool) { return evalConstInt(n) }
func (n *UnaryExpr) IsConstantExpression() bool   { _, ok := evalConstInt(n); return ok }

// PostfixExpr is postfix ++ / -- (spec §4.8 precedence level 30).
type PostfixExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expression
}

func (n *PostfixExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *PostfixExpr) String() string      { return n.Operand.String() + n.Op.String() }

// SizeofExpr is `sizeof expr` or `sizeof(type-name)` — exactly one of
// Operand/TypeName is set.
type SizeofExpr struct {
	ExprBase
	Operand  Expression
	TypeName types.Type
}

func (n *SizeofExpr) GetChildren() []Node {
	if n.Operand != nil {
		return []Node{n.Operand}
	}
	return nil
}
func (n *SizeofExpr) String() string {
	if n.Operand != nil {
		return "sizeof " + n.Operand.String()
	}
	return fmt.Sprintf("sizeof(%s)", n.TypeName.String())
}

// AlignofExpr is `_Alignof(type-name)` (spec §7 supplemented feature).
type AlignofExpr struct {
	ExprBase
	TypeName types.Type
}

func (n *AlignofExpr) GetChildren() []Node { return nil }
func (n *AlignofExpr) String() string      { return fmt.Sprintf("_Alignof(%s)", n.TypeName.String()) }

// ExtensionExpr wraps `__extension__ expr`, the GNU pragma that
// suppresses pedantic warnings on its operand (spec §4.8 precedence
// level 25).
type ExtensionExpr struct {
	ExprBase
	Operand Expression
}

func (n *ExtensionExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *ExtensionExpr) String() string      { return "__extension__ " + n.Operand.String() }

// ClassifyTypeExpr is `__builtin_classify_type(expr)`.
type ClassifyTypeExpr struct {
	ExprBase
	Operand Expression
}

func (n *ClassifyTypeExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *ClassifyTypeExpr) String() string {
	return fmt.Sprintf("__builtin_classify_type(%s)", n.Operand.String())
}

// CastExpr is `(type-name) expr` (spec §4.8 precedence level 20).
type CastExpr struct {
	ExprBase
	TargetType types.Type
	Operand    Expression
}

func (n *CastExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *CastExpr) String() string {
	return fmt.Sprintf("(%s)%s", n.TargetType.String(), n.Operand.String())
}

func (n *CastExpr) ConstIntValue() (int64, bool) { return evalConstInt(n) }
func (n *CastExpr) IsConstantExpression() bool   { _, ok := evalConstInt(n); return ok }

// BinaryExpr covers the arithmetic/relational/bitwise binary operators
// (spec §4.8 precedence levels 16 down to 10, excluding && / ||, which
// are LogicalExpr).
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expression
	Right Expression
}

func (n *BinaryExpr) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op.String(), n.Right.String())
}

func (n *BinaryExpr) ConstIntValue() (int64, bool) { return evalConstInt(n) }
func (n *BinaryExpr) IsConstantExpression() bool   { _, ok := evalConstInt(n); return ok }

// LogicalExpr covers && and || (spec §4.8 precedence levels 9/8),
// kept distinct from BinaryExpr since short-circuit evaluation and
// the int-typed boolean result are special-cased by the analyzer.
type LogicalExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expression
	Right Expression
}

func (n *LogicalExpr) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op.String(), n.Right.String())
}

// ConditionalExpr is `cond ? then : else` (spec §4.8 precedence level
// 7, right-associative). Then is nil for the GNU `cond ?: else` short
// form.
type ConditionalExpr struct {
	ExprBase
	Cond Expression
	Then Expression
	Else Expression
}

func (n *ConditionalExpr) GetChildren() []Node {
	if n.Then != nil {
		return []Node{n.Cond, n.Then, n.Else}
	}
	return []Node{n.Cond, n.Else}
}
func (n *ConditionalExpr) String() string {
	if n.Then != nil {
		return fmt.Sprintf("(%s ? %s : %s)", n.Cond.String(), n.Then.String(), n.Else.String())
	}
	return fmt.Sprintf("(%s ?: %s)", n.Cond.String(), n.Else.String())
}

func (n *ConditionalExpr) ConstIntValue() (int64, bool) { return evalConstInt(n) }
func (n *ConditionalExpr) IsConstantExpression() bool   { _, ok := evalConstInt(n); return ok }

// AssignExpr is a plain or compound assignment (spec §4.8 precedence
// level 2, right-associative).
type AssignExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expression
	Right Expression
}

func (n *AssignExpr) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *AssignExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op.String(), n.Right.String())
}

// CommaExpr is the sequencing operator (spec §4.8 precedence level 1).
type CommaExpr struct {
	ExprBase
	Exprs []Expression
}

func (n *CommaExpr) GetChildren() []Node {
	out := make([]Node, len(n.Exprs))
	for i, e := range n.Exprs {
		out[i] = e
	}
	return out
}
func (n *CommaExpr) String() string {
	parts := make([]string, len(n.Exprs))
	for i, e := range n.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// IndexExpr is array subscripting `a[i]` (spec §4.8 "Array subscript").
type IndexExpr struct {
	ExprBase
	Array Expression
	Index Expression
}

func (n *IndexExpr) GetChildren() []Node { return []Node{n.Array, n.Index} }
func (n *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", n.Array.String(), n.Index.String())
}

// CallExpr is a function call (spec §4.8 "Call").
type CallExpr struct {
	ExprBase
	Callee Expression
	Args   []Expression
}

func (n *CallExpr) GetChildren() []Node {
	children := []Node{n.Callee}
	for _, a := range n.Args {
		children = append(children, a)
	}
	return children
}
func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee.String(), strings.Join(parts, ", "))
}

// MemberExpr is `.field` or `->field` member access; Field is the
// resolved member's Declaration within the struct/union tag's member
// scope (see symbol.Declaration.Slot for struct/union tags, a
// *symbol.Scope of field declarations), giving the expression the
// field's exact type and qualifiers (needed by S6's "readonly fields"
// check).
type MemberExpr struct {
	ExprBase
	Object Expression
	Field  *symbol.Declaration
	Arrow  bool
}

func (n *MemberExpr) GetChildren() []Node { return []Node{n.Object} }
func (n *MemberExpr) String() string {
	op := "."
	if n.Arrow {
		op = "->"
	}
	return fmt.Sprintf("%s%s%s", n.Object.String(), op, n.Field.Symbol.Name)
}

// CompoundLiteralExpr is a C99/GNU compound literal `(type-name){ ... }`
// (spec §7 supplemented feature).
type CompoundLiteralExpr struct {
	ExprBase
	TypeName types.Type
	Init     *ListInitializer
}

func (n *CompoundLiteralExpr) GetChildren() []Node { return []Node{n.Init} }
func (n *CompoundLiteralExpr) String() string {
	return fmt.Sprintf("(%s)%s", n.TypeName.String(), n.Init.String())
}

// StatementExpr is a GNU statement expression `({ ... })` (spec §7
// supplemented feature): its value is that of the last expression
// statement in Body.
type StatementExpr struct {
	ExprBase
	Body *CompoundStatement
}

func (n *StatementExpr) GetChildren() []Node { return []Node{n.Body} }
func (n *StatementExpr) String() string      { return "(" + n.Body.String() + ")" }
