package parser

import (
	"fmt"

	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// maybeCast wraps value in an implicit CastExpr targeting target when its
// current type isn't already compatible with target, the node spec §4.8's
// assignment/initializer/call/return rules describe as "implicitly cast".
// Compatible types (e.g. both sides the same struct, or already the same
// interned pointer) are left unwrapped so the AST doesn't gain a cast node
// for every assignment of a value to its own type.
func (p *Parser) maybeCast(target types.Type, value ast.Expression) ast.Expression {
	if target == nil || value == nil {
		return value
	}
	vt := value.ExprType()
	if vt == target {
		return value
	}
	if types.Compatible(types.SkipAlias(target), types.SkipAlias(vt)) {
		return value
	}
	return &ast.CastExpr{
		ExprBase:   ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCastExpr, Pos: value.GetPosition()}, Type: target},
		TargetType: target,
		Operand:    value,
	}
}

// defaultArgumentPromotion applies the "default argument promotion" spec
// §4.8's Call rule describes for variadic/unspecified-parameter extra
// arguments: integer promotion, and float widening to double.
func (p *Parser) defaultArgumentPromotion(a ast.Expression) ast.Expression {
	t := a.ExprType()
	if types.IsInteger(t) {
		return p.maybeCast(p.arena.PromoteInteger(t), a)
	}
	if b, ok := types.SkipAlias(t).(*types.Basic); ok && b.AKind == types.Float {
		return p.maybeCast(p.arena.Atomic(types.Double), a)
	}
	return a
}

// isLvalueExpr reports whether e denotes an object (spec glossary
// "Lvalue"): an identifier reference, a dereference, a subscript, a
// member access, or one of those wrapped in parentheses.
func isLvalueExpr(e ast.Expression) bool {
	switch v := e.(type) {
	case *ast.IdentExpr:
		return true
	case *ast.UnaryExpr:
		return v.Op == token.STAR
	case *ast.IndexExpr:
		return true
	case *ast.MemberExpr:
		return true
	case *ast.ParenExpr:
		return isLvalueExpr(v.Inner)
	default:
		return false
	}
}

// modifiableLvalueError reports why e is not a modifiable lvalue (spec
// glossary "modifiable lvalue": complete, non-array, non-const, and
// without const-qualified members), or "" if e qualifies. Scenario S6:
// assigning to a struct value with any const field is rejected even
// though the struct itself isn't const-qualified.
func (p *Parser) modifiableLvalueError(e ast.Expression) string {
	if !isLvalueExpr(e) {
		return ""
	}
	t := e.ExprType()
	st := types.SkipAlias(t)
	if !types.IsValid(st) {
		return ""
	}
	if st.Kind() == types.KindArray {
		return fmt.Sprintf("array type '%s'", t.String())
	}
	if st.Quals()&types.Const != 0 {
		return fmt.Sprintf("read-only variable '%s'", t.String())
	}
	if tag, ok := st.(*types.Tag); ok && (tag.TagKind == types.KindStruct || tag.TagKind == types.KindUnion) {
		decl := p.table.DeclByID(tag.Decl)
		if decl == nil || !decl.Defined {
			return fmt.Sprintf("incomplete type '%s'", t.String())
		}
		if p.hasConstMember(st) {
			return fmt.Sprintf("'%s' because it has a readonly field", t.String())
		}
	}
	return ""
}

// isIncompleteType reports whether t is a type that spec §4.7 names as
// rejected for parameters: a bare `void`, or a struct/union/enum tag
// with no matching definition yet in scope. Only the parameter's own
// type is checked, not types it points to.
func (p *Parser) isIncompleteType(t types.Type) bool {
	st := types.SkipAlias(t)
	if !types.IsValid(st) {
		return false
	}
	if types.IsVoid(st) {
		return true
	}
	if tag, ok := st.(*types.Tag); ok {
		decl := p.table.DeclByID(tag.Decl)
		return decl == nil || !decl.Defined
	}
	return false
}

// hasConstMember reports whether t (a struct/union tag type) has any
// member, recursively through nested struct/union members, whose own
// type is const-qualified (spec §4.11 Assignment: "compound targets with
// any const-qualified field are rejected").
func (p *Parser) hasConstMember(t types.Type) bool {
	tag, ok := types.SkipAlias(t).(*types.Tag)
	if !ok {
		return false
	}
	decl := p.table.DeclByID(tag.Decl)
	if decl == nil {
		return false
	}
	scope, ok := decl.Slot.(*symbol.Scope)
	if !ok {
		return false
	}
	for _, m := range scope.Declarations() {
		mt := types.SkipAlias(m.Type)
		if mt.Quals()&types.Const != 0 {
			return true
		}
		if mt.Kind() == types.KindStruct || mt.Kind() == types.KindUnion {
			if p.hasConstMember(mt) {
				return true
			}
		}
	}
	return false
}

// inferListSize returns the element/character count a brace-list or
// string-literal initializer determines for an array whose declarator
// left the size unspecified (spec §4.10 "if the array target has no
// size, its size is set from the list length, string length, or wide-
// string length").
func inferListSize(init ast.Initializer) (int64, bool) {
	switch v := init.(type) {
	case *ast.ExprInitializer:
		switch s := v.Value.(type) {
		case *ast.StringLiteral:
			return int64(len(s.Value)) + 1, true
		case *ast.WideStringLiteral:
			return int64(len(s.Value)) + 1, true
		}
	case *ast.ListInitializer:
		return int64(len(v.Elements)), true
	}
	return 0, false
}

// checkComparison flags the two relational/equality mismatches spec
// §4.8's comparison rule calls out: comparing a pointer against a
// plain integer (other than a null-pointer constant), and comparing a
// signed integer with an unsigned one, whatever their ranks, without a
// cast (WarnSignCompare).
func (p *Parser) checkComparison(t token.Token, left, right ast.Expression) {
	lt, rt := types.SkipAlias(left.ExprType()), types.SkipAlias(right.ExprType())
	_, lok := lt.(*types.Pointer)
	_, rok := rt.(*types.Pointer)
	switch {
	case lok && !rok && types.IsInteger(rt) && !types.IsNullPointerConstant(right):
		p.diags.Errorf(t.Pos, "comparison between pointer and integer")
	case rok && !lok && types.IsInteger(lt) && !types.IsNullPointerConstant(left):
		p.diags.Errorf(t.Pos, "comparison between pointer and integer")
	case !lok && !rok && types.IsInteger(lt) && types.IsInteger(rt):
		if types.IsSigned(lt) != types.IsSigned(rt) {
			p.diags.Warnf(diag.WarnSignCompare, t.Pos, "comparison of integers of different signs")
		}
	}
}

// checkCharSubscript warns when an array/pointer subscript is a plain
// `char` (WarnCharSubscripts): on a target where char defaults to
// signed this silently sign-extends negative index values.
func (p *Parser) checkCharSubscript(idx ast.Expression) {
	if b, ok := types.SkipAlias(idx.ExprType()).(*types.Basic); ok && b.AKind == types.Char {
		p.diags.Warnf(diag.WarnCharSubscripts, idx.GetPosition(), "array subscript has type 'char'")
	}
}

// checkReturnLocalAddress warns (WarnReturnLocalAddr) when value is
// the address of a local variable — `&x` or a decayed array/function
// identifier naming a non-global, non-static declaration — since the
// storage it points to doesn't outlive the call (spec §4.9 Return).
func (p *Parser) checkReturnLocalAddress(pos token.Position, value ast.Expression) {
	var ident *ast.IdentExpr
	if u, ok := value.(*ast.UnaryExpr); ok && u.Op == token.AMP {
		ident, _ = u.Operand.(*ast.IdentExpr)
	} else if id, ok := value.(*ast.IdentExpr); ok && id.Decayed {
		ident = id
	}
	if ident == nil || ident.Decl == nil {
		return
	}
	d := ident.Decl
	if d.OwningScope == p.global {
		return
	}
	switch d.Storage {
	case symbol.SCStatic, symbol.SCThreadStatic, symbol.SCExtern, symbol.SCThreadExtern:
		return
	}
	p.diags.Warnf(diag.WarnReturnLocalAddr, pos, "address of stack memory associated with local variable '%s' returned", d.Symbol.Name)
}

// checkCallArgs validates a call's argument list against fn's
// parameters (spec §4.8 Call rule): too few arguments is an error
// unless fn's parameters are unspecified, too many is an error unless
// fn is variadic or its parameters are unspecified, each positional
// argument is assignability-checked and implicitly cast, and any
// trailing variadic/unspecified argument gets default argument
// promotion.
func (p *Parser) checkCallArgs(pos token.Position, fn *types.Function, args []ast.Expression) []ast.Expression {
	n := len(fn.Params)
	if len(args) < n {
		if !fn.UnspecifiedParams {
			p.diags.Errorf(pos, "too few arguments to function call")
		}
	} else if len(args) > n && !fn.Variadic && !fn.UnspecifiedParams {
		p.diags.Errorf(pos, "too many arguments to function call")
	}

	for i, a := range args {
		if i < n {
			prm := fn.Params[i]
			isNull := types.IsNullPointerConstant(a)
			if cast := p.arena.Assign(prm.Type, a.ExprType(), isNull); cast != nil {
				args[i] = p.maybeCast(cast, a)
			} else if types.IsValid(prm.Type) && types.IsValid(a.ExprType()) {
				p.diags.Errorf(a.GetPosition(), "incompatible type passing '%s' to parameter of type '%s'", a.ExprType().String(), prm.Type.String())
			}
		} else {
			args[i] = p.defaultArgumentPromotion(a)
		}
	}
	return args
}

// formatFuncs maps a known printf/scanf-family function name to the
// zero-based index of its format-string parameter, dispatching the
// format-string check of spec §4.8's Call rule "by callee identity".
var formatFuncs = map[string]int{
	"printf":   0,
	"fprintf":  1,
	"sprintf":  1,
	"snprintf": 2,
	"scanf":    0,
	"fscanf":   1,
	"sscanf":   1,
}

// checkFormatCall flags a printf/scanf-family call whose literal format
// string's conversion-specifier count doesn't match the number of
// variadic arguments supplied (spec §4.8 "a format-string check is
// dispatched by callee identity"). Calls through a function pointer, or
// whose format argument isn't a literal, are not checked.
func (p *Parser) checkFormatCall(pos token.Position, callee ast.Expression, args []ast.Expression) {
	ident, ok := callee.(*ast.IdentExpr)
	if !ok {
		return
	}
	idx, known := formatFuncs[ident.Name.Name]
	if !known || idx >= len(args) {
		return
	}
	lit, ok := args[idx].(*ast.StringLiteral)
	if !ok {
		return
	}
	nspec := countFormatSpecifiers(lit.Value)
	nvariadic := len(args) - idx - 1
	if nspec != nvariadic {
		p.diags.Warnf(diag.WarnFormat, pos,
			"format string expects %d argument(s) but %d %s given", nspec, nvariadic, pluralWereWas(nvariadic))
	}
}

func pluralWereWas(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}

// countFormatSpecifiers counts '%' conversion directives in a printf-
// style format string, treating "%%" as a literal percent rather than a
// directive and skipping the one directive letter each consumes.
func countFormatSpecifiers(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		if s[i] == '%' {
			continue
		}
		for i < len(s) && isFormatFlagOrWidth(s[i]) {
			i++
		}
		if i < len(s) {
			n++
		}
	}
	return n
}

func isFormatFlagOrWidth(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '+' || c == ' ' || c == '#' || c == '.' || c == '*' ||
		c == 'l' || c == 'h' || c == 'L' || c == 'z' || c == 'j' || c == 't':
		return true
	default:
		return false
	}
}

// isScalarTarget reports whether t is the kind of type spec §4.10's
// "scalar target with brace-wrapped single value" rule applies to:
// anything other than an array, struct, or union.
func isScalarTarget(t types.Type) bool {
	switch types.SkipAlias(t).Kind() {
	case types.KindArray, types.KindStruct, types.KindUnion:
		return false
	default:
		return true
	}
}
