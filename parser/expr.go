package parser

import (
	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// infixParselet is the per-operator infix continuation of the Pratt
// loop below: given the already-parsed left operand it consumes the
// operator (already current) and its right-hand side and returns the
// combined expression (spec §4.8).
type infixParselet func(left ast.Expression) ast.Expression

// prec is the precedence table of spec §4.8 ("Precedence levels used,
// high to low"). Values are the table's own numbers so the ordering
// documented there is visible directly in the source.
type prec int

const (
	precNone       prec = 0
	precComma      prec = 1
	precAssign     prec = 2
	precConditional prec = 7
	precLogOr      prec = 8
	precLogAnd     prec = 9
	precBitOr      prec = 10
	precBitXor     prec = 11
	precBitAnd     prec = 12
	precEquality   prec = 13
	precRelational prec = 14
	precAdditive   prec = 15
	precMultiplicative prec = 16
	precCast       prec = 20
	precUnary      prec = 25
	precPostfix    prec = 30
)

var binPrec = map[token.Kind]prec{
	token.STAR: precMultiplicative, token.SLASH: precMultiplicative, token.PERCENT: precMultiplicative,
	token.PLUS: precAdditive, token.MINUS: precAdditive,
	token.SHL: precMultiplicative, token.SHR: precMultiplicative,
	token.LT: precRelational, token.GT: precRelational, token.LE: precRelational, token.GE: precRelational,
	token.EQ: precEquality, token.NE: precEquality,
	token.AMP: precBitAnd, token.CARET: precBitXor, token.PIPE: precBitOr,
	token.LOGAND: precLogAnd, token.LOGOR: precLogOr,
	token.QUESTION: precConditional,
	token.ASSIGN: precAssign, token.PLUSEQ: precAssign, token.MINUSEQ: precAssign, token.STAREQ: precAssign,
	token.SLASHEQ: precAssign, token.PERCENTEQ: precAssign, token.AMPEQ: precAssign, token.PIPEEQ: precAssign,
	token.CARETEQ: precAssign, token.SHLEQ: precAssign, token.SHREQ: precAssign,
	token.COMMA: precComma,
	token.LBRACKET: precPostfix, token.LPAREN: precPostfix, token.DOT: precPostfix, token.ARROW: precPostfix,
	token.INC: precPostfix, token.DEC: precPostfix,
}

func (p *Parser) curPrecedence() prec {
	if pr, ok := binPrec[p.cur.Kind]; ok {
		return pr
	}
	return precNone
}

// initExprParselets populates the prefix/infix registries, mirroring
// the teacher's initializePrefixParsers/initializeInfixParsers split
// folded into one table build here.
func (p *Parser) initExprParselets() {
	p.prefixFns = map[token.Kind]func() ast.Expression{
		token.INTCONST:   p.parseIntLiteral,
		token.FLOATCONST: p.parseFloatLiteral,
		token.STRING:     p.parseStringLiteral,
		token.WSTRING:     p.parseWideStringLiteral,
		token.IDENT:      p.parseIdentExpr,
		token.LPAREN:     p.parseParenOrCastOrStmtExpr,
		token.PLUS:       p.parseUnary,
		token.MINUS:      p.parseUnary,
		token.NOT:        p.parseUnary,
		token.TILDE:      p.parseUnary,
		token.STAR:       p.parseUnary,
		token.AMP:        p.parseUnary,
		token.INC:        p.parseUnary,
		token.DEC:        p.parseUnary,
		token.SIZEOF:     p.parseSizeof,
		token.ALIGNOF:    p.parseAlignof,
		token.EXTENSION:  p.parseExtension,
		token.BUILTIN_CLASSIFY_TYPE: p.parseClassifyType,
	}

	p.infixFns = map[token.Kind]infixParselet{
		token.PLUS: p.parseBinary, token.MINUS: p.parseBinary, token.STAR: p.parseBinary,
		token.SLASH: p.parseBinary, token.PERCENT: p.parseBinary,
		token.SHL: p.parseBinary, token.SHR: p.parseBinary,
		token.AMP: p.parseBinary, token.PIPE: p.parseBinary, token.CARET: p.parseBinary,
		token.LT: p.parseBinary, token.GT: p.parseBinary, token.LE: p.parseBinary, token.GE: p.parseBinary,
		token.EQ: p.parseBinary, token.NE: p.parseBinary,
		token.LOGAND: p.parseLogical, token.LOGOR: p.parseLogical,
		token.QUESTION: p.parseConditional,
		token.ASSIGN: p.parseAssign, token.PLUSEQ: p.parseAssign, token.MINUSEQ: p.parseAssign,
		token.STAREQ: p.parseAssign, token.SLASHEQ: p.parseAssign, token.PERCENTEQ: p.parseAssign,
		token.AMPEQ: p.parseAssign, token.PIPEEQ: p.parseAssign, token.CARETEQ: p.parseAssign,
		token.SHLEQ: p.parseAssign, token.SHREQ: p.parseAssign,
		token.COMMA:    p.parseComma,
		token.LBRACKET: p.parseIndex,
		token.LPAREN:   p.parseCall,
		token.DOT:      p.parseMember,
		token.ARROW:    p.parseMember,
		token.INC:      p.parsePostfix,
		token.DEC:      p.parsePostfix,
	}
}

// parseExpression is the core Pratt loop (spec §4.8), grounded on the
// teacher's parseExpression.
func (p *Parser) parseExpression(minPrec prec) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf("expected expression, got %s", p.cur.Kind)
		p.next()
		return errExpr(p)
	}
	left := prefix()

	for !p.curIs(token.SEMICOLON) && minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

// parseAssignmentExpression is the entry point used wherever the
// grammar calls for a single assignment-expression (argument lists,
// initializers, for-statement clauses): precedence one above comma so
// the top-level comma operator is excluded (spec §4.8 "comma...lowest,
// excluded from contexts using a comma as a separator").
func (p *Parser) parseAssignmentExpression() ast.Expression {
	return p.parseExpression(precComma)
}

func errExpr(p *Parser) ast.Expression {
	return &ast.IntLiteral{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIntLiteral, Pos: p.cur.Pos}, Type: types.ErrorType}}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	t := p.cur
	kind := intLiteralKind(t.IntRank, t.IntSigned)
	n := &ast.IntLiteral{
		ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIntLiteral, Pos: t.Pos}, Type: p.arena.Atomic(kind)},
		Value:    t.IntVal,
		Signed:   t.IntSigned,
	}
	p.next()
	return n
}

func intLiteralKind(r token.IntRank, signed bool) types.AtomicKind {
	switch r {
	case token.RankUnsignedInt:
		return types.UnsignedInt
	case token.RankLong:
		return types.Long
	case token.RankUnsignedLong:
		return types.UnsignedLong
	case token.RankLongLong:
		return types.LongLong
	case token.RankUnsignedLongLong:
		return types.UnsignedLongLong
	default:
		if !signed {
			return types.UnsignedInt
		}
		return types.Int
	}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	t := p.cur
	kind := types.Double
	switch t.FloatRank {
	case token.RankFloat:
		kind = types.Float
	case token.RankLongDouble:
		kind = types.LongDouble
	}
	n := &ast.FloatLiteral{
		ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindFloatLiteral, Pos: t.Pos}, Type: p.arena.Atomic(kind)},
		Value:    t.FloatVal,
	}
	p.next()
	return n
}

func (p *Parser) parseStringLiteral() ast.Expression {
	t := p.cur
	elem := p.arena.Qualify(p.arena.Atomic(types.Char), 0)
	arrType := p.arena.ArrayOf(elem, constSize(int64(len(t.Lit)+1)))
	n := &ast.StringLiteral{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindStringLiteral, Pos: t.Pos}, Type: arrType}, Value: t.Lit}
	p.next()
	return n
}

func (p *Parser) parseWideStringLiteral() ast.Expression {
	t := p.cur
	elem := p.arena.Atomic(types.Int)
	arrType := p.arena.ArrayOf(elem, constSize(int64(len(t.Lit)+1)))
	n := &ast.WideStringLiteral{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindWideStringLiteral, Pos: t.Pos}, Type: arrType}, Value: t.Lit}
	p.next()
	return n
}

// constLit is a minimal types.SizeExpr wrapping a compile-time-known
// literal length (e.g. a string literal's size), too trivial to merit
// a full ast.Expression.
type constLit int64

func (c constLit) IsConstantExpression() bool   { return true }
func (c constLit) ConstIntValue() (int64, bool) { return int64(c), true }

func constSize(n int64) types.SizeExpr { return constLit(n) }

// parseIdentExpr resolves the identifier against the ordinary
// namespace and applies array/function decay (spec §4.8 "revert_
// automatic_type_conversion" / glossary "Decay").
func (p *Parser) parseIdentExpr() ast.Expression {
	t := p.cur
	sym := p.table.Insert(t.Lit)
	decl := sym.Namespace(symbol.NSOrdinary)
	n := &ast.IdentExpr{
		ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIdentExpr, Pos: t.Pos}},
		Name:     sym,
		Decl:     decl,
	}
	if decl == nil {
		p.errorf("use of undeclared identifier '%s'", t.Lit)
		n.Type = types.ErrorType
		p.next()
		return n
	}
	orig := decl.Type
	if arr, ok := types.SkipAlias(orig).(*types.Array); ok {
		n.Decayed = true
		n.PreDecayType = orig
		n.Type = p.arena.PointerTo(arr.Elem)
	} else if _, ok := types.SkipAlias(orig).(*types.Function); ok {
		n.Decayed = true
		n.PreDecayType = orig
		n.Type = p.arena.PointerTo(orig)
	} else {
		n.Type = orig
	}
	p.next()
	return n
}

func (p *Parser) parseParenOrCastOrStmtExpr() ast.Expression {
	pos := p.cur.Pos
	if p.peekIs(token.LBRACE) {
		p.next() // consume '('
		body := p.parseCompoundStatement()
		p.expect(token.RPAREN)
		typ := types.ErrorType
		if len(body.Items) > 0 {
			if es, ok := body.Items[len(body.Items)-1].(*ast.ExpressionStatement); ok && es.Expr != nil {
				typ = es.Expr.ExprType()
			}
		} else {
			typ = p.arena.Atomic(types.Void)
		}
		return &ast.StatementExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindStatementExpr, Pos: pos}, Type: typ}, Body: body}
	}

	p.next() // consume '('
	if p.startsTypeName() {
		typ := p.parseTypeName()
		p.expect(token.RPAREN)
		if p.curIs(token.LBRACE) {
			init := p.parseInitializerList(typ)
			return &ast.CompoundLiteralExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCompoundLiteralExpr, Pos: pos}, Type: typ}, TypeName: typ, Init: init}
		}
		operand := p.parseExpression(precCast)
		return &ast.CastExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCastExpr, Pos: pos}, Type: typ}, TargetType: typ, Operand: operand}
	}

	inner := p.parseExpression(precNone)
	p.expect(token.RPAREN)
	return &ast.ParenExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindParenExpr, Pos: pos}, Type: inner.ExprType()}, Inner: inner}
}

func (p *Parser) parseUnary() ast.Expression {
	t := p.cur
	op := t.Kind
	p.next()
	operand := p.parseExpression(precUnary)
	typ := unaryResultType(p, op, operand)
	if op == token.INC || op == token.DEC {
		return &ast.UnaryExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindUnaryExpr, Pos: t.Pos}, Type: typ}, Op: op, Operand: operand}
	}
	return &ast.UnaryExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindUnaryExpr, Pos: t.Pos}, Type: typ}, Op: op, Operand: operand}
}

func unaryResultType(p *Parser, op token.Kind, operand ast.Expression) types.Type {
	et := operand.ExprType()
	if et == nil {
		return types.ErrorType
	}
	switch op {
	case token.STAR:
		if ptr, ok := types.SkipAlias(et).(*types.Pointer); ok {
			return ptr.Elem
		}
		p.errorf("indirection requires pointer operand")
		return types.ErrorType
	case token.AMP:
		// Undo automatic array/function decay so `&arr` yields a
		// pointer to the array type rather than a pointer to its
		// already-decayed pointer-to-element type (spec §4.8 "Unary
		// &: undoes automatic decay of its operand"), and mark the
		// referenced declaration address-taken / reject register
		// storage (spec §4.8 "Unary &").
		base := et
		if id, ok := operand.(*ast.IdentExpr); ok {
			base = id.RevertDecay()
			if id.Decl != nil {
				if id.Decl.Storage == symbol.SCRegister {
					p.errorf("address of register variable '%s' requested", id.Decl.Symbol.Name)
				}
				id.Decl.SetAddressTaken()
			}
		}
		return p.arena.PointerTo(base)
	case token.NOT:
		return p.arena.Atomic(types.Int)
	case token.PLUS, token.MINUS, token.TILDE:
		if types.Unqualified(et) != nil {
			if b, ok := types.SkipAlias(et).(*types.Basic); ok && rankPromotable(b.AKind) {
				return p.arena.PromoteInteger(et)
			}
		}
		return et
	default:
		return et
	}
}

func rankPromotable(k types.AtomicKind) bool {
	switch k {
	case types.Float, types.Double, types.LongDouble:
		return false
	default:
		return true
	}
}

func (p *Parser) parsePostfix(left ast.Expression) ast.Expression {
	t := p.cur
	p.next()
	return &ast.PostfixExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindPostfixExpr, Pos: t.Pos}, Type: left.ExprType()}, Op: t.Kind, Operand: left}
}

func (p *Parser) parseSizeof() ast.Expression {
	pos := p.cur.Pos
	p.next()
	sizeT := p.arena.Atomic(types.UnsignedLong)
	if p.curIs(token.LPAREN) && p.peekStartsTypeNameAfterParen() {
		p.next()
		typ := p.parseTypeName()
		p.expect(token.RPAREN)
		return &ast.SizeofExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindSizeofExpr, Pos: pos}, Type: sizeT}, TypeName: typ}
	}
	operand := p.parseExpression(precUnary)
	return &ast.SizeofExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindSizeofExpr, Pos: pos}, Type: sizeT}, Operand: operand}
}

func (p *Parser) parseAlignof() ast.Expression {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	typ := p.parseTypeName()
	p.expect(token.RPAREN)
	return &ast.AlignofExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindAlignofExpr, Pos: pos}, Type: p.arena.Atomic(types.UnsignedLong)}, TypeName: typ}
}

func (p *Parser) parseExtension() ast.Expression {
	pos := p.cur.Pos
	p.next()
	operand := p.parseExpression(precUnary)
	return &ast.ExtensionExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindExtensionExpr, Pos: pos}, Type: operand.ExprType()}, Operand: operand}
}

func (p *Parser) parseClassifyType() ast.Expression {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	operand := p.parseAssignmentExpression()
	p.expect(token.RPAREN)
	return &ast.ClassifyTypeExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindClassifyTypeExpr, Pos: pos}, Type: p.arena.Atomic(types.Int)}, Operand: operand}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	t := p.cur
	prec := binPrec[t.Kind]
	p.next()
	right := p.parseExpression(prec)
	typ := p.arena.Arithmetic(left.ExprType(), right.ExprType())
	switch t.Kind {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE:
		p.checkComparison(t, left, right)
		typ = p.arena.Atomic(types.Int)
	}
	return &ast.BinaryExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindBinaryExpr, Pos: t.Pos}, Type: typ}, Op: t.Kind, Left: left, Right: right}
}

func (p *Parser) parseLogical(left ast.Expression) ast.Expression {
	t := p.cur
	prec := binPrec[t.Kind]
	p.next()
	right := p.parseExpression(prec)
	return &ast.LogicalExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindLogicalExpr, Pos: t.Pos}, Type: p.arena.Atomic(types.Int)}, Op: t.Kind, Left: left, Right: right}
}

func (p *Parser) parseConditional(cond ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '?'
	if p.curIs(token.COLON) {
		p.next()
		elseExpr := p.parseExpression(precConditional - 1)
		typ := p.arena.ConditionalResult(cond.ExprType(), elseExpr.ExprType())
		return &ast.ConditionalExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindConditionalExpr, Pos: pos}, Type: typ}, Cond: cond, Else: elseExpr}
	}
	thenExpr := p.parseExpression(precNone)
	p.expect(token.COLON)
	elseExpr := p.parseExpression(precConditional - 1)
	typ := p.arena.ConditionalResult(thenExpr.ExprType(), elseExpr.ExprType())
	return &ast.ConditionalExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindConditionalExpr, Pos: pos}, Type: typ}, Cond: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseAssign(left ast.Expression) ast.Expression {
	t := p.cur
	p.next()
	right := p.parseExpression(precAssign - 1)
	isNull := t.Kind == token.ASSIGN && types.IsNullPointerConstant(right)
	typ := p.arena.Assign(left.ExprType(), right.ExprType(), isNull)
	if reason := p.modifiableLvalueError(left); reason != "" {
		p.diags.Errorf(t.Pos, "cannot assign to %s", reason)
	} else if typ == nil && types.IsValid(left.ExprType()) && types.IsValid(right.ExprType()) {
		p.diags.Errorf(t.Pos, "incompatible types when assigning to type '%s' from type '%s'", left.ExprType().String(), right.ExprType().String())
	}
	if typ != nil && t.Kind == token.ASSIGN {
		right = p.maybeCast(typ, right)
	}
	return &ast.AssignExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindAssignExpr, Pos: t.Pos}, Type: typ}, Op: t.Kind, Left: left, Right: right}
}

func (p *Parser) parseComma(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	exprs := []ast.Expression{left}
	for p.curIs(token.COMMA) {
		p.next()
		exprs = append(exprs, p.parseExpression(precAssign))
	}
	last := exprs[len(exprs)-1]
	return &ast.CommaExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCommaExpr, Pos: pos}, Type: last.ExprType()}, Exprs: exprs}
}

func (p *Parser) parseIndex(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '['
	idx := p.parseExpression(precNone)
	p.expect(token.RBRACKET)
	p.checkCharSubscript(idx)
	elemType := types.ErrorType
	base := left.ExprType()
	if n, ok := left.(*ast.IdentExpr); ok && n.Decayed {
		base = n.PreDecayType
	}
	switch t := types.SkipAlias(base).(type) {
	case *types.Array:
		elemType = t.Elem
	case *types.Pointer:
		elemType = t.Elem
	default:
		if types.IsValid(base) {
			p.diags.Errorf(pos, "subscripted value is not an array or pointer")
		}
	}
	if types.IsValid(idx.ExprType()) && !types.IsInteger(types.SkipAlias(idx.ExprType())) && elemType != types.ErrorType {
		p.diags.Errorf(idx.GetPosition(), "array subscript is not an integer")
	}
	return &ast.IndexExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIndexExpr, Pos: pos}, Type: elemType}, Array: left, Index: idx}
}

func (p *Parser) parseCall(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '('
	var args []ast.Expression
	for !p.curIs(token.RPAREN) {
		args = append(args, p.parseAssignmentExpression())
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	retType := types.ErrorType
	var fn *types.Function
	if f, ok := types.SkipAlias(left.ExprType()).(*types.Function); ok {
		fn = f
	} else if ptr, ok := types.SkipAlias(left.ExprType()).(*types.Pointer); ok {
		if f, ok := types.SkipAlias(ptr.Elem).(*types.Function); ok {
			fn = f
		}
	}
	if fn != nil {
		retType = fn.Return
		args = p.checkCallArgs(pos, fn, args)
	}
	p.checkFormatCall(pos, left, args)
	return &ast.CallExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCallExpr, Pos: pos}, Type: retType}, Callee: left, Args: args}
}

func (p *Parser) parseMember(left ast.Expression) ast.Expression {
	t := p.cur
	arrow := t.Kind == token.ARROW
	p.next() // consume . or ->
	name := p.cur.Lit
	pos := p.cur.Pos
	p.expect(token.IDENT)

	base := left.ExprType()
	if n, ok := left.(*ast.IdentExpr); ok && n.Decayed && !arrow {
		base = n.PreDecayType
	}
	if arrow {
		if ptr, ok := types.SkipAlias(base).(*types.Pointer); ok {
			base = ptr.Elem
		}
	}
	var field *symbol.Declaration
	typ := types.ErrorType
	if tag, ok := types.SkipAlias(base).(*types.Tag); ok {
		if decl := p.table.DeclByID(tag.Decl); decl != nil {
			if scope, ok := decl.Slot.(*symbol.Scope); ok {
				sym := p.table.Insert(name)
				for _, d := range scope.Declarations() {
					if d.Symbol == sym {
						field = d
						break
					}
				}
			}
		}
	}
	if field != nil {
		typ = field.Type
	} else {
		p.diags.Errorf(pos, "no member named '%s'", name)
	}
	return &ast.MemberExpr{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindMemberExpr, Pos: t.Pos}, Type: typ}, Object: left, Field: field, Arrow: arrow}
}
