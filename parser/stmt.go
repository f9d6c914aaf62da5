package parser

import (
	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// parseStatement routes to the production spec §4.9 names for the
// current token, falling back to an expression statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseCompoundStatement()
	case token.SEMICOLON:
		pos := p.cur.Pos
		p.next()
		return &ast.EmptyStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindEmptyStatement, Pos: pos}}}
	case token.IF:
		return p.parseIfStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.ASM:
		return p.parseAsmStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.DEFAULT:
		return p.parseDefaultStatement()
	case token.IDENT:
		if p.peekIs(token.COLON) {
			return p.parseLabelStatement()
		}
		return p.parseExpressionStatement()
	default:
		if p.startsTypeName() {
			p.errorf("a declaration is not allowed here; expected statement")
			decl := p.parseDeclarationStatement()
			return decl
		}
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression(precNone)
	p.expect(token.SEMICOLON)
	return &ast.ExpressionStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindExpressionStatement, Pos: pos}}, Expr: expr}
}

// parseCompoundStatement parses a brace-enclosed block-item list,
// pushing a new block scope and environment mark (spec §4.9 compound,
// §4.4 shadow/restore).
func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	pos := p.cur.Pos
	p.expect(token.LBRACE)

	parent := p.scope
	p.scope = symbol.NewScope(parent)
	mark := p.env.Mark()

	var items []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.startsTypeName() {
			items = append(items, p.parseDeclarationStatement())
		} else {
			items = append(items, p.parseStatement())
		}
	}
	p.expect(token.RBRACE)

	p.env.PopTo(mark)
	p.scope = parent

	return &ast.CompoundStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCompoundStatement, Pos: pos}}, Items: items}
}

func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precNone)
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.curIs(token.ELSE) {
		p.next()
		elseStmt = p.parseStatement()
	}
	return &ast.IfStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIfStatement, Pos: pos}}, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precNone)
	p.expect(token.RPAREN)

	stmt := &ast.SwitchStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindSwitchStatement, Pos: pos}}, Cond: cond}
	p.switches = append(p.switches, &switchContext{stmt: stmt})
	stmt.Body = p.parseStatement()
	p.switches = p.switches[:len(p.switches)-1]

	if stmt.Default == nil {
		p.diags.Warnf(diag.WarnSwitchDefault, pos, "switch missing a default case")
	}
	return stmt
}

func (p *Parser) parseCaseStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	value := p.parseExpression(precConditional - 1)
	if types.IsValid(value.ExprType()) && !value.IsConstantExpression() {
		p.errorf("case label does not reduce to an integer constant")
	}
	p.expect(token.COLON)
	body := p.parseStatement()
	n := &ast.CaseStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindCaseStatement, Pos: pos}}, Value: value, Body: body}
	if len(p.switches) > 0 {
		sw := p.switches[len(p.switches)-1]
		sw.stmt.Cases = append(sw.stmt.Cases, n)
	} else {
		p.errorf("'case' statement not in switch statement")
	}
	return n
}

func (p *Parser) parseDefaultStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.COLON)
	body := p.parseStatement()
	n := &ast.DefaultStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindDefaultStatement, Pos: pos}}, Body: body}
	if len(p.switches) > 0 {
		sw := p.switches[len(p.switches)-1]
		if sw.stmt.Default != nil {
			p.errorf("multiple default labels in one switch")
		}
		sw.stmt.Default = n
	} else {
		p.errorf("'default' statement not in switch statement")
	}
	return n
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precNone)
	p.expect(token.RPAREN)
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return &ast.WhileStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindWhileStatement, Pos: pos}}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precNone)
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.DoWhileStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindDoWhileStatement, Pos: pos}}, Body: body, Cond: cond}
}

func (p *Parser) parseForStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)

	parent := p.scope
	p.scope = symbol.NewScope(parent)
	mark := p.env.Mark()

	var init ast.Statement
	switch {
	case p.curIs(token.SEMICOLON):
		init = &ast.EmptyStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindEmptyStatement, Pos: p.cur.Pos}}}
		p.next()
	case p.startsTypeName():
		init = p.parseDeclarationStatement()
	default:
		init = p.parseExpressionStatement()
	}

	var cond Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(precNone)
	}
	p.expect(token.SEMICOLON)

	var post Expression
	if !p.curIs(token.RPAREN) {
		post = p.parseExpression(precNone)
	}
	p.expect(token.RPAREN)

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--

	p.env.PopTo(mark)
	p.scope = parent

	return &ast.ForStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindForStatement, Pos: pos}}, Init: init, Cond: cond, Post: post, Body: body}
}

// Expression is a local alias so for-clause fields typed ast.Expression
// read naturally above without importing ast twice under two names.
type Expression = ast.Expression

func (p *Parser) parseGotoStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	sym := p.table.Insert(p.cur.Lit)
	p.expect(token.IDENT)
	p.expect(token.SEMICOLON)
	n := &ast.GotoStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindGotoStatement, Pos: pos}}, Label: sym}
	if p.fn != nil {
		p.fn.gotos = append(p.fn.gotos, n)
	}
	return n
}

func (p *Parser) parseLabelStatement() ast.Statement {
	pos := p.cur.Pos
	sym := p.table.Insert(p.cur.Lit)
	p.next()
	p.next() // consume ':'
	if p.fn != nil {
		if existing := sym.Namespace(symbol.NSLabel); existing != nil {
			p.errorf("redefinition of label '%s'", sym.Name)
		} else {
			d := p.table.NewDecl()
			d.Symbol = sym
			d.Namespace = symbol.NSLabel
			d.Pos = pos
			p.labels.Push(d, p.fn.bodyScope)
		}
	}
	body := p.parseStatement()
	return &ast.LabelStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindLabelStatement, Pos: pos}}, Label: sym, Body: body}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.SEMICOLON)
	if p.loopDepth == 0 {
		p.errorf("'continue' statement not in a loop")
	}
	return &ast.ContinueStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindContinueStatement, Pos: pos}}}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	p.expect(token.SEMICOLON)
	if p.loopDepth == 0 && len(p.switches) == 0 {
		p.errorf("'break' statement not in a loop or switch")
	}
	return &ast.BreakStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindBreakStatement, Pos: pos}}}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	var value ast.Expression
	if !p.curIs(token.SEMICOLON) {
		value = p.parseExpression(precNone)
	}
	p.expect(token.SEMICOLON)

	if p.fn != nil {
		retType := p.fn.returnType
		switch {
		case value == nil && retType != nil && !types.IsVoid(retType):
			p.diags.Warnf(diag.WarnReturnType, pos, "'return' with no value, in function returning non-void")
		case value != nil && retType != nil && types.IsVoid(retType):
			p.errorf("'return' with a value, in function returning void")
		case value != nil && retType != nil:
			isNull := types.IsNullPointerConstant(value)
			if cast := p.arena.Assign(retType, value.ExprType(), isNull); cast != nil {
				value = p.maybeCast(cast, value)
			} else if types.IsValid(retType) && types.IsValid(value.ExprType()) {
				p.errorf("incompatible types when returning type '%s' from function returning type '%s'", value.ExprType().String(), retType.String())
			}
			p.checkReturnLocalAddress(pos, value)
		}
	}
	return &ast.ReturnStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindReturnStatement, Pos: pos}}, Value: value}
}

// parseAsmStatement keeps the text between the parentheses opaque
// (spec §7 supplemented feature "inline asm... instruction-set
// semantics are out of the core's scope").
func (p *Parser) parseAsmStatement() ast.Statement {
	pos := p.cur.Pos
	p.next()
	for p.cur.Kind.IsTypeQualifier() { // `asm volatile (...)`
		p.next()
	}
	p.expect(token.LPAREN)
	var text string
	if p.curIs(token.STRING) {
		text = p.cur.Lit
		p.next()
	}
	p.syncTo(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.AsmStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindAsmStatement, Pos: pos}}, Text: text}
}
