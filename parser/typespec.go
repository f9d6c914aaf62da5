package parser

import (
	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// parseStructOrUnionSpecifier parses `struct`/`union` [tag] [{ member-
// decl-list }] (spec §3 Declaration, §4.5). A member-decl-list is kept
// as its own symbol.Scope held in the tag declaration's Slot, reused by
// MemberExpr resolution instead of a dedicated field-list type.
func (p *Parser) parseStructOrUnionSpecifier() types.Type {
	kind := types.KindStruct
	ns := symbol.NSStructTag
	if p.cur.Kind == token.UNION {
		kind = types.KindUnion
		ns = symbol.NSUnionTag
	}
	pos := p.cur.Pos
	p.next()

	var tagSym *symbol.Symbol
	name := ""
	if p.curIs(token.IDENT) {
		tagSym = p.table.Insert(p.cur.Lit)
		name = tagSym.Name
		p.next()
	}

	if !p.curIs(token.LBRACE) {
		if tagSym == nil {
			p.errorf("expected a tag or '{' after struct/union")
			return types.ErrorType
		}
		if d := tagSym.Namespace(ns); d != nil {
			return &types.Tag{TagKind: kind, Decl: d.ID, Name: name}
		}
		d := p.table.NewDecl()
		d.Symbol = tagSym
		d.Namespace = ns
		d.Pos = pos
		p.scope.Append(d)
		p.env.Push(d)
		return &types.Tag{TagKind: kind, Decl: d.ID, Name: name}
	}

	var d *symbol.Declaration
	if tagSym != nil {
		if existing := tagSym.Namespace(ns); existing != nil && !existing.Defined {
			d = existing
		}
	}
	if d == nil {
		d = p.table.NewDecl()
		d.Symbol = tagSym
		d.Namespace = ns
		d.Pos = pos
		if tagSym != nil {
			p.scope.Append(d)
			p.env.Push(d)
		}
	}

	p.next() // consume '{'
	memberScope := symbol.NewScope(nil)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		mspec := p.parseDeclarationSpecifiers()
		for {
			mcore := p.parseDeclarator(mspec.typ)
			mtyp := mcore.typ
			if p.curIs(token.COLON) {
				p.next()
				width := p.parseExpression(precConditional - 1)
				mtyp = p.arena.Intern(&types.Bitfield{Base: mtyp, Width: width})
			}
			md := p.table.NewDecl()
			md.Symbol = mcore.name
			md.Namespace = symbol.NSOrdinary
			md.Type = mtyp
			md.Pos = mspec.pos
			memberScope.Append(md)
			if p.curIs(token.COMMA) {
				p.next()
				continue
			}
			break
		}
		p.expect(token.SEMICOLON)
	}
	p.expect(token.RBRACE)

	d.Slot = memberScope
	d.Defined = true
	d.Type = &types.Tag{TagKind: kind, Decl: d.ID, Name: name}

	return &types.Tag{TagKind: kind, Decl: d.ID, Name: name}
}

// parseEnumSpecifier parses `enum` [tag] [{ enumerator-list }] (spec
// §3/§4.5); enumerators are ordinary-namespace declarations of type
// int with ascending values (spec §9 Open Questions: no explicit
// range/overflow validation is performed, matching cparser's own
// unvalidated behavior).
func (p *Parser) parseEnumSpecifier() types.Type {
	pos := p.cur.Pos
	p.next()

	var tagSym *symbol.Symbol
	name := ""
	if p.curIs(token.IDENT) {
		tagSym = p.table.Insert(p.cur.Lit)
		name = tagSym.Name
		p.next()
	}

	if !p.curIs(token.LBRACE) {
		if tagSym == nil {
			p.errorf("expected a tag or '{' after enum")
			return types.ErrorType
		}
		if d := tagSym.Namespace(symbol.NSEnumTag); d != nil {
			return &types.Tag{TagKind: types.KindEnum, Decl: d.ID, Name: name}
		}
		d := p.table.NewDecl()
		d.Symbol = tagSym
		d.Namespace = symbol.NSEnumTag
		d.Pos = pos
		p.scope.Append(d)
		p.env.Push(d)
		return &types.Tag{TagKind: types.KindEnum, Decl: d.ID, Name: name}
	}

	d := p.table.NewDecl()
	d.Symbol = tagSym
	d.Namespace = symbol.NSEnumTag
	d.Pos = pos
	if tagSym != nil {
		p.scope.Append(d)
		p.env.Push(d)
	}

	p.next() // consume '{'
	intType := p.arena.Atomic(types.Int)
	var next int64
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.errorf("expected an enumerator name")
			break
		}
		esym := p.table.Insert(p.cur.Lit)
		epos := p.cur.Pos
		p.next()
		var value ast.Expression
		if p.curIs(token.ASSIGN) {
			p.next()
			value = p.parseExpression(precConditional - 1)
			if val, ok := value.ConstIntValue(); ok {
				next = val
			}
		} else {
			value = &ast.IntLiteral{ExprBase: ast.ExprBase{BaseNode: ast.BaseNode{NodeKind: ast.KindIntLiteral, Pos: epos}, Type: intType}, Value: uint64(next), Signed: true}
		}
		ed := p.table.NewDecl()
		ed.Symbol = esym
		ed.Namespace = symbol.NSOrdinary
		ed.Storage = symbol.SCEnumEntry
		ed.Type = intType
		ed.Pos = epos
		ed.Slot = value
		p.scope.Append(ed)
		p.env.Push(ed)
		next++
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACE)

	d.Defined = true
	d.Type = intType
	return &types.Tag{TagKind: types.KindEnum, Decl: d.ID, Name: name}
}

// parseTypeofSpecifier parses `__typeof__(expr)` or
// `__typeof__(type-name)` (spec §7 supplemented feature).
func (p *Parser) parseTypeofSpecifier() types.Type {
	p.next()
	p.expect(token.LPAREN)
	var real types.Type
	if p.startsTypeName() {
		real = p.parseTypeName()
	} else {
		real = p.parseExpression(precNone).ExprType()
	}
	p.expect(token.RPAREN)
	return p.arena.Intern(&types.Alias{AliasKind: types.KindTypeofAlias, Real: real})
}
