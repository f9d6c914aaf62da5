package parser

import (
	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// parseExternalDeclaration parses one top-level construct: a function
// definition or a declaration statement (spec §2 "translation unit").
// A stray top-level `;` is silently skipped.
func (p *Parser) parseExternalDeclaration() ast.ExternalDeclaration {
	if p.curIs(token.SEMICOLON) {
		p.next()
		return nil
	}
	spec := p.parseDeclarationSpecifiers()
	if p.curIs(token.SEMICOLON) {
		p.next()
		return &ast.DeclarationStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindDeclarationStatement, Pos: spec.pos}}}
	}

	first := p.parseDeclarator(spec.typ)
	if fn, ok := types.SkipAlias(first.typ).(*types.Function); ok && (p.curIs(token.LBRACE) || first.kr) {
		return p.parseFunctionDefinition(spec, first, fn)
	}
	return p.finishDeclaratorList(spec, first)
}

// parseDeclarationStatement is the block-scope entry point used by
// compound/for-statement parsing (spec §4.9/§4.11).
func (p *Parser) parseDeclarationStatement() *ast.DeclarationStatement {
	spec := p.parseDeclarationSpecifiers()
	if p.curIs(token.SEMICOLON) {
		pos := spec.pos
		p.next()
		return &ast.DeclarationStatement{StmtBase: ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindDeclarationStatement, Pos: pos}}}
	}
	first := p.parseDeclarator(spec.typ)
	return p.finishDeclaratorList(spec, first)
}

// finishDeclaratorList parses the remaining comma-separated declarators
// of a declaration-statement, recording each and attaching its optional
// initializer (spec §4.5/§4.10/§4.11).
func (p *Parser) finishDeclaratorList(spec *declSpec, first *declaratorCore) *ast.DeclarationStatement {
	pos := spec.pos
	var declarators []*ast.InitDeclarator
	core := first
	for {
		decl := p.recordDeclaration(spec, core)
		var init ast.Initializer
		if p.curIs(token.ASSIGN) {
			p.next()
			init = p.parseInitializer(core.typ)
			if arr, ok := types.SkipAlias(core.typ).(*types.Array); ok && arr.Size == nil && !arr.VLA {
				if n, ok := inferListSize(init); ok {
					cp := *arr
					cp.Size = types.ConstSize(n)
					inferred := p.arena.Intern(&cp)
					core.typ = inferred
					if decl != nil {
						decl.Type = inferred
					}
				}
			}
		}
		if decl != nil && init != nil {
			decl.Slot = init
		}
		declNode := &ast.Declarator{BaseNode: ast.BaseNode{NodeKind: ast.KindDeclarator, Pos: pos}, Name: core.name, Type: core.typ}
		declarators = append(declarators, &ast.InitDeclarator{BaseNode: ast.BaseNode{NodeKind: ast.KindInitDeclarator, Pos: pos}, Decl: declNode, Init: init})
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
		core = p.parseDeclarator(spec.typ)
	}
	p.expect(token.SEMICOLON)
	return &ast.DeclarationStatement{
		StmtBase:    ast.StmtBase{BaseNode: ast.BaseNode{NodeKind: ast.KindDeclarationStatement, Pos: pos}},
		Declarators: declarators,
		IsTypedef:   spec.storage == symbol.SCTypedef,
	}
}

// recordDeclaration implements the declaration-recording algorithm of
// spec §4.11: a typedef always introduces a fresh name; any other
// declarator either merges into an existing same-scope declaration
// (checking type compatibility and folding storage classes the way
// `extern` after `static` collapses to `static`) or introduces a new
// one, pushed onto the environment stack so later shadowing scopes can
// restore it.
func (p *Parser) recordDeclaration(spec *declSpec, core *declaratorCore) *symbol.Declaration {
	if core.name == nil {
		return nil
	}

	if spec.storage == symbol.SCTypedef {
		d := p.table.NewDecl()
		d.Symbol = core.name
		d.Namespace = symbol.NSOrdinary
		d.Storage = symbol.SCTypedef
		d.Type = core.typ
		d.Pos = spec.pos
		p.scope.Append(d)
		p.env.Push(d)
		return d
	}

	if existing := core.name.Namespace(symbol.NSOrdinary); existing != nil && existing.OwningScope == p.scope {
		if !types.Compatible(existing.Type, core.typ) {
			p.errorf("conflicting types for '%s'", core.name.Name)
		}

		existingEff := existing.Storage
		if existingEff == symbol.SCNone {
			if _, isFn := types.SkipAlias(existing.Type).(*types.Function); isFn {
				existingEff = symbol.SCExtern
			}
		}
		curEff := spec.storage
		if curEff == symbol.SCNone {
			if _, isFn := types.SkipAlias(core.typ).(*types.Function); isFn {
				curEff = symbol.SCExtern
			}
		}
		switch {
		case curEff == symbol.SCStatic && existingEff != symbol.SCStatic:
			p.errorf("static declaration of '%s' follows non-static declaration", core.name.Name)
		case existingEff == symbol.SCExtern && curEff == symbol.SCExtern:
			p.diags.Warnf(diag.WarnRedundantDecls, spec.pos, "redundant redeclaration of '%s'", core.name.Name)
		}

		storage := spec.storage
		switch {
		case storage == symbol.SCExtern && existing.Storage == symbol.SCStatic:
			storage = symbol.SCStatic
		case existing.Storage == symbol.SCExtern && storage == symbol.SCNone:
			storage = symbol.SCNone
		}
		existing.Storage = storage
		existing.Type = core.typ
		if spec.inline {
			existing.SetInline()
		}
		return existing
	}

	if existing := core.name.Namespace(symbol.NSOrdinary); existing != nil && p.scope == p.global {
		p.diags.Warnf(diag.WarnRedundantDecls, spec.pos, "redundant redeclaration of '%s'", core.name.Name)
	}

	d := p.table.NewDecl()
	d.Symbol = core.name
	d.Namespace = symbol.NSOrdinary
	d.Storage = spec.storage
	d.Type = core.typ
	d.Pos = spec.pos
	if spec.inline {
		d.SetInline()
	}
	p.scope.Append(d)
	p.env.Push(d)
	return d
}

// parseFunctionDefinition parses a function declarator's body,
// binding its parameters into a fresh function-wide scope, resolving
// K&R identifier-list parameter types if present, and checking label/
// goto consistency at function end (spec §4.9 jump, invariant P4,
// scenarios S7/S8).
func (p *Parser) parseFunctionDefinition(spec *declSpec, core *declaratorCore, fn *types.Function) ast.ExternalDeclaration {
	pos := spec.pos
	if core.name != nil && core.name.Name != "main" && spec.storage != symbol.SCStatic && core.name.Namespace(symbol.NSOrdinary) == nil {
		p.diags.Warnf(diag.WarnMissingPrototypes, spec.pos, "no previous prototype for '%s'", core.name.Name)
	}
	decl := p.recordDeclaration(spec, core)

	funcScope := symbol.NewScope(p.global)
	prevScope := p.scope
	p.scope = funcScope
	envMark := p.env.Mark()
	labelMark := p.labels.Mark()

	prevFn := p.fn
	p.fn = &funcContext{decl: decl, returnType: fn.Return, bodyScope: funcScope, labelMark: labelMark}

	for _, prm := range fn.Params {
		if prm.Name == "" {
			continue
		}
		sym := p.table.Insert(prm.Name)
		d := p.table.NewDecl()
		d.Symbol = sym
		d.Namespace = symbol.NSOrdinary
		d.Storage = symbol.SCAuto
		d.Type = prm.Type
		d.Pos = pos
		funcScope.Append(d)
		p.env.Push(d)
	}

	var krParams []*ast.Parameter
	if core.kr {
		for p.startsTypeName() {
			s := p.parseDeclarationSpecifiers()
			for {
				c := p.parseDeclarator(s.typ)
				if c.name != nil {
					paramType := decayParamType(p.arena, c.typ)
					d := p.table.NewDecl()
					d.Symbol = c.name
					d.Namespace = symbol.NSOrdinary
					d.Storage = symbol.SCAuto
					d.Type = paramType
					d.Pos = pos
					funcScope.Append(d)
					p.env.Push(d)
					krParams = append(krParams, &ast.Parameter{BaseNode: ast.BaseNode{NodeKind: ast.KindParameter, Pos: pos}, Name: c.name, Type: paramType})
				}
				if p.curIs(token.COMMA) {
					p.next()
					continue
				}
				break
			}
			p.expect(token.SEMICOLON)
		}
	}

	body := p.parseCompoundStatement()
	if decl != nil {
		decl.Slot = body
	}

	for _, g := range p.fn.gotos {
		if target := g.Label.Namespace(symbol.NSLabel); target == nil {
			p.diags.Errorf(g.Pos, "use of undeclared label '%s'", g.Label.Name)
		} else {
			target.SetUsed()
		}
	}

	for _, ld := range p.labels.Since(labelMark) {
		if !ld.IsUsed() {
			p.diags.Warnf(diag.WarnUnusedLabel, ld.Pos, "unused label '%s'", ld.Symbol.Name)
		}
	}

	p.labels.PopTo(labelMark)
	p.env.PopTo(envMark)
	p.scope = prevScope
	p.fn = prevFn

	if decl != nil && decl.Symbol.Name == "main" {
		checkMainSignature(p, decl, fn, pos)
	}

	declNode := &ast.Declarator{BaseNode: ast.BaseNode{NodeKind: ast.KindDeclarator, Pos: pos}, Name: core.name, Type: core.typ}
	return &ast.FunctionDefinition{BaseNode: ast.BaseNode{NodeKind: ast.KindFunctionDefinition, Pos: pos}, Decl: declNode, Params: krParams, Body: body}
}

// checkMainSignature flags the common ways `main` deviates from the
// shapes the C standard sanctions (spec §4.11 "function definitions
// additionally run checks on main").
func checkMainSignature(p *Parser, decl *symbol.Declaration, fn *types.Function, pos token.Position) {
	if decl.Storage == symbol.SCStatic {
		p.diags.Warnf(diag.WarnMain, pos, "'main' should not be declared 'static'")
	}
	if b, ok := types.SkipAlias(fn.Return).(*types.Basic); !ok || b.AKind != types.Int {
		p.diags.Warnf(diag.WarnMain, pos, "return type of 'main' should be 'int'")
	}
	switch len(fn.Params) {
	case 0, 2, 3:
	default:
		p.diags.Warnf(diag.WarnMain, pos, "'main' takes an unusual number of parameters")
	}
}
