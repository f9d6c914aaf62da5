package parser

import (
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// startsTypeName reports whether the current token can begin a
// type-name or declaration-specifier sequence: any declaration-start
// keyword, or an identifier that names a visible typedef (spec §4.5/
// §4.6 "type-name").
func (p *Parser) startsTypeName() bool {
	if p.cur.Kind.IsDeclarationStart() {
		return true
	}
	if p.cur.Kind == token.IDENT {
		sym := p.table.Insert(p.cur.Lit)
		if d := sym.Namespace(symbol.NSOrdinary); d != nil && d.Storage == symbol.SCTypedef {
			return true
		}
	}
	return false
}

// peekStartsTypeNameAfterParen reports whether the token after the
// current '(' begins a type-name, used to disambiguate `sizeof(x)`
// (expression) from `sizeof(int)` (type-name) with one token of
// lookahead beyond what the cursor already holds (spec §4.8).
func (p *Parser) peekStartsTypeNameAfterParen() bool {
	if p.pk.Kind.IsDeclarationStart() {
		return true
	}
	if p.pk.Kind == token.IDENT {
		sym := p.table.Insert(p.pk.Lit)
		if d := sym.Namespace(symbol.NSOrdinary); d != nil && d.Storage == symbol.SCTypedef {
			return true
		}
	}
	return false
}

// parseTypeName parses a type-name: a declaration-specifier sequence
// followed by an optional abstract declarator (spec §4.6 "type-name").
func (p *Parser) parseTypeName() types.Type {
	spec := p.parseDeclarationSpecifiers()
	return p.parseAbstractDeclaratorSuffix(spec.typ)
}

// declaratorCore is the result of parsing a declarator's name and its
// pointer/array/function wrapping (spec §4.6): Name is nil for an
// abstract declarator.
type declaratorCore struct {
	name   *symbol.Symbol
	typ    types.Type
	params []*types.Param
	kr     bool
	krNames []*symbol.Symbol
}

// parseDeclarator parses a full (non-abstract) declarator: pointer
// prefixes, then a direct-declarator name, then postfix array/function
// suffixes. The pointer prefix wraps the base type first and the
// suffixes then wrap that, so `int *a[3]` is an array of pointers and
// `int *f(void)` a function returning a pointer.
func (p *Parser) parseDeclarator(base types.Type) *declaratorCore {
	typ, build := p.parsePointerPrefix(base)
	return p.parseDirectDeclarator(build(typ))
}

// parsePointerPrefix consumes zero or more `*` [qualifiers] prefixes
// and returns the base type plus a constructor that wraps a type in
// those pointers: the first `*` becomes the innermost pointer, and each
// pointer carries the qualifiers written after its own `*`.
func (p *Parser) parsePointerPrefix(base types.Type) (types.Type, func(types.Type) types.Type) {
	if !p.curIs(token.STAR) {
		return base, func(t types.Type) types.Type { return t }
	}
	p.next()
	var quals types.Qualifiers
	for p.cur.Kind.IsTypeQualifier() {
		switch p.cur.Kind {
		case token.CONST:
			quals |= types.Const
		case token.VOLATILE:
			quals |= types.Volatile
		case token.RESTRICT:
			quals |= types.Restrict
		}
		p.next()
	}
	inner, build := p.parsePointerPrefix(base)
	return inner, func(t types.Type) types.Type {
		ptr := p.arena.Qualify(p.arena.PointerTo(t), quals)
		return build(ptr)
	}
}

func (p *Parser) parseDirectDeclarator(base types.Type) *declaratorCore {
	var core *declaratorCore
	switch {
	case p.curIs(token.IDENT):
		sym := p.table.Insert(p.cur.Lit)
		core = &declaratorCore{name: sym}
		p.next()
	case p.curIs(token.LPAREN):
		p.next()
		inner, build := p.parsePointerPrefix(base)
		core = p.parseDirectDeclarator(inner)
		core.typ = build(core.typ)
		p.expect(token.RPAREN)
		return p.parseDeclaratorSuffixes(core, base)
	default:
		core = &declaratorCore{}
	}
	core.typ = base
	return p.parseDeclaratorSuffixes(core, base)
}

// parseDeclaratorSuffixes applies zero or more trailing `[...]` or
// `(...)` suffixes, each wrapping the previous type (spec §4.6 "array
// of" / "function returning").
func (p *Parser) parseDeclaratorSuffixes(core *declaratorCore, base types.Type) *declaratorCore {
	for {
		switch {
		case p.curIs(token.LBRACKET):
			p.next()
			var size types.SizeExpr
			static := false
			if p.curIs(token.STATIC) {
				static = true
				p.next()
			}
			for p.cur.Kind.IsTypeQualifier() {
				p.next()
			}
			if !p.curIs(token.RBRACKET) {
				size = p.parseAssignmentExpression()
			}
			p.expect(token.RBRACKET)
			vla := size != nil && !size.IsConstantExpression()
			if types.IsVoid(types.SkipAlias(core.typ)) {
				p.errorf("array of void is not allowed")
			}
			core.typ = p.arena.Intern(&types.Array{Elem: core.typ, Size: size, Static: static, VLA: vla})
		case p.curIs(token.LPAREN):
			p.next()
			params, variadic, unspecified, kr, names := p.parseParameterList()
			switch types.SkipAlias(core.typ).(type) {
			case *types.Function:
				p.errorf("function cannot return function type")
			case *types.Array:
				p.errorf("function cannot return array type")
			}
			core.typ = p.arena.Intern(&types.Function{Return: core.typ, Params: params, Variadic: variadic, UnspecifiedParams: unspecified, KR: kr})
			core.params = params
			core.kr = kr
			core.krNames = names
			p.expect(token.RPAREN)
		default:
			return core
		}
	}
}

// parseAbstractDeclaratorSuffix parses an optional abstract declarator
// (no name permitted) following a type-name's specifier sequence (spec
// §4.6).
func (p *Parser) parseAbstractDeclaratorSuffix(base types.Type) types.Type {
	typ, build := p.parsePointerPrefix(base)
	return p.parseDirectDeclarator(build(typ)).typ
}

// parseParameterList parses the four shapes spec §4.7 describes: `()`
// unspecified, `(void)` explicitly empty, a typed parameter list with
// optional trailing `...`, and a K&R identifier list (bare names, types
// supplied by following declarations before the function body).
func (p *Parser) parseParameterList() ([]*types.Param, bool, bool, bool, []*symbol.Symbol) {
	if p.curIs(token.RPAREN) {
		return nil, false, true, false, nil
	}
	if p.curIs(token.VOID) && p.peekIs(token.RPAREN) {
		p.next()
		return nil, false, false, false, nil
	}
	if p.curIs(token.IDENT) && !p.startsTypeName() {
		var names []*symbol.Symbol
		for {
			sym := p.table.Insert(p.cur.Lit)
			names = append(names, sym)
			p.expect(token.IDENT)
			if p.curIs(token.COMMA) {
				p.next()
				continue
			}
			break
		}
		return nil, false, false, true, names
	}

	var params []*types.Param
	variadic := false
	for {
		if p.curIs(token.ELLIPSIS) {
			variadic = true
			p.next()
			break
		}
		spec := p.parseDeclarationSpecifiers()
		core := p.parseDeclarator(spec.typ)
		name := ""
		if core.name != nil {
			name = core.name.Name
		}
		if spec.storage != symbol.SCNone && spec.storage != symbol.SCRegister {
			p.errorf("invalid storage class for parameter '%s'", name)
		}
		paramType := decayParamType(p.arena, core.typ)
		if p.isIncompleteType(paramType) {
			p.errorf("parameter '%s' has incomplete type '%s'", name, paramType.String())
		}
		params = append(params, &types.Param{Name: name, Type: paramType})
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	return params, variadic, false, false, nil
}

// decayParamType applies spec §4.7's parameter-type adjustment: array
// and function parameter types decay to pointer, top-level qualifiers
// on an array's element type are preserved on the resulting pointer.
func decayParamType(arena *types.Arena, t types.Type) types.Type {
	switch v := types.SkipAlias(t).(type) {
	case *types.Array:
		return arena.PointerTo(v.Elem)
	case *types.Function:
		return arena.PointerTo(t)
	default:
		return t
	}
}
