package parser

import (
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// declSpec is the result of the declaration-specifier parser (spec
// §4.5): the accumulated storage class, qualifier set, and resolved
// base type, ready to be wrapped by the declarator constructor chain
// (spec §4.6).
type declSpec struct {
	storage   symbol.StorageClass
	quals     types.Qualifiers
	typ       types.Type
	inline    bool
	pos       token.Position
}

// specAccum tracks the type-specifier bitmask-equivalent of spec §4.5
// ("type specifiers are accumulated as a bitmask") as individual
// counters, since Go has no convenient packed-bitfield syntax for this
// many orthogonal axes.
type specAccum struct {
	void, charSpec, short, intSpec, float, double, boolSpec bool
	signedSpec, unsignedSpec                                bool
	longCount                                                int
	complexCount                                             int
	imaginary                                                bool
	explicit                                                 types.Type // struct/union/enum/typeof/typedef-name, overrides the atomic mask entirely
}

// parseDeclarationSpecifiers accumulates storage class, qualifiers,
// and type specifiers in one pass (spec §4.5).
func (p *Parser) parseDeclarationSpecifiers() *declSpec {
	spec := &declSpec{pos: p.cur.Pos}
	var acc specAccum
	haveStorage := false
	isThread := false

	for {
		switch {
		case p.cur.Kind.IsStorageClass():
			sc, thread := storageFromToken(p.cur.Kind)
			if thread {
				isThread = true
				p.next()
				continue
			}
			if haveStorage && spec.storage != sc {
				p.errorf("multiple storage classes in declaration specifiers")
			}
			spec.storage = sc
			haveStorage = true
			p.next()

		case p.cur.Kind.IsTypeQualifier():
			switch p.cur.Kind {
			case token.CONST:
				spec.quals |= types.Const
			case token.VOLATILE:
				spec.quals |= types.Volatile
			case token.RESTRICT:
				spec.quals |= types.Restrict
			case token.INLINE, token.FORCEINLINE:
				spec.inline = true
			}
			p.next()

		case p.cur.Kind == token.STRUCT || p.cur.Kind == token.UNION:
			if acc.hasAtomic() {
				p.errorf("cannot combine %s with a prior type specifier", p.cur.Kind)
			}
			acc.explicit = p.parseStructOrUnionSpecifier()

		case p.cur.Kind == token.ENUM:
			if acc.hasAtomic() {
				p.errorf("cannot combine enum with a prior type specifier")
			}
			acc.explicit = p.parseEnumSpecifier()

		case p.cur.Kind == token.TYPEOF:
			if acc.hasAtomic() {
				p.errorf("cannot combine __typeof__ with a prior type specifier")
			}
			acc.explicit = p.parseTypeofSpecifier()

		case p.cur.Kind == token.BUILTIN_VA_LIST:
			acc.explicit = p.arena.Intern(&types.Alias{AliasKind: types.KindBuiltinAlias, Name: "__builtin_va_list", Real: p.arena.Atomic(types.Int)})
			p.next()

		case p.cur.Kind == token.IDENT && acc.explicit == nil && !acc.hasAtomic():
			sym := p.table.Insert(p.cur.Lit)
			if d := sym.Namespace(symbol.NSOrdinary); d != nil && d.Storage == symbol.SCTypedef {
				acc.explicit = p.arena.Intern(&types.Alias{AliasKind: types.KindTypedefAlias, Decl: d.ID, Name: sym.Name, Real: d.Type})
				p.next()
			} else {
				goto done
			}

		case p.cur.Kind.IsTypeSpecifier():
			if acc.explicit != nil {
				p.errorf("cannot combine %s with a prior type specifier", p.cur.Kind)
			}
			p.accumulateAtomicSpecifier(&acc)
			p.next()

		default:
			goto done
		}
	}

done:
	if isThread {
		switch spec.storage {
		case symbol.SCExtern:
			spec.storage = symbol.SCThreadExtern
		case symbol.SCStatic:
			spec.storage = symbol.SCThreadStatic
		default:
			spec.storage = symbol.SCThread
		}
	}

	if acc.explicit != nil {
		spec.typ = acc.explicit
	} else {
		kind, ok := acc.resolve()
		if !ok {
			if p.strict {
				p.errorf("a type specifier is required")
			} else {
				p.diags.Warnf(diag.WarnImplicitInt, spec.pos, "type defaults to 'int' in declaration")
			}
			kind = types.Int
		}
		spec.typ = p.arena.Atomic(kind)
	}
	spec.typ = p.arena.Qualify(spec.typ, spec.quals)
	return spec
}

func (a *specAccum) hasAtomic() bool {
	return a.void || a.charSpec || a.short || a.intSpec || a.float || a.double ||
		a.boolSpec || a.signedSpec || a.unsignedSpec || a.longCount > 0 || a.complexCount > 0 || a.imaginary
}

func storageFromToken(k token.Kind) (symbol.StorageClass, bool) {
	switch k {
	case token.TYPEDEF:
		return symbol.SCTypedef, false
	case token.EXTERN:
		return symbol.SCExtern, false
	case token.STATIC:
		return symbol.SCStatic, false
	case token.AUTO:
		return symbol.SCAuto, false
	case token.REGISTER:
		return symbol.SCRegister, false
	case token.THREAD_LOCAL:
		return symbol.SCNone, true
	default:
		return symbol.SCNone, false
	}
}

func (p *Parser) accumulateAtomicSpecifier(acc *specAccum) {
	switch p.cur.Kind {
	case token.VOID:
		acc.void = true
	case token.CHAR:
		acc.charSpec = true
	case token.SHORT:
		acc.short = true
	case token.INT:
		acc.intSpec = true
	case token.LONG:
		acc.longCount++
		if acc.longCount > 2 {
			p.errorf("too many 'long' in declaration specifiers")
		}
	case token.FLOAT:
		acc.float = true
	case token.DOUBLE:
		acc.double = true
	case token.SIGNED:
		acc.signedSpec = true
	case token.UNSIGNED:
		acc.unsignedSpec = true
	case token.BOOL:
		acc.boolSpec = true
	case token.COMPLEX:
		acc.complexCount++
	case token.IMAGINARY:
		acc.imaginary = true
	}
}

// resolve matches the accumulated specifier bitmask against the C99
// base-type table (spec §4.5), returning false when no specifier was
// seen at all.
func (a *specAccum) resolve() (types.AtomicKind, bool) {
	switch {
	case a.boolSpec:
		return types.BoolKind, true
	case a.void:
		return types.Void, true
	case a.charSpec:
		switch {
		case a.unsignedSpec:
			return types.UnsignedChar, true
		case a.signedSpec:
			return types.SignedChar, true
		default:
			return types.Char, true
		}
	case a.short:
		if a.unsignedSpec {
			return types.UnsignedShort, true
		}
		return types.Short, true
	case a.longCount >= 2:
		if a.unsignedSpec {
			return types.UnsignedLongLong, true
		}
		return types.LongLong, true
	case a.longCount == 1 && a.double:
		if a.complexCount > 0 {
			return types.LongDoubleComplex, true
		}
		if a.imaginary {
			return types.LongDoubleImaginary, true
		}
		return types.LongDouble, true
	case a.longCount == 1:
		if a.unsignedSpec {
			return types.UnsignedLong, true
		}
		return types.Long, true
	case a.double:
		if a.complexCount > 0 {
			return types.DoubleComplex, true
		}
		if a.imaginary {
			return types.DoubleImaginary, true
		}
		return types.Double, true
	case a.float:
		if a.complexCount > 0 {
			return types.FloatComplex, true
		}
		if a.imaginary {
			return types.FloatImaginary, true
		}
		return types.Float, true
	case a.unsignedSpec:
		return types.UnsignedInt, true
	case a.signedSpec, a.intSpec:
		return types.Int, true
	default:
		return types.Int, false
	}
}
