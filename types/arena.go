package types

// Arena owns all non-tag type storage and hash-conses every structurally
// finished type through a content-addressed table (spec §4.2): after a
// parser completes a structural type it calls Intern, which either
// returns an existing handle or accepts the draft as the canonical one.
//
// Tag types are never looked up here: their identity is their Decl
// handle, so Intern passes them through unchanged.
type Arena struct {
	table map[string]Type
}

// NewArena returns an empty interning arena. Nothing is pre-seeded:
// atomic types, like every other interned type, enter the table on
// first request.
func NewArena() *Arena {
	a := &Arena{table: make(map[string]Type)}
	return a
}

// Intern returns the canonical handle for t: an existing interned type
// with the same structural key if one exists, otherwise t itself after
// recording it. Intern is idempotent (spec R1: intern(intern(t)) ==
// intern(t)).
func (a *Arena) Intern(t Type) Type {
	switch t.Kind() {
	case KindStruct, KindUnion, KindEnum:
		// Tag types opt out of structural hash-consing; their identity
		// is the owning declaration (spec §4.2, §9).
		return t
	case KindError:
		return ErrorType
	}
	k := t.key()
	if existing, ok := a.table[k]; ok {
		return existing
	}
	a.table[k] = t
	return t
}

// Qualify returns the interned type equal to t but with qualifiers
// replaced by q. Pointer qualifiers attach to the pointer's own
// qualifier set per spec §4.6, so qualifying a pointer never touches
// its pointee.
func (a *Arena) Qualify(t Type, q Qualifiers) Type {
	switch v := t.(type) {
	case *Basic:
		cp := *v
		cp.Qual = q
		return a.Intern(&cp)
	case *Pointer:
		cp := *v
		cp.Qual = q
		return a.Intern(&cp)
	case *Array:
		cp := *v
		cp.Qual = q
		return a.Intern(&cp)
	case *Bitfield:
		cp := *v
		cp.Qual = q
		return a.Intern(&cp)
	case *Tag:
		cp := *v
		cp.Qual = q
		return &cp
	case *Alias:
		cp := *v
		cp.Qual = q
		return a.Intern(&cp)
	default:
		return t
	}
}

// Predeclared singletons, created lazily and cached through Intern so
// repeated lookups share one pointer as promised by the atomic-kind
// table in spec §4.5.
func (a *Arena) Atomic(k AtomicKind) Type {
	return a.Intern(&Basic{AKind: k})
}

func (a *Arena) PointerTo(elem Type) Type {
	return a.Intern(&Pointer{Elem: elem})
}

func (a *Arena) ArrayOf(elem Type, size SizeExpr) Type {
	return a.Intern(&Array{Elem: elem, Size: size})
}

// ConstSize is a SizeExpr holding an already-known constant, used when
// an array's element count is derived rather than parsed from source
// (spec §4.10: an initializer list's length or a string literal's
// length filling in an otherwise-unspecified array size).
type ConstSize int64

func (c ConstSize) IsConstantExpression() bool   { return true }
func (c ConstSize) ConstIntValue() (int64, bool) { return int64(c), true }
