// Package types implements the C type system: the tagged type model
// of spec §3, its hash-consing arena (spec §4.2), and the semantic
// rules of record for promotion, usual arithmetic conversion, and
// assignability (spec §4.8).
//
// Tag types (struct/union/enum) intentionally sit outside structural
// interning: their identity is the declaration that introduces them,
// referenced here only through the opaque DeclID handle described in
// spec §9, so this package never imports the symbol package that owns
// the actual Declaration values. That keeps the Type<->Declaration
// reference cycle from becoming a Go import cycle.
package types

import (
	"fmt"
	"strings"
)

// Kind tags the structural shape of a Type.
type Kind int

const (
	KindError Kind = iota
	KindAtomic
	KindBitfield
	KindStruct
	KindUnion
	KindEnum
	KindFunction
	KindPointer
	KindArray
	KindBuiltinAlias
	KindTypedefAlias
	KindTypeofAlias
)

// Qualifiers is a bitmask of cv-r qualifiers.
type Qualifiers uint8

const (
	Const Qualifiers = 1 << iota
	Volatile
	Restrict
)

func (q Qualifiers) String() string {
	var parts []string
	if q&Const != 0 {
		parts = append(parts, "const")
	}
	if q&Volatile != 0 {
		parts = append(parts, "volatile")
	}
	if q&Restrict != 0 {
		parts = append(parts, "restrict")
	}
	return strings.Join(parts, " ")
}

// AtomicKind enumerates the fixed set of built-in scalar kinds.
type AtomicKind int

const (
	Void AtomicKind = iota
	BoolKind
	Char
	SignedChar
	UnsignedChar
	Short
	UnsignedShort
	Int
	UnsignedInt
	Long
	UnsignedLong
	LongLong
	UnsignedLongLong
	Float
	Double
	LongDouble
	FloatComplex
	DoubleComplex
	LongDoubleComplex
	FloatImaginary
	DoubleImaginary
	LongDoubleImaginary
)

var atomicNames = map[AtomicKind]string{
	Void:                 "void",
	BoolKind:             "_Bool",
	Char:                 "char",
	SignedChar:           "signed char",
	UnsignedChar:         "unsigned char",
	Short:                "short",
	UnsignedShort:        "unsigned short",
	Int:                  "int",
	UnsignedInt:          "unsigned int",
	Long:                 "long",
	UnsignedLong:         "unsigned long",
	LongLong:             "long long",
	UnsignedLongLong:     "unsigned long long",
	Float:                "float",
	Double:               "double",
	LongDouble:           "long double",
	FloatComplex:         "float _Complex",
	DoubleComplex:        "double _Complex",
	LongDoubleComplex:    "long double _Complex",
	FloatImaginary:       "float _Imaginary",
	DoubleImaginary:      "double _Imaginary",
	LongDoubleImaginary:  "long double _Imaginary",
}

func (a AtomicKind) String() string {
	if s, ok := atomicNames[a]; ok {
		return s
	}
	return fmt.Sprintf("AtomicKind(%d)", int(a))
}

// rank orders integer/float atomic kinds for promotion and usual
// arithmetic conversion purposes. Kinds outside the arithmetic domain
// (void, aggregates) have no meaningful rank and are never compared.
var rankOrder = map[AtomicKind]int{
	BoolKind:         1,
	Char:             2,
	SignedChar:       2,
	UnsignedChar:     2,
	Short:            3,
	UnsignedShort:    3,
	Int:              4,
	UnsignedInt:      4,
	Long:             5,
	UnsignedLong:     5,
	LongLong:         6,
	UnsignedLongLong: 6,
}

var unsignedAtomic = map[AtomicKind]bool{
	BoolKind:         true,
	UnsignedChar:     true,
	UnsignedShort:    true,
	UnsignedInt:      true,
	UnsignedLong:     true,
	UnsignedLongLong: true,
}

// DeclID is an opaque handle to a declaration owned by the symbol
// package, used by tag and alias types to refer to their declaration
// without this package importing symbol (spec §9 Design Notes).
type DeclID int

// SizeExpr is satisfied by ast.Expression; array sizes and bitfield
// widths are held as this narrow interface so that the types package
// never needs to import ast.
type SizeExpr interface {
	IsConstantExpression() bool
	ConstIntValue() (int64, bool)
}

// Type is the common interface implemented by every concrete type
// node. Pointer equality between two non-tag Types returned by the
// same Arena implies structural equality (spec invariant I2/P1).
type Type interface {
	Kind() Kind
	Quals() Qualifiers
	String() string
	key() string
}

// ---- Atomic ----

type Basic struct {
	AKind AtomicKind
	Qual  Qualifiers
}

func (b *Basic) Kind() Kind      { return KindAtomic }
func (b *Basic) Quals() Qualifiers { return b.Qual }
func (b *Basic) String() string {
	if b.Qual == 0 {
		return b.AKind.String()
	}
	return b.Qual.String() + " " + b.AKind.String()
}
func (b *Basic) key() string { return fmt.Sprintf("B%d/%d", b.AKind, b.Qual) }

// ---- Pointer ----

type Pointer struct {
	Elem Type
	Qual Qualifiers
}

func (p *Pointer) Kind() Kind      { return KindPointer }
func (p *Pointer) Quals() Qualifiers { return p.Qual }
func (p *Pointer) String() string {
	s := p.Elem.String() + " *"
	if p.Qual != 0 {
		s += p.Qual.String()
	}
	return s
}
func (p *Pointer) key() string { return fmt.Sprintf("P%d(%s)", p.Qual, p.Elem.key()) }

// ---- Array ----

type Array struct {
	Elem   Type
	Size   SizeExpr // nil => incomplete/unspecified size
	Static bool     // `static` in a parameter array declarator
	VLA    bool     // variable-length array (non-constant size expression)
	Qual   Qualifiers
}

func (a *Array) Kind() Kind      { return KindArray }
func (a *Array) Quals() Qualifiers { return a.Qual }
func (a *Array) String() string {
	n := "?"
	if a.Size != nil {
		if v, ok := a.Size.ConstIntValue(); ok {
			n = fmt.Sprintf("%d", v)
		} else {
			n = "*"
		}
	}
	return fmt.Sprintf("%s[%s]", a.Elem.String(), n)
}
func (a *Array) key() string {
	n := "?"
	if a.Size != nil {
		if v, ok := a.Size.ConstIntValue(); ok {
			n = fmt.Sprintf("%d", v)
		} else {
			n = "vla"
		}
	}
	return fmt.Sprintf("A%d/%s(%s)", a.Qual, n, a.Elem.key())
}

// ---- Function ----

type Param struct {
	Name string
	Type Type
}

type Function struct {
	Return              Type
	Params              []*Param
	Variadic            bool
	UnspecifiedParams   bool // `()` — old-style unspecified parameter list
	KR                  bool // K&R identifier-list declarator awaiting types
	Qual                Qualifiers
}

func (f *Function) Kind() Kind      { return KindFunction }
func (f *Function) Quals() Qualifiers { return f.Qual }
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String()
	}
	if f.Variadic {
		parts = append(parts, "...")
	}
	return fmt.Sprintf("%s (%s)", f.Return.String(), strings.Join(parts, ", "))
}
func (f *Function) key() string {
	var sb strings.Builder
	sb.WriteString("F(")
	sb.WriteString(f.Return.key())
	for _, p := range f.Params {
		sb.WriteByte(',')
		sb.WriteString(p.Type.key())
	}
	if f.Variadic {
		sb.WriteString(",...")
	}
	if f.UnspecifiedParams {
		sb.WriteString(",?params")
	}
	sb.WriteByte(')')
	return sb.String()
}

// ---- Bitfield ----

type Bitfield struct {
	Base  Type // underlying atomic type
	Width SizeExpr
	Qual  Qualifiers
}

func (b *Bitfield) Kind() Kind      { return KindBitfield }
func (b *Bitfield) Quals() Qualifiers { return b.Qual }
func (b *Bitfield) String() string {
	w := "?"
	if b.Width != nil {
		if v, ok := b.Width.ConstIntValue(); ok {
			w = fmt.Sprintf("%d", v)
		}
	}
	return fmt.Sprintf("%s:%s", b.Base.String(), w)
}
func (b *Bitfield) key() string { return fmt.Sprintf("BF%d(%s)", b.Qual, b.Base.key()) }

// ---- Tag types (struct/union/enum) ----

// Tag represents a struct, union, or enum type. Its identity is its
// Decl handle, not its structure: two Tag values with the same TagKind
// and Decl are the same type even though they are never interned by
// content (spec invariant I2 carve-out, spec §4.2).
type Tag struct {
	TagKind Kind // KindStruct, KindUnion, or KindEnum
	Decl    DeclID
	Name    string // presentation name, "" if anonymous
	Qual    Qualifiers
}

func (t *Tag) Kind() Kind      { return t.TagKind }
func (t *Tag) Quals() Qualifiers { return t.Qual }
func (t *Tag) String() string {
	kw := map[Kind]string{KindStruct: "struct", KindUnion: "union", KindEnum: "enum"}[t.TagKind]
	if t.Name == "" {
		return fmt.Sprintf("%s {anonymous #%d}", kw, t.Decl)
	}
	return fmt.Sprintf("%s %s", kw, t.Name)
}
func (t *Tag) key() string { return fmt.Sprintf("TAG%d", t.Decl) }

// ---- Aliases: typedef, __typeof__, and compiler builtins ----

// Alias represents a typedef name, a __typeof__(expr-or-type) spelling,
// or a compiler builtin alias (e.g. __builtin_va_list). Real is the
// canonical type it stands for; Decl is set for typedef aliases (their
// identity tracks the introducing declaration) and zero otherwise.
type Alias struct {
	AliasKind Kind // KindTypedefAlias, KindTypeofAlias, or KindBuiltinAlias
	Decl      DeclID
	Name      string
	Real      Type
	Qual      Qualifiers
}

func (a *Alias) Kind() Kind      { return a.AliasKind }
func (a *Alias) Quals() Qualifiers { return a.Qual }
func (a *Alias) String() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Real.String()
}
func (a *Alias) key() string { return fmt.Sprintf("AL%d/%d(%s)", a.AliasKind, a.Decl, a.Real.key()) }

// Error is the sentinel "something went wrong" type. Subsequent rules
// treat it as valid input to avoid diagnostic cascades (spec §7.3).
type errorType struct{}

func (errorType) Kind() Kind        { return KindError }
func (errorType) Quals() Qualifiers { return 0 }
func (errorType) String() string    { return "<error type>" }
func (errorType) key() string       { return "ERR" }

// ErrorType is the single shared error-type sentinel.
var ErrorType Type = errorType{}

// SkipAlias follows typedef/typeof/builtin-alias chains down to the
// first non-alias type, the equivalent of cparser's skip_typeref.
func SkipAlias(t Type) Type {
	for {
		a, ok := t.(*Alias)
		if !ok {
			return t
		}
		t = a.Real
	}
}

// Unqualified returns a copy of t with its own qualifier set cleared
// (pointee/element qualifiers are untouched).
func Unqualified(t Type) Type {
	switch v := t.(type) {
	case *Basic:
		if v.Qual == 0 {
			return v
		}
		cp := *v
		cp.Qual = 0
		return &cp
	case *Pointer:
		if v.Qual == 0 {
			return v
		}
		cp := *v
		cp.Qual = 0
		return &cp
	case *Tag:
		if v.Qual == 0 {
			return v
		}
		cp := *v
		cp.Qual = 0
		return &cp
	default:
		return t
	}
}
