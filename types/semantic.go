package types

// This file implements the "semantic rules of record" of spec §4.8:
// integer promotion, usual arithmetic conversions, and pointer/
// arithmetic assignability. Each function is grounded line-for-line on
// the corresponding routine in the cparser project's parser.c
// (promote_integer, semantic_arithmetic, semantic_assign,
// is_null_pointer_constant); see DESIGN.md for the exact source lines.

// IsArithmetic reports whether t is an atomic numeric type (excludes
// void and _Bool is counted as arithmetic, matching C's treatment of
// _Bool as an integer type).
func IsArithmetic(t Type) bool {
	b, ok := SkipAlias(t).(*Basic)
	if !ok {
		return false
	}
	return b.AKind != Void
}

// IsInteger reports whether t is an integer atomic type, _Bool
// included. Enum tags and bitfields are not atomic types and report
// false.
func IsInteger(t Type) bool {
	b, ok := SkipAlias(t).(*Basic)
	if !ok {
		return false
	}
	switch b.AKind {
	case Float, Double, LongDouble, FloatComplex, DoubleComplex, LongDoubleComplex,
		FloatImaginary, DoubleImaginary, LongDoubleImaginary, Void:
		return false
	default:
		return true
	}
}

// IsFloating reports whether t is a floating-point atomic type.
func IsFloating(t Type) bool {
	b, ok := SkipAlias(t).(*Basic)
	if !ok {
		return false
	}
	switch b.AKind {
	case Float, Double, LongDouble, FloatComplex, DoubleComplex, LongDoubleComplex,
		FloatImaginary, DoubleImaginary, LongDoubleImaginary:
		return true
	default:
		return false
	}
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := SkipAlias(t).(*Pointer)
	return ok
}

// IsFunction reports whether t is a function type.
func IsFunction(t Type) bool {
	_, ok := SkipAlias(t).(*Function)
	return ok
}

// IsCompound reports whether t is a struct or union type (spec's
// "compound type", used by the modifiable-lvalue and conditional-
// expression rules).
func IsCompound(t Type) bool {
	switch SkipAlias(t).Kind() {
	case KindStruct, KindUnion:
		return true
	default:
		return false
	}
}

// IsVoid reports whether t is the atomic void type.
func IsVoid(t Type) bool {
	b, ok := SkipAlias(t).(*Basic)
	return ok && b.AKind == Void
}

// IsValid reports whether t is not the error-type sentinel (spec §7.3:
// "the offending node is typed with an error type sentinel which
// subsequent rules treat as valid").
func IsValid(t Type) bool {
	return t.Kind() != KindError
}

// IsSigned reports the signedness of an arithmetic atomic type.
func IsSigned(t Type) bool {
	b, ok := SkipAlias(t).(*Basic)
	if !ok {
		return true
	}
	return !unsignedAtomic[b.AKind]
}

func rank(t Type) int {
	b, ok := SkipAlias(t).(*Basic)
	if !ok {
		return 0
	}
	if r, ok := rankOrder[b.AKind]; ok {
		return r
	}
	return 0
}

// PromoteInteger implements C99's integer promotion: a bitfield takes
// its base type first, and anything with rank below int promotes to
// int (original: promote_integer, parser.c:648).
func (a *Arena) PromoteInteger(t Type) Type {
	if bf, ok := SkipAlias(t).(*Bitfield); ok {
		t = bf.Base
	}
	if rank(t) != 0 && rank(t) < rankOrder[Int] {
		return a.Atomic(Int)
	}
	return t
}

// Arithmetic implements the usual arithmetic conversions of C99
// §6.3.1.8 (original: semantic_arithmetic, parser.c:4216): long double
// dominates, then double, then float; otherwise both operands are
// integer-promoted and the lower-rank operand converts to the higher
// rank with the sign-preservation tie-break.
func (a *Arena) Arithmetic(left, right Type) Type {
	left, right = SkipAlias(left), SkipAlias(right)

	longDouble := a.Atomic(LongDouble)
	dbl := a.Atomic(Double)
	flt := a.Atomic(Float)

	if sameAtomic(left, longDouble) || sameAtomic(right, longDouble) {
		return longDouble
	}
	if sameAtomic(left, dbl) || sameAtomic(right, dbl) {
		return dbl
	}
	if sameAtomic(left, flt) || sameAtomic(right, flt) {
		return flt
	}

	left = a.PromoteInteger(left)
	right = a.PromoteInteger(right)

	if sameAtomic(left, right) {
		return left
	}

	signedLeft, signedRight := IsSigned(left), IsSigned(right)
	rankLeft, rankRight := rank(left), rank(right)

	if rankLeft < rankRight {
		if signedLeft == signedRight || !signedRight {
			return right
		}
		return left
	}
	if signedLeft == signedRight || !signedLeft {
		return left
	}
	return right
}

func sameAtomic(t Type, atomic Type) bool {
	b1, ok1 := t.(*Basic)
	b2, ok2 := atomic.(*Basic)
	return ok1 && ok2 && b1.AKind == b2.AKind
}

// ConstExpr is the minimal shape of a constant-foldable expression
// needed by IsNullPointerConstant; ast.Expression satisfies it.
type ConstExpr interface {
	SizeExpr
	ExprType() Type
}

// IsNullPointerConstant reports whether expr is an integer constant
// expression with value 0, either as is or cast to void* (original:
// is_null_pointer_constant, parser.c:676).
func IsNullPointerConstant(expr ConstExpr) bool {
	if expr == nil {
		return false
	}
	t := SkipAlias(expr.ExprType())
	if ptr, ok := t.(*Pointer); ok {
		if !IsVoid(SkipAlias(ptr.Elem)) {
			return false
		}
	} else if !IsInteger(t) {
		return false
	}
	v, ok := expr.ConstIntValue()
	return ok && v == 0
}

// Assign implements the assignability check of C99 §6.5.16.1 (original:
// semantic_assign, parser.c:717). It returns the type the right-hand
// side must be cast to, or nil if left and right are not assignment-
// compatible.
func (a *Arena) Assign(left Type, right Type, rightIsNullConst bool) Type {
	typeLeft := SkipAlias(left)
	typeRight := SkipAlias(right)

	if (IsArithmetic(typeLeft) && IsArithmetic(typeRight)) ||
		(IsPointer(typeLeft) && rightIsNullConst) ||
		(isBool(typeLeft) && IsPointer(typeRight)) {
		return left
	}

	if lp, ok := typeLeft.(*Pointer); ok {
		if rp, ok := typeRight.(*Pointer); ok {
			pointeeLeft := SkipAlias(lp.Elem)
			pointeeRight := SkipAlias(rp.Elem)

			missing := pointeeRight.Quals() &^ pointeeLeft.Quals()
			if missing != 0 {
				return nil
			}

			unqualLeft := Unqualified(pointeeLeft)
			unqualRight := Unqualified(pointeeRight)

			if !isVoidBasic(unqualLeft) && !isVoidBasic(unqualRight) &&
				!Compatible(unqualLeft, unqualRight) {
				return nil
			}
			return left
		}
	}

	if IsCompound(typeLeft) && IsCompound(typeRight) {
		if Compatible(Unqualified(typeLeft), Unqualified(typeRight)) {
			return left
		}
	}

	if !IsValid(typeLeft) {
		return left
	}
	if !IsValid(typeRight) {
		return right
	}

	return nil
}

func isBool(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.AKind == BoolKind
}

func isVoidBasic(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.AKind == Void
}

// Compatible reports structural compatibility of two already-
// unqualified, alias-skipped types, used by assignment and redeclaration
// checks. Non-tag types compare by interned pointer identity when both
// came from the same Arena; this structural fallback also handles
// values not yet interned (e.g. a draft still being composed).
func Compatible(a, b Type) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Basic:
		bv := b.(*Basic)
		return av.AKind == bv.AKind
	case *Pointer:
		bv := b.(*Pointer)
		return Compatible(SkipAlias(av.Elem), SkipAlias(bv.Elem))
	case *Array:
		bv := b.(*Array)
		if !Compatible(SkipAlias(av.Elem), SkipAlias(bv.Elem)) {
			return false
		}
		if av.Size == nil || bv.Size == nil {
			return true
		}
		av1, ok1 := av.Size.ConstIntValue()
		bv1, ok2 := bv.Size.ConstIntValue()
		return !ok1 || !ok2 || av1 == bv1
	case *Function:
		bv := b.(*Function)
		if !Compatible(SkipAlias(av.Return), SkipAlias(bv.Return)) {
			return false
		}
		if av.UnspecifiedParams || bv.UnspecifiedParams {
			return true
		}
		if len(av.Params) != len(bv.Params) || av.Variadic != bv.Variadic {
			return false
		}
		for i := range av.Params {
			if !Compatible(SkipAlias(av.Params[i].Type), SkipAlias(bv.Params[i].Type)) {
				return false
			}
		}
		return true
	case *Tag:
		bv := b.(*Tag)
		return av.Decl == bv.Decl
	default:
		return false
	}
}

// ConditionalResult implements the result-type rule for `?:` (spec
// §4.8): arithmetic if both branches are arithmetic (via usual
// arithmetic conversions), the same compound type if both branches
// share one, void if both are void, a pointer-compatible pointer type
// otherwise, and the error type on mismatch.
func (a *Arena) ConditionalResult(left, right Type) Type {
	tl, tr := SkipAlias(left), SkipAlias(right)

	if IsArithmetic(tl) && IsArithmetic(tr) {
		return a.Arithmetic(tl, tr)
	}
	if IsCompound(tl) && IsCompound(tr) && Compatible(tl, tr) {
		return left
	}
	if IsVoid(tl) && IsVoid(tr) {
		return left
	}
	if IsPointer(tl) && IsPointer(tr) {
		lp, rp := tl.(*Pointer), tr.(*Pointer)
		lpointee, rpointee := SkipAlias(lp.Elem), SkipAlias(rp.Elem)
		if isVoidBasic(lpointee) {
			return right
		}
		if isVoidBasic(rpointee) {
			return left
		}
		if Compatible(Unqualified(lpointee), Unqualified(rpointee)) {
			return left
		}
	}
	if IsPointer(tl) && IsInteger(tr) {
		return left
	}
	if IsInteger(tl) && IsPointer(tr) {
		return right
	}
	return ErrorType
}
