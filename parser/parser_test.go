package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/lexer"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/types"
)

// parse runs src through the same lexer/parser wiring driver.Run uses,
// returning the translation unit and the diagnostics sink so a test can
// inspect both the AST and any emitted diagnostics.
func parse(src string, ws *diag.WarningSet) (*ast.TranslationUnit, *diag.Sink) {
	table := symbol.NewTable()
	sink := diag.NewSink(ws)
	lx := lexer.Open(src, "<test>", table)
	arena := types.NewArena()
	p := New(lx, table, arena, sink, false)
	return p.Parse(), sink
}

func firstDeclarator(t *testing.T, unit *ast.TranslationUnit) *ast.InitDeclarator {
	t.Helper()
	require.NotEmpty(t, unit.Decls)
	ds, ok := unit.Decls[0].(*ast.DeclarationStatement)
	require.True(t, ok, "expected a declaration statement")
	require.NotEmpty(t, ds.Declarators)
	return ds.Declarators[0]
}

// S1: int x = 1 + 2.5; -- x gets type int, initializer contains an
// implicit-cast node from double to int.
func TestScenarioS1ImplicitCastOnInitializer(t *testing.T) {
	unit, sink := parse("int x = 1 + 2.5;", nil)
	assert.False(t, sink.HasErrors(), sink.String())

	id := firstDeclarator(t, unit)
	assert.Equal(t, types.Int, id.Decl.Type.(*types.Basic).AKind)

	init, ok := id.Init.(*ast.ExprInitializer)
	require.True(t, ok)
	cast, ok := init.Value.(*ast.CastExpr)
	require.True(t, ok, "expected an implicit cast wrapping the initializer value")
	assert.Equal(t, types.Int, cast.TargetType.(*types.Basic).AKind)
	sum, ok := cast.Operand.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, types.Double, sum.ExprType().(*types.Basic).AKind)
}

// S2: int *p = 0; -- no diagnostic; the initializer's 0 is recognized
// as a null-pointer constant assignable to any pointer type.
func TestScenarioS2NullPointerConstantInitializer(t *testing.T) {
	unit, sink := parse("int *p = 0;", nil)
	assert.False(t, sink.HasErrors(), sink.String())
	assert.Empty(t, sink.Diagnostics())

	id := firstDeclarator(t, unit)
	_, isPointer := id.Decl.Type.(*types.Pointer)
	assert.True(t, isPointer)
}

// S3: int f(void), f(); -- second declaration redundantly declares f;
// a warning is emitted only when enabled, and there is no error.
func TestScenarioS3RedundantRedeclarationWarning(t *testing.T) {
	_, sink := parse("int f(void), f();", nil)
	assert.False(t, sink.HasErrors())
	var found bool
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a redundant-declaration warning")

	ws := diag.NewWarningSet()
	ws.Set(diag.WarnRedundantDecls, false)
	_, sink2 := parse("int f(void), f();", ws)
	assert.False(t, sink2.HasErrors())
	assert.Empty(t, sink2.Diagnostics())
}

// S4: int a[]; int a[5]; -- the first declaration's incomplete array
// size is filled in by the second; both share one symbol entry.
func TestScenarioS4IncompleteArraySizeFilledByRedeclaration(t *testing.T) {
	unit, sink := parse("int a[]; int a[5];", nil)
	assert.False(t, sink.HasErrors(), sink.String())
	require.Len(t, unit.Decls, 2)

	first := firstDeclarator(t, unit)
	second := unit.Decls[1].(*ast.DeclarationStatement).Declarators[0]

	assert.Same(t, first.Decl.Name, second.Decl.Name, "both declarators share the same symbol")

	arr, ok := types.SkipAlias(second.Decl.Type).(*types.Array)
	require.True(t, ok)
	require.NotNil(t, arr.Size)
	n, ok := arr.Size.ConstIntValue()
	require.True(t, ok)
	assert.Equal(t, int64(5), n)
}

// S5: int main(void){ switch(0){} } -- emits "switch has no default
// case" only under the relevant warning; otherwise compiles cleanly.
func TestScenarioS5SwitchMissingDefaultWarning(t *testing.T) {
	src := "int main(void){ switch(0){} }"

	_, sink := parse(src, nil)
	assert.False(t, sink.HasErrors())
	var found bool
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a switch-missing-default warning")

	ws := diag.NewWarningSet()
	ws.Set(diag.WarnSwitchDefault, false)
	_, sink2 := parse(src, ws)
	assert.False(t, sink2.HasErrors())
	assert.Empty(t, sink2.Diagnostics())
}

// S6: struct S { const int x; }; void f(struct S a, struct S b){ a = b; }
// -- emits "cannot assign to ... has a readonly field".
func TestScenarioS6ReadonlyFieldAssignmentRejected(t *testing.T) {
	src := `struct S { const int x; };
void f(struct S a, struct S b) { a = b; }`
	_, sink := parse(src, nil)
	require.True(t, sink.HasErrors())
	var msg string
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Error {
			msg = d.Message
		}
	}
	assert.Contains(t, msg, "readonly field")
}

// S7: int f(){ L: goto L; } -- no diagnostic; label L is defined and
// used exactly once.
func TestScenarioS7LabelDefinedAndUsed(t *testing.T) {
	_, sink := parse("int f(){ L: goto L; }", nil)
	assert.False(t, sink.HasErrors(), sink.String())
}

// S8: int f(){ goto L; } -- error: label used but not defined.
func TestScenarioS8UndefinedLabelIsError(t *testing.T) {
	_, sink := parse("int f(){ goto L; }", nil)
	require.True(t, sink.HasErrors())
	var msg string
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Error {
			msg = d.Message
		}
	}
	assert.Contains(t, msg, "undeclared label")
}

func TestCallArgumentCountAndTypeChecking(t *testing.T) {
	_, sink := parse("int f(int a, int b); int g(void){ return f(1); }", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "too few arguments")
}

func TestCallArgumentImplicitCast(t *testing.T) {
	src := "void f(double d); int g(void){ f(1); return 0; }"
	unit, sink := parse(src, nil)
	assert.False(t, sink.HasErrors(), sink.String())

	fn := unit.Decls[1].(*ast.FunctionDefinition)
	exprStmt := fn.Body.Items[0].(*ast.ExpressionStatement)
	call := exprStmt.Expr.(*ast.CallExpr)
	require.Len(t, call.Args, 1)
	_, ok := call.Args[0].(*ast.CastExpr)
	assert.True(t, ok, "expected the integer argument to be implicitly cast to double")
}

func TestReturnLocalAddressWarning(t *testing.T) {
	src := "int *f(void){ int x; return &x; }"
	_, sink := parse(src, nil)
	var found bool
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a return-local-address warning")
}

func TestSignCompareWarning(t *testing.T) {
	src := "int f(void){ int a; unsigned int b; return a < b; }"
	_, sink := parse(src, nil)
	var found bool
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a sign-compare warning")
}

// An enumerator used as an array size must constant-fold through its
// declaration the same way a literal would (spec §4.6, §3 enum-entry
// "kind slot" payload).
func TestEnumConstantFoldsAsArraySize(t *testing.T) {
	src := "enum { N = 4 }; int a[N];"
	unit, sink := parse(src, nil)
	require.False(t, sink.HasErrors(), sink.String())

	ds := unit.Decls[1].(*ast.DeclarationStatement)
	arr, ok := types.SkipAlias(ds.Declarators[0].Decl.Type).(*types.Array)
	require.True(t, ok)
	require.NotNil(t, arr.Size)
	n, ok := arr.Size.ConstIntValue()
	require.True(t, ok)
	assert.Equal(t, int64(4), n)
}

// An auto-incremented enumerator (no explicit `= value`) still
// constant-folds, and a `case` label naming one is accepted.
func TestEnumAutoIncrementFoldsInCaseLabel(t *testing.T) {
	src := `enum Color { Red, Green, Blue };
int f(enum Color c) {
	switch (c) {
	case Green:
		return 1;
	default:
		return 0;
	}
}`
	_, sink := parse(src, nil)
	require.False(t, sink.HasErrors(), sink.String())
}

// S4.9: `case` requires an integer constant expression; a non-constant
// case label is an error.
func TestCaseLabelRequiresConstantExpression(t *testing.T) {
	src := "int f(int x){ switch (x) { case x: return 1; default: return 0; } }"
	_, sink := parse(src, nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "integer constant")
}

// Unary & undoes automatic array decay: &arr is a pointer to the array
// type, not a pointer to its decayed pointer-to-element type.
func TestAddressOfArrayUndoesDecay(t *testing.T) {
	src := "int a[4]; int (*p)[4] = &a;"
	unit, sink := parse(src, nil)
	require.False(t, sink.HasErrors(), sink.String())

	ds := unit.Decls[1].(*ast.DeclarationStatement)
	init := ds.Declarators[0].Init.(*ast.ExprInitializer)
	u, ok := init.Value.(*ast.UnaryExpr)
	require.True(t, ok)
	ptr, ok := types.SkipAlias(u.ExprType()).(*types.Pointer)
	require.True(t, ok)
	_, ok = types.SkipAlias(ptr.Elem).(*types.Array)
	assert.True(t, ok, "expected &a to be a pointer to the array type")
}

// Unary & on a register-storage variable is an error.
func TestAddressOfRegisterVariableIsError(t *testing.T) {
	src := "int f(void){ register int x; int *p = &x; return 0; }"
	_, sink := parse(src, nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "register variable")
}

// Subscripting a non-array/pointer operand is an error (spec §4.8
// "Array subscript: one operand must be pointer-typed").
func TestSubscriptOfNonArrayIsError(t *testing.T) {
	src := "int f(int x){ return x[0]; }"
	_, sink := parse(src, nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "not an array or pointer")
}

// An array of void is an error (spec §4.6 declarator wrapping rules).
func TestArrayOfVoidIsError(t *testing.T) {
	_, sink := parse("void a[4];", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "array of void")
}

// A function cannot return a function type (spec §4.6 declarator
// wrapping rules: "function onto a function ... is an error"); reached
// through a typedef'd function type used as a return-type specifier.
func TestFunctionReturningFunctionIsError(t *testing.T) {
	_, sink := parse("typedef void G(void); G f();", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "function cannot return function")
}

// A function cannot return an array type (spec §4.6 declarator
// wrapping rules: "... or array type is an error"); reached through a
// typedef'd array type used as a return-type specifier.
func TestFunctionReturningArrayIsError(t *testing.T) {
	_, sink := parse("typedef int A[4]; A f();", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "function cannot return array")
}

// A static declaration following a non-static (here, default-to-
// extern) declaration of the same function is an error (spec §4.11
// storage-class merge rule).
func TestStaticFollowingNonStaticDeclarationIsError(t *testing.T) {
	_, sink := parse("int f(void); static int f(void);", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "static declaration")
}

// An explicit extern declaration following a prior extern declaration
// of the same object is a redundant-declaration warning, not an error
// (spec §4.11 "extern + extern is a redundant declaration warning").
func TestExternFollowingExternObjectIsRedundantWarning(t *testing.T) {
	_, sink := parse("extern int x; extern int x;", nil)
	assert.False(t, sink.HasErrors(), sink.String())
	var found bool
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a redundant-declaration warning")
}

// A parameter with storage class other than none/register is an error
// (spec §4.7 "storage class must be absent or `register`").
func TestParameterStorageClassMustBeAbsentOrRegister(t *testing.T) {
	_, sink := parse("int f(static int x);", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "invalid storage class")
}

// register is a valid parameter storage class; no diagnostic.
func TestParameterRegisterStorageClassIsAllowed(t *testing.T) {
	_, sink := parse("int f(register int x) { return x; }", nil)
	assert.False(t, sink.HasErrors(), sink.String())
}

// A parameter of incomplete (undefined tag) type is an error (spec
// §4.7 "incomplete types are rejected").
func TestParameterIncompleteTagTypeIsError(t *testing.T) {
	_, sink := parse("struct S; int f(struct S x);", nil)
	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.String(), "incomplete type")
}
