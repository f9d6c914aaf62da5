package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
)

func TestLexer_BasicDeclaration(t *testing.T) {
	input := `int x = 1 + 2;`

	tests := []struct {
		expectedKind token.Kind
		expectedLit  string
	}{
		{token.INT, "int"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INTCONST, "1"},
		{token.PLUS, "+"},
		{token.INTCONST, "2"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	lx := Open(input, "<test>", symbol.NewTable())
	for i, tt := range tests {
		tok := lx.Next()
		assert.Equal(t, tt.expectedKind, tok.Kind, "test[%d] - kind wrong, got %s", i, tok.Kind)
		assert.Equal(t, tt.expectedLit, tok.Lit, "test[%d] - literal wrong", i)
	}
}

func TestLexer_Punctuators(t *testing.T) {
	input := `-> ++ -- << >> <= >= == != && || += -=`

	tests := []token.Kind{
		token.ARROW, token.INC, token.DEC, token.SHL, token.SHR,
		token.LE, token.GE, token.EQ, token.NE, token.LOGAND, token.LOGOR,
		token.PLUSEQ, token.MINUSEQ, token.EOF,
	}

	lx := Open(input, "<test>", symbol.NewTable())
	for i, want := range tests {
		tok := lx.Next()
		assert.Equal(t, want, tok.Kind, "test[%d]", i)
	}
}

func TestLexer_IntegerSuffixesAndBases(t *testing.T) {
	input := `0x1A 010 42u 42L 42UL 3.14 3.14f`

	lx := Open(input, "<test>", symbol.NewTable())

	tok := lx.Next()
	assert.Equal(t, token.INTCONST, tok.Kind)
	assert.Equal(t, uint64(0x1A), tok.IntVal)

	tok = lx.Next()
	assert.Equal(t, token.INTCONST, tok.Kind)
	assert.Equal(t, uint64(8), tok.IntVal)

	tok = lx.Next()
	assert.Equal(t, token.INTCONST, tok.Kind)
	assert.False(t, tok.IntSigned)

	tok = lx.Next()
	assert.Equal(t, token.INTCONST, tok.Kind)
	assert.Equal(t, token.RankLong, tok.IntRank)

	tok = lx.Next()
	assert.Equal(t, token.INTCONST, tok.Kind)
	assert.Equal(t, token.RankUnsignedLong, tok.IntRank)

	tok = lx.Next()
	assert.Equal(t, token.FLOATCONST, tok.Kind)
	assert.Equal(t, 3.14, tok.FloatVal)

	tok = lx.Next()
	assert.Equal(t, token.FLOATCONST, tok.Kind)
	assert.Equal(t, token.RankFloat, tok.FloatRank)
}

func TestLexer_AdjacentStringLiteralConcatenation(t *testing.T) {
	input := `"hello, " "world"`
	lx := Open(input, "<test>", symbol.NewTable())

	tok := lx.Next()
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, "hello, world", tok.Lit)

	tok = lx.Next()
	assert.Equal(t, token.EOF, tok.Kind)
}

func TestLexer_CommentsAndLineMarkersAreSkipped(t *testing.T) {
	input := "# 1 \"foo.c\"\nint /* comment */ x; // trailing\n"
	lx := Open(input, "<test>", symbol.NewTable())

	tok := lx.Next()
	assert.Equal(t, token.INT, tok.Kind)
	tok = lx.Next()
	assert.Equal(t, token.IDENT, tok.Kind)
	assert.Equal(t, "x", tok.Lit)
	tok = lx.Next()
	assert.Equal(t, token.SEMICOLON, tok.Kind)
	tok = lx.Next()
	assert.Equal(t, token.EOF, tok.Kind)
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	input := `a b`
	lx := Open(input, "<test>", symbol.NewTable())

	peeked := lx.Peek(1)
	assert.Equal(t, token.IDENT, peeked.Kind)
	assert.Equal(t, "a", peeked.Lit)

	tok := lx.Next()
	assert.Equal(t, "a", tok.Lit)

	tok = lx.Next()
	assert.Equal(t, "b", tok.Lit)
}
