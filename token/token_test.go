package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:4", Position{Line: 3, Column: 4}.String())
	assert.Equal(t, "foo.c:3:4", Position{File: "foo.c", Line: 3, Column: 4}.String())
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
		wantOK   bool
	}{
		{"int", INT, true},
		{"struct", STRUCT, true},
		{"return", RETURN, true},
		{"notakeyword", EOF, false},
	}
	for _, tt := range tests {
		kind, ok := IsKeyword(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.wantKind, kind, tt.in)
		}
	}
}

func TestKindClassification(t *testing.T) {
	assert.True(t, INT.IsDeclarationStart())
	assert.True(t, INT.IsTypeSpecifier())
	assert.False(t, INT.IsStorageClass())
	assert.False(t, INT.IsTypeQualifier())

	assert.True(t, STATIC.IsDeclarationStart())
	assert.True(t, STATIC.IsStorageClass())
	assert.False(t, STATIC.IsTypeSpecifier())

	assert.True(t, CONST.IsDeclarationStart())
	assert.True(t, CONST.IsTypeQualifier())
	assert.False(t, CONST.IsStorageClass())

	assert.False(t, IDENT.IsDeclarationStart())
	assert.False(t, SEMICOLON.IsDeclarationStart())
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENT, Pos: Position{Line: 1, Column: 1}, Lit: "foo"}
	assert.Contains(t, tok.String(), "foo")

	num := Token{Kind: INTCONST, Pos: Position{Line: 1, Column: 1}, IntVal: 42}
	assert.Contains(t, num.String(), "42")
}
