package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azw413/cparser/token"
)

func pos(line int) token.Position {
	return token.Position{File: "t.c", Line: line, Column: 1}
}

func TestSinkErrorfIncrementsErrorCount(t *testing.T) {
	s := NewSink(nil)
	assert.False(t, s.HasErrors())
	s.Errorf(pos(1), "bad thing %d", 1)
	assert.True(t, s.HasErrors())
	assert.Equal(t, 1, s.ErrorCount())
	assert.False(t, s.Fatal())
}

func TestSinkFatalfSetsFatalAndErrorCount(t *testing.T) {
	s := NewSink(nil)
	s.Fatalf(pos(1), "unrecoverable")
	assert.True(t, s.Fatal())
	assert.True(t, s.HasErrors())
	assert.Equal(t, 1, s.ErrorCount())
}

func TestSinkNotefDoesNotCountAsError(t *testing.T) {
	s := NewSink(nil)
	s.Notef(pos(1), "fyi")
	assert.False(t, s.HasErrors())
	assert.Equal(t, 0, s.ErrorCount())
	assert.Len(t, s.Diagnostics(), 1)
}

func TestSinkWarnfGatedByWarningSet(t *testing.T) {
	ws := NewWarningSet()
	ws.Set(WarnSignCompare, false)
	s := NewSink(ws)

	s.Warnf(WarnSignCompare, pos(1), "signed/unsigned compare")
	assert.Empty(t, s.Diagnostics(), "disabled warning must not be emitted")

	s.Warnf(WarnCharSubscripts, pos(2), "char subscript")
	assert.Len(t, s.Diagnostics(), 1)
}

func TestNewSinkWithNilWarningSetEnablesEverything(t *testing.T) {
	s := NewSink(nil)
	s.Warnf(WarnSignCompare, pos(1), "compare")
	s.Warnf(WarnReturnLocalAddr, pos(2), "addr")
	assert.Len(t, s.Diagnostics(), 2)
}

func TestDiagnosticStringFormat(t *testing.T) {
	d := Diagnostic{Severity: Error, Pos: pos(3), Message: "oops"}
	assert.Equal(t, "t.c:3:1: error: oops", d.String())
}

func TestSinkStringJoinsDiagnosticsWithNewlines(t *testing.T) {
	s := NewSink(nil)
	s.Errorf(pos(1), "first")
	s.Errorf(pos(2), "second")
	assert.Equal(t, "t.c:1:1: error: first\nt.c:2:1: error: second", s.String())
}

func TestDiagnosticsOrderingPreservesEmissionOrder(t *testing.T) {
	s := NewSink(nil)
	s.Notef(pos(1), "a")
	s.Warnf(WarnMain, pos(2), "b")
	s.Errorf(pos(3), "c")
	diags := s.Diagnostics()
	if assert.Len(t, diags, 3) {
		assert.Equal(t, Note, diags[0].Severity)
		assert.Equal(t, Warning, diags[1].Severity)
		assert.Equal(t, Error, diags[2].Severity)
	}
}

func TestInternalSeverityStringIsError(t *testing.T) {
	assert.Equal(t, "error", Internal.String())
}
