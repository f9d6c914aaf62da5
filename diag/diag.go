// Package diag implements the line-addressed diagnostics sink of
// spec §6/§7: a severity-tagged message stream with a global counter,
// consulting a configurable warning set. It is adapted directly from
// the teacher's errors package (errors.Error/ErrorList/ErrorReporter),
// renamed to the severities spec.md actually uses.
package diag

import (
	"fmt"
	"strings"

	"github.com/azw413/cparser/token"
)

// Severity classifies a Diagnostic (spec §6: "Severities are warning,
// error, note").
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	// Internal diagnostics correspond to spec §7's fourth error-
	// taxonomy category ("invariant violation — aborts translation
	// with a fatal message"); they are reported through Sink like any
	// other diagnostic but additionally cause Sink.Fatal to be set.
	Internal
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Internal:
		return "error" // internal errors print as errors; Fatal flags the distinction
	default:
		return "unknown"
	}
}

// Diagnostic is a single emitted message.
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Message  string
}

// String formats a diagnostic as "<file>:<line>:<col>: <severity>:
// <message>" (spec §6 diagnostic output).
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Sink accumulates diagnostics and exposes the error/warning counters
// spec §7 requires ("All diagnostics increment counters; the process
// exits non-zero if the error counter is non-zero even if parsing
// reached EOF").
type Sink struct {
	diagnostics []Diagnostic
	errorCount  int
	fatal       bool
	Warnings    *WarningSet
}

// NewSink returns a Sink consulting ws for warning gating. A nil ws
// enables every warning (matches the teacher's ErrorReporter default
// of reporting everything it is asked to).
func NewSink(ws *WarningSet) *Sink {
	if ws == nil {
		ws = NewWarningSet()
	}
	return &Sink{Warnings: ws}
}

func (s *Sink) emit(sev Severity, pos token.Position, format string, args ...interface{}) {
	d := Diagnostic{Severity: sev, Pos: pos, Message: fmt.Sprintf(format, args...)}
	s.diagnostics = append(s.diagnostics, d)
	if sev == Error || sev == Internal {
		s.errorCount++
	}
	if sev == Internal {
		s.fatal = true
	}
}

// Errorf reports a syntactic or semantic error at pos (spec §7
// categories 2 and 3).
func (s *Sink) Errorf(pos token.Position, format string, args ...interface{}) {
	s.emit(Error, pos, format, args...)
}

// Notef reports a supplementary note attached to a preceding
// diagnostic (e.g. "previous declaration of 'x' was here").
func (s *Sink) Notef(pos token.Position, format string, args ...interface{}) {
	s.emit(Note, pos, format, args...)
}

// Warnf reports a warning at pos only if flag is enabled in s.Warnings
// (spec §4.5's "analyzer consults a configurable warning set").
func (s *Sink) Warnf(flag WarningFlag, pos token.Position, format string, args ...interface{}) {
	if !s.Warnings.Enabled(flag) {
		return
	}
	s.emit(Warning, pos, format, args...)
}

// Fatalf reports an invariant-violation internal error (spec §7
// category 4). Callers should stop translation after calling this.
func (s *Sink) Fatalf(pos token.Position, format string, args ...interface{}) {
	s.emit(Internal, pos, format, args...)
}

// HasErrors reports whether any error (or internal) diagnostic has been
// emitted.
func (s *Sink) HasErrors() bool {
	return s.errorCount > 0
}

// Fatal reports whether an internal invariant-violation diagnostic has
// been emitted.
func (s *Sink) Fatal() bool {
	return s.fatal
}

// ErrorCount returns the number of error-severity diagnostics emitted.
func (s *Sink) ErrorCount() int {
	return s.errorCount
}

// Diagnostics returns all diagnostics emitted so far, in emission
// order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// String renders every diagnostic, one per line (spec §6 diagnostic
// output format).
func (s *Sink) String() string {
	var b strings.Builder
	for i, d := range s.diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}
