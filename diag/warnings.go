package diag

import "fmt"

// WarningFlag names one of the warning categories spec §4.5/§4.9/§4.11
// gate diagnostics on.
type WarningFlag string

const (
	WarnImplicitInt          WarningFlag = "implicit-int"
	WarnStrictPrototypes     WarningFlag = "strict-prototypes"
	WarnRedundantDecls       WarningFlag = "redundant-decls"
	WarnMissingPrototypes    WarningFlag = "missing-prototypes"
	WarnMissingDeclarations  WarningFlag = "missing-declarations"
	WarnSignCompare          WarningFlag = "sign-compare"
	WarnCharSubscripts       WarningFlag = "char-subscripts"
	WarnSwitchDefault        WarningFlag = "switch-default"
	WarnUnusedLabel          WarningFlag = "unused-label"
	WarnReturnType           WarningFlag = "return-type"
	WarnReturnLocalAddr      WarningFlag = "return-local-addr"
	WarnMain                 WarningFlag = "main"
	WarnExtraBraces          WarningFlag = "extra-braces"
	WarnFormat               WarningFlag = "format"
)

// allFlags lists every flag recognized by the CLI's -W parser, used to
// validate "foo"/"no-foo" flag names and to build the "everything"
// default set.
var allFlags = []WarningFlag{
	WarnImplicitInt, WarnStrictPrototypes, WarnRedundantDecls,
	WarnMissingPrototypes, WarnMissingDeclarations, WarnSignCompare,
	WarnCharSubscripts, WarnSwitchDefault, WarnUnusedLabel, WarnReturnType,
	WarnReturnLocalAddr, WarnMain, WarnExtraBraces, WarnFormat,
}

// WarningSet is the configurable set the analyzer consults before
// emitting a warning (spec §4.5, §7 "Warnings are controlled by a
// configurable set; unknown flags are rejected at CLI parse").
type WarningSet struct {
	enabled map[WarningFlag]bool
}

// NewWarningSet returns a set with every known warning enabled, the
// default a fresh driver invocation starts from.
func NewWarningSet() *WarningSet {
	ws := &WarningSet{enabled: make(map[WarningFlag]bool, len(allFlags))}
	for _, f := range allFlags {
		ws.enabled[f] = true
	}
	return ws
}

// Enabled reports whether f is currently enabled.
func (ws *WarningSet) Enabled(f WarningFlag) bool {
	return ws.enabled[f]
}

// Set enables or disables f.
func (ws *WarningSet) Set(f WarningFlag, on bool) {
	ws.enabled[f] = on
}

// Parse applies a single warning flag name as given to -W ("foo" to
// enable, "no-foo" to disable, without the "-W" prefix), returning an error for an unrecognized flag name (spec §7: "unknown
// flags are rejected at CLI parse").
func (ws *WarningSet) Parse(flag string) error {
	name := flag
	enable := true
	if len(name) > 3 && name[:3] == "no-" {
		name = name[3:]
		enable = false
	}
	wf := WarningFlag(name)
	if _, ok := ws.enabled[wf]; !ok {
		return fmt.Errorf("unknown warning flag %q", flag)
	}
	ws.enabled[wf] = enable
	return nil
}
