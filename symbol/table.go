package symbol

// Table is the process-wide, insertion-stable interning table mapping a
// character sequence to a unique *Symbol (spec §4.1). It also assigns
// DeclID handles to declarations that need one (tag and typedef
// declarations, per package types' DeclID indirection) and resolves
// them back to the owning *Declaration.
type Table struct {
	symbols map[string]*Symbol
	decls   []*Declaration // index i holds the declaration with DeclID(i)
}

// NewTable creates an empty table. Nothing is pre-inserted: keywords
// are recognized through token.Keywords, and Table itself has no
// language-specific knowledge.
func NewTable() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Insert returns the unique *Symbol for name, creating it on first use.
// Insertion is stable: repeated calls with an equal byte sequence
// return the identical handle (spec §4.1).
func (t *Table) Insert(name string) *Symbol {
	if s, ok := t.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	t.symbols[name] = s
	return s
}

// Lookup returns the front of sym's namespace chain for ns, or nil
// (spec §4.1).
func (t *Table) Lookup(sym *Symbol, ns Namespace) *Declaration {
	return sym.Namespace(ns)
}

// NewDecl allocates a Declaration, assigning it a fresh DeclID so that
// package types' Tag/Alias values can reference it opaquely.
func (t *Table) NewDecl() *Declaration {
	d := &Declaration{ID: DeclID(len(t.decls))}
	t.decls = append(t.decls, d)
	return d
}

// DeclByID resolves a DeclID back to its Declaration. Used when a tag
// or alias type needs to reach its owning declaration (e.g. to check
// whether a struct tag is complete).
func (t *Table) DeclByID(id DeclID) *Declaration {
	if int(id) < 0 || int(id) >= len(t.decls) {
		return nil
	}
	return t.decls[id]
}
