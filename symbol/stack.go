package symbol

// EnvironmentStack and LabelStack implement the two push-down stacks of
// spec §4.4: entering a declaration's visibility saves the prior head
// of its symbol's namespace chain, installs the new declaration as the
// head, and PopTo restores every saved prior head in reverse order
// until the stack's recorded length matches mark.
//
// They are separate stacks (as in spec §4.4: "one for
// ordinary/tag namespaces... and one for labels") because label scope
// is function-wide regardless of lexical block nesting, so it must be
// able to pop independently of the ordinary/tag environment.

type stackEntry struct {
	decl *Declaration
}

// EnvironmentStack tracks ordinary and tag-namespace declarations as
// scopes are entered and left.
type EnvironmentStack struct {
	entries []stackEntry
}

// NewEnvironmentStack returns an empty stack.
func NewEnvironmentStack() *EnvironmentStack {
	return &EnvironmentStack{}
}

// Mark returns the current stack depth, to be passed to PopTo later.
func (e *EnvironmentStack) Mark() int {
	return len(e.entries)
}

// Push installs d as the new head of its symbol's namespace chain,
// saving the previous head so PopTo can restore it.
func (e *EnvironmentStack) Push(d *Declaration) {
	prev := d.Symbol.namespaces[d.Namespace]
	d.shadowed = prev
	d.SymbolNext = prev
	d.Symbol.namespaces[d.Namespace] = d
	e.entries = append(e.entries, stackEntry{decl: d})
}

// PopTo restores every saved prior head in reverse order until the
// stack's length equals mark (spec §4.4).
func (e *EnvironmentStack) PopTo(mark int) {
	for len(e.entries) > mark {
		last := e.entries[len(e.entries)-1]
		e.entries = e.entries[:len(e.entries)-1]
		last.decl.Symbol.namespaces[last.decl.Namespace] = last.decl.shadowed
	}
}

// LabelStack tracks label declarations, which have function scope
// regardless of lexical position (spec §4.4).
type LabelStack struct {
	entries []stackEntry
}

// NewLabelStack returns an empty stack.
func NewLabelStack() *LabelStack {
	return &LabelStack{}
}

// Mark returns the current stack depth, to be passed to PopTo later.
func (l *LabelStack) Mark() int {
	return len(l.entries)
}

// Push installs d (which must be in the NSLabel namespace) as the new
// head of its symbol's label chain and patches its owning scope to
// funcScope, since labels have function scope regardless of lexical
// position (spec §4.4 "label_push also patches...").
func (l *LabelStack) Push(d *Declaration, funcScope *Scope) {
	prev := d.Symbol.namespaces[NSLabel]
	d.shadowed = prev
	d.SymbolNext = prev
	d.Symbol.namespaces[NSLabel] = d
	d.OwningScope = funcScope
	l.entries = append(l.entries, stackEntry{decl: d})
}

// Since returns the label declarations pushed after mark, in push
// order, so a function-end pass can check each for unused-label
// warnings before PopTo discards the stack entries (spec §4.9 "defined-
// but-unused labels are warnings").
func (l *LabelStack) Since(mark int) []*Declaration {
	var out []*Declaration
	for _, e := range l.entries[mark:] {
		out = append(out, e.decl)
	}
	return out
}

// PopTo restores saved label chain heads in reverse order.
func (l *LabelStack) PopTo(mark int) {
	for len(l.entries) > mark {
		last := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		last.decl.Symbol.namespaces[NSLabel] = last.decl.shadowed
	}
}
