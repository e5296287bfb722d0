// Package debugger holds the breakpoint bookkeeping for the tvm CLI's
// single-step REPL: a toggleable set of names, keyed on frame names rather
// than flat instruction indices, since the tape has no linear program
// counter.
package debugger

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Breakpoints is a toggleable set of frame names. In run mode the REPL stops
// before any tick whose innermost state belongs to a frame with one of these
// names.
type Breakpoints struct {
	names map[string]struct{}
}

// New returns an empty breakpoint set.
func New() *Breakpoints {
	return &Breakpoints{names: make(map[string]struct{})}
}

// Toggle adds name if absent, removes it if present, and reports whether it
// is now set.
func (b *Breakpoints) Toggle(name string) bool {
	if _, ok := b.names[name]; ok {
		delete(b.names, name)
		return false
	}
	b.names[name] = struct{}{}
	return true
}

// Has reports whether name is currently a breakpoint.
func (b *Breakpoints) Has(name string) bool {
	_, ok := b.names[name]
	return ok
}

// List returns the current breakpoints sorted for stable REPL output.
func (b *Breakpoints) List() []string {
	names := maps.Keys(b.names)
	sort.Strings(names)
	return names
}
