// Package selector provides the composable predicates that shape a
// dependency graph during collection: selectors decide which edges are
// followed, managers apply dependency-management overrides, and
// transformers post-process the collected tree.
//
// Selectors are immutable value types. Deriving a child selector for a
// deeper traversal context returns a new value (or the receiver itself
// when nothing changes), never mutates shared state. Where possible the
// concrete types are comparable with ==, so engines that cache selector
// derivations can deduplicate equivalent instances.
package selector

import "github.com/forgebuild/plugindeps/graph"

// Context describes one step of graph collection from the engine's point
// of view.
type Context struct {
	// Dependency is the dependency being descended into, or nil when the
	// context refers to the root of the graph.
	Dependency *graph.Dependency

	// ManagedDependencies are the dependency-management overrides in
	// force at this context, typically supplied once at the root.
	ManagedDependencies []graph.Dependency
}

// Selector decides whether a dependency edge is followed during
// collection and how the decision rule changes for child contexts.
type Selector interface {
	// Select reports whether the dependency should become part of the
	// graph at the current traversal position.
	Select(dep graph.Dependency) bool

	// DeriveChild returns the selector to use for dependencies of the
	// context's dependency. Implementations return the receiver when the
	// derivation changes nothing.
	DeriveChild(ctx Context) Selector
}

// AcceptAll is a Selector that selects every dependency at every depth.
type AcceptAll struct{}

// Select implements Selector.
func (AcceptAll) Select(graph.Dependency) bool { return true }

// DeriveChild implements Selector.
func (s AcceptAll) DeriveChild(Context) Selector { return s }

// and combines selectors conjunctively. It is used through a pointer so
// interface comparisons against derived instances stay well-defined.
type and struct {
	selectors []Selector
}

// NewAnd combines selectors so a dependency is selected only if every
// selector agrees. Nil entries are ignored; if at most one non-nil
// selector remains it is returned directly (nil meaning accept-all).
func NewAnd(selectors ...Selector) Selector {
	active := make([]Selector, 0, len(selectors))
	for _, s := range selectors {
		if s != nil {
			active = append(active, s)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return &and{selectors: active}
}

// Select implements Selector.
func (a *and) Select(dep graph.Dependency) bool {
	for _, s := range a.selectors {
		if !s.Select(dep) {
			return false
		}
	}
	return true
}

// DeriveChild implements Selector. The receiver is returned unchanged
// when no member selector changed, preserving identity for derivation
// caches.
func (a *and) DeriveChild(ctx Context) Selector {
	derived := make([]Selector, len(a.selectors))
	changed := false
	for i, s := range a.selectors {
		derived[i] = s.DeriveChild(ctx)
		if derived[i] != s {
			changed = true
		}
	}
	if !changed {
		return a
	}
	return &and{selectors: derived}
}
