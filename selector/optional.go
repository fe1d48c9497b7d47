package selector

import "github.com/forgebuild/plugindeps/graph"

// OptionalExclusion rejects optional dependencies encountered below the
// direct level: a plugin's own optional dependencies are kept, optional
// dependencies of its dependencies are not.
type OptionalExclusion struct {
	transitive bool
}

// NewOptionalExclusion returns the selector in its root state.
func NewOptionalExclusion() OptionalExclusion {
	return OptionalExclusion{}
}

// Select implements Selector.
func (s OptionalExclusion) Select(dep graph.Dependency) bool {
	return !s.transitive || !dep.Optional
}

// DeriveChild implements Selector.
func (s OptionalExclusion) DeriveChild(ctx Context) Selector {
	if ctx.Dependency != nil && !s.transitive {
		return OptionalExclusion{transitive: true}
	}
	if ctx.Dependency == nil && s.transitive {
		return OptionalExclusion{transitive: false}
	}
	return s
}
