package selector

import (
	"slices"

	"github.com/forgebuild/plugindeps/graph"
)

// ScopeExclusion rejects dependencies with any of the given scopes once
// collection has descended below the root's direct dependencies. Unlike
// ClassicScope it never flips back to the root state when a root context
// reappears during traversal; that one-way derivation is the corrected
// behavior current plugins resolve under.
type ScopeExclusion struct {
	excluded   []string
	transitive bool
}

// NewScopeExclusion returns the selector in its root state.
func NewScopeExclusion(excluded ...string) *ScopeExclusion {
	return &ScopeExclusion{excluded: slices.Clone(excluded)}
}

// Select implements Selector.
func (s *ScopeExclusion) Select(dep graph.Dependency) bool {
	return !s.transitive || !slices.Contains(s.excluded, dep.Scope)
}

// DeriveChild implements Selector.
func (s *ScopeExclusion) DeriveChild(ctx Context) Selector {
	if ctx.Dependency != nil && !s.transitive {
		return &ScopeExclusion{excluded: s.excluded, transitive: true}
	}
	return s
}
