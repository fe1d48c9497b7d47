package selector

import "github.com/forgebuild/plugindeps/graph"

// ClassicScope reproduces the historical transitive-scope pruning used for
// plugins that predate the current resolution behavior: test- and
// provided-scoped dependencies are excluded at every depth except the
// plugin's own direct dependencies.
//
// This asymmetry is a compatibility contract, not a bug to correct. Old
// plugins rely on direct test/provided dependencies staying on their
// classpath; changing the rule silently changes resolved classpaths.
//
// ClassicScope is a comparable value type: two instances are equivalent
// iff their transitive flags match, which lets engines deduplicate
// derivations.
type ClassicScope struct {
	transitive bool
}

// NewClassicScope returns the selector in its root (non-transitive) state.
func NewClassicScope() ClassicScope {
	return ClassicScope{}
}

// Select implements Selector. In the non-transitive state every dependency
// is accepted; in the transitive state dependencies scoped exactly test or
// provided are rejected.
func (s ClassicScope) Select(dep graph.Dependency) bool {
	return !s.transitive || (dep.Scope != graph.ScopeTest && dep.Scope != graph.ScopeProvided)
}

// DeriveChild implements Selector. Descending below the root (a context
// with a non-nil dependency) switches to the transitive state; returning
// to a root context switches back. Derivation is idempotent: deriving for
// a context that matches the current state returns the receiver.
func (s ClassicScope) DeriveChild(ctx Context) Selector {
	if ctx.Dependency != nil && !s.transitive {
		return ClassicScope{transitive: true}
	}
	if ctx.Dependency == nil && s.transitive {
		return ClassicScope{transitive: false}
	}
	return s
}
