package selector

import (
	"slices"

	"github.com/forgebuild/plugindeps/graph"
)

// Exclusions rejects dependencies matched by the exclusion sets declared
// along the traversal path. Deriving a child selector for a dependency
// that declares exclusions merges them into the child's set.
type Exclusions struct {
	exclusions []graph.Exclusion
}

// NewExclusions returns a selector seeded with the given exclusions.
func NewExclusions(exclusions ...graph.Exclusion) *Exclusions {
	return &Exclusions{exclusions: slices.Clone(exclusions)}
}

// Select implements Selector.
func (s *Exclusions) Select(dep graph.Dependency) bool {
	for _, e := range s.exclusions {
		if e.Matches(dep.Artifact) {
			return false
		}
	}
	return true
}

// DeriveChild implements Selector. The receiver is returned unchanged
// when the context's dependency adds no new exclusions.
func (s *Exclusions) DeriveChild(ctx Context) Selector {
	if ctx.Dependency == nil || len(ctx.Dependency.Exclusions) == 0 {
		return s
	}
	merged := slices.Clone(s.exclusions)
	for _, e := range ctx.Dependency.Exclusions {
		if !slices.Contains(merged, e) {
			merged = append(merged, e)
		}
	}
	if len(merged) == len(s.exclusions) {
		return s
	}
	return &Exclusions{exclusions: merged}
}
