package selector

import (
	"slices"

	"github.com/forgebuild/plugindeps/graph"
)

// Management carries the attribute overrides a Manager wants applied to a
// dependency. Nil fields leave the attribute untouched; Exclusions are
// added to the dependency's own set.
type Management struct {
	Version    *string
	Scope      *string
	Exclusions []graph.Exclusion
}

// Manager applies dependency-management overrides during collection and
// derives the manager in force for child contexts. Like selectors,
// managers are immutable: derivation returns new instances.
type Manager interface {
	// Manage returns the overrides to apply to dep at the current depth,
	// or nil when no management applies.
	Manage(dep graph.Dependency) *Management

	// DeriveChild returns the manager for dependencies of the context's
	// dependency, absorbing any managed dependencies the context carries.
	DeriveChild(ctx Context) Manager
}

// depthManager applies management from a configurable depth downward.
// Depth 0 is the root; depth 1 its direct dependencies.
type depthManager struct {
	depth   int
	applyAt int
	managed map[string]graph.Dependency
}

// NewDefaultManager returns a manager that applies management to direct
// dependencies and below, the current resolution behavior.
func NewDefaultManager() Manager {
	return &depthManager{applyAt: 1}
}

// NewClassicManager returns the legacy nearest-wins manager: a root's
// direct dependency declarations are taken as written and management only
// reshapes what collection discovers below them.
func NewClassicManager() Manager {
	return &depthManager{applyAt: 2}
}

// Manage implements Manager.
func (m *depthManager) Manage(dep graph.Dependency) *Management {
	if m.depth < m.applyAt {
		return nil
	}
	ruling, ok := m.managed[dep.Artifact.Key()]
	if !ok {
		return nil
	}

	// Only versions and exclusions are ruled on. Managing scopes here
	// would resurrect dependencies the scope selectors already pruned,
	// e.g. a transitive test dependency shadowed by a direct
	// declaration.
	var mgmt Management
	applied := false
	if v := ruling.Artifact.Version; v != "" && v != dep.Artifact.Version {
		mgmt.Version = &v
		applied = true
	}
	for _, e := range ruling.Exclusions {
		if !slices.Contains(dep.Exclusions, e) {
			mgmt.Exclusions = append(mgmt.Exclusions, e)
			applied = true
		}
	}
	if !applied {
		return nil
	}
	return &mgmt
}

// DeriveChild implements Manager.
func (m *depthManager) DeriveChild(ctx Context) Manager {
	if len(ctx.ManagedDependencies) == 0 && m.depth >= m.applyAt {
		// Depth beyond the threshold no longer changes behavior.
		return m
	}
	child := &depthManager{
		depth:   m.depth + 1,
		applyAt: m.applyAt,
		managed: m.managed,
	}
	if len(ctx.ManagedDependencies) > 0 {
		merged := make(map[string]graph.Dependency, len(m.managed)+len(ctx.ManagedDependencies))
		for k, v := range m.managed {
			merged[k] = v
		}
		for _, d := range ctx.ManagedDependencies {
			key := d.Artifact.Key()
			if _, exists := merged[key]; !exists {
				// Nearest declaration wins; farther management never
				// overrides what an ancestor already ruled.
				merged[key] = d
			}
		}
		child.managed = merged
	}
	return child
}
