package plugindeps

import (
	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
)

// Plugin is the descriptor of a build plugin: its own coordinate plus the
// dependencies it declares, in declaration order. Plugins are treated as
// immutable once handed to a Resolver.
type Plugin struct {
	GroupID    string
	ArtifactID string
	Version    string

	Dependencies []Dependency
}

// ID returns the plugin's "group:artifact:version" identity.
func (p Plugin) ID() string {
	return p.GroupID + ":" + p.ArtifactID + ":" + p.Version
}

// Dependency is a dependency declaration from a plugin descriptor.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string

	// Type defaults to "jar" when empty.
	Type       string
	Classifier string

	// Scope defaults to compile when empty. All scopes other than system
	// are normalized to runtime when the resolution request is built.
	Scope    string
	Optional bool

	Exclusions []Exclusion
}

// Exclusion names a transitive dependency that must not be followed.
type Exclusion struct {
	GroupID    string
	ArtifactID string
}

// toGraph converts a declaration into an engine-level dependency edge.
func (d Dependency) toGraph() graph.Dependency {
	coord := artifact.New(d.GroupID, d.ArtifactID, d.Version)
	if d.Type != "" {
		coord = coord.WithType(d.Type)
	}
	if d.Classifier != "" {
		coord = coord.WithClassifier(d.Classifier)
	}
	scope := d.Scope
	if scope == "" {
		scope = graph.ScopeCompile
	}
	var exclusions []graph.Exclusion
	for _, e := range d.Exclusions {
		exclusions = append(exclusions, graph.Exclusion{GroupID: e.GroupID, ArtifactID: e.ArtifactID})
	}
	return graph.Dependency{
		Artifact:   coord,
		Scope:      scope,
		Optional:   d.Optional,
		Exclusions: exclusions,
	}
}
