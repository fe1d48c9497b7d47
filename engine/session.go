package engine

import (
	"maps"

	"github.com/forgebuild/plugindeps/graph"
	"github.com/forgebuild/plugindeps/selector"
)

// ConfigVerboseTree is the session config property that makes collection
// record pre-management values on graph nodes. Any non-empty value
// enables it.
const ConfigVerboseTree = "plugindeps.verboseTree"

// DescriptorPolicy controls how descriptor reading degrades.
type DescriptorPolicy struct {
	// IgnoreMissing tolerates descriptors that do not exist, yielding an
	// empty descriptor result instead of an error.
	IgnoreMissing bool

	// IgnoreInvalid tolerates descriptors that exist but cannot be fully
	// parsed, yielding whatever could be read.
	IgnoreInvalid bool
}

// Session carries the per-call configuration a resolution runs with.
// Sessions are cheap to clone; callers that need to adjust one must clone
// it first and leave the original untouched.
type Session struct {
	// Selector shapes graph collection. The policy layer replaces it per
	// call; this field holds the session's configured default.
	Selector selector.Selector

	// Manager applies dependency management during collection.
	Manager selector.Manager

	// Transformer post-processes collected graphs.
	Transformer selector.Transformer

	// DescriptorPolicy controls descriptor-read degradation.
	DescriptorPolicy DescriptorPolicy

	// Config holds string-valued session properties.
	Config map[string]string
}

// NewSession returns a session with the standard defaults: test/provided
// scopes pruned below the direct level, optional and excluded
// dependencies pruned, management applied from direct dependencies
// downward, no graph transformation.
func NewSession() *Session {
	return &Session{
		Selector: selector.NewAnd(
			selector.NewScopeExclusion(graph.ScopeTest, graph.ScopeProvided),
			selector.NewOptionalExclusion(),
			selector.NewExclusions(),
		),
		Manager: selector.NewDefaultManager(),
		Config:  map[string]string{},
	}
}

// Clone returns a copy of the session whose Config may be modified
// without affecting the original.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Config = maps.Clone(s.Config)
	if clone.Config == nil {
		clone.Config = map[string]string{}
	}
	return &clone
}

// ConfigFlag reports whether the named config property is set to a
// non-empty value.
func (s *Session) ConfigFlag(key string) bool {
	return s.Config[key] != ""
}
