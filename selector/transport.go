package selector

import "github.com/forgebuild/plugindeps/graph"

// Artifacts of this group are transport providers supplied by the host at
// runtime. Pulling a second copy onto a plugin classpath causes provider
// conflicts, so they are excluded from every plugin graph. The provider
// API artifact itself is exempt: plugins may compile against it.
const (
	TransportGroupID       = "org.forgebuild.transport"
	TransportAPIArtifactID = "transport-provider-api"
)

// TransportExcluder rejects host-provided transport provider artifacts at
// every depth. It is stateless and comparable.
type TransportExcluder struct{}

// Select implements Selector.
func (TransportExcluder) Select(dep graph.Dependency) bool {
	a := dep.Artifact
	return a.GroupID != TransportGroupID || a.ArtifactID == TransportAPIArtifactID
}

// DeriveChild implements Selector.
func (s TransportExcluder) DeriveChild(Context) Selector { return s }
