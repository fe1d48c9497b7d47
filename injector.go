package plugindeps

import (
	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
)

// Old plugins assume the host utilities library is on their classpath
// without declaring it; the host historically always shipped it.
const (
	hostUtilsGroupID    = "org.forgebuild"
	hostUtilsArtifactID = "forge-utils"
	hostUtilsVersion    = "1.1"
)

// hostUtilsInjector appends the host utilities library to a collected
// plugin graph when no node in the graph provides it. The injected node
// carries provided scope: it becomes visible on the classpath model but
// is never downloaded, since the host supplies the actual file.
type hostUtilsInjector struct{}

// Transform implements selector.Transformer.
func (hostUtilsInjector) Transform(root *graph.Node) (*graph.Node, error) {
	if containsArtifact(root, hostUtilsGroupID, hostUtilsArtifactID) {
		return root, nil
	}
	dep := &graph.Dependency{
		Artifact: artifact.New(hostUtilsGroupID, hostUtilsArtifactID, hostUtilsVersion),
		Scope:    graph.ScopeProvided,
	}
	root.Children = append(root.Children, &graph.Node{Dependency: dep})
	return root, nil
}

func containsArtifact(node *graph.Node, groupID, artifactID string) bool {
	if node == nil {
		return false
	}
	if dep := node.Dependency; dep != nil &&
		dep.Artifact.GroupID == groupID && dep.Artifact.ArtifactID == artifactID {
		return true
	}
	for _, child := range node.Children {
		if containsArtifact(child, groupID, artifactID) {
			return true
		}
	}
	return false
}
