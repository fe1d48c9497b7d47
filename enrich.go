package plugindeps

import (
	"context"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/engine"
)

// coordinateFor derives a plugin's own artifact coordinate from its
// descriptor.
func coordinateFor(p Plugin) artifact.Coordinate {
	return artifact.New(p.GroupID, p.ArtifactID, p.Version).WithType(pluginArtifactType)
}

// enrichedArtifact reads the plugin artifact's descriptor and stamps the
// declared minimum host version onto the artifact's property bag.
//
// The read runs under a relaxed descriptor policy: a missing descriptor
// degrades to an empty one instead of failing the whole resolution, so
// only outright retrieval failures surface as errors. A descriptor that
// simply lacks the minimum-version property leaves the artifact
// unchanged, which downstream treats as the legacy default.
func (r *Resolver) enrichedArtifact(ctx context.Context, base artifact.Coordinate, session *engine.Session, repositories []engine.Repository) (artifact.Coordinate, error) {
	relaxed := session.Clone()
	relaxed.DescriptorPolicy = engine.DescriptorPolicy{IgnoreMissing: true}

	result, err := r.engine.ReadDescriptor(ctx, relaxed, engine.DescriptorRequest{
		Artifact:     base,
		Repositories: repositories,
		Context:      requestContext,
		Trace:        engine.NewChild(nil, base),
	})
	if err != nil {
		return base, err
	}

	enriched := result.Artifact
	if v, ok := result.Properties[descriptorRequiredVersionProperty]; ok {
		enriched = enriched.WithProperty(artifact.PropRequiredHostVersion, v)
	}
	return enriched, nil
}
