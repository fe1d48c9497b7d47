package plugindeps

import (
	"github.com/Masterminds/semver/v3"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/engine"
	"github.com/forgebuild/plugindeps/graph"
	"github.com/forgebuild/plugindeps/selector"
)

const (
	// requestContext tags every engine request issued on behalf of a
	// plugin resolution.
	requestContext = "plugin"

	// pluginArtifactType is the artifact type plugin coordinates carry.
	pluginArtifactType = "forge-plugin"

	// descriptorRequiredVersionProperty is the descriptor property a
	// plugin declares its minimum host version in.
	descriptorRequiredVersionProperty = "prerequisites.forge"

	// defaultRequiredVersion applies when a plugin declares no minimum
	// host version.
	defaultRequiredVersion = "2"
)

// classicThreshold separates classic from default resolution: plugins
// requiring a host strictly older than this get the classic policy.
var classicThreshold = semver.MustParse("3")

var legacyDefaultVersion = semver.MustParse(defaultRequiredVersion)

// policyBundle is the selector/manager/transformer/filter set assembled
// for one resolution call. It is built fresh per call and never shared.
type policyBundle struct {
	selector    selector.Selector
	manager     selector.Manager
	transformer selector.Transformer
	filter      graph.Filter
}

// assemblePolicy decides between classic and default resolution for the
// enriched plugin artifact and builds the policy bundle. It returns the
// bundle, whether the classic policy applies, and the raw minimum host
// version the decision was based on.
func (r *Resolver) assemblePolicy(session *engine.Session, pluginArtifact artifact.Coordinate, callerFilter graph.Filter, extra selector.Transformer) (policyBundle, bool, string) {
	classic, required := r.classicResolution(pluginArtifact)

	var sel selector.Selector
	var mgr selector.Manager
	if classic {
		sel = selector.NewAnd(
			selector.NewClassicScope(),
			selector.NewOptionalExclusion(),
			selector.NewExclusions(),
			selector.TransportExcluder{},
		)
		mgr = selector.NewClassicManager()
	} else {
		sel = selector.NewAnd(session.Selector, selector.TransportExcluder{})
		mgr = session.Manager
		if mgr == nil {
			mgr = selector.NewDefaultManager()
		}
	}

	return policyBundle{
		selector:    sel,
		manager:     mgr,
		transformer: selector.NewChain(session.Transformer, extra),
		filter: graph.NewAndFilter(
			graph.NewScopeExclusionFilter(graph.ScopeProvided, graph.ScopeTest),
			callerFilter,
		),
	}, classic, required
}

// classicResolution reports whether the artifact's declared minimum host
// version falls below the classic threshold. An absent property means the
// legacy default; an unparsable one is treated the same, since every
// plugin old enough to carry a malformed requirement predates the
// threshold anyway.
func (r *Resolver) classicResolution(a artifact.Coordinate) (bool, string) {
	raw := a.Property(artifact.PropRequiredHostVersion, defaultRequiredVersion)
	v, err := semver.NewVersion(raw)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("unparsable minimum host version, assuming legacy default",
				"version", raw, "default", defaultRequiredVersion)
		}
		v = legacyDefaultVersion
	}
	return v.LessThan(classicThreshold), raw
}
