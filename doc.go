// Package plugindeps resolves the runtime dependency artifacts of a build
// plugin, honoring two historical compatibility policies depending on the
// minimum host version the plugin declares it requires.
//
// # Overview
//
// Resolution runs in three steps:
//
//  1. Enrichment: the plugin's own artifact descriptor is read (under a
//     relaxed policy that tolerates missing metadata) and the declared
//     minimum host version is stamped onto the artifact's property bag.
//  2. Policy assembly: the minimum version is compared against a fixed
//     threshold. Plugins requiring a host older than "3" get the classic
//     policy, which deliberately reproduces a historical asymmetry in
//     transitive scope pruning; everything else gets the session's own
//     configured behavior.
//  3. Orchestration: a collect request is built from the plugin's declared
//     dependencies (scopes normalized to runtime, system passing through)
//     and handed to the dependency-graph engine, first to collect the
//     graph and then to resolve artifact files for the nodes surviving the
//     resolution filter.
//
// # Quick Start
//
//	r, err := plugindeps.New(eng)
//	if err != nil {
//	    // ...
//	}
//	node, err := r.ResolveDependencies(ctx, plugin, nil, nil, repos, engine.NewSession())
//
// The engine is an injected capability (see package engine); an in-memory
// reference engine is available for tests and offline tooling.
//
// # Thread Safety
//
// A Resolver is safe for concurrent use. Every call clones the session it
// is given before adjusting it and builds its own policy bundle, so
// concurrent resolutions never share mutable state.
package plugindeps
