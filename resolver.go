package plugindeps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/engine"
	"github.com/forgebuild/plugindeps/graph"
	"github.com/forgebuild/plugindeps/selector"
)

// Resolver resolves plugin dependency graphs through an injected
// dependency-graph engine, applying the compatibility policy the plugin's
// declared minimum host version calls for.
type Resolver struct {
	engine engine.Engine
	logger *slog.Logger
}

// New creates a Resolver backed by the given engine.
func New(eng engine.Engine, opts ...Option) (*Resolver, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine is nil")
	}
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Resolver{engine: eng, logger: cfg.logger}, nil
}

// ResolveArtifact resolves only the plugin's own artifact, no
// dependencies. The returned coordinate carries the resolved file and the
// minimum-host-version property when the plugin declares one.
func (r *Resolver) ResolveArtifact(ctx context.Context, plugin Plugin, repositories []engine.Repository, session *engine.Session) (artifact.Coordinate, error) {
	if session == nil {
		session = engine.NewSession()
	}

	enriched, err := r.enrichedArtifact(ctx, coordinateFor(plugin), session, repositories)
	if err != nil {
		return enriched, newResolutionError(plugin, ErrArtifact, err)
	}

	resolved, err := r.engine.ResolveArtifact(ctx, session, engine.ArtifactRequest{
		Artifact:     enriched,
		Repositories: repositories,
		Context:      requestContext,
		Trace:        engine.NewChild(nil, plugin),
	})
	if err != nil {
		return resolved, newResolutionError(plugin, ErrArtifact, err)
	}
	return resolved, nil
}

// ResolveDependencies resolves the plugin's full dependency graph,
// including the host-utilities compatibility injection. pluginArtifact
// may carry an already-known plugin artifact; pass nil to derive it from
// the plugin descriptor. filter further restricts which nodes are
// resolved to files; nil applies only the built-in scope filter.
func (r *Resolver) ResolveDependencies(ctx context.Context, plugin Plugin, pluginArtifact *artifact.Coordinate, filter graph.Filter, repositories []engine.Repository, session *engine.Session) (*graph.Node, error) {
	return r.resolveInternal(ctx, plugin, pluginArtifact, filter, hostUtilsInjector{}, repositories, session)
}

// ResolveCoreExtensionDependencies is ResolveDependencies without the
// compatibility graph transformation, for core extensions that manage
// their own classpath.
func (r *Resolver) ResolveCoreExtensionDependencies(ctx context.Context, plugin Plugin, filter graph.Filter, repositories []engine.Repository, session *engine.Session) (*graph.Node, error) {
	return r.resolveInternal(ctx, plugin, nil, filter, nil, repositories, session)
}

func (r *Resolver) resolveInternal(ctx context.Context, plugin Plugin, pluginArtifact *artifact.Coordinate, filter graph.Filter, extra selector.Transformer, repositories []engine.Repository, session *engine.Session) (*graph.Node, error) {
	if session == nil {
		session = engine.NewSession()
	}

	// Force verbose management tracking for the diagnostic dump, on a
	// clone so the caller's session stays untouched.
	verbose := session
	if r.debugEnabled(ctx) && !session.ConfigFlag(engine.ConfigVerboseTree) {
		verbose = session.Clone()
		verbose.Config[engine.ConfigVerboseTree] = "true"
	}

	trace := engine.NewChild(nil, plugin)

	base := coordinateFor(plugin)
	if pluginArtifact != nil {
		base = *pluginArtifact
	}
	enriched, err := r.enrichedArtifact(ctx, base, verbose, repositories)
	if err != nil {
		return nil, newResolutionError(plugin, ErrDescriptor, err)
	}

	bundle, classic, required := r.assemblePolicy(verbose, enriched, filter, extra)
	if r.debugEnabled(ctx) {
		mode := "default"
		if classic {
			mode = "classic"
		}
		r.logger.Debug("constructing plugin classpath",
			"mode", mode, "plugin", enriched.ID(), "minimumHostVersion", required)
	}

	pluginSession := verbose.Clone()
	pluginSession.Selector = bundle.selector
	pluginSession.Manager = bundle.manager
	pluginSession.Transformer = bundle.transformer

	request := engine.CollectRequest{
		Root:         graph.Dependency{Artifact: enriched},
		Repositories: repositories,
		Context:      requestContext,
		Trace:        engine.NewChild(trace, "collect"),
	}
	for _, d := range plugin.Dependencies {
		dep := d.toGraph()
		if dep.Scope != graph.ScopeSystem {
			dep.Scope = graph.ScopeRuntime
		}
		request.Dependencies = append(request.Dependencies, dep)
		// Direct declarations also manage the graph, so they win over
		// versions discovered transitively.
		request.ManagedDependencies = append(request.ManagedDependencies, dep)
	}

	node, err := r.engine.Collect(ctx, pluginSession, request)
	if err != nil {
		return nil, newResolutionError(plugin, ErrCollection, err)
	}

	if r.debugEnabled(ctx) {
		node.Accept(graph.NewDumper(func(line string) {
			r.logger.Debug(line)
		}))
	}

	if _, err := r.engine.Resolve(ctx, verbose, engine.ResolveRequest{
		Root:   node,
		Filter: bundle.filter,
		Trace:  trace,
	}); err != nil {
		// The engine wraps the true cause in its resolve envelope;
		// surface the cause, not the wrapper.
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		return nil, newResolutionError(plugin, ErrResolution, cause)
	}

	return node, nil
}

func (r *Resolver) debugEnabled(ctx context.Context) bool {
	return r.logger != nil && r.logger.Enabled(ctx, slog.LevelDebug)
}
