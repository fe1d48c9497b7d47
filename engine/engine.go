// Package engine defines the contract between the plugin resolution policy
// layer and the dependency-graph engine that does the actual work: graph
// collection, conflict resolution, artifact transport and caching.
//
// The policy layer in the root package only decides which selectors,
// managers, transformers and filters the engine runs with. Everything
// behind this interface — including parallel downloads, retries and
// cancellation — belongs to the engine implementation.
//
// An in-memory reference engine (Memory) is provided for tests and offline
// tooling.
package engine

import (
	"context"
	"errors"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
)

// Sentinel errors reported by engine implementations.
var (
	// ErrDescriptorNotFound indicates an artifact's descriptor does not
	// exist in any of the requested repositories.
	ErrDescriptorNotFound = errors.New("artifact descriptor not found")

	// ErrArtifactNotFound indicates an artifact file could not be located
	// in any of the requested repositories.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Repository identifies a remote repository artifacts are fetched from.
type Repository struct {
	ID  string
	URL string
}

// DescriptorRequest asks for an artifact's descriptor metadata.
type DescriptorRequest struct {
	Artifact     artifact.Coordinate
	Repositories []Repository
	Context      string
	Trace        *Trace
}

// DescriptorResult is the outcome of reading an artifact descriptor.
type DescriptorResult struct {
	// Artifact is the (possibly relocated) artifact the descriptor
	// belongs to.
	Artifact artifact.Coordinate

	// Properties are descriptor-level properties, distinct from the
	// artifact's own property bag.
	Properties map[string]string

	// Dependencies are the dependencies the descriptor declares.
	Dependencies []graph.Dependency
}

// ArtifactRequest asks for a single artifact file, no dependencies.
type ArtifactRequest struct {
	Artifact     artifact.Coordinate
	Repositories []Repository
	Context      string
	Trace        *Trace
}

// CollectRequest describes a dependency graph to collect.
type CollectRequest struct {
	// Root is the dependency whose graph is collected. For plugin graphs
	// this is the plugin artifact itself with an empty scope.
	Root graph.Dependency

	// Dependencies are direct dependencies merged with the root's own
	// declared dependencies, in order.
	Dependencies []graph.Dependency

	// ManagedDependencies are dependency-management overrides in force
	// for the whole graph.
	ManagedDependencies []graph.Dependency

	Repositories []Repository
	Context      string
	Trace        *Trace
}

// ResolveRequest asks the engine to locate files for a collected graph.
type ResolveRequest struct {
	// Root is the tree produced by a previous Collect call. The engine
	// populates artifact files in place.
	Root *graph.Node

	// Filter limits which nodes are resolved; nil resolves every node.
	Filter graph.Filter

	Trace *Trace
}

// ResolveError is the envelope engines wrap resolve-phase failures in.
// The underlying cause is available via Unwrap, so callers that report
// failures can surface the true cause rather than the envelope.
type ResolveError struct {
	Err error
}

// Error implements error.
func (e *ResolveError) Error() string {
	return "dependency resolution failed: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *ResolveError) Unwrap() error { return e.Err }

// Engine is the dependency-graph engine consumed by the policy layer.
// Implementations must be safe for concurrent use; all per-call policy
// state travels in the Session.
type Engine interface {
	// ReadDescriptor reads an artifact's descriptor metadata, honoring
	// the session's descriptor policy for missing or invalid descriptors.
	ReadDescriptor(ctx context.Context, session *Session, req DescriptorRequest) (DescriptorResult, error)

	// ResolveArtifact locates the file for a single artifact.
	ResolveArtifact(ctx context.Context, session *Session, req ArtifactRequest) (artifact.Coordinate, error)

	// Collect builds the dependency graph for the request using the
	// session's selector, manager and transformer. No files are fetched.
	Collect(ctx context.Context, session *Session, req CollectRequest) (*graph.Node, error)

	// Resolve locates files for the nodes of a collected graph that pass
	// the request's filter. Failures are wrapped in *ResolveError.
	Resolve(ctx context.Context, session *Session, req ResolveRequest) (*graph.Node, error)
}
