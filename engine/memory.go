package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
	"github.com/forgebuild/plugindeps/selector"
)

// Entry scripts one artifact of a Memory engine's universe.
type Entry struct {
	// Artifact is the coordinate the entry is registered under. Lookup
	// ignores type and classifier.
	Artifact artifact.Coordinate

	// Properties are the descriptor-level properties returned by
	// ReadDescriptor.
	Properties map[string]string

	// Dependencies are the dependencies the artifact's descriptor
	// declares.
	Dependencies []graph.Dependency

	// File is the local path resolve populates. An empty File makes the
	// resolve phase fail for this artifact.
	File string

	// DescriptorErr, when non-nil, makes ReadDescriptor fail outright
	// with this error regardless of descriptor policy, simulating
	// transport failures.
	DescriptorErr error
}

// Memory is a deterministic in-memory Engine driven by a scripted
// artifact universe. It implements collection honestly — selector
// derivation, management bookkeeping and transformer chaining all run —
// which makes it suitable both for tests and for offline diagnostics
// against a captured universe.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates a Memory engine holding the given entries.
func NewMemory(entries ...Entry) *Memory {
	m := &Memory{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add registers or replaces an entry.
func (m *Memory) Add(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entryKey(e.Artifact)] = e
}

func entryKey(c artifact.Coordinate) string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

func (m *Memory) entry(c artifact.Coordinate) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[entryKey(c)]
	return e, ok
}

// ReadDescriptor implements Engine.
func (m *Memory) ReadDescriptor(ctx context.Context, session *Session, req DescriptorRequest) (DescriptorResult, error) {
	if err := ctx.Err(); err != nil {
		return DescriptorResult{}, err
	}
	e, ok := m.entry(req.Artifact)
	if !ok {
		if session.DescriptorPolicy.IgnoreMissing {
			return DescriptorResult{Artifact: req.Artifact}, nil
		}
		return DescriptorResult{}, fmt.Errorf("reading descriptor of %s: %w", req.Artifact.ID(), ErrDescriptorNotFound)
	}
	if e.DescriptorErr != nil {
		return DescriptorResult{}, fmt.Errorf("reading descriptor of %s: %w", req.Artifact.ID(), e.DescriptorErr)
	}
	return DescriptorResult{
		Artifact:     req.Artifact,
		Properties:   maps.Clone(e.Properties),
		Dependencies: slices.Clone(e.Dependencies),
	}, nil
}

// ResolveArtifact implements Engine.
func (m *Memory) ResolveArtifact(ctx context.Context, _ *Session, req ArtifactRequest) (artifact.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return req.Artifact, err
	}
	e, ok := m.entry(req.Artifact)
	if !ok || e.File == "" {
		return req.Artifact, fmt.Errorf("resolving %s: %w", req.Artifact.ID(), ErrArtifactNotFound)
	}
	return req.Artifact.WithFile(e.File), nil
}

// Collect implements Engine.
func (m *Memory) Collect(ctx context.Context, session *Session, req CollectRequest) (*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootDep := req.Root
	root := &graph.Node{Dependency: &rootDep}

	rootCtx := selector.Context{ManagedDependencies: req.ManagedDependencies}
	sel := session.Selector
	if sel != nil {
		sel = sel.DeriveChild(rootCtx)
	}
	mgr := session.Manager
	if mgr != nil {
		mgr = mgr.DeriveChild(rootCtx)
	}

	walk := &collectWalk{
		engine:  m,
		verbose: session.ConfigFlag(ConfigVerboseTree),
		path:    map[string]bool{entryKey(rootDep.Artifact): true},
	}
	if err := walk.children(ctx, root, req.Dependencies, sel, mgr); err != nil {
		return nil, err
	}

	if session.Transformer != nil {
		return session.Transformer.Transform(root)
	}
	return root, nil
}

// collectWalk carries the collection state threaded through recursion.
type collectWalk struct {
	engine  *Memory
	verbose bool
	path    map[string]bool
}

func (w *collectWalk) children(ctx context.Context, parent *graph.Node, deps []graph.Dependency, sel selector.Selector, mgr selector.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, dep := range deps {
		d := dep
		node := &graph.Node{}

		if mgr != nil {
			if mgmt := mgr.Manage(d); mgmt != nil {
				w.apply(node, &d, mgmt)
			}
		}
		if sel != nil && !sel.Select(d) {
			continue
		}

		node.Dependency = &d
		parent.Children = append(parent.Children, node)

		key := entryKey(d.Artifact)
		if w.path[key] {
			continue
		}
		e, ok := w.engine.entry(d.Artifact)
		if !ok {
			return fmt.Errorf("collecting dependencies of %s: %w", d.Artifact.ID(), ErrDescriptorNotFound)
		}

		childCtx := selector.Context{Dependency: &d}
		childSel := sel
		if childSel != nil {
			childSel = childSel.DeriveChild(childCtx)
		}
		childMgr := mgr
		if childMgr != nil {
			childMgr = childMgr.DeriveChild(childCtx)
		}

		w.path[key] = true
		err := w.children(ctx, node, e.Dependencies, childSel, childMgr)
		delete(w.path, key)
		if err != nil {
			return err
		}
	}
	return nil
}

// apply rewrites d with the manager's ruling and records management
// metadata on the node. Premanaged values are kept only in verbose mode.
func (w *collectWalk) apply(node *graph.Node, d *graph.Dependency, mgmt *selector.Management) {
	if mgmt.Version != nil {
		if w.verbose {
			old := d.Artifact.Version
			node.Premanaged.Version = &old
		}
		d.Artifact.Version = *mgmt.Version
		node.Managed |= graph.ManagedVersion
	}
	if mgmt.Scope != nil {
		if w.verbose {
			old := d.Scope
			node.Premanaged.Scope = &old
		}
		d.Scope = *mgmt.Scope
		node.Managed |= graph.ManagedScope
	}
	if len(mgmt.Exclusions) > 0 {
		if w.verbose {
			node.Premanaged.Exclusions = slices.Clone(d.Exclusions)
		}
		merged := slices.Clone(d.Exclusions)
		for _, e := range mgmt.Exclusions {
			if !slices.Contains(merged, e) {
				merged = append(merged, e)
			}
		}
		d.Exclusions = merged
		node.Managed |= graph.ManagedExclusions
	}
}

// Resolve implements Engine.
func (m *Memory) Resolve(ctx context.Context, _ *Session, req ResolveRequest) (*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.resolveNode(req.Root, nil, req.Filter); err != nil {
		return nil, &ResolveError{Err: err}
	}
	return req.Root, nil
}

func (m *Memory) resolveNode(node *graph.Node, parents []*graph.Node, filter graph.Filter) error {
	if node.Dependency != nil && (filter == nil || filter.Accept(node, parents)) {
		e, ok := m.entry(node.Dependency.Artifact)
		if !ok || e.File == "" {
			return fmt.Errorf("downloading %s: %w", node.Dependency.Artifact.ID(), ErrArtifactNotFound)
		}
		node.Dependency.Artifact = node.Dependency.Artifact.WithFile(e.File)
	}
	parents = append(parents, node)
	for _, child := range node.Children {
		if err := m.resolveNode(child, parents, filter); err != nil {
			return err
		}
	}
	return nil
}
