package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
)

func coord(id, version string) artifact.Coordinate {
	return artifact.New("org.example", id, version)
}

func runtimeDep(id, version string) graph.Dependency {
	return graph.Dependency{Artifact: coord(id, version), Scope: graph.ScopeRuntime}
}

func scopedDep(id, version, scope string) graph.Dependency {
	return graph.Dependency{Artifact: coord(id, version), Scope: scope}
}

func childIDs(n *graph.Node) []string {
	ids := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.Dependency.Artifact.ArtifactID+":"+c.Dependency.Artifact.Version)
	}
	return ids
}

// TestCollectDerivesSelectorsPerLevel verifies the session selector is
// derived per traversal context: with the standard session, a test-scoped
// dependency of a direct dependency is pruned while the direct level is
// collected as requested.
func TestCollectDerivesSelectorsPerLevel(t *testing.T) {
	m := NewMemory(
		Entry{Artifact: coord("plugin", "1.0")},
		Entry{Artifact: coord("b", "1.0"), Dependencies: []graph.Dependency{
			scopedDep("c", "1.0", graph.ScopeTest),
			runtimeDep("d", "1.0"),
		}},
		Entry{Artifact: coord("d", "1.0")},
	)

	root, err := m.Collect(context.Background(), NewSession(), CollectRequest{
		Root:         graph.Dependency{Artifact: coord("plugin", "1.0")},
		Dependencies: []graph.Dependency{runtimeDep("b", "1.0")},
	})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got := childIDs(root); len(got) != 1 || got[0] != "b:1.0" {
		t.Fatalf("root children = %v, want [b:1.0]", got)
	}
	if got := childIDs(root.Children[0]); len(got) != 1 || got[0] != "d:1.0" {
		t.Errorf("b children = %v, want [d:1.0] (test-scoped c pruned)", got)
	}
}

// TestCollectAppliesManagementWithVerboseTracking verifies managed
// versions rewrite transitive dependencies, record management bits, keep
// premanaged values in verbose mode, and steer descriptor lookup to the
// managed version.
func TestCollectAppliesManagementWithVerboseTracking(t *testing.T) {
	m := NewMemory(
		Entry{Artifact: coord("plugin", "1.0")},
		Entry{Artifact: coord("b", "1.0"), Dependencies: []graph.Dependency{
			runtimeDep("e", "2.0"),
		}},
		Entry{Artifact: coord("e", "1.0")}, // only the managed version exists
	)

	session := NewSession()
	session.Config[ConfigVerboseTree] = "true"

	managed := runtimeDep("e", "1.0")
	root, err := m.Collect(context.Background(), session, CollectRequest{
		Root:                graph.Dependency{Artifact: coord("plugin", "1.0")},
		Dependencies:        []graph.Dependency{runtimeDep("b", "1.0"), managed},
		ManagedDependencies: []graph.Dependency{runtimeDep("b", "1.0"), managed},
	})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	b := root.Children[0]
	if got := childIDs(b); len(got) != 1 || got[0] != "e:1.0" {
		t.Fatalf("b children = %v, want [e:1.0] (version managed from 2.0)", got)
	}

	e := b.Children[0]
	if !e.Managed.Has(graph.ManagedVersion) {
		t.Error("managed version bit not set")
	}
	if e.Premanaged.Version == nil || *e.Premanaged.Version != "2.0" {
		t.Errorf("premanaged version = %v, want 2.0", e.Premanaged.Version)
	}
}

// TestCollectWithoutVerboseSkipsPremanaged verifies management bits are
// recorded but premanaged values stay empty without the verbose flag.
func TestCollectWithoutVerboseSkipsPremanaged(t *testing.T) {
	m := NewMemory(
		Entry{Artifact: coord("plugin", "1.0")},
		Entry{Artifact: coord("b", "1.0"), Dependencies: []graph.Dependency{
			runtimeDep("e", "2.0"),
		}},
		Entry{Artifact: coord("e", "1.0")},
	)

	managed := runtimeDep("e", "1.0")
	root, err := m.Collect(context.Background(), NewSession(), CollectRequest{
		Root:                graph.Dependency{Artifact: coord("plugin", "1.0")},
		Dependencies:        []graph.Dependency{runtimeDep("b", "1.0")},
		ManagedDependencies: []graph.Dependency{managed},
	})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	e := root.Children[0].Children[0]
	if !e.Managed.Has(graph.ManagedVersion) {
		t.Error("managed version bit not set")
	}
	if e.Premanaged.Version != nil {
		t.Errorf("premanaged version tracked without verbose flag: %v", *e.Premanaged.Version)
	}
}

// TestCollectTerminatesOnCycles verifies cyclic descriptor declarations
// do not recurse forever.
func TestCollectTerminatesOnCycles(t *testing.T) {
	m := NewMemory(
		Entry{Artifact: coord("plugin", "1.0")},
		Entry{Artifact: coord("a", "1.0"), Dependencies: []graph.Dependency{runtimeDep("b", "1.0")}},
		Entry{Artifact: coord("b", "1.0"), Dependencies: []graph.Dependency{runtimeDep("a", "1.0")}},
	)

	root, err := m.Collect(context.Background(), NewSession(), CollectRequest{
		Root:         graph.Dependency{Artifact: coord("plugin", "1.0")},
		Dependencies: []graph.Dependency{runtimeDep("a", "1.0")},
	})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	// a -> b -> a, the second a is a leaf.
	a := root.Children[0]
	b := a.Children[0]
	if len(b.Children) != 1 || len(b.Children[0].Children) != 0 {
		t.Errorf("cycle should terminate with a leaf repeat node")
	}
}

func TestCollectFailsOnMissingDependencyDescriptor(t *testing.T) {
	m := NewMemory(Entry{Artifact: coord("plugin", "1.0")})

	_, err := m.Collect(context.Background(), NewSession(), CollectRequest{
		Root:         graph.Dependency{Artifact: coord("plugin", "1.0")},
		Dependencies: []graph.Dependency{runtimeDep("ghost", "1.0")},
	})
	if !errors.Is(err, ErrDescriptorNotFound) {
		t.Errorf("Collect() error = %v, want ErrDescriptorNotFound", err)
	}
}

func TestReadDescriptorPolicy(t *testing.T) {
	m := NewMemory()
	req := DescriptorRequest{Artifact: coord("ghost", "1.0")}

	if _, err := m.ReadDescriptor(context.Background(), NewSession(), req); !errors.Is(err, ErrDescriptorNotFound) {
		t.Errorf("strict policy: error = %v, want ErrDescriptorNotFound", err)
	}

	relaxed := NewSession()
	relaxed.DescriptorPolicy = DescriptorPolicy{IgnoreMissing: true}
	res, err := m.ReadDescriptor(context.Background(), relaxed, req)
	if err != nil {
		t.Fatalf("relaxed policy: error = %v, want degraded empty result", err)
	}
	if len(res.Properties) != 0 || len(res.Dependencies) != 0 {
		t.Errorf("degraded result should be empty, got %+v", res)
	}
}

// TestReadDescriptorScriptedFailure verifies transport-level failures
// surface regardless of descriptor policy.
func TestReadDescriptorScriptedFailure(t *testing.T) {
	broken := errors.New("connection reset")
	m := NewMemory(Entry{Artifact: coord("flaky", "1.0"), DescriptorErr: broken})

	relaxed := NewSession()
	relaxed.DescriptorPolicy = DescriptorPolicy{IgnoreMissing: true, IgnoreInvalid: true}
	_, err := m.ReadDescriptor(context.Background(), relaxed, DescriptorRequest{Artifact: coord("flaky", "1.0")})
	if !errors.Is(err, broken) {
		t.Errorf("ReadDescriptor() error = %v, want scripted transport failure", err)
	}
}

// TestResolvePopulatesFilesAndHonorsFilter verifies resolve attaches
// files to accepted nodes and never touches filtered ones.
func TestResolvePopulatesFilesAndHonorsFilter(t *testing.T) {
	m := NewMemory(
		Entry{Artifact: coord("plugin", "1.0"), File: "repo/plugin.jar"},
		Entry{Artifact: coord("b", "1.0"), File: "repo/b.jar"},
		// test-scoped c has no file on purpose: the filter must keep
		// resolve from ever looking at it.
	)

	rootDep := graph.Dependency{Artifact: coord("plugin", "1.0")}
	bDep := runtimeDep("b", "1.0")
	cDep := scopedDep("c", "1.0", graph.ScopeTest)
	root := &graph.Node{Dependency: &rootDep, Children: []*graph.Node{
		{Dependency: &bDep},
		{Dependency: &cDep},
	}}

	_, err := m.Resolve(context.Background(), NewSession(), ResolveRequest{
		Root:   root,
		Filter: graph.NewScopeExclusionFilter(graph.ScopeTest, graph.ScopeProvided),
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := root.Dependency.Artifact.File(); got != "repo/plugin.jar" {
		t.Errorf("root file = %q, want repo/plugin.jar", got)
	}
	if got := root.Children[0].Dependency.Artifact.File(); got != "repo/b.jar" {
		t.Errorf("b file = %q, want repo/b.jar", got)
	}
	if got := root.Children[1].Dependency.Artifact.File(); got != "" {
		t.Errorf("filtered c node got a file: %q", got)
	}
}

// TestResolveWrapsFailuresInEnvelope verifies resolve failures come back
// as *ResolveError with the true cause one Unwrap away.
func TestResolveWrapsFailuresInEnvelope(t *testing.T) {
	m := NewMemory(Entry{Artifact: coord("plugin", "1.0")}) // no file

	rootDep := graph.Dependency{Artifact: coord("plugin", "1.0")}
	_, err := m.Resolve(context.Background(), NewSession(), ResolveRequest{
		Root: &graph.Node{Dependency: &rootDep},
	})

	var envelope *ResolveError
	if !errors.As(err, &envelope) {
		t.Fatalf("Resolve() error = %T, want *ResolveError", err)
	}
	if !errors.Is(envelope.Err, ErrArtifactNotFound) {
		t.Errorf("envelope cause = %v, want ErrArtifactNotFound", envelope.Err)
	}
}

func TestResolveArtifact(t *testing.T) {
	m := NewMemory(Entry{Artifact: coord("plugin", "1.0"), File: "repo/plugin.jar"})

	resolved, err := m.ResolveArtifact(context.Background(), NewSession(), ArtifactRequest{Artifact: coord("plugin", "1.0")})
	if err != nil {
		t.Fatalf("ResolveArtifact() error = %v", err)
	}
	if resolved.File() != "repo/plugin.jar" {
		t.Errorf("File() = %q, want repo/plugin.jar", resolved.File())
	}

	if _, err := m.ResolveArtifact(context.Background(), NewSession(), ArtifactRequest{Artifact: coord("ghost", "1.0")}); !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("missing artifact: error = %v, want ErrArtifactNotFound", err)
	}
}
