package plugindeps

import (
	"testing"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/engine"
	"github.com/forgebuild/plugindeps/graph"
	"github.com/forgebuild/plugindeps/selector"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := New(engine.NewMemory())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func pluginCoordinate(requiredVersion string) artifact.Coordinate {
	c := artifact.New("org.example", "demo-plugin", "1.0").WithType(pluginArtifactType)
	if requiredVersion != "" {
		c = c.WithProperty(artifact.PropRequiredHostVersion, requiredVersion)
	}
	return c
}

// TestClassicResolutionBoundary verifies the version gate: anything below
// "3" (including the absent legacy default) selects the classic policy,
// exactly "3" and above the default policy.
func TestClassicResolutionBoundary(t *testing.T) {
	r := testResolver(t)

	for _, tc := range []struct {
		version string
		classic bool
	}{
		{"", true}, // absent, legacy default "2"
		{"2", true},
		{"2.0", true},
		{"2.2.1", true},
		{"2.9.9", true},
		{"3", false}, // boundary: exactly the threshold is default
		{"3.0.0", false},
		{"3.6.3", false},
		{"4.0.0-beta-1", false},
		{"not-a-version", true}, // unparsable degrades to the legacy default
	} {
		classic, _ := r.classicResolution(pluginCoordinate(tc.version))
		if classic != tc.classic {
			t.Errorf("classicResolution(version=%q) = %v, want %v", tc.version, classic, tc.classic)
		}
	}
}

// TestClassicPolicySelectorShape verifies the classic bundle accepts
// direct test dependencies but rejects them after one derivation, and
// always excludes transport providers.
func TestClassicPolicySelectorShape(t *testing.T) {
	r := testResolver(t)
	session := engine.NewSession()

	bundle, classic, _ := r.assemblePolicy(session, pluginCoordinate("2.0"), nil, nil)
	if !classic {
		t.Fatal("version 2.0 should assemble the classic policy")
	}

	testDep := graph.Dependency{
		Artifact: artifact.New("org.example", "junit-ish", "4.0"),
		Scope:    graph.ScopeTest,
	}
	if !bundle.selector.Select(testDep) {
		t.Error("classic policy should accept direct test dependencies")
	}

	carrier := graph.Dependency{Artifact: artifact.New("org.example", "e", "1.0"), Scope: graph.ScopeRuntime}
	derived := bundle.selector.DeriveChild(selector.Context{Dependency: &carrier})
	if derived.Select(testDep) {
		t.Error("classic policy should reject transitive test dependencies")
	}

	transport := graph.Dependency{
		Artifact: artifact.New(selector.TransportGroupID, "http-provider", "1.0"),
		Scope:    graph.ScopeRuntime,
	}
	if bundle.selector.Select(transport) {
		t.Error("classic policy should exclude transport providers")
	}
}

// TestDefaultPolicyKeepsSessionSelector verifies the default bundle wraps
// the session's own selector, changed only by the transport exclusion.
func TestDefaultPolicyKeepsSessionSelector(t *testing.T) {
	r := testResolver(t)
	session := engine.NewSession()
	session.Selector = selector.AcceptAll{}

	bundle, classic, _ := r.assemblePolicy(session, pluginCoordinate("3.1"), nil, nil)
	if classic {
		t.Fatal("version 3.1 should assemble the default policy")
	}

	testDep := graph.Dependency{
		Artifact: artifact.New("org.example", "junit-ish", "4.0"),
		Scope:    graph.ScopeTest,
	}
	carrier := graph.Dependency{Artifact: artifact.New("org.example", "e", "1.0"), Scope: graph.ScopeRuntime}
	derived := bundle.selector.DeriveChild(selector.Context{Dependency: &carrier})
	if !derived.Select(testDep) {
		t.Error("session's accept-all selector behavior should be reproduced unchanged")
	}

	transport := graph.Dependency{
		Artifact: artifact.New(selector.TransportGroupID, "http-provider", "1.0"),
		Scope:    graph.ScopeRuntime,
	}
	if derived.Select(transport) {
		t.Error("transport exclusion should be added on top of the session selector")
	}
}

// TestResolutionFilterExcludesProvidedAndTest verifies the bundle's
// resolve-phase filter and its conjunction with a caller filter.
func TestResolutionFilterExcludesProvidedAndTest(t *testing.T) {
	r := testResolver(t)

	rejected := 0
	callerFilter := graph.FilterFunc(func(node *graph.Node, _ []*graph.Node) bool {
		rejected++
		return node.Dependency.Artifact.ArtifactID != "vetoed"
	})
	bundle, _, _ := r.assemblePolicy(engine.NewSession(), pluginCoordinate(""), callerFilter, nil)

	mk := func(id, scope string) *graph.Node {
		return &graph.Node{Dependency: &graph.Dependency{
			Artifact: artifact.New("org.example", id, "1.0"),
			Scope:    scope,
		}}
	}

	if bundle.filter.Accept(mk("a", graph.ScopeProvided), nil) {
		t.Error("provided nodes must not be resolved")
	}
	if bundle.filter.Accept(mk("a", graph.ScopeTest), nil) {
		t.Error("test nodes must not be resolved")
	}
	if !bundle.filter.Accept(mk("a", graph.ScopeRuntime), nil) {
		t.Error("runtime nodes should be resolved")
	}
	if bundle.filter.Accept(mk("vetoed", graph.ScopeRuntime), nil) {
		t.Error("caller filter veto should hold")
	}
	if rejected == 0 {
		t.Error("caller filter was never consulted")
	}
}

// TestPolicyTransformerChainsSessionThenExtra verifies transformer order:
// the session's transformer runs before the per-call extra one.
func TestPolicyTransformerChainsSessionThenExtra(t *testing.T) {
	r := testResolver(t)

	var order []string
	session := engine.NewSession()
	session.Transformer = selector.TransformerFunc(func(root *graph.Node) (*graph.Node, error) {
		order = append(order, "session")
		return root, nil
	})
	extra := selector.TransformerFunc(func(root *graph.Node) (*graph.Node, error) {
		order = append(order, "extra")
		return root, nil
	})

	bundle, _, _ := r.assemblePolicy(session, pluginCoordinate(""), nil, extra)
	if _, err := bundle.transformer.Transform(&graph.Node{}); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if len(order) != 2 || order[0] != "session" || order[1] != "extra" {
		t.Errorf("transformer order = %v, want [session extra]", order)
	}
}
