package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/forgebuild/plugindeps/graph"
)

const sampleUniverse = `
artifacts:
  - groupId: org.example
    artifactId: demo-plugin
    version: 1.0.0
    type: forge-plugin
    file: repo/demo-plugin-1.0.0.jar
    properties:
      prerequisites.forge: "2.2"
    dependencies:
      - groupId: org.example
        artifactId: helper
        version: 2.0.0
        scope: runtime
        exclusions:
          - groupId: org.example
            artifactId: unwanted
  - groupId: org.example
    artifactId: helper
    version: 2.0.0
    file: repo/helper-2.0.0.jar
    dependencies:
      - groupId: org.example
        artifactId: testkit
        version: 1.0.0
        scope: test
        optional: true
`

func TestParseUniverse(t *testing.T) {
	m, err := ParseUniverse(strings.NewReader(sampleUniverse))
	if err != nil {
		t.Fatalf("ParseUniverse() error = %v", err)
	}

	res, err := m.ReadDescriptor(context.Background(), NewSession(), DescriptorRequest{
		Artifact: coord("demo-plugin", "1.0.0"),
	})
	if err != nil {
		t.Fatalf("ReadDescriptor() error = %v", err)
	}
	if got := res.Properties["prerequisites.forge"]; got != "2.2" {
		t.Errorf("prerequisites property = %q, want 2.2", got)
	}
	if len(res.Dependencies) != 1 {
		t.Fatalf("dependencies = %d, want 1", len(res.Dependencies))
	}
	dep := res.Dependencies[0]
	if dep.Scope != graph.ScopeRuntime || dep.Artifact.ArtifactID != "helper" {
		t.Errorf("dependency = %+v, want runtime helper", dep)
	}
	if len(dep.Exclusions) != 1 || dep.Exclusions[0].ArtifactID != "unwanted" {
		t.Errorf("exclusions = %v, want [org.example:unwanted]", dep.Exclusions)
	}

	helper, err := m.ReadDescriptor(context.Background(), NewSession(), DescriptorRequest{
		Artifact: coord("helper", "2.0.0"),
	})
	if err != nil {
		t.Fatalf("ReadDescriptor(helper) error = %v", err)
	}
	if len(helper.Dependencies) != 1 || !helper.Dependencies[0].Optional {
		t.Errorf("helper dependencies = %+v, want one optional test dep", helper.Dependencies)
	}
}

func TestParseUniverseRejectsIncompleteArtifacts(t *testing.T) {
	_, err := ParseUniverse(strings.NewReader("artifacts:\n  - groupId: org.example\n"))
	if err == nil {
		t.Fatal("ParseUniverse() should reject artifacts without artifactId/version")
	}
}

func TestParseUniverseRejectsUnknownFields(t *testing.T) {
	_, err := ParseUniverse(strings.NewReader("artifacts:\n  - grupId: typo\n"))
	if err == nil {
		t.Fatal("ParseUniverse() should reject unknown fields")
	}
}
