package engine

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forgebuild/plugindeps/artifact"
	"github.com/forgebuild/plugindeps/graph"
)

// Universe manifests script a Memory engine from YAML. The format is one
// document with a top-level "artifacts" list:
//
//	artifacts:
//	  - groupId: org.example
//	    artifactId: demo-plugin
//	    version: 1.0.0
//	    file: repo/demo-plugin-1.0.0.jar
//	    properties:
//	      prerequisites.forge: "2.2"
//	    dependencies:
//	      - groupId: org.example
//	        artifactId: helper
//	        version: 2.0.0
//	        scope: runtime

type universeFile struct {
	Artifacts []universeArtifact `yaml:"artifacts"`
}

type universeArtifact struct {
	GroupID      string               `yaml:"groupId"`
	ArtifactID   string               `yaml:"artifactId"`
	Version      string               `yaml:"version"`
	Type         string               `yaml:"type"`
	Classifier   string               `yaml:"classifier"`
	File         string               `yaml:"file"`
	Properties   map[string]string    `yaml:"properties"`
	Dependencies []universeDependency `yaml:"dependencies"`
}

type universeDependency struct {
	GroupID    string              `yaml:"groupId"`
	ArtifactID string              `yaml:"artifactId"`
	Version    string              `yaml:"version"`
	Type       string              `yaml:"type"`
	Classifier string              `yaml:"classifier"`
	Scope      string              `yaml:"scope"`
	Optional   bool                `yaml:"optional"`
	Exclusions []universeExclusion `yaml:"exclusions"`
}

type universeExclusion struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
}

// LoadUniverse reads a universe manifest file into a Memory engine.
func LoadUniverse(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe manifest: %w", err)
	}
	defer f.Close()
	m, err := ParseUniverse(f)
	if err != nil {
		return nil, fmt.Errorf("parse universe manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseUniverse reads a universe manifest from r into a Memory engine.
func ParseUniverse(r io.Reader) (*Memory, error) {
	var uf universeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&uf); err != nil {
		return nil, err
	}

	m := NewMemory()
	for i, ua := range uf.Artifacts {
		if ua.GroupID == "" || ua.ArtifactID == "" || ua.Version == "" {
			return nil, fmt.Errorf("artifact %d: groupId, artifactId and version are required", i)
		}
		coord := artifact.New(ua.GroupID, ua.ArtifactID, ua.Version)
		if ua.Type != "" {
			coord = coord.WithType(ua.Type)
		}
		if ua.Classifier != "" {
			coord = coord.WithClassifier(ua.Classifier)
		}

		deps := make([]graph.Dependency, 0, len(ua.Dependencies))
		for j, ud := range ua.Dependencies {
			if ud.GroupID == "" || ud.ArtifactID == "" || ud.Version == "" {
				return nil, fmt.Errorf("artifact %d dependency %d: groupId, artifactId and version are required", i, j)
			}
			dc := artifact.New(ud.GroupID, ud.ArtifactID, ud.Version)
			if ud.Type != "" {
				dc = dc.WithType(ud.Type)
			}
			if ud.Classifier != "" {
				dc = dc.WithClassifier(ud.Classifier)
			}
			scope := ud.Scope
			if scope == "" {
				scope = graph.ScopeCompile
			}
			exclusions := make([]graph.Exclusion, 0, len(ud.Exclusions))
			for _, ue := range ud.Exclusions {
				exclusions = append(exclusions, graph.Exclusion{GroupID: ue.GroupID, ArtifactID: ue.ArtifactID})
			}
			deps = append(deps, graph.Dependency{
				Artifact:   dc,
				Scope:      scope,
				Optional:   ud.Optional,
				Exclusions: exclusions,
			})
		}

		m.Add(Entry{
			Artifact:     coord,
			Properties:   ua.Properties,
			Dependencies: deps,
			File:         ua.File,
		})
	}
	return m, nil
}
