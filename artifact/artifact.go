// Package artifact defines immutable artifact coordinates and their
// extensible string property bag.
//
// Coordinates are value types: every mutator returns a copy, so a Coordinate
// handed to another component can never change underneath it.
package artifact

import (
	"fmt"
	"maps"
)

// PropRequiredHostVersion is the property key carrying the minimum host
// version an artifact declares it requires. Absent means the legacy
// default applies.
const PropRequiredHostVersion = "requiredForgeVersion"

// Coordinate identifies an artifact in a repository.
//
// GroupID, ArtifactID and Version are mandatory. Classifier may be empty.
// Type defaults to "jar" when constructed via New.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	Type       string

	properties map[string]string
	file       string
}

// New creates a Coordinate with type "jar" and no classifier.
func New(groupID, artifactID, version string) Coordinate {
	return Coordinate{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Type:       "jar",
	}
}

// WithType returns a copy with the given artifact type.
func (c Coordinate) WithType(t string) Coordinate {
	c.Type = t
	return c
}

// WithClassifier returns a copy with the given classifier.
func (c Coordinate) WithClassifier(classifier string) Coordinate {
	c.Classifier = classifier
	return c
}

// Property returns the named property, or def when it is not set.
func (c Coordinate) Property(key, def string) string {
	if v, ok := c.properties[key]; ok {
		return v
	}
	return def
}

// HasProperty reports whether the named property is set.
func (c Coordinate) HasProperty(key string) bool {
	_, ok := c.properties[key]
	return ok
}

// Properties returns a copy of the property bag.
func (c Coordinate) Properties() map[string]string {
	if len(c.properties) == 0 {
		return nil
	}
	return maps.Clone(c.properties)
}

// WithProperty returns a copy with the property set.
func (c Coordinate) WithProperty(key, value string) Coordinate {
	props := maps.Clone(c.properties)
	if props == nil {
		props = make(map[string]string, 1)
	}
	props[key] = value
	c.properties = props
	return c
}

// WithProperties returns a copy whose property bag is replaced by props.
func (c Coordinate) WithProperties(props map[string]string) Coordinate {
	c.properties = maps.Clone(props)
	return c
}

// File returns the local path of the artifact, or "" if it has not been
// resolved to a file yet.
func (c Coordinate) File() string {
	return c.file
}

// WithFile returns a copy pointing at the given local file.
func (c Coordinate) WithFile(path string) Coordinate {
	c.file = path
	return c
}

// Key returns the version-less identity "group:artifact:type:classifier"
// used for management and exclusion matching.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%s:%s:%s:%s", c.GroupID, c.ArtifactID, c.Type, c.Classifier)
}

// ID returns the full "group:artifact[:type[:classifier]]:version" identity.
func (c Coordinate) ID() string {
	s := c.GroupID + ":" + c.ArtifactID
	if c.Type != "" {
		s += ":" + c.Type
	}
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	return s + ":" + c.Version
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return c.ID()
}
