// Package graph models resolved dependency graphs: nodes, edge payloads,
// resolution-time filters and traversal visitors.
//
// A Node tree is produced by an engine's collect phase and annotated with
// management metadata describing which dependency attributes were overridden
// during collection, together with the pre-override values so diagnostics
// can report both sides.
package graph

import "github.com/forgebuild/plugindeps/artifact"

// Dependency scopes.
const (
	ScopeCompile  = "compile"
	ScopeRuntime  = "runtime"
	ScopeProvided = "provided"
	ScopeTest     = "test"
	ScopeSystem   = "system"
)

// Exclusion names a transitive dependency that must not be followed.
// "*" acts as a wildcard for either field.
type Exclusion struct {
	GroupID    string
	ArtifactID string
}

// Matches reports whether the exclusion applies to the given coordinate.
func (e Exclusion) Matches(c artifact.Coordinate) bool {
	return (e.GroupID == "*" || e.GroupID == c.GroupID) &&
		(e.ArtifactID == "*" || e.ArtifactID == c.ArtifactID)
}

// Dependency is an edge payload: an artifact plus the scope, optionality
// and exclusions it is used with.
type Dependency struct {
	Artifact   artifact.Coordinate
	Scope      string
	Optional   bool
	Exclusions []Exclusion
}

// ManagedBits records which attributes of a dependency were overridden by
// dependency management during collection.
type ManagedBits uint8

const (
	// ManagedVersion indicates the version was overridden.
	ManagedVersion ManagedBits = 1 << iota
	// ManagedScope indicates the scope was overridden.
	ManagedScope
	// ManagedOptional indicates the optional flag was overridden.
	ManagedOptional
	// ManagedExclusions indicates the exclusion set was overridden.
	ManagedExclusions
	// ManagedProperties indicates artifact properties were overridden.
	ManagedProperties
)

// Has reports whether all bits in mask are set.
func (b ManagedBits) Has(mask ManagedBits) bool {
	return b&mask == mask
}

// Premanaged holds the pre-override values of managed attributes, populated
// only for attributes whose corresponding ManagedBits flag is set and only
// when the session tracks verbose management state.
type Premanaged struct {
	Version    *string
	Scope      *string
	Optional   *bool
	Exclusions []Exclusion
	Properties map[string]string
}

// Node is one vertex of a collected dependency graph. Children are owned
// exclusively by their parent; sharing nodes between trees is not allowed.
type Node struct {
	// Dependency is the edge leading to this node. The root of a plugin
	// graph carries the plugin artifact itself with an empty scope.
	Dependency *Dependency

	// Children are the node's direct dependencies in declaration order.
	Children []*Node

	// Managed records which attributes were overridden during collection.
	Managed ManagedBits

	// Premanaged holds pre-override values for the attributes in Managed.
	Premanaged Premanaged
}

// Visitor receives depth-first traversal events from Node.Accept.
type Visitor interface {
	// VisitEnter is called before a node's children. Returning false
	// skips the children (VisitLeave is still called).
	VisitEnter(node *Node) bool

	// VisitLeave is called after a node's children. Returning false
	// aborts the remaining traversal.
	VisitLeave(node *Node) bool
}

// Accept walks the subtree rooted at n in depth-first order.
// It returns false if the traversal was aborted by the visitor.
func (n *Node) Accept(v Visitor) bool {
	if n == nil {
		return true
	}
	if v.VisitEnter(n) {
		for _, child := range n.Children {
			if !child.Accept(v) {
				break
			}
		}
	}
	return v.VisitLeave(n)
}
