package graph

import (
	"fmt"
	"strings"
)

const indentUnit = "   "

// Dumper is a Visitor that renders each node as one indented line,
// including management provenance when the node's attributes were
// overridden during collection. It is purely diagnostic and never
// mutates the graph.
type Dumper struct {
	out    func(line string)
	indent string
}

// NewDumper creates a Dumper that emits each rendered line through out.
func NewDumper(out func(line string)) *Dumper {
	return &Dumper{out: out}
}

// VisitEnter implements Visitor.
func (d *Dumper) VisitEnter(node *Node) bool {
	var buf strings.Builder
	buf.WriteString(d.indent)

	if dep := node.Dependency; dep != nil {
		buf.WriteString(dep.Artifact.ID())
		buf.WriteByte(':')
		buf.WriteString(dep.Scope)

		if node.Managed.Has(ManagedScope) {
			fmt.Fprintf(&buf, " (scope managed from %s)", orDefault(node.Premanaged.Scope))
		}
		if node.Managed.Has(ManagedVersion) {
			fmt.Fprintf(&buf, " (version managed from %s)", orDefault(node.Premanaged.Version))
		}
		if node.Managed.Has(ManagedOptional) {
			if node.Premanaged.Optional != nil {
				fmt.Fprintf(&buf, " (optionality managed from %t)", *node.Premanaged.Optional)
			} else {
				buf.WriteString(" (optionality managed from default)")
			}
		}
		if node.Managed.Has(ManagedExclusions) {
			fmt.Fprintf(&buf, " (exclusions managed from %s)", formatExclusions(node.Premanaged.Exclusions))
		}
		if node.Managed.Has(ManagedProperties) {
			buf.WriteString(" (properties managed)")
		}
	}

	d.out(buf.String())
	d.indent += indentUnit
	return true
}

// VisitLeave implements Visitor.
func (d *Dumper) VisitLeave(*Node) bool {
	d.indent = d.indent[:len(d.indent)-len(indentUnit)]
	return true
}

func orDefault(s *string) string {
	if s == nil || *s == "" {
		return "default"
	}
	return *s
}

func formatExclusions(exclusions []Exclusion) string {
	if len(exclusions) == 0 {
		return "default"
	}
	parts := make([]string, len(exclusions))
	for i, e := range exclusions {
		parts[i] = e.GroupID + ":" + e.ArtifactID
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
