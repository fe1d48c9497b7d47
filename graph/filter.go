package graph

// Filter decides whether a node takes part in the resolve phase, i.e.
// whether its artifact file gets located/downloaded. Filters never affect
// the shape of the collected graph.
type Filter interface {
	// Accept reports whether the node should be resolved. parents holds
	// the chain from the root (exclusive) down to the node's parent.
	Accept(node *Node, parents []*Node) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(node *Node, parents []*Node) bool

// Accept implements Filter.
func (f FilterFunc) Accept(node *Node, parents []*Node) bool {
	return f(node, parents)
}

// NewScopeExclusionFilter returns a filter rejecting nodes whose scope is
// one of the given scopes. Nodes without a dependency (bare roots) and
// nodes with an empty scope are always accepted.
func NewScopeExclusionFilter(excluded ...string) Filter {
	set := make(map[string]bool, len(excluded))
	for _, s := range excluded {
		set[s] = true
	}
	return FilterFunc(func(node *Node, _ []*Node) bool {
		if node.Dependency == nil || node.Dependency.Scope == "" {
			return true
		}
		return !set[node.Dependency.Scope]
	})
}

// NewAndFilter combines filters conjunctively, ignoring nil entries.
// It returns nil when no non-nil filter remains, which callers treat as
// accept-all.
func NewAndFilter(filters ...Filter) Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return FilterFunc(func(node *Node, parents []*Node) bool {
		for _, f := range active {
			if !f.Accept(node, parents) {
				return false
			}
		}
		return true
	})
}
