package engine

// Trace is a causal chain of request data used to correlate nested engine
// requests in diagnostics. It carries no resolution semantics.
type Trace struct {
	parent *Trace
	data   any
}

// NewChild creates a trace node holding data, linked to parent. A nil
// parent starts a new chain.
func NewChild(parent *Trace, data any) *Trace {
	return &Trace{parent: parent, data: data}
}

// Parent returns the preceding trace node, or nil at the head of the
// chain.
func (t *Trace) Parent() *Trace {
	if t == nil {
		return nil
	}
	return t.parent
}

// Data returns the payload this trace node was created with.
func (t *Trace) Data() any {
	if t == nil {
		return nil
	}
	return t.data
}
