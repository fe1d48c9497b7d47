package engine

import "testing"

func TestTraceChain(t *testing.T) {
	head := NewChild(nil, "plugin")
	child := NewChild(head, "collect")

	if child.Data() != "collect" || child.Parent() != head {
		t.Errorf("child = (%v, parent %v), want (collect, head)", child.Data(), child.Parent())
	}
	if head.Parent() != nil {
		t.Error("head of the chain should have no parent")
	}

	// Accessors are nil-safe so diagnostics can walk chains blindly.
	var none *Trace
	if none.Parent() != nil || none.Data() != nil {
		t.Error("nil trace accessors should yield nil")
	}
}
