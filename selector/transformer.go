package selector

import "github.com/forgebuild/plugindeps/graph"

// Transformer post-processes a collected dependency graph, e.g. to resolve
// conflicts or inject compatibility dependencies. Transformers run after
// collection and before resolution.
type Transformer interface {
	Transform(root *graph.Node) (*graph.Node, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(root *graph.Node) (*graph.Node, error)

// Transform implements Transformer.
func (f TransformerFunc) Transform(root *graph.Node) (*graph.Node, error) {
	return f(root)
}

// NewChain runs transformers in order, feeding each one's output to the
// next. Nil entries are ignored; if at most one non-nil transformer
// remains it is returned directly (nil meaning no transformation).
func NewChain(transformers ...Transformer) Transformer {
	active := make([]Transformer, 0, len(transformers))
	for _, t := range transformers {
		if t != nil {
			active = append(active, t)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return TransformerFunc(func(root *graph.Node) (*graph.Node, error) {
		node := root
		for _, t := range active {
			var err error
			node, err = t.Transform(node)
			if err != nil {
				return node, err
			}
		}
		return node, nil
	})
}
