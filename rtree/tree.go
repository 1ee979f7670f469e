package rtree

import (
	"fmt"

	"github.com/jagill/rstar/point"
)

// Tree is the outer handle of spec.md §3: it owns the root (always a
// Parent, possibly empty), the tree height (0 when empty, 1 when the
// root's children are leaves, +1 each time the root splits), and the
// element count. It is a thin collaborator around the core algorithms in
// this package; everything it does beyond holding that state is
// bookkeeping, not policy.
type Tree[S point.Scalar, T PointDistance[S]] struct {
	root    *node[S, T]
	height  int
	size    int
	params  Params
	Metrics *Metrics
}

// NewTree constructs an empty tree. params is validated up front
// (spec.md §7: malformed construction parameters are a recoverable
// error, not a panic).
func NewTree[S point.Scalar, T PointDistance[S]](params Params) (*Tree[S, T], error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("rtree: NewTree: %w", err)
	}
	return &Tree[S, T]{
		root:   &node[S, T]{},
		height: 0,
		size:   0,
		params: params,
	}, nil
}

// Size returns the number of items currently stored in the tree.
func (t *Tree[S, T]) Size() int { return t.size }

// Height returns the tree's current height: 0 for an empty tree, 1 when
// the root's children are leaves, incrementing by one each time the root
// splits.
func (t *Tree[S, T]) Height() int { return t.height }

// Params returns the tree's construction parameters.
func (t *Tree[S, T]) Params() Params { return t.params }
