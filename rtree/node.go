// Package rtree implements the R*-tree insertion strategy and best-first
// nearest-neighbor search: the two subsystems spec.md §1 designates as the
// core of the index. It is grounded on the teacher's storage/rStarTree.go
// (forced reinsertion, choose-subtree, split-axis/split-index selection),
// generalized from a fixed <lat,long> rectangle to the generic
// envelope.Envelope[S]/point.Point[S] types.
package rtree

import (
	"github.com/jagill/rstar/envelope"
	"github.com/jagill/rstar/point"
)

// Object is the contract a tree payload must satisfy: it can report its
// own bounding envelope.
type Object[S point.Scalar] interface {
	Envelope() envelope.Envelope[S]
}

// PointDistance is a payload that can also report its squared distance to
// a query point; this must equal Envelope().Distance2(p) whenever the
// object's geometry reduces to its envelope (spec.md §6).
type PointDistance[S point.Scalar] interface {
	Object[S]
	Distance2(p point.Point[S]) S
}

// node is the tagged-variant tree node of spec.md §3: a Leaf carries a
// payload, a Parent carries an envelope and a child sequence. Following
// the teacher's node (storage/rStarTree.go), both variants are fields of
// one struct distinguished by a flag rather than a Go interface, since
// every internal algorithm needs fast, allocation-free access to either
// representation depending on tree depth.
type node[S point.Scalar, T PointDistance[S]] struct {
	leaf     bool
	item     T                     // valid iff leaf
	mbr      envelope.Envelope[S]  // valid iff !leaf; merge(child.Envelope() for child in children) at rest
	children []*node[S, T]         // valid iff !leaf
}

func newLeaf[S point.Scalar, T PointDistance[S]](t T) *node[S, T] {
	return &node[S, T]{leaf: true, item: t}
}

func newParent[S point.Scalar, T PointDistance[S]](children []*node[S, T]) *node[S, T] {
	n := &node[S, T]{children: children}
	n.mbr = mbrForChildren(n.children)
	return n
}

// envelope returns the node's bounding envelope, whichever variant it is.
func (n *node[S, T]) envelope() envelope.Envelope[S] {
	if n.leaf {
		return n.item.Envelope()
	}
	return n.mbr
}

// mbrForChildren recomputes a parent's MBR from scratch over its current
// children, restoring invariant 1 of spec.md §8 after a mutation that
// can't cheaply merge incrementally (reinsertion detach, split).
func mbrForChildren[S point.Scalar, T PointDistance[S]](children []*node[S, T]) envelope.Envelope[S] {
	var mbr envelope.Envelope[S]
	for _, c := range children {
		mbr = envelope.Merge(mbr, c.envelope())
	}
	return mbr
}
