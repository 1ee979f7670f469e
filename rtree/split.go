package rtree

import (
	"sort"

	"github.com/jagill/rstar/envelope"
	"github.com/jagill/rstar/point"
)

// split divides an overflowing node n's children into two groups,
// following the R*-tree split algorithm: choose the split axis, sort
// children along it, choose the split index that minimizes overlap
// (tie-broken by area), then detach the suffix into a new sibling node.
// n is mutated in place to keep the prefix; the sibling is returned for
// the caller to insert as n's new sibling.
func split[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], n *node[S, T]) *node[S, T] {
	axis := chooseSplitAxis(n, tree.params.MinSize)
	envelope.AlignEnvelopes(axis, n.children, (*node[S, T]).envelope)
	idx := chooseSplitIndex(n, tree.params.MinSize)

	siblingChildren := append([]*node[S, T](nil), n.children[idx:]...)
	n.children = n.children[:idx:idx]
	n.mbr = mbrForChildren(n.children)

	return newParent(siblingChildren)
}

// chooseSplitAxis picks the axis whose every candidate split distribution
// (sliding the divide from minSize to len-minSize) has the smallest total
// margin, following the R*-tree S algorithm. The comparison is
// deliberately `<` rather than `<=` and short-circuits on axis == 0,
// matching the original rstar crate's get_split_axis
// (original_source/src/rstar.rs) exactly: a later axis only displaces the
// current best on a STRICT margin improvement, so among equally good
// axes the lowest-numbered one wins, not the last one tried.
func chooseSplitAxis[S point.Scalar, T PointDistance[S]](n *node[S, T], minSize int) int {
	dims := n.envelope().Min.Dims()
	bestAxis := 0
	var bestGoodness S

	for axis := 0; axis < dims; axis++ {
		sorted := append([]*node[S, T](nil), n.children...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].envelope().Min.Coord(axis) < sorted[j].envelope().Min.Coord(axis)
		})

		var marginValue S
		for k := minSize; k <= len(sorted)-minSize; k++ {
			var first, second envelope.Envelope[S]
			for _, c := range sorted[:k] {
				first = envelope.Merge(first, c.envelope())
			}
			for _, c := range sorted[k:] {
				second = envelope.Merge(second, c.envelope())
			}
			marginValue += first.Margin() + second.Margin()
		}

		if marginValue < bestGoodness || axis == 0 {
			bestAxis = axis
			bestGoodness = marginValue
		}
	}

	return bestAxis
}

// chooseSplitIndex picks, among the candidate divides of n.children
// (already sorted along the chosen axis by AlignEnvelopes), the one
// minimizing the lexicographic pair (intersection area, area), following
// the R*-tree S algorithm. Ties only improve on a strict decrease, so the
// smallest valid k wins among equals.
func chooseSplitIndex[S point.Scalar, T PointDistance[S]](n *node[S, T], minSize int) int {
	bestIdx := minSize
	var bestOverlap, bestArea S

	for k := minSize; k <= len(n.children)-minSize; k++ {
		var first, second envelope.Envelope[S]
		for _, c := range n.children[:k] {
			first = envelope.Merge(first, c.envelope())
		}
		for _, c := range n.children[k:] {
			second = envelope.Merge(second, c.envelope())
		}
		overlap := envelope.IntersectionArea(first, second)
		area := first.Area() + second.Area()

		if k == minSize || overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestIdx = k
			bestOverlap = overlap
			bestArea = area
		}
	}

	return bestIdx
}
