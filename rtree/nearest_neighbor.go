package rtree

import (
	"container/heap"

	"github.com/jagill/rstar/point"
)

// nnEntry is one pending candidate in a best-first nearest-neighbor
// search: either a leaf item (dist is its exact squared distance to the
// query) or a parent subtree (dist is a lower bound, its envelope's
// Distance2 to the query).
type nnEntry[S point.Scalar, T PointDistance[S]] struct {
	n    *node[S, T]
	dist S
}

// nnHeap is a min-heap by dist, grounded on
// hanyangtay-go-datastructures/rtree/rtree_query.go's KNN priority queue:
// Go's container/heap is natively a min-heap given an ascending Less, so
// unlike a Rust BinaryHeap (max-heap, requiring an inverted Ord to get
// best-first-by-smallest-distance), no inversion is needed here.
type nnHeap[S point.Scalar, T PointDistance[S]] []nnEntry[S, T]

func (h nnHeap[S, T]) Len() int            { return len(h) }
func (h nnHeap[S, T]) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nnHeap[S, T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nnHeap[S, T]) Push(x interface{}) { *h = append(*h, x.(nnEntry[S, T])) }
func (h *nnHeap[S, T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NearestNeighbor returns the item in the tree closest to query, using
// the best-first branch-and-bound algorithm of Roussopoulos, Kelley &
// Vincent (1995), as ported by original_source's nearest_neighbor.rs.
// The second return is false iff the tree is empty.
func NearestNeighbor[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], query point.Point[S]) (result T, ok bool) {
	if tree.size == 0 {
		return result, false
	}

	smallestMinMax := point.Max[S]()
	h := &nnHeap[S, T]{}
	extendHeapPruned(h, tree.root, query, &smallestMinMax)

	for h.Len() > 0 {
		entry := heap.Pop(h).(nnEntry[S, T])
		if entry.n.leaf {
			return entry.n.item, true
		}
		if entry.dist > smallestMinMax {
			continue
		}
		extendHeapPruned(h, entry.n, query, &smallestMinMax)
	}

	return result, false
}

// extendHeapPruned pushes n's children onto h, skipping any whose lower
// bound already exceeds the current smallestMinMax (they cannot possibly
// hold the answer), and unconditionally tightens smallestMinMax against
// every child's MinMaxDist2 regardless of whether that child was pushed:
// a pruned child can still certify that SOME object lies within its
// MinMaxDist2, tightening the bound for everyone else (spec.md §4.4).
func extendHeapPruned[S point.Scalar, T PointDistance[S]](h *nnHeap[S, T], n *node[S, T], query point.Point[S], smallestMinMax *S) {
	for _, c := range n.children {
		var dist S
		if c.leaf {
			dist = c.item.Distance2(query)
		} else {
			dist = c.envelope().Distance2(query)
		}

		if dist <= *smallestMinMax {
			heap.Push(h, nnEntry[S, T]{n: c, dist: dist})
		}

		if mm := c.envelope().MinMaxDist2(query); mm < *smallestMinMax {
			*smallestMinMax = mm
		}
	}
}

// NearestNeighborIterator yields tree items in non-decreasing distance
// from query, lazily, without the MINMAXDIST pruning NearestNeighbor
// uses (pruning assumes only the single closest result is wanted; an
// iterator that must be able to yield the second-, third-, ... closest
// item cannot discard a candidate just because one closer item has
// already been found). Each call to Next expands exactly as many nodes
// as needed to produce the next leaf.
type NearestNeighborIterator[S point.Scalar, T PointDistance[S]] struct {
	query point.Point[S]
	h     nnHeap[S, T]
}

// NearestNeighborIter returns an iterator over tree's items, closest
// first. It is restartable only by calling NearestNeighborIter again;
// it holds no reference back to tree after construction.
func NearestNeighborIter[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], query point.Point[S]) *NearestNeighborIterator[S, T] {
	it := &NearestNeighborIterator[S, T]{query: query}
	extendUnpruned(&it.h, tree.root, query)
	return it
}

func extendUnpruned[S point.Scalar, T PointDistance[S]](h *nnHeap[S, T], n *node[S, T], query point.Point[S]) {
	for _, c := range n.children {
		var dist S
		if c.leaf {
			dist = c.item.Distance2(query)
		} else {
			dist = c.envelope().Distance2(query)
		}
		heap.Push(h, nnEntry[S, T]{n: c, dist: dist})
	}
}

// Next returns the next-closest item and true, or the zero value and
// false once every item in the tree has been yielded.
func (it *NearestNeighborIterator[S, T]) Next() (result T, ok bool) {
	for it.h.Len() > 0 {
		entry := heap.Pop(&it.h).(nnEntry[S, T])
		if entry.n.leaf {
			return entry.n.item, true
		}
		extendUnpruned(&it.h, entry.n, it.query)
	}
	return result, false
}
