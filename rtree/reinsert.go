package rtree

import (
	"sort"

	"github.com/jagill/rstar/point"
)

// reinsert implements forced reinsertion (the R*-tree RI algorithm):
// sort n's children by ascending distance from their center to n's own
// center, then detach the farthest params.ReinsertionCount of them for
// the caller to reinsert from the root. n keeps the nearer children and
// has its MBR recomputed from scratch, since the detached children may
// have been the ones driving its extent on one or more axes.
func reinsert[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], n *node[S, T]) []*node[S, T] {
	center := n.mbr.Center()

	sort.SliceStable(n.children, func(i, j int) bool {
		di := n.children[i].envelope().Center().Sub(center).Length2()
		dj := n.children[j].envelope().Center().Sub(center).Length2()
		return di < dj
	})

	cut := len(n.children) - tree.params.ReinsertionCount
	evicted := append([]*node[S, T](nil), n.children[cut:]...)
	n.children = n.children[:cut:cut]
	n.mbr = mbrForChildren(n.children)

	return evicted
}
