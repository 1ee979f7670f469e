package rtree

import (
	"github.com/jagill/rstar/envelope"
	"github.com/jagill/rstar/point"
)

// insertionResultKind tags the tri-state result of attempting to insert
// into a node, mirroring the original rstar crate's InsertionResult enum
// (original_source/src/rstar.rs) exactly: a node-level insertion either
// finishes quietly, forces a split that bubbles a new sibling upward, or
// triggers a forced reinsertion that evicts some of the node's own
// children back up to the caller for re-insertion from the root.
type insertionResultKind int

const (
	resultComplete insertionResultKind = iota
	resultSplit
	resultReinsert
)

type insertionResult[S point.Scalar, T PointDistance[S]] struct {
	kind     insertionResultKind
	split    *node[S, T]   // valid iff kind == resultSplit
	reinsert []*node[S, T] // valid iff kind == resultReinsert
	depth    int           // valid iff kind == resultReinsert: levels climbed since detachment
}

// reinsertStackEntry is one pending top-level (re)insertion: a detached
// node, the tree level it must land on (0 = leaf level), and whether a
// forced reinsertion is still allowed to trigger on its behalf.
type reinsertStackEntry[S point.Scalar, T PointDistance[S]] struct {
	n             *node[S, T]
	level         int
	allowReinsert bool
}

// Insert adds t to the tree, following the original rstar crate's
// RStarInsertionStrategy::insert (original_source/src/rstar.rs): a
// work stack seeded with the new leaf, drained by recursing down to the
// target level and handling whatever bubbles back up (a plain
// completion, a split that may grow the root, or a forced reinsertion
// whose evicted nodes are pushed back onto the stack for another top-down
// pass). Unlike the teacher's overflowTreatment, which collapses this to
// a (bool, *node) pair because it ignores propagated reinsertion depth,
// this keeps the full three-way result so forced reinsertion is correctly
// limited to once per level per top-level Insert call.
func Insert[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], t T) {
	env := t.Envelope()
	for i := 0; i < env.Min.Dims(); i++ {
		if point.IsNaN(env.Min.Coord(i)) || point.IsNaN(env.Max.Coord(i)) {
			panic("rtree: Insert: NaN coordinate in item envelope")
		}
	}

	tree.Metrics.incInsertions()

	if tree.size == 0 {
		tree.height = 1
	}

	// Sized to the height at the START of this call and never resized,
	// even if the root splits partway through: a faithful port of the
	// original's one-time reinsertions.resize() before its work loop.
	reinsertions := make([]bool, tree.height)
	for i := range reinsertions {
		reinsertions[i] = true
	}

	stack := []reinsertStackEntry[S, T]{{n: newLeaf[S, T](t), level: 0, allowReinsert: true}}

	for len(stack) > 0 {
		last := len(stack) - 1
		entry := stack[last]
		stack = stack[:last]

		targetDepth := tree.height - entry.level - 1
		result := recursiveInsert(tree, tree.root, entry.n, targetDepth, entry.allowReinsert)

		switch result.kind {
		case resultComplete:
			// nothing further to do

		case resultSplit:
			tree.root = newParent([]*node[S, T]{tree.root, result.split})
			tree.height++

		case resultReinsert:
			level := tree.height - result.depth - 1
			allow := level >= 0 && level < len(reinsertions) && reinsertions[level]
			if level >= 0 && level < len(reinsertions) {
				reinsertions[level] = false
			}
			for _, n := range result.reinsert {
				stack = append(stack, reinsertStackEntry[S, T]{n: n, level: level, allowReinsert: allow})
			}
		}
	}

	tree.size++
}

// recursiveInsert descends from n toward targetDepth (0 meaning "insert
// incoming as a direct child of n"), merging incoming's envelope into
// every ancestor's MBR along the way, and reports what happened at this
// level so the caller can propagate it.
func recursiveInsert[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], n *node[S, T], incoming *node[S, T], targetDepth int, allowReinsert bool) insertionResult[S, T] {
	tree.Metrics.incRecursiveInsertions()

	n.mbr = envelope.Merge(n.mbr, incoming.envelope())

	if targetDepth == 0 {
		n.children = append(n.children, incoming)
		return resolveOverflow(tree, n, allowReinsert)
	}

	allLeaves := targetDepth == 1
	child := chooseSubtree(tree, n, incoming, allLeaves)
	childResult := recursiveInsert(tree, child, incoming, targetDepth-1, allowReinsert)

	switch childResult.kind {
	case resultSplit:
		n.children = append(n.children, childResult.split)
		return resolveOverflow(tree, n, allowReinsert)

	case resultReinsert:
		n.mbr = mbrForChildren(n.children)
		childResult.depth++
		return childResult

	default:
		return insertionResult[S, T]{kind: resultComplete}
	}
}

// resolveOverflow checks n against the tree's MaxSize and, if it
// overflows, either forces a reinsertion (once per level, only when
// allowReinsert and the tree's ReinsertionCount > 0) or splits n.
func resolveOverflow[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], n *node[S, T], allowReinsert bool) insertionResult[S, T] {
	tree.Metrics.incResolveOverflow()

	if len(n.children) <= tree.params.MaxSize {
		return insertionResult[S, T]{kind: resultComplete}
	}

	tree.Metrics.incResolveOverflowOverflows()

	if allowReinsert && tree.params.ReinsertionCount > 0 {
		tree.Metrics.incReinsertions()
		evicted := reinsert(tree, n)
		return insertionResult[S, T]{kind: resultReinsert, reinsert: evicted, depth: 0}
	}

	tree.Metrics.incSplits()
	sibling := split(tree, n)
	return insertionResult[S, T]{kind: resultSplit, split: sibling}
}
