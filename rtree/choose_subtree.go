package rtree

import (
	"github.com/jagill/rstar/envelope"
	"github.com/jagill/rstar/point"
)

// chooseSubtree picks the child of n that incoming should descend into,
// following the R*-tree CS algorithm (Beckmann et al., 1990) as ported
// by the original rstar crate's choose_subtree
// (original_source/src/rstar.rs) and the teacher's chooseSubtree
// (storage/rStarTree.go): first prefer any child whose envelope already
// contains incoming's, breaking ties by smallest area; only when no
// child qualifies do we fall back to minimizing the lexicographic triple
// (overlap increase, area increase, area) over all children. allLeaves
// restricts the overlap term to the case where n's children are the nodes
// incoming will be added to directly (for a leaf insert, the parents whose
// children are leaves), per the original algorithm (computing true overlap increase against
// internal nodes is not worth its cost, since their envelopes are
// coarser approximations).
func chooseSubtree[S point.Scalar, T PointDistance[S]](tree *Tree[S, T], n *node[S, T], incoming *node[S, T], allLeaves bool) *node[S, T] {
	tree.Metrics.incChooseSubtree()

	insertionMBR := incoming.envelope()

	bestInclusion := -1
	var bestInclusionArea S
	for i, c := range n.children {
		cEnv := c.envelope()
		if !cEnv.Contains(insertionMBR) {
			continue
		}
		area := cEnv.Area()
		if bestInclusion == -1 || area < bestInclusionArea {
			bestInclusion = i
			bestInclusionArea = area
		}
	}

	if bestInclusion != -1 {
		chosen := n.children[bestInclusion]
		if chosen.leaf {
			panic("rtree: choose_subtree descended into a leaf")
		}
		return chosen
	}

	tree.Metrics.incChooseSubtreeOutsiders()

	bestIdx := -1
	var bestOverlapIncrease, bestAreaIncrease, bestArea S
	for i, c := range n.children {
		cEnv := c.envelope()
		merged := envelope.Merge(cEnv, insertionMBR)
		areaIncrease := merged.Area() - cEnv.Area()
		area := cEnv.Area()

		var overlapIncrease S
		if allLeaves {
			tree.Metrics.incChooseSubtreeLeaves()
			var before, after S
			for j, other := range n.children {
				if j == i {
					continue
				}
				oEnv := other.envelope()
				before += envelope.IntersectionArea(cEnv, oEnv)
				after += envelope.IntersectionArea(merged, oEnv)
			}
			overlapIncrease = after - before
		}

		if bestIdx == -1 ||
			overlapIncrease < bestOverlapIncrease ||
			(overlapIncrease == bestOverlapIncrease && areaIncrease < bestAreaIncrease) ||
			(overlapIncrease == bestOverlapIncrease && areaIncrease == bestAreaIncrease && area < bestArea) {
			bestIdx = i
			bestOverlapIncrease = overlapIncrease
			bestAreaIncrease = areaIncrease
			bestArea = area
		}
	}

	chosen := n.children[bestIdx]
	if chosen.leaf {
		panic("rtree: choose_subtree descended into a leaf")
	}
	return chosen
}
