// Package envelope generalizes the teacher's geo.Rectangle (a fixed
// <lat,long> axis-aligned box) to an N-dimensional axis-aligned bounding
// region over any point.Scalar, per spec.md's Envelope contract.
package envelope

import (
	"sort"

	"github.com/jagill/rstar/point"
)

// Envelope is an axis-aligned bounding region: Min[i] <= Max[i] for every
// axis i. The zero value (Dims() == 0) is the "empty" envelope used as the
// identity element for Merge, matching an as-yet-unvisited parent node's
// MBR before its first child is merged in.
type Envelope[S point.Scalar] struct {
	Min, Max point.Point[S]
}

// New builds an Envelope from its corners. It panics if min > max on any
// axis or if the two points have mismatched dimensions; that invariant
// must hold at rest for every Envelope in the tree (spec.md §3).
func New[S point.Scalar](min, max point.Point[S]) Envelope[S] {
	if min.Dims() != max.Dims() {
		panic("envelope: dimension mismatch")
	}
	for i := 0; i < min.Dims(); i++ {
		if min.Coord(i) > max.Coord(i) {
			panic("envelope: lower bound greater than upper bound")
		}
	}
	return Envelope[S]{Min: min, Max: max}
}

// FromPoint returns the zero-extent Envelope covering exactly p.
func FromPoint[S point.Scalar](p point.Point[S]) Envelope[S] {
	return Envelope[S]{Min: p, Max: p}
}

func (e Envelope[S]) empty() bool {
	return e.Min.Dims() == 0
}

// Merge returns the smallest Envelope containing both a and b. Either
// operand may be the empty (zero-value) Envelope, in which case the other
// is returned unchanged; this lets a freshly created parent node start
// with a zero-value mbr and fold its first child in without special-casing
// the first merge.
func Merge[S point.Scalar](a, b Envelope[S]) Envelope[S] {
	if a.empty() {
		return b
	}
	if b.empty() {
		return a
	}
	if a.Min.Dims() != b.Min.Dims() {
		panic("envelope: dimension mismatch in Merge")
	}
	dims := a.Min.Dims()
	minC := make([]S, dims)
	maxC := make([]S, dims)
	for i := 0; i < dims; i++ {
		minC[i] = min(a.Min.Coord(i), b.Min.Coord(i))
		maxC[i] = max(a.Max.Coord(i), b.Max.Coord(i))
	}
	return Envelope[S]{Min: point.New(minC...), Max: point.New(maxC...)}
}

// Area returns the product of the extents, 0 if any extent is 0.
func (e Envelope[S]) Area() S {
	if e.empty() {
		return point.Zero[S]()
	}
	area := S(1)
	for i := 0; i < e.Min.Dims(); i++ {
		area *= e.Max.Coord(i) - e.Min.Coord(i)
	}
	return area
}

// Margin returns the sum of the extents (the R*-tree perimeter surrogate).
func (e Envelope[S]) Margin() S {
	var sum S
	for i := 0; i < e.Min.Dims(); i++ {
		sum += e.Max.Coord(i) - e.Min.Coord(i)
	}
	return sum
}

// IntersectionArea returns the area of a ∩ b, or 0 if they are disjoint.
func IntersectionArea[S point.Scalar](a, b Envelope[S]) S {
	if a.empty() || b.empty() {
		return point.Zero[S]()
	}
	dims := a.Min.Dims()
	area := S(1)
	for i := 0; i < dims; i++ {
		lo := max(a.Min.Coord(i), b.Min.Coord(i))
		hi := min(a.Max.Coord(i), b.Max.Coord(i))
		if hi <= lo {
			return point.Zero[S]()
		}
		area *= hi - lo
	}
	return area
}

// Contains reports whether o is fully contained within e.
func (e Envelope[S]) Contains(o Envelope[S]) bool {
	if e.empty() {
		return o.empty()
	}
	for i := 0; i < e.Min.Dims(); i++ {
		if o.Min.Coord(i) < e.Min.Coord(i) || o.Max.Coord(i) > e.Max.Coord(i) {
			return false
		}
	}
	return true
}

// Distance2 returns the squared Euclidean distance from p to the closest
// point of e, 0 if p lies within e.
func (e Envelope[S]) Distance2(p point.Point[S]) S {
	var sum S
	for i := 0; i < e.Min.Dims(); i++ {
		c := p.Coord(i)
		var d S
		switch {
		case c < e.Min.Coord(i):
			d = e.Min.Coord(i) - c
		case c > e.Max.Coord(i):
			d = c - e.Max.Coord(i)
		}
		sum += d * d
	}
	return sum
}

// MinMaxDist2 is the MINMAXDIST bound from Roussopoulos, Kelley & Vincent
// (1995): an upper bound on the distance from p to the nearest object
// guaranteed to lie within e, used to prune branches during
// nearest-neighbor search (spec.md §4.4).
func (e Envelope[S]) MinMaxDist2(p point.Point[S]) S {
	dims := e.Min.Dims()
	best := point.Max[S]()
	for k := 0; k < dims; k++ {
		var sum S
		for i := 0; i < dims; i++ {
			lo, hi := e.Min.Coord(i), e.Max.Coord(i)
			mid := lo + (hi-lo)/S(2)
			pi := p.Coord(i)
			var rm S
			if i == k {
				if pi <= mid {
					rm = lo
				} else {
					rm = hi
				}
			} else {
				if pi <= mid {
					rm = hi
				} else {
					rm = lo
				}
			}
			d := rm - pi
			sum += d * d
		}
		if sum < best {
			best = sum
		}
	}
	return best
}

// Center returns the center point of e.
func (e Envelope[S]) Center() point.Point[S] {
	dims := e.Min.Dims()
	c := make([]S, dims)
	for i := 0; i < dims; i++ {
		lo, hi := e.Min.Coord(i), e.Max.Coord(i)
		c[i] = lo + (hi-lo)/S(2)
	}
	return point.New(c...)
}

// AlignEnvelopes sorts children in ascending order of their envelope's
// lower bound on axis, ties broken by the upper bound on the same axis.
func AlignEnvelopes[S point.Scalar, C any](axis int, children []C, project func(C) Envelope[S]) {
	sort.SliceStable(children, func(i, j int) bool {
		ei, ej := project(children[i]), project(children[j])
		if ei.Min.Coord(axis) != ej.Min.Coord(axis) {
			return ei.Min.Coord(axis) < ej.Min.Coord(axis)
		}
		return ei.Max.Coord(axis) < ej.Max.Coord(axis)
	})
}

func min[S point.Scalar](a, b S) S {
	if a < b {
		return a
	}
	return b
}

func max[S point.Scalar](a, b S) S {
	if a > b {
		return a
	}
	return b
}
