// Package point provides the generic scalar and point types the rest of
// this module's geometry and tree packages are built on, generalizing the
// teacher's fixed <lat,long> float64 pair (see geo.Point) to an arbitrary
// number of dimensions over any ordered numeric scalar.
package point

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar is a totally-ordered numeric type supporting the arithmetic the
// tree and envelope packages need: zero, a finite maximum, addition,
// subtraction, multiplication and division, and a comparison that is total
// over finite values. constraints.Integer|constraints.Float excludes the
// ~string member of constraints.Ordered, which would satisfy none of that.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Zero returns the additive identity for S.
func Zero[S Scalar]() S {
	var z S
	return z
}

// Max returns the largest finite value representable by S. Go generics
// have no trait equivalent to num_traits::Bounded, so the supported
// scalar kinds are enumerated explicitly; adding a new Scalar kind means
// adding a case here.
func Max[S Scalar]() S {
	var z S
	switch any(z).(type) {
	case float32:
		return S(math.MaxFloat32)
	case float64:
		return S(math.MaxFloat64)
	case int:
		return S(math.MaxInt)
	case int8:
		return S(math.MaxInt8)
	case int16:
		return S(math.MaxInt16)
	case int32:
		return S(math.MaxInt32)
	case int64:
		return S(math.MaxInt64)
	case uint:
		return S(math.MaxUint)
	case uint8:
		return S(math.MaxUint8)
	case uint16:
		return S(math.MaxUint16)
	case uint32:
		return S(math.MaxUint32)
	case uint64:
		return S(math.MaxUint64)
	default:
		panic("point: unsupported scalar type")
	}
}

// IsNaN reports whether x is NaN. Always false for integer scalars.
func IsNaN[S Scalar](x S) bool {
	switch v := any(x).(type) {
	case float32:
		return math.IsNaN(float64(v))
	case float64:
		return math.IsNaN(v)
	default:
		return false
	}
}

// Point is a fixed-dimensional tuple over S. The dimension count is
// recorded on construction rather than carried in the type, since Go
// generics have no const-generic array length; every operation below
// length-checks its operands against it.
type Point[S Scalar] struct {
	coords []S
}

// New builds a Point from its coordinates. The coords slice is copied.
func New[S Scalar](coords ...S) Point[S] {
	c := make([]S, len(coords))
	copy(c, coords)
	return Point[S]{coords: c}
}

// Dims returns the number of dimensions. A zero-value Point (as produced
// by an uninitialized Envelope) has Dims() == 0.
func (p Point[S]) Dims() int {
	return len(p.coords)
}

// Coord returns the coordinate on the given axis.
func (p Point[S]) Coord(axis int) S {
	return p.coords[axis]
}

// Sub returns the componentwise difference p - o.
func (p Point[S]) Sub(o Point[S]) Point[S] {
	if p.Dims() != o.Dims() {
		panic("point: dimension mismatch in Sub")
	}
	out := make([]S, p.Dims())
	for i := range out {
		out[i] = p.coords[i] - o.coords[i]
	}
	return Point[S]{coords: out}
}

// Length2 returns the squared Euclidean length of p.
func (p Point[S]) Length2() S {
	var sum S
	for _, c := range p.coords {
		sum += c * c
	}
	return sum
}
