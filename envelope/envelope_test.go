package envelope

import (
	"testing"

	"github.com/jagill/rstar/point"
)

// envelopesEqual compares by value since Envelope embeds Point, which is
// slice-backed and therefore not comparable with ==.
func envelopesEqual(a, b Envelope[float64]) bool {
	if a.Min.Dims() != b.Min.Dims() || a.Max.Dims() != b.Max.Dims() {
		return false
	}
	for i := 0; i < a.Min.Dims(); i++ {
		if a.Min.Coord(i) != b.Min.Coord(i) || a.Max.Coord(i) != b.Max.Coord(i) {
			return false
		}
	}
	return true
}

func TestNewPanicsOnBadBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Log("ERROR: expected New to panic when min > max")
			t.Fail()
		}
	}()
	New(point.New(1.0, 1.0), point.New(0.0, 1.0))
}

func TestAreaAndMargin(t *testing.T) {
	e := New(point.New(0.0, 0.0), point.New(2.0, 3.0))
	if e.Area() != 6.0 {
		t.Log("ERROR: expected area 6, got", e.Area())
		t.Fail()
	}
	if e.Margin() != 5.0 {
		t.Log("ERROR: expected margin 5, got", e.Margin())
		t.Fail()
	}
}

func TestMergeWithEmptyIsIdentity(t *testing.T) {
	var empty Envelope[float64]
	e := New(point.New(1.0, 1.0), point.New(2.0, 2.0))
	if !envelopesEqual(Merge(empty, e), e) {
		t.Log("ERROR: Merge(empty, e) should equal e")
		t.Fail()
	}
	if !envelopesEqual(Merge(e, empty), e) {
		t.Log("ERROR: Merge(e, empty) should equal e")
		t.Fail()
	}
}

func TestMergeGrowsBounds(t *testing.T) {
	a := New(point.New(0.0, 0.0), point.New(1.0, 1.0))
	b := New(point.New(2.0, -1.0), point.New(3.0, 0.5))
	m := Merge(a, b)
	want := New(point.New(0.0, -1.0), point.New(3.0, 1.0))
	if !envelopesEqual(m, want) {
		t.Log("ERROR: expected", want, "got", m)
		t.Fail()
	}
}

func TestIntersectionArea(t *testing.T) {
	a := New(point.New(0.0, 0.0), point.New(2.0, 2.0))
	b := New(point.New(1.0, 1.0), point.New(3.0, 3.0))
	if got := IntersectionArea(a, b); got != 1.0 {
		t.Log("ERROR: expected intersection area 1, got", got)
		t.Fail()
	}
	c := New(point.New(5.0, 5.0), point.New(6.0, 6.0))
	if got := IntersectionArea(a, c); got != 0.0 {
		t.Log("ERROR: expected disjoint envelopes to have 0 intersection area, got", got)
		t.Fail()
	}
}

func TestContains(t *testing.T) {
	outer := New(point.New(0.0, 0.0), point.New(10.0, 10.0))
	inner := New(point.New(1.0, 1.0), point.New(2.0, 2.0))
	if !outer.Contains(inner) {
		t.Log("ERROR: outer should contain inner")
		t.Fail()
	}
	if inner.Contains(outer) {
		t.Log("ERROR: inner should not contain outer")
		t.Fail()
	}
}

func TestDistance2(t *testing.T) {
	e := New(point.New(0.0, 0.0), point.New(1.0, 1.0))
	if d := e.Distance2(point.New(0.5, 0.5)); d != 0.0 {
		t.Log("ERROR: expected 0 distance for an interior point, got", d)
		t.Fail()
	}
	if d := e.Distance2(point.New(4.0, 1.0)); d != 9.0 {
		t.Log("ERROR: expected distance^2 9, got", d)
		t.Fail()
	}
}

func TestCenter(t *testing.T) {
	e := New(point.New(0.0, 0.0), point.New(4.0, 2.0))
	c := e.Center()
	if c.Coord(0) != 2.0 || c.Coord(1) != 1.0 {
		t.Log("ERROR: expected center (2, 1), got", c)
		t.Fail()
	}
}

func TestMinMaxDist2(t *testing.T) {
	e := New(point.New(0.0, 0.0), point.New(10.0, 10.0))
	q := point.New(-5.0, 5.0)
	// MINMAXDIST must always be >= the exact nearest-corner distance to a
	// point guaranteed to be in e on at least one axis, and it must be an
	// upper bound on the true nearest-object distance.
	got := e.MinMaxDist2(q)
	if got < 0 {
		t.Log("ERROR: MinMaxDist2 should never be negative, got", got)
		t.Fail()
	}
	// the nearest point of e to q is (0, 5), with squared distance 25; an
	// object sitting there makes MinMaxDist2 a valid (if loose) upper bound.
	if got < 25.0 {
		t.Log("ERROR: MinMaxDist2 should be >= the true nearest-point distance 25, got", got)
		t.Fail()
	}
}

func TestAlignEnvelopes(t *testing.T) {
	type item struct {
		env Envelope[float64]
	}
	items := []item{
		{New(point.New(3.0, 0.0), point.New(4.0, 1.0))},
		{New(point.New(1.0, 0.0), point.New(2.0, 1.0))},
		{New(point.New(2.0, 0.0), point.New(2.5, 1.0))},
	}
	AlignEnvelopes(0, items, func(i item) Envelope[float64] { return i.env })
	for i := 1; i < len(items); i++ {
		if items[i-1].env.Min.Coord(0) > items[i].env.Min.Coord(0) {
			t.Log("ERROR: AlignEnvelopes did not sort ascending by axis 0 lower bound")
			t.Fail()
		}
	}
}
