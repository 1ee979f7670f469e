package point

import (
	"math"
	"testing"
)

func TestZeroAndMax(t *testing.T) {
	if z := Zero[float64](); z != 0.0 {
		t.Log("ERROR: Zero[float64]() should be 0, got", z)
		t.Fail()
	}
	if z := Zero[int](); z != 0 {
		t.Log("ERROR: Zero[int]() should be 0, got", z)
		t.Fail()
	}
	if m := Max[float64](); m != math.MaxFloat64 {
		t.Log("ERROR: Max[float64]() should be math.MaxFloat64, got", m)
		t.Fail()
	}
	if m := Max[int32](); m != math.MaxInt32 {
		t.Log("ERROR: Max[int32]() should be math.MaxInt32, got", m)
		t.Fail()
	}
}

func TestIsNaN(t *testing.T) {
	if !IsNaN(math.NaN()) {
		t.Log("ERROR: IsNaN(NaN) should be true")
		t.Fail()
	}
	if IsNaN(1.0) {
		t.Log("ERROR: IsNaN(1.0) should be false")
		t.Fail()
	}
	if IsNaN[int](5) {
		t.Log("ERROR: IsNaN[int](5) should be false")
		t.Fail()
	}
}

func TestPointBasics(t *testing.T) {
	p := New(1.0, 2.0, 3.0)
	if p.Dims() != 3 {
		t.Log("ERROR: expected 3 dims, got", p.Dims())
		t.Fail()
	}
	for i, want := range []float64{1.0, 2.0, 3.0} {
		if p.Coord(i) != want {
			t.Log("ERROR: Coord", i, "expected", want, "got", p.Coord(i))
			t.Fail()
		}
	}
}

func TestPointSub(t *testing.T) {
	a := New(5.0, 3.0)
	b := New(2.0, 1.0)
	d := a.Sub(b)
	if d.Coord(0) != 3.0 || d.Coord(1) != 2.0 {
		t.Log("ERROR: expected (3, 2), got", d)
		t.Fail()
	}
}

func TestPointSubDimMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Log("ERROR: expected Sub to panic on dimension mismatch")
			t.Fail()
		}
	}()
	New(1.0, 2.0).Sub(New(1.0))
}

func TestPointLength2(t *testing.T) {
	p := New(3.0, 4.0)
	if p.Length2() != 25.0 {
		t.Log("ERROR: expected Length2 25, got", p.Length2())
		t.Fail()
	}
}

func TestNewCopiesCoords(t *testing.T) {
	coords := []float64{1.0, 2.0}
	p := New(coords...)
	coords[0] = 999.0
	if p.Coord(0) != 1.0 {
		t.Log("ERROR: Point.New should copy its coords, mutation leaked through")
		t.Fail()
	}
}
