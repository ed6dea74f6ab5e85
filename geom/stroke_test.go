package geom

import (
	"math"
	"testing"
)

func polygonArea(pts []Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

func TestStrokeExpandButtLine(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 2, Cap: LineCapButt, Join: LineJoinMiter, MiterLimit: 4})
	out := e.Expand([]Polyline{{Points: []Point{{0, 0}, {10, 0}}}})
	if len(out) != 1 {
		t.Fatalf("got %d outlines, want 1", len(out))
	}
	if a := math.Abs(polygonArea(out[0].Points)); math.Abs(a-20) > 1e-9 {
		t.Errorf("area = %v, want 20", a)
	}
}

func TestStrokeExpandCaps(t *testing.T) {
	tests := []struct {
		name string
		cap  LineCap
		want float64
		tol  float64
	}{
		{"butt", LineCapButt, 20, 1e-9},
		{"square", LineCapSquare, 24, 1e-9},
		{"round", LineCapRound, 20 + math.Pi, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewStrokeExpander(Stroke{Width: 2, Cap: tt.cap, MiterLimit: 4})
			e.SetTolerance(0.001)
			out := e.Expand([]Polyline{{Points: []Point{{0, 0}, {10, 0}}}})
			if a := math.Abs(polygonArea(out[0].Points)); math.Abs(a-tt.want) > tt.tol {
				t.Errorf("area = %v, want %v", a, tt.want)
			}
		})
	}
}

func TestStrokeExpandClosedRing(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 2, Join: LineJoinMiter, MiterLimit: 4})
	sq := Polyline{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	out := e.Expand([]Polyline{sq})
	if len(out) != 2 {
		t.Fatalf("got %d rings, want 2", len(out))
	}
	outer := polygonArea(out[0].Points)
	inner := polygonArea(out[1].Points)
	if math.Signbit(outer) == math.Signbit(inner) {
		t.Errorf("rings have the same orientation: %v %v", outer, inner)
	}
	if got := math.Abs(outer); math.Abs(got-144) > 1e-9 {
		t.Errorf("outer ring area = %v, want 144", got)
	}
}

func TestStrokeZeroLengthDot(t *testing.T) {
	e := NewStrokeExpander(Stroke{Width: 4, Cap: LineCapRound})
	out := e.Expand([]Polyline{{Points: []Point{{5, 5}}}})
	if len(out) != 1 {
		t.Fatalf("round cap dot missing")
	}
	e = NewStrokeExpander(Stroke{Width: 4, Cap: LineCapButt})
	if out := e.Expand([]Polyline{{Points: []Point{{5, 5}}}}); len(out) != 0 {
		t.Errorf("butt cap dot drew %d outlines", len(out))
	}
}

func TestDashApply(t *testing.T) {
	d := NewDash(2, 3)
	got := d.Apply([]Polyline{{Points: []Point{{0, 0}, {10, 0}}}})
	// dashes at [0,2] and [5,7]
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2", len(got))
	}
	if got[1].Points[0] != Pt(5, 0) || got[1].Points[1] != Pt(7, 0) {
		t.Errorf("second dash = %v", got[1].Points)
	}

	off := d.WithOffset(1).Apply([]Polyline{{Points: []Point{{0, 0}, {10, 0}}}})
	if off[0].Points[1] != Pt(1, 0) {
		t.Errorf("offset dash = %v, want end at 1", off[0].Points)
	}
}

func TestDashSolid(t *testing.T) {
	if NewDash(0, 0) != nil {
		t.Error("all-zero pattern should be solid")
	}
	if NewDash(3).PatternLength() != 6 {
		t.Error("odd pattern should repeat")
	}
}
