package geom

import (
	"math"
	"testing"
)

type recordSink struct {
	ops []string
	pts []Point
}

func (r *recordSink) MoveTo(p Point) { r.ops = append(r.ops, "M"); r.pts = append(r.pts, p) }
func (r *recordSink) LineTo(p Point) { r.ops = append(r.ops, "L"); r.pts = append(r.pts, p) }
func (r *recordSink) CubicTo(_, _ Point, p Point) {
	r.ops = append(r.ops, "C")
	r.pts = append(r.pts, p)
}
func (r *recordSink) Arc(xform Affine, _, a1 float64, _ bool) {
	r.ops = append(r.ops, "A")
	r.pts = append(r.pts, xform.Apply(Pt(math.Cos(a1), math.Sin(a1))))
}
func (r *recordSink) ClosePath() { r.ops = append(r.ops, "Z") }

func (r *recordSink) String() string {
	s := ""
	for _, o := range r.ops {
		s += o
	}
	return s
}

func TestFeedPathElements(t *testing.T) {
	p := NewPath().MoveTo(0, 0).LineTo(10, 0).QuadTo(10, 10, 0, 10).
		ArcTo(5, 5, 0, false, true, 0, 0).Close()
	var s recordSink
	FeedPath(&s, p, Translate(1, 1))
	if got, want := s.String(), "MLCAZ"; got != want {
		t.Fatalf("ops = %q, want %q", got, want)
	}
	if end := s.pts[3]; end.Distance(Pt(1, 1)) > 1e-9 {
		t.Errorf("arc end = %v, want (1,1)", end)
	}
}

func TestFeedArcZeroRadiusIsChord(t *testing.T) {
	p := NewPath().MoveTo(0, 0).ArcTo(0, 5, 0, false, true, 10, 0)
	var s recordSink
	FeedPath(&s, p, Identity())
	if got := s.String(); got != "ML" {
		t.Errorf("ops = %q, want ML", got)
	}
}

func TestFeedPathAreaOptimizeStroke(t *testing.T) {
	p := NewPath().MoveTo(0, 0).LineTo(10, 0).LineTo(100, 100).LineTo(200, 100).Close()
	var s recordSink
	FeedPathArea(&s, p, Identity(), FeedOptions{
		Area:           R(0, 0, 20, 20),
		OptimizeStroke: true,
		StrokeWidth:    1,
	})
	// The segment from (100,100) to (200,100) misses the view and becomes
	// a move; the close is emitted as a line.
	if got, want := s.String(), "MLLML"; got != want {
		t.Errorf("ops = %q, want %q", got, want)
	}
}

func TestFeedPathAreaShift(t *testing.T) {
	p := NewPath().MoveTo(10, 10).LineTo(20, 10)
	var s recordSink
	FeedPathArea(&s, p, Identity(), FeedOptions{Area: R(10, 5, 30, 30)})
	if s.pts[0] != Pt(0, 5) || s.pts[1] != Pt(10, 5) {
		t.Errorf("points = %v, want shifted by area origin", s.pts)
	}
}

type parabola struct{}

func (parabola) At(t float64) Point         { return Pt(t*100, t*t*100) }
func (parabola) Derivative(t float64) Point { return Pt(100, 200*t) }

type wave struct{}

func (wave) At(t float64) Point { return Pt(t*100, 20*math.Sin(t*4*math.Pi)) }
func (wave) Derivative(t float64) Point {
	return Pt(100, 80*math.Pi*math.Cos(t*4*math.Pi))
}

func TestFeedCurveApproximation(t *testing.T) {
	// A parabola is exactly representable, a sine needs subdivision.
	var s recordSink
	FeedCurve(&s, parabola{}, Identity())
	if got := s.String(); got != "C" {
		t.Errorf("parabola ops = %q, want single cubic", got)
	}

	s = recordSink{}
	FeedCurve(&s, wave{}, Identity())
	if len(s.ops) < 4 {
		t.Errorf("wave produced %d cubics, want subdivision", len(s.ops))
	}
	if last := s.pts[len(s.pts)-1]; last.Distance(wave{}.At(1)) > 1e-9 {
		t.Errorf("curve end = %v", last)
	}
}

func TestBoundsExact(t *testing.T) {
	p := NewPath().Circle(50, 50, 10)
	b := Bounds(p, Identity())
	want := R(40, 40, 60, 60)
	if math.Abs(b.Min.X-want.Min.X) > 1e-3 || math.Abs(b.Max.Y-want.Max.Y) > 1e-3 {
		t.Errorf("Bounds = %v, want %v", b, want)
	}

	// Control points lie outside, the curve does not.
	q := NewPath().MoveTo(0, 0).CubicTo(0, 100, 100, 100, 100, 0)
	if got := Bounds(q, Identity()).Max.Y; math.Abs(got-75) > 1e-9 {
		t.Errorf("cubic max Y = %v, want 75", got)
	}
}

func TestWindDistance(t *testing.T) {
	p := NewPath().Rectangle(0, 0, 10, 10)
	tests := []struct {
		name string
		pt   Point
		wind bool
		dist float64
	}{
		{"inside", Pt(5, 5), true, 5},
		{"near edge", Pt(9, 5), true, 1},
		{"outside", Pt(15, 5), false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, d := WindDistance(p, Identity(), tt.pt, 0.1)
			if (w != 0) != tt.wind {
				t.Errorf("wind = %d, inside want %v", w, tt.wind)
			}
			if math.Abs(d-tt.dist) > 1e-9 {
				t.Errorf("dist = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestArcFromEndpointsScalesRadii(t *testing.T) {
	a := ArcFromEndpoints(Pt(0, 0), ArcTo{Radii: Pt(1, 1), Sweep: true, Point: Pt(10, 0)})
	if math.Abs(a.Radii.X-5) > 1e-9 {
		t.Errorf("radius = %v, want 5", a.Radii.X)
	}
	if math.Abs(math.Abs(a.Sweep)-math.Pi) > 1e-9 {
		t.Errorf("sweep = %v, want pi", a.Sweep)
	}
}
