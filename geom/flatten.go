package geom

import "math"

// DefaultTolerance is the flattening tolerance in device pixels.
const DefaultTolerance = 0.25

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flattener is a Sink that converts everything it receives into
// polylines within Tolerance.
type Flattener struct {
	Tolerance float64

	lines []Polyline
	cur   int
}

// NewFlattener creates a flattener. A non-positive tolerance selects
// DefaultTolerance.
func NewFlattener(tolerance float64) *Flattener {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Flattener{Tolerance: tolerance, cur: -1}
}

// Polylines returns the subpaths flattened so far.
func (f *Flattener) Polylines() []Polyline {
	return f.lines
}

// Reset discards all subpaths.
func (f *Flattener) Reset() {
	f.lines = f.lines[:0]
	f.cur = -1
}

func (f *Flattener) last() Point {
	pts := f.lines[f.cur].Points
	return pts[len(pts)-1]
}

func (f *Flattener) ensure() {
	if f.cur < 0 {
		f.MoveTo(Point{})
	}
}

// MoveTo starts a new polyline.
func (f *Flattener) MoveTo(p Point) {
	if f.cur >= 0 && len(f.lines[f.cur].Points) == 1 && !f.lines[f.cur].Closed {
		f.lines[f.cur].Points[0] = p
		return
	}
	f.lines = append(f.lines, Polyline{Points: []Point{p}})
	f.cur = len(f.lines) - 1
}

// LineTo appends a vertex.
func (f *Flattener) LineTo(p Point) {
	f.ensure()
	f.lines[f.cur].Points = append(f.lines[f.cur].Points, p)
}

// CubicTo flattens a cubic Bezier from the current point.
func (f *Flattener) CubicTo(c1, c2, p Point) {
	f.ensure()
	f.flattenCubic(f.last(), c1, c2, p, 0)
}

// Arc flattens a unit circle arc mapped through xform, connecting it to
// the current point.
func (f *Flattener) Arc(xform Affine, a0, a1 float64, negative bool) {
	start := xform.Apply(Point{X: math.Cos(a0), Y: math.Sin(a0)})
	if f.cur < 0 {
		f.MoveTo(start)
	} else if f.last() != start {
		f.LineTo(start)
	}
	ArcCubics(xform, a0, a1, negative, f.CubicTo)
}

// ClosePath closes the current polyline. Later segments continue from
// its first point.
func (f *Flattener) ClosePath() {
	if f.cur < 0 {
		return
	}
	f.lines[f.cur].Closed = true
	first := f.lines[f.cur].Points[0]
	f.lines = append(f.lines, Polyline{Points: []Point{first}})
	f.cur = len(f.lines) - 1
}

func (f *Flattener) flattenCubic(p0, p1, p2, p3 Point, depth int) {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if d < f.Tolerance || depth > 24 {
		f.LineTo(p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	f.flattenCubic(p0, q0, r0, s, depth+1)
	f.flattenCubic(s, r1, q2, p3, depth+1)
}

// distanceToLine returns the distance from p to segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// Flatten returns the polylines of p under m.
func Flatten(p *Path, m Affine, tolerance float64) []Polyline {
	f := NewFlattener(tolerance)
	FeedPath(f, p, m)
	return trimPolylines(f.Polylines())
}

// trimPolylines drops the lone points left behind by moves and closes.
func trimPolylines(lines []Polyline) []Polyline {
	out := lines[:0]
	for _, l := range lines {
		if len(l.Points) > 1 {
			out = append(out, l)
		}
	}
	return out
}

// Bounds returns the exact bounding box of p under m. Cubic extrema are
// solved analytically; arcs are bounded through their cubic form.
func Bounds(p *Path, m Affine) Rect {
	b := boundsSink{r: EmptyRect()}
	FeedPath(&b, p, m)
	return b.r
}

type boundsSink struct {
	r   Rect
	cur Point
}

func (b *boundsSink) MoveTo(p Point) { b.cur = p }

func (b *boundsSink) LineTo(p Point) {
	b.r = b.r.ExpandTo(b.cur).ExpandTo(p)
	b.cur = p
}

func (b *boundsSink) CubicTo(c1, c2, p Point) {
	p0 := b.cur
	b.r = b.r.ExpandTo(p0).ExpandTo(p)
	for _, t := range cubicExtrema(p0.X, c1.X, c2.X, p.X) {
		b.r = b.r.ExpandTo(cubicAt(p0, c1, c2, p, t))
	}
	for _, t := range cubicExtrema(p0.Y, c1.Y, c2.Y, p.Y) {
		b.r = b.r.ExpandTo(cubicAt(p0, c1, c2, p, t))
	}
	b.cur = p
}

func (b *boundsSink) Arc(xform Affine, a0, a1 float64, negative bool) {
	start := xform.Apply(Point{X: math.Cos(a0), Y: math.Sin(a0)})
	b.LineTo(start)
	ArcCubics(xform, a0, a1, negative, b.CubicTo)
}

func (b *boundsSink) ClosePath() {}

// cubicExtrema returns parameters in (0,1) where the derivative of a 1D
// cubic Bezier vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	bb := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var ts []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if math.Abs(bb) > 1e-12 {
			add(-c / bb)
		}
		return ts
	}
	disc := bb*bb - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-bb + sq) / (2 * a))
	add((-bb - sq) / (2 * a))
	return ts
}

// WindDistance flattens p under m and returns the winding number of pt
// and the distance from pt to the nearest drawn segment. Open subpaths
// are implicitly closed for winding but not for distance.
func WindDistance(p *Path, m Affine, pt Point, tolerance float64) (wind int, dist float64) {
	dist = math.Inf(1)
	for _, l := range Flatten(p, m, tolerance) {
		pts := l.Points
		for i := 1; i < len(pts); i++ {
			wind += lineWinding(pts[i-1], pts[i], pt)
			dist = math.Min(dist, distanceToLine(pt, pts[i-1], pts[i]))
		}
		first, last := pts[0], pts[len(pts)-1]
		if first != last {
			wind += lineWinding(last, first, pt)
			if l.Closed {
				dist = math.Min(dist, distanceToLine(pt, last, first))
			}
		}
	}
	return wind, dist
}

// lineWinding computes the winding contribution of a line segment for a
// horizontal ray to the right of pt.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}
