package geom

import "math"

// CurveTolerance is the maximum device-space deviation allowed when a
// generic parametric curve is approximated by cubic Beziers.
const CurveTolerance = 0.1

// maxCurveDepth bounds the subdivision of generic curves.
const maxCurveDepth = 16

// Sink receives device-space path construction calls. Arc draws the part
// of the unit circle between angles a0 and a1, mapped through xform; the
// sink is expected to connect it to the current point with a line.
type Sink interface {
	MoveTo(p Point)
	LineTo(p Point)
	CubicTo(c1, c2, p Point)
	Arc(xform Affine, a0, a1 float64, negative bool)
	ClosePath()
}

// FeedOptions restrict a feed to a device-space view.
type FeedOptions struct {
	// Area is the device rectangle being drawn. Coordinates are emitted
	// relative to Area.Min.
	Area Rect
	// OptimizeStroke replaces segments whose swept box misses the view
	// with moves. Closed subpaths are then closed with a line.
	OptimizeStroke bool
	// StrokeWidth enlarges the view so partly visible strokes survive.
	StrokeWidth float64
}

// FeedPath emits every subpath of p transformed by m.
func FeedPath(s Sink, p *Path, m Affine) {
	f := feeder{sink: s, trans: m}
	f.run(p)
}

// FeedPathArea emits p transformed by m, relative to opts.Area. Nothing is
// emitted when the area is empty.
func FeedPathArea(s Sink, p *Path, m Affine, opts FeedOptions) {
	if opts.Area.IsEmpty() {
		return
	}
	shift := opts.Area.Min
	view := opts.Area.Expand(opts.StrokeWidth).Translate(shift.Mul(-1))
	f := feeder{
		sink:     s,
		trans:    Translate(-shift.X, -shift.Y).Multiply(m),
		view:     view,
		optimize: opts.OptimizeStroke,
	}
	f.run(p)
}

// FeedCurve emits a single generic curve as cubic Beziers, assuming the
// sink's current point is m.Apply(c.At(0)).
func FeedCurve(s Sink, c Curve, m Affine) {
	f := feeder{sink: s, trans: m}
	f.curve(c, 0, 1, 0)
}

type feeder struct {
	sink     Sink
	trans    Affine
	view     Rect
	optimize bool

	start   Point
	current Point
	open    bool
}

func (f *feeder) run(p *Path) {
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			f.start, f.current, f.open = e.Point, e.Point, true
			f.sink.MoveTo(f.trans.Apply(e.Point))
		case LineTo:
			f.line(e.Point)
		case QuadTo:
			// degree elevation
			c1 := f.current.Add(e.Control.Sub(f.current).Mul(2.0 / 3.0))
			c2 := e.Point.Add(e.Control.Sub(e.Point).Mul(2.0 / 3.0))
			f.cubic(c1, c2, e.Point)
		case CubicTo:
			f.cubic(e.Control1, e.Control2, e.Point)
		case ArcTo:
			f.arc(e)
		case CurveTo:
			f.curve(e.Curve, 0, 1, 0)
			f.current = e.Curve.At(1)
		case Close:
			if !f.open {
				continue
			}
			if f.optimize {
				f.sink.LineTo(f.trans.Apply(f.start))
			} else {
				f.sink.ClosePath()
			}
			f.current = f.start
		}
	}
}

func (f *feeder) visible(pts ...Point) bool {
	if !f.optimize {
		return true
	}
	swept := EmptyRect()
	for _, p := range pts {
		swept = swept.ExpandTo(p)
	}
	return swept.Intersects(f.view)
}

func (f *feeder) line(p Point) {
	a, b := f.trans.Apply(f.current), f.trans.Apply(p)
	if f.visible(a, b) {
		f.sink.LineTo(b)
	} else {
		f.sink.MoveTo(b)
	}
	f.current = p
}

func (f *feeder) cubic(c1, c2, p Point) {
	a := f.trans.Apply(f.current)
	tc1, tc2, tp := f.trans.Apply(c1), f.trans.Apply(c2), f.trans.Apply(p)
	if f.visible(a, tc1, tc2, tp) {
		f.sink.CubicTo(tc1, tc2, tp)
	} else {
		f.sink.MoveTo(tp)
	}
	f.current = p
}

func (f *feeder) arc(e ArcTo) {
	a := ArcFromEndpoints(f.current, e)
	if a.IsChord() || a.Sweep == 0 {
		f.line(e.Point)
		return
	}
	if math.IsNaN(a.Start) || math.IsNaN(a.Sweep) {
		f.current = e.Point
		return
	}
	xform := f.trans.Multiply(a.UnitCircleTransform())
	f.sink.Arc(xform, a.Start, a.End(), !e.Sweep)
	f.current = e.Point
}

// curve approximates c on [t0,t1] with Hermite cubics, subdividing until
// the sampled error in device space is within CurveTolerance.
func (f *feeder) curve(c Curve, t0, t1 float64, depth int) {
	p0, p1 := c.At(t0), c.At(t1)
	dt := t1 - t0
	d0 := c.Derivative(t0).Mul(dt / 3)
	d1 := c.Derivative(t1).Mul(dt / 3)
	c1 := p0.Add(d0)
	c2 := p1.Sub(d1)

	if depth < maxCurveDepth {
		for _, s := range [...]float64{0.25, 0.5, 0.75} {
			want := f.trans.Apply(c.At(t0 + s*dt))
			got := f.trans.Apply(cubicAt(p0, c1, c2, p1, s))
			if want.Distance(got) > CurveTolerance {
				tm := (t0 + t1) / 2
				f.curve(c, t0, tm, depth+1)
				f.curve(c, tm, t1, depth+1)
				return
			}
		}
	}
	f.current = p0
	f.cubic(c1, c2, p1)
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
