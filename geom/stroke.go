package geom

import "math"

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for stroke expansion.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns the SVG initial stroke settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// StrokeExpander converts flattened subpaths into closed outlines whose
// nonzero fill covers the stroke.
type StrokeExpander struct {
	style     Stroke
	tolerance float64

	forward  []Point
	backward []Point
	output   []Polyline

	startPt   Point
	startNorm Point
	startTan  Point
	lastPt    Point
	lastTan   Point
	lastNorm  Point

	joinThresh float64
}

// NewStrokeExpander creates a new stroke expander with the given style.
func NewStrokeExpander(style Stroke) *StrokeExpander {
	return &StrokeExpander{
		style:     style,
		tolerance: DefaultTolerance,
	}
}

// SetTolerance sets the arc flattening tolerance.
func (e *StrokeExpander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline polygons of the stroked polylines.
func (e *StrokeExpander) Expand(lines []Polyline) []Polyline {
	e.output = nil
	if e.style.Width <= 0 {
		return nil
	}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width

	for _, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		e.forward = e.forward[:0]
		e.backward = e.backward[:0]
		e.startPt = l.Points[0]
		e.lastPt = l.Points[0]
		for _, p := range l.Points[1:] {
			e.lineTo(p)
		}
		if l.Closed {
			e.lineTo(e.startPt)
			e.finishClosed()
		} else {
			e.finish()
		}
	}
	return e.output
}

func (e *StrokeExpander) lineTo(p Point) {
	if p == e.lastPt {
		return
	}
	tangent := p.Sub(e.lastPt)
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, p)
}

func (e *StrokeExpander) normal(tan Point) Point {
	return tan.Perp().Mul(0.5 * e.style.Width / tan.Length())
}

// doJoin handles joining the current segment to the previous one.
func (e *StrokeExpander) doJoin(tan0 Point) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if len(e.forward) == 0 {
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinMiter:
		limit := e.style.MiterLimit * e.style.MiterLimit
		if 2.0*hypot < (hypot+dot)*limit {
			e.miterPoint(p0, norm, ab, cd, cross)
		}
	case LineJoinRound:
		lastNorm := e.normal(ab)
		angle := math.Atan2(cross, dot)
		if angle > 0.0 {
			e.forward = e.arc(e.forward, p0, lastNorm.Mul(-1), angle)
		} else {
			e.backward = e.arc(e.backward, p0, lastNorm, angle)
		}
	}
	e.forward = append(e.forward, p0.Sub(norm))
	e.backward = append(e.backward, p0.Add(norm))
}

// miterPoint adds the miter tip on the outer side of the join.
func (e *StrokeExpander) miterPoint(p0, norm, ab, cd Point, cross float64) {
	lastNorm := e.normal(ab)
	switch {
	case cross > 0.0:
		fpLast := p0.Sub(lastNorm)
		fpThis := p0.Sub(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.forward = append(e.forward, fpThis.Sub(cd.Mul(h)))
		e.backward = append(e.backward, p0)
	case cross < 0.0:
		fpLast := p0.Add(lastNorm)
		fpThis := p0.Add(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.backward = append(e.backward, fpThis.Sub(cd.Mul(h)))
		e.forward = append(e.forward, p0)
	}
}

// doLine extends both sides with a segment ending at p1.
func (e *StrokeExpander) doLine(tangent, p1 Point) {
	norm := e.normal(tangent)
	e.forward = append(e.forward, p1.Sub(norm))
	e.backward = append(e.backward, p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with caps on both ends.
func (e *StrokeExpander) finish() {
	if len(e.forward) == 0 {
		e.dot()
		return
	}
	poly := append([]Point(nil), e.forward...)
	poly = e.capTo(poly, e.lastPt, e.lastNorm.Mul(-1))
	for i := len(e.backward) - 2; i >= 0; i-- {
		poly = append(poly, e.backward[i])
	}
	poly = e.capTo(poly, e.startPt, e.startNorm)
	e.output = append(e.output, Polyline{Points: poly, Closed: true})
}

// finishClosed completes a closed subpath as two opposite rings.
func (e *StrokeExpander) finishClosed() {
	if len(e.forward) == 0 {
		e.dot()
		return
	}
	e.doJoin(e.startTan)

	fwd := append([]Point(nil), e.forward...)
	e.output = append(e.output, Polyline{Points: fwd, Closed: true})

	back := make([]Point, 0, len(e.backward))
	for i := len(e.backward) - 1; i >= 0; i-- {
		back = append(back, e.backward[i])
	}
	e.output = append(e.output, Polyline{Points: back, Closed: true})
}

// dot draws a zero-length subpath, which only round and square caps make
// visible.
func (e *StrokeExpander) dot() {
	r := e.style.Width / 2
	c := e.startPt
	switch e.style.Cap {
	case LineCapRound:
		pts := e.arc(nil, c, Point{X: r}, 2*math.Pi)
		e.output = append(e.output, Polyline{Points: pts, Closed: true})
	case LineCapSquare:
		e.output = append(e.output, Polyline{Points: []Point{
			{X: c.X - r, Y: c.Y - r}, {X: c.X + r, Y: c.Y - r},
			{X: c.X + r, Y: c.Y + r}, {X: c.X - r, Y: c.Y + r},
		}, Closed: true})
	}
}

// capTo appends a cap at center, going from center+norm to center-norm.
func (e *StrokeExpander) capTo(poly []Point, center, norm Point) []Point {
	switch e.style.Cap {
	case LineCapRound:
		poly = e.arc(poly, center, norm, math.Pi)
	case LineCapSquare:
		perp := norm.Perp()
		poly = append(poly,
			center.Add(norm).Add(perp),
			center.Sub(norm).Add(perp),
		)
	}
	return append(poly, center.Sub(norm))
}

// arc appends points on the circle around center starting at center+norm
// and turning by angle, excluding the start point.
func (e *StrokeExpander) arc(pts []Point, center, norm Point, angle float64) []Point {
	r := norm.Length()
	if r == 0 {
		return pts
	}
	step := math.Pi / 2
	if r > e.tolerance {
		step = 2 * math.Acos(1-e.tolerance/r)
	}
	n := int(math.Ceil(math.Abs(angle) / step))
	if n < 1 {
		n = 1
	}
	a0 := norm.Angle()
	da := angle / float64(n)
	for i := 1; i <= n; i++ {
		s, c := math.Sincos(a0 + da*float64(i))
		pts = append(pts, Point{X: center.X + r*c, Y: center.Y + r*s})
	}
	return pts
}
