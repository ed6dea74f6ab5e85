package geom

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

// LineTo draws a straight segment.
type LineTo struct {
	Point Point
}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// ArcTo draws an elliptical arc in SVG endpoint parameterization.
// Rotation is the x-axis rotation in radians.
type ArcTo struct {
	Radii    Point
	Rotation float64
	LargeArc bool
	Sweep    bool
	Point    Point
}

// CurveTo draws an arbitrary parametric curve. The curve must start at
// the current point; it ends at Curve.At(1).
type CurveTo struct {
	Curve Curve
}

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (ArcTo) isPathElement()   {}
func (CurveTo) isPathElement() {}
func (Close) isPathElement()   {}

// Curve is a parametric curve on t in [0,1] with its first derivative.
// Segments that are neither lines, Beziers nor arcs are approximated by
// cubic Beziers when fed to a device.
type Curve interface {
	At(t float64) Point
	Derivative(t float64) Point
}

// Path represents a vector path made of subpaths.
type Path struct {
	elements   []PathElement
	start      Point
	current    Point
	hasCurrent bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current, p.hasCurrent = pt, pt, true
	return p
}

func (p *Path) ensureCurrent() {
	if !p.hasCurrent {
		p.MoveTo(0, 0)
	}
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.ensureCurrent()
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return p
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.ensureCurrent()
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	return p
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.ensureCurrent()
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
	return p
}

// ArcTo draws an SVG elliptical arc to (x, y). rotation is in degrees.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *Path {
	p.ensureCurrent()
	pt := Pt(x, y)
	p.elements = append(p.elements, ArcTo{
		Radii:    Pt(rx, ry),
		Rotation: rotation * math.Pi / 180,
		LargeArc: largeArc,
		Sweep:    sweep,
		Point:    pt,
	})
	p.current = pt
	return p
}

// CurveTo appends a parametric curve starting at the current point.
func (p *Path) CurveTo(c Curve) *Path {
	p.ensureCurrent()
	p.elements = append(p.elements, CurveTo{Curve: c})
	p.current = c.At(1)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	if !p.hasCurrent {
		return p
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	return p
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	if p == nil {
		return nil
	}
	return p.elements
}

// IsEmpty reports whether the path draws nothing.
func (p *Path) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, e := range p.elements {
		switch e.(type) {
		case MoveTo, Close:
		default:
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the element list.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	c := *p
	c.elements = append([]PathElement(nil), p.elements...)
	return &c
}

// Append adds all subpaths of other.
func (p *Path) Append(other *Path) *Path {
	for _, e := range other.Elements() {
		p.elements = append(p.elements, e)
	}
	if other != nil && other.hasCurrent {
		p.start, p.current, p.hasCurrent = other.start, other.current, true
	}
	return p
}

// Rectangle adds a closed axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Ellipse adds a closed ellipse built from two elliptical arcs.
func (p *Path) Ellipse(cx, cy, rx, ry float64) *Path {
	p.MoveTo(cx+rx, cy)
	p.ArcTo(rx, ry, 0, false, true, cx-rx, cy)
	p.ArcTo(rx, ry, 0, false, true, cx+rx, cy)
	return p.Close()
}

// Circle adds a closed circle.
func (p *Path) Circle(cx, cy, r float64) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Transform returns a new path mapped through m. Arcs and generic curves
// are converted to cubic Beziers first.
func (p *Path) Transform(m Affine) *Path {
	out := NewPath()
	FeedPath(&pathSink{path: out}, p, m)
	return out
}

// Cubics returns an equivalent path using only move, line, cubic and
// close elements.
func (p *Path) Cubics() *Path {
	return p.Transform(Identity())
}

// pathSink collects a device feed back into a Path.
type pathSink struct {
	path *Path
}

func (s *pathSink) MoveTo(p Point) { s.path.MoveTo(p.X, p.Y) }
func (s *pathSink) LineTo(p Point) { s.path.LineTo(p.X, p.Y) }
func (s *pathSink) CubicTo(c1, c2, p Point) {
	s.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
}
func (s *pathSink) Arc(xform Affine, a0, a1 float64, negative bool) {
	ArcCubics(xform, a0, a1, negative, func(c1, c2, p Point) {
		s.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
	})
}
func (s *pathSink) ClosePath() { s.path.Close() }
