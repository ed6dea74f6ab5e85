package geom

import "math"

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center   Point
	Radii    Point
	Rotation float64
	// Start is the angle of the initial point on the unit circle, Sweep the
	// signed angular extent. Positive sweep runs towards increasing angles.
	Start, Sweep float64
}

// IsChord reports whether the arc degenerates into a straight segment.
func (a Arc) IsChord() bool {
	return a.Radii.X == 0 || a.Radii.Y == 0
}

// UnitCircleTransform maps the unit circle onto the arc's ellipse.
func (a Arc) UnitCircleTransform() Affine {
	return Translate(a.Center.X, a.Center.Y).
		Multiply(Rotate(a.Rotation)).
		Multiply(Scale(a.Radii.X, a.Radii.Y))
}

// End returns the final angle.
func (a Arc) End() float64 {
	return a.Start + a.Sweep
}

// ArcFromEndpoints converts an SVG endpoint arc from p0 into center
// parameterization. Radii are scaled up when they cannot span the chord.
// Zero radii or coincident endpoints produce a chord (IsChord or zero sweep).
func ArcFromEndpoints(p0 Point, el ArcTo) Arc {
	p1 := el.Point
	rx, ry := math.Abs(el.Radii.X), math.Abs(el.Radii.Y)
	if rx == 0 || ry == 0 || p0 == p1 {
		return Arc{Center: p0.Lerp(p1, 0.5), Rotation: el.Rotation}
	}

	sinPhi, cosPhi := math.Sincos(el.Rotation)
	dx2, dy2 := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if el.LargeArc == el.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	center := Point{
		X: cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2,
		Y: sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2,
	}

	u := Point{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}
	v := Point{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}
	theta1 := u.Angle()
	dtheta := math.Atan2(u.Cross(v), u.Dot(v))
	if !el.Sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if el.Sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	return Arc{
		Center:   center,
		Radii:    Point{X: rx, Y: ry},
		Rotation: el.Rotation,
		Start:    theta1,
		Sweep:    dtheta,
	}
}

// ArcCubics approximates the unit circle arc from a0 to a1, mapped
// through xform, with cubic Beziers of at most a quarter turn each. The
// arc runs towards increasing angles unless negative is set. emit receives
// the control points and end point of every segment; the start point is
// xform.Apply(cos a0, sin a0).
func ArcCubics(xform Affine, a0, a1 float64, negative bool, emit func(c1, c2, p Point)) {
	if negative {
		for a1 > a0 {
			a1 -= 2 * math.Pi
		}
	} else {
		for a1 < a0 {
			a1 += 2 * math.Pi
		}
	}
	sweep := a1 - a0
	if sweep == 0 || math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := a0
	for i := 0; i < n; i++ {
		b := a + step
		sa, ca := math.Sincos(a)
		sb, cb := math.Sincos(b)
		c1 := Point{X: ca - k*sa, Y: sa + k*ca}
		c2 := Point{X: cb + k*sb, Y: sb - k*cb}
		emit(xform.Apply(c1), xform.Apply(c2), xform.Apply(Point{X: cb, Y: sb}))
		a = b
	}
}
