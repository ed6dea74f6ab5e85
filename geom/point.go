package geom

import "math"

// Point is a position or a displacement in the plane.
type Point struct {
	X, Y float64
}

// Pt returns Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point   { return Point{p.X * k, p.Y * k} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Perp is p turned a quarter counterclockwise (in y-up terms).
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

func (p Point) Length() float64        { return math.Hypot(p.X, p.Y) }
func (p Point) LengthSquared() float64 { return p.Dot(p) }
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Angle is the direction of p in radians, in (-Pi, Pi].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Lerp returns p at t=0 and q at t=1.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

func (p Point) IsNaN() bool { return p.X != p.X || p.Y != p.Y }
