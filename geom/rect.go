package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with float coordinates. A rectangle
// whose Min exceeds its Max on either axis is empty; EmptyRect returns the
// canonical empty rectangle, the identity for Union.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns an empty rectangle.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// R creates a rectangle from two corner coordinates in any order.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
}

// XYWH creates a rectangle from origin and size.
func XYWH(x, y, w, h float64) Rect {
	return R(x, y, x+w, y+h)
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	if r.Empty() {
		return EmptyRect()
	}
	return Rect{
		Min: Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		Max: Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
	}
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y || r.Min.IsNaN() || r.Max.IsNaN()
}

// Width returns the width, zero for empty rectangles.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the height, zero for empty rectangles.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Area returns width*height.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, s.Min.X), Y: math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, s.Max.X), Y: math.Max(r.Max.Y, s.Max.Y)},
	}
}

// Intersect returns the intersection of r and s, possibly empty.
func (r Rect) Intersect(s Rect) Rect {
	if r.IsEmpty() || s.IsEmpty() {
		return EmptyRect()
	}
	out := Rect{
		Min: Point{X: math.Max(r.Min.X, s.Min.X), Y: math.Max(r.Min.Y, s.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, s.Max.X), Y: math.Min(r.Max.Y, s.Max.Y)},
	}
	if out.IsEmpty() {
		return EmptyRect()
	}
	return out
}

// Intersects reports whether r and s share at least one point.
func (r Rect) Intersects(s Rect) bool {
	return !r.Intersect(s).IsEmpty()
}

// ExpandTo grows r to include p.
func (r Rect) ExpandTo(p Point) Rect {
	if r.IsEmpty() {
		return Rect{Min: p, Max: p}
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Expand grows r by d on every side. Negative d shrinks it.
func (r Rect) Expand(d float64) Rect {
	return r.ExpandXY(d, d)
}

// ExpandXY grows r by dx horizontally and dy vertically on both sides.
func (r Rect) ExpandXY(dx, dy float64) Rect {
	if r.IsEmpty() {
		return r
	}
	out := Rect{
		Min: Point{X: r.Min.X - dx, Y: r.Min.Y - dy},
		Max: Point{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
	if out.IsEmpty() {
		return EmptyRect()
	}
	return out
}

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Translate moves r by d.
func (r Rect) Translate(d Point) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Corner returns corner i in the order min, (max.x,min.y), max, (min.x,max.y).
func (r Rect) Corner(i int) Point {
	switch i & 3 {
	case 0:
		return r.Min
	case 1:
		return Point{X: r.Max.X, Y: r.Min.Y}
	case 2:
		return r.Max
	default:
		return Point{X: r.Min.X, Y: r.Max.Y}
	}
}

// Transform returns the bounding box of r mapped through m.
func (r Rect) Transform(m Affine) Rect {
	if r.IsEmpty() {
		return r
	}
	out := EmptyRect()
	for i := 0; i < 4; i++ {
		out = out.ExpandTo(m.Apply(r.Corner(i)))
	}
	return out
}

// RoundOutwards returns the smallest integer rectangle containing r.
// Empty input yields image.Rectangle{}.
func (r Rect) RoundOutwards() image.Rectangle {
	if r.IsEmpty() || math.IsInf(r.Min.X, 0) || math.IsInf(r.Max.X, 0) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// RoundInwards returns the largest integer rectangle inside r.
func (r Rect) RoundInwards() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Ceil(r.Min.X)), int(math.Ceil(r.Min.Y)),
		int(math.Floor(r.Max.X)), int(math.Floor(r.Max.Y)),
	)
}

// IntArea returns the pixel area of an integer rectangle, zero when empty.
func IntArea(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}

// ExpandInt grows an integer rectangle by dx and dy on both sides.
func ExpandInt(r image.Rectangle, dx, dy int) image.Rectangle {
	if r.Empty() {
		return r
	}
	out := image.Rectangle{
		Min: image.Pt(r.Min.X-dx, r.Min.Y-dy),
		Max: image.Pt(r.Max.X+dx, r.Max.Y+dy),
	}
	if out.Empty() {
		return image.Rectangle{}
	}
	return out
}
