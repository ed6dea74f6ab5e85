package geom

import "image"

// Region is a set of pixels stored as disjoint integer rectangles.
// The zero value is an empty region.
type Region struct {
	rects []image.Rectangle
}

// NewRegion returns a region covering r.
func NewRegion(r image.Rectangle) *Region {
	g := &Region{}
	g.Add(r)
	return g
}

// IsEmpty reports whether the region covers no pixels.
func (g *Region) IsEmpty() bool {
	return len(g.rects) == 0
}

// Rects returns the disjoint rectangles making up the region.
func (g *Region) Rects() []image.Rectangle {
	return g.rects
}

// Clone returns an independent copy.
func (g *Region) Clone() *Region {
	return &Region{rects: append([]image.Rectangle(nil), g.rects...)}
}

// Clear empties the region.
func (g *Region) Clear() {
	g.rects = g.rects[:0]
}

// Area returns the number of pixels covered.
func (g *Region) Area() int {
	n := 0
	for _, r := range g.rects {
		n += IntArea(r)
	}
	return n
}

// Bounds returns the extents of the region.
func (g *Region) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, r := range g.rects {
		b = b.Union(r)
	}
	return b
}

// Add unions r into the region.
func (g *Region) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}
	pieces := []image.Rectangle{r}
	for _, have := range g.rects {
		var next []image.Rectangle
		for _, p := range pieces {
			next = append(next, subtractRect(p, have)...)
		}
		pieces = next
		if len(pieces) == 0 {
			return
		}
	}
	g.rects = append(g.rects, pieces...)
}

// Union adds every rectangle of other.
func (g *Region) Union(other *Region) {
	for _, r := range other.rects {
		g.Add(r)
	}
}

// Subtract removes r from the region.
func (g *Region) Subtract(r image.Rectangle) {
	if r.Empty() || len(g.rects) == 0 {
		return
	}
	out := g.rects[:0:0]
	for _, have := range g.rects {
		out = append(out, subtractRect(have, r)...)
	}
	g.rects = out
}

// SubtractRegion removes every rectangle of other.
func (g *Region) SubtractRegion(other *Region) {
	for _, r := range other.rects {
		g.Subtract(r)
	}
}

// IntersectRect clips the region to r.
func (g *Region) IntersectRect(r image.Rectangle) {
	out := g.rects[:0]
	for _, have := range g.rects {
		if x := have.Intersect(r); !x.Empty() {
			out = append(out, x)
		}
	}
	g.rects = out
}

// Translate moves the region by d.
func (g *Region) Translate(d image.Point) {
	for i := range g.rects {
		g.rects[i] = g.rects[i].Add(d)
	}
}

// ContainsRect reports whether r lies entirely in the region.
func (g *Region) ContainsRect(r image.Rectangle) bool {
	rest := NewRegion(r)
	rest.SubtractRegion(g)
	return rest.IsEmpty()
}

// subtractRect returns a minus b as up to four disjoint rectangles.
func subtractRect(a, b image.Rectangle) []image.Rectangle {
	x := a.Intersect(b)
	if x.Empty() {
		return []image.Rectangle{a}
	}
	out := make([]image.Rectangle, 0, 4)
	if a.Min.Y < x.Min.Y {
		out = append(out, image.Rect(a.Min.X, a.Min.Y, a.Max.X, x.Min.Y))
	}
	if x.Max.Y < a.Max.Y {
		out = append(out, image.Rect(a.Min.X, x.Max.Y, a.Max.X, a.Max.Y))
	}
	if a.Min.X < x.Min.X {
		out = append(out, image.Rect(a.Min.X, x.Min.Y, x.Min.X, x.Max.Y))
	}
	if x.Max.X < a.Max.X {
		out = append(out, image.Rect(x.Max.X, x.Min.Y, a.Max.X, x.Max.Y))
	}
	return out
}
