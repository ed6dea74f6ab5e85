package drawing

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/raster"
	"github.com/gogpu/drawing/surface"
)

// Context draws into a surface with a group stack, a current source, an
// operator and a device-space path. It is the target of Item.Render.
//
// The zero value is not usable; create contexts with NewContext.
type Context struct {
	base   *surface.Surface
	target *surface.Surface

	state  contextState
	stack  []contextState
	groups []groupFrame

	flat *geom.Flattener
	path []geom.Polyline
}

// contextState is the part of a Context saved by Push and PushGroup.
type contextState struct {
	ctm       geom.Affine
	source    surface.Source
	op        Operator
	rule      FillRule
	antialias bool
	tolerance float64
}

type groupFrame struct {
	target *surface.Surface
	depth  int
}

// NewContext creates a context drawing into target. The initial source is
// opaque black and the operator is OVER.
func NewContext(target *surface.Surface) *Context {
	c := &Context{
		base:   target,
		target: target,
		stack:  make([]contextState, 0, 8),
		flat:   geom.NewFlattener(0),
	}
	c.state = contextState{
		ctm:       geom.Identity(),
		source:    surface.Solid(0xff000000),
		op:        OperatorOver,
		rule:      FillNonZero,
		antialias: true,
		tolerance: geom.DefaultTolerance,
	}
	return c
}

// Surface returns the surface the context was created for.
func (c *Context) Surface() *surface.Surface {
	return c.base
}

// Target returns the surface currently drawn to: the innermost group, or
// the base surface when no group is pushed.
func (c *Context) Target() *surface.Surface {
	return c.target
}

// Area returns the device area of the current target.
func (c *Context) Area() image.Rectangle {
	return c.target.Area()
}

// Push saves the transform, source, operator, fill rule and antialias
// setting.
func (c *Context) Push() {
	c.stack = append(c.stack, c.state)
}

// Pop restores the state saved by the matching Push.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Transform applies m before the current transform.
func (c *Context) Transform(m geom.Affine) {
	c.state.ctm = c.state.ctm.Multiply(m)
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(m geom.Affine) {
	c.state.ctm = m
}

// CTM returns the current user-to-device transform.
func (c *Context) CTM() geom.Affine {
	return c.state.ctm
}

// SetSource sets the paint source. Surfaces are valid sources and are read
// at device coordinates.
func (c *Context) SetSource(src surface.Source) {
	if src == nil {
		src = surface.Solid(0)
	}
	c.state.source = src
}

// SetSourceRGBA sets a solid source from unpremultiplied channels in [0,1].
func (c *Context) SetSourceRGBA(r, g, b, a float64) {
	c.state.source = surface.SolidRGBA(r, g, b, a)
}

// SetSourceRGBA32 sets a solid source from a 0xRRGGBBAA color.
func (c *Context) SetSourceRGBA32(rgba uint32) {
	c.state.source = surface.SolidRGBA32(rgba)
}

// Source returns the current source.
func (c *Context) Source() surface.Source {
	return c.state.source
}

// SetOperator sets the compositing operator.
func (c *Context) SetOperator(op Operator) {
	c.state.op = op
}

// Operator returns the compositing operator.
func (c *Context) Operator() Operator {
	return c.state.op
}

// SetFillRule sets the fill rule used by Fill.
func (c *Context) SetFillRule(rule FillRule) {
	c.state.rule = rule
}

// SetAntialias toggles antialiased coverage.
func (c *Context) SetAntialias(aa bool) {
	c.state.antialias = aa
}

// Antialias reports whether fills are antialiased.
func (c *Context) Antialias() bool {
	return c.state.antialias
}

// SetTolerance sets the flattening tolerance in device pixels.
func (c *Context) SetTolerance(tolerance float64) {
	if tolerance <= 0 {
		tolerance = geom.DefaultTolerance
	}
	c.state.tolerance = tolerance
}

// PushGroup saves the state and redirects drawing to a new transparent
// ARGB32 surface with the area of the current target.
func (c *Context) PushGroup() {
	c.pushGroup(surface.FormatARGB32)
}

// PushAlphaGroup is PushGroup with an alpha-only surface.
func (c *Context) PushAlphaGroup() {
	c.pushGroup(surface.FormatA8)
}

func (c *Context) pushGroup(format surface.Format) {
	c.groups = append(c.groups, groupFrame{target: c.target, depth: len(c.stack)})
	c.Push()
	g := surface.NewArea(format, c.target.Area())
	g.SetColorInterpolationTag(c.target.ColorInterpolation())
	c.target = g
}

// PopGroup ends the innermost group, restores the state saved by
// PushGroup and returns the group surface. It returns nil when no group is
// pushed.
func (c *Context) PopGroup() *surface.Surface {
	if len(c.groups) == 0 {
		return nil
	}
	g := c.target
	f := c.groups[len(c.groups)-1]
	c.groups = c.groups[:len(c.groups)-1]
	c.stack = c.stack[:f.depth+1]
	c.Pop()
	c.target = f.target
	return g
}

// PopGroupToSource ends the innermost group and makes it the source.
func (c *Context) PopGroupToSource() {
	if g := c.PopGroup(); g != nil {
		c.state.source = g
	}
}

// Paint composites the source over the whole target.
func (c *Context) Paint() {
	c.PaintWithAlpha(1)
}

// PaintWithAlpha composites the source over the whole target with a
// constant coverage.
func (c *Context) PaintWithAlpha(alpha float64) {
	a := uint32(math.Round(clamp01(alpha) * 255))
	surface.Composite(c.target, c.target.Area(), c.state.source, c.state.op, nil, a)
}

// MaskSurface composites the source through the alpha of mask.
func (c *Context) MaskSurface(mask *surface.Surface) {
	surface.Composite(c.target, mask.Area(), c.state.source, c.state.op, mask, 255)
}

// NewPath discards the current path.
func (c *Context) NewPath() {
	c.path = c.path[:0]
}

// Path appends p, transformed by the current transform.
func (c *Context) Path(p *geom.Path) {
	c.flat.Tolerance = c.state.tolerance
	c.flat.Reset()
	geom.FeedPath(c.flat, p, c.state.ctm)
	for _, l := range c.flat.Polylines() {
		if len(l.Points) > 1 {
			c.path = append(c.path, l)
		}
	}
}

// PathArea appends p restricted to the device rectangle area. Segments
// whose swept box misses area, enlarged by strokeWidth, become moves.
func (c *Context) PathArea(p *geom.Path, area image.Rectangle, strokeWidth float64) {
	c.flat.Tolerance = c.state.tolerance
	c.flat.Reset()
	view := geom.FromImageRect(area)
	geom.FeedPathArea(c.flat, p, c.state.ctm, geom.FeedOptions{
		Area:           view,
		OptimizeStroke: true,
		StrokeWidth:    strokeWidth,
	})
	for _, l := range c.flat.Polylines() {
		if len(l.Points) < 2 {
			continue
		}
		pts := make([]geom.Point, len(l.Points))
		for i, pt := range l.Points {
			pts[i] = pt.Add(view.Min)
		}
		c.path = append(c.path, geom.Polyline{Points: pts, Closed: l.Closed})
	}
}

// Rectangle appends the device-space rectangle r as a closed subpath. The
// current transform is not applied.
func (c *Context) Rectangle(r image.Rectangle) {
	if r.Empty() {
		return
	}
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	c.path = append(c.path, geom.Polyline{
		Points: []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}},
		Closed: true,
	})
}

// Polylines returns the current device-space path.
func (c *Context) Polylines() []geom.Polyline {
	return c.path
}

// Fill fills the current path and clears it.
func (c *Context) Fill() {
	c.FillPreserve()
	c.NewPath()
}

// FillPreserve fills the current path and keeps it.
func (c *Context) FillPreserve() {
	c.fill(c.path, c.state.rule)
}

// Stroke strokes the current path and clears it.
func (c *Context) Stroke(style geom.Stroke, dash *geom.Dash) {
	c.StrokePreserve(style, dash)
	c.NewPath()
}

// StrokePreserve strokes the current path with a user-space style and
// keeps the path. Widths and dash lengths are scaled by the expansion of
// the current transform.
func (c *Context) StrokePreserve(style geom.Stroke, dash *geom.Dash) {
	if len(c.path) == 0 || style.Width <= 0 {
		return
	}
	scale := c.state.ctm.Descrim()
	lines := c.path
	if dash != nil && dash.IsDashed() {
		d := &geom.Dash{Array: make([]float64, len(dash.Array)), Offset: dash.Offset * scale}
		for i, l := range dash.Array {
			d.Array[i] = l * scale
		}
		lines = d.Apply(lines)
	}
	style.Width *= scale
	e := geom.NewStrokeExpander(style)
	e.SetTolerance(c.state.tolerance)
	c.fill(e.Expand(lines), FillNonZero)
}

func (c *Context) fill(lines []geom.Polyline, rule FillRule) {
	if len(lines) == 0 {
		return
	}
	if r, ok := pixelRect(lines); ok {
		surface.Composite(c.target, r, c.state.source, c.state.op, nil, 255)
		return
	}
	bounds := polylineBounds(lines).RoundOutwards().Intersect(c.target.Area())
	if bounds.Empty() {
		return
	}
	mask := surface.FromAlpha(raster.Fill(bounds, lines, rule, c.state.antialias))
	surface.Composite(c.target, bounds, c.state.source, c.state.op, mask, 255)
}

// pixelRect reports whether lines is a single axis-aligned rectangle on
// integer coordinates, which needs no coverage mask.
func pixelRect(lines []geom.Polyline) (image.Rectangle, bool) {
	if len(lines) != 1 {
		return image.Rectangle{}, false
	}
	pts := lines[0].Points
	if n := len(pts); n == 5 && pts[4] == pts[0] {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return image.Rectangle{}, false
	}
	for _, p := range pts {
		if p.X != math.Trunc(p.X) || p.Y != math.Trunc(p.Y) {
			return image.Rectangle{}, false
		}
	}
	horizontalFirst := pts[0].Y == pts[1].Y && pts[1].X == pts[2].X && pts[2].Y == pts[3].Y && pts[3].X == pts[0].X
	verticalFirst := pts[0].X == pts[1].X && pts[1].Y == pts[2].Y && pts[2].X == pts[3].X && pts[3].Y == pts[0].Y
	if !horizontalFirst && !verticalFirst {
		return image.Rectangle{}, false
	}
	return image.Rect(int(pts[0].X), int(pts[0].Y), int(pts[2].X), int(pts[2].Y)), true
}

func polylineBounds(lines []geom.Polyline) geom.Rect {
	r := geom.EmptyRect()
	for _, l := range lines {
		for _, p := range l.Points {
			r = r.ExpandTo(p)
		}
	}
	return r
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
