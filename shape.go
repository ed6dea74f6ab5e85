package drawing

import (
	"image"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Shape is an item that paints a path. Its children are markers, painted
// after the stroke in the default paint order.
type Shape struct {
	Item

	path  *geom.Path
	style Style
}

// NewShape creates an orphan shape without a path and with DefaultStyle.
func (d *Drawing) NewShape() *Shape {
	s := &Shape{style: DefaultStyle()}
	s.init(d, s)
	return s
}

// Path returns the path in user space.
func (s *Shape) Path() *geom.Path { return s.path }

// SetPath replaces the path. The shape keeps a reference to p.
func (s *Shape) SetPath(p *geom.Path) {
	s.markForRendering()
	s.path = p
	s.markForUpdate(StateAll, false)
}

// Style returns the paint style.
func (s *Shape) Style() Style { return s.style }

// SetStyle replaces the paint style.
func (s *Shape) SetStyle(st Style) {
	s.markForRendering()
	s.style = st
	s.markForUpdate(StateAll, false)
}

// AddMarker appends a marker item. Markers are positioned by their own
// transform in the user space of the shape.
func (s *Shape) AddMarker(n Node) {
	s.AppendChild(n)
}

func (s *Shape) paintSources() (fill, stroke surface.Source) {
	return s.style.Fill.Source(s.style.FillOpacity), s.style.Stroke.Source(s.style.StrokeOpacity)
}

func (s *Shape) updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State {
	outline := s.d.opts.outline
	state := StateAll
	s.bbox = image.Rectangle{}
	s.itemBBox = geom.EmptyRect()
	if s.path != nil {
		s.itemBBox = geom.Bounds(s.path, geom.Identity())
		s.bbox = pathBounds(s.path, ctx.CTM, geom.Identity(), &s.style, outline)
	}
	for _, c := range s.children {
		c.Update(area, ctx, flags, reset)
		state &= c.state
		if c.visible {
			if outline {
				s.bbox = s.bbox.Union(c.bbox)
			} else {
				s.bbox = s.bbox.Union(c.drawbox)
			}
		}
	}
	return state
}

func (s *Shape) renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	if s.d.opts.outline {
		if s.path != nil {
			outlinePath(dc, s.path, s.ctm, s.d.outlineColor, area)
		}
		return s.renderMarkers(dc, area, flags, stopAt)
	}
	for _, layer := range s.style.PaintOrder.layers() {
		if layer == layerMarkers {
			if s.renderMarkers(dc, area, flags, stopAt) == RenderStop {
				return RenderStop
			}
			continue
		}
		if s.path != nil {
			paintPath(dc, s.path, s.ctm, geom.Identity(), &s.style, layer, area)
		}
	}
	return RenderOK
}

func (s *Shape) renderMarkers(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	for _, c := range s.children {
		if c.Render(dc, area, flags, stopAt) == RenderStop {
			return RenderStop
		}
	}
	return RenderOK
}

func (s *Shape) clipItem(dc *Context, area image.Rectangle) {
	if s.path == nil {
		return
	}
	clipPath(dc, s.path, s.ctm, s.style.ClipRule)
}

func (s *Shape) pickItem(p geom.Point, delta float64, flags PickFlags) *Item {
	if s.path != nil {
		outline := s.d.opts.outline
		asClip := flags&PickAsClip != 0
		var width float64
		switch {
		case asClip:
		case outline:
			width = 0.5
		case s.style.hasStroke():
			width = s.style.StrokeWidth * s.ctm.Descrim() / 2
		}
		fill := asClip || (!outline && s.style.hasFill())
		rule := s.style.FillRule
		if asClip {
			rule = s.style.ClipRule
		}
		if hitPath(s.path, s.ctm, p, delta, width, fill, rule) {
			return &s.Item
		}
	}
	for i := len(s.children) - 1; i >= 0; i-- {
		if s.children[i].Pick(p, delta, flags) != nil {
			return &s.Item
		}
	}
	return nil
}

func (s *Shape) canClip() bool { return true }
