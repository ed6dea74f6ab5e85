package drawing

import (
	"image"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Text is an item holding a run of Glyphs painted with one style. Picking
// any glyph picks the text.
type Text struct {
	Item

	style Style
}

// Glyphs is a single glyph outline of a Text.
type Glyphs struct {
	Item

	path  *geom.Path
	place geom.Affine
}

// NewText creates an orphan text item with DefaultStyle.
func (d *Drawing) NewText() *Text {
	t := &Text{style: DefaultStyle()}
	t.init(d, t)
	t.group = true
	return t
}

// NewGlyphs creates an orphan glyph item.
func (d *Drawing) NewGlyphs() *Glyphs {
	g := &Glyphs{place: geom.Identity()}
	g.init(d, g)
	return g
}

// Style returns the paint style of the glyphs.
func (t *Text) Style() Style { return t.style }

// SetStyle replaces the paint style of the glyphs.
func (t *Text) SetStyle(st Style) {
	t.markForRendering()
	t.style = st
	t.markForUpdate(StateAll, true)
}

// AddGlyph appends a glyph outline. place maps the outline into the user
// space of the text.
func (t *Text) AddGlyph(path *geom.Path, place geom.Affine) *Glyphs {
	g := t.d.NewGlyphs()
	g.SetGlyph(path, place)
	t.AppendChild(g)
	return g
}

// SetGlyph sets the outline and its placement in the user space of the
// text.
func (g *Glyphs) SetGlyph(path *geom.Path, place geom.Affine) {
	g.markForRendering()
	g.path = path
	g.place = place
	g.markForUpdate(StateAll, false)
}

// Glyph returns the outline and its placement.
func (g *Glyphs) Glyph() (*geom.Path, geom.Affine) { return g.path, g.place }

func (g *Glyphs) style() *Style {
	if g.parent != nil {
		if t, ok := g.parent.impl.(*Text); ok {
			return &t.style
		}
	}
	st := DefaultStyle()
	return &st
}

func (t *Text) paintSources() (fill, stroke surface.Source) {
	return t.style.Fill.Source(t.style.FillOpacity), t.style.Stroke.Source(t.style.StrokeOpacity)
}

func (t *Text) updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State {
	outline := t.d.opts.outline
	state := StateAll
	t.bbox = image.Rectangle{}
	t.itemBBox = geom.EmptyRect()
	for _, c := range t.children {
		c.Update(area, ctx, flags, reset)
		state &= c.state
		if c.visible {
			if outline {
				t.bbox = t.bbox.Union(c.bbox)
			} else {
				t.bbox = t.bbox.Union(c.drawbox)
			}
		}
		t.itemBBox = t.itemBBox.Union(c.itemBBox)
	}
	return state
}

// renderItem paints all fills, then all strokes, so that strokes of one
// glyph are never covered by the fill of the next.
func (t *Text) renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	if t.d.opts.outline {
		for _, c := range t.children {
			if c.Render(dc, area, flags, stopAt) == RenderStop {
				return RenderStop
			}
		}
		return RenderOK
	}
	for _, layer := range t.style.PaintOrder.layers() {
		for _, c := range t.children {
			if c == stopAt {
				return RenderStop
			}
			g, ok := c.impl.(*Glyphs)
			if !ok || !c.visible || g.path == nil || !area.Overlaps(c.drawbox) {
				continue
			}
			paintPath(dc, g.path, g.ctm, g.place, &t.style, layer, area)
		}
	}
	return RenderOK
}

func (t *Text) clipItem(dc *Context, area image.Rectangle) {
	for _, c := range t.children {
		c.Clip(dc, area)
	}
}

func (t *Text) pickItem(p geom.Point, delta float64, flags PickFlags) *Item {
	for i := len(t.children) - 1; i >= 0; i-- {
		if t.children[i].Pick(p, delta, flags) != nil {
			return &t.Item
		}
	}
	return nil
}

func (t *Text) canClip() bool { return true }

func (g *Glyphs) updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State {
	g.bbox = image.Rectangle{}
	g.itemBBox = geom.EmptyRect()
	if g.path == nil {
		return StateAll
	}
	g.itemBBox = geom.Bounds(g.path, g.place)
	g.bbox = pathBounds(g.path, ctx.CTM, g.place, g.style(), g.d.opts.outline)
	return StateAll
}

func (g *Glyphs) renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	if g.path == nil {
		return RenderOK
	}
	if g.d.opts.outline {
		outlinePath(dc, g.path, g.ctm.Multiply(g.place), g.d.outlineColor, area)
		return RenderOK
	}
	st := g.style()
	for _, layer := range st.PaintOrder.layers() {
		paintPath(dc, g.path, g.ctm, g.place, st, layer, area)
	}
	return RenderOK
}

func (g *Glyphs) clipItem(dc *Context, area image.Rectangle) {
	if g.path == nil {
		return
	}
	clipPath(dc, g.path, g.ctm.Multiply(g.place), g.style().ClipRule)
}

// pickItem tests the glyph box; glyph outlines are too thin to hit
// reliably.
func (g *Glyphs) pickItem(p geom.Point, delta float64, flags PickFlags) *Item {
	if g.path == nil {
		return nil
	}
	box := geom.Bounds(g.path, g.ctm.Multiply(g.place)).Expand(delta)
	if box.Contains(p) {
		return &g.Item
	}
	return nil
}

func (g *Glyphs) canClip() bool { return true }
