package drawing

import (
	"image"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/parallel"
	"github.com/gogpu/drawing/surface"
)

// Canvas keeps a surface in sync with a Drawing. It collects the render
// requests of the drawing into dirty tiles and repaints only those.
//
// Invalidate is safe for concurrent use. Paint must be called from the
// goroutine that owns the drawing.
type Canvas struct {
	d      *Drawing
	target *surface.Surface
	tiles  *parallel.DirtyTiles

	ctm        geom.Affine
	background uint32

	needsUpdate bool
	reset       State
}

// NewCanvas creates a canvas showing the device area of d. tileSize zero
// selects the default tile size.
func NewCanvas(d *Drawing, area image.Rectangle, tileSize int) *Canvas {
	c := &Canvas{
		d:           d,
		target:      surface.NewArea(surface.FormatARGB32, area),
		tiles:       parallel.NewDirtyTiles(area, tileSize),
		ctm:         geom.Identity(),
		needsUpdate: true,
	}
	d.OnRequestRender(c.tiles.MarkRect)
	d.OnRequestUpdate(func(*Item) { c.needsUpdate = true })
	c.tiles.MarkAll()
	return c
}

// Surface returns the painted surface.
func (c *Canvas) Surface() *surface.Surface { return c.target }

// Area returns the device area shown.
func (c *Canvas) Area() image.Rectangle { return c.target.Area() }

// SetBackground sets the 0xRRGGBBAA color behind the drawing.
func (c *Canvas) SetBackground(rgba uint32) {
	px := uint32(surface.SolidRGBA32(rgba))
	if px == c.background {
		return
	}
	c.background = px
	c.tiles.MarkAll()
}

// SetTransform sets the document-to-device transform. Every item is
// updated again at the next Paint.
func (c *Canvas) SetTransform(m geom.Affine) {
	if c.ctm.IsNear(m, 1e-18) {
		return
	}
	c.ctm = m
	c.needsUpdate = true
	c.reset |= StateAll
	c.tiles.MarkAll()
}

// Invalidate schedules the device rectangle r for repainting.
func (c *Canvas) Invalidate(r image.Rectangle) {
	c.tiles.MarkRect(r)
}

// Dirty returns the number of tiles waiting to be painted.
func (c *Canvas) Dirty() int { return c.tiles.Count() }

// Paint updates the drawing and repaints the dirty tiles. It returns the
// repainted rectangles.
func (c *Canvas) Paint() []image.Rectangle {
	area := c.target.Area()
	if c.needsUpdate {
		c.needsUpdate = false
		reset := c.reset
		c.reset = 0
		c.d.Update(area, UpdateContext{CTM: c.ctm}, StateAll, reset)
	}
	rects := c.tiles.Drain()
	for _, r := range rects {
		tile := surface.NewArea(surface.FormatARGB32, r)
		tile.Fill(c.background)
		c.d.Render(NewContext(tile), r, 0)
		surface.Blit(tile, c.target)
	}
	return rects
}
