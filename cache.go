package drawing

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Cache holds the rendering of one item in device space together with the
// region of it that is up to date.
type Cache struct {
	surf  *surface.Surface
	clean geom.Region

	pendingArea      image.Rectangle
	pendingTransform geom.Affine
}

// newCache allocates a cache for the device rectangle area. Nothing is
// clean initially.
func newCache(area image.Rectangle) *Cache {
	return &Cache{
		surf:             surface.NewArea(surface.FormatARGB32, area),
		pendingArea:      area,
		pendingTransform: geom.Identity(),
	}
}

// Area returns the device rectangle covered by the cache.
func (c *Cache) Area() image.Rectangle {
	return c.surf.Area()
}

// Surface returns the cached pixels.
func (c *Cache) Surface() *surface.Surface {
	return c.surf
}

// Clean returns the up to date part of the cache.
func (c *Cache) Clean() *geom.Region {
	return &c.clean
}

// MemorySize returns the number of pixel bytes held.
func (c *Cache) MemorySize() int {
	return c.surf.MemorySize()
}

// MarkDirty discards the cached pixels in area.
func (c *Cache) MarkDirty(area image.Rectangle) {
	c.clean.Subtract(area)
}

// MarkClean records that area now holds valid pixels.
func (c *Cache) MarkClean(area image.Rectangle) {
	c.clean.Add(area.Intersect(c.Area()))
}

// ScheduleTransform records that the cache must move to newArea and that
// the item moved by trans since the last update. The pixels are touched
// only by Prepare.
func (c *Cache) ScheduleTransform(newArea image.Rectangle, trans geom.Affine) {
	c.pendingArea = newArea
	c.pendingTransform = c.pendingTransform.Multiply(trans)
}

// Prepare applies the scheduled transform. Integer translations keep the
// clean pixels; any other change of transform invalidates the whole cache.
func (c *Cache) Prepare() {
	old := c.Area()
	identity := c.pendingTransform.IsIdentity()
	if identity && c.pendingArea == old {
		return
	}

	integer := identity
	var shift image.Point
	if !identity && c.pendingTransform.IsIntegerTranslation(1e-6) {
		t := c.pendingTransform.Translation()
		shift = image.Pt(int(math.Round(t.X)), int(math.Round(t.Y)))
		integer = true
		c.clean.Translate(shift)
		if old.Add(shift) == c.pendingArea {
			c.clean.IntersectRect(c.pendingArea)
			c.surf.SetOrigin(c.surf.Origin().Add(shift))
			c.pendingTransform = geom.Identity()
			return
		}
	}

	prev := c.surf
	c.surf = surface.NewArea(surface.FormatARGB32, c.pendingArea)
	if integer {
		prev.SetOrigin(prev.Origin().Add(shift))
		surface.Blit(prev, c.surf)
		c.clean.IntersectRect(c.pendingArea)
	} else {
		c.clean.Clear()
	}
	c.pendingTransform = geom.Identity()
}

// PaintFromCache paints the clean part of area onto dc with its current
// operator and shrinks area to the bounds of what still has to be
// rendered; area becomes empty when everything came from the cache.
// Filtered items are either painted completely or not at all, because
// their pixels depend on a neighbourhood.
func (c *Cache) PaintFromCache(dc *Context, area *image.Rectangle, filtered bool) {
	dirty := geom.NewRegion(*area)
	for _, r := range c.clean.Rects() {
		dirty.Subtract(r)
	}
	if filtered && !dirty.IsEmpty() {
		return
	}
	valid := c.clean.Clone()
	valid.IntersectRect(*area)
	if dirty.IsEmpty() {
		*area = image.Rectangle{}
	} else {
		*area = dirty.Bounds()
		valid.Subtract(*area)
	}
	if valid.IsEmpty() {
		return
	}
	dc.Push()
	dc.SetSource(c.surf)
	for _, r := range valid.Rects() {
		dc.Rectangle(r)
		dc.Fill()
	}
	dc.Pop()
}
