package drawing

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Image is an item that places raster pixels in a user-space rectangle.
type Image struct {
	Item

	pixels   *surface.Surface
	rect     geom.Rect
	clipRect geom.Rect
	hasClip  bool
	smooth   bool

	// scaled holds the pixels resampled for the last axis-aligned CTM.
	scaled     *surface.Surface
	scaledSize image.Point
}

// NewImage creates an orphan image item without pixels.
func (d *Drawing) NewImage() *Image {
	im := &Image{smooth: true}
	im.init(d, im)
	return im
}

// SetPixels replaces the pixels. A nil image removes them.
func (im *Image) SetPixels(img image.Image) {
	im.markForRendering()
	im.pixels = nil
	if img != nil {
		im.pixels = surface.FromImage(img)
	}
	im.scaled = nil
	im.markForUpdate(StateAll, false)
}

// Pixels returns the pixels, or nil.
func (im *Image) Pixels() *surface.Surface { return im.pixels }

// SetRect places the pixels in the user-space rectangle r.
func (im *Image) SetRect(r geom.Rect) {
	im.markForRendering()
	im.rect = r
	im.scaled = nil
	im.markForUpdate(StateAll, false)
}

// Rect returns the placement rectangle.
func (im *Image) Rect() geom.Rect { return im.rect }

// SetClipRect restricts the visible part of the image to a user-space
// rectangle. Without one the placement rectangle is used.
func (im *Image) SetClipRect(r geom.Rect) {
	im.markForRendering()
	im.clipRect = r
	im.hasClip = true
	im.markForUpdate(StateAll, false)
}

// SetSmooth selects smooth resampling over nearest neighbour.
func (im *Image) SetSmooth(smooth bool) {
	if im.smooth == smooth {
		return
	}
	im.smooth = smooth
	im.scaled = nil
	im.markForRendering()
}

func (im *Image) visibleRect() geom.Rect {
	if im.hasClip {
		return im.clipRect.Intersect(im.rect)
	}
	return im.rect
}

// pixelTransform maps pixel coordinates of the source to user space.
func (im *Image) pixelTransform() geom.Affine {
	b := im.pixels.Area()
	sx := im.rect.Width() / float64(b.Dx())
	sy := im.rect.Height() / float64(b.Dy())
	return geom.Translate(im.rect.Min.X, im.rect.Min.Y).
		Multiply(geom.Scale(sx, sy)).
		Multiply(geom.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
}

// frame is the outline mode rendering: the placement rectangle and its
// diagonals.
func (im *Image) frame() *geom.Path {
	r := im.rect
	return geom.NewPath().
		Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height()).
		MoveTo(r.Min.X, r.Min.Y).LineTo(r.Max.X, r.Max.Y).
		MoveTo(r.Max.X, r.Min.Y).LineTo(r.Min.X, r.Max.Y)
}

func (im *Image) updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State {
	im.bbox = image.Rectangle{}
	im.itemBBox = geom.EmptyRect()
	if im.pixels == nil || im.pixels.IsEmpty() {
		return StateAll
	}
	vr := im.visibleRect()
	im.itemBBox = vr
	im.bbox = vr.Transform(ctx.CTM).RoundOutwards()
	return StateAll
}

func (im *Image) renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	if im.pixels == nil || im.pixels.IsEmpty() {
		return RenderOK
	}
	if im.d.opts.outline {
		outlinePath(dc, im.frame(), im.ctm, im.d.outlineColor, area)
		return RenderOK
	}

	src := im.deviceSource(area)
	if src == nil {
		return RenderOK
	}
	vr := im.visibleRect()
	dc.Push()
	dc.SetTransform(im.ctm)
	dc.NewPath()
	dc.Path(geom.NewPath().Rectangle(vr.Min.X, vr.Min.Y, vr.Width(), vr.Height()))
	dc.SetSource(src)
	dc.Fill()
	dc.Pop()
	return RenderOK
}

// deviceSource returns the pixels resampled into device space, covering
// at least area.
func (im *Image) deviceSource(area image.Rectangle) *surface.Surface {
	m := im.ctm.Multiply(im.pixelTransform())
	if m.IsSingular(1e-12) {
		return nil
	}
	if !m.HasRotationOrSkew() && m.A > 0 && m.E > 0 {
		dr := im.rect.Transform(im.ctm)
		size := image.Pt(int(math.Round(dr.Width())), int(math.Round(dr.Height())))
		if size.X <= 0 || size.Y <= 0 {
			return nil
		}
		if im.scaled == nil || im.scaledSize != size {
			im.scaled = surface.Scaled(im.pixels, size.X, size.Y, im.smooth)
			im.scaledSize = size
		}
		im.scaled.SetOrigin(image.Pt(int(math.Round(dr.Min.X)), int(math.Round(dr.Min.Y))))
		return im.scaled
	}

	out := surface.NewArea(surface.FormatARGB32, area.Intersect(im.bbox))
	if out.IsEmpty() {
		return nil
	}
	var k draw.Transformer = draw.NearestNeighbor
	if im.smooth {
		k = draw.ApproxBiLinear
	}
	k.Transform(out, m.Aff3(), im.pixels, im.pixels.Area(), draw.Src, nil)
	return out
}

func (im *Image) clipItem(dc *Context, area image.Rectangle) {
	if im.pixels == nil {
		return
	}
	vr := im.visibleRect()
	clipPath(dc, geom.NewPath().Rectangle(vr.Min.X, vr.Min.Y, vr.Width(), vr.Height()), im.ctm, FillNonZero)
}

func (im *Image) pickItem(p geom.Point, delta float64, flags PickFlags) *Item {
	if im.pixels == nil || im.pixels.IsEmpty() {
		return nil
	}
	if im.d.opts.outline {
		if hitPath(im.frame(), im.ctm, p, delta, 0.5, false, FillNonZero) {
			return &im.Item
		}
		return nil
	}
	inv := im.ctm.Invert()
	up := inv.Apply(p)
	if !im.visibleRect().Contains(up) {
		return nil
	}
	pp := im.pixelTransform().Invert().Apply(up)
	x, y := int(math.Floor(pp.X)), int(math.Floor(pp.Y))
	if im.pixels.WordAt(x, y)>>24 == 0 {
		return nil
	}
	return &im.Item
}

func (im *Image) canClip() bool { return true }
