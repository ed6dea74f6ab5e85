package surface

import (
	"image"

	"github.com/gogpu/drawing/internal/blend"
)

// Source yields premultiplied ARGB words at device coordinates.
type Source interface {
	WordAt(x, y int) uint32
}

// Solid is a uniform premultiplied color source.
type Solid uint32

// WordAt implements Source.
func (c Solid) WordAt(int, int) uint32 { return uint32(c) }

// SolidRGBA returns the solid source of an unpremultiplied color with
// channels in [0,1]. Premultiplication happens before quantization.
func SolidRGBA(r, g, b, a float64) Solid {
	return Solid(blend.Pack(
		blend.AlphaFromFloat(a),
		blend.AlphaFromFloat(r*a),
		blend.AlphaFromFloat(g*a),
		blend.AlphaFromFloat(b*a),
	))
}

// SolidRGBA32 returns the solid source of a 0xRRGGBBAA color.
func SolidRGBA32(rgba uint32) Solid {
	return SolidRGBA(
		float64(rgba>>24)/255,
		float64((rgba>>16)&0xff)/255,
		float64((rgba>>8)&0xff)/255,
		float64(rgba&0xff)/255,
	)
}

// Composite applies op to every pixel of dst inside the device rectangle
// area, reading src at the same device position. The coverage of each
// pixel is alpha scaled by the alpha of mask (device aligned, nil for full
// coverage); pixels outside the mask have zero coverage.
func Composite(dst *Surface, area image.Rectangle, src Source, op blend.Operator, mask *Surface, alpha uint32) {
	area = area.Intersect(dst.Area())
	if area.Empty() || alpha == 0 && op.IsBounded() {
		return
	}
	f := op.Func()
	ox, oy := dst.origin.X, dst.origin.Y
	rows(area.Dx(), area.Dy(), func(y0, y1 int) {
		for y := area.Min.Y + y0; y < area.Min.Y+y1; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				c := alpha
				if mask != nil {
					c = blend.MulDiv255(c, mask.WordAt(x, y)>>24)
				}
				d := dst.Word(x-ox, y-oy)
				var r uint32
				if c == 255 {
					r = f(src.WordAt(x, y), d)
				} else {
					r = op.Composite(src.WordAt(x, y), d, c)
				}
				dst.SetWord(x-ox, y-oy, r)
			}
		}
	})
}
