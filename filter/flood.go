package filter

import (
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/color"
	"github.com/gogpu/drawing/surface"
)

// Flood fills the primitive subregion with a color.
type Flood struct {
	Base
	// Color is an unpremultiplied 0xRRGGBB color.
	Color   uint32
	Opacity float64
}

// CanHandleAffine returns true.
func (f *Flood) CanHandleAffine(geom.Affine) bool { return true }

// UsesBackground returns false; the input is ignored.
func (f *Flood) UsesBackground() bool { return false }

func (f *Flood) render(s *Slots, ci surface.ColorInterpolation) {
	ch := [3]uint8{uint8(f.Color >> 16), uint8(f.Color >> 8), uint8(f.Color)}
	if ci == surface.CILinearRGB {
		for i, v := range ch {
			ch[i] = color.SRGBToLinear8(v)
		}
	}
	out := surface.NewArea(surface.FormatARGB32, s.Area())
	out.SetColorInterpolationTag(ci)
	c := surface.SolidRGBA(float64(ch[0])/255, float64(ch[1])/255, float64(ch[2])/255, max(0, min(f.Opacity, 1)))
	out.Fill(uint32(c))
	s.Set(f.Result, out)
}
