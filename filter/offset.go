package filter

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Offset shifts its input by a vector in primitive units, rounded to
// whole pixels.
type Offset struct {
	Base
	Dx, Dy float64
}

// CanHandleAffine returns true.
func (o *Offset) CanHandleAffine(geom.Affine) bool { return true }

// AreaEnlarge extends area against the shift direction.
func (o *Offset) AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle {
	d := ctm.ApplyVector(geom.Pt(o.Dx, o.Dy))
	if d.X > 0 {
		area.Min.X -= int(math.Ceil(d.X))
	} else {
		area.Max.X -= int(math.Floor(d.X))
	}
	if d.Y > 0 {
		area.Min.Y -= int(math.Ceil(d.Y))
	} else {
		area.Max.Y -= int(math.Floor(d.Y))
	}
	return area
}

func (o *Offset) render(s *Slots, _ surface.ColorInterpolation) {
	in := s.Get(o.In)
	out := in.CreateIdentical()
	d := s.Units().PrimitiveUnitsToPB().ApplyVector(geom.Pt(o.Dx, o.Dy))
	shifted := *in
	shifted.SetOrigin(in.Origin().Add(image.Pt(int(math.Round(d.X)), int(math.Round(d.Y)))))
	surface.Blit(&shifted, out)
	s.Set(o.Result, out)
}
