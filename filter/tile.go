package filter

import (
	"github.com/gogpu/drawing/surface"
)

// Tile repeats the subregion of the primitive that produced In across
// its own subregion.
type Tile struct {
	Base
}

func (t *Tile) render(s *Slots, _ surface.ColorInterpolation) {
	in := s.Get(t.In)
	out := surface.NewArea(in.Format(), s.Area())
	out.SetColorInterpolationTag(in.ColorInterpolation())

	r := s.PrimitiveArea(t.In).RoundOutwards().Intersect(in.Area())
	if r.Empty() {
		s.Set(t.Result, out)
		return
	}
	src := in.Sub(r)
	w, h := r.Dx(), r.Dy()
	o := out.Origin()
	surface.SynthesizeAll(out, func(x, y int) uint32 {
		tx := ((o.X+x-r.Min.X)%w + w) % w
		ty := ((o.Y+y-r.Min.Y)%h + h) % h
		return src.Word(tx, ty)
	})
	s.Set(t.Result, out)
}
