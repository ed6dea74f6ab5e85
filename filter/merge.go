package filter

import (
	"slices"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// Merge paints its inputs over each other in order.
type Merge struct {
	Base
	// Inputs are painted first to last. An empty name reads the previous
	// result.
	Inputs []string
}

// Complexity returns 1.02.
func (m *Merge) Complexity(geom.Affine) float64 { return 1.02 }

// CanHandleAffine returns true.
func (m *Merge) CanHandleAffine(geom.Affine) bool { return true }

// UsesBackground reports whether any input is a background.
func (m *Merge) UsesBackground() bool {
	return slices.ContainsFunc(m.Inputs, isBackground)
}

func (m *Merge) render(s *Slots, ci surface.ColorInterpolation) {
	ins := make([]*surface.Surface, 0, len(m.Inputs))
	format := surface.FormatA8
	for _, name := range m.Inputs {
		in := s.Get(name)
		if in.Format() == surface.FormatARGB32 {
			format = surface.FormatARGB32
		}
		ins = append(ins, in)
	}
	if len(ins) == 0 {
		format = surface.FormatARGB32
	}
	out := surface.NewArea(format, s.Area())
	out.SetColorInterpolationTag(ci)
	for _, in := range ins {
		in.SetColorInterpolation(ci)
		surface.Composite(out, out.Area(), in, blend.OpOver, nil, 255)
	}
	s.Set(m.Result, out)
}
