package filter

import (
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// BlendMode is a CSS blend mode.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal     = blend.ModeNormal
	BlendMultiply   = blend.ModeMultiply
	BlendScreen     = blend.ModeScreen
	BlendDarken     = blend.ModeDarken
	BlendLighten    = blend.ModeLighten
	BlendOverlay    = blend.ModeOverlay
	BlendColorDodge = blend.ModeColorDodge
	BlendColorBurn  = blend.ModeColorBurn
	BlendHardLight  = blend.ModeHardLight
	BlendSoftLight  = blend.ModeSoftLight
	BlendDifference = blend.ModeDifference
	BlendExclusion  = blend.ModeExclusion
	BlendHue        = blend.ModeHue
	BlendSaturation = blend.ModeSaturation
	BlendColor      = blend.ModeColor
	BlendLuminosity = blend.ModeLuminosity
)

// ParseBlendMode parses a CSS blend-mode keyword.
func ParseBlendMode(s string) (BlendMode, bool) {
	return blend.ParseMode(s)
}

// Blend composites In over In2 with a blend mode.
type Blend struct {
	Base
	In2  string
	Mode BlendMode
}

// Complexity returns 1.1.
func (b *Blend) Complexity(geom.Affine) float64 { return 1.1 }

// CanHandleAffine returns true.
func (b *Blend) CanHandleAffine(geom.Affine) bool { return true }

// UsesBackground reports whether either input is a background.
func (b *Blend) UsesBackground() bool {
	return isBackground(b.In) || isBackground(b.In2)
}

func (b *Blend) render(s *Slots, ci surface.ColorInterpolation) {
	in1 := s.Get(b.In)
	in2 := s.Get(b.In2)
	in1.SetColorInterpolation(ci)
	in2.SetColorInterpolation(ci)

	out := surface.CreateOutput(in1, in2)
	out.SetColorInterpolationTag(ci)
	surface.Blit(in2, out)
	surface.Composite(out, out.Area(), in1, b.Mode.Operator(), nil, 255)
	s.Set(b.Result, out)
}
