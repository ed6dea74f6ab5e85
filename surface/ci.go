package surface

import "github.com/gogpu/drawing/internal/color"

// SetColorInterpolation converts the color channels to ci and retags the
// surface. Surfaces tagged CIAuto, alpha-only surfaces and requests for
// CIAuto are retagged without conversion.
func (s *Surface) SetColorInterpolation(ci ColorInterpolation) {
	if ci == CIAuto || s.ci == ci {
		return
	}
	if s.format == FormatARGB32 {
		switch {
		case s.ci == CISRGB && ci == CILinearRGB:
			s.SRGBToLinear()
		case s.ci == CILinearRGB && ci == CISRGB:
			s.LinearToSRGB()
		}
	}
	s.ci = ci
}

// SRGBToLinear converts the color channels in place without retagging.
func (s *Surface) SRGBToLinear() {
	Filter(s, s, func(px uint32) uint32 {
		return mapColor(px, color.SRGBToLinear8)
	})
}

// LinearToSRGB converts the color channels in place without retagging.
func (s *Surface) LinearToSRGB() {
	Filter(s, s, func(px uint32) uint32 {
		return mapColor(px, color.LinearToSRGB8)
	})
}

// mapColor applies f to the unpremultiplied color channels of px.
func mapColor(px uint32, f func(uint8) uint8) uint32 {
	a, r, g, b := UnpremulWord(px)
	if a == 0 {
		return px
	}
	return a<<24 |
		Premul(uint32(f(uint8(r))), a)<<16 |
		Premul(uint32(f(uint8(g))), a)<<8 |
		Premul(uint32(f(uint8(b))), a)
}
