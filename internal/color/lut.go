// Package color converts 8-bit color channels between the sRGB and
// linearRGB color-interpolation spaces.
//
// Conversions operate on unpremultiplied channel values. Results are
// truncated, not rounded, so a round trip is not the identity: 255
// comes back from linearRGB as 254.
package color

import colorful "github.com/lucasb-eyer/go-colorful"

// srgbToLinear8 and linearToSRGB8 map unpremultiplied channel bytes.
var (
	srgbToLinear8 [256]uint8
	linearToSRGB8 [256]uint8
)

func init() {
	for i := 0; i < 256; i++ {
		v := float64(i) / 255.0
		l, _, _ := colorful.Color{R: v}.LinearRgb()
		srgbToLinear8[i] = truncate(l)
		s := colorful.LinearRgb(v, 0, 0)
		linearToSRGB8[i] = truncate(s.R)
	}
}

func truncate(v float64) uint8 {
	v *= 255.0
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// SRGBToLinear8 converts an unpremultiplied sRGB channel to linearRGB.
func SRGBToLinear8(c uint8) uint8 {
	return srgbToLinear8[c]
}

// LinearToSRGB8 converts an unpremultiplied linearRGB channel to sRGB.
func LinearToSRGB8(c uint8) uint8 {
	return linearToSRGB8[c]
}
