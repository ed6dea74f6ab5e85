package color

import colorful "github.com/lucasb-eyer/go-colorful"

// SRGBToLinear converts an sRGB component in [0,1] to linear.
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	l, _, _ := colorful.Color{R: s}.LinearRgb()
	return l
}

// LinearToSRGB converts a linear component in [0,1] to sRGB.
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	return colorful.LinearRgb(l, 0, 0).R
}

// SRGBToLinearRGB converts a color triple from sRGB to linearRGB.
func SRGBToLinearRGB(r, g, b float64) (float64, float64, float64) {
	return colorful.Color{R: r, G: g, B: b}.LinearRgb()
}

// LinearToSRGBRGB converts a color triple from linearRGB to sRGB.
func LinearToSRGBRGB(r, g, b float64) (float64, float64, float64) {
	c := colorful.LinearRgb(r, g, b)
	return c.R, c.G, c.B
}
