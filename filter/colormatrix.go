package filter

import (
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// ColorMatrixType selects how ColorMatrix.Values is interpreted.
type ColorMatrixType uint8

const (
	// ColorMatrixMatrix takes 20 values, a 5x4 row-major matrix.
	ColorMatrixMatrix ColorMatrixType = iota
	// ColorMatrixSaturate takes one value in [0,1].
	ColorMatrixSaturate
	// ColorMatrixHueRotate takes one angle in degrees.
	ColorMatrixHueRotate
	// ColorMatrixLuminanceToAlpha takes no values.
	ColorMatrixLuminanceToAlpha
)

// ColorMatrix applies a linear color transform.
type ColorMatrix struct {
	Base
	Type   ColorMatrixType
	Values []float64
}

// Complexity returns 2.
func (c *ColorMatrix) Complexity(geom.Affine) float64 { return 2 }

// CanHandleAffine returns true; the kernel is per pixel.
func (c *ColorMatrix) CanHandleAffine(geom.Affine) bool { return true }

func (c *ColorMatrix) kernel() surface.FilterFunc {
	switch c.Type {
	case ColorMatrixSaturate:
		v := 1.0
		if len(c.Values) > 0 {
			v = c.Values[0]
		}
		return SaturateKernel(v)
	case ColorMatrixHueRotate:
		var v float64
		if len(c.Values) > 0 {
			v = c.Values[0]
		}
		return HueRotateKernel(v)
	case ColorMatrixLuminanceToAlpha:
		return LuminanceToAlpha
	}
	if len(c.Values) != 20 {
		return func(px uint32) uint32 { return px }
	}
	return MatrixKernel(c.Values)
}

func (c *ColorMatrix) render(s *Slots, ci surface.ColorInterpolation) {
	in := s.Get(c.In)
	in.SetColorInterpolation(ci)
	f := surface.FormatARGB32
	if c.Type == ColorMatrixLuminanceToAlpha {
		f = surface.FormatA8
	}
	out := surface.NewArea(f, in.Area())
	out.SetColorInterpolationTag(in.ColorInterpolation())
	surface.Filter(in, out, c.kernel())
	s.Set(c.Result, out)
}

// IdentityMatrix is the 5x4 identity color matrix.
var IdentityMatrix = []float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// MatrixKernel returns the kernel of a 5x4 color matrix given as 20
// row-major values. Coefficients are fixed point: the first four columns
// are scaled by 255 and the offset column by 255*255.
func MatrixKernel(values []float64) surface.FilterFunc {
	var m [20]int64
	for i := range m {
		scale := 255.0
		if i%5 == 4 {
			scale = 255 * 255
		}
		m[i] = int64(math.Round(values[i] * scale))
	}
	return func(px uint32) uint32 {
		a, r, g, b := blend.Unpack(px)
		if a != 0 {
			r = min(surface.Unpremul(r, a), 255)
			g = min(surface.Unpremul(g, a), 255)
			b = min(surface.Unpremul(b, a), 255)
		}
		var ch [4]uint32
		for row := range ch {
			k := m[row*5 : row*5+5]
			v := k[0]*int64(r) + k[1]*int64(g) + k[2]*int64(b) + k[3]*int64(a) + k[4]
			v = max(0, min(v, 255*255))
			ch[row] = uint32((v + 127) / 255)
		}
		return surface.PremulWord(ch[3], ch[0], ch[1], ch[2])
	}
}

// SaturateKernel returns the saturate kernel for v, clamped to [0,1]. It
// works on premultiplied values; alpha is unchanged.
func SaturateKernel(v float64) surface.FilterFunc {
	v = max(0, min(v, 1))
	m := [9]float64{
		0.213 + 0.787*v, 0.715 - 0.715*v, 0.072 - 0.072*v,
		0.213 - 0.213*v, 0.715 + 0.285*v, 0.072 - 0.072*v,
		0.213 - 0.213*v, 0.715 - 0.715*v, 0.072 + 0.928*v,
	}
	return func(px uint32) uint32 {
		a, r, g, b := blend.Unpack(px)
		fr, fg, fb := float64(r), float64(g), float64(b)
		ro := m[0]*fr + m[1]*fg + m[2]*fb
		gOut := m[3]*fr + m[4]*fg + m[5]*fb
		bo := m[6]*fr + m[7]*fg + m[8]*fb
		return blend.Pack(a,
			min(uint32(ro+0.5), a),
			min(uint32(gOut+0.5), a),
			min(uint32(bo+0.5), a))
	}
}

// HueRotateKernel returns the hue rotation kernel for an angle in
// degrees. Results are clamped to the pixel's alpha.
func HueRotateKernel(degrees float64) surface.FilterFunc {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	f := [9]float64{
		0.213 + cos*0.787 - sin*0.213,
		0.715 - cos*0.715 - sin*0.715,
		0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143,
		0.715 + cos*0.285 + sin*0.140,
		0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787,
		0.715 - cos*0.715 + sin*0.715,
		0.072 + cos*0.928 + sin*0.072,
	}
	var m [9]int32
	for i := range m {
		m[i] = int32(math.Round(f[i] * 255))
	}
	return func(px uint32) uint32 {
		a, r, g, b := blend.Unpack(px)
		ir, ig, ib := int32(r), int32(g), int32(b)
		hi := int32(a) * 255
		var ch [3]uint32
		for row := range ch {
			v := m[row*3]*ir + m[row*3+1]*ig + m[row*3+2]*ib
			v = max(0, min(v, hi))
			ch[row] = uint32((v + 127) / 255)
		}
		return blend.Pack(a, ch[0], ch[1], ch[2])
	}
}

// LuminanceToAlpha maps the unpremultiplied luminance of px to alpha. The
// color channels of the result are zero.
func LuminanceToAlpha(px uint32) uint32 {
	a, r, g, b := surface.UnpremulWord(px)
	if a == 0 {
		return 0
	}
	return ((54*r + 182*g + 18*b + 127) / 255) << 24
}
