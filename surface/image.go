package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var _ draw.Image = (*Surface)(nil)

// ColorModel implements image.Image. ARGB32 surfaces hold premultiplied
// RGBA colors, alpha-only surfaces hold color.Alpha.
func (s *Surface) ColorModel() color.Model {
	if s.format == FormatA8 {
		return color.AlphaModel
	}
	return color.RGBAModel
}

// Bounds implements image.Image and returns the device area.
func (s *Surface) Bounds() image.Rectangle {
	return s.Area()
}

// At implements image.Image at device coordinates.
func (s *Surface) At(x, y int) color.Color {
	px := s.WordAt(x, y)
	if s.format == FormatA8 {
		return color.Alpha{A: uint8(px >> 24)}
	}
	return color.RGBA{R: uint8(px >> 16), G: uint8(px >> 8), B: uint8(px), A: uint8(px >> 24)}
}

// Set implements draw.Image at device coordinates.
func (s *Surface) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(s.Area()) {
		return
	}
	r, g, b, a := c.RGBA()
	s.SetWord(x-s.origin.X, y-s.origin.Y, (a>>8)<<24|(r>>8)<<16|(g>>8)<<8|b>>8)
}

// FromImage converts any image to an ARGB32 surface positioned at the
// image bounds. Images already in a premultiplied 8-bit format are
// copied without resampling.
func FromImage(img image.Image) *Surface {
	s := NewArea(FormatARGB32, img.Bounds())
	draw.Draw(s, s.Area(), img, img.Bounds().Min, draw.Src)
	s.ci = CISRGB
	return s
}

// Scaled returns img resampled to w×h pixels. smooth selects Catmull-Rom
// over nearest-neighbour.
func Scaled(img image.Image, w, h int, smooth bool) *Surface {
	s := NewArea(FormatARGB32, image.Rect(0, 0, w, h))
	if s.IsEmpty() {
		return s
	}
	var k draw.Interpolator = draw.NearestNeighbor
	if smooth {
		k = draw.CatmullRom
	}
	k.Scale(s, s.Area(), img, img.Bounds(), draw.Src, nil)
	s.ci = CISRGB
	return s
}

// NRGBA returns an unpremultiplied copy suitable for image encoders.
func (s *Surface) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(s.Area())
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			a, r, g, b := UnpremulWord(s.Word(x, y))
			i := out.PixOffset(s.origin.X+x, s.origin.Y+y)
			out.Pix[i+0] = uint8(r)
			out.Pix[i+1] = uint8(g)
			out.Pix[i+2] = uint8(b)
			out.Pix[i+3] = uint8(a)
		}
	}
	return out
}

// FromAlpha wraps a coverage mask as an alpha-only surface positioned at
// the mask bounds.
func FromAlpha(m *image.Alpha) *Surface {
	s := NewArea(FormatA8, m.Rect)
	w := m.Rect.Dx()
	for y := 0; y < s.height; y++ {
		copy(s.pix[y*s.stride:y*s.stride+w], m.Pix[y*m.Stride:y*m.Stride+w])
	}
	return s
}
