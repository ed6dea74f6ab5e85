package surface

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

// Common errors for surface construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than a row of pixels.
	ErrInvalidStride = errors.New("surface: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("surface: data buffer too small")

	// ErrUnsupportedFormat is returned for formats other than ARGB32 and A8.
	ErrUnsupportedFormat = errors.New("surface: unsupported format")
)

// Format is a pixel format.
type Format uint8

const (
	// FormatARGB32 is premultiplied 32-bit ARGB.
	FormatARGB32 Format = iota
	// FormatA8 is 8-bit alpha only.
	FormatA8
)

// BytesPerPixel returns 4 for ARGB32 and 1 for A8.
func (f Format) BytesPerPixel() int {
	if f == FormatA8 {
		return 1
	}
	return 4
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f == FormatARGB32 || f == FormatA8
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatARGB32:
		return "ARGB32"
	case FormatA8:
		return "A8"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ColorInterpolation tags the color space a surface's channels are in.
type ColorInterpolation uint8

const (
	// CIAuto means the space is unknown; conversions leave it alone.
	CIAuto ColorInterpolation = iota
	// CISRGB is the sRGB space.
	CISRGB
	// CILinearRGB is the linearRGB space.
	CILinearRGB
)

// String returns the CSS keyword for ci.
func (ci ColorInterpolation) String() string {
	switch ci {
	case CISRGB:
		return "sRGB"
	case CILinearRGB:
		return "linearRGB"
	}
	return "auto"
}

// Surface is a pixel buffer with a row stride, a device-space origin and
// a color-interpolation tag.
//
// Surfaces are not safe for concurrent mutation; the drivers in this
// package partition rows between goroutines internally.
type Surface struct {
	pix    []byte
	width  int
	height int
	stride int
	format Format
	origin image.Point
	ci     ColorInterpolation
}

// New allocates a zeroed surface with a tight stride.
func New(format Format, width, height int) (*Surface, error) {
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return alloc(format, width, height), nil
}

// NewWithStride allocates a zeroed surface with the given row stride.
func NewWithStride(format Format, width, height, stride int) (*Surface, error) {
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*format.BytesPerPixel() {
		return nil, ErrInvalidStride
	}
	return &Surface{
		pix:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromBytes wraps existing pixel data without copying.
func FromBytes(format Format, width, height, stride int, pix []byte) (*Surface, error) {
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*format.BytesPerPixel() {
		return nil, ErrInvalidStride
	}
	if need := stride*(height-1) + width*format.BytesPerPixel(); len(pix) < need {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrDataTooSmall, need, len(pix))
	}
	return &Surface{pix: pix, width: width, height: height, stride: stride, format: format}, nil
}

// NewArea allocates a surface covering the device rectangle area. An
// empty area yields a surface without pixels.
func NewArea(format Format, area image.Rectangle) *Surface {
	if area.Empty() {
		return &Surface{format: format, origin: area.Min}
	}
	s := alloc(format, area.Dx(), area.Dy())
	s.origin = area.Min
	return s
}

func alloc(format Format, width, height int) *Surface {
	stride := width * format.BytesPerPixel()
	return &Surface{
		pix:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}
}

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// Stride returns the number of bytes per row.
func (s *Surface) Stride() int { return s.stride }

// Format returns the pixel format.
func (s *Surface) Format() Format { return s.format }

// Pix returns the raw pixel bytes.
func (s *Surface) Pix() []byte { return s.pix }

// IsEmpty reports whether the surface has no pixels.
func (s *Surface) IsEmpty() bool { return s.width == 0 || s.height == 0 }

// Origin returns the device coordinates of pixel (0, 0).
func (s *Surface) Origin() image.Point { return s.origin }

// SetOrigin moves the surface in device space without touching pixels.
func (s *Surface) SetOrigin(p image.Point) { s.origin = p }

// Area returns the device rectangle covered by the surface.
func (s *Surface) Area() image.Rectangle {
	return image.Rectangle{Min: s.origin, Max: s.origin.Add(image.Pt(s.width, s.height))}
}

// ColorInterpolation returns the color-interpolation tag.
func (s *Surface) ColorInterpolation() ColorInterpolation { return s.ci }

// SetColorInterpolationTag changes the tag without converting pixels.
func (s *Surface) SetColorInterpolationTag(ci ColorInterpolation) { s.ci = ci }

// Word returns the pixel at buffer coordinates as an ARGB word. Alpha-only
// pixels are returned in the top byte. Coordinates must be in range.
func (s *Surface) Word(x, y int) uint32 {
	if s.format == FormatA8 {
		return uint32(s.pix[y*s.stride+x]) << 24
	}
	return binary.LittleEndian.Uint32(s.pix[y*s.stride+4*x:])
}

// SetWord stores an ARGB word at buffer coordinates. Alpha-only surfaces
// keep the top byte.
func (s *Surface) SetWord(x, y int, px uint32) {
	if s.format == FormatA8 {
		s.pix[y*s.stride+x] = byte(px >> 24)
		return
	}
	binary.LittleEndian.PutUint32(s.pix[y*s.stride+4*x:], px)
}

// WordAt returns the pixel at device coordinates, or transparent black
// outside the surface.
func (s *Surface) WordAt(x, y int) uint32 {
	x -= s.origin.X
	y -= s.origin.Y
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0
	}
	return s.Word(x, y)
}

// Clear sets every pixel to transparent black.
func (s *Surface) Clear() {
	s.Fill(0)
}

// Fill sets every pixel to px.
func (s *Surface) Fill(px uint32) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.SetWord(x, y, px)
		}
	}
}

// Copy returns a deep copy with the same format, origin and tag.
func (s *Surface) Copy() *Surface {
	c := *s
	c.pix = append([]byte(nil), s.pix...)
	return &c
}

// CreateIdentical returns a zeroed surface with the same format, size,
// origin and color-interpolation tag.
func (s *Surface) CreateIdentical() *Surface {
	c := NewArea(s.format, s.Area())
	c.ci = s.ci
	return c
}

// CreateOutput returns a zeroed surface sized like bg to receive the
// result of combining img with bg. It is alpha-only when both inputs are.
func CreateOutput(img, bg *Surface) *Surface {
	f := FormatARGB32
	if img.format == FormatA8 && bg.format == FormatA8 {
		f = FormatA8
	}
	return NewArea(f, bg.Area())
}

// ExtractAlpha returns an alpha-only copy of s.
func (s *Surface) ExtractAlpha() *Surface {
	a := NewArea(FormatA8, s.Area())
	a.ci = s.ci
	Filter(s, a, func(px uint32) uint32 { return px & 0xff000000 })
	return a
}

// Blit copies the pixels of src into dst where their device areas
// overlap. Formats are converted as needed.
func Blit(src, dst *Surface) {
	r := src.Area().Intersect(dst.Area())
	if r.Empty() {
		return
	}
	sx, sy := r.Min.X-src.origin.X, r.Min.Y-src.origin.Y
	dx, dy := r.Min.X-dst.origin.X, r.Min.Y-dst.origin.Y
	if src.format == dst.format {
		bpp := src.format.BytesPerPixel()
		n := r.Dx() * bpp
		for y := 0; y < r.Dy(); y++ {
			so := (sy+y)*src.stride + sx*bpp
			do := (dy+y)*dst.stride + dx*bpp
			copy(dst.pix[do:do+n], src.pix[so:so+n])
		}
		return
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dst.SetWord(dx+x, dy+y, src.Word(sx+x, sy+y))
		}
	}
}

// Sub returns a copy of the part of s inside the device rectangle r.
func (s *Surface) Sub(r image.Rectangle) *Surface {
	out := NewArea(s.format, r.Intersect(s.Area()))
	out.ci = s.ci
	Blit(s, out)
	return out
}

// MemorySize returns the number of bytes held by the pixel buffer.
func (s *Surface) MemorySize() int {
	return len(s.pix)
}
