package surface

import "encoding/binary"

// Premul multiplies channel c by alpha a with exact rounding:
// ((a*c+128) + ((a*c+128)>>8)) >> 8.
func Premul(c, a uint32) uint32 {
	t := a*c + 128
	return (t + (t >> 8)) >> 8
}

// Unpremul divides channel c by alpha a rounding to nearest:
// (255*c + a/2) / a. The caller must guard a == 0.
func Unpremul(c, a uint32) uint32 {
	return (255*c + a/2) / a
}

// UnpremulWord returns the unpremultiplied channels of an ARGB word.
// Transparent pixels yield zeros.
func UnpremulWord(px uint32) (a, r, g, b uint32) {
	a = px >> 24
	if a == 0 {
		return 0, 0, 0, 0
	}
	r = Unpremul((px>>16)&0xff, a)
	g = Unpremul((px>>8)&0xff, a)
	b = Unpremul(px&0xff, a)
	return a, min(r, 255), min(g, 255), min(b, 255)
}

// PremulWord assembles an ARGB word from unpremultiplied channels.
func PremulWord(a, r, g, b uint32) uint32 {
	if a == 0 {
		return 0
	}
	return a<<24 | Premul(r, a)<<16 | Premul(g, a)<<8 | Premul(b, a)
}

// FromRGBA8Word converts a word read little-endian from unpremultiplied
// R,G,B,A bytes (R | G<<8 | B<<16 | A<<24) to a premultiplied ARGB word.
func FromRGBA8Word(rgba uint32) uint32 {
	a := rgba >> 24
	if a == 0 {
		return 0
	}
	r, g, b := rgba&0xff, (rgba>>8)&0xff, (rgba>>16)&0xff
	return a<<24 | Premul(r, a)<<16 | Premul(g, a)<<8 | Premul(b, a)
}

// ToRGBA8Word converts a premultiplied ARGB word to the unpremultiplied
// R | G<<8 | B<<16 | A<<24 interchange word.
func ToRGBA8Word(argb uint32) uint32 {
	a, r, g, b := UnpremulWord(argb)
	return r | g<<8 | b<<16 | a<<24
}

// FromRGBA8 creates an ARGB32 surface from unpremultiplied RGBA bytes.
func FromRGBA8(pix []byte, width, height, stride int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*4 {
		return nil, ErrInvalidStride
	}
	if len(pix) < stride*(height-1)+width*4 {
		return nil, ErrDataTooSmall
	}
	s := alloc(FormatARGB32, width, height)
	for y := 0; y < height; y++ {
		row := pix[y*stride:]
		for x := 0; x < width; x++ {
			s.SetWord(x, y, FromRGBA8Word(binary.LittleEndian.Uint32(row[4*x:])))
		}
	}
	return s, nil
}

// RGBA8 returns the pixels as tightly packed unpremultiplied RGBA bytes.
func (s *Surface) RGBA8() []byte {
	out := make([]byte, 4*s.width*s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			binary.LittleEndian.PutUint32(out[4*(y*s.width+x):], ToRGBA8Word(s.Word(x, y)))
		}
	}
	return out
}

// ConvertFromRGBA8 reinterprets the buffer of an ARGB32 surface holding
// unpremultiplied RGBA bytes and converts it in place.
func (s *Surface) ConvertFromRGBA8() {
	if s.format != FormatARGB32 {
		return
	}
	Filter(s, s, FromRGBA8Word)
}

// ConvertToRGBA8 converts an ARGB32 surface in place into unpremultiplied
// RGBA bytes.
func (s *Surface) ConvertToRGBA8() {
	if s.format != FormatARGB32 {
		return
	}
	Filter(s, s, ToRGBA8Word)
}
