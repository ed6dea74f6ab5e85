// Package blend implements compositing operators on premultiplied ARGB32
// pixel words (A<<24 | R<<16 | G<<8 | B): the Porter-Duff set, ADD, and
// the separable and non-separable blend modes.
//
// All arithmetic is exact 8-bit fixed point with round-to-nearest
// division by 255, so results match a reference rasterizer bit for bit.
package blend

// div255 divides x by 255 rounding to nearest.
//
// Formula: t = x + 128; (t + (t >> 8)) >> 8
//
// Exact for every product of two bytes and for sums of two such products.
func div255(x uint32) uint32 {
	x += 0x80
	return (x + (x >> 8)) >> 8
}

// MulDiv255 returns round(a*b/255) for a, b in [0,255].
func MulDiv255(a, b uint32) uint32 {
	return div255(a * b)
}

// channel extracts the byte of w at the given bit shift.
func channel(w uint32, shift uint) uint32 {
	return (w >> shift) & 0xff
}

// Unpack splits a pixel word into its channels.
func Unpack(w uint32) (a, r, g, b uint32) {
	return w >> 24, (w >> 16) & 0xff, (w >> 8) & 0xff, w & 0xff
}

// Pack assembles a pixel word. Channels must already be in [0,255].
func Pack(a, r, g, b uint32) uint32 {
	return a<<24 | r<<16 | g<<8 | b
}

// mulUn8x4 multiplies every channel of x by a/255.
func mulUn8x4(x, a uint32) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		out |= div255(channel(x, shift)*a) << shift
	}
	return out
}

// mulAddUn8x4 computes x*a/255 + y*b/255 per channel with a single
// rounding and saturation.
func mulAddUn8x4(x, a, y, b uint32) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		out |= clamp255(div255(channel(x, shift)*a+channel(y, shift)*b)) << shift
	}
	return out
}

// addUn8x4 adds two words channel by channel with saturation.
func addUn8x4(x, y uint32) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		out |= clamp255(channel(x, shift)+channel(y, shift)) << shift
	}
	return out
}

// clamp255 clamps x to byte range.
func clamp255(x uint32) uint32 {
	if x > 255 {
		return 255
	}
	return x
}

// clampInt clamps a signed intermediate into [0, hi].
func clampInt(x, hi int32) uint32 {
	if x < 0 {
		return 0
	}
	if x > hi {
		return uint32(hi)
	}
	return uint32(x)
}

// AlphaFromFloat converts an opacity in [0,1] to an 8-bit alpha the way
// a 16-bit color pipeline does: scaled to 16 bits with rounding, then the
// high byte is kept. 0.5 maps to 128.
func AlphaFromFloat(v float64) uint32 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(uint16(v*65535.0+0.5) >> 8)
}
