package filter

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Test helper functions shared across filter tests.

// filled returns a w x h ARGB32 surface at the origin filled with px.
func filled(w, h int, px uint32) *surface.Surface {
	s := surface.NewArea(surface.FormatARGB32, image.Rect(0, 0, w, h))
	s.Fill(px)
	s.SetColorInterpolationTag(surface.CISRGB)
	return s
}

// testSlots returns a slot table for graphic under the identity
// transform, with pixblock space equal to device space.
func testSlots(t *testing.T, graphic *surface.Surface) *Slots {
	t.Helper()
	bbox := geom.FromImageRect(graphic.Area())
	u := NewUnits(UserSpaceOnUse, UserSpaceOnUse, geom.Identity(), bbox, bbox)
	u.SetResolution(bbox.Width(), bbox.Height())
	s := newSlots(u, graphic, nil, Target{CTM: geom.Identity(), BBox: bbox})
	if s.Area() != graphic.Area() {
		t.Fatalf("slot area = %v, want %v", s.Area(), graphic.Area())
	}
	return s
}

// run renders p into a fresh slot table over graphic in sRGB and returns
// the last result.
func run(t *testing.T, p Primitive, graphic *surface.Surface) *surface.Surface {
	t.Helper()
	s := testSlots(t, graphic)
	p.render(s, surface.CISRGB)
	return s.Get("")
}

// sameWords reports the first differing pixel of two equally sized
// surfaces.
func sameWords(t *testing.T, got, want *surface.Surface) {
	t.Helper()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	for y := range want.Height() {
		for x := range want.Width() {
			if g, w := got.Word(x, y), want.Word(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %#08x, want %#08x", x, y, g, w)
			}
		}
	}
}

// gradientSurface returns a surface with varied valid premultiplied
// pixels.
func gradientSurface(w, h int) *surface.Surface {
	s := filled(w, h, 0)
	for y := range h {
		for x := range w {
			a := uint32((x*37 + y*11) % 256)
			r := min(uint32(x*13%256), a)
			g := min(uint32(y*29%256), a)
			b := min(uint32((x+y)*7%256), a)
			s.SetWord(x, y, a<<24|r<<16|g<<8|b)
		}
	}
	return s
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// nearWord reports whether every channel of a and b differs by at most
// tol.
func nearWord(a, b, tol uint32) bool {
	for shift := uint(0); shift < 32; shift += 8 {
		if absDiff((a>>shift)&0xff, (b>>shift)&0xff) > tol {
			return false
		}
	}
	return true
}
