package filter

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
)

func words(at func(x, y int) uint32, w, h int) []uint32 {
	out := make([]uint32, 0, w*h)
	for y := range h {
		for x := range w {
			out = append(out, at(x, y))
		}
	}
	return out
}

func TestMorphZeroRadiusIsIdentity(t *testing.T) {
	in := gradientSurface(20, 12)
	for _, op := range []MorphologyOperator{Erode, Dilate} {
		sameWords(t, Morph(in, op, 0, 0), in)
	}
}

func TestMorphSinglePixel(t *testing.T) {
	in := filled(7, 7, 0)
	in.SetWord(3, 3, 0xffffffff)

	t.Run("dilate", func(t *testing.T) {
		out := Morph(in, Dilate, 1, 1)
		for y := range 7 {
			for x := range 7 {
				want := uint32(0)
				if x >= 2 && x <= 4 && y >= 2 && y <= 4 {
					want = 0xffffffff
				}
				if got := out.Word(x, y); got != want {
					t.Errorf("(%d,%d) = %#08x, want %#08x", x, y, got, want)
				}
			}
		}
	})
	t.Run("erode", func(t *testing.T) {
		out := Morph(in, Erode, 1, 1)
		for i, px := range words(out.Word, 7, 7) {
			if px != 0 {
				t.Fatalf("pixel %d = %#08x, want empty", i, px)
			}
		}
	})
}

func TestMorphAsymmetricRadius(t *testing.T) {
	in := filled(9, 9, 0)
	in.SetWord(4, 4, 0xff000000)
	out := Morph(in, Dilate, 2, 0)
	for x := range 9 {
		want := uint32(0)
		if x >= 2 && x <= 6 {
			want = 0xff000000
		}
		if got := out.Word(x, 4); got != want {
			t.Errorf("row 4, x=%d: %#08x, want %#08x", x, got, want)
		}
	}
	if got := out.Word(4, 3); got != 0 {
		t.Errorf("(4,3) = %#08x, want transparent", got)
	}
}

func TestMorphErodeBorderIsTransparent(t *testing.T) {
	// Pixels outside the surface count as transparent, so erosion eats
	// the border of an opaque surface.
	out := Morph(filled(6, 6, 0xff000000), Erode, 1, 1)
	for _, tc := range []struct {
		x, y int
		want uint32
	}{
		{0, 0, 0}, {5, 2, 0}, {2, 0, 0},
		{1, 1, 0xff000000}, {4, 4, 0xff000000}, {2, 3, 0xff000000},
	} {
		if got := out.Word(tc.x, tc.y); got != tc.want {
			t.Errorf("(%d,%d) = %#08x, want %#08x", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestMorphChannelsIndependent(t *testing.T) {
	in := filled(3, 1, 0)
	in.SetWord(0, 0, 0xff0000ff)
	in.SetWord(2, 0, 0xffff0000)
	out := Morph(in, Dilate, 1, 0)
	if got := out.Word(1, 0); got != 0xffff00ff {
		t.Errorf("middle = %#08x, want 0xffff00ff", got)
	}
}

func TestMorphologyZeroRadiusIsTransparent(t *testing.T) {
	out := run(t, &Morphology{Operator: Dilate, RadiusX: 0, RadiusY: 2}, filled(5, 5, 0xffffffff))
	for i, px := range words(out.Word, 5, 5) {
		if px != 0 {
			t.Fatalf("pixel %d = %#08x, want transparent", i, px)
		}
	}
}

func TestMorphologyAreaEnlarge(t *testing.T) {
	m := &Morphology{RadiusX: 1.5, RadiusY: 1}
	got := m.AreaEnlarge(image.Rect(0, 0, 10, 10), geom.Scale(2, 2))
	if want := image.Rect(-3, -2, 13, 12); got != want {
		t.Errorf("AreaEnlarge = %v, want %v", got, want)
	}
}
