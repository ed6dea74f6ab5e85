package surface

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/internal/blend"
)

func TestSolidRGBA(t *testing.T) {
	tests := []struct {
		r, g, b, a float64
		want       Solid
	}{
		{1, 0, 0, 1, 0xffff0000},
		{1, 0, 0, 0.5, 0x80800000},
		{1, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := SolidRGBA(tt.r, tt.g, tt.b, tt.a); got != tt.want {
			t.Errorf("SolidRGBA(%v,%v,%v,%v) = %#08x, want %#08x", tt.r, tt.g, tt.b, tt.a, uint32(got), uint32(tt.want))
		}
	}
	if got := SolidRGBA32(0x00ff00ff); got != 0xff00ff00 {
		t.Errorf("SolidRGBA32 = %#08x", uint32(got))
	}
}

func TestCompositeOverWithAlpha(t *testing.T) {
	dst := NewArea(FormatARGB32, image.Rect(0, 0, 4, 4))
	dst.Fill(0xffffffff)
	Composite(dst, dst.Area(), Solid(0xffff0000), blend.OpOver, nil, 128)
	if got := dst.Word(1, 1); got != 0xffff7f7f {
		t.Errorf("half red over white = %#08x, want 0xffff7f7f", got)
	}
}

func TestCompositeMaskAndUnbounded(t *testing.T) {
	dst := NewArea(FormatARGB32, image.Rect(0, 0, 4, 1))
	dst.Fill(0xff0000ff)
	mask := NewArea(FormatA8, image.Rect(0, 0, 2, 1))
	mask.Fill(0xff000000)

	// source surface covering only x < 2
	src := NewArea(FormatARGB32, image.Rect(0, 0, 2, 1))
	src.Fill(0xffff0000)
	Composite(dst, dst.Area(), src, blend.OpOver, mask, 255)
	if dst.Word(0, 0) != 0xffff0000 || dst.Word(3, 0) != 0xff0000ff {
		t.Errorf("masked over = %#08x %#08x", dst.Word(0, 0), dst.Word(3, 0))
	}

	// IN with full coverage clears where the source is transparent
	Composite(dst, dst.Area(), src, blend.OpIn, nil, 255)
	if dst.Word(0, 0) != 0xffff0000 || dst.Word(3, 0) != 0 {
		t.Errorf("in = %#08x %#08x", dst.Word(0, 0), dst.Word(3, 0))
	}
}
