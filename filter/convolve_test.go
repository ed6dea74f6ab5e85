package filter

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
)

func TestConvolveIdentity(t *testing.T) {
	in := gradientSurface(24, 24)
	p := NewConvolveMatrix(1, 1, 1)
	p.Divisor = 1
	if p.TargetX != 0 || p.TargetY != 0 {
		t.Fatalf("target = (%d,%d), want (0,0)", p.TargetX, p.TargetY)
	}
	sameWords(t, run(t, p, in.Copy()), in)
}

func TestConvolveValidate(t *testing.T) {
	tests := []struct {
		name string
		p    *ConvolveMatrix
		want error
	}{
		{"ok", NewConvolveMatrix(3, 3, 0, 0, 0, 0, 1, 0, 0, 0, 0), nil},
		{"zero order", &ConvolveMatrix{OrderX: 0, OrderY: 3}, ErrInvalidKernel},
		{"short kernel", NewConvolveMatrix(3, 3, 1, 2, 3), ErrInvalidKernel},
		{"target x", &ConvolveMatrix{OrderX: 2, OrderY: 2, Kernel: []float64{1, 1, 1, 1}, TargetX: 2}, ErrInvalidTarget},
		{"target y", &ConvolveMatrix{OrderX: 2, OrderY: 2, Kernel: []float64{1, 1, 1, 1}, TargetY: -1}, ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConvolveInvalidLeavesSlotUnset(t *testing.T) {
	s := testSlots(t, filled(4, 4, 0xff000000))
	p := &ConvolveMatrix{Base: Base{Result: "conv"}, OrderX: 3, OrderY: 3}
	p.render(s, 0)
	if s.Has("conv") {
		t.Error("invalid convolution wrote its result")
	}
}

func TestConvolveReversesKernel(t *testing.T) {
	// The stored kernel is rotated by 180 degrees: a 1 in the last tap
	// reads the pixel to the upper left.
	in := filled(3, 3, 0)
	in.SetWord(0, 0, 0xffffffff)
	p := NewConvolveMatrix(2, 2, 0, 0, 0, 1)
	p.TargetX, p.TargetY = 1, 1
	out := run(t, p, in)
	if got := out.Word(1, 1); got != 0xffffffff {
		t.Errorf("(1,1) = %#08x, want white", got)
	}
	if got := out.Word(0, 0); got != 0 {
		t.Errorf("(0,0) = %#08x, want transparent", got)
	}
}

func TestConvolveEdgesShrink(t *testing.T) {
	// A box kernel normalized by 9 darkens the corners, where only four
	// taps fall inside the image.
	in := filled(5, 5, 0xffffffff)
	k := make([]float64, 9)
	for i := range k {
		k[i] = 1
	}
	out := run(t, NewConvolveMatrix(3, 3, k...), in)
	if got := out.Word(2, 2); got != 0xffffffff {
		t.Errorf("center = %#08x, want white", got)
	}
	if got := out.Word(0, 0) >> 24; got != 113 {
		t.Errorf("corner alpha = %d, want 113", got)
	}
}

func TestConvolvePreserveAlpha(t *testing.T) {
	in := filled(3, 3, 0x80808080)
	p := NewConvolveMatrix(1, 1, 2)
	p.Divisor = 1
	p.PreserveAlpha = true
	out := run(t, p, in)
	if got := out.Word(1, 1); got != 0x80808080 {
		t.Errorf("got %#08x, want colors clamped to alpha 0x80808080", got)
	}
}

func TestConvolveAreaEnlarge(t *testing.T) {
	p := NewConvolveMatrix(3, 5, make([]float64, 15)...)
	got := p.AreaEnlarge(image.Rect(10, 10, 20, 20), geom.Identity())
	want := image.Rect(9, 8, 21, 22)
	if got != want {
		t.Errorf("AreaEnlarge = %v, want %v", got, want)
	}
	if c := p.Complexity(geom.Identity()); c != 15 {
		t.Errorf("Complexity = %v, want 15", c)
	}
}
