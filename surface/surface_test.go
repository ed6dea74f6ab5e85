package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"zero width", func() error { _, err := New(FormatARGB32, 0, 4); return err }, ErrInvalidDimensions},
		{"bad format", func() error { _, err := New(Format(9), 4, 4); return err }, ErrUnsupportedFormat},
		{"short stride", func() error { _, err := NewWithStride(FormatARGB32, 4, 4, 15); return err }, ErrInvalidStride},
		{"short data", func() error { _, err := FromBytes(FormatA8, 4, 4, 4, make([]byte, 15)); return err }, ErrDataTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := FromBytes(FormatA8, 4, 4, 5, make([]byte, 19)); err != nil {
		t.Errorf("last row without padding rejected: %v", err)
	}
}

func TestWordLayout(t *testing.T) {
	s, _ := New(FormatARGB32, 1, 1)
	s.SetWord(0, 0, 0x80402010)
	if got := s.Pix(); got[0] != 0x10 || got[1] != 0x20 || got[2] != 0x40 || got[3] != 0x80 {
		t.Errorf("bytes = % x, want B,G,R,A", got[:4])
	}
	a, _ := New(FormatA8, 1, 1)
	a.SetWord(0, 0, 0x7f123456)
	if a.Word(0, 0) != 0x7f000000 {
		t.Errorf("alpha word = %#x", a.Word(0, 0))
	}
}

func TestPremulRoundTrip(t *testing.T) {
	for a := uint32(1); a < 256; a++ {
		// premul discards precision, so the way back can be off by
		// about 128/a + 0.5
		bound := 128/float64(a) + 0.5
		for c := uint32(0); c < 256; c++ {
			got := Unpremul(Premul(c, a), a)
			diff := float64(int(got) - int(c))
			if diff < 0 {
				diff = -diff
			}
			if diff > bound || (a >= 128 && diff > 1) {
				t.Fatalf("a=%d c=%d: round trip %d", a, c, got)
			}
		}
	}
	if Premul(200, 255) != 200 || Premul(255, 77) != 77 {
		t.Error("premul identities broken")
	}
}

func TestRGBA8Conversion(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255,
		255, 0, 0, 128,
		10, 20, 30, 0,
	}
	s, err := FromRGBA8(pix, 3, 1, 12)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0xffff0000, 0x80800000, 0}
	for x, w := range want {
		if got := s.Word(x, 0); got != w {
			t.Errorf("pixel %d = %#08x, want %#08x", x, got, w)
		}
	}
	back := s.RGBA8()
	if back[4] != 255 || back[7] != 128 {
		t.Errorf("RGBA8 = %v", back[4:8])
	}
	if back[8] != 0 || back[11] != 0 {
		t.Errorf("transparent pixel kept color %v", back[8:12])
	}
}

func TestConvertRGBA8InPlace(t *testing.T) {
	s, _ := FromBytes(FormatARGB32, 1, 1, 4, []byte{255, 0, 0, 128})
	s.ConvertFromRGBA8()
	if got := s.Word(0, 0); got != 0x80800000 {
		t.Errorf("premultiplied = %#08x", got)
	}
	s.ConvertToRGBA8()
	if got := s.Pix(); got[0] != 255 || got[3] != 128 {
		t.Errorf("unpremultiplied = %v", got)
	}
}

func TestBlitAndSub(t *testing.T) {
	src := NewArea(FormatARGB32, image.Rect(10, 10, 14, 14))
	src.Fill(0xff00ff00)
	dst := NewArea(FormatARGB32, image.Rect(12, 8, 20, 16))
	Blit(src, dst)
	if got := dst.WordAt(13, 13); got != 0xff00ff00 {
		t.Errorf("overlap pixel = %#08x", got)
	}
	if got := dst.WordAt(15, 13); got != 0 {
		t.Errorf("pixel outside source = %#08x", got)
	}

	a := NewArea(FormatA8, dst.Area())
	Blit(dst, a)
	if got := a.WordAt(12, 10); got != 0xff000000 {
		t.Errorf("converted alpha = %#08x", got)
	}

	sub := src.Sub(image.Rect(0, 0, 12, 12))
	if sub.Area() != image.Rect(10, 10, 12, 12) || sub.WordAt(11, 11) != 0xff00ff00 {
		t.Errorf("Sub = %v", sub.Area())
	}
}

func TestCreateOutputAndIdentical(t *testing.T) {
	a := NewArea(FormatA8, image.Rect(0, 0, 2, 2))
	c := NewArea(FormatARGB32, image.Rect(5, 5, 9, 9))
	c.SetColorInterpolationTag(CILinearRGB)
	if CreateOutput(a, a).Format() != FormatA8 {
		t.Error("alpha inputs should give alpha output")
	}
	out := CreateOutput(a, c)
	if out.Format() != FormatARGB32 || out.Area() != c.Area() {
		t.Errorf("CreateOutput = %v %v", out.Format(), out.Area())
	}
	if id := c.CreateIdentical(); id.ColorInterpolation() != CILinearRGB || id.Area() != c.Area() {
		t.Error("CreateIdentical lost tag or area")
	}
}

func TestExtractAlpha(t *testing.T) {
	s := NewArea(FormatARGB32, image.Rect(3, 4, 5, 6))
	s.Fill(0x80402010)
	a := s.ExtractAlpha()
	if a.Format() != FormatA8 || a.Area() != s.Area() || a.AlphaAt(1, 1) != 0x80 {
		t.Errorf("ExtractAlpha = %v %v %d", a.Format(), a.Area(), a.AlphaAt(1, 1))
	}
}

func TestDrawImage(t *testing.T) {
	s := NewArea(FormatARGB32, image.Rect(-2, -2, 2, 2))
	s.Set(-1, 1, color.RGBA{R: 0x40, A: 0x80})
	if got := s.At(-1, 1); got != (color.RGBA{R: 0x40, A: 0x80}) {
		t.Errorf("At = %v", got)
	}
	s.Set(5, 5, color.White) // outside, ignored

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	f := FromImage(img)
	if got := f.Word(0, 0); got != 0x80800000 {
		t.Errorf("FromImage = %#08x", got)
	}
	if n := f.NRGBA(); n.NRGBAAt(0, 0) != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("NRGBA = %v", n.NRGBAAt(0, 0))
	}
}

func TestScaled(t *testing.T) {
	src := NewArea(FormatARGB32, image.Rect(0, 0, 2, 2))
	src.Fill(0xff0000ff)
	for _, smooth := range []bool{false, true} {
		s := Scaled(src, 6, 4, smooth)
		if s.Width() != 6 || s.Height() != 4 || s.Word(3, 2) != 0xff0000ff {
			t.Errorf("smooth=%v: %dx%d %#08x", smooth, s.Width(), s.Height(), s.Word(3, 2))
		}
	}
}

func TestFromAlpha(t *testing.T) {
	m := image.NewAlpha(image.Rect(3, 4, 6, 6))
	m.SetAlpha(4, 5, color.Alpha{A: 200})
	s := FromAlpha(m)
	if s.Format() != FormatA8 || s.Area() != m.Rect {
		t.Fatalf("format %v area %v", s.Format(), s.Area())
	}
	if got := s.WordAt(4, 5); got != 200<<24 {
		t.Errorf("WordAt(4,5) = %#08x, want 200<<24", got)
	}
	if got := s.WordAt(3, 4); got != 0 {
		t.Errorf("WordAt(3,4) = %#08x, want 0", got)
	}
}
