package color

import (
	"math"
	"testing"
)

func TestSRGBToLinear8(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{10, 0}, // linear segment: 10/255/12.92*255 < 1
		{128, 55},
		{255, 255},
	}
	for _, tt := range tests {
		if got := SRGBToLinear8(tt.in); got != tt.want {
			t.Errorf("SRGBToLinear8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLinearToSRGB8(t *testing.T) {
	if got := LinearToSRGB8(0); got != 0 {
		t.Errorf("LinearToSRGB8(0) = %d, want 0", got)
	}
	// truncation: 127.95 becomes 127
	if got := LinearToSRGB8(55); got != 127 {
		t.Errorf("LinearToSRGB8(55) = %d, want 127", got)
	}
	// 1.055*1^(1/2.4)-0.055 falls just short of 1, so white does not
	// survive a round trip.
	if got := LinearToSRGB8(SRGBToLinear8(255)); got != 254 {
		t.Errorf("white round trip = %d, want 254", got)
	}
}

func TestLUTMonotonic(t *testing.T) {
	for i := 1; i < 256; i++ {
		if srgbToLinear8[i] < srgbToLinear8[i-1] {
			t.Fatalf("srgbToLinear8 decreases at %d", i)
		}
		if linearToSRGB8[i] < linearToSRGB8[i-1] {
			t.Fatalf("linearToSRGB8 decreases at %d", i)
		}
	}
}

func TestFloatConversionsMatchFormula(t *testing.T) {
	for i := 0; i <= 100; i++ {
		s := float64(i) / 100
		want := s / 12.92
		if s > 0.04045 {
			want = math.Pow((s+0.055)/1.055, 2.4)
		}
		if got := SRGBToLinear(s); math.Abs(got-want) > 1e-12 {
			t.Errorf("SRGBToLinear(%v) = %v, want %v", s, got, want)
		}
		if back := LinearToSRGB(SRGBToLinear(s)); math.Abs(back-s) > 1e-9 {
			t.Errorf("round trip of %v = %v", s, back)
		}
	}
}
