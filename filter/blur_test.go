package filter

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

func TestGaussianKernelZeroSigma(t *testing.T) {
	for _, sigma := range []float64{0, -5, math.NaN()} {
		kernel := GaussianKernel(sigma)
		if len(kernel) != 1 || kernel[0] != 1 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", sigma, kernel)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.3, 1, 2, 3, 5, 10, 20} {
		kernel := GaussianKernel(sigma)

		// Each entry past the first weighs two taps.
		sum := kernel[0]
		for _, v := range kernel[1:] {
			sum += 2 * v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("GaussianKernel(%v) sum = %v, want 1", sigma, sum)
		}
	}
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{0.5, 3},   // ceil(1.5)+1
		{1.0, 4},   // ceil(3)+1
		{2.0, 7},   // ceil(6)+1
		{5.0, 16},  // ceil(15)+1
		{10.0, 31}, // ceil(30)+1
	}
	for _, tt := range tests {
		if got := len(GaussianKernel(tt.sigma)); got != tt.wantSize {
			t.Errorf("GaussianKernel(%v) len = %d, want %d", tt.sigma, got, tt.wantSize)
		}
	}
}

func TestGaussianKernelDecreasing(t *testing.T) {
	kernel := GaussianKernel(5)
	for i := 1; i < len(kernel); i++ {
		if kernel[i] > kernel[i-1] {
			t.Errorf("kernel[%d] = %v > kernel[%d] = %v", i, kernel[i], i-1, kernel[i-1])
		}
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	k1 := CachedGaussianKernel(1.5)
	k2 := CachedGaussianKernel(1.5)
	if &k1[0] != &k2[0] {
		t.Error("CachedGaussianKernel(1.5) not cached")
	}
	if len(CachedGaussianKernel(2.5)) == len(k1) {
		t.Error("different sigmas share a kernel size")
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for i := 1; i <= 10; i++ {
		c.get(float64(i))
	}
	if len(c.cache) > 4 {
		t.Errorf("cache holds %d kernels, limit 4", len(c.cache))
	}
}

func TestBlurZeroDeviationCopies(t *testing.T) {
	in := gradientSurface(16, 16)
	out := Blur(in, 0, 0)
	sameWords(t, out, in)
	if out == in {
		t.Error("Blur returned its input")
	}
}

func TestBlurUniformUnchanged(t *testing.T) {
	for _, px := range []uint32{0xffffffff, 0x80402010, 0xff000000} {
		in := filled(20, 14, px)
		sameWords(t, Blur(in, 2.5, 1), in)
	}
}

func TestBlurPreservesMass(t *testing.T) {
	in := filled(41, 41, 0)
	in.SetWord(20, 20, 0xff000000)
	out := Blur(in, 2, 2)
	var sum uint32
	for _, px := range words(out.Word, 41, 41) {
		sum += px >> 24
	}
	if absDiff(sum, 255) > 30 {
		t.Errorf("alpha sum = %d, want about 255", sum)
	}
	if c, e := out.Word(20, 20)>>24, out.Word(25, 20)>>24; c <= e {
		t.Errorf("center %d not above off-center %d", c, e)
	}
}

func TestBlurOnlyHorizontal(t *testing.T) {
	in := filled(9, 9, 0)
	for y := range 9 {
		in.SetWord(4, y, 0xffffffff)
	}
	out := Blur(in, 1, 0)
	for y := range 9 {
		if out.Word(3, y) != out.Word(3, 0) {
			t.Fatalf("row %d differs from row 0", y)
		}
	}
	if out.Word(3, 4)>>24 == 0 {
		t.Error("no horizontal spread")
	}
}

func TestBlurAlphaOnly(t *testing.T) {
	in := surface.NewArea(surface.FormatA8, image.Rect(0, 0, 8, 8))
	in.Fill(0xff000000)
	out := Blur(in, 1, 1)
	if out.Format() != surface.FormatA8 {
		t.Fatalf("format = %v, want A8", out.Format())
	}
	if got := out.Word(4, 4); got != 0xff000000 {
		t.Errorf("center = %#08x, want opaque", got)
	}
}

func TestBlurColorsWithinAlpha(t *testing.T) {
	out := Blur(gradientSurface(30, 30), 3, 3)
	for _, px := range words(out.Word, 30, 30) {
		a := px >> 24
		if (px>>16)&0xff > a || (px>>8)&0xff > a || px&0xff > a {
			t.Fatalf("%#08x is not premultiplied", px)
		}
	}
}

func TestGaussianBlurAreaEnlarge(t *testing.T) {
	tests := []struct {
		name string
		g    *GaussianBlur
		ctm  geom.Affine
		want image.Rectangle
	}{
		{"identity", &GaussianBlur{StdDeviationX: 2, StdDeviationY: 1}, geom.Identity(), image.Rect(-6, -6, 16, 16)},
		{"scaled", &GaussianBlur{StdDeviationX: 1, StdDeviationY: 1}, geom.Scale(2, 2), image.Rect(-6, -6, 16, 16)},
		{"negative", &GaussianBlur{StdDeviationX: -1, StdDeviationY: -1}, geom.Identity(), image.Rect(0, 0, 10, 10)},
		{"nan", &GaussianBlur{StdDeviationX: math.NaN(), StdDeviationY: 1}, geom.Identity(), image.Rect(-3, -3, 13, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.AreaEnlarge(image.Rect(0, 0, 10, 10), tt.ctm); got != tt.want {
				t.Errorf("AreaEnlarge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaussianBlurComplexity(t *testing.T) {
	if c := (&GaussianBlur{}).Complexity(geom.Identity()); c != 1 {
		t.Errorf("zero blur complexity = %v, want 1", c)
	}
	if c := (&GaussianBlur{StdDeviationX: 1, StdDeviationY: 1}).Complexity(geom.Identity()); c != 18 {
		t.Errorf("unit blur complexity = %v, want 18", c)
	}
}
