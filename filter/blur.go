package filter

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/parallel"
	"github.com/gogpu/drawing/surface"
)

// GaussianBlur blurs its input with a separable Gaussian. Deviations are
// in primitive units; negative or non-finite values disable the blur.
type GaussianBlur struct {
	Base
	StdDeviationX, StdDeviationY float64
}

func validDeviation(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (g *GaussianBlur) deviations(m geom.Affine) (float64, float64) {
	return validDeviation(g.StdDeviationX) * m.ExpansionX(), validDeviation(g.StdDeviationY) * m.ExpansionY()
}

// AreaEnlarge grows area by the kernel radius of the larger deviation.
func (g *GaussianBlur) AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle {
	dx, dy := g.deviations(ctm)
	r := max(KernelRadius(dx), KernelRadius(dy))
	return geom.ExpandInt(area, r, r)
}

// Complexity grows with the kernel footprint.
func (g *GaussianBlur) Complexity(ctm geom.Affine) float64 {
	dx, dy := g.deviations(ctm)
	return max(1, 2*float64(KernelRadius(dx))*float64(KernelRadius(dy)))
}

func (g *GaussianBlur) render(s *Slots, ci surface.ColorInterpolation) {
	in := s.Get(g.In)
	in.SetColorInterpolation(ci)
	dx, dy := g.deviations(s.Units().PrimitiveUnitsToPB())
	s.Set(g.Result, Blur(in, dx, dy))
}

// Blur returns in blurred with the given deviations in pixels. Edge
// pixels are replicated outward. Zero deviations return a copy.
func Blur(in *surface.Surface, sigmaX, sigmaY float64) *surface.Surface {
	if !(sigmaX > 0) && !(sigmaY > 0) || in.IsEmpty() {
		return in.Copy()
	}
	w, h := in.Width(), in.Height()
	channels := 4
	if in.Format() == surface.FormatA8 {
		channels = 1
	}
	temp := getTempBuffer(w * h * channels)
	defer putTempBuffer(temp)

	blurHorizontal(in, temp, channels, CachedGaussianKernel(sigmaX))
	out := in.CreateIdentical()
	blurVertical(temp, out, channels, CachedGaussianKernel(sigmaY))
	return out
}

// channelOf returns channel c of a word, counting from alpha.
func channelOf(px uint32, c int) float64 {
	return float64((px >> (24 - 8*uint(c))) & 0xff)
}

// blurHorizontal convolves every row of src into temp.
func blurHorizontal(src *surface.Surface, temp []float64, channels int, kernel []float64) {
	w, h := src.Width(), src.Height()
	parallel.Rows(h, surface.Workers(), func(lo, hi int) {
		row := make([]uint32, w)
		for y := lo; y < hi; y++ {
			for x := range row {
				row[x] = src.Word(x, y)
			}
			for x := range w {
				for c := range channels {
					v := kernel[0] * channelOf(row[x], c)
					for i := 1; i < len(kernel); i++ {
						l := max(x-i, 0)
						r := min(x+i, w-1)
						v += kernel[i] * (channelOf(row[l], c) + channelOf(row[r], c))
					}
					temp[(y*w+x)*channels+c] = v
				}
			}
		}
	})
}

// blurVertical convolves every column of temp into dst.
func blurVertical(temp []float64, dst *surface.Surface, channels int, kernel []float64) {
	w, h := dst.Width(), dst.Height()
	at := func(x, y, c int) float64 { return temp[(y*w+x)*channels+c] }
	parallel.Rows(w, surface.Workers(), func(lo, hi int) {
		for x := lo; x < hi; x++ {
			for y := range h {
				var ch [4]uint32
				for c := range channels {
					v := kernel[0] * at(x, y, c)
					for i := 1; i < len(kernel); i++ {
						t := max(y-i, 0)
						b := min(y+i, h-1)
						v += kernel[i] * (at(x, t, c) + at(x, b, c))
					}
					ch[c] = clampUint8(v)
				}
				a := ch[0]
				dst.SetWord(x, y, a<<24|min(ch[1], a)<<16|min(ch[2], a)<<8|min(ch[3], a))
			}
		}
	})
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float64
}

// Temporary buffer pool for blur operations.
var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float64, 256*256*4)}
	},
}

// getTempBuffer retrieves a zeroed buffer of at least size elements.
func getTempBuffer(size int) []float64 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float64, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float64) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 8*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 rounds v to the nearest value in [0, 255].
func clampUint8(v float64) uint32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v + 0.5)
}
