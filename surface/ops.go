package surface

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/drawing/internal/parallel"
)

// ParallelThreshold is the pixel count above which the drivers split work
// across goroutines.
const ParallelThreshold = 2048

var workers atomic.Int32

func init() {
	workers.Store(int32(parallel.ClampWorkers(0)))
}

// SetWorkers sets how many goroutines the drivers may use. The value is
// clamped to [1, 256]; zero or negative selects GOMAXPROCS.
func SetWorkers(n int) {
	workers.Store(int32(parallel.ClampWorkers(n)))
}

// Workers returns the configured worker count.
func Workers() int {
	return int(workers.Load())
}

// BlendFunc combines two input pixels into one output pixel.
type BlendFunc func(in1, in2 uint32) uint32

// FilterFunc maps an input pixel to an output pixel.
type FilterFunc func(in uint32) uint32

// SynthFunc produces the pixel for buffer coordinates (x, y).
type SynthFunc func(x, y int) uint32

// rows runs fn over [0, h) in bands, in parallel when the area is large.
func rows(w, h int, fn func(y0, y1 int)) {
	n := Workers()
	if w*h <= ParallelThreshold || n == 1 {
		fn(0, h)
		return
	}
	parallel.Rows(h, n, fn)
}

// contiguous reports whether the rows of every surface are packed.
func contiguous(ss ...*Surface) bool {
	for _, s := range ss {
		if s.stride != s.width*s.format.BytesPerPixel() {
			return false
		}
	}
	return true
}

// Blend calls fn for every pixel of the region common to in1, in2 and out,
// all addressed from their top-left pixel, and stores the result in out.
// Alpha-only inputs are passed with alpha in the top byte; alpha-only
// outputs keep the top byte of the result. out may alias either input.
func Blend(in1, in2, out *Surface, fn BlendFunc) {
	w := min(in1.width, in2.width, out.width)
	h := min(in1.height, in2.height, out.height)
	if w <= 0 || h <= 0 {
		return
	}
	if in1.format == FormatARGB32 && in2.format == FormatARGB32 && out.format == FormatARGB32 &&
		in1.width == w && in2.width == w && out.width == w && contiguous(in1, in2, out) {
		p1, p2, po := words(in1), words(in2), words(out)
		rows(w, h, func(y0, y1 int) {
			for i := y0 * w; i < y1*w; i++ {
				po.set(i, fn(p1.get(i), p2.get(i)))
			}
		})
		return
	}
	rows(w, h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				out.SetWord(x, y, fn(in1.Word(x, y), in2.Word(x, y)))
			}
		}
	})
}

// Filter calls fn for every pixel common to in and out and stores the
// result in out. in and out may be the same surface.
func Filter(in, out *Surface, fn FilterFunc) {
	w := min(in.width, out.width)
	h := min(in.height, out.height)
	if w <= 0 || h <= 0 {
		return
	}
	if in.format == FormatARGB32 && out.format == FormatARGB32 &&
		in.width == w && out.width == w && contiguous(in, out) {
		pi, po := words(in), words(out)
		rows(w, h, func(y0, y1 int) {
			for i := y0 * w; i < y1*w; i++ {
				po.set(i, fn(pi.get(i)))
			}
		})
		return
	}
	rows(w, h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				out.SetWord(x, y, fn(in.Word(x, y)))
			}
		}
	})
}

// Synthesize calls fn with the buffer coordinates of every pixel of area
// and stores the result. area is clipped to the surface.
func Synthesize(out *Surface, area image.Rectangle, fn SynthFunc) {
	bounds := image.Rect(0, 0, out.width, out.height)
	clipped := area.Intersect(bounds)
	if clipped != area {
		logger().Debug("surface: synthesize area clipped", "area", area, "bounds", bounds)
	}
	if clipped.Empty() {
		return
	}
	rows(clipped.Dx(), clipped.Dy(), func(y0, y1 int) {
		for y := clipped.Min.Y + y0; y < clipped.Min.Y+y1; y++ {
			for x := clipped.Min.X; x < clipped.Max.X; x++ {
				out.SetWord(x, y, fn(x, y))
			}
		}
	})
}

// SynthesizeAll is Synthesize over the whole surface.
func SynthesizeAll(out *Surface, fn SynthFunc) {
	Synthesize(out, image.Rect(0, 0, out.width, out.height), fn)
}

// wordView addresses a packed ARGB32 buffer by pixel index.
type wordView []byte

func words(s *Surface) wordView {
	return wordView(s.pix)
}

func (v wordView) get(i int) uint32 {
	b := v[4*i : 4*i+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (v wordView) set(i int, px uint32) {
	b := v[4*i : 4*i+4]
	b[0] = byte(px)
	b[1] = byte(px >> 8)
	b[2] = byte(px >> 16)
	b[3] = byte(px >> 24)
}
