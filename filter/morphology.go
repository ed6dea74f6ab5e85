package filter

import (
	"image"
	"math"

	"github.com/gammazero/deque"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/parallel"
	"github.com/gogpu/drawing/surface"
)

// MorphologyOperator selects erosion or dilation.
type MorphologyOperator uint8

const (
	Erode MorphologyOperator = iota
	Dilate
)

// Morphology thins or fattens its input with a rectangular window.
type Morphology struct {
	Base
	Operator         MorphologyOperator
	RadiusX, RadiusY float64
}

func (m *Morphology) radii(ctm geom.Affine) (float64, float64) {
	return math.Abs(m.RadiusX * ctm.ExpansionX()), math.Abs(m.RadiusY * ctm.ExpansionY())
}

// AreaEnlarge grows area by the radii in device pixels.
func (m *Morphology) AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle {
	rx, ry := m.radii(ctm)
	return geom.ExpandInt(area, int(math.Ceil(rx)), int(math.Ceil(ry)))
}

// Complexity grows with the window area.
func (m *Morphology) Complexity(ctm geom.Affine) float64 {
	rx, ry := m.radii(ctm)
	return max(1, rx*ry)
}

func (m *Morphology) render(s *Slots, ci surface.ColorInterpolation) {
	in := s.Get(m.In)
	if m.RadiusX <= 0 || m.RadiusY <= 0 {
		s.Set(m.Result, in.CreateIdentical())
		return
	}
	in.SetColorInterpolation(ci)
	rx, ry := m.radii(s.Units().PrimitiveUnitsToPB())
	out := Morph(in, m.Operator, int(math.Round(rx)), int(math.Round(ry)))
	s.Set(m.Result, out)
}

// Morph returns in eroded or dilated by a (2rx+1)x(2ry+1) window. Pixels
// outside in count as transparent. Zero radii return a copy of in.
func Morph(in *surface.Surface, op MorphologyOperator, rx, ry int) *surface.Surface {
	tmp := in.CreateIdentical()
	morphPass(in, tmp, rx, op, false)
	out := in.CreateIdentical()
	morphPass(tmp, out, ry, op, true)
	return out
}

type extremum struct {
	pos int
	val uint8
}

// morphPass runs the running-extremum filter along every row, or every
// column when vertical is set. Each line keeps a deque that is monotonic
// under the operator's comparison, so a pass is linear in the line
// length regardless of radius.
func morphPass(in, out *surface.Surface, r int, op MorphologyOperator, vertical bool) {
	if r <= 0 {
		surface.Blit(in, out)
		return
	}
	lines, n := in.Height(), in.Width()
	at := func(line, j int) (int, int) { return j, line }
	if vertical {
		lines, n = n, lines
		at = func(line, j int) (int, int) { return line, j }
	}
	keep := func(back, v uint8) bool { return back < v }
	if op == Dilate {
		keep = func(back, v uint8) bool { return back > v }
	}
	channels := 4
	if in.Format() == surface.FormatA8 {
		channels = 1
	}
	window := 2*r + 1

	parallel.Rows(lines, surface.Workers(), func(lo, hi int) {
		src := make([]uint32, n)
		dst := make([]uint32, n)
		q := deque.New[extremum]()
		for line := lo; line < hi; line++ {
			for j := range src {
				src[j] = in.Word(at(line, j))
			}
			clear(dst)
			for c := range channels {
				shift := uint(24 - 8*c)
				q.Clear()
				q.PushBack(extremum{pos: -1})
				for j := 0; j < n+r; j++ {
					if q.Len() > 0 && q.Front().pos+window <= j {
						q.PopFront()
					}
					switch {
					case j < n:
						v := uint8(src[j] >> shift)
						for q.Len() > 0 && !keep(q.Back().val, v) {
							q.PopBack()
						}
						q.PushBack(extremum{pos: j, val: v})
					case j == n:
						for q.Len() > 0 && !keep(q.Back().val, 0) {
							q.PopBack()
						}
						q.PushBack(extremum{pos: j})
					}
					if j >= r {
						dst[j-r] |= uint32(q.Front().val) << shift
					}
				}
			}
			for j, px := range dst {
				x, y := at(line, j)
				out.SetWord(x, y, px)
			}
		}
	})
}
