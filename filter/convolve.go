package filter

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// EdgeMode selects how a convolution reads outside the input.
type EdgeMode uint8

const (
	// EdgeNone treats pixels outside the input as absent.
	EdgeNone EdgeMode = iota
	EdgeDuplicate
	EdgeWrap
)

// ConvolveMatrix applies a matrix convolution. Only EdgeNone is
// implemented; kernel taps outside the input contribute nothing.
type ConvolveMatrix struct {
	Base
	OrderX, OrderY   int
	Kernel           []float64
	Divisor          float64
	Bias             float64
	TargetX, TargetY int
	EdgeMode         EdgeMode
	PreserveAlpha    bool
}

// NewConvolveMatrix returns a convolution with the target at the kernel
// center and the divisor left to the kernel sum.
func NewConvolveMatrix(orderX, orderY int, kernel ...float64) *ConvolveMatrix {
	return &ConvolveMatrix{
		OrderX:  orderX,
		OrderY:  orderY,
		Kernel:  kernel,
		TargetX: orderX / 2,
		TargetY: orderY / 2,
	}
}

// Validate checks the kernel dimensions and target.
func (c *ConvolveMatrix) Validate() error {
	if c.OrderX <= 0 || c.OrderY <= 0 || len(c.Kernel) != c.OrderX*c.OrderY {
		return fmt.Errorf("%w: order %dx%d with %d values", ErrInvalidKernel, c.OrderX, c.OrderY, len(c.Kernel))
	}
	if c.TargetX < 0 || c.TargetX >= c.OrderX || c.TargetY < 0 || c.TargetY >= c.OrderY {
		return fmt.Errorf("%w: target (%d,%d) order %dx%d", ErrInvalidTarget, c.TargetX, c.TargetY, c.OrderX, c.OrderY)
	}
	return nil
}

// AreaEnlarge grows area by the kernel extent around the target.
func (c *ConvolveMatrix) AreaEnlarge(area image.Rectangle, _ geom.Affine) image.Rectangle {
	area.Min.X -= c.TargetX
	area.Min.Y -= c.TargetY
	area.Max.X += c.OrderX - c.TargetX - 1
	area.Max.Y += c.OrderY - c.TargetY - 1
	return area
}

// Complexity returns the number of kernel taps.
func (c *ConvolveMatrix) Complexity(geom.Affine) float64 {
	return float64(c.OrderX * c.OrderY)
}

var (
	biasWarning sync.Once
	edgeWarning sync.Once
)

func (c *ConvolveMatrix) render(s *Slots, ci surface.ColorInterpolation) {
	if err := c.Validate(); err != nil {
		logger().Warn("filter: skipping convolution", "err", err)
		return
	}
	if c.Bias != 0 {
		biasWarning.Do(func() {
			logger().Warn("filter: convolution bias follows legacy behavior")
		})
	}
	if c.EdgeMode != EdgeNone {
		edgeWarning.Do(func() {
			logger().Warn("filter: convolution edge modes other than none are not implemented")
		})
	}

	in := s.Get(c.In)
	in.SetColorInterpolation(ci)
	out := surface.NewArea(surface.FormatARGB32, in.Area())
	out.SetColorInterpolationTag(in.ColorInterpolation())
	surface.SynthesizeAll(out, c.kernel(in))
	s.Set(c.Result, out)
}

// kernel returns the per pixel convolution over in, in buffer
// coordinates.
func (c *ConvolveMatrix) kernel(in *surface.Surface) surface.SynthFunc {
	divisor := c.Divisor
	if divisor == 0 {
		for _, k := range c.Kernel {
			divisor += k
		}
		if divisor == 0 {
			divisor = 1
		}
	}
	n := len(c.Kernel)
	k := make([]float64, n)
	for i, v := range c.Kernel {
		// stored rotated by 180 degrees
		k[n-1-i] = v / divisor
	}
	w, h := in.Width(), in.Height()
	ox, oy := c.OrderX, c.OrderY
	tx, ty := c.TargetX, c.TargetY
	bias := c.Bias
	preserve := c.PreserveAlpha

	return func(x, y int) uint32 {
		var sr, sg, sb, sa float64
		for i := range oy {
			yy := y - ty + i
			if yy < 0 || yy >= h {
				continue
			}
			for j := range ox {
				xx := x - tx + j
				if xx < 0 || xx >= w {
					continue
				}
				a, r, g, b := blend.Unpack(in.Word(xx, yy))
				f := k[i*ox+j]
				sr += f * float64(r)
				sg += f * float64(g)
				sb += f * float64(b)
				if !preserve {
					sa += f * float64(a)
				}
			}
		}
		var ao uint32
		if preserve {
			ao = in.Word(x, y) >> 24
		} else {
			ao = clampRound(sa+bias*255, 255)
		}
		fa := float64(ao)
		return blend.Pack(ao,
			clampRound(sr+fa*bias, ao),
			clampRound(sg+fa*bias, ao),
			clampRound(sb+fa*bias, ao))
	}
}

// clampRound rounds v to the nearest integer in [0, hi].
func clampRound(v float64, hi uint32) uint32 {
	v = math.Round(v)
	if !(v > 0) {
		return 0
	}
	if v > float64(hi) {
		return hi
	}
	return uint32(v)
}
