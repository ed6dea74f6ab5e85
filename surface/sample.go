package surface

import (
	"math"

	"github.com/gogpu/drawing/geom"
)

// PixelAt returns the pixel at integer buffer coordinates. Alpha-only
// surfaces return alpha in the top byte. Coordinates must be in range.
func (s *Surface) PixelAt(x, y int) uint32 {
	return s.Word(x, y)
}

// AlphaAt returns the alpha at integer buffer coordinates.
func (s *Surface) AlphaAt(x, y int) uint32 {
	if s.format == FormatA8 {
		return uint32(s.pix[y*s.stride+x])
	}
	return uint32(s.pix[y*s.stride+4*x+3])
}

// bilinearWeights splits a coordinate into its integer cell and the
// fractional weight scaled to [0,255].
func bilinearWeights(v float64) (int, uint32) {
	f := math.Floor(v)
	return int(f), uint32(math.Round((v - f) * 255))
}

// neighbours returns the cell pair used for interpolation, clamping the
// second sample at the far edge. Its weight is zero there for in-range
// coordinates.
func neighbours(i, n int) (int, int) {
	i = max(0, min(i, n-1))
	return i, min(i+1, n-1)
}

// PixelAtF samples the surface at fractional buffer coordinates with
// bilinear interpolation per channel:
//
//	((255-fy)*((255-fx)*c00 + fx*c10) + fy*((255-fx)*c01 + fx*c11) + 255*255/2) / (255*255)
func (s *Surface) PixelAtF(x, y float64) uint32 {
	if s.format == FormatA8 {
		return s.AlphaAtF(x, y) << 24
	}
	xi, fx := bilinearWeights(x)
	yi, fy := bilinearWeights(y)
	x0, x1 := neighbours(xi, s.width)
	y0, y1 := neighbours(yi, s.height)
	p00, p10 := s.Word(x0, y0), s.Word(x1, y0)
	p01, p11 := s.Word(x0, y1), s.Word(x1, y1)

	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		c00 := (p00 >> shift) & 0xff
		c10 := (p10 >> shift) & 0xff
		c01 := (p01 >> shift) & 0xff
		c11 := (p11 >> shift) & 0xff
		out |= lerp2(c00, c10, c01, c11, fx, fy) << shift
	}
	return out
}

// AlphaAtF samples alpha at fractional buffer coordinates.
func (s *Surface) AlphaAtF(x, y float64) uint32 {
	xi, fx := bilinearWeights(x)
	yi, fy := bilinearWeights(y)
	x0, x1 := neighbours(xi, s.width)
	y0, y1 := neighbours(yi, s.height)
	return lerp2(s.AlphaAt(x0, y0), s.AlphaAt(x1, y0), s.AlphaAt(x0, y1), s.AlphaAt(x1, y1), fx, fy)
}

func lerp2(c00, c10, c01, c11, fx, fy uint32) uint32 {
	iu := (255-fx)*c00 + fx*c10
	il := (255-fx)*c01 + fx*c11
	return ((255-fy)*iu + fy*il + 255*255/2) / (255 * 255)
}

// normalFactors are the Sobel normalisation factors indexed by whether
// the pixel sits on a vertical edge and on a horizontal edge. The first
// value scales the X gradient, the second the Y gradient.
var normalFactors = [2][2][2]float64{
	// x interior
	{{1.0 / 4, 1.0 / 4}, {1.0 / 3, 1.0 / 2}},
	// x on edge
	{{1.0 / 2, 1.0 / 3}, {2.0 / 3, 2.0 / 3}},
}

// SurfaceNormalAt returns the unit surface normal at (x, y), taking the
// alpha channel as a height map scaled by scale/255. The gradient is a
// 3x3 Sobel operator; at borders the stencil shrinks to the available
// pixels and is renormalised. Z before normalisation is 1.
func (s *Surface) SurfaceNormalAt(x, y int, scale float64) geom.Vec3 {
	xl, xr := max(x-1, 0), min(x+1, s.width-1)
	yt, yb := max(y-1, 0), min(y+1, s.height-1)

	var nx, ny float64
	for dy := -1; dy <= 1; dy++ {
		yy := y + dy
		if yy < 0 || yy >= s.height {
			continue
		}
		w := 1.0
		if dy == 0 {
			w = 2
		}
		nx += w * (float64(s.AlphaAt(xr, yy)) - float64(s.AlphaAt(xl, yy)))
	}
	for dx := -1; dx <= 1; dx++ {
		xx := x + dx
		if xx < 0 || xx >= s.width {
			continue
		}
		w := 1.0
		if dx == 0 {
			w = 2
		}
		ny += w * (float64(s.AlphaAt(xx, yb)) - float64(s.AlphaAt(xx, yt)))
	}

	xEdge := b2i(x == 0 || x == s.width-1)
	yEdge := b2i(y == 0 || y == s.height-1)
	f := normalFactors[xEdge][yEdge]
	k := -scale / 255
	return geom.V3(nx*k*f[0], ny*k*f[1], 1).Normalize()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
