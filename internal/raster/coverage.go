// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Rasterizer accumulates signed edge areas over a device rectangle and
// resolves them into 8-bit coverage.
//
// Each line segment deposits, per scanline, the signed area it sweeps into
// an accumulation row; a prefix sum along the row yields the winding value
// of every pixel, which the fill rule turns into coverage. Rows have one
// spare cell so contributions right of the bounds stay in their row.
type Rasterizer struct {
	bounds image.Rectangle
	width  int
	height int
	acc    []float32

	pen   geom.Point
	start geom.Point
	open  bool
}

// NewRasterizer creates a rasterizer covering bounds.
func NewRasterizer(bounds image.Rectangle) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(bounds)
	return r
}

// Reset clears accumulated edges and retargets the rasterizer.
func (r *Rasterizer) Reset(bounds image.Rectangle) {
	if bounds.Empty() {
		bounds = image.Rectangle{}
	}
	r.bounds = bounds
	r.width = bounds.Dx()
	r.height = bounds.Dy()
	n := (r.width + 1) * r.height
	if cap(r.acc) < n {
		r.acc = make([]float32, n)
	} else {
		r.acc = r.acc[:n]
		for i := range r.acc {
			r.acc[i] = 0
		}
	}
	r.open = false
}

// Bounds returns the device rectangle being rasterized.
func (r *Rasterizer) Bounds() image.Rectangle {
	return r.bounds
}

// MoveTo closes the current contour and starts a new one.
func (r *Rasterizer) MoveTo(p geom.Point) {
	r.closeContour()
	r.pen, r.start, r.open = p, p, true
}

// LineTo adds an edge from the pen position.
func (r *Rasterizer) LineTo(p geom.Point) {
	if !r.open {
		r.MoveTo(p)
		return
	}
	r.edge(r.pen, p)
	r.pen = p
}

// ClosePath closes the current contour.
func (r *Rasterizer) ClosePath() {
	r.closeContour()
	r.pen = r.start
}

func (r *Rasterizer) closeContour() {
	if r.open && r.pen != r.start {
		r.edge(r.pen, r.start)
	}
	r.open = false
}

// AddPolyline adds a contour, implicitly closed.
func (r *Rasterizer) AddPolyline(pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	r.MoveTo(pts[0])
	for _, p := range pts[1:] {
		r.LineTo(p)
	}
	r.closeContour()
}

// edge accumulates the segment a-b in device coordinates.
func (r *Rasterizer) edge(a, b geom.Point) {
	ax := float32(a.X - float64(r.bounds.Min.X))
	ay := float32(a.Y - float64(r.bounds.Min.Y))
	bx := float32(b.X - float64(r.bounds.Min.X))
	by := float32(b.Y - float64(r.bounds.Min.Y))

	dir := float32(1)
	if ay > by {
		dir, ax, ay, bx, by = -1, bx, by, ax, ay
	}
	// Nearly horizontal segments are unstable below and change coverage
	// by a negligible amount.
	if by-ay <= 0.000001 {
		return
	}
	dxdy := (bx - ax) / (by - ay)

	x := ax
	y := float32(math.Floor(float64(ay)))
	yMax := float32(math.Ceil(float64(by)))
	if yMax > float32(r.height) {
		yMax = float32(r.height)
	}
	stride := r.width + 1

	for ; y < yMax; y++ {
		dy := fmin(y+1, by) - fmax(y, ay)
		xNext := x + float32(dy*dxdy)
		if y < 0 {
			x = xNext
			continue
		}
		row := r.acc[int(y)*stride : (int(y)+1)*stride]
		d := float32(dy * dir)
		x0, x1 := x, xNext
		if x > xNext {
			x0, x1 = x1, x0
		}
		x0i := int(math.Floor(float64(x0)))
		x0Floor := float32(x0i)
		x1i := int(math.Ceil(float64(x1)))
		x1Ceil := float32(x1i)

		if x1i <= x0i+1 {
			xmf := float32(0.5*(x+xNext)) - x0Floor
			row[clampIndex(x0i, r.width)] += d - float32(d*xmf)
			row[clampIndex(x0i+1, r.width)] += float32(d * xmf)
		} else {
			s := 1 / (x1 - x0)
			x0f := x0 - x0Floor
			oneMinusX0f := 1 - x0f
			a0 := float32(0.5 * s * oneMinusX0f * oneMinusX0f)
			x1f := x1 - x1Ceil + 1
			am := float32(0.5 * s * x1f * x1f)

			row[clampIndex(x0i, r.width)] += float32(d * a0)
			if x1i == x0i+2 {
				row[clampIndex(x0i+1, r.width)] += float32(d * (1 - a0 - am))
			} else {
				a1 := float32(s * (1.5 - x0f))
				row[clampIndex(x0i+1, r.width)] += float32(d * (a1 - a0))
				dTimesS := float32(d * s)
				for xi := x0i + 2; xi < x1i-1; xi++ {
					row[clampIndex(xi, r.width)] += dTimesS
				}
				a2 := a1 + float32(s*float32(x1i-x0i-3))
				row[clampIndex(x1i-1, r.width)] += float32(d * (1 - a2 - am))
			}
			row[clampIndex(x1i, r.width)] += float32(d * am)
		}
		x = xNext
	}
}

// Coverage resolves the accumulated edges into an alpha mask with the
// rasterizer's bounds. Without antialiasing a pixel is either fully inside
// or outside, split at half coverage.
func (r *Rasterizer) Coverage(rule FillRule, antialias bool) *image.Alpha {
	r.closeContour()
	mask := image.NewAlpha(r.bounds)
	stride := r.width + 1
	for y := 0; y < r.height; y++ {
		row := r.acc[y*stride : (y+1)*stride]
		out := mask.Pix[y*mask.Stride : y*mask.Stride+r.width]
		var acc float32
		for x := 0; x < r.width; x++ {
			acc += row[x]
			c := applyFillRule(acc, rule)
			if !antialias {
				if c >= 0.5 {
					out[x] = 0xff
				}
				continue
			}
			out[x] = uint8(c*255 + 0.5)
		}
	}
	return mask
}

// applyFillRule converts an accumulated winding value to coverage.
func applyFillRule(w float32, rule FillRule) float32 {
	if w < 0 {
		w = -w
	}
	switch rule {
	case FillRuleEvenOdd:
		w = float32(math.Mod(float64(w), 2.0))
		if w > 1.0 {
			w = 2.0 - w
		}
		return w
	default:
		if w > 1 {
			return 1
		}
		return w
	}
}

// Fill rasterizes closed polylines into a mask covering bounds.
func Fill(bounds image.Rectangle, lines []geom.Polyline, rule FillRule, antialias bool) *image.Alpha {
	r := NewRasterizer(bounds)
	for _, l := range lines {
		r.AddPolyline(l.Points)
	}
	return r.Coverage(rule, antialias)
}

func clampIndex(i, width int) int {
	if i < 0 {
		return 0
	}
	if i > width {
		return width
	}
	return i
}

func fmin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
