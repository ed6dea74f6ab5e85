package drawing

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Paint is a solid paint. The zero value paints nothing.
type Paint struct {
	Color uint32 // 0xRRGGBBAA, not premultiplied
	Set   bool
}

// SolidPaint returns a paint of the 0xRRGGBBAA color rgba.
func SolidPaint(rgba uint32) Paint {
	return Paint{Color: rgba, Set: true}
}

// Source returns the paint as a premultiplied source with its alpha
// scaled by opacity. Unset paints are transparent.
func (p Paint) Source(opacity float64) surface.Source {
	if !p.Set {
		return surface.Solid(0)
	}
	r := float64(p.Color>>24) / 255
	g := float64(p.Color>>16&0xff) / 255
	b := float64(p.Color>>8&0xff) / 255
	a := float64(p.Color&0xff) / 255
	return surface.SolidRGBA(r, g, b, a*clamp01(opacity))
}

// PaintOrder is the order of the fill, stroke and marker layers.
type PaintOrder uint8

// Paint orders, named after the layers painted first.
const (
	PaintOrderNormal PaintOrder = iota // fill, stroke, markers
	PaintOrderFillMarkers
	PaintOrderStroke
	PaintOrderStrokeMarkers
	PaintOrderMarkers
	PaintOrderMarkersStroke
)

type paintLayer uint8

const (
	layerFill paintLayer = iota
	layerStroke
	layerMarkers
)

func (o PaintOrder) layers() [3]paintLayer {
	switch o {
	case PaintOrderFillMarkers:
		return [3]paintLayer{layerFill, layerMarkers, layerStroke}
	case PaintOrderStroke:
		return [3]paintLayer{layerStroke, layerFill, layerMarkers}
	case PaintOrderStrokeMarkers:
		return [3]paintLayer{layerStroke, layerMarkers, layerFill}
	case PaintOrderMarkers:
		return [3]paintLayer{layerMarkers, layerFill, layerStroke}
	case PaintOrderMarkersStroke:
		return [3]paintLayer{layerMarkers, layerStroke, layerFill}
	}
	return [3]paintLayer{layerFill, layerStroke, layerMarkers}
}

// Style is the resolved paint style of a shape or text.
type Style struct {
	Fill        Paint
	FillOpacity float64
	FillRule    FillRule
	ClipRule    FillRule

	Stroke        Paint
	StrokeOpacity float64
	StrokeWidth   float64
	LineCap       geom.LineCap
	LineJoin      geom.LineJoin
	MiterLimit    float64
	Dash          *geom.Dash

	PaintOrder PaintOrder
}

// DefaultStyle returns the initial style: black fill, no stroke.
func DefaultStyle() Style {
	return Style{
		Fill:          SolidPaint(0x000000ff),
		FillOpacity:   1,
		StrokeOpacity: 1,
		StrokeWidth:   1,
		MiterLimit:    4,
	}
}

func (s *Style) hasFill() bool {
	return s.Fill.Set && s.FillOpacity > 0
}

func (s *Style) hasStroke() bool {
	return s.Stroke.Set && s.StrokeOpacity > 0 && s.StrokeWidth > 0
}

func (s *Style) strokeStyle() geom.Stroke {
	return geom.Stroke{
		Width:      s.StrokeWidth,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
	}
}

// strokeExpansion is how far the stroke can reach outside the path in
// device pixels.
func (s *Style) strokeExpansion(ctm geom.Affine) float64 {
	w := math.Max(0.125, s.StrokeWidth*ctm.Descrim())
	if s.LineJoin == geom.LineJoinMiter && s.MiterLimit > 2 {
		return w / 2 * s.MiterLimit
	}
	return w
}

// pathBounds returns the device bounds of a path painted with style.
func pathBounds(p *geom.Path, ctm, pathTransform geom.Affine, style *Style, outline bool) image.Rectangle {
	b := geom.Bounds(p, ctm.Multiply(pathTransform))
	if b.IsEmpty() {
		return image.Rectangle{}
	}
	switch {
	case outline:
		b = b.Expand(0.5)
	case style.hasStroke():
		b = b.Expand(style.strokeExpansion(ctm))
	}
	return b.RoundOutwards()
}

// paintPath paints one layer of a styled path. pathTransform maps the
// path into the user space the style is expressed in.
func paintPath(dc *Context, p *geom.Path, ctm, pathTransform geom.Affine, style *Style, layer paintLayer, area image.Rectangle) {
	switch layer {
	case layerFill:
		if !style.hasFill() {
			return
		}
		dc.Push()
		dc.SetTransform(ctm.Multiply(pathTransform))
		dc.NewPath()
		dc.Path(p)
		dc.SetFillRule(style.FillRule)
		dc.SetSource(style.Fill.Source(style.FillOpacity))
		dc.Fill()
		dc.Pop()
	case layerStroke:
		if !style.hasStroke() {
			return
		}
		dc.Push()
		dc.SetTransform(ctm.Multiply(pathTransform))
		dc.NewPath()
		if style.Dash != nil && style.Dash.IsDashed() {
			dc.Path(p)
		} else {
			dc.PathArea(p, area, style.strokeExpansion(ctm))
		}
		dc.SetTransform(ctm)
		dc.SetSource(style.Stroke.Source(style.StrokeOpacity))
		dc.Stroke(style.strokeStyle(), style.Dash)
		dc.Pop()
	}
}

// outlinePath strokes a path as a device hairline in color.
func outlinePath(dc *Context, p *geom.Path, m geom.Affine, color uint32, area image.Rectangle) {
	dc.Push()
	dc.SetTransform(m)
	dc.NewPath()
	dc.PathArea(p, area, 1)
	dc.SetTransform(geom.Identity())
	dc.SetSourceRGBA32(color)
	dc.SetOperator(OperatorOver)
	hair := geom.DefaultStroke()
	hair.Width = 1
	dc.Stroke(hair, nil)
	dc.Pop()
}

// clipPath fills a path with the current source using rule.
func clipPath(dc *Context, p *geom.Path, m geom.Affine, rule FillRule) {
	dc.Push()
	dc.SetTransform(m)
	dc.NewPath()
	dc.Path(p)
	dc.SetFillRule(rule)
	dc.Fill()
	dc.Pop()
}

// hitPath reports whether p is within delta of the painted path. width is
// half the stroke width in device pixels; fill selects the interior test.
func hitPath(path *geom.Path, m geom.Affine, p geom.Point, delta, width float64, fill bool, rule FillRule) bool {
	wind, dist := geom.WindDistance(path, m, p, geom.DefaultTolerance)
	if fill {
		inside := wind != 0
		if rule == FillEvenOdd {
			inside = wind&1 != 0
		}
		if inside {
			return true
		}
	}
	return dist-width < delta
}
