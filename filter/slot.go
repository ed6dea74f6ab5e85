package filter

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// Standard input names.
const (
	SourceGraphic   = "SourceGraphic"
	SourceAlpha     = "SourceAlpha"
	BackgroundImage = "BackgroundImage"
	BackgroundAlpha = "BackgroundAlpha"
	FillPaint       = "FillPaint"
	StrokePaint     = "StrokePaint"
)

// unnamed holds the result of a primitive without a result name.
const unnamed = "\x00unnamed"

// Slots is the slot table of one filter evaluation. All slot surfaces
// cover the same pixblock rectangle.
type Slots struct {
	units       *Units
	graphic     *surface.Surface
	background  *surface.Surface
	fill        surface.Source
	stroke      surface.Source
	quality     Quality
	toPB        geom.Affine
	shift       image.Point
	transformed bool
	area        image.Rectangle
	slots       map[string]*surface.Surface
	areas       map[string]geom.Rect
	last        string
	writes      int
}

func newSlots(u *Units, graphic, background *surface.Surface, t Target) *Slots {
	s := &Slots{
		units:      u,
		graphic:    graphic,
		background: background,
		fill:       t.FillPaint,
		stroke:     t.StrokePaint,
		quality:    t.Quality,
		toPB:       u.DisplayToPB(),
		slots:      make(map[string]*surface.Surface),
		areas:      make(map[string]geom.Rect),
		last:       SourceGraphic,
	}
	if s.toPB.IsIntegerTranslation(1e-6) {
		s.shift = image.Pt(int(math.Round(s.toPB.C)), int(math.Round(s.toPB.F)))
		s.area = graphic.Area().Add(s.shift)
	} else {
		s.transformed = true
		s.area = geom.FromImageRect(graphic.Area()).Transform(s.toPB).RoundOutwards()
	}
	return s
}

// Units returns the coordinate systems of the evaluation.
func (s *Slots) Units() *Units { return s.units }

// Area returns the pixblock rectangle covered by every slot.
func (s *Slots) Area() image.Rectangle { return s.area }

// Quality returns the requested filter quality.
func (s *Slots) Quality() Quality { return s.quality }

// Get returns the surface stored under name, creating the standard
// inputs on first use. The empty name refers to the previous result.
// Unknown names yield a transparent surface.
func (s *Slots) Get(name string) *surface.Surface {
	if name == "" {
		name = s.last
	}
	if out, ok := s.slots[name]; ok {
		return out
	}
	var out *surface.Surface
	switch name {
	case SourceGraphic:
		out = s.toPixblock(s.graphic)
		out.SetColorInterpolationTag(surface.CISRGB)
	case SourceAlpha:
		out = s.Get(SourceGraphic).ExtractAlpha()
	case BackgroundImage:
		if s.background != nil {
			out = s.toPixblock(s.background)
			out.SetColorInterpolationTag(surface.CISRGB)
		}
	case BackgroundAlpha:
		out = s.Get(BackgroundImage).ExtractAlpha()
	case FillPaint:
		out = s.paint(s.fill)
	case StrokePaint:
		out = s.paint(s.stroke)
	}
	if out == nil {
		logger().Debug("filter: reading unset slot", "slot", name)
		out = surface.NewArea(surface.FormatARGB32, s.area)
	}
	s.slots[name] = out
	return out
}

// Set stores out under name and makes it the previous result.
func (s *Slots) Set(name string, out *surface.Surface) {
	if name == "" {
		name = unnamed
	}
	s.slots[name] = out
	s.last = name
	s.writes++
}

// Has reports whether name already holds a surface.
func (s *Slots) Has(name string) bool {
	_, ok := s.slots[name]
	return ok
}

// PrimitiveArea returns the pixblock subregion of the primitive that
// produced name, or the slot area for standard inputs.
func (s *Slots) PrimitiveArea(name string) geom.Rect {
	if name == "" {
		name = s.last
	}
	if r, ok := s.areas[name]; ok {
		return r
	}
	return geom.FromImageRect(s.area)
}

func (s *Slots) setPrimitiveArea(r geom.Rect) {
	s.areas[s.last] = r
}

// Result returns the surface stored under name mapped back to the device
// space of the source graphic.
func (s *Slots) Result(name string) *surface.Surface {
	r := s.Get(name)
	if !s.transformed {
		if s.shift == (image.Point{}) {
			return r
		}
		out := r.Copy()
		out.SetOrigin(r.Origin().Sub(s.shift))
		return out
	}
	out := surface.NewArea(r.Format(), s.graphic.Area())
	out.SetColorInterpolationTag(r.ColorInterpolation())
	if !out.IsEmpty() && !r.IsEmpty() {
		draw.BiLinear.Transform(out, s.units.PBToDisplay().Aff3(), r, r.Bounds(), draw.Src, nil)
	}
	return out
}

// toPixblock copies a device surface into pixblock space.
func (s *Slots) toPixblock(src *surface.Surface) *surface.Surface {
	out := surface.NewArea(src.Format(), s.area)
	if out.IsEmpty() || src.IsEmpty() {
		return out
	}
	if !s.transformed {
		if s.shift != (image.Point{}) {
			src = src.Copy()
			src.SetOrigin(src.Origin().Add(s.shift))
		}
		surface.Blit(src, out)
		return out
	}
	draw.BiLinear.Transform(out, s.toPB.Aff3(), src, src.Bounds(), draw.Src, nil)
	return out
}

func (s *Slots) paint(src surface.Source) *surface.Surface {
	if src == nil {
		return nil
	}
	out := surface.NewArea(surface.FormatARGB32, s.area)
	surface.Composite(out, out.Area(), src, blend.OpSource, nil, 255)
	out.SetColorInterpolationTag(surface.CISRGB)
	return out
}

// clipTo clears the pixels of out outside r.
func clipTo(out *surface.Surface, r image.Rectangle) {
	a := out.Area()
	if r.Intersect(a) == a {
		return
	}
	surface.Composite(out, a, surface.Solid(0), blend.OpClear, clipMask(a, r), 255)
}

// clipMask returns an alpha mask covering a that is opaque outside r.
func clipMask(a, r image.Rectangle) *surface.Surface {
	m := surface.NewArea(surface.FormatA8, a)
	m.Fill(0xff000000)
	in := r.Intersect(a)
	if !in.Empty() {
		hole := surface.NewArea(surface.FormatA8, in)
		surface.Blit(hole, m)
	}
	return m
}
