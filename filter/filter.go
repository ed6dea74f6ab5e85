package filter

import (
	"errors"
	"image"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

var (
	// ErrInvalidKernel is returned for convolution kernels whose order
	// is not positive or whose matrix does not have orderX*orderY values.
	ErrInvalidKernel = errors.New("filter: invalid convolution kernel")

	// ErrInvalidTarget is returned when the convolution target lies
	// outside the kernel.
	ErrInvalidTarget = errors.New("filter: convolution target outside kernel")
)

// Quality trades filter accuracy for speed.
type Quality int8

const (
	// QualityBest renders at full resolution.
	QualityBest Quality = iota
	// QualityBetter renders at full resolution.
	QualityBetter
	// QualityNormal limits the filter raster to 256 pixels per side.
	QualityNormal
	// QualityWorse limits the filter raster to 64 pixels per side.
	QualityWorse
	// QualityWorst limits the filter raster to 32 pixels per side.
	QualityWorst
)

func (q Quality) resolutionLimit() int {
	switch q {
	case QualityNormal:
		return 256
	case QualityWorse:
		return 64
	case QualityWorst:
		return 32
	}
	return -1
}

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityBest:
		return "best"
	case QualityBetter:
		return "better"
	case QualityNormal:
		return "normal"
	case QualityWorse:
		return "worse"
	case QualityWorst:
		return "worst"
	}
	return "unknown"
}

// Target describes the item a filter is applied to.
type Target struct {
	// CTM maps item user space to device space.
	CTM geom.Affine
	// BBox is the item bounding box in user space.
	BBox geom.Rect
	// FillPaint and StrokePaint feed the paint inputs. Nil reads as
	// transparent.
	FillPaint   surface.Source
	StrokePaint surface.Source
	Quality     Quality
}

// Primitive is one step of a filter graph. The set of primitives is
// closed; every implementation lives in this package.
type Primitive interface {
	// AreaEnlarge grows a device rectangle to the input area the
	// primitive needs to produce it.
	AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle
	// CanHandleAffine reports whether the primitive can run directly in
	// a space related to user space by m.
	CanHandleAffine(m geom.Affine) bool
	// Complexity is the relative per-pixel cost.
	Complexity(ctm geom.Affine) float64
	// UsesBackground reports whether the primitive reads the background.
	UsesBackground() bool

	base() *Base
	render(s *Slots, ci surface.ColorInterpolation)
}

// Base holds the fields common to all primitives.
type Base struct {
	// In names the input slot; empty reads the previous result.
	In string
	// Result names the output slot; empty writes an unnamed result.
	Result string
	// Subregion clips the output. Unset coordinates default to the
	// filter region.
	Subregion Region
	// ColorInterpolation is the space the primitive computes in. CIAuto
	// defers to the filter.
	ColorInterpolation surface.ColorInterpolation
}

func (b *Base) base() *Base { return b }

// AreaEnlarge returns area unchanged.
func (b *Base) AreaEnlarge(area image.Rectangle, _ geom.Affine) image.Rectangle {
	return area
}

// CanHandleAffine returns false.
func (b *Base) CanHandleAffine(geom.Affine) bool { return false }

// Complexity returns 1.
func (b *Base) Complexity(geom.Affine) float64 { return 1 }

// UsesBackground reports whether In is a background input.
func (b *Base) UsesBackground() bool {
	return isBackground(b.In)
}

func isBackground(name string) bool {
	return name == BackgroundImage || name == BackgroundAlpha
}

// Filter is an ordered list of primitives with a filter region.
type Filter struct {
	// Units is the coordinate system of Region.
	Units UnitType
	// PrimitiveUnits is the coordinate system of primitive parameters
	// and subregions.
	PrimitiveUnits UnitType
	// Region is the filter region.
	Region Region
	// ResolutionX and ResolutionY fix the raster size of the filter
	// region. Zero derives it from the transform.
	ResolutionX, ResolutionY int
	// ColorInterpolation is used by primitives that leave theirs CIAuto.
	ColorInterpolation surface.ColorInterpolation
	// Output names the slot painted back; empty uses the last result.
	Output string

	primitives []Primitive
}

// New returns a filter with the SVG defaults: bounding-box region of
// -10%/-10%/120%/120%, user-space primitives and linearRGB.
func New(primitives ...Primitive) *Filter {
	return &Filter{
		Units:              ObjectBoundingBox,
		PrimitiveUnits:     UserSpaceOnUse,
		Region:             DefaultRegion,
		ColorInterpolation: surface.CILinearRGB,
		primitives:         primitives,
	}
}

// Add appends a primitive.
func (f *Filter) Add(p Primitive) {
	f.primitives = append(f.primitives, p)
}

// Primitives returns the primitives in evaluation order.
func (f *Filter) Primitives() []Primitive {
	return f.primitives
}

// Len returns the number of primitives.
func (f *Filter) Len() int {
	return len(f.primitives)
}

// EffectArea returns the filter region in user space for an item with
// bounding box bbox. The result is empty when the region is relative to
// an empty bounding box.
func (f *Filter) EffectArea(bbox geom.Rect) geom.Rect {
	r := f.Region
	if f.Units == ObjectBoundingBox || !r.X.Set || !r.Y.Set || !r.Width.Set || !r.Height.Set {
		if bbox.IsEmpty() {
			return geom.EmptyRect()
		}
	}
	if f.Units == ObjectBoundingBox {
		w, h := bbox.Width(), bbox.Height()
		return geom.XYWH(
			bbox.Min.X+r.X.or(-0.1)*w,
			bbox.Min.Y+r.Y.or(-0.1)*h,
			r.Width.or(1.2)*w,
			r.Height.or(1.2)*h,
		)
	}
	x, y := bbox.Min.X-0.1*bbox.Width(), bbox.Min.Y-0.1*bbox.Height()
	w, h := 1.2*bbox.Width(), 1.2*bbox.Height()
	return geom.XYWH(r.X.or(x), r.Y.or(y), r.Width.or(w), r.Height.or(h))
}

// AreaEnlarge grows a device rectangle by the dependency area of every
// primitive.
func (f *Filter) AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle {
	for _, p := range f.primitives {
		area = p.AreaEnlarge(area, ctm)
	}
	return area
}

// Complexity returns the cost factor of the filter relative to a plain
// copy: 1 plus the extra cost of every primitive.
func (f *Filter) Complexity(ctm geom.Affine) float64 {
	c := 1.0
	for _, p := range f.primitives {
		c += p.Complexity(ctm) - 1
	}
	return c
}

// UsesBackground reports whether any primitive reads the background.
func (f *Filter) UsesBackground() bool {
	for _, p := range f.primitives {
		if p.UsesBackground() {
			return true
		}
	}
	return false
}

// Render applies the filter to graphic, the rendering of the item in
// device space, and stores the result in graphic. background holds the
// accumulated background for BackgroundImage, or nil. A filter without
// primitives clears graphic.
func (f *Filter) Render(t Target, graphic, background *surface.Surface) {
	if len(f.primitives) == 0 {
		graphic.Clear()
		return
	}
	area := f.EffectArea(t.BBox)
	if area.IsEmpty() {
		return
	}
	u := NewUnits(f.Units, f.PrimitiveUnits, t.CTM, t.BBox, area)
	rx, ry := resolution(area, t.CTM, f.ResolutionX, f.ResolutionY, t.Quality.resolutionLimit())
	if !(rx > 0 && ry > 0) {
		graphic.Clear()
		return
	}
	u.SetResolution(rx, ry)
	u.SetAutomaticResolution(f.ResolutionX <= 0)

	pb := u.DisplayToPB()
	for _, p := range f.primitives {
		if !p.CanHandleAffine(pb) {
			u.SetAxisAligned(true)
			break
		}
	}

	s := newSlots(u, graphic, background, t)
	for _, p := range f.primitives {
		b := p.base()
		ci := b.ColorInterpolation
		if ci == surface.CIAuto {
			ci = f.ColorInterpolation
		}
		n := s.writes
		p.render(s, ci)
		if s.writes == n {
			continue
		}
		sub := u.PrimitiveArea(b.Subregion).Transform(u.UserToPB())
		s.setPrimitiveArea(sub)
		if b.Subregion.X.Set || b.Subregion.Y.Set || b.Subregion.Width.Set || b.Subregion.Height.Set {
			clipTo(s.Get(s.last), sub.RoundOutwards())
		}
	}

	result := s.Result(f.Output)
	result.SetColorInterpolation(surface.CISRGB)
	graphic.Clear()
	surface.Blit(result, graphic)
}
