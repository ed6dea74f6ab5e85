package filter

import (
	"math"

	"github.com/gogpu/drawing/geom"
)

// UnitType selects the coordinate system of filter and primitive
// regions and of primitive parameters.
type UnitType uint8

const (
	// UserSpaceOnUse interprets values in the item's user space.
	UserSpaceOnUse UnitType = iota
	// ObjectBoundingBox interprets values as fractions of the item's
	// bounding box.
	ObjectBoundingBox
)

// String returns the SVG keyword.
func (u UnitType) String() string {
	if u == ObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

// Length is an optional region coordinate.
type Length struct {
	Value float64
	Set   bool
}

// L returns a set Length.
func L(v float64) Length {
	return Length{Value: v, Set: true}
}

func (l Length) or(def float64) float64 {
	if l.Set {
		return l.Value
	}
	return def
}

// Region is a filter region or primitive subregion. Unset coordinates
// take their default.
type Region struct {
	X, Y, Width, Height Length
}

// DefaultRegion is the filter region used when none is given:
// -10%, -10%, 120%, 120% of the bounding box.
var DefaultRegion = Region{X: L(-0.1), Y: L(-0.1), Width: L(1.2), Height: L(1.2)}

// Units holds the coordinate systems of one filter evaluation: user
// space, the primitive units and pixblock space, the raster the
// primitives actually run on.
type Units struct {
	filterUnits    UnitType
	primitiveUnits UnitType
	ctm            geom.Affine
	bbox           geom.Rect
	area           geom.Rect
	resX, resY     float64
	automatic      bool
	axisAligned    bool
}

// NewUnits returns the units of a filter applied with ctm to an item
// whose user-space bounding box is bbox. area is the filter region in
// user space.
func NewUnits(filterUnits, primitiveUnits UnitType, ctm geom.Affine, bbox, area geom.Rect) *Units {
	return &Units{
		filterUnits:    filterUnits,
		primitiveUnits: primitiveUnits,
		ctm:            ctm,
		bbox:           bbox,
		area:           area,
		automatic:      true,
	}
}

// FilterUnits returns the units of the filter region.
func (u *Units) FilterUnits() UnitType { return u.filterUnits }

// PrimitiveUnits returns the units of primitive parameters.
func (u *Units) PrimitiveUnits() UnitType { return u.primitiveUnits }

// CTM returns the user to device transform.
func (u *Units) CTM() geom.Affine { return u.ctm }

// ItemBBox returns the item bounding box in user space.
func (u *Units) ItemBBox() geom.Rect { return u.bbox }

// FilterArea returns the filter region in user space.
func (u *Units) FilterArea() geom.Rect { return u.area }

// SetResolution sets the pixblock size of the filter region.
func (u *Units) SetResolution(x, y float64) {
	u.resX, u.resY = x, y
}

// SetAutomaticResolution records whether the resolution was derived from
// the transform rather than given explicitly.
func (u *Units) SetAutomaticResolution(automatic bool) {
	u.automatic = automatic
}

// SetAxisAligned forces pixblock space to be a scaled copy of user space
// without rotation or skew.
func (u *Units) SetAxisAligned(aligned bool) {
	u.axisAligned = aligned
}

// AxisAligned reports whether pixblock space drops the rotation of the
// transform.
func (u *Units) AxisAligned() bool { return u.axisAligned }

// UserToPB returns the transform from user space to pixblock space.
func (u *Units) UserToPB() geom.Affine {
	m := u.ctm
	if (u.axisAligned || !u.automatic) && u.area.Width() > 0 && u.area.Height() > 0 {
		m = geom.Affine{
			A: u.resX / u.area.Width(),
			E: u.resY / u.area.Height(),
			C: u.ctm.C,
			F: u.ctm.F,
		}
	}
	return m
}

// UnitsToPB returns the transform from the given units to pixblock space.
func (u *Units) UnitsToPB(units UnitType) geom.Affine {
	m := u.UserToPB()
	if units == ObjectBoundingBox && !u.bbox.IsEmpty() {
		m = m.Multiply(geom.Translate(u.bbox.Min.X, u.bbox.Min.Y)).
			Multiply(geom.Scale(u.bbox.Width(), u.bbox.Height()))
	}
	return m
}

// PrimitiveUnitsToPB returns the transform from primitive units to
// pixblock space.
func (u *Units) PrimitiveUnitsToPB() geom.Affine {
	return u.UnitsToPB(u.primitiveUnits)
}

// PBToDisplay returns the transform from pixblock space to device space.
func (u *Units) PBToDisplay() geom.Affine {
	return u.ctm.Multiply(u.UserToPB().Invert())
}

// DisplayToPB returns the transform from device space to pixblock space.
func (u *Units) DisplayToPB() geom.Affine {
	return u.PBToDisplay().Invert()
}

// PrimitiveArea resolves a primitive subregion to user space. Unset
// coordinates default to the filter region.
func (u *Units) PrimitiveArea(r Region) geom.Rect {
	fa := u.area
	if fa.IsEmpty() {
		return geom.R(0, 0, 0, 0)
	}
	x, y := fa.Min.X, fa.Min.Y
	w, h := fa.Width(), fa.Height()
	if u.primitiveUnits == ObjectBoundingBox {
		bb := u.bbox
		if bb.IsEmpty() {
			bb = fa
		}
		if r.X.Set {
			x = bb.Min.X + bb.Width()*r.X.Value
		}
		if r.Y.Set {
			y = bb.Min.Y + bb.Height()*r.Y.Value
		}
		if r.Width.Set {
			w = bb.Width() * r.Width.Value
		}
		if r.Height.Set {
			h = bb.Height() * r.Height.Value
		}
	} else {
		x, y = r.X.or(x), r.Y.or(y)
		w, h = r.Width.or(w), r.Height.or(h)
	}
	return geom.XYWH(x, y, w, h)
}

// resolution returns the pixblock size of area under ctm, limited by
// limit when it is positive. xPixels and yPixels give an explicit
// resolution when positive.
func resolution(area geom.Rect, ctm geom.Affine, xPixels, yPixels int, limit int) (float64, float64) {
	if xPixels > 0 {
		x := float64(xPixels)
		if yPixels > 0 {
			return x, float64(yPixels)
		}
		return x, x * area.Height() / area.Width()
	}
	o := ctm.Apply(area.Min)
	i := ctm.Apply(geom.Pt(area.Max.X, area.Min.Y))
	j := ctm.Apply(geom.Pt(area.Min.X, area.Max.Y))
	iLen, jLen := o.Distance(i), o.Distance(j)
	if lim := float64(limit); limit > 0 && (iLen > lim || jLen > lim) {
		aspect := iLen / jLen
		if iLen > jLen {
			iLen, jLen = lim, lim/aspect
		} else {
			jLen, iLen = lim, lim*aspect
		}
	}
	if math.IsNaN(iLen) || math.IsNaN(jLen) {
		return 0, 0
	}
	return iLen, jLen
}
