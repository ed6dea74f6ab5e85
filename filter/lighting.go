package filter

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/color"
	"github.com/gogpu/drawing/surface"
)

// Light is a light source for the lighting primitives: DistantLight,
// PointLight or SpotLight.
type Light interface {
	source(s *Slots, c [3]float64) lightSource
}

// lightSource returns the unit light vector and the light color reaching
// the surface point p in pixblock space.
type lightSource func(p geom.Vec3) (geom.Vec3, [3]float64)

// DistantLight is infinitely far away in the direction given by its
// angles, in degrees.
type DistantLight struct {
	Azimuth, Elevation float64
}

func (d DistantLight) source(_ *Slots, c [3]float64) lightSource {
	az := d.Azimuth * math.Pi / 180
	el := d.Elevation * math.Pi / 180
	l := geom.V3(math.Cos(az)*math.Cos(el), math.Sin(az)*math.Cos(el), math.Sin(el))
	return func(geom.Vec3) (geom.Vec3, [3]float64) { return l, c }
}

// PointLight radiates uniformly from a position in primitive units.
type PointLight struct {
	X, Y, Z float64
}

// lightPosition maps a light position into pixblock space.
func lightPosition(s *Slots, x, y, z float64) geom.Vec3 {
	m := s.Units().PrimitiveUnitsToPB()
	p := m.Apply(geom.Pt(x, y))
	return geom.V3(p.X, p.Y, z*m.Descrim())
}

func (pl PointLight) source(s *Slots, c [3]float64) lightSource {
	pos := lightPosition(s, pl.X, pl.Y, pl.Z)
	return func(p geom.Vec3) (geom.Vec3, [3]float64) {
		return pos.Sub(p).Normalize(), c
	}
}

// SpotLight is a point light restricted to a cone around the direction
// from its position to PointsAt.
type SpotLight struct {
	X, Y, Z                         float64
	PointsAtX, PointsAtY, PointsAtZ float64
	SpecularExponent                float64
	// LimitingConeAngle in degrees; zero means unrestricted.
	LimitingConeAngle float64
}

func (sl SpotLight) source(s *Slots, c [3]float64) lightSource {
	pos := lightPosition(s, sl.X, sl.Y, sl.Z)
	at := lightPosition(s, sl.PointsAtX, sl.PointsAtY, sl.PointsAtZ)
	dir := at.Sub(pos).Normalize()
	cone := 90.0
	if sl.LimitingConeAngle != 0 {
		cone = math.Abs(sl.LimitingConeAngle)
	}
	cosCone := math.Cos(cone * math.Pi / 180)
	exp := sl.SpecularExponent
	if exp == 0 {
		exp = 1
	}
	return func(p geom.Vec3) (geom.Vec3, [3]float64) {
		l := pos.Sub(p).Normalize()
		spmod := -l.Dot(dir)
		if spmod <= cosCone {
			spmod = 0
		} else {
			spmod = math.Pow(spmod, exp)
		}
		return l, [3]float64{c[0] * spmod, c[1] * spmod, c[2] * spmod}
	}
}

// lightingColor returns the unpremultiplied 0xRRGGBB color in the
// channel space ci.
func lightingColor(rgb uint32, ci surface.ColorInterpolation) [3]float64 {
	ch := [3]uint8{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb)}
	var out [3]float64
	for i, v := range ch {
		if ci == surface.CILinearRGB {
			v = color.SRGBToLinear8(v)
		}
		out[i] = float64(v)
	}
	return out
}

func lightByte(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint32(v)
}

// lighting holds what the two lighting primitives share.
type lighting struct {
	Light        Light
	SurfaceScale float64
	// LightingColor is an unpremultiplied 0xRRGGBB color.
	LightingColor uint32
}

func (l *lighting) prepare(s *Slots, in string, ci surface.ColorInterpolation) (*surface.Surface, *surface.Surface, lightSource) {
	src := s.Get(in)
	out := surface.NewArea(surface.FormatARGB32, src.Area())
	out.SetColorInterpolationTag(ci)
	if l.Light == nil {
		return src, out, nil
	}
	return src, out, l.Light.source(s, lightingColor(l.LightingColor, ci))
}

// DiffuseLighting lights the alpha channel of its input as a bump map
// with the Lambertian model. The output is opaque.
type DiffuseLighting struct {
	Base
	lighting
	DiffuseConstant float64
}

// NewDiffuseLighting returns diffuse lighting with a white light, unit
// surface scale and unit diffuse constant.
func NewDiffuseLighting(light Light) *DiffuseLighting {
	return &DiffuseLighting{
		lighting:        lighting{Light: light, SurfaceScale: 1, LightingColor: 0xffffff},
		DiffuseConstant: 1,
	}
}

// AreaEnlarge grows area by the one pixel the surface normal reads.
func (d *DiffuseLighting) AreaEnlarge(area image.Rectangle, _ geom.Affine) image.Rectangle {
	return geom.ExpandInt(area, 1, 1)
}

// Complexity returns 9.
func (d *DiffuseLighting) Complexity(geom.Affine) float64 { return 9 }

func (d *DiffuseLighting) render(s *Slots, ci surface.ColorInterpolation) {
	in, out, light := d.prepare(s, d.In, ci)
	if light == nil {
		out.Fill(0xff000000)
		s.Set(d.Result, out)
		return
	}
	surface.SynthesizeAll(out, diffuseKernel(in, light, d.SurfaceScale, d.DiffuseConstant))
	s.Set(d.Result, out)
}

// diffuseKernel returns the diffuse lighting of the height map in.
func diffuseKernel(in *surface.Surface, light lightSource, scale, kd float64) surface.SynthFunc {
	o := in.Origin()
	return func(x, y int) uint32 {
		n := in.SurfaceNormalAt(x, y, scale)
		z := scale * float64(in.AlphaAt(x, y)) / 255
		l, c := light(geom.V3(float64(o.X+x), float64(o.Y+y), z))
		k := kd * n.Dot(l)
		return 0xff000000 | lightByte(k*c[0])<<16 | lightByte(k*c[1])<<8 | lightByte(k*c[2])
	}
}

// SpecularLighting lights the alpha channel of its input as a bump map
// with the Phong model. The output alpha is the strongest channel.
type SpecularLighting struct {
	Base
	lighting
	SpecularConstant float64
	SpecularExponent float64
}

// NewSpecularLighting returns specular lighting with a white light, unit
// surface scale, constant and exponent.
func NewSpecularLighting(light Light) *SpecularLighting {
	return &SpecularLighting{
		lighting:         lighting{Light: light, SurfaceScale: 1, LightingColor: 0xffffff},
		SpecularConstant: 1,
		SpecularExponent: 1,
	}
}

// AreaEnlarge grows area by the one pixel the surface normal reads.
func (sp *SpecularLighting) AreaEnlarge(area image.Rectangle, _ geom.Affine) image.Rectangle {
	return geom.ExpandInt(area, 1, 1)
}

// Complexity returns 9.
func (sp *SpecularLighting) Complexity(geom.Affine) float64 { return 9 }

func (sp *SpecularLighting) render(s *Slots, ci surface.ColorInterpolation) {
	in, out, light := sp.prepare(s, sp.In, ci)
	if light != nil {
		surface.SynthesizeAll(out, specularKernel(in, light, sp.SurfaceScale, sp.SpecularConstant, sp.SpecularExponent))
	}
	s.Set(sp.Result, out)
}

// specularKernel returns the specular lighting of the height map in.
func specularKernel(in *surface.Surface, light lightSource, scale, ks, exp float64) surface.SynthFunc {
	o := in.Origin()
	eye := geom.V3(0, 0, 1)
	return func(x, y int) uint32 {
		n := in.SurfaceNormalAt(x, y, scale)
		z := scale * float64(in.AlphaAt(x, y)) / 255
		l, c := light(geom.V3(float64(o.X+x), float64(o.Y+y), z))
		h := l.Add(eye).Normalize()
		var k float64
		if nh := n.Dot(h); nh > 0 {
			k = ks * math.Pow(nh, exp)
		}
		r, g, b := lightByte(k*c[0]), lightByte(k*c[1]), lightByte(k*c[2])
		return surface.PremulWord(max(r, g, b), r, g, b)
	}
}
