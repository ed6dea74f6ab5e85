package scene

import (
	"fmt"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/surface"
)

func buildFilter(doc *Filter) (*filter.Filter, error) {
	warnExtra("filter", doc.Extra)
	f := filter.New()
	if doc.Units == "userSpaceOnUse" {
		f.Units = filter.UserSpaceOnUse
	}
	if doc.PrimitiveUnits == "objectBoundingBox" {
		f.PrimitiveUnits = filter.ObjectBoundingBox
	}
	if len(doc.Region) == 4 {
		f.Region = region(doc.Region)
	}
	if len(doc.Resolution) > 0 {
		f.ResolutionX = doc.Resolution[0]
		f.ResolutionY = doc.Resolution[len(doc.Resolution)-1]
	}
	if doc.ColorInterpolation != "" {
		f.ColorInterpolation = colorInterpolation(doc.ColorInterpolation)
	}
	for i := range doc.Primitives {
		p, err := buildPrimitive(&doc.Primitives[i])
		if err != nil {
			return nil, err
		}
		f.Add(p)
	}
	return f, nil
}

func region(v []float64) filter.Region {
	return filter.Region{X: filter.L(v[0]), Y: filter.L(v[1]), Width: filter.L(v[2]), Height: filter.L(v[3])}
}

func colorInterpolation(s string) surface.ColorInterpolation {
	switch s {
	case "sRGB":
		return surface.CISRGB
	case "linearRGB":
		return surface.CILinearRGB
	}
	return surface.CIAuto
}

// pair returns v as an x, y pair; a single value applies to both.
func pair(v []float64) (float64, float64) {
	switch len(v) {
	case 0:
		return 0, 0
	case 1:
		return v[0], v[0]
	}
	return v[0], v[1]
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func buildPrimitive(doc *Primitive) (filter.Primitive, error) {
	warnExtra("primitive "+doc.Type, doc.Extra)
	base := filter.Base{
		In:                 doc.In,
		Result:             doc.Result,
		ColorInterpolation: colorInterpolation(doc.ColorInterpolation),
	}
	if len(doc.Subregion) == 4 {
		base.Subregion = region(doc.Subregion)
	}

	switch doc.Type {
	case "blur":
		sx, sy := pair(doc.StdDeviation)
		return &filter.GaussianBlur{Base: base, StdDeviationX: sx, StdDeviationY: sy}, nil

	case "offset":
		return &filter.Offset{Base: base, Dx: doc.Dx, Dy: doc.Dy}, nil

	case "flood":
		rgba, _, err := ParseColor(doc.Color)
		if err != nil {
			return nil, err
		}
		return &filter.Flood{Base: base, Color: rgba >> 8, Opacity: orDefault(doc.Opacity, 1) * float64(rgba&0xff) / 255}, nil

	case "composite":
		c := &filter.Composite{Base: base, In2: doc.In2}
		switch doc.Operator {
		case "", "over":
			c.Operator = filter.CompositeOver
		case "in":
			c.Operator = filter.CompositeIn
		case "out":
			c.Operator = filter.CompositeOut
		case "atop":
			c.Operator = filter.CompositeAtop
		case "xor":
			c.Operator = filter.CompositeXor
		case "arithmetic":
			c.Operator = filter.CompositeArithmetic
			var k [4]float64
			copy(k[:], doc.K)
			c.K1, c.K2, c.K3, c.K4 = k[0], k[1], k[2], k[3]
		default:
			return nil, fmt.Errorf("%w: composite operator %q", ErrInvalidValue, doc.Operator)
		}
		return c, nil

	case "blend":
		mode := drawing.BlendNormal
		if doc.Mode != "" {
			m, ok := drawing.ParseBlendMode(doc.Mode)
			if !ok {
				return nil, fmt.Errorf("%w: blend mode %q", ErrInvalidValue, doc.Mode)
			}
			mode = m
		}
		return &filter.Blend{Base: base, In2: doc.In2, Mode: mode}, nil

	case "color-matrix":
		cm := &filter.ColorMatrix{Base: base, Values: doc.Values}
		switch doc.MatrixType {
		case "", "matrix":
			cm.Type = filter.ColorMatrixMatrix
		case "saturate":
			cm.Type = filter.ColorMatrixSaturate
		case "hueRotate":
			cm.Type = filter.ColorMatrixHueRotate
		case "luminanceToAlpha":
			cm.Type = filter.ColorMatrixLuminanceToAlpha
		default:
			return nil, fmt.Errorf("%w: color matrix type %q", ErrInvalidValue, doc.MatrixType)
		}
		return cm, nil

	case "component-transfer":
		ct := &filter.ComponentTransfer{Base: base}
		for ch, fn := range doc.Funcs {
			tf, err := transfer(fn)
			if err != nil {
				return nil, err
			}
			switch ch {
			case "r":
				ct.R = tf
			case "g":
				ct.G = tf
			case "b":
				ct.B = tf
			case "a":
				ct.A = tf
			default:
				return nil, fmt.Errorf("%w: transfer channel %q", ErrInvalidValue, ch)
			}
		}
		return ct, nil

	case "convolve":
		ox, oy := 3, 3
		if len(doc.Order) > 0 {
			ox, oy = doc.Order[0], doc.Order[len(doc.Order)-1]
		}
		c := filter.NewConvolveMatrix(ox, oy, doc.Kernel...)
		c.Base = base
		c.Divisor = doc.Divisor
		c.Bias = doc.Bias
		c.PreserveAlpha = doc.PreserveAlpha
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c, nil

	case "morphology":
		rx, ry := pair(doc.Radius)
		m := &filter.Morphology{Base: base, RadiusX: rx, RadiusY: ry}
		switch doc.Operator {
		case "", "erode":
			m.Operator = filter.Erode
		case "dilate":
			m.Operator = filter.Dilate
		default:
			return nil, fmt.Errorf("%w: morphology operator %q", ErrInvalidValue, doc.Operator)
		}
		return m, nil

	case "merge":
		return &filter.Merge{Base: base, Inputs: doc.Inputs}, nil

	case "tile":
		return &filter.Tile{Base: base}, nil

	case "turbulence":
		fx, fy := pair(doc.BaseFrequency)
		return &filter.Turbulence{
			Base:           base,
			BaseFrequencyX: fx,
			BaseFrequencyY: fy,
			NumOctaves:     max(doc.Octaves, 1),
			Seed:           doc.Seed,
			StitchTiles:    doc.Stitch,
			FractalNoise:   doc.Fractal,
		}, nil

	case "displacement":
		xc, err := channel(doc.XChannel)
		if err != nil {
			return nil, err
		}
		yc, err := channel(doc.YChannel)
		if err != nil {
			return nil, err
		}
		return &filter.DisplacementMap{Base: base, In2: doc.In2, Scale: doc.Scale, XChannel: xc, YChannel: yc}, nil

	case "diffuse-lighting", "specular-lighting":
		light, err := buildLight(doc.Light)
		if err != nil {
			return nil, err
		}
		color := uint32(0xffffff)
		if doc.LightingColor != "" {
			rgba, _, err := ParseColor(doc.LightingColor)
			if err != nil {
				return nil, err
			}
			color = rgba >> 8
		}
		if doc.Type == "diffuse-lighting" {
			d := filter.NewDiffuseLighting(light)
			d.Base = base
			d.SurfaceScale = orDefault(doc.SurfaceScale, 1)
			d.LightingColor = color
			d.DiffuseConstant = orDefault(doc.DiffuseConstant, 1)
			return d, nil
		}
		s := filter.NewSpecularLighting(light)
		s.Base = base
		s.SurfaceScale = orDefault(doc.SurfaceScale, 1)
		s.LightingColor = color
		s.SpecularConstant = orDefault(doc.SpecularConstant, 1)
		s.SpecularExponent = orDefault(doc.SpecularExponent, 1)
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, doc.Type)
}

func transfer(t Transfer) (filter.TransferFunc, error) {
	switch t.Type {
	case "", "identity":
		return filter.TransferFunc{}, nil
	case "table":
		return filter.Table(t.Values...), nil
	case "discrete":
		return filter.Discrete(t.Values...), nil
	case "linear":
		return filter.TransferFunc{Type: filter.TransferLinear, Slope: t.Slope, Intercept: t.Intercept}, nil
	case "gamma":
		return filter.TransferFunc{Type: filter.TransferGamma, Amplitude: t.Amplitude, Exponent: t.Exponent, Offset: t.Offset}, nil
	}
	return filter.TransferFunc{}, fmt.Errorf("%w: transfer type %q", ErrInvalidValue, t.Type)
}

func channel(s string) (filter.Channel, error) {
	switch s {
	case "", "A":
		return filter.ChannelA, nil
	case "R":
		return filter.ChannelR, nil
	case "G":
		return filter.ChannelG, nil
	case "B":
		return filter.ChannelB, nil
	}
	return 0, fmt.Errorf("%w: channel %q", ErrInvalidValue, s)
}

func buildLight(l *Light) (filter.Light, error) {
	if l == nil {
		return filter.DistantLight{Azimuth: 45, Elevation: 45}, nil
	}
	switch l.Type {
	case "", "distant":
		return filter.DistantLight{Azimuth: l.Azimuth, Elevation: l.Elevation}, nil
	case "point":
		return filter.PointLight{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]}, nil
	case "spot":
		return filter.SpotLight{
			X: l.Position[0], Y: l.Position[1], Z: l.Position[2],
			PointsAtX: l.PointsAt[0], PointsAtY: l.PointsAt[1], PointsAtZ: l.PointsAt[2],
			SpecularExponent:  l.SpecularExponent,
			LimitingConeAngle: l.LimitingConeAngle,
		}, nil
	}
	return nil, fmt.Errorf("%w: light type %q", ErrInvalidValue, l.Type)
}
