package filter

import (
	"math"

	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/surface"
)

// TransferType is the kind of a component transfer function.
type TransferType uint8

const (
	TransferIdentity TransferType = iota
	TransferTable
	TransferDiscrete
	TransferLinear
	TransferGamma
)

// TransferFunc maps one channel. The zero value is the identity.
type TransferFunc struct {
	Type        TransferType
	TableValues []float64
	Slope       float64
	Intercept   float64
	Amplitude   float64
	Exponent    float64
	Offset      float64
}

// Table returns a piecewise linear transfer function.
func Table(values ...float64) TransferFunc {
	return TransferFunc{Type: TransferTable, TableValues: values}
}

// Discrete returns a step transfer function.
func Discrete(values ...float64) TransferFunc {
	return TransferFunc{Type: TransferDiscrete, TableValues: values}
}

// Linear returns slope*c + intercept.
func Linear(slope, intercept float64) TransferFunc {
	return TransferFunc{Type: TransferLinear, Slope: slope, Intercept: intercept}
}

// Gamma returns amplitude*c^exponent + offset.
func Gamma(amplitude, exponent, offset float64) TransferFunc {
	return TransferFunc{Type: TransferGamma, Amplitude: amplitude, Exponent: exponent, Offset: offset}
}

func unit255(v float64) uint32 {
	return uint32(math.Round(max(0, min(v, 1)) * 255))
}

// lut returns the function as a 256 entry table, or nil for the identity.
func (f TransferFunc) lut() *[256]uint8 {
	var t [256]uint8
	switch f.Type {
	case TransferTable:
		n := uint32(len(f.TableValues))
		if n == 0 {
			return nil
		}
		v := make([]uint32, n)
		for i, x := range f.TableValues {
			v[i] = unit255(x)
		}
		for c := uint32(0); c < 256; c++ {
			if n == 1 {
				t[c] = uint8(v[0])
				continue
			}
			k := (n - 1) * c
			dx := k % 255
			k /= 255
			if k >= n-1 {
				t[c] = uint8(v[n-1])
				continue
			}
			r := int32(v[k])*255 + (int32(v[k+1])-int32(v[k]))*int32(dx)
			t[c] = uint8((r + 127) / 255)
		}
	case TransferDiscrete:
		n := uint32(len(f.TableValues))
		if n == 0 {
			return nil
		}
		for c := uint32(0); c < 256; c++ {
			k := n * c / 255
			if k == n {
				k--
			}
			t[c] = uint8(unit255(f.TableValues[k]))
		}
	case TransferLinear:
		slope := int32(math.Round(f.Slope * 255))
		icpt := int32(math.Round(f.Intercept * 255 * 255))
		for c := int32(0); c < 256; c++ {
			r := max(0, min(slope*c+icpt, 255*255))
			t[c] = uint8((r + 127) / 255)
		}
	case TransferGamma:
		for c := 0; c < 256; c++ {
			v := f.Amplitude*math.Pow(float64(c)/255, f.Exponent) + f.Offset
			t[c] = uint8(unit255(v))
		}
	default:
		return nil
	}
	return &t
}

// ComponentTransferKernel returns the kernel applying one transfer
// function per channel to unpremultiplied values.
func ComponentTransferKernel(r, g, b, a TransferFunc) surface.FilterFunc {
	tables := [4]*[256]uint8{r.lut(), g.lut(), b.lut(), a.lut()}
	return func(px uint32) uint32 {
		ch := [4]uint32{}
		ch[3], ch[0], ch[1], ch[2] = surface.UnpremulWord(px)
		if px>>24 == 0 {
			ch = [4]uint32{}
		}
		for i, t := range tables {
			if t != nil {
				ch[i] = uint32(t[ch[i]])
			}
		}
		if ch[3] == 0 {
			return 0
		}
		return blend.Pack(ch[3],
			surface.Premul(ch[0], ch[3]),
			surface.Premul(ch[1], ch[3]),
			surface.Premul(ch[2], ch[3]))
	}
}

// ComponentTransfer remaps each channel independently.
type ComponentTransfer struct {
	Base
	R, G, B, A TransferFunc
}

func (c *ComponentTransfer) render(s *Slots, ci surface.ColorInterpolation) {
	in := s.Get(c.In)
	in.SetColorInterpolation(ci)
	out := in.CreateIdentical()
	out.SetColorInterpolationTag(in.ColorInterpolation())
	surface.Filter(in, out, ComponentTransferKernel(c.R, c.G, c.B, c.A))
	s.Set(c.Result, out)
}
