package filter

import (
	"image"
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Channel selects one channel of a pixel.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelR
	ChannelG
	ChannelB
)

func (c Channel) shift() uint {
	switch c {
	case ChannelR:
		return 16
	case ChannelG:
		return 8
	case ChannelB:
		return 0
	}
	return 24
}

// channelValue returns channel c of the premultiplied pixel px, with
// color channels unpremultiplied.
func channelValue(px uint32, c Channel) uint32 {
	v := (px >> c.shift()) & 0xff
	if a := px >> 24; c != ChannelA && a != 0 {
		v = min(surface.Unpremul(v, a), 255)
	}
	return v
}

// DisplacementMap moves the pixels of In by offsets read from two
// channels of In2.
type DisplacementMap struct {
	Base
	In2      string
	Scale    float64
	XChannel Channel
	YChannel Channel
}

// AreaEnlarge grows area by the largest displacement under ctm.
func (d *DisplacementMap) AreaEnlarge(area image.Rectangle, ctm geom.Affine) image.Rectangle {
	s := math.Abs(d.Scale) / 2
	dx := int(math.Ceil(s*(math.Abs(ctm.A)+math.Abs(ctm.B)))) + 2
	dy := int(math.Ceil(s*(math.Abs(ctm.D)+math.Abs(ctm.E)))) + 2
	return geom.ExpandInt(area, dx, dy)
}

// Complexity returns 3.
func (d *DisplacementMap) Complexity(geom.Affine) float64 { return 3 }

// UsesBackground reports whether either input is a background.
func (d *DisplacementMap) UsesBackground() bool {
	return isBackground(d.In) || isBackground(d.In2)
}

func (d *DisplacementMap) render(s *Slots, ci surface.ColorInterpolation) {
	texture := s.Get(d.In)
	m := s.Get(d.In2)
	m.SetColorInterpolation(ci)

	out := texture.CreateIdentical()
	p2pb := s.Units().PrimitiveUnitsToPB()
	sx := d.Scale * p2pb.ExpansionX()
	sy := d.Scale * p2pb.ExpansionY()
	surface.SynthesizeAll(out, DisplacementKernel(texture, m, d.XChannel, d.YChannel, sx, sy))
	s.Set(d.Result, out)
}

// DisplacementKernel samples texture at each pixel offset by
// scale/255*(v-127.5), where v is read from the map channels. Samples
// falling outside the texture are transparent.
func DisplacementKernel(texture, m *surface.Surface, xc, yc Channel, scaleX, scaleY float64) surface.SynthFunc {
	w, h := float64(texture.Width()), float64(texture.Height())
	to := texture.Origin()
	kx, ky := scaleX/255, scaleY/255
	return func(x, y int) uint32 {
		px := m.WordAt(to.X+x, to.Y+y)
		dx := kx * (float64(channelValue(px, xc)) - 127.5)
		dy := ky * (float64(channelValue(px, yc)) - 127.5)
		xs, ys := float64(x)+dx, float64(y)+dy
		if xs >= 0 && xs < w-1 && ys >= 0 && ys < h-1 {
			return texture.PixelAtF(xs, ys)
		}
		return 0
	}
}
