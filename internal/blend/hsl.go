package blend

// Non-separable blend modes. Channel triples are held in the 255*255
// domain (a premultiplied channel times the other layer's alpha).

type rgb [3]uint32

// nonSeparableFunc writes the blended triple into c.
type nonSeparableFunc func(c *rgb, dc rgb, da uint32, sc rgb, sa uint32)

func nonSeparable(f nonSeparableFunc) Func {
	return func(s, d uint32) uint32 {
		sa, da := s>>24, d>>24
		base := mulAddUn8x4(d, 255-sa, s, 255-da)
		dc := rgb{channel(d, 16), channel(d, 8), channel(d, 0)}
		sc := rgb{channel(s, 16), channel(s, 8), channel(s, 0)}
		var c rgb
		f(&c, dc, da, sc, sa)
		mixed := Pack(
			div255(sa*da),
			clamp255(div255(c[0])),
			clamp255(div255(c[1])),
			clamp255(div255(c[2])),
		)
		return addUn8x4(base, mixed)
	}
}

func lum(c rgb) uint32 {
	return (c[0]*30 + c[1]*59 + c[2]*11) / 100
}

func sat(c rgb) uint32 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

func lumF(c [3]float64) float64 {
	return (c[0]*30 + c[1]*59 + c[2]*11) / 100
}

// setLum shifts c to luminance l and clips it into [0, a] preserving
// the luminance.
func setLum(c *rgb, a, l uint32) {
	fa := float64(a) / 255
	fl := float64(l) / 255
	t := [3]float64{float64(c[0]) / 255, float64(c[1]) / 255, float64(c[2]) / 255}

	fl -= lumF(t)
	for i := range t {
		t[i] += fl
	}

	fl = lumF(t)
	lo := min(t[0], t[1], t[2])
	hi := max(t[0], t[1], t[2])
	if lo < 0 {
		if fl-lo == 0 {
			t = [3]float64{}
		} else {
			for i := range t {
				t[i] = fl + (t[i]-fl)*fl/(fl-lo)
			}
		}
	}
	if hi > fa {
		if hi-fl == 0 {
			t = [3]float64{fa, fa, fa}
		} else {
			for i := range t {
				t[i] = fl + (t[i]-fl)*(fa-fl)/(hi-fl)
			}
		}
	}
	for i := range t {
		if t[i] <= 0 {
			c[i] = 0
			continue
		}
		c[i] = uint32(t[i]*255 + 0.5)
	}
}

// setSat rescales c to saturation s keeping the channel order.
func setSat(c *rgb, s uint32) {
	var hi, mid, lo int
	switch {
	case c[0] > c[1]:
		switch {
		case c[0] <= c[2]:
			hi, mid, lo = 2, 0, 1
		case c[1] > c[2]:
			hi, mid, lo = 0, 1, 2
		default:
			hi, mid, lo = 0, 2, 1
		}
	case c[0] > c[2]:
		hi, mid, lo = 1, 0, 2
	case c[1] > c[2]:
		hi, mid, lo = 1, 2, 0
	default:
		hi, mid, lo = 2, 1, 0
	}
	if c[hi] > c[lo] {
		c[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		c[hi] = s
		c[lo] = 0
		return
	}
	*c = rgb{}
}

func scale(c rgb, k uint32) rgb {
	return rgb{c[0] * k, c[1] * k, c[2] * k}
}

// hue: hue of the source with saturation and luminosity of the backdrop.
func hue(c *rgb, dc rgb, da uint32, sc rgb, sa uint32) {
	*c = scale(sc, da)
	setSat(c, sat(dc)*sa)
	setLum(c, sa*da, lum(dc)*sa)
}

// saturation: saturation of the source with hue and luminosity of the
// backdrop.
func saturation(c *rgb, dc rgb, da uint32, sc rgb, sa uint32) {
	*c = scale(dc, sa)
	setSat(c, sat(sc)*da)
	setLum(c, sa*da, lum(dc)*sa)
}

// color: hue and saturation of the source with luminosity of the backdrop.
func color(c *rgb, dc rgb, da uint32, sc rgb, sa uint32) {
	*c = scale(sc, da)
	setLum(c, sa*da, lum(dc)*sa)
}

// luminosity: luminosity of the source with hue and saturation of the
// backdrop.
func luminosity(c *rgb, dc rgb, da uint32, sc rgb, sa uint32) {
	*c = scale(dc, sa)
	setLum(c, sa*da, lum(sc)*da)
}
