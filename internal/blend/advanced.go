package blend

import "math"

// separableFunc blends one premultiplied channel. dc and sc are the
// destination and source channel values, da and sa their alphas. The
// result is in the 8-bit domain.
type separableFunc func(dc, da, sc, sa uint32) uint32

// separable builds a blend operator from a per-channel function:
//
//	result = S*(1-Da) + D*(1-Sa) + B(S, D)
//	alpha  = Sa + Da - Sa*Da
func separable(f separableFunc) Func {
	return func(s, d uint32) uint32 {
		sa, da := s>>24, d>>24
		base := mulAddUn8x4(d, 255-sa, s, 255-da)
		mixed := Pack(
			div255(sa*da),
			clamp255(f(channel(d, 16), da, channel(s, 16), sa)),
			clamp255(f(channel(d, 8), da, channel(s, 8), sa)),
			clamp255(f(channel(d, 0), da, channel(s, 0), sa)),
		)
		return addUn8x4(base, mixed)
	}
}

func multiply(dc, _, sc, _ uint32) uint32 {
	return div255(sc * dc)
}

func screen(dc, da, sc, sa uint32) uint32 {
	return div255(sc*da + dc*sa - sc*dc)
}

func overlay(dc, da, sc, sa uint32) uint32 {
	if 2*dc < da {
		return div255(2 * sc * dc)
	}
	r := int32(sa*da) - 2*(int32(da)-int32(dc))*(int32(sa)-int32(sc))
	return div255(clampInt(r, 255*255))
}

func darken(dc, da, sc, sa uint32) uint32 {
	return div255(min(sc*da, dc*sa))
}

func lighten(dc, da, sc, sa uint32) uint32 {
	return div255(max(sc*da, dc*sa))
}

func colorDodge(dc, da, sc, sa uint32) uint32 {
	if sc >= sa {
		if dc == 0 {
			return 0
		}
		return div255(sa * da)
	}
	r := dc * sa / (sa - sc)
	return div255(sa * min(r, da))
}

func colorBurn(dc, da, sc, sa uint32) uint32 {
	if sc == 0 {
		if dc < da {
			return 0
		}
		return div255(sa * da)
	}
	r := (da - min(dc, da)) * sa / sc
	return div255(sa * (max(r, da) - r))
}

func hardLight(dc, da, sc, sa uint32) uint32 {
	if 2*sc < sa {
		return div255(2 * sc * dc)
	}
	r := int32(sa*da) - 2*(int32(da)-int32(dc))*(int32(sa)-int32(sc))
	return div255(clampInt(r, 255*255))
}

// softLight is evaluated in floating point.
func softLight(dcOrg, daOrg, scOrg, saOrg uint32) uint32 {
	dc := float64(dcOrg) / 255
	da := float64(daOrg) / 255
	sc := float64(scOrg) / 255
	sa := float64(saOrg) / 255

	var r float64
	switch {
	case 2*sc < sa:
		if da == 0 {
			r = dc * sa
		} else {
			r = dc*sa - dc*(da-dc)*(sa-2*sc)/da
		}
	case da == 0:
		r = 0
	case 4*dc <= da:
		r = dc*sa + (2*sc-sa)*dc*((16*dc/da-12)*dc/da+3)
	default:
		r = dc*sa + (math.Sqrt(dc*da)-dc)*(2*sc-sa)
	}
	if r <= 0 {
		return 0
	}
	return uint32(r*255 + 0.5)
}

func difference(dc, da, sc, sa uint32) uint32 {
	dcsa, scda := dc*sa, sc*da
	if scda < dcsa {
		return div255(dcsa - scda)
	}
	return div255(scda - dcsa)
}

func exclusion(dc, da, sc, sa uint32) uint32 {
	r := int32(sc*da+dc*sa) - 2*int32(dc*sc)
	return div255(clampInt(r, 2*255*255))
}
