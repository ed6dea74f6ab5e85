package geom

import "math"

// Dash defines a dash pattern for stroking: alternating dash and gap
// lengths, with odd-length arrays logically repeated, and a start offset.
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Returns nil if no lengths are provided or all lengths are zero, which
// means a solid stroke.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}
	solid := true
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if normalized[i] > 0 {
			solid = false
		}
	}
	if solid {
		return nil
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the length of one complete cycle.
func (d *Dash) PatternLength() float64 {
	var total float64
	for _, l := range d.effectiveArray() {
		total += l
	}
	return total
}

// IsDashed reports whether the pattern interrupts the stroke.
func (d *Dash) IsDashed() bool {
	return d != nil && d.PatternLength() > 0
}

// NormalizedOffset returns the offset reduced into one pattern cycle.
func (d *Dash) NormalizedOffset() float64 {
	if d == nil {
		return 0
	}
	n := d.PatternLength()
	if n <= 0 {
		return 0
	}
	off := math.Mod(d.Offset, n)
	if off < 0 {
		off += n
	}
	return off
}

func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	out := make([]float64, len(d.Array)*2)
	copy(out, d.Array)
	copy(out[len(d.Array):], d.Array)
	return out
}

// Apply splits polylines into the open dash pieces of the pattern. The
// pattern restarts at every subpath.
func (d *Dash) Apply(lines []Polyline) []Polyline {
	if !d.IsDashed() {
		return lines
	}
	arr := d.effectiveArray()
	var out []Polyline
	for _, l := range lines {
		pts := l.Points
		if l.Closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(append([]Point(nil), pts...), pts[0])
		}

		idx := 0
		remain := arr[0]
		off := d.NormalizedOffset()
		for off > 0 {
			if off < remain {
				remain -= off
				break
			}
			off -= remain
			idx = (idx + 1) % len(arr)
			remain = arr[idx]
		}
		on := idx%2 == 0

		var cur []Point
		if on && len(pts) > 0 {
			cur = []Point{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			seg := b.Distance(a)
			pos := 0.0
			for seg-pos > remain {
				pos += remain
				p := a.Lerp(b, pos/seg)
				if on {
					cur = append(cur, p)
					out = append(out, Polyline{Points: cur})
					cur = nil
				} else {
					cur = []Point{p}
				}
				on = !on
				idx = (idx + 1) % len(arr)
				remain = arr[idx]
			}
			remain -= seg - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, Polyline{Points: cur})
		}
	}
	return out
}
