package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/drawing/geom"
)

// ParseTransform parses an SVG transform list such as
// "translate(10,20) rotate(45)". The rightmost transform applies first.
func ParseTransform(s string) (geom.Affine, error) {
	m := geom.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return m, fmt.Errorf("%w: transform %q", ErrInvalidValue, s)
		}
		name := strings.TrimSpace(strings.TrimLeft(rest[:open], ", "))
		args, err := parseNumbers(rest[open+1 : end])
		if err != nil {
			return m, fmt.Errorf("%w: transform %q", ErrInvalidValue, s)
		}
		t, ok := transformFunc(name, args)
		if !ok {
			return m, fmt.Errorf("%w: transform %q", ErrInvalidValue, s)
		}
		m = m.Multiply(t)
		rest = strings.TrimSpace(rest[end+1:])
	}
	return m, nil
}

func transformFunc(name string, a []float64) (geom.Affine, bool) {
	deg := func(v float64) float64 { return v * math.Pi / 180 }
	switch {
	case name == "matrix" && len(a) == 6:
		return geom.Affine{A: a[0], B: a[2], C: a[4], D: a[1], E: a[3], F: a[5]}, true
	case name == "translate" && len(a) == 1:
		return geom.Translate(a[0], 0), true
	case name == "translate" && len(a) == 2:
		return geom.Translate(a[0], a[1]), true
	case name == "scale" && len(a) == 1:
		return geom.Scale(a[0], a[0]), true
	case name == "scale" && len(a) == 2:
		return geom.Scale(a[0], a[1]), true
	case name == "rotate" && len(a) == 1:
		return geom.Rotate(deg(a[0])), true
	case name == "rotate" && len(a) == 3:
		return geom.Translate(a[1], a[2]).
			Multiply(geom.Rotate(deg(a[0]))).
			Multiply(geom.Translate(-a[1], -a[2])), true
	case name == "skewX" && len(a) == 1:
		return geom.Skew(math.Tan(deg(a[0])), 0), true
	case name == "skewY" && len(a) == 1:
		return geom.Skew(0, math.Tan(deg(a[0]))), true
	}
	return geom.Affine{}, false
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParsePathData parses SVG path data. All commands are supported in
// absolute and relative form except the smooth curve shorthands.
func ParsePathData(d string) (*geom.Path, error) {
	toks, err := tokenizePath(d)
	if err != nil {
		return nil, err
	}
	p := geom.NewPath()
	var cur, start geom.Point
	var cmd byte
	i := 0
	next := func(n int) ([]float64, bool) {
		if i+n > len(toks) {
			return nil, false
		}
		v := make([]float64, n)
		for k := range n {
			if toks[i+k].cmd != 0 {
				return nil, false
			}
			v[k] = toks[i+k].num
		}
		i += n
		return v, true
	}
	bad := func() (*geom.Path, error) {
		return nil, fmt.Errorf("%w: path data %q", ErrInvalidValue, d)
	}

	for i < len(toks) {
		if toks[i].cmd != 0 {
			if cmd == 0 && toks[i].cmd != 'M' && toks[i].cmd != 'm' {
				return bad()
			}
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return bad()
		}
		rel := unicode.IsLower(rune(cmd))
		abs := func(x, y float64) geom.Point {
			if rel {
				return geom.Pt(cur.X+x, cur.Y+y)
			}
			return geom.Pt(x, y)
		}
		switch unicode.ToUpper(rune(cmd)) {
		case 'M':
			v, ok := next(2)
			if !ok {
				return bad()
			}
			cur = abs(v[0], v[1])
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// further pairs are implicit line-tos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			v, ok := next(2)
			if !ok {
				return bad()
			}
			cur = abs(v[0], v[1])
			p.LineTo(cur.X, cur.Y)
		case 'H':
			v, ok := next(1)
			if !ok {
				return bad()
			}
			if rel {
				cur.X += v[0]
			} else {
				cur.X = v[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'V':
			v, ok := next(1)
			if !ok {
				return bad()
			}
			if rel {
				cur.Y += v[0]
			} else {
				cur.Y = v[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'Q':
			v, ok := next(4)
			if !ok {
				return bad()
			}
			c := abs(v[0], v[1])
			cur = abs(v[2], v[3])
			p.QuadTo(c.X, c.Y, cur.X, cur.Y)
		case 'C':
			v, ok := next(6)
			if !ok {
				return bad()
			}
			c1 := abs(v[0], v[1])
			c2 := abs(v[2], v[3])
			cur = abs(v[4], v[5])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
		case 'A':
			v, ok := next(7)
			if !ok {
				return bad()
			}
			cur = abs(v[5], v[6])
			p.ArcTo(v[0], v[1], v[2], v[3] != 0, v[4] != 0, cur.X, cur.Y)
		case 'Z':
			p.Close()
			cur = start
			cmd = 0
		default:
			return bad()
		}
	}
	return p, nil
}

type pathToken struct {
	cmd byte
	num float64
}

func tokenizePath(d string) ([]pathToken, error) {
	var toks []pathToken
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.IndexByte("MmLlHhVvCcQqAaZz", c) >= 0:
			toks = append(toks, pathToken{cmd: c})
			i++
		default:
			j := scanNumber(d, i)
			if j == i {
				return nil, fmt.Errorf("%w: path data %q", ErrInvalidValue, d)
			}
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: path data %q", ErrInvalidValue, d)
			}
			toks = append(toks, pathToken{num: v})
			i = j
		}
	}
	return toks, nil
}

// scanNumber returns the end of the number starting at i. A second dot
// or a sign not following an exponent starts the next number.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	dot := false
	for j < len(s) {
		c := s[j]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && j > i:
			if j+1 < len(s) && (s[j+1] == '+' || s[j+1] == '-') {
				j++
			}
			dot = true
		default:
			return j
		}
		j++
	}
	return j
}
