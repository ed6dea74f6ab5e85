package scene

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]uint32{
	"black":   0x000000ff,
	"white":   0xffffffff,
	"red":     0xff0000ff,
	"lime":    0x00ff00ff,
	"green":   0x008000ff,
	"blue":    0x0000ffff,
	"yellow":  0xffff00ff,
	"cyan":    0x00ffffff,
	"magenta": 0xff00ffff,
	"gray":    0x808080ff,
	"grey":    0x808080ff,
	"orange":  0xffa500ff,
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a basic color name
// into a 0xRRGGBBAA value. "none" and "" report ok == false.
func ParseColor(s string) (rgba uint32, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return 0, false, nil
	case "transparent":
		return 0, true, nil
	}
	if c, found := namedColors[s]; found {
		return c, true, nil
	}

	if !isHexColor(s) {
		return 0, false, fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	alpha := uint32(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, false, fmt.Errorf("%w: color %q", ErrInvalidValue, s)
		}
		alpha = uint32(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, false, fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | alpha, true, nil
}

// isHexColor reports whether s is #rgb, #rrggbb or #rrggbbaa.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}
