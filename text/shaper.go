package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of a run.
type Direction uint8

const (
	// LeftToRight is the default direction.
	LeftToRight Direction = iota
	// RightToLeft is used for Arabic, Hebrew and similar scripts.
	RightToLeft
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// DetectDirection returns the direction of the first strong character
// of s, or LeftToRight if there is none.
func DetectDirection(s string) Direction {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// Glyph is one shaped glyph. X and Y are the pen position relative to the
// start of the run, including the shaper's offsets.
type Glyph struct {
	ID      GlyphID
	Cluster int // index of the first rune of the cluster
	X, Y    float64
	Advance float64
}

// Shaper converts strings into positioned glyphs. It is safe for
// concurrent use.
type Shaper struct {
	// HarfbuzzShaper keeps a buffer between calls and is not safe for
	// concurrent use.
	pool sync.Pool

	Language language.Language
}

// NewShaper creates a shaper for English text.
func NewShaper() *Shaper {
	return &Shaper{
		pool:     sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		Language: language.NewLanguage("en"),
	}
}

var defaultShaper = NewShaper()

// Shape shapes s with f at size pixels per em. Glyphs are returned in
// visual order, so the pen always advances to the right.
func (sh *Shaper) Shape(s string, f *Font, size float64) []Glyph {
	if s == "" || f == nil {
		return nil
	}
	runes := []rune(s)
	dir := di.DirectionLTR
	if DetectDirection(s) == RightToLeft {
		dir = di.DirectionRTL
	}
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gotext.NewFace(f.shaped),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  sh.Language,
	}

	hb := sh.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(in)
	sh.pool.Put(hb)

	glyphs := make([]Glyph, len(out.Glyphs))
	var x float64
	for i, g := range out.Glyphs {
		adv := fromFixed(g.XAdvance)
		glyphs[i] = Glyph{
			ID:      GlyphID(g.GlyphID), //nolint:gosec // glyph ids fit in 16 bits
			Cluster: g.ClusterIndex,
			X:       x + fromFixed(g.XOffset),
			Y:       -fromFixed(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	return glyphs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
