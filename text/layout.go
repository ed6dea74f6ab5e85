package text

import (
	"strings"

	"github.com/gogpu/drawing/geom"
)

// Anchor selects which point of a run lies at the origin.
type Anchor uint8

// Text anchors, as in SVG text-anchor.
const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// PlacedGlyph is a glyph outline with its placement in run space.
type PlacedGlyph struct {
	ID    GlyphID
	Path  *geom.Path
	Place geom.Affine
}

// Run is a laid out line of text.
type Run struct {
	Glyphs    []PlacedGlyph
	Advance   float64
	Direction Direction
	Metrics   Metrics
}

// LayoutOptions control Layout. The zero value lays out a start-anchored
// run with the default shaper.
type LayoutOptions struct {
	Shaper        *Shaper
	Anchor        Anchor
	LetterSpacing float64
}

// Layout shapes s and places each glyph outline. Whitespace glyphs with
// empty outlines are skipped but still advance the pen.
func Layout(s string, f *Font, size float64) (*Run, error) {
	return LayoutWith(s, f, size, LayoutOptions{})
}

// LayoutWith is Layout with options.
func LayoutWith(s string, f *Font, size float64, opts LayoutOptions) (*Run, error) {
	sh := opts.Shaper
	if sh == nil {
		sh = defaultShaper
	}
	s = strings.ReplaceAll(s, "\n", " ")
	glyphs := sh.Shape(s, f, size)

	run := &Run{
		Direction: DetectDirection(s),
		Metrics:   f.Metrics(size),
	}
	for i, g := range glyphs {
		run.Advance += g.Advance
		if i > 0 {
			run.Advance += opts.LetterSpacing
		}
	}

	var shift float64
	switch opts.Anchor {
	case AnchorMiddle:
		shift = -run.Advance / 2
	case AnchorEnd:
		shift = -run.Advance
	}
	for i, g := range glyphs {
		path, err := f.Outline(g.ID, size)
		if err != nil {
			return nil, err
		}
		if path.IsEmpty() {
			continue
		}
		x := shift + g.X + float64(i)*opts.LetterSpacing
		run.Glyphs = append(run.Glyphs, PlacedGlyph{
			ID:    g.ID,
			Path:  path,
			Place: geom.Translate(x, g.Y),
		})
	}
	return run, nil
}
