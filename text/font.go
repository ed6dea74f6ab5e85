package text

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var fontIDs atomic.Uint64

// Font is a parsed TrueType or OpenType font. It is safe for concurrent
// use.
type Font struct {
	id     uint64
	sfnt   *sfnt.Font
	shaped *gotext.Font
	bufs   sync.Pool
}

// ParseFont parses TrueType or OpenType font data.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrFontParse)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontParse, err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontParse, err)
	}
	f := &Font{
		id:     fontIDs.Add(1),
		sfnt:   sf,
		shaped: face.Font,
	}
	f.bufs.New = func() any { return new(sfnt.Buffer) }
	return f, nil
}

func (f *Font) buffer() *sfnt.Buffer {
	return f.bufs.Get().(*sfnt.Buffer)
}

// Name returns the family name, or "" if the font has none.
func (f *Font) Name() string {
	b := f.buffer()
	defer f.bufs.Put(b)
	name, err := f.sfnt.Name(b, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// GlyphIndex maps r to a glyph id. It returns ErrNoGlyph if the font
// has no glyph for r.
func (f *Font) GlyphIndex(r rune) (GlyphID, error) {
	b := f.buffer()
	defer f.bufs.Put(b)
	gid, err := f.sfnt.GlyphIndex(b, r)
	if err != nil {
		return 0, err
	}
	if gid == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return GlyphID(gid), nil
}

// Metrics holds the vertical metrics of a font at one size.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	b := f.buffer()
	defer f.bufs.Put(b)
	m, err := f.sfnt.Metrics(b, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size * 1.2}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
