package text

import (
	"fmt"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/internal/cache"
	"golang.org/x/image/font/sfnt"
)

// GlyphID identifies a glyph within a font.
type GlyphID uint16

type outlineKey struct {
	font uint64
	gid  GlyphID
	size int32 // 26.6
}

type outlineEntry struct {
	path *geom.Path
	err  error
}

var outlines = cache.New[outlineKey, outlineEntry](4096)

// Outline returns the outline of glyph gid at size pixels per em, in a
// y-down space with the origin on the baseline at the pen position.
// Outlines are cached; the returned path must not be modified.
func (f *Font) Outline(gid GlyphID, size float64) (*geom.Path, error) {
	if int(gid) >= f.NumGlyphs() {
		return nil, fmt.Errorf("%w: %d", ErrNoGlyph, gid)
	}
	ppem := toFixed(size)
	e := outlines.GetOrCreate(outlineKey{f.id, gid, int32(ppem)}, func() outlineEntry {
		b := f.buffer()
		defer f.bufs.Put(b)
		segs, err := f.sfnt.LoadGlyph(b, sfnt.GlyphIndex(gid), ppem, nil)
		if err != nil {
			return outlineEntry{err: fmt.Errorf("%w: %d: %w", ErrNoGlyph, gid, err)}
		}
		return outlineEntry{path: segmentsPath(segs)}
	})
	return e.path, e.err
}

// segmentsPath converts sfnt segments into a path. Contours are closed
// explicitly since sfnt only starts new ones.
func segmentsPath(segs sfnt.Segments) *geom.Path {
	p := geom.NewPath()
	open := false
	for _, s := range segs {
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(fromFixed(a[0].X), fromFixed(a[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(fromFixed(a[0].X), fromFixed(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(fromFixed(a[0].X), fromFixed(a[0].Y), fromFixed(a[1].X), fromFixed(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			p.CubicTo(fromFixed(a[0].X), fromFixed(a[0].Y),
				fromFixed(a[1].X), fromFixed(a[1].Y),
				fromFixed(a[2].X), fromFixed(a[2].Y))
		}
	}
	if open {
		p.Close()
	}
	return p
}
