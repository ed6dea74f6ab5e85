// Package text turns strings into glyph outlines placed along a baseline.
//
// Fonts are parsed once with ParseFont. A Shaper runs HarfBuzz shaping
// (kerning, ligatures, right-to-left scripts) through go-text/typesetting
// and Layout places the resulting outlines, loaded with sfnt and cached per
// size, as geom paths in a y-down user space with the origin on the
// baseline.
//
//	f, err := text.ParseFont(goregular.TTF)
//	run, err := text.Layout("Hello", f, 16)
//	for _, g := range run.Glyphs {
//		item.AddGlyph(g.Path, g.Place)
//	}
package text
