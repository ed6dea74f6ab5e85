package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrFontParse is returned when font data cannot be parsed.
	ErrFontParse = errors.New("text: cannot parse font")

	// ErrNoGlyph is returned for glyph ids the font does not contain.
	ErrNoGlyph = errors.New("text: no such glyph")
)
