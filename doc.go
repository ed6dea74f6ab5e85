// Package drawing is a retained-mode display engine: a tree of items that
// is updated incrementally, cached in pixels and composited onto
// premultiplied ARGB surfaces.
//
// # Overview
//
// A Drawing owns a tree of items. Groups hold children, shapes paint
// paths, images place pixels and texts paint glyph outlines. Every item
// can carry a transform, an opacity, a blend mode, a clip, a mask and a
// filter from the filter package.
//
// # Quick Start
//
//	d := drawing.New()
//	root := d.NewGroup()
//	d.SetRoot(root)
//
//	s := d.NewShape()
//	s.SetPath(geom.NewPath().Rectangle(10, 10, 100, 50))
//	root.AppendChild(s)
//
//	area := image.Rect(0, 0, 256, 256)
//	d.Update(area, drawing.UpdateContext{CTM: geom.Identity()}, drawing.StateAll, 0)
//
//	target := surface.NewArea(surface.FormatARGB32, area)
//	d.Render(drawing.NewContext(target), area, 0)
//
// # Update, render and pick
//
// Each item keeps a State bitmask of derived properties that are up to
// date: bounding boxes, cache score, pick data, rendering and background
// accumulation. Mutating an item clears the affected bits on it and its
// ancestors and emits a request through OnRequestUpdate; the next Update
// recomputes exactly the cleared bits. Render and Pick require an
// up to date tree.
//
// Render composites an item through an intermediate surface when it has
// a clip, mask, filter, opacity below one, a non-normal blend mode,
// isolation or a cache. Coverage is built first (opacity, then clip, then
// mask luminance), the content is rendered and filtered in a group and
// multiplied into the coverage, and the result is painted with the blend
// operator.
//
// # Dirty areas and caches
//
// Every visible change is reported as a device rectangle through
// OnRequestRender, enlarged by the filters of the ancestors. Items whose
// cache score reaches the threshold become caching candidates; Update
// caches the best candidates within the memory budget. A Cache keeps the
// clean region of its pixels and survives integer translations.
//
// Canvas ties both together: it collects render requests in dirty tiles
// and repaints only those on Paint.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Device rectangles are image.Rectangle, user-space rectangles geom.Rect
package drawing

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
