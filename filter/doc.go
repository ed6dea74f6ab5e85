// Package filter evaluates SVG filter graphs on premultiplied pixel
// surfaces.
//
// A Filter is an ordered list of primitives. Each primitive reads one or
// two named slots and writes a named result; the slot table is scoped to
// a single evaluation. The standard inputs SourceGraphic, SourceAlpha,
// BackgroundImage, BackgroundAlpha, FillPaint and StrokePaint are created
// on first use.
//
// Evaluation happens in pixblock space. When every primitive can handle
// the item transform, pixblock space is device space; otherwise the
// source is resampled into an axis-aligned space first and the result is
// mapped back afterwards.
//
// The per-pixel kernels are exported so they can be composed with the
// drivers in package surface directly:
//
//	surface.Filter(in, out, filter.SaturateKernel(0.5))
package filter
