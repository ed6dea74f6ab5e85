// Package geom provides the geometry used at the rasterization boundary of
// the drawing engine: points, affine transforms, float and integer
// rectangles, integer regions, paths with elliptical arcs and arbitrary
// parametric curves, the feed of a path into a device-space sink, stroke
// outline expansion and hit-testing queries.
//
// Affine follows the row-major 2x3 convention:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// m.Multiply(n) applies n first and then m.
package geom
