// Package surface provides the pixel buffers the renderer draws into and
// the generic per-pixel drivers that filter kernels run on.
//
// A Surface holds premultiplied ARGB32 words or single alpha bytes with an
// explicit row stride. ARGB32 pixels are stored little-endian (B, G, R, A
// in memory) and handled as uint32 words A<<24 | R<<16 | G<<8 | B. Every
// surface carries a device-space origin and a color-interpolation tag
// telling which color space its color channels are encoded in.
//
// The drivers Blend, Filter and Synthesize map a caller-supplied pixel
// function over a buffer. They accept any combination of ARGB32 and A8
// inputs and outputs, and fan out over row bands when a surface is large
// enough to make it worthwhile.
//
// Unpremultiplied RGBA8 interchange (the layout of image files and
// pixbufs) is handled at the boundaries by FromRGBA8 and RGBA8.
package surface
