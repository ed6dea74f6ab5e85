package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// TileSize is the default edge length of a repaint tile in pixels.
const TileSize = 64

// DirtyTiles tracks which tiles of a pixel area need repainting using an
// atomic bitmap, one bit per tile packed into uint64 words.
//
// Mark methods are safe for concurrent use; Drain is meant to be called
// from the single goroutine that repaints.
type DirtyTiles struct {
	// words: bit index = ty*tilesX + tx
	words []atomic.Uint64

	area   image.Rectangle
	size   int
	tilesX int
	tilesY int
}

// NewDirtyTiles covers area with square tiles of the given size. A size
// of zero selects TileSize. All tiles start clean.
func NewDirtyTiles(area image.Rectangle, size int) *DirtyTiles {
	if size <= 0 {
		size = TileSize
	}
	tx := (area.Dx() + size - 1) / size
	ty := (area.Dy() + size - 1) / size
	return &DirtyTiles{
		words:  make([]atomic.Uint64, (tx*ty+63)/64),
		area:   area,
		size:   size,
		tilesX: tx,
		tilesY: ty,
	}
}

// Area returns the covered pixel area.
func (d *DirtyTiles) Area() image.Rectangle {
	return d.area
}

// Mark marks the tile at tile coordinates (tx, ty). Out of range
// coordinates are ignored.
func (d *DirtyTiles) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect marks every tile intersecting r.
func (d *DirtyTiles) MarkRect(r image.Rectangle) {
	r = r.Intersect(d.area)
	if r.Empty() {
		return
	}
	r = r.Sub(d.area.Min)
	for ty := r.Min.Y / d.size; ty <= (r.Max.Y-1)/d.size; ty++ {
		for tx := r.Min.X / d.size; tx <= (r.Max.X-1)/d.size; tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkAll marks every tile.
func (d *DirtyTiles) MarkAll() {
	total := d.tilesX * d.tilesY
	for i := range d.words {
		n := min(64, total-i*64)
		if n == 64 {
			d.words[i].Store(^uint64(0))
		} else {
			d.words[i].Store(uint64(1)<<n - 1)
		}
	}
}

// IsDirty reports whether tile (tx, ty) is marked.
func (d *DirtyTiles) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return false
	}
	idx := ty*d.tilesX + tx
	return d.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of marked tiles.
func (d *DirtyTiles) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// Drain clears the bitmap and returns the pixel rectangles of the tiles
// that were marked, in row-major order, clipped to the area.
func (d *DirtyTiles) Drain() []image.Rectangle {
	var out []image.Rectangle
	total := d.tilesX * d.tilesY
	for wi := range d.words {
		word := d.words[wi].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &^= 1 << b
			idx := wi*64 + b
			if idx >= total {
				break
			}
			out = append(out, d.TileRect(idx%d.tilesX, idx/d.tilesX))
		}
	}
	return out
}

// TileRect returns the pixel rectangle of tile (tx, ty).
func (d *DirtyTiles) TileRect(tx, ty int) image.Rectangle {
	p := d.area.Min.Add(image.Pt(tx*d.size, ty*d.size))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(d.size, d.size))}.Intersect(d.area)
}
