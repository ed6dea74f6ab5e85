package drawing

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

func filledCache(area image.Rectangle, px uint32) *Cache {
	c := newCache(area)
	c.Surface().Fill(px)
	c.MarkClean(area)
	return c
}

func TestCacheMarkDirty(t *testing.T) {
	c := filledCache(image.Rect(0, 0, 10, 10), 0xffff0000)
	c.MarkDirty(image.Rect(5, 0, 20, 10))
	if !c.Clean().ContainsRect(image.Rect(0, 0, 5, 10)) {
		t.Error("left half no longer clean")
	}
	if c.Clean().ContainsRect(image.Rect(5, 0, 6, 1)) {
		t.Error("dirty area still clean")
	}
	c.MarkClean(image.Rect(-5, -5, 50, 50))
	if got := c.Clean().Bounds(); got != c.Area() {
		t.Errorf("clean bounds = %v, want the cache area", got)
	}
}

func TestCachePrepare(t *testing.T) {
	area := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name      string
		newArea   image.Rectangle
		trans     geom.Affine
		wantClean image.Rectangle
		keepPixel image.Point
	}{
		{"shift in place", image.Rect(3, 0, 13, 10), geom.Translate(3, 0), image.Rect(3, 0, 13, 10), image.Pt(5, 5)},
		{"shift and shrink", image.Rect(3, 0, 10, 10), geom.Translate(3, 0), image.Rect(3, 0, 10, 10), image.Pt(5, 5)},
		{"resize only", image.Rect(0, 0, 20, 20), geom.Identity(), image.Rect(0, 0, 10, 10), image.Pt(2, 2)},
		{"scale", area, geom.Scale(2, 2), image.Rectangle{}, image.Point{}},
		{"fractional shift", area, geom.Translate(0.5, 0), image.Rectangle{}, image.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := filledCache(area, 0xffff0000)
			c.ScheduleTransform(tt.newArea, tt.trans)
			c.Prepare()

			if c.Area() != tt.newArea {
				t.Errorf("area = %v, want %v", c.Area(), tt.newArea)
			}
			if got := c.Clean().Bounds(); got != tt.wantClean {
				t.Errorf("clean = %v, want %v", got, tt.wantClean)
			}
			if !tt.wantClean.Empty() {
				if got := c.Surface().WordAt(tt.keepPixel.X, tt.keepPixel.Y); got != 0xffff0000 {
					t.Errorf("pixel %v = %#08x, not preserved", tt.keepPixel, got)
				}
			}
		})
	}
}

func TestCachePrepareAccumulatesTranslations(t *testing.T) {
	c := filledCache(image.Rect(0, 0, 10, 10), 0xffff0000)
	c.ScheduleTransform(image.Rect(2, 0, 12, 10), geom.Translate(2, 0))
	c.ScheduleTransform(image.Rect(2, 3, 12, 13), geom.Translate(0, 3))
	c.Prepare()
	if got := c.Clean().Bounds(); got != image.Rect(2, 3, 12, 13) {
		t.Errorf("clean = %v after two shifts", got)
	}
}

func TestPaintFromCache(t *testing.T) {
	area := image.Rect(0, 0, 10, 10)

	t.Run("partial", func(t *testing.T) {
		c := newCache(area)
		c.Surface().Fill(0xffff0000)
		c.MarkClean(image.Rect(0, 0, 5, 10))

		dst := surface.NewArea(surface.FormatARGB32, area)
		req := area
		c.PaintFromCache(NewContext(dst), &req, false)
		if req != image.Rect(5, 0, 10, 10) {
			t.Errorf("remaining area = %v", req)
		}
		assertPixel(t, dst, 2, 2, 0xffff0000, 0)
		assertPixel(t, dst, 7, 7, 0, 0)
	})

	t.Run("complete", func(t *testing.T) {
		c := filledCache(area, 0xffff0000)
		dst := surface.NewArea(surface.FormatARGB32, area)
		req := image.Rect(2, 2, 6, 6)
		c.PaintFromCache(NewContext(dst), &req, false)
		if !req.Empty() {
			t.Errorf("remaining area = %v, want empty", req)
		}
		assertPixel(t, dst, 3, 3, 0xffff0000, 0)
		assertPixel(t, dst, 7, 7, 0, 0)
	})

	t.Run("filtered partial paints nothing", func(t *testing.T) {
		c := newCache(area)
		c.Surface().Fill(0xffff0000)
		c.MarkClean(image.Rect(0, 0, 5, 10))
		dst := surface.NewArea(surface.FormatARGB32, area)
		req := area
		c.PaintFromCache(NewContext(dst), &req, true)
		if req != area {
			t.Errorf("remaining area = %v, want unchanged", req)
		}
		assertPixel(t, dst, 2, 2, 0, 0)
	})
}
