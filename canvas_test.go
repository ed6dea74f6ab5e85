package drawing

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
)

func TestCanvasPaintsDirtyTiles(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 10, 10, 20, 20, 0xff0000ff)
	root.AppendChild(s)

	c := NewCanvas(d, image.Rect(0, 0, 128, 128), 64)
	if got := len(c.Paint()); got != 4 {
		t.Fatalf("first Paint repainted %d tiles, want 4", got)
	}
	assertPixel(t, c.Surface(), 15, 15, 0xffff0000, 0)
	if got := c.Paint(); len(got) != 0 {
		t.Fatalf("second Paint repainted %v", got)
	}

	st := s.Style()
	st.Fill = SolidPaint(0x00ff00ff)
	s.SetStyle(st)
	got := c.Paint()
	if len(got) != 1 || got[0] != image.Rect(0, 0, 64, 64) {
		t.Fatalf("repainted %v, want the top-left tile", got)
	}
	assertPixel(t, c.Surface(), 15, 15, 0xff00ff00, 0)
}

func TestCanvasMove(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 10, 10, 20, 20, 0xff0000ff)
	root.AppendChild(s)
	c := NewCanvas(d, image.Rect(0, 0, 128, 128), 64)
	c.Paint()

	s.SetTransform(geom.Translate(80, 0))
	got := c.Paint()
	want := map[image.Rectangle]bool{
		image.Rect(0, 0, 64, 64):   true,
		image.Rect(64, 0, 128, 64): true,
	}
	if len(got) != len(want) {
		t.Fatalf("repainted %v", got)
	}
	for _, r := range got {
		if !want[r] {
			t.Errorf("unexpected tile %v", r)
		}
	}
	assertPixel(t, c.Surface(), 15, 15, 0, 0)
	assertPixel(t, c.Surface(), 95, 15, 0xffff0000, 0)
}

func TestCanvasBackgroundAndTransform(t *testing.T) {
	d, root := newScene()
	root.AppendChild(newRect(d, 0, 0, 10, 10, 0xff0000ff))
	c := NewCanvas(d, image.Rect(0, 0, 64, 64), 32)
	c.SetBackground(0xffffffff)
	c.Paint()
	assertPixel(t, c.Surface(), 40, 40, 0xffffffff, 0)
	assertPixel(t, c.Surface(), 5, 5, 0xffff0000, 0)

	c.SetBackground(0xffffffff)
	if c.Dirty() != 0 {
		t.Error("unchanged background marked tiles")
	}

	c.SetTransform(geom.Scale(2, 2))
	if c.Dirty() != 4 {
		t.Errorf("Dirty = %d after SetTransform, want 4", c.Dirty())
	}
	c.Paint()
	assertPixel(t, c.Surface(), 15, 15, 0xffff0000, 0)
	assertPixel(t, c.Surface(), 25, 25, 0xffffffff, 0)
}

func TestCanvasInvalidate(t *testing.T) {
	d, _ := newScene()
	c := NewCanvas(d, image.Rect(0, 0, 64, 64), 32)
	c.Paint()
	c.Invalidate(image.Rect(40, 40, 41, 41))
	if got := c.Paint(); len(got) != 1 || got[0] != image.Rect(32, 32, 64, 64) {
		t.Errorf("repainted %v", got)
	}
}
