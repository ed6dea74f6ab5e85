package geom

import (
	"image"
	"testing"
)

func TestRegionAddOverlapping(t *testing.T) {
	var g Region
	g.Add(image.Rect(0, 0, 10, 10))
	g.Add(image.Rect(5, 5, 15, 15))
	if got, want := g.Area(), 100+100-25; got != want {
		t.Errorf("Area = %d, want %d", got, want)
	}
	if got := g.Bounds(); got != image.Rect(0, 0, 15, 15) {
		t.Errorf("Bounds = %v", got)
	}
}

func TestRegionSubtract(t *testing.T) {
	var g Region
	g.Add(image.Rect(0, 0, 10, 10))
	g.Subtract(image.Rect(2, 2, 8, 8))
	if got, want := g.Area(), 100-36; got != want {
		t.Errorf("Area = %d, want %d", got, want)
	}
	if g.ContainsRect(image.Rect(3, 3, 4, 4)) {
		t.Error("hole should not be contained")
	}
	if !g.ContainsRect(image.Rect(0, 0, 10, 2)) {
		t.Error("top strip should be contained")
	}
	g.Subtract(image.Rect(-5, -5, 20, 20))
	if !g.IsEmpty() {
		t.Errorf("region not empty: %v", g.Rects())
	}
}

func TestRegionTranslateAndIntersect(t *testing.T) {
	var g Region
	g.Add(image.Rect(0, 0, 4, 4))
	g.Translate(image.Pt(10, 0))
	if got := g.Bounds(); got != image.Rect(10, 0, 14, 4) {
		t.Errorf("Bounds after translate = %v", got)
	}
	g.IntersectRect(image.Rect(12, 0, 20, 2))
	if got := g.Area(); got != 4 {
		t.Errorf("Area after intersect = %d, want 4", got)
	}
}
