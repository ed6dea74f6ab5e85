package drawing

import (
	"image"
	"testing"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

func newTarget(w, h int) *surface.Surface {
	return surface.NewArea(surface.FormatARGB32, image.Rect(0, 0, w, h))
}

func TestContextFillRectangle(t *testing.T) {
	s := newTarget(10, 10)
	dc := NewContext(s)
	dc.SetSourceRGBA32(0xff0000ff)
	dc.Rectangle(image.Rect(2, 2, 5, 5))
	dc.Fill()

	assertPixel(t, s, 3, 3, 0xffff0000, 0)
	assertPixel(t, s, 6, 6, 0, 0)
	if len(dc.Polylines()) != 0 {
		t.Error("Fill kept the path")
	}
}

func TestContextFillRule(t *testing.T) {
	p := geom.NewPath().Rectangle(0, 0, 10, 10).Rectangle(3, 3, 4, 4)
	tests := []struct {
		rule FillRule
		want uint32
	}{
		{FillNonZero, 0xff000000},
		{FillEvenOdd, 0},
	}
	for _, tt := range tests {
		s := newTarget(10, 10)
		dc := NewContext(s)
		dc.SetFillRule(tt.rule)
		dc.Path(p)
		dc.Fill()
		assertPixel(t, s, 5, 5, tt.want, 0)
		assertPixel(t, s, 1, 1, 0xff000000, 0)
	}
}

func TestContextTransform(t *testing.T) {
	s := newTarget(10, 10)
	dc := NewContext(s)
	dc.Push()
	dc.Transform(geom.Translate(5, 0))
	dc.Path(geom.NewPath().Rectangle(0, 0, 2, 2))
	dc.Pop()
	if !dc.CTM().IsIdentity() {
		t.Error("Pop did not restore the transform")
	}
	dc.Fill()
	assertPixel(t, s, 6, 1, 0xff000000, 0)
	assertPixel(t, s, 1, 1, 0, 0)
}

func TestContextStroke(t *testing.T) {
	s := newTarget(10, 10)
	dc := NewContext(s)
	dc.Path(geom.NewPath().MoveTo(0, 5).LineTo(10, 5))
	st := geom.DefaultStroke()
	st.Width = 2
	dc.Stroke(st, nil)

	assertPixel(t, s, 5, 4, 0xff000000, 0)
	assertPixel(t, s, 5, 5, 0xff000000, 0)
	assertPixel(t, s, 5, 8, 0, 0)
}

func TestContextGroups(t *testing.T) {
	s := newTarget(4, 4)
	s.Fill(0xffffffff)
	dc := NewContext(s)

	dc.PushGroup()
	if dc.Target() == s {
		t.Fatal("PushGroup did not redirect drawing")
	}
	dc.SetSourceRGBA32(0xff0000ff)
	dc.Paint()
	dc.PopGroupToSource()
	if dc.Target() != s {
		t.Fatal("PopGroupToSource did not restore the target")
	}
	dc.PaintWithAlpha(0.5)
	assertPixel(t, s, 1, 1, 0xffff7f7f, 1)

	if g := dc.PopGroup(); g != nil {
		t.Error("PopGroup without a group returned a surface")
	}
}

func TestContextGroupRestoresState(t *testing.T) {
	dc := NewContext(newTarget(4, 4))
	dc.SetOperator(OperatorAdd)
	dc.PushGroup()
	dc.SetOperator(OperatorIn)
	dc.Push() // unbalanced
	dc.PopGroup()
	if dc.Operator() != OperatorAdd {
		t.Errorf("operator = %v after PopGroup", dc.Operator())
	}
}

func TestContextUnboundedOperatorStaysInPath(t *testing.T) {
	s := newTarget(10, 10)
	s.Fill(0xff0000ff)
	dc := NewContext(s)
	dc.SetOperator(OperatorSource)
	dc.SetSourceRGBA32(0xff0000ff)
	dc.Path(geom.NewPath().Circle(5, 5, 2))
	dc.Fill()
	assertPixel(t, s, 5, 5, 0xffff0000, 0)
	assertPixel(t, s, 0, 0, 0xff0000ff, 0)
}

func TestPixelRect(t *testing.T) {
	tests := []struct {
		name string
		pts  []geom.Point
		want image.Rectangle
		ok   bool
	}{
		{"closed", []geom.Point{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 1}}, image.Rect(1, 1, 4, 3), true},
		{"vertical first", []geom.Point{{X: 1, Y: 1}, {X: 1, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 1}}, image.Rect(1, 1, 4, 3), true},
		{"fractional", []geom.Point{{X: 1.5, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 3}, {X: 1.5, Y: 3}}, image.Rectangle{}, false},
		{"skewed", []geom.Point{{X: 1, Y: 1}, {X: 4, Y: 2}, {X: 4, Y: 3}, {X: 1, Y: 3}}, image.Rectangle{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pixelRect([]geom.Polyline{{Points: tt.pts, Closed: true}})
			if ok != tt.ok || got != tt.want {
				t.Errorf("pixelRect = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
