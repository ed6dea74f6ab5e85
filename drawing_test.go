package drawing

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

func rectPath(x, y, w, h float64) *geom.Path {
	return geom.NewPath().Rectangle(x, y, w, h)
}

func newRect(d *Drawing, x, y, w, h float64, rgba uint32) *Shape {
	s := d.NewShape()
	st := DefaultStyle()
	st.Fill = SolidPaint(rgba)
	s.SetStyle(st)
	s.SetPath(rectPath(x, y, w, h))
	return s
}

func newScene(opts ...Option) (*Drawing, *Group) {
	d := New(opts...)
	root := d.NewGroup()
	root.SetPickChildren(true)
	d.SetRoot(root)
	return d, root
}

func updateAll(d *Drawing) {
	d.Update(InfiniteArea, UpdateContext{CTM: geom.Identity()}, StateAll, 0)
}

func renderTo(t *testing.T, d *Drawing, area image.Rectangle, bg uint32) *surface.Surface {
	t.Helper()
	s := surface.NewArea(surface.FormatARGB32, area)
	s.Fill(bg)
	d.Render(NewContext(s), area, 0)
	return s
}

func assertPixel(t *testing.T, s *surface.Surface, x, y int, want uint32, tol int) {
	t.Helper()
	got := s.WordAt(x, y)
	for shift := 0; shift < 32; shift += 8 {
		g := int(got >> shift & 0xff)
		w := int(want >> shift & 0xff)
		if g-w > tol || w-g > tol {
			t.Errorf("pixel (%d,%d) = %#08x, want %#08x ±%d", x, y, got, want, tol)
			return
		}
	}
}

func TestOpacityOverWhite(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 10, 10, 20, 20, 0xff0000ff)
	s.SetOpacity(0.5)
	root.AppendChild(s)
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 40, 40), 0xffffffff)
	assertPixel(t, out, 20, 20, 0xffff7f7f, 1)
	assertPixel(t, out, 5, 5, 0xffffffff, 0)
}

func TestMultiplyBlendMode(t *testing.T) {
	d, root := newScene()
	root.AppendChild(newRect(d, 0, 0, 10, 10, 0x64c896ff))
	top := newRect(d, 0, 0, 10, 10, 0xc86432ff)
	top.SetBlendMode(BlendMultiply)
	root.AppendChild(top)
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 10, 10), 0)
	assertPixel(t, out, 5, 5, 0xff4e4e1d, 1)
}

func TestMarkForUpdatePropagation(t *testing.T) {
	d, root := newScene()
	g1, g2 := d.NewGroup(), d.NewGroup()
	root.AppendChild(g1)
	root.AppendChild(g2)
	leaf := newRect(d, 0, 0, 10, 10, 0xff0000ff)
	other := newRect(d, 20, 0, 10, 10, 0x00ff00ff)
	g1.AppendChild(leaf)
	g2.AppendChild(other)
	updateAll(d)

	for _, it := range []*Item{&root.Item, &g1.Item, &g2.Item, &leaf.Item, &other.Item} {
		if it.State() != StateAll {
			t.Fatalf("item %d state = %05b after full update", it.ID(), it.State())
		}
	}

	var requests []*Item
	d.OnRequestUpdate(func(it *Item) { requests = append(requests, it) })
	leaf.markForUpdate(StateCache, true)

	for _, it := range []*Item{&leaf.Item, &g1.Item, &root.Item} {
		if it.State()&StateCache != 0 {
			t.Errorf("item %d still has StateCache", it.ID())
		}
	}
	for _, it := range []*Item{&g2.Item, &other.Item} {
		if it.State() != StateAll {
			t.Errorf("unrelated item %d state = %05b", it.ID(), it.State())
		}
	}
	if leaf.propagate&StateCache == 0 {
		t.Error("propagate flag not recorded")
	}
	if len(requests) != 1 || requests[0] != &root.Item {
		t.Errorf("update requests = %v, want the root once", requests)
	}

	updateAll(d)
	if root.State() != StateAll || leaf.State() != StateAll {
		t.Error("update did not restore the state")
	}
}

func TestRenderRequests(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 10, 10, 20, 20, 0xff0000ff)
	root.AppendChild(s)
	updateAll(d)

	var dirty []image.Rectangle
	d.OnRequestRender(func(r image.Rectangle) { dirty = append(dirty, r) })
	s.SetTransform(geom.Translate(50, 0))
	updateAll(d)

	for _, want := range []image.Rectangle{image.Rect(10, 10, 30, 30), image.Rect(60, 10, 80, 30)} {
		if !slices.Contains(dirty, want) {
			t.Errorf("render requests %v miss %v", dirty, want)
		}
	}
}

func TestRenderRequestsEnlargedByAncestorFilter(t *testing.T) {
	d, root := newScene()
	g := d.NewGroup()
	g.SetFilter(filter.New(&filter.GaussianBlur{StdDeviationX: 2, StdDeviationY: 2}))
	root.AppendChild(g)
	s := newRect(d, 10, 10, 20, 20, 0xff0000ff)
	g.AppendChild(s)
	updateAll(d)

	var dirty []image.Rectangle
	d.OnRequestRender(func(r image.Rectangle) { dirty = append(dirty, r) })
	s.SetOpacity(0.5)
	if len(dirty) != 1 {
		t.Fatalf("got %d render requests, want 1", len(dirty))
	}
	if r := dirty[0]; !image.Rect(10, 10, 30, 30).In(r) || r == image.Rect(10, 10, 30, 30) {
		t.Errorf("dirty area %v not enlarged", r)
	}
}

func TestFilterDrawbox(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 20, 20, 20, 20, 0x000000ff)
	s.SetFilter(filter.New(&filter.GaussianBlur{StdDeviationX: 3, StdDeviationY: 3}))
	root.AppendChild(s)
	updateAll(d)

	if !s.Bounds().In(s.VisualBounds()) || s.Bounds() == s.VisualBounds() {
		t.Fatalf("drawbox %v does not extend bbox %v", s.VisualBounds(), s.Bounds())
	}
	out := renderTo(t, d, image.Rect(0, 0, 60, 60), 0)
	if a := out.WordAt(19, 30) >> 24; a == 0 {
		t.Error("blur did not spread outside the shape")
	}
	if a := out.WordAt(30, 30) >> 24; a < 200 {
		t.Errorf("shape center alpha = %d after blur", a)
	}
}

func TestClipGroup(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 0, 0, 20, 10, 0xff0000ff)
	clip := d.NewGroup()
	clip.AppendChild(newRect(d, 0, 0, 5, 10, 0x000000ff))
	clip.AppendChild(newRect(d, 15, 0, 5, 10, 0x000000ff))
	s.SetClip(clip)
	root.AppendChild(s)
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 20, 10), 0)
	assertPixel(t, out, 2, 5, 0xffff0000, 0)
	assertPixel(t, out, 17, 5, 0xffff0000, 0)
	assertPixel(t, out, 10, 5, 0, 0)

	if got := d.Pick(geom.Pt(10, 5), 0, 0); got != nil {
		t.Errorf("pick through clip gap = item %d, want nil", got.ID())
	}
	if got := d.Pick(geom.Pt(2, 5), 0, 0); got != &s.Item {
		t.Error("pick inside clip missed the shape")
	}
}

func TestMaskLuminance(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 0, 0, 20, 10, 0xff0000ff)
	mask := d.NewGroup()
	mask.AppendChild(newRect(d, 0, 0, 10, 10, 0xffffffff))
	mask.AppendChild(newRect(d, 10, 0, 10, 10, 0x000000ff))
	s.SetMask(mask)
	root.AppendChild(s)
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 20, 10), 0)
	assertPixel(t, out, 5, 5, 0xffff0000, 0)
	assertPixel(t, out, 15, 5, 0, 0)
}

func TestMaskLuminanceToAlpha(t *testing.T) {
	tests := []struct {
		px   uint32
		want uint32
	}{
		{0xffffffff, 0xff000000},
		{0xff000000, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := maskLuminanceToAlpha(tt.px); got != tt.want {
			t.Errorf("maskLuminanceToAlpha(%#08x) = %#08x, want %#08x", tt.px, got, tt.want)
		}
	}
}

func TestPick(t *testing.T) {
	d, root := newScene()
	bottom := newRect(d, 0, 0, 20, 20, 0xff0000ff)
	top := newRect(d, 10, 10, 20, 20, 0x0000ffff)
	root.AppendChild(bottom)
	root.AppendChild(top)
	updateAll(d)

	tests := []struct {
		name string
		p    geom.Point
		want *Item
	}{
		{"overlap picks top", geom.Pt(15, 15), &top.Item},
		{"bottom only", geom.Pt(5, 5), &bottom.Item},
		{"outside", geom.Pt(50, 50), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Pick(tt.p, 0, 0); got != tt.want {
				t.Errorf("Pick(%v) = %p, want %p", tt.p, got, tt.want)
			}
		})
	}

	t.Run("group without pick children", func(t *testing.T) {
		root.SetPickChildren(false)
		defer root.SetPickChildren(true)
		if got := d.Pick(geom.Pt(5, 5), 0, 0); got != &root.Item {
			t.Error("group did not pick itself")
		}
	})

	t.Run("invisible and sticky", func(t *testing.T) {
		top.SetVisible(false)
		defer top.SetVisible(true)
		if got := d.Pick(geom.Pt(15, 15), 0, 0); got != &bottom.Item {
			t.Error("invisible item was picked")
		}
		if got := d.Pick(geom.Pt(15, 15), 0, PickSticky); got != &top.Item {
			t.Error("sticky pick skipped the invisible item")
		}
	})

	t.Run("insensitive", func(t *testing.T) {
		top.SetSensitive(false)
		defer top.SetSensitive(true)
		if got := d.Pick(geom.Pt(25, 25), 0, 0); got != nil {
			t.Error("insensitive item was picked")
		}
	})
}

func TestPickStroke(t *testing.T) {
	d, root := newScene()
	s := d.NewShape()
	st := DefaultStyle()
	st.Fill = Paint{}
	st.Stroke = SolidPaint(0x000000ff)
	st.StrokeWidth = 4
	s.SetStyle(st)
	s.SetPath(rectPath(10, 10, 20, 20))
	root.AppendChild(s)
	updateAll(d)

	if got := d.Pick(geom.Pt(11, 20), 0.5, 0); got != &s.Item {
		t.Error("stroke was not picked")
	}
	if got := d.Pick(geom.Pt(20, 20), 0.5, 0); got != nil {
		t.Error("unfilled interior was picked")
	}
}

func TestPaintOrder(t *testing.T) {
	build := func(order PaintOrder) *surface.Surface {
		d, root := newScene()
		s := d.NewShape()
		st := DefaultStyle()
		st.Fill = SolidPaint(0xff0000ff)
		st.Stroke = SolidPaint(0x0000ffff)
		st.StrokeWidth = 4
		st.PaintOrder = order
		s.SetStyle(st)
		s.SetPath(rectPath(10, 10, 20, 20))
		root.AppendChild(s)
		updateAll(d)
		return renderTo(t, d, image.Rect(0, 0, 40, 40), 0)
	}

	assertPixel(t, build(PaintOrderNormal), 11, 20, 0xff0000ff, 0)
	assertPixel(t, build(PaintOrderStroke), 11, 20, 0xffff0000, 0)
	assertPixel(t, build(PaintOrderStroke), 9, 20, 0xff0000ff, 0)
}

func TestOutlineMode(t *testing.T) {
	d, root := newScene(WithOutline(true))
	root.AppendChild(newRect(d, 10, 10, 20, 20, 0xff0000ff))
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 40, 40), 0xffffffff)
	assertPixel(t, out, 20, 20, 0xffffffff, 0)
	if out.WordAt(10, 20) == 0xffffffff {
		t.Error("outline not drawn on the edge")
	}
	if px := out.WordAt(10, 20); px>>16&0xff != px&0xff {
		t.Errorf("outline pixel %#08x is not gray", px)
	}
}

func TestTreeEditing(t *testing.T) {
	d, root := newScene()
	a := newRect(d, 0, 0, 1, 1, 0xff0000ff)
	b := newRect(d, 0, 0, 1, 1, 0xff0000ff)
	c := newRect(d, 0, 0, 1, 1, 0xff0000ff)
	root.AppendChild(a)
	root.AppendChild(b)
	root.AppendChild(c)

	c.SetZOrder(0)
	if got := root.Children(); !slices.Equal(got, []*Item{&c.Item, &a.Item, &b.Item}) {
		t.Fatalf("after SetZOrder(0): %v", got)
	}
	c.SetZOrder(99)
	if got := root.Children(); got[2] != &c.Item {
		t.Fatal("SetZOrder beyond the end did not move to top")
	}

	b.Destroy()
	if got := root.Children(); !slices.Equal(got, []*Item{&a.Item, &c.Item}) {
		t.Fatalf("after Destroy: %v", got)
	}
	if b.Parent() != nil || b.ChildType() != ChildOrphan {
		t.Error("destroyed item still attached")
	}

	if !root.IsAncestorOf(&a.Item) || a.IsAncestorOf(&root.Item) {
		t.Error("IsAncestorOf")
	}

	root.PrependChild(b)
	if root.Children()[0] != &b.Item {
		t.Error("PrependChild did not insert first")
	}
	root.AppendChild(b)
	if len(root.Children()) != 3 {
		t.Error("attached child was added twice")
	}

	root.ClearChildren()
	if len(root.Children()) != 0 {
		t.Error("ClearChildren left children")
	}
	root.Destroy()
	if d.Root() != nil {
		t.Error("destroying the root did not clear it")
	}
}

func TestSetClipReplacesAndDestroys(t *testing.T) {
	d, root := newScene()
	s := newRect(d, 0, 0, 10, 10, 0xff0000ff)
	root.AppendChild(s)
	c1 := newRect(d, 0, 0, 5, 5, 0x000000ff)
	c2 := newRect(d, 0, 0, 5, 5, 0x000000ff)
	s.SetClip(c1)
	if s.ClipItem() != &c1.Item || c1.ChildType() != ChildClip || c1.Parent() != &s.Item {
		t.Fatal("clip not attached")
	}
	s.SetClip(c2)
	if s.ClipItem() != &c2.Item || c1.Parent() != nil {
		t.Error("old clip not released")
	}
	s.SetClip(nil)
	if s.ClipItem() != nil {
		t.Error("SetClip(nil) kept the clip")
	}
}

func TestCacheCoherency(t *testing.T) {
	d, root := newScene()
	s := d.NewShape()
	s.SetPath(geom.NewPath().Circle(150, 150, 140))
	root.AppendChild(s)
	updateAll(d)

	if !s.Cached() || !root.Cached() {
		t.Fatalf("large items not cached: shape %v root %v", s.Cached(), root.Cached())
	}
	area := image.Rect(0, 0, 300, 300)
	first := renderTo(t, d, area, 0xffffffff)
	if s.Cache() == nil || !s.Cache().Clean().ContainsRect(s.VisualBounds()) {
		t.Fatal("cache not populated by the first render")
	}
	second := renderTo(t, d, area, 0xffffffff)
	if !slices.Equal(first.Pix(), second.Pix()) {
		t.Error("render from cache differs from the first render")
	}

	st := s.Style()
	st.Fill = SolidPaint(0x00ff00ff)
	s.SetStyle(st)
	updateAll(d)
	third := renderTo(t, d, area, 0xffffffff)
	assertPixel(t, third, 150, 150, 0xff00ff00, 0)
}

func TestCacheCandidatesWithinBudget(t *testing.T) {
	// root 500x200, big 200x200, small 100x100
	d, root := newScene(WithCacheScoreThreshold(1), WithCacheBudget(500*200*4+200*200*4))
	small := newRect(d, 0, 0, 100, 100, 0xff0000ff)
	big := newRect(d, 300, 0, 200, 200, 0xff0000ff)
	root.AppendChild(small)
	root.AppendChild(big)
	updateAll(d)

	if !root.Cached() || !big.Cached() || small.Cached() {
		t.Errorf("cached: root %v big %v small %v, want true true false",
			root.Cached(), big.Cached(), small.Cached())
	}
	if d.CachedItems() != 2 {
		t.Errorf("CachedItems = %d, want 2", d.CachedItems())
	}

	d.SetCacheBudget(0)
	updateAll(d)
	if d.CachedItems() != 0 {
		t.Errorf("CachedItems = %d with zero budget", d.CachedItems())
	}
}

func TestSetCachedPersistent(t *testing.T) {
	d, root := newScene(WithCacheBudget(0))
	s := newRect(d, 0, 0, 10, 10, 0xff0000ff)
	root.AppendChild(s)

	s.SetCached(true, true)
	s.SetCached(false, false)
	updateAll(d)
	if !s.Cached() {
		t.Fatal("persistent cache was dropped")
	}
	s.SetCached(false, true)
	if s.Cached() {
		t.Error("persistent uncache ignored")
	}

	off, offRoot := newScene(WithCacheDisabled(true))
	o := newRect(off, 0, 0, 10, 10, 0xff0000ff)
	offRoot.AppendChild(o)
	o.SetCached(true, true)
	if o.Cached() {
		t.Error("caching enabled on a drawing with caches disabled")
	}
}

func TestRenderStopsAtItem(t *testing.T) {
	d, root := newScene()
	a := newRect(d, 0, 0, 10, 10, 0xff0000ff)
	b := newRect(d, 0, 0, 10, 10, 0x0000ffff)
	root.AppendChild(a)
	root.AppendChild(b)
	updateAll(d)

	s := surface.NewArea(surface.FormatARGB32, image.Rect(0, 0, 10, 10))
	if got := root.Render(NewContext(s), s.Area(), 0, &b.Item); got != RenderStop {
		t.Errorf("Render = %v, want RenderStop", got)
	}
	assertPixel(t, s, 5, 5, 0xffff0000, 0)
}

func TestUpdateOutsideAreaKeepsDirty(t *testing.T) {
	d, root := newScene()
	near := newRect(d, 0, 0, 10, 10, 0xff0000ff)
	far := newRect(d, 500, 500, 10, 10, 0xff0000ff)
	root.AppendChild(near)
	root.AppendChild(far)
	updateAll(d)

	far.SetOpacity(0.5)
	far.markForUpdate(StateCache, false)
	d.Update(image.Rect(0, 0, 100, 100), UpdateContext{}, StateAll, 0)
	if far.State()&StateCache != 0 {
		t.Error("item outside the update area was updated")
	}
	if root.State()&StateCache != 0 {
		t.Error("parent of a dirty item reports clean")
	}
}

func TestImageItem(t *testing.T) {
	d, root := newScene()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.Pix[3] = 0 // top-left transparent

	im := d.NewImage()
	im.SetPixels(src)
	im.SetSmooth(false)
	im.SetRect(geom.R(0, 0, 20, 20))
	root.AppendChild(im)
	updateAll(d)

	if got := im.Bounds(); got != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bbox = %v", got)
	}
	out := renderTo(t, d, image.Rect(0, 0, 20, 20), 0)
	assertPixel(t, out, 15, 15, 0xffffffff, 0)
	assertPixel(t, out, 5, 5, 0, 0)

	if got := d.Pick(geom.Pt(5, 5), 0, 0); got != nil {
		t.Error("transparent pixel was picked")
	}
	if got := d.Pick(geom.Pt(15, 5), 0, 0); got != &im.Item {
		t.Error("opaque pixel was not picked")
	}
}

func TestTextPicksAsWhole(t *testing.T) {
	d, root := newScene()
	txt := d.NewText()
	g1 := txt.AddGlyph(rectPath(0, 0, 8, 10), geom.Identity())
	txt.AddGlyph(rectPath(0, 0, 8, 10), geom.Translate(10, 0))
	root.AppendChild(txt)
	updateAll(d)

	if got := txt.Bounds(); got != image.Rect(0, 0, 18, 10) {
		t.Errorf("text bbox = %v", got)
	}
	if got := d.Pick(geom.Pt(14, 5), 0, 0); got != &txt.Item {
		t.Error("glyph pick did not return the text")
	}
	out := renderTo(t, d, image.Rect(0, 0, 20, 10), 0)
	assertPixel(t, out, 4, 5, 0xff000000, 0)
	assertPixel(t, out, 9, 5, 0, 0)
	if g1.Parent() != &txt.Item {
		t.Error("glyph not attached to text")
	}
}

func TestFilterReadsAccumulatedBackground(t *testing.T) {
	d, root := newScene()
	root.SetBackgroundNew(true)
	root.AppendChild(newRect(d, 0, 0, 20, 20, 0xff0000ff))
	s := newRect(d, 5, 5, 10, 10, 0x0000ffff)
	s.SetFilter(filter.New(&filter.Merge{Inputs: []string{filter.BackgroundImage}}))
	root.AppendChild(s)
	updateAll(d)

	out := renderTo(t, d, image.Rect(0, 0, 20, 20), 0)
	// linearRGB round trip may turn 0xff into 0xfe
	assertPixel(t, out, 10, 10, 0xffff0000, 1)
	assertPixel(t, out, 2, 2, 0xffff0000, 0)
}

func TestCacheScoreCountsWholeClip(t *testing.T) {
	d, root := newScene(WithCacheLimit(image.Rect(0, 0, 10, 10)))
	s := newRect(d, 0, 0, 20, 10, 0xff0000ff)
	s.SetClip(newRect(d, 0, 0, 20, 10, 0x000000ff))
	root.AppendChild(s)
	updateAll(d)

	// 10x10 inside the cache limit plus half of the 20x10 clip
	if got := s.cacheScore(); got != 200 {
		t.Errorf("cacheScore = %v, want 200", got)
	}
}

func TestDestroyDoesNotRequestUpdateOfItself(t *testing.T) {
	d, root := newScene()
	g := d.NewGroup()
	g.AppendChild(newRect(d, 0, 0, 10, 10, 0xff0000ff))
	root.AppendChild(g)
	updateAll(d)

	var requests []*Item
	d.OnRequestUpdate(func(it *Item) { requests = append(requests, it) })
	g.Destroy()

	if slices.Contains(requests, &g.Item) {
		t.Error("destroyed group requested an update")
	}
	if !slices.Contains(requests, &root.Item) {
		t.Error("parent of the destroyed group was not marked for update")
	}
}
