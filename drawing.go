package drawing

import (
	"image"
	"slices"

	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/geom"
)

// Drawing owns an item tree and the state shared by its items: display
// mode, the caching candidates and the set of cached items.
//
// A Drawing and its items must be used from one goroutine at a time.
type Drawing struct {
	opts options
	root *Item
	ids  uint64

	outlineColor uint32

	candidates  []cacheCandidate
	cachedItems map[uint64]*Item

	onRender []func(image.Rectangle)
	onUpdate []func(*Item)
}

// cacheCandidate is an item whose cache score reached the threshold.
type cacheCandidate struct {
	item  *Item
	score float64
	size  int
}

// New creates an empty drawing.
func New(opts ...Option) *Drawing {
	o := defaultOptions()
	o.apply(opts)
	return &Drawing{
		opts:         o,
		outlineColor: o.outlineColors.Item,
		cachedItems:  make(map[uint64]*Item),
	}
}

func (d *Drawing) nextID() uint64 {
	d.ids++
	return d.ids
}

// Root returns the root item, or nil.
func (d *Drawing) Root() *Item { return d.root }

// SetRoot makes n the root item. n must be an orphan; nil removes the
// root without destroying it.
func (d *Drawing) SetRoot(n Node) {
	if d.root != nil {
		old := d.root
		old.markForRendering()
		old.childType = ChildOrphan
		d.root = nil
	}
	if n == nil {
		return
	}
	it := n.item()
	if it.childType != ChildOrphan || it.d != d {
		Logger().Warn("drawing: root must be an orphan of this drawing", "id", it.id)
		return
	}
	it.childType = ChildRoot
	d.root = it
	it.markForUpdate(StateAll, true)
}

// OnRequestRender registers fn to receive every device area that needs
// repainting.
func (d *Drawing) OnRequestRender(fn func(image.Rectangle)) {
	d.onRender = append(d.onRender, fn)
}

// OnRequestUpdate registers fn to receive the items that need an Update.
func (d *Drawing) OnRequestUpdate(fn func(*Item)) {
	d.onUpdate = append(d.onUpdate, fn)
}

func (d *Drawing) requestRender(area image.Rectangle) {
	for _, fn := range d.onRender {
		fn(area)
	}
}

func (d *Drawing) requestUpdate(it *Item) {
	for _, fn := range d.onUpdate {
		fn(it)
	}
}

// Outline reports whether the drawing renders in outline mode.
func (d *Drawing) Outline() bool { return d.opts.outline }

// SetOutline switches outline mode. Every item is updated again.
func (d *Drawing) SetOutline(outline bool) {
	if d.opts.outline == outline {
		return
	}
	d.opts.outline = outline
	d.invalidateAll()
}

// OutlineColors returns the outline mode colors.
func (d *Drawing) OutlineColors() OutlineColors { return d.opts.outlineColors }

// SetOutlineColors changes the outline mode colors.
func (d *Drawing) SetOutlineColors(c OutlineColors) {
	d.opts.outlineColors = c
	d.outlineColor = c.Item
	if d.opts.outline && d.root != nil {
		d.root.markForRendering()
	}
}

// RenderFilters reports whether filters are applied.
func (d *Drawing) RenderFilters() bool { return d.opts.renderFilters }

// SetRenderFilters switches filter rendering. Every item is updated again.
func (d *Drawing) SetRenderFilters(render bool) {
	if d.opts.renderFilters == render {
		return
	}
	d.opts.renderFilters = render
	d.invalidateAll()
}

// FilterQuality returns the filter quality.
func (d *Drawing) FilterQuality() filter.Quality { return d.opts.quality }

// SetFilterQuality changes the filter quality.
func (d *Drawing) SetFilterQuality(q filter.Quality) {
	if d.opts.quality == q {
		return
	}
	d.opts.quality = q
	d.invalidateAll()
}

// CacheLimit returns the rectangle caches are restricted to and whether
// one is set.
func (d *Drawing) CacheLimit() (image.Rectangle, bool) {
	return d.opts.cacheLimit, d.opts.hasCacheLimit
}

// SetCacheLimit restricts caches to r, usually the visible area. The
// cache state of every item is recomputed.
func (d *Drawing) SetCacheLimit(r image.Rectangle) {
	d.opts.cacheLimit = r
	d.opts.hasCacheLimit = true
	if d.root != nil {
		d.root.markForUpdate(StateCache, true)
	}
}

// CacheBudget returns the memory available to caches in bytes.
func (d *Drawing) CacheBudget() int { return d.opts.cacheBudget }

// SetCacheBudget changes the memory available to caches. It takes effect
// at the next Update that recomputes cache state.
func (d *Drawing) SetCacheBudget(bytes int) {
	d.opts.cacheBudget = max(bytes, 0)
	if d.root != nil {
		d.root.markForUpdate(StateCache, true)
	}
}

// CachedItems returns the number of items with caching enabled.
func (d *Drawing) CachedItems() int { return len(d.cachedItems) }

// CacheMemory returns the bytes held by item caches.
func (d *Drawing) CacheMemory() int {
	n := 0
	for _, it := range d.cachedItems {
		if it.cache != nil {
			n += it.cache.MemorySize()
		}
	}
	return n
}

func (d *Drawing) invalidateAll() {
	if d.root == nil {
		return
	}
	d.root.markForRendering()
	d.root.markForUpdate(StateAll, true)
}

// Update brings the tree up to date for the device area. Items outside
// area keep their dirty state. A zero UpdateContext stands for the
// identity transform.
func (d *Drawing) Update(area image.Rectangle, ctx UpdateContext, flags, reset State) {
	if d.root == nil {
		return
	}
	if ctx.CTM == (geom.Affine{}) {
		ctx.CTM = geom.Identity()
	}
	d.root.Update(area, ctx, flags, reset)
	if (flags|reset)&StateCache != 0 {
		d.pickItemsForCaching()
	}
}

// Render draws the tree into dc, restricted to area.
func (d *Drawing) Render(dc *Context, area image.Rectangle, flags RenderFlags) {
	if d.root == nil {
		return
	}
	if d.root.state&StateBBox == 0 {
		Logger().Warn("drawing: render before update", "root", d.root.id)
		return
	}
	d.root.Render(dc, area, flags, nil)
}

// Pick returns the topmost item at the device point p within delta, or
// nil.
func (d *Drawing) Pick(p geom.Point, delta float64, flags PickFlags) *Item {
	if d.root == nil {
		return nil
	}
	return d.root.Pick(p, delta, flags)
}

func (d *Drawing) addCandidate(it *Item, score float64, size int) {
	d.candidates = append(d.candidates, cacheCandidate{item: it, score: score, size: size})
}

func (d *Drawing) removeCandidate(it *Item) {
	d.candidates = slices.DeleteFunc(d.candidates, func(c cacheCandidate) bool {
		return c.item == it
	})
}

// pickItemsForCaching enables caches for the best scoring candidates that
// fit in the budget and disables the others.
func (d *Drawing) pickItemsForCaching() {
	slices.SortStableFunc(d.candidates, func(a, b cacheCandidate) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	used := 0
	selected := make(map[uint64]*Item)
	for _, c := range d.candidates {
		if used+c.size > d.opts.cacheBudget {
			break
		}
		used += c.size
		selected[c.item.id] = c.item
	}

	for id, it := range d.cachedItems {
		if _, ok := selected[id]; !ok {
			it.SetCached(false, false)
		}
	}
	for _, it := range selected {
		it.SetCached(true, false)
	}
	Logger().Debug("drawing: cache candidates selected",
		"candidates", len(d.candidates), "cached", len(d.cachedItems), "bytes", used)
}
