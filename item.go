package drawing

import (
	"image"
	"slices"

	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/geom"
)

// State is a set of derived item properties. A set bit means the
// property is up to date; a cleared bit schedules it for recomputation by
// the next Update.
type State uint8

// State bits.
const (
	StateBBox State = 1 << iota
	StateCache
	StatePick
	StateRender
	StateBackground

	StateAll = StateBBox | StateCache | StatePick | StateRender | StateBackground
)

// ChildType is the role of an item under its parent.
type ChildType uint8

// Child roles.
const (
	ChildOrphan ChildType = iota
	ChildNormal
	ChildClip
	ChildMask
	ChildRoot
)

// RenderFlags modify a render pass.
type RenderFlags uint8

// Render flags.
const (
	// RenderBypassCache ignores item caches.
	RenderBypassCache RenderFlags = 1 << iota
	// RenderFilterBackground marks the pass that renders the background
	// for a filter. The item receiving it draws its content without
	// clip, mask, opacity or filter.
	RenderFilterBackground
)

// RenderResult reports whether a render pass reached its stop item.
type RenderResult uint8

// Render results.
const (
	RenderOK RenderResult = iota
	RenderStop
)

// PickFlags modify a pick.
type PickFlags uint8

// Pick flags.
const (
	// PickSticky also finds invisible and insensitive items.
	PickSticky PickFlags = 1 << iota
	// PickAsClip picks against the clipping geometry of the item.
	PickAsClip
)

// InfiniteArea is an update area covering every item.
var InfiniteArea = image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)

// UpdateContext carries state inherited from the parent during Update.
type UpdateContext struct {
	// CTM maps the user space of the item's parent to device space.
	CTM geom.Affine
}

// Node is implemented by every item variant: *Group, *Shape, *Image,
// *Text, *Glyphs and *Item itself.
type Node interface {
	item() *Item
}

// ItemOf returns the common item part of n.
func ItemOf(n Node) *Item {
	if n == nil {
		return nil
	}
	return n.item()
}

// itemImpl is the closed set of variant hooks. Every variant embeds Item,
// which provides the defaults.
type itemImpl interface {
	Node
	// updateItem computes bbox and itemBBox and updates children. It
	// returns the new state of the item.
	updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State
	renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult
	clipItem(dc *Context, area image.Rectangle)
	pickItem(p geom.Point, delta float64, flags PickFlags) *Item
	canClip() bool
}

// Item is the record shared by all nodes of a drawing tree: tree links,
// compositing attributes, derived bounds and the dirty state.
//
// Items are created by a Drawing and are not safe for concurrent use.
type Item struct {
	d    *Drawing
	impl itemImpl
	id   uint64

	parent    *Item
	children  []*Item
	childType ChildType
	clip      *Item
	mask      *Item
	filter    *filter.Filter

	key  uint32
	data any

	transform *geom.Affine
	ctm       geom.Affine
	bbox      image.Rectangle
	drawbox   image.Rectangle
	itemBBox  geom.Rect

	cache     *Cache
	state     State
	propagate State

	opacity   float64
	blendMode BlendMode
	isolation bool
	antialias bool
	visible   bool
	sensitive bool
	group     bool

	cached           bool
	cachedPersistent bool

	backgroundNew        bool
	backgroundAccumulate bool
}

func (it *Item) item() *Item { return it }

func (it *Item) init(d *Drawing, impl itemImpl) {
	it.d = d
	it.impl = impl
	it.id = d.nextID()
	it.ctm = geom.Identity()
	it.itemBBox = geom.EmptyRect()
	it.opacity = 1
	it.antialias = true
	it.visible = true
	it.sensitive = true
}

// Default hooks, overridden by the variants.

func (it *Item) updateItem(image.Rectangle, UpdateContext, State, State) State { return StateAll }

func (it *Item) renderItem(*Context, image.Rectangle, RenderFlags, *Item) RenderResult {
	return RenderOK
}

func (it *Item) clipItem(*Context, image.Rectangle) {}

func (it *Item) pickItem(geom.Point, float64, PickFlags) *Item { return nil }

func (it *Item) canClip() bool { return false }

// ID returns the identifier of the item, unique within its Drawing.
func (it *Item) ID() uint64 { return it.id }

// Drawing returns the owning drawing.
func (it *Item) Drawing() *Drawing { return it.d }

// Node returns the variant the item belongs to.
func (it *Item) Node() Node { return it.impl }

// Parent returns the parent item; clips and masks return the item they
// belong to.
func (it *Item) Parent() *Item { return it.parent }

// Children returns the normal children in paint order.
func (it *Item) Children() []*Item { return it.children }

// ChildType returns the role of the item under its parent.
func (it *Item) ChildType() ChildType { return it.childType }

// State returns the up to date properties.
func (it *Item) State() State { return it.state }

// Key returns the caller-assigned key.
func (it *Item) Key() uint32 { return it.key }

// SetKey stores a caller-assigned key.
func (it *Item) SetKey(k uint32) { it.key = k }

// Data returns the caller-assigned data.
func (it *Item) Data() any { return it.data }

// SetData stores caller-assigned data.
func (it *Item) SetData(v any) { it.data = v }

// Bounds returns the geometric bounding box in device pixels, valid after
// Update.
func (it *Item) Bounds() image.Rectangle { return it.bbox }

// VisualBounds returns the drawbox: the device area the item can paint,
// including filter spread and clip or mask restriction.
func (it *Item) VisualBounds() image.Rectangle { return it.drawbox }

// ItemBounds returns the bounding box in user space.
func (it *Item) ItemBounds() geom.Rect { return it.itemBBox }

// CTM returns the user-to-device transform computed by the last Update.
func (it *Item) CTM() geom.Affine { return it.ctm }

// ClipItem returns the clipping item, or nil.
func (it *Item) ClipItem() *Item { return it.clip }

// MaskItem returns the mask item, or nil.
func (it *Item) MaskItem() *Item { return it.mask }

// Filter returns the filter, or nil.
func (it *Item) Filter() *filter.Filter { return it.filter }

// Cache returns the pixel cache, or nil.
func (it *Item) Cache() *Cache { return it.cache }

// Visible reports whether the item is rendered.
func (it *Item) Visible() bool { return it.visible }

// Opacity returns the item opacity.
func (it *Item) Opacity() float64 { return it.opacity }

// BlendMode returns the mix-blend-mode.
func (it *Item) BlendMode() BlendMode { return it.blendMode }

// Cached reports whether the item keeps a pixel cache.
func (it *Item) Cached() bool { return it.cached }

// IsAncestorOf reports whether it is a proper ancestor of other.
func (it *Item) IsAncestorOf(other *Item) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == it {
			return true
		}
	}
	return false
}

// AppendChild adds n on top of the children. n must be an orphan.
func (it *Item) AppendChild(n Node) {
	c := n.item()
	if !it.adopt(c, ChildNormal) {
		return
	}
	it.children = append(it.children, c)
	it.childAdded(c)
}

// PrependChild adds n below the children. n must be an orphan.
func (it *Item) PrependChild(n Node) {
	c := n.item()
	if !it.adopt(c, ChildNormal) {
		return
	}
	it.children = slices.Insert(it.children, 0, c)
	it.childAdded(c)
}

func (it *Item) adopt(c *Item, role ChildType) bool {
	if c.childType != ChildOrphan || c.d != it.d {
		Logger().Warn("drawing: child already attached", "parent", it.id, "child", c.id)
		return false
	}
	c.parent = it
	c.childType = role
	return true
}

func (it *Item) childAdded(c *Item) {
	// The child must start clean so that marking it reaches this item.
	c.state = StateAll
	c.markForUpdate(StateAll, true)
}

// ClearChildren destroys every normal child. The clip and mask stay.
func (it *Item) ClearChildren() {
	if len(it.children) == 0 {
		return
	}
	it.markForRendering()
	it.destroyChildren()
	it.markForUpdate(StateAll, false)
}

func (it *Item) destroyChildren() {
	children := it.children
	it.children = nil
	for _, c := range children {
		c.parent = nil
		c.childType = ChildOrphan
		c.Destroy()
	}
}

// Destroy detaches the item and destroys its subtree, clip and mask.
func (it *Item) Destroy() {
	d := it.d
	it.SetCached(false, true)
	d.removeCandidate(it)
	if it.parent != nil {
		it.markForRendering()
	}
	switch it.childType {
	case ChildNormal:
		if i := slices.Index(it.parent.children, it); i >= 0 {
			it.parent.children = slices.Delete(it.parent.children, i, i+1)
		}
	case ChildClip:
		it.parent.clip = nil
	case ChildMask:
		it.parent.mask = nil
	case ChildRoot:
		d.root = nil
	}
	if it.parent != nil {
		it.parent.markForUpdate(StateAll, false)
	}
	it.parent = nil
	it.childType = ChildOrphan

	// Detached already: nothing left to repaint or update.
	it.destroyChildren()
	for _, c := range []*Item{it.clip, it.mask} {
		if c != nil {
			c.parent = nil
			c.childType = ChildOrphan
			c.Destroy()
		}
	}
	it.clip, it.mask = nil, nil
	it.filter = nil
	it.transform = nil
	it.cache = nil
}

// SetZOrder moves the item to position z among its siblings, clamped to
// the sibling count. Clips, masks and roots are not affected.
func (it *Item) SetZOrder(z int) {
	if it.parent == nil || it.childType != ChildNormal {
		return
	}
	p := it.parent
	if i := slices.Index(p.children, it); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	z = min(max(z, 0), len(p.children))
	p.children = slices.Insert(p.children, z, it)
	it.markForRendering()
}

// Transform returns the transform relative to the parent.
func (it *Item) Transform() geom.Affine {
	if it.transform == nil {
		return geom.Identity()
	}
	return *it.transform
}

// SetTransform sets the transform relative to the parent.
func (it *Item) SetTransform(m geom.Affine) {
	if it.Transform().IsNear(m, 1e-18) {
		return
	}
	it.markForRendering()
	if m.IsIdentity() {
		it.transform = nil
	} else {
		it.transform = &m
	}
	it.markForUpdate(StateAll, true)
}

// SetOpacity sets the group opacity in [0,1].
func (it *Item) SetOpacity(opacity float64) {
	opacity = clamp01(opacity)
	if it.opacity != opacity {
		it.opacity = opacity
		it.markForRendering()
	}
}

// SetAntialias toggles antialiased rendering of the item.
func (it *Item) SetAntialias(aa bool) {
	if it.antialias != aa {
		it.antialias = aa
		it.markForRendering()
	}
}

// SetIsolation forces the item to be composited as an isolated group.
func (it *Item) SetIsolation(isolate bool) {
	it.isolation = isolate
	it.markForRendering()
}

// SetBlendMode sets the mix-blend-mode.
func (it *Item) SetBlendMode(m BlendMode) {
	it.blendMode = m
	it.markForRendering()
}

// SetVisible shows or hides the item.
func (it *Item) SetVisible(v bool) {
	if it.visible != v {
		it.visible = v
		it.markForRendering()
	}
}

// SetSensitive controls whether Pick can return the item.
func (it *Item) SetSensitive(s bool) {
	it.sensitive = s
}

// SetCached enables or disables the pixel cache. A persistent setting can
// only be changed by another persistent call; SetCached(false, true)
// removes it.
func (it *Item) SetCached(cached, persistent bool) {
	d := it.d
	if d.opts.cacheDisabled {
		return
	}
	if it.cachedPersistent && !persistent {
		return
	}
	it.cached = cached
	it.cachedPersistent = persistent && cached
	if cached {
		d.cachedItems[it.id] = it
	} else {
		delete(d.cachedItems, it.id)
		it.cache = nil
	}
}

// SetClip replaces the clipping item. The previous clip is destroyed. n
// may be nil.
func (it *Item) SetClip(n Node) {
	it.markForRendering()
	it.clip = it.replaceOwned(it.clip, n, ChildClip)
	it.markForUpdate(StateAll, true)
}

// SetMask replaces the mask item. The previous mask is destroyed. n may
// be nil.
func (it *Item) SetMask(n Node) {
	it.markForRendering()
	it.mask = it.replaceOwned(it.mask, n, ChildMask)
	it.markForUpdate(StateAll, true)
}

func (it *Item) replaceOwned(old *Item, n Node, role ChildType) *Item {
	if old != nil {
		old.parent = nil
		old.childType = ChildOrphan
		old.Destroy()
	}
	if n == nil {
		return nil
	}
	c := n.item()
	if !it.adopt(c, role) {
		return nil
	}
	return c
}

// SetFilter replaces the filter. f may be nil.
func (it *Item) SetFilter(f *filter.Filter) {
	it.markForRendering()
	it.filter = f
	it.markForUpdate(StateAll, false)
}

// SetBackgroundNew sets enable-background: new (true) or accumulate
// (false). Background-reading filters of descendants see what was painted
// since the nearest such item.
func (it *Item) SetBackgroundNew(v bool) {
	if it.backgroundNew == v {
		return
	}
	it.backgroundNew = v
	it.markForUpdate(StateBackground, true)
}
