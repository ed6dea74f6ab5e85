package drawing

import (
	"image"

	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// paintSourcer is implemented by items whose paint feeds the FillPaint and
// StrokePaint filter inputs.
type paintSourcer interface {
	paintSources() (fill, stroke surface.Source)
}

// Update recomputes the properties in flags that are not up to date, for
// the item and the part of its subtree that intersects area. Properties
// in reset are recomputed even when clean.
func (it *Item) Update(area image.Rectangle, ctx UpdateContext, flags, reset State) {
	d := it.d
	outline := d.opts.outline
	renderFilters := d.opts.renderFilters

	reset |= it.propagate
	it.propagate = 0
	it.state &^= reset

	toUpdate := flags &^ it.state
	if toUpdate == 0 {
		return
	}

	// Items with a known bbox outside the area keep their dirty bits.
	if it.state&StateBBox != 0 {
		box := it.drawbox
		if outline {
			box = it.bbox
		}
		if !area.Overlaps(box) {
			return
		}
	}

	if toUpdate&StateBackground != 0 {
		it.backgroundAccumulate = it.backgroundNew
		if it.childType == ChildNormal && it.parent.backgroundAccumulate {
			it.backgroundAccumulate = true
		}
	}

	child := ctx
	if it.transform != nil {
		child.CTM = ctx.CTM.Multiply(*it.transform)
	}
	ctmChange := child.CTM.Multiply(it.ctm.Invert())
	it.ctm = child.CTM

	it.state = it.impl.updateItem(area, child, flags, reset)

	if toUpdate&StateBBox != 0 {
		if it.filter != nil && renderFilters {
			it.drawbox = it.filter.EffectArea(it.itemBBox).Transform(it.ctm).RoundOutwards()
		} else {
			it.drawbox = it.bbox
		}
		if it.clip != nil {
			it.clip.Update(area, child, flags, reset)
			if outline {
				it.bbox = it.bbox.Union(it.clip.bbox)
			} else {
				it.drawbox = it.drawbox.Intersect(it.clip.bbox)
			}
		}
		if it.mask != nil {
			it.mask.Update(area, child, flags, reset)
			if outline {
				it.bbox = it.bbox.Union(it.mask.bbox)
			} else {
				it.drawbox = it.drawbox.Intersect(it.mask.drawbox)
			}
		}
	}

	if toUpdate&StateCache != 0 {
		d.removeCandidate(it)
		if score := it.cacheScore(); score >= d.opts.scoreThreshold {
			d.addCandidate(it, score, geom.IntArea(it.cacheRect())*4)
		}
		if it.cache != nil {
			if cl := it.cacheRect(); it.visible && !cl.Empty() {
				it.cache.ScheduleTransform(cl, ctmChange)
			} else {
				it.cache = nil
			}
		}
	}

	if toUpdate&StateRender != 0 {
		// Groups draw nothing themselves unless a filter spreads their
		// children.
		if !it.group || (it.filter != nil && renderFilters) {
			it.markForRendering()
		}
	}
}

// Render draws the item into dc, restricted to the device rectangle area.
// Rendering stops when stopAt is reached, which is how the background of
// a filter is produced.
func (it *Item) Render(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	d := it.d
	if it == stopAt {
		return RenderStop
	}
	if !it.visible || it.ctm.IsSingular(1e-18) {
		return RenderOK
	}
	if d.opts.outline {
		it.renderOutline(dc, area, flags)
		return RenderOK
	}

	carea := area.Intersect(it.drawbox)
	if carea.Empty() {
		return RenderOK
	}
	dc.SetAntialias(it.antialias)

	filtered := it.filter != nil && d.opts.renderFilters
	if it.cached && flags&RenderBypassCache == 0 {
		if it.cache != nil {
			it.cache.Prepare()
			dc.Push()
			dc.SetOperator(it.blendMode.Operator())
			it.cache.PaintFromCache(dc, &carea, filtered)
			dc.Pop()
			if carea.Empty() {
				return RenderOK
			}
		} else if cl := it.cacheRect(); !cl.Empty() {
			it.cache = newCache(cl)
			Logger().Debug("drawing: cache allocated", "id", it.id, "area", cl)
		}
	}

	needsIntermediate := it.clip != nil || it.mask != nil || filtered ||
		it.opacity < 0.995 || it.cache != nil || it.blendMode != BlendNormal || it.isolation
	if flags&RenderFilterBackground != 0 || !needsIntermediate {
		return it.impl.renderItem(dc, carea, flags&^RenderFilterBackground, stopAt)
	}

	iarea := carea
	if filtered {
		iarea = it.filter.AreaEnlarge(iarea, it.ctm).Intersect(it.drawbox)
	}

	intermediate := surface.NewArea(surface.FormatARGB32, iarea)
	ict := NewContext(intermediate)
	ict.SetAntialias(it.antialias)

	// Coverage: opacity, then clip, then mask.
	ict.SetSourceRGBA(0, 0, 0, it.opacity)
	ict.SetOperator(OperatorSource)
	ict.Paint()
	if it.clip != nil {
		ict.PushGroup()
		it.clip.Clip(ict, carea)
		ict.PopGroupToSource()
		ict.SetOperator(OperatorIn)
		ict.Paint()
	}
	ict.SetOperator(OperatorOver)
	if it.mask != nil {
		ict.PushGroup()
		it.mask.Render(ict, carea, flags, nil)
		g := ict.Target()
		surface.Filter(g, g, maskLuminanceToAlpha)
		ict.PopGroupToSource()
		ict.SetOperator(OperatorIn)
		ict.Paint()
		ict.SetOperator(OperatorOver)
	}

	// Content, multiplied into the coverage.
	ict.PushGroup()
	result := it.impl.renderItem(ict, iarea, flags, stopAt)
	if filtered {
		it.filter.Render(it.filterTarget(), ict.Target(), it.filterBackground(iarea, flags))
	}
	ict.PopGroupToSource()
	ict.SetOperator(OperatorIn)
	ict.Paint()

	if it.cached && it.cache != nil {
		cc := NewContext(it.cache.Surface())
		cc.SetOperator(OperatorSource)
		cc.SetSource(intermediate)
		cc.Rectangle(carea)
		cc.Fill()
		it.cache.MarkClean(carea)
	}

	dc.Push()
	dc.SetSource(intermediate)
	dc.SetOperator(it.blendMode.Operator())
	dc.Rectangle(carea)
	dc.Fill()
	dc.Pop()
	return result
}

func (it *Item) filterTarget() filter.Target {
	t := filter.Target{
		CTM:     it.ctm,
		BBox:    it.itemBBox,
		Quality: it.d.opts.quality,
	}
	if ps, ok := it.impl.(paintSourcer); ok {
		t.FillPaint, t.StrokePaint = ps.paintSources()
	}
	return t
}

// filterBackground renders everything painted since the nearest ancestor
// with a new background, up to this item.
func (it *Item) filterBackground(area image.Rectangle, flags RenderFlags) *surface.Surface {
	if !it.filter.UsesBackground() || !it.backgroundAccumulate {
		return nil
	}
	root := it
	for root != nil && !root.backgroundNew {
		root = root.parent
	}
	if root == nil {
		return nil
	}
	bg := surface.NewArea(surface.FormatARGB32, area)
	root.Render(NewContext(bg), area, flags|RenderFilterBackground, it)
	return bg
}

// maskLuminanceToAlpha converts a premultiplied pixel to an alpha-only
// pixel holding its luminance.
func maskLuminanceToAlpha(px uint32) uint32 {
	r := px >> 16 & 0xff
	g := px >> 8 & 0xff
	b := px & 0xff
	ao := r*109 + g*366 + b*37
	return ((ao + 256) << 15) & 0xff000000
}

func (it *Item) renderOutline(dc *Context, area image.Rectangle, flags RenderFlags) {
	carea := area.Intersect(it.bbox)
	if carea.Empty() {
		return
	}
	d := it.d
	it.impl.renderItem(dc, carea, flags, nil)

	saved := d.outlineColor
	if it.clip != nil {
		d.outlineColor = d.opts.outlineColors.Clip
		it.clip.Render(dc, carea, flags, nil)
	}
	if it.mask != nil {
		d.outlineColor = d.opts.outlineColors.Mask
		it.mask.Render(dc, carea, flags, nil)
	}
	d.outlineColor = saved
}

// Clip paints the clipping coverage of the item onto dc in opaque black
// and leaves a transparent source behind.
func (it *Item) Clip(dc *Context, area image.Rectangle) {
	if !it.impl.canClip() || !it.visible || !area.Overlaps(it.bbox) {
		return
	}
	dc.SetSourceRGBA(0, 0, 0, 1)
	dc.PushGroup()
	it.impl.clipItem(dc, area)
	if it.clip != nil {
		dc.PushGroup()
		it.clip.Clip(dc, area)
		dc.PopGroupToSource()
		dc.SetOperator(OperatorIn)
		dc.Paint()
	}
	dc.PopGroupToSource()
	dc.SetOperator(OperatorOver)
	dc.Paint()
	dc.SetSource(nil)
}

// Pick returns the item under the device point p within tolerance delta,
// or nil. Update must have computed StateBBox and StatePick.
func (it *Item) Pick(p geom.Point, delta float64, flags PickFlags) *Item {
	if it.state&(StateBBox|StatePick) != StateBBox|StatePick {
		Logger().Warn("drawing: pick on item with stale state", "id", it.id, "state", it.state)
		return nil
	}
	if flags&PickSticky == 0 && !(it.visible && it.sensitive) {
		return nil
	}
	outline := it.d.opts.outline
	if !outline {
		if it.clip != nil && it.clip.Pick(p, delta, flags|PickAsClip) == nil {
			return nil
		}
		if it.mask != nil && it.mask.Pick(p, delta, flags) == nil {
			return nil
		}
	}
	box := it.drawbox
	if outline || flags&PickAsClip != 0 {
		box = it.bbox
	}
	if box.Empty() {
		return nil
	}
	if geom.FromImageRect(box).Expand(delta).Contains(p) {
		return it.impl.pickItem(p, delta, flags)
	}
	return nil
}

// markForUpdate clears flags on the item and its ancestors. With
// propagate the flags are also reset on the whole subtree by the next
// Update. The drawing is asked for an update once the clearing stops.
func (it *Item) markForUpdate(flags State, propagate bool) {
	if propagate {
		it.propagate |= flags
	}
	if it.state&flags != 0 {
		it.state &^= flags
		if it.parent != nil {
			it.parent.markForUpdate(flags, false)
			return
		}
	}
	it.d.requestUpdate(it)
}

// markForRendering invalidates the area the item currently covers in
// every cache above it and asks the drawing to repaint it.
func (it *Item) markForRendering() {
	dirty := it.drawbox
	if it.d.opts.outline {
		dirty = it.bbox
	}
	if dirty.Empty() {
		return
	}
	var bkgRoot *Item
	for i := it; i != nil; i = i.parent {
		if i != it && i.filter != nil {
			dirty = i.filter.AreaEnlarge(dirty, i.ctm)
		}
		if i.cache != nil {
			i.cache.MarkDirty(dirty)
		}
		if i.backgroundAccumulate {
			bkgRoot = i
		}
	}
	if bkgRoot != nil {
		bkgRoot.invalidateFilterBackground(dirty)
	}
	it.d.requestRender(dirty)
}

// invalidateFilterBackground dirties the caches of background-reading
// filtered items that overlap area.
func (it *Item) invalidateFilterBackground(area image.Rectangle) {
	if !it.drawbox.Overlaps(area) {
		return
	}
	if it.cache != nil && it.filter != nil && it.filter.UsesBackground() {
		it.cache.MarkDirty(area)
	}
	for _, c := range it.children {
		c.invalidateFilterBackground(area)
	}
}

// cacheRect is the part of the drawbox a cache would hold.
func (it *Item) cacheRect() image.Rectangle {
	r := it.drawbox
	if it.d.opts.hasCacheLimit {
		r = r.Intersect(it.d.opts.cacheLimit)
	}
	return r
}

// cacheScore estimates the work saved per frame by caching the item.
func (it *Item) cacheScore() float64 {
	cr := it.cacheRect()
	if cr.Empty() {
		return -1
	}
	score := float64(geom.IntArea(cr))
	if it.filter != nil && it.d.opts.renderFilters {
		score *= it.filter.Complexity(it.ctm)
		// Filters sampling a neighbourhood redo that work at every edge.
		tile := it.filter.AreaEnlarge(image.Rect(0, 0, 16, 16), it.ctm)
		tile.Min.X = max(tile.Min.X, 0)
		tile.Max.X = min(tile.Max.X, 16)
		score *= float64(geom.IntArea(tile)) / 256
	}
	if it.clip != nil {
		score += float64(geom.IntArea(it.clip.bbox)) * 0.5
	}
	if it.mask != nil {
		score += it.mask.cacheScore()
	}
	return score
}
