package drawing

import (
	"image"

	"github.com/gogpu/drawing/geom"
)

// Group is an item that draws its children in order.
type Group struct {
	Item

	childTransform *geom.Affine
	pickChildren   bool
}

// NewGroup creates an orphan group.
func (d *Drawing) NewGroup() *Group {
	g := &Group{}
	g.init(d, g)
	g.group = true
	return g
}

// ChildTransform returns the transform applied to the children in
// addition to the group transform.
func (g *Group) ChildTransform() geom.Affine {
	if g.childTransform == nil {
		return geom.Identity()
	}
	return *g.childTransform
}

// SetChildTransform sets the transform applied to the children only.
// Clips and masks of the group are not affected.
func (g *Group) SetChildTransform(m geom.Affine) {
	if g.ChildTransform().IsNear(m, 1e-18) {
		return
	}
	g.markForRendering()
	if m.IsIdentity() {
		g.childTransform = nil
	} else {
		g.childTransform = &m
	}
	g.markForUpdate(StateAll, true)
}

// PickChildren reports whether Pick returns the hit child instead of the
// group.
func (g *Group) PickChildren() bool { return g.pickChildren }

// SetPickChildren sets whether Pick returns the hit child.
func (g *Group) SetPickChildren(v bool) { g.pickChildren = v }

func (g *Group) updateItem(area image.Rectangle, ctx UpdateContext, flags, reset State) State {
	outline := g.d.opts.outline
	child := ctx
	if g.childTransform != nil {
		child.CTM = ctx.CTM.Multiply(*g.childTransform)
	}

	state := StateAll
	g.bbox = image.Rectangle{}
	g.itemBBox = geom.EmptyRect()
	for _, c := range g.children {
		c.Update(area, child, flags, reset)
		state &= c.state
		if c.visible {
			if outline {
				g.bbox = g.bbox.Union(c.bbox)
			} else {
				g.bbox = g.bbox.Union(c.drawbox)
			}
		}
		if !c.itemBBox.IsEmpty() {
			ib := c.itemBBox.Transform(c.Transform())
			if g.childTransform != nil {
				ib = ib.Transform(*g.childTransform)
			}
			g.itemBBox = g.itemBBox.Union(ib)
		}
	}
	return state
}

func (g *Group) renderItem(dc *Context, area image.Rectangle, flags RenderFlags, stopAt *Item) RenderResult {
	for _, c := range g.children {
		if c.Render(dc, area, flags, stopAt) == RenderStop {
			return RenderStop
		}
	}
	return RenderOK
}

func (g *Group) clipItem(dc *Context, area image.Rectangle) {
	for _, c := range g.children {
		c.Clip(dc, area)
	}
}

func (g *Group) pickItem(p geom.Point, delta float64, flags PickFlags) *Item {
	for i := len(g.children) - 1; i >= 0; i-- {
		if picked := g.children[i].Pick(p, delta, flags); picked != nil {
			if g.pickChildren {
				return picked
			}
			return &g.Item
		}
	}
	return nil
}

func (g *Group) canClip() bool { return true }
