package scene

import (
	"fmt"
	"image"
	"os"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/text"
)

// item builds the drawing item described by doc, including its children,
// clip, mask and filter.
func (b *builder) item(doc *Item) (drawing.Node, error) {
	warnExtra("item "+doc.Type, doc.Extra)

	var n drawing.Node
	var err error
	switch doc.Type {
	case "group", "":
		n, err = b.group(doc)
	case "rect", "circle", "ellipse", "polygon", "polyline", "path":
		n, err = b.shape(doc)
	case "image":
		n, err = b.image(doc)
	case "text":
		n, err = b.text(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, doc.Type)
	}
	if err != nil {
		return nil, err
	}
	if err := b.common(n, doc); err != nil {
		return nil, err
	}
	if doc.ID != "" {
		b.scene.ids[doc.ID] = n
		drawing.ItemOf(n).SetData(doc.ID)
	}
	return n, nil
}

// common applies the properties every item kind has.
func (b *builder) common(n drawing.Node, doc *Item) error {
	it := drawing.ItemOf(n)
	if doc.Transform != "" {
		m, err := ParseTransform(doc.Transform)
		if err != nil {
			return err
		}
		it.SetTransform(m)
	}
	if doc.Opacity != nil {
		it.SetOpacity(*doc.Opacity)
	}
	if doc.Blend != "" {
		m, ok := drawing.ParseBlendMode(doc.Blend)
		if !ok {
			return fmt.Errorf("%w: blend mode %q", ErrInvalidValue, doc.Blend)
		}
		it.SetBlendMode(m)
	}
	it.SetIsolation(doc.Isolate)
	it.SetVisible(!doc.Hidden)
	if doc.BackgroundNew {
		it.SetBackgroundNew(true)
	}
	if doc.Cached {
		it.SetCached(true, true)
	}
	if doc.Clip != nil {
		c, err := b.item(doc.Clip)
		if err != nil {
			return err
		}
		it.SetClip(c)
	}
	if doc.Mask != nil {
		m, err := b.item(doc.Mask)
		if err != nil {
			return err
		}
		it.SetMask(m)
	}
	if doc.Filter != nil {
		f, err := buildFilter(doc.Filter)
		if err != nil {
			return err
		}
		it.SetFilter(f)
	}
	return nil
}

func (b *builder) group(doc *Item) (drawing.Node, error) {
	g := b.d.NewGroup()
	if doc.ChildTransform != "" {
		m, err := ParseTransform(doc.ChildTransform)
		if err != nil {
			return nil, err
		}
		g.SetChildTransform(m)
	}
	for i := range doc.Children {
		c, err := b.item(&doc.Children[i])
		if err != nil {
			return nil, err
		}
		g.AppendChild(c)
	}
	return g, nil
}

func shapePath(doc *Item) (*geom.Path, error) {
	switch doc.Type {
	case "rect":
		return geom.NewPath().Rectangle(doc.X, doc.Y, doc.Width, doc.Height), nil
	case "circle":
		return geom.NewPath().Circle(doc.CX, doc.CY, doc.R), nil
	case "ellipse":
		return geom.NewPath().Ellipse(doc.CX, doc.CY, doc.RX, doc.RY), nil
	case "polygon", "polyline":
		p := geom.NewPath()
		for i, pt := range doc.Points {
			if i == 0 {
				p.MoveTo(pt[0], pt[1])
			} else {
				p.LineTo(pt[0], pt[1])
			}
		}
		if doc.Type == "polygon" && len(doc.Points) > 0 {
			p.Close()
		}
		return p, nil
	}
	return ParsePathData(doc.D)
}

func (b *builder) shape(doc *Item) (drawing.Node, error) {
	p, err := shapePath(doc)
	if err != nil {
		return nil, err
	}
	st, err := style(doc)
	if err != nil {
		return nil, err
	}
	s := b.d.NewShape()
	s.SetPath(p)
	s.SetStyle(st)
	for i := range doc.Children {
		m, err := b.item(&doc.Children[i])
		if err != nil {
			return nil, err
		}
		s.AddMarker(m)
	}
	return s, nil
}

func (b *builder) image(doc *Item) (drawing.Node, error) {
	f, err := os.Open(b.path(doc.File))
	if err != nil {
		return nil, fmt.Errorf("scene: image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene: image %s: %w", doc.File, err)
	}
	w, h := doc.Width, doc.Height
	if w == 0 || h == 0 {
		sz := img.Bounds().Size()
		w, h = float64(sz.X), float64(sz.Y)
	}
	im := b.d.NewImage()
	im.SetPixels(img)
	im.SetRect(geom.R(doc.X, doc.Y, doc.X+w, doc.Y+h))
	if doc.Smooth != nil {
		im.SetSmooth(*doc.Smooth)
	}
	return im, nil
}

func (b *builder) text(doc *Item) (drawing.Node, error) {
	f, ok := b.fonts[doc.Font]
	if !ok {
		return nil, fmt.Errorf("%w: font %q not declared", ErrInvalidValue, doc.Font)
	}
	size := doc.Size
	if size == 0 {
		size = 16
	}
	opts := text.LayoutOptions{LetterSpacing: doc.LetterSpacing}
	switch doc.Anchor {
	case "", "start":
	case "middle":
		opts.Anchor = text.AnchorMiddle
	case "end":
		opts.Anchor = text.AnchorEnd
	default:
		return nil, fmt.Errorf("%w: anchor %q", ErrInvalidValue, doc.Anchor)
	}
	run, err := text.LayoutWith(doc.Text, f, size, opts)
	if err != nil {
		return nil, err
	}
	st, err := style(doc)
	if err != nil {
		return nil, err
	}

	t := b.d.NewText()
	t.SetStyle(st)
	origin := geom.Translate(doc.X, doc.Y)
	for _, g := range run.Glyphs {
		t.AddGlyph(g.Path, origin.Multiply(g.Place))
	}
	return t, nil
}

func style(doc *Item) (drawing.Style, error) {
	st := drawing.DefaultStyle()
	if doc.Fill != "" {
		c, ok, err := ParseColor(doc.Fill)
		if err != nil {
			return st, err
		}
		st.Fill = drawing.Paint{Color: c, Set: ok}
	}
	if doc.Stroke != "" {
		c, ok, err := ParseColor(doc.Stroke)
		if err != nil {
			return st, err
		}
		st.Stroke = drawing.Paint{Color: c, Set: ok}
	}
	st.FillOpacity = orDefault(doc.FillOpacity, st.FillOpacity)
	st.StrokeOpacity = orDefault(doc.StrokeOpacity, st.StrokeOpacity)
	st.StrokeWidth = orDefault(doc.StrokeWidth, st.StrokeWidth)
	st.MiterLimit = orDefault(doc.MiterLimit, st.MiterLimit)

	var err error
	if st.FillRule, err = fillRule(doc.FillRule); err != nil {
		return st, err
	}
	if st.ClipRule, err = fillRule(doc.ClipRule); err != nil {
		return st, err
	}
	switch doc.LineCap {
	case "", "butt":
	case "round":
		st.LineCap = geom.LineCapRound
	case "square":
		st.LineCap = geom.LineCapSquare
	default:
		return st, fmt.Errorf("%w: linecap %q", ErrInvalidValue, doc.LineCap)
	}
	switch doc.LineJoin {
	case "", "miter":
	case "round":
		st.LineJoin = geom.LineJoinRound
	case "bevel":
		st.LineJoin = geom.LineJoinBevel
	default:
		return st, fmt.Errorf("%w: linejoin %q", ErrInvalidValue, doc.LineJoin)
	}
	if len(doc.Dash) > 0 {
		st.Dash = geom.NewDash(doc.Dash...)
	}
	switch doc.PaintOrder {
	case "", "normal", "fill":
	case "fill markers":
		st.PaintOrder = drawing.PaintOrderFillMarkers
	case "stroke":
		st.PaintOrder = drawing.PaintOrderStroke
	case "stroke markers":
		st.PaintOrder = drawing.PaintOrderStrokeMarkers
	case "markers":
		st.PaintOrder = drawing.PaintOrderMarkers
	case "markers stroke":
		st.PaintOrder = drawing.PaintOrderMarkersStroke
	default:
		return st, fmt.Errorf("%w: paint-order %q", ErrInvalidValue, doc.PaintOrder)
	}
	return st, nil
}

func fillRule(s string) (drawing.FillRule, error) {
	switch s {
	case "", "nonzero":
		return drawing.FillNonZero, nil
	case "evenodd":
		return drawing.FillEvenOdd, nil
	}
	return drawing.FillNonZero, fmt.Errorf("%w: fill rule %q", ErrInvalidValue, s)
}
