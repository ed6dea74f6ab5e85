package filter

// NewDropShadow returns a filter that paints the item over a blurred,
// offset and colorized copy of its alpha. dx, dy and sigma are in user
// units; color is an unpremultiplied 0xRRGGBB color.
//
// Common usage: NewDropShadow(3, 3, 2, 0x000000, 0.5)
func NewDropShadow(dx, dy, sigma float64, color uint32, opacity float64) *Filter {
	return New(
		&GaussianBlur{Base: Base{In: SourceAlpha, Result: "shadow-blur"}, StdDeviationX: sigma, StdDeviationY: sigma},
		&Offset{Base: Base{In: "shadow-blur", Result: "shadow-offset"}, Dx: dx, Dy: dy},
		&Flood{Base: Base{Result: "shadow-color"}, Color: color, Opacity: opacity},
		&Composite{Base: Base{In: "shadow-color", Result: "shadow"}, In2: "shadow-offset", Operator: CompositeIn},
		&Merge{Inputs: []string{"shadow", SourceGraphic}},
	)
}
