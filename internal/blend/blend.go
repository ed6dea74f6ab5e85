package blend

// Operator is a compositing operator applied as op(source, destination).
type Operator uint8

// Porter-Duff operators.
const (
	OpClear Operator = iota
	OpSource
	OpOver
	OpIn
	OpOut
	OpAtop
	OpDest
	OpDestOver
	OpDestIn
	OpDestOut
	OpDestAtop
	OpXor
	OpAdd
)

// Separable and non-separable blend operators. The result is composited
// with source-over semantics outside the overlap.
const (
	OpMultiply Operator = iota + OpAdd + 1
	OpScreen
	OpOverlay
	OpDarken
	OpLighten
	OpColorDodge
	OpColorBurn
	OpHardLight
	OpSoftLight
	OpDifference
	OpExclusion
	OpHue
	OpSaturation
	OpColor
	OpLuminosity
)

// Func combines a source and a destination pixel word.
type Func func(s, d uint32) uint32

var operatorFuncs = [...]Func{
	OpClear:      func(_, _ uint32) uint32 { return 0 },
	OpSource:     func(s, _ uint32) uint32 { return s },
	OpOver:       over,
	OpIn:         in,
	OpOut:        out,
	OpAtop:       atop,
	OpDest:       func(_, d uint32) uint32 { return d },
	OpDestOver:   destOver,
	OpDestIn:     destIn,
	OpDestOut:    destOut,
	OpDestAtop:   destAtop,
	OpXor:        xor,
	OpAdd:        addUn8x4,
	OpMultiply:   separable(multiply),
	OpScreen:     separable(screen),
	OpOverlay:    separable(overlay),
	OpDarken:     separable(darken),
	OpLighten:    separable(lighten),
	OpColorDodge: separable(colorDodge),
	OpColorBurn:  separable(colorBurn),
	OpHardLight:  separable(hardLight),
	OpSoftLight:  separable(softLight),
	OpDifference: separable(difference),
	OpExclusion:  separable(exclusion),
	OpHue:        nonSeparable(hue),
	OpSaturation: nonSeparable(saturation),
	OpColor:      nonSeparable(color),
	OpLuminosity: nonSeparable(luminosity),
}

var operatorNames = [...]string{
	"clear", "source", "over", "in", "out", "atop",
	"dest", "dest-over", "dest-in", "dest-out", "dest-atop", "xor", "add",
	"multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light",
	"difference", "exclusion", "hue", "saturation", "color", "luminosity",
}

// Func returns the pixel function of op. Unknown operators behave as
// OpOver.
func (op Operator) Func() Func {
	if int(op) < len(operatorFuncs) {
		return operatorFuncs[op]
	}
	return over
}

// Apply composites s onto d.
func (op Operator) Apply(s, d uint32) uint32 {
	return op.Func()(s, d)
}

// String returns the operator name.
func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "unknown"
}

// IsBounded reports whether a transparent source leaves the destination
// unchanged. Unbounded operators affect pixels outside the source shape.
func (op Operator) IsBounded() bool {
	switch op {
	case OpClear, OpSource, OpIn, OpOut, OpDestIn, OpDestAtop:
		return false
	}
	return true
}

// Composite applies op with a coverage value. Bounded operators scale the
// source by coverage; unbounded ones interpolate between the destination
// and the full result so that uncovered pixels keep their value.
func (op Operator) Composite(s, d, coverage uint32) uint32 {
	switch coverage {
	case 0:
		return d
	case 255:
		return op.Apply(s, d)
	}
	if op.IsBounded() {
		return op.Apply(mulUn8x4(s, coverage), d)
	}
	return mulAddUn8x4(op.Apply(s, d), coverage, d, 255-coverage)
}

// Mode is a CSS mix-blend-mode.
type Mode uint8

// Blend modes. ModeNormal is source-over.
const (
	ModeNormal Mode = iota
	ModeMultiply
	ModeScreen
	ModeDarken
	ModeLighten
	ModeOverlay
	ModeColorDodge
	ModeColorBurn
	ModeHardLight
	ModeSoftLight
	ModeDifference
	ModeExclusion
	ModeHue
	ModeSaturation
	ModeColor
	ModeLuminosity
)

var modeOperators = [...]Operator{
	ModeNormal:     OpOver,
	ModeMultiply:   OpMultiply,
	ModeScreen:     OpScreen,
	ModeDarken:     OpDarken,
	ModeLighten:    OpLighten,
	ModeOverlay:    OpOverlay,
	ModeColorDodge: OpColorDodge,
	ModeColorBurn:  OpColorBurn,
	ModeHardLight:  OpHardLight,
	ModeSoftLight:  OpSoftLight,
	ModeDifference: OpDifference,
	ModeExclusion:  OpExclusion,
	ModeHue:        OpHue,
	ModeSaturation: OpSaturation,
	ModeColor:      OpColor,
	ModeLuminosity: OpLuminosity,
}

// Operator returns the compositing operator implementing m.
func (m Mode) Operator() Operator {
	if int(m) < len(modeOperators) {
		return modeOperators[m]
	}
	return OpOver
}

// String returns the CSS keyword of m.
func (m Mode) String() string {
	if m == ModeNormal {
		return "normal"
	}
	return m.Operator().String()
}

// ParseMode parses a CSS blend-mode keyword.
func ParseMode(s string) (Mode, bool) {
	for m := ModeNormal; int(m) < len(modeOperators); m++ {
		if m.String() == s {
			return m, true
		}
	}
	return ModeNormal, false
}
