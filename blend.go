package drawing

import (
	"github.com/gogpu/drawing/internal/blend"
	"github.com/gogpu/drawing/internal/raster"
)

// BlendMode is a CSS mix-blend-mode used when an item is composited onto
// its backdrop.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal     = blend.ModeNormal
	BlendMultiply   = blend.ModeMultiply
	BlendScreen     = blend.ModeScreen
	BlendDarken     = blend.ModeDarken
	BlendLighten    = blend.ModeLighten
	BlendOverlay    = blend.ModeOverlay
	BlendColorDodge = blend.ModeColorDodge
	BlendColorBurn  = blend.ModeColorBurn
	BlendHardLight  = blend.ModeHardLight
	BlendSoftLight  = blend.ModeSoftLight
	BlendDifference = blend.ModeDifference
	BlendExclusion  = blend.ModeExclusion
	BlendHue        = blend.ModeHue
	BlendSaturation = blend.ModeSaturation
	BlendColor      = blend.ModeColor
	BlendLuminosity = blend.ModeLuminosity
)

// ParseBlendMode parses a CSS blend-mode keyword such as "multiply".
func ParseBlendMode(s string) (BlendMode, bool) {
	return blend.ParseMode(s)
}

// Operator is a compositing operator of a Context.
type Operator = blend.Operator

// Porter-Duff operators used by the rendering pipeline.
const (
	OperatorClear   = blend.OpClear
	OperatorSource  = blend.OpSource
	OperatorOver    = blend.OpOver
	OperatorIn      = blend.OpIn
	OperatorOut     = blend.OpOut
	OperatorAtop    = blend.OpAtop
	OperatorDestIn  = blend.OpDestIn
	OperatorDestOut = blend.OpDestOut
	OperatorXor     = blend.OpXor
	OperatorAdd     = blend.OpAdd
)

// FillRule selects how path winding maps to coverage.
type FillRule = raster.FillRule

// Fill rules.
const (
	FillNonZero = raster.FillRuleNonZero
	FillEvenOdd = raster.FillRuleEvenOdd
)
