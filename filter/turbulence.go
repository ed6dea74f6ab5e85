package filter

import (
	"math"

	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
)

// Park-Miller minimal standard generator.
const (
	randM = 2147483647 // 2**31 - 1
	randA = 16807
	randQ = 127773 // randM / randA
	randR = 2836   // randM % randA
)

const (
	bSize        = 0x100
	bMask        = 0xff
	perlinOffset = 4096
)

// TurbulenceGenerator evaluates Perlin turbulence or fractal noise. The
// tables depend only on the seed; Turbulence is safe for concurrent use
// between calls to SetParameters.
type TurbulenceGenerator struct {
	seed       int64
	lattice    [bSize + bSize + 2]int
	gradient   [4][bSize + bSize + 2][2]float64
	tile       geom.Rect
	baseFreqX  float64
	baseFreqY  float64
	octaves    int
	fractal    bool
	stitch     bool
	wrapX      int
	wrapY      int
	wrapWidth  int
	wrapHeight int
}

// NewTurbulenceGenerator builds the lattice and gradient tables for seed.
func NewTurbulenceGenerator(seed float64) *TurbulenceGenerator {
	t := &TurbulenceGenerator{}
	t.init(int64(math.Round(seed)))
	return t
}

// SetupSeed normalizes a seed into the generator's range [1, 2**31-2].
func SetupSeed(seed int64) int64 {
	if seed <= 0 {
		seed = -(seed % (randM - 1)) + 1
	}
	if seed > randM-1 {
		seed = randM - 1
	}
	return seed
}

// Random advances seed and returns the next value.
func Random(seed int64) int64 {
	seed = randA*(seed%randQ) - randR*(seed/randQ)
	if seed <= 0 {
		seed += randM
	}
	return seed
}

func (t *TurbulenceGenerator) random() int64 {
	t.seed = Random(t.seed)
	return t.seed
}

func (t *TurbulenceGenerator) init(seed int64) {
	t.seed = SetupSeed(seed)
	for k := range 4 {
		for i := range bSize {
			t.lattice[i] = i
			g := &t.gradient[k][i]
			for {
				g[0] = float64(t.random()%(bSize+bSize)-bSize) / bSize
				g[1] = float64(t.random()%(bSize+bSize)-bSize) / bSize
				if g[0] != 0 || g[1] != 0 {
					break
				}
			}
			s := math.Sqrt(g[0]*g[0] + g[1]*g[1])
			g[0] /= s
			g[1] /= s
		}
	}
	for i := bSize - 1; i > 0; i-- {
		j := int(t.random() % bSize)
		t.lattice[i], t.lattice[j] = t.lattice[j], t.lattice[i]
	}
	for i := range bSize + 2 {
		t.lattice[bSize+i] = t.lattice[i]
		for k := range 4 {
			t.gradient[k][bSize+i] = t.gradient[k][i]
		}
	}
}

// SetParameters configures an evaluation. tile is the stitching tile in
// noise space; fractal selects fractal noise over turbulence.
func (t *TurbulenceGenerator) SetParameters(baseFreqX, baseFreqY float64, octaves int, fractal, stitch bool, tile geom.Rect) {
	t.baseFreqX, t.baseFreqY = baseFreqX, baseFreqY
	t.octaves = octaves
	t.fractal = fractal
	t.stitch = stitch
	t.tile = tile
	if !stitch {
		return
	}
	// Adjust the base frequencies so the tile holds a whole number of
	// lattice cells.
	if t.baseFreqX != 0 {
		lo := math.Floor(t.tile.Width()*t.baseFreqX) / t.tile.Width()
		hi := math.Ceil(t.tile.Width()*t.baseFreqX) / t.tile.Width()
		if t.baseFreqX/lo < hi/t.baseFreqX {
			t.baseFreqX = lo
		} else {
			t.baseFreqX = hi
		}
	}
	if t.baseFreqY != 0 {
		lo := math.Floor(t.tile.Height()*t.baseFreqY) / t.tile.Height()
		hi := math.Ceil(t.tile.Height()*t.baseFreqY) / t.tile.Height()
		if t.baseFreqY/lo < hi/t.baseFreqY {
			t.baseFreqY = lo
		} else {
			t.baseFreqY = hi
		}
	}
	t.wrapWidth = int(t.tile.Width()*t.baseFreqX + 0.5)
	t.wrapHeight = int(t.tile.Height()*t.baseFreqY + 0.5)
	t.wrapX = int(t.tile.Min.X*t.baseFreqX) + perlinOffset + t.wrapWidth
	t.wrapY = int(t.tile.Min.Y*t.baseFreqY) + perlinOffset + t.wrapHeight
}

func scurve(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Turbulence returns the premultiplied pixel for the noise-space point p.
func (t *TurbulenceGenerator) Turbulence(p geom.Point) uint32 {
	var sum [4]float64
	x := p.X * t.baseFreqX
	y := p.Y * t.baseFreqY
	ratio := 1.0
	wrapX, wrapY := t.wrapX, t.wrapY
	wrapW, wrapH := t.wrapWidth, t.wrapHeight

	for range t.octaves {
		tx := x + perlinOffset
		bx := int(tx)
		bx0, bx1 := bx, bx+1
		rx0 := tx - float64(bx)
		rx1 := rx0 - 1
		ty := y + perlinOffset
		by := int(ty)
		by0, by1 := by, by+1
		ry0 := ty - float64(by)
		ry1 := ry0 - 1

		if t.stitch {
			if bx0 >= wrapX {
				bx0 -= wrapW
			}
			if bx1 >= wrapX {
				bx1 -= wrapW
			}
			if by0 >= wrapY {
				by0 -= wrapH
			}
			if by1 >= wrapY {
				by1 -= wrapH
			}
		}
		bx0 &= bMask
		bx1 &= bMask
		by0 &= bMask
		by1 &= bMask

		i := t.lattice[bx0]
		j := t.lattice[bx1]
		b00 := t.lattice[i+by0]
		b10 := t.lattice[j+by0]
		b01 := t.lattice[i+by1]
		b11 := t.lattice[j+by1]

		sx, sy := scurve(rx0), scurve(ry0)
		for k := range 4 {
			g := &t.gradient[k]
			u := rx0*g[b00][0] + ry0*g[b00][1]
			v := rx1*g[b10][0] + ry0*g[b10][1]
			a := lerp(sx, u, v)
			u = rx0*g[b01][0] + ry1*g[b01][1]
			v = rx1*g[b11][0] + ry1*g[b11][1]
			b := lerp(sx, u, v)
			r := lerp(sy, a, b)
			if t.fractal {
				sum[k] += r / ratio
			} else {
				sum[k] += math.Abs(r) / ratio
			}
		}

		x *= 2
		y *= 2
		ratio *= 2
		if t.stitch {
			wrapW *= 2
			wrapH *= 2
			wrapX = 2*wrapX - perlinOffset
			wrapY = 2*wrapY - perlinOffset
		}
	}

	var ch [4]uint32
	for k, v := range sum {
		if t.fractal {
			v = (v*255 + 255) / 2
		} else {
			v *= 255
		}
		ch[k] = lightByte(v)
	}
	return surface.PremulWord(ch[3], ch[0], ch[1], ch[2])
}

// Turbulence synthesizes Perlin noise.
type Turbulence struct {
	Base
	BaseFrequencyX, BaseFrequencyY float64
	NumOctaves                     int
	Seed                           float64
	StitchTiles                    bool
	// FractalNoise selects fractal noise; otherwise turbulence.
	FractalNoise bool

	gen     *TurbulenceGenerator
	genSeed float64
}

// Complexity returns 5.
func (t *Turbulence) Complexity(geom.Affine) float64 { return 5 }

// UsesBackground returns false; the input is ignored.
func (t *Turbulence) UsesBackground() bool { return false }

func (t *Turbulence) generator() *TurbulenceGenerator {
	if t.gen == nil || t.genSeed != t.Seed {
		t.gen = NewTurbulenceGenerator(t.Seed)
		t.genSeed = t.Seed
	}
	return t.gen
}

func (t *Turbulence) render(s *Slots, ci surface.ColorInterpolation) {
	out := surface.NewArea(surface.FormatARGB32, s.Area())
	out.SetColorInterpolationTag(ci)
	u := s.Units()
	tile := u.PrimitiveArea(t.Subregion)
	if u.PrimitiveUnits() == ObjectBoundingBox {
		bb := u.ItemBBox()
		if !bb.IsEmpty() {
			inv := geom.Scale(bb.Width(), bb.Height()).Invert().Multiply(geom.Translate(-bb.Min.X, -bb.Min.Y))
			tile = tile.Transform(inv)
		}
	}
	gen := t.generator()
	gen.SetParameters(t.BaseFrequencyX, t.BaseFrequencyY, t.NumOctaves, t.FractalNoise, t.StitchTiles, tile)

	inv := u.PrimitiveUnitsToPB().Invert()
	o := out.Origin()
	surface.SynthesizeAll(out, func(x, y int) uint32 {
		return gen.Turbulence(inv.Apply(geom.Pt(float64(o.X+x), float64(o.Y+y))))
	})
	s.Set(t.Result, out)
}
