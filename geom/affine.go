package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Affine {
	return Affine{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Affine {
	s, c := math.Sincos(angle)
	return Affine{
		A: c, B: -s,
		D: s, E: c,
	}
}

// Skew creates a shear matrix.
func Skew(x, y float64) Affine {
	return Affine{A: 1, B: x, D: y, E: 1}
}

// Multiply returns m * other: the result applies other first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a vector, ignoring the translation.
func (m Affine) ApplyVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Det returns the determinant of the linear part.
func (m Affine) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Affine) Invert() Affine {
	det := m.Det()
	if det == 0 || math.IsNaN(det) {
		return Identity()
	}
	inv := 1.0 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the matrix is only a translation.
func (m Affine) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsIntegerTranslation reports whether m is a pure translation by whole
// numbers within eps.
func (m Affine) IsIntegerTranslation(eps float64) bool {
	if !m.IsTranslation() {
		return false
	}
	return math.Abs(m.C-math.Round(m.C)) < eps && math.Abs(m.F-math.Round(m.F)) < eps
}

// HasRotationOrSkew reports whether the linear part is not diagonal.
func (m Affine) HasRotationOrSkew() bool {
	return m.B != 0 || m.D != 0
}

// IsSingular reports whether the determinant is within eps of zero.
func (m Affine) IsSingular(eps float64) bool {
	return math.Abs(m.Det()) <= eps
}

// IsNear reports whether every coefficient of m is within eps of other.
func (m Affine) IsNear(other Affine, eps float64) bool {
	return math.Abs(m.A-other.A) <= eps && math.Abs(m.B-other.B) <= eps &&
		math.Abs(m.C-other.C) <= eps && math.Abs(m.D-other.D) <= eps &&
		math.Abs(m.E-other.E) <= eps && math.Abs(m.F-other.F) <= eps
}

// ExpansionX returns the length of the image of the unit X vector.
func (m Affine) ExpansionX() float64 {
	return math.Hypot(m.A, m.D)
}

// ExpansionY returns the length of the image of the unit Y vector.
func (m Affine) ExpansionY() float64 {
	return math.Hypot(m.B, m.E)
}

// Descrim returns the square root of the absolute determinant, the
// average linear scale factor of the transform.
func (m Affine) Descrim() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

// Translation returns the translation part.
func (m Affine) Translation() Point {
	return Point{X: m.C, Y: m.F}
}

// WithoutTranslation returns the linear part only.
func (m Affine) WithoutTranslation() Affine {
	m.C, m.F = 0, 0
	return m
}

// Aff3 converts m to the matrix type used by golang.org/x/image/draw.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
