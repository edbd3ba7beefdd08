package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG style matrix:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b : b is applied first.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate post-multiplies a with a translation.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale post-multiplies a with a scaling.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Transform applies the matrix to (x, y).
func (a Matrix2D) Transform(x, y float64) (x1, y1 float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TPoint applies the matrix to p.
func (a Matrix2D) TPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

// TFixed applies the matrix to p and converts the result
// to device fixed point coordinates.
func (a Matrix2D) TFixed(p Point) fixed.Point26_6 {
	x, y := a.Transform(p.X, p.Y)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// ScaleFactor returns the geometric mean of the scaling of the matrix,
// used to scale stroke widths.
func (a Matrix2D) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(a.A*a.D - a.B*a.C))
}

// IsIdentity returns true if the matrix does not transform points.
func (a Matrix2D) IsIdentity() bool {
	return a == Identity
}
