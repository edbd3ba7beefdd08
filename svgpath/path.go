// Implements an abstract representation of
// svg paths, which can then be measured, traced
// and consumed by painting drivers.
package svgpath

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Point is a position in user space.
type Point struct{ X, Y float64 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Adder accumulates path commands, in device space.
// rasterx.Filler and rasterx.Dasher satisfy it.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different SVG commands
type Operation interface {
	// add itself on the adder `q`, after applying the transform `M`
	drawTo(q Adder, M Matrix2D)
	// end returns the current point after the operation;
	// Close returns ok=false since it depends on the subpath start.
	end() (p Point, ok bool)
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) drawTo(q Adder, M Matrix2D) {
	q.Stop(false) // implicit close if currently in path.
	q.Start(M.TFixed(Point(op)))
}

func (op LineTo) drawTo(q Adder, M Matrix2D) {
	q.Line(M.TFixed(Point(op)))
}

func (op QuadTo) drawTo(q Adder, M Matrix2D) {
	q.QuadBezier(M.TFixed(op[0]), M.TFixed(op[1]))
}

func (op CubicTo) drawTo(q Adder, M Matrix2D) {
	q.CubeBezier(M.TFixed(op[0]), M.TFixed(op[1]), M.TFixed(op[2]))
}

func (op Close) drawTo(q Adder, _ Matrix2D) {
	q.Stop(true)
}

func (op MoveTo) end() (Point, bool) { return Point(op), true }

func (op LineTo) end() (Point, bool) { return Point(op), true }

func (op QuadTo) end() (Point, bool) { return op[1], true }

func (op CubicTo) end() (Point, bool) { return op[2], true }

func (Close) end() (Point, bool) { return Point{}, false }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo sends the path to `q`, after applying the transform `M`.
// The last subpath is left open unless the path closes it.
func (p Path) AddTo(q Adder, M Matrix2D) {
	for _, op := range p {
		op.drawTo(q, M)
	}
	q.Stop(false)
}
