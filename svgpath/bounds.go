package svgpath

import "math"

// compute the bouding box of a path, taking into account
// the extrema of the curves (not only their control points)

// Bounds is an axis aligned rectangle.
type Bounds struct{ X, Y, W, H float64 }

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

// We would like to know the values of t where X' = 0
// X  = (p3-3*p2+3*p1-p0)t^3 + (3*p2-6*p1+3*p0)t^2 + (3*p1-3*p0)t + (p0)
// simplified derivative:
// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// simple line : x= -c / b
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bbox struct {
	minX, minY, maxX, maxY float64
}

func (b *bbox) add(p Point) {
	b.minX = math.Min(b.minX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxX = math.Max(b.maxX, p.X)
	b.maxY = math.Max(b.maxY, p.Y)
}

// addCurve adds the extrema of the curve defined by `at`, whose
// critical parameters are given.
func (b *bbox) addCurve(at func(t float64) Point, critical ...[]float64) {
	b.add(at(1))
	for _, ts := range critical {
		for _, t := range ts {
			// filter invalid value
			if 0 <= t && t <= 1 {
				b.add(at(t))
			}
		}
	}
}

// Bounds returns the smallest rectangle containing the path.
// An empty path has empty bounds.
func (p Path) Bounds() Bounds {
	box := bbox{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	var pen Point
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			pen = Point(op)
			box.add(pen)
		case LineTo:
			box.add(Point(op))
			pen = Point(op)
		case QuadTo:
			p0 := pen
			aX, bX := quadraticDerivative(p0.X, op[0].X, op[1].X)
			aY, bY := quadraticDerivative(p0.Y, op[0].Y, op[1].Y)
			box.add(p0)
			box.addCurve(func(t float64) Point { return quadAt(p0, op[0], op[1], t) },
				linearRoots(aX, bX), linearRoots(aY, bY))
			pen = op[1]
		case CubicTo:
			p0 := pen
			aX, bX, cX := cubicDerivative(p0.X, op[0].X, op[1].X, op[2].X)
			aY, bY, cY := cubicDerivative(p0.Y, op[0].Y, op[1].Y, op[2].Y)
			box.add(p0)
			box.addCurve(func(t float64) Point { return cubicAt(p0, op[0], op[1], op[2], t) },
				quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY))
			pen = op[2]
		}
	}
	if math.IsInf(box.minX, 1) {
		return Bounds{}
	}
	return Bounds{X: box.minX, Y: box.minY, W: box.maxX - box.minX, H: box.maxY - box.minY}
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
