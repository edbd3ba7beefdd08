package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// AddRect adds a closed rectangle, starting at the top left corner
// and running clockwise (in the y-down coordinate system).
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(Point{minX, minY})
	p.Line(Point{maxX, minY})
	p.Line(Point{maxX, maxY})
	p.Line(Point{minX, maxY})
	p.Stop(true)
}

// AddRoundRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis. The radii are clamped to half
// the side lengths. Non positive radii yield a plain rectangle.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	if w := maxX - minX; w < rx*2 {
		rx = w / 2
	}
	if h := maxY - minY; h < ry*2 {
		ry = h / 2
	}

	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.addQuarter(Point{maxX - rx, minY + ry}, rx, ry, -math.Pi/2)
	p.Line(Point{maxX, maxY - ry})
	p.addQuarter(Point{maxX - rx, maxY - ry}, rx, ry, 0)
	p.Line(Point{minX + rx, maxY})
	p.addQuarter(Point{minX + rx, maxY - ry}, rx, ry, math.Pi/2)
	p.Line(Point{minX, minY + ry})
	p.addQuarter(Point{minX + rx, minY + ry}, rx, ry, math.Pi)
	p.Stop(true)
}

// addQuarter adds the quarter of the axis aligned ellipse centered at c,
// starting at the parametric angle `from`, in the positive direction.
func (p *Path) addQuarter(c Point, rx, ry, from float64) {
	p.addEllipticArc(c, rx, ry, 0, from, math.Pi/2)
}

// AddEllipse adds a closed ellipse centered at (cx, cy), starting at its
// rightmost point and running in the positive angle direction,
// which is clockwise on a y-down device.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(Point{cx + rx, cy})
	p.addEllipticArc(Point{cx, cy}, rx, ry, 0, 0, 2*math.Pi)
	p.Stop(true)
}

// AddLine adds an open segment from a to b.
func (p *Path) AddLine(a, b Point) {
	p.Start(a)
	p.Line(b)
}

// AddPolyline joins the points by lines, closing the contour
// if asked. An empty list adds nothing.
func (p *Path) AddPolyline(points []Point, closeLoop bool) {
	if len(points) == 0 {
		return
	}
	p.Start(points[0])
	for _, pt := range points[1:] {
		p.Line(pt)
	}
	p.Stop(closeLoop)
}

// addArc adds an SVG endpoint parametrized arc, from the current point `from`,
// using arguments [rx, ry, rotation (degrees), large-arc, sweep, x, y].
// It returns the new current point.
func (p *Path) addArc(args [7]float64, from Point) Point {
	to := Point{args[5], args[6]}
	if from == to {
		// zero length arcs are omitted
		return to
	}
	rx, ry := math.Abs(args[0]), math.Abs(args[1])
	if rx == 0 || ry == 0 {
		p.Line(to)
		return to
	}
	rot := args[2] * math.Pi / 180 // Convert degress to radians
	largeArc, sweep := args[3] != 0, args[4] != 0

	c, rx, ry, etaStart, deltaEta := ellipseCenter(rx, ry, rot, from, to, largeArc, sweep)
	p.addEllipticArc(c, rx, ry, rot, etaStart, deltaEta)
	// Just makes the end point exact; no roundoff error
	if cub, ok := (*p)[len(*p)-1].(CubicTo); ok {
		cub[2] = to
		(*p)[len(*p)-1] = cub
	}
	return to
}

// addEllipticArc approximates the ellipse arc using a set of cubic bezier curves by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
// The current point is expected to be the start of the arc.
func (p *Path) addEllipticArc(c Point, rx, ry, rot, etaStart, deltaEta float64) {
	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3 // Math is fun!
	sinTheta, cosTheta := math.Sin(rot), math.Cos(rot)
	lx, ly := ellipsePointAt(rx, ry, sinTheta, cosTheta, etaStart, c.X, c.Y)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		px, py := ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, c.X, c.Y)
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{px - alpha*dx, py - alpha*dy}, Point{px, py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// ellipseCenter converts the endpoint parametrization of an arc to its
// center parametrization. If the radii are too small for an ellipse to
// join the two points, they are scaled up uniformly until one exists.
func ellipseCenter(rx, ry, rot float64, from, to Point, largeArc, sweep bool) (c Point, rx2, ry2, etaStart, deltaEta float64) {
	sin, cos := math.Sincos(rot)

	// Move origin to the middle of the chord, and rotate ellipse x-axis to coordinate x-axis
	mx, my := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1, y1 := cos*mx+sin*my, -sin*mx+cos*my

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	rxSq, rySq := rx*rx, ry*ry
	num := rxSq*rySq - rxSq*y1*y1 - rySq*x1*x1
	den := rxSq*y1*y1 + rySq*x1*x1
	coef := 0.
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1, cy1 := coef*rx*y1/ry, -coef*ry*x1/rx

	c.X = cos*cx1 - sin*cy1 + (from.X+to.X)/2
	c.Y = sin*cx1 + cos*cy1 + (from.Y+to.Y)/2

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	etaStart = math.Atan2(uy, ux)
	deltaEta = math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && deltaEta > 0 {
		deltaEta -= 2 * math.Pi
	} else if sweep && deltaEta < 0 {
		deltaEta += 2 * math.Pi
	}
	return c, rx, ry, etaStart, deltaEta
}
