package svgpath

import (
	"github.com/tdewolff/canvas"
)

// This file implements arc length computation and
// partial extraction of paths. Curve lengths and splits are
// delegated to canvas.

const lengthEpsilon = 1e-9

// segment is one drawing command of a contour, with its
// precomputed length.
type segment struct {
	op      Operation // LineTo, QuadTo or CubicTo
	from    Point
	closing bool // implicit line added by a Close command
	length  float64
}

// Contour is a maximal sequence of connected drawing commands,
// starting at a MoveTo.
type Contour struct {
	start  Point
	segs   []segment
	closed bool
	length float64
}

// Length returns the arc length of the contour, including the closing
// segment for closed contours.
func (c Contour) Length() float64 { return c.length }

// Closed returns true if the contour ends with a Close command.
func (c Contour) Closed() bool { return c.closed }

// Measurement stores the lengths of a path, so that it may be
// partially traced efficiently.
type Measurement struct {
	contours []Contour
	length   float64
}

// Measure flattens the path and computes the length
// of each of its contours.
func Measure(p Path) Measurement {
	var (
		out     Measurement
		current *Contour
		pen     Point
	)
	flush := func() {
		if current != nil {
			out.contours = append(out.contours, *current)
			out.length += current.length
			current = nil
		}
	}
	open := func() {
		if current == nil {
			current = &Contour{start: pen}
		}
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			flush()
			pen = Point(op)
			current = &Contour{start: pen}
		case Close:
			if current == nil {
				continue
			}
			if pen != current.start {
				seg := newSegment(LineTo(current.start), pen)
				seg.closing = true
				current.segs = append(current.segs, seg)
				current.length += seg.length
			}
			current.closed = true
			pen = current.start
			flush()
		default:
			open()
			seg := newSegment(op, pen)
			current.segs = append(current.segs, seg)
			current.length += seg.length
			pen, _ = op.end()
		}
	}
	flush()
	return out
}

// Length returns the total length of the path.
func (m Measurement) Length() float64 { return m.length }

// Contours returns the contours of the path.
func (m Measurement) Contours() []Contour { return m.contours }

// Trace returns the initial portion of the path, of arc length `length`,
// walking the contours in order. Each contour (complete or partial) starts with
// a MoveTo. A completely included closed contour keeps its Close command.
// A negative or zero length yields an empty path, a length greater than the total
// yields the whole path.
func (m Measurement) Trace(length float64) Path {
	var out Path
	left := length
	for _, c := range m.contours {
		if left <= 0 {
			break
		}
		if c.length <= lengthEpsilon {
			continue
		}
		out = append(out, MoveTo(c.start))
		if left >= c.length-lengthEpsilon {
			for _, seg := range c.segs {
				if !seg.closing {
					out = append(out, seg.op)
				}
			}
			if c.closed {
				out = append(out, Close{})
			}
			left -= c.length
			continue
		}
		for _, seg := range c.segs {
			if left >= seg.length {
				out = append(out, seg.op)
				left -= seg.length
				continue
			}
			if left > lengthEpsilon {
				out = append(out, seg.head(left))
			}
			left = 0
			break
		}
	}
	return out
}

func newSegment(op Operation, from Point) segment {
	seg := segment{op: op, from: from}
	seg.length = seg.canvasPath().Length()
	return seg
}

// canvasPath returns the segment as a standalone canvas path.
func (seg segment) canvasPath() *canvas.Path {
	cp := &canvas.Path{}
	cp.MoveTo(seg.from.X, seg.from.Y)
	switch op := seg.op.(type) {
	case LineTo:
		cp.LineTo(op.X, op.Y)
	case QuadTo:
		cp.QuadTo(op[0].X, op[0].Y, op[1].X, op[1].Y)
	case CubicTo:
		cp.CubeTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
	}
	return cp
}

// head returns the operation drawing the first `length` units of the segment.
func (seg segment) head(length float64) Operation {
	if seg.length <= 0 {
		return seg.op
	}
	if _, isLine := seg.op.(LineTo); isLine {
		to, _ := seg.op.end()
		return LineTo(seg.from.Lerp(to, length/seg.length))
	}
	parts := seg.canvasPath().SplitAt(length)
	if len(parts) == 0 {
		return seg.op
	}
	// String formats coordinates with %g, which round-trips float64
	sub, err := CompilePath(parts[0].String())
	if err != nil || len(sub) < 2 {
		return seg.op
	}
	return sub[len(sub)-1]
}
