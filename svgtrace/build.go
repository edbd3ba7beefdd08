// Package svgtrace turns a parsed SVG document into measured paths,
// and renders the progressive "draw-in" of these paths: strokes grow
// along the paths in document order, and the fill of a shape
// appears once its stroke is complete.
//
// Rendering produces a list of abstract operations (see Op), which are
// executed by a backend implementing Driver (see for example the
// svgraster, svggg and svgpdf packages).
package svgtrace

import (
	"fmt"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/charmbracelet/log"
)

// PathUnit is the measured geometry of one shape node.
type PathUnit struct {
	Node     svgtree.Node
	Path     svgpath.Path // in user space
	FillRule svgtree.FillRule
	// Length is the sum of the lengths of
	// every contour of the path
	Length float64

	measure svgpath.Measurement
}

// Trace returns the first `length` units of the path, contour by contour.
func (u PathUnit) Trace(length float64) svgpath.Path {
	return u.measure.Trace(length)
}

// Contours returns the measured contours of the path.
func (u PathUnit) Contours() []svgpath.Contour {
	return u.measure.Contours()
}

// TotalLength returns the sum of the units length.
func TotalLength(units []PathUnit) float64 {
	var total float64
	for _, u := range units {
		total += u.Length
	}
	return total
}

// BuildOption configures BuildPaths.
type BuildOption func(*builder)

// WithLogger sets the logger receiving the geometry failures.
// By default, log.Default() is used.
func WithLogger(logger *log.Logger) BuildOption {
	return func(b *builder) { b.logger = logger }
}

type builder struct {
	logger *log.Logger
	units  []PathUnit
}

func newBuilder(opts []BuildOption) *builder {
	b := &builder{logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildPaths converts every shape of the document into a PathUnit,
// in document order.
// Shapes whose geometry can't be built (say, invalid path data) are logged and
// skipped, so that BuildPaths never fails.
func BuildPaths(doc *svgtree.Document, opts ...BuildOption) []PathUnit {
	return BuildNodePaths(doc.Root, opts...)
}

// BuildNodePaths is like BuildPaths, but restricted to the subtree
// rooted at `n`.
func BuildNodePaths(n svgtree.Node, opts ...BuildOption) []PathUnit {
	b := newBuilder(opts)
	b.walk(n)
	return b.units
}

func (b *builder) walk(n svgtree.Node) {
	if g, ok := n.(*svgtree.Group); ok {
		for _, child := range g.Children {
			b.walk(child)
		}
		return
	}
	path, err := nodePath(n)
	if err != nil {
		b.logger.Warn("invalid shape geometry", "id", n.Common().ID, "err", err)
		return
	}
	if len(path) == 0 {
		b.logger.Debug("shape without geometry", "id", n.Common().ID, "kind", n.Kind())
		return
	}
	m := svgpath.Measure(path)
	b.units = append(b.units, PathUnit{
		Node:     n,
		Path:     path,
		FillRule: n.Common().Style.FillRule,
		Length:   m.Length(),
		measure:  m,
	})
}

// nodePath returns the geometry of the leaf `n`, which may
// be empty for degenerated shapes.
func nodePath(n svgtree.Node) (path svgpath.Path, err error) {
	defer func() {
		if r := recover(); r != nil {
			path, err = nil, fmt.Errorf("building geometry: %v", r)
		}
	}()

	switch n := n.(type) {
	case *svgtree.Path:
		if n.D == "" {
			return nil, nil
		}
		return svgpath.CompilePath(n.D)
	case *svgtree.Rect:
		if n.Width <= 0 || n.Height <= 0 {
			return nil, nil
		}
		rx, ry := n.Radii()
		path.AddRoundRect(n.X, n.Y, n.X+n.Width, n.Y+n.Height, rx, ry)
	case *svgtree.Circle:
		if n.R <= 0 {
			return nil, nil
		}
		path.AddEllipse(n.CX, n.CY, n.R, n.R)
	case *svgtree.Ellipse:
		if n.RX <= 0 || n.RY <= 0 {
			return nil, nil
		}
		path.AddEllipse(n.CX, n.CY, n.RX, n.RY)
	case *svgtree.Line:
		path.AddLine(svgpath.Point{X: n.X1, Y: n.Y1}, svgpath.Point{X: n.X2, Y: n.Y2})
	case *svgtree.Polyline:
		path.AddPolyline(n.Points, false)
	case *svgtree.Polygon:
		path.AddPolyline(n.Points, true)
	}
	return path, nil
}
