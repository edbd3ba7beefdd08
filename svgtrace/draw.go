package svgtrace

import (
	"image/color"
	"math"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
	"golang.org/x/image/math/fixed"
)

// Executing draw operations requires a driver implementing
// the actual painting, such as a rasterizer to output .png images
// or a pdf writer.

// MinStrokeWidth is the smallest stroke width, in device units,
// sent to the drivers.
const MinStrokeWidth = 0.75

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformation matrices are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the color for the current path.
	// `opacity` is multiplied with the alpha channel of `c`.
	SetColor(c color.NRGBA, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the beginning of every operation.
	// If the `willXXX` boolean is false, the returned drawer may be nil
	// to avoid useless operations.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // in device units
	MiterLimit fixed.Int26_6
	Cap        svgtree.CapMode
	Join       svgtree.JoinMode
}

// DefaultMiterLimit is the SVG default 'stroke-miterlimit'
const DefaultMiterLimit = 4

var _ svgpath.Adder = Drawer(nil)

// Draw executes the operations, in order, into the driver `d`.
// Invisible operations (with a zero alpha) are skipped.
func Draw(ops []Op, d Driver) {
	for _, op := range ops {
		op.draw(d)
	}
}

func (op *StrokeOp) draw(d Driver) {
	if op.Paint.Alpha() == 0 || len(op.Path) == 0 {
		return
	}
	_, stroker := d.SetupDrawers(false, true)
	if stroker == nil {
		return
	}
	stroker.Clear()
	width := math.Max(op.Paint.Width*op.Transform.ScaleFactor(), MinStrokeWidth)
	stroker.SetStrokeOptions(StrokeOptions{
		LineWidth:  fixed.Int26_6(width * 64),
		MiterLimit: fixed.I(DefaultMiterLimit),
		Cap:        op.Paint.Cap,
		Join:       op.Paint.Join,
	})
	op.Path.AddTo(stroker, op.Transform)
	stroker.SetColor(op.Paint.Color, op.Paint.Opacity)
	stroker.Draw()
}

func (op *FillOp) draw(d Driver) {
	if op.Paint.Alpha() == 0 || len(op.Path) == 0 {
		return
	}
	filler, _ := d.SetupDrawers(true, false)
	if filler == nil {
		return
	}
	filler.Clear()
	filler.SetWinding(op.Paint.Rule == svgtree.NonZero)
	op.Path.AddTo(filler, op.Transform)
	filler.SetColor(op.Paint.Color, op.Paint.Opacity)
	filler.Draw()
	filler.SetWinding(true) // default is true
}
