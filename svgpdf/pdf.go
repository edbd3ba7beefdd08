// Implements a PDF backend to render traced SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgtrace.Driver  = Renderer{}
	_ svgtrace.Filler  = (*filler)(nil)
	_ svgtrace.Stroker = (*stroker)(nil)
)

// Renderer writes the draw operations on the current
// page of a PDF document, using points as device units.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (rd Renderer) SetupDrawers(willFill, willStroke bool) (f svgtrace.Filler, s svgtrace.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: rd.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather{pdf: rd.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// Clear is a no-op: gofpdf starts a new path with each MoveTo
func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) SetColor(c color.NRGBA, opacity float64) {
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.pdf.SetAlpha(opacity*float64(c.A)/255., "")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

var (
	capToStyle = [...]string{
		svgtree.ButtCap:   "butt",
		svgtree.RoundCap:  "round",
		svgtree.SquareCap: "square",
	}
	joinToStyle = [...]string{
		svgtree.Miter: "miter",
		svgtree.Round: "round",
		svgtree.Bevel: "bevel",
	}
)

func (s *stroker) SetStrokeOptions(options svgtrace.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capToStyle[options.Cap])
	s.pdf.SetLineJoinStyle(joinToStyle[options.Join])
}

func (s *stroker) SetColor(c color.NRGBA, opacity float64) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(opacity*float64(c.A)/255., "")
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}

// AddFrame adds a `width` x `height` page (in points) to `pdf`, showing the frame
// of the scene at `progress`.
// The page is first painted with `background`, which may be nil.
func AddFrame(pdf *gofpdf.Fpdf, scene *svgtrace.Scene, width, height, progress float64, background color.Color, opts ...svgtrace.RenderOption) {
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	if background != nil {
		c := color.NRGBAModel.Convert(background).(color.NRGBA)
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetAlpha(float64(c.A)/255., "")
		pdf.Rect(0, 0, width, height, "F")
	}
	ops := scene.Frame(width, height, progress, opts...)
	svgtrace.Draw(ops, NewRenderer(pdf))
}

// Flipbook returns a document with one page per frame, with progress
// linearly spaced from 0 to 1.
func Flipbook(scene *svgtrace.Scene, width, height float64, frames int, background color.Color, opts ...svgtrace.RenderOption) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	for i := 0; i < frames; i++ {
		AddFrame(pdf, scene, width, height, svgtrace.FrameProgress(i, frames), background, opts...)
	}
	return pdf
}

// WriteFlipbook writes the document returned by Flipbook to `w`.
func WriteFlipbook(w io.Writer, scene *svgtrace.Scene, width, height float64, frames int, background color.Color, opts ...svgtrace.RenderOption) error {
	pdf := Flipbook(scene, width, height, frames, background, opts...)
	return pdf.Output(w)
}
