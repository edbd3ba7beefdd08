// Package svggg implements a raster backend on top of
// the software renderer of github.com/gogpu/gg.
package svggg

import (
	"image"
	"image/color"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"golang.org/x/image/math/fixed"
)

var _ svgtrace.Driver = (*Renderer)(nil)

// Renderer draws into a gg.Context.
type Renderer struct {
	dc     *gg.Context
	logger *log.Logger

	stroke bool
}

// NewRenderer wraps the given context. Rendering errors
// are reported to `logger`, which may be nil to use log.Default().
func NewRenderer(dc *gg.Context, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{dc: dc, logger: logger}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgtrace.Filler, svgtrace.Stroker) {
	rd.stroke = willStroke
	if willStroke {
		return nil, rd
	}
	return rd, nil
}

func toFloat(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (rd *Renderer) Clear() { rd.dc.ClearPath() }

func (rd *Renderer) Start(a fixed.Point26_6) { rd.dc.MoveTo(toFloat(a)) }

func (rd *Renderer) Line(b fixed.Point26_6) { rd.dc.LineTo(toFloat(b)) }

func (rd *Renderer) QuadBezier(b, c fixed.Point26_6) {
	bx, by := toFloat(b)
	cx, cy := toFloat(c)
	rd.dc.QuadraticTo(bx, by, cx, cy)
}

func (rd *Renderer) CubeBezier(b, c, d fixed.Point26_6) {
	bx, by := toFloat(b)
	cx, cy := toFloat(c)
	dx, dy := toFloat(d)
	rd.dc.CubicTo(bx, by, cx, cy, dx, dy)
}

func (rd *Renderer) Stop(closeLoop bool) {
	if closeLoop {
		rd.dc.ClosePath()
	}
}

func (rd *Renderer) SetColor(c color.NRGBA, opacity float64) {
	rd.dc.SetRGBA(float64(c.R)/0xff, float64(c.G)/0xff, float64(c.B)/0xff, float64(c.A)/0xff*opacity)
}

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	if useNonZeroWinding {
		rd.dc.SetFillRule(gg.FillRuleNonZero)
	} else {
		rd.dc.SetFillRule(gg.FillRuleEvenOdd)
	}
}

var (
	capToCap = [...]gg.LineCap{
		svgtree.ButtCap:   gg.LineCapButt,
		svgtree.RoundCap:  gg.LineCapRound,
		svgtree.SquareCap: gg.LineCapSquare,
	}
	joinToJoin = [...]gg.LineJoin{
		svgtree.Miter: gg.LineJoinMiter,
		svgtree.Round: gg.LineJoinRound,
		svgtree.Bevel: gg.LineJoinBevel,
	}
)

func (rd *Renderer) SetStrokeOptions(options svgtrace.StrokeOptions) {
	rd.dc.SetLineWidth(float64(options.LineWidth) / 64)
	rd.dc.SetMiterLimit(float64(options.MiterLimit) / 64)
	rd.dc.SetLineCap(capToCap[options.Cap])
	rd.dc.SetLineJoin(joinToJoin[options.Join])
}

func (rd *Renderer) Draw() {
	var err error
	if rd.stroke {
		err = rd.dc.Stroke()
	} else {
		err = rd.dc.Fill()
	}
	if err != nil {
		rd.logger.Error("gg rendering failed", "stroke", rd.stroke, "err", err)
	}
}

// Image flushes the pending work of the context, if any,
// and returns its pixels.
func (rd *Renderer) Image() image.Image {
	if err := rd.dc.FlushGPU(); err != nil {
		rd.logger.Error("gg flush failed", "err", err)
	}
	return rd.dc.Image()
}

// RasterFrame renders the frame at `progress` of the scene into a new `width` x `height` image.
// The image is first painted with `background`, which may be nil for a transparent image.
func RasterFrame(scene *svgtrace.Scene, width, height int, progress float64, background color.Color, opts ...svgtrace.RenderOption) image.Image {
	ops := scene.Frame(float64(width), float64(height), progress, opts...)
	return rasterOps(ops, width, height, background)
}

// RasterFrameByNode is like RasterFrame, with a progress per node.
func RasterFrameByNode(scene *svgtrace.Scene, width, height int, src svgtrace.ProgressSource, background color.Color, opts ...svgtrace.RenderOption) image.Image {
	ops := scene.FrameByNode(float64(width), float64(height), src, opts...)
	return rasterOps(ops, width, height, background)
}

func rasterOps(ops []svgtrace.Op, width, height int, background color.Color) image.Image {
	dc := gg.NewContext(width, height)
	defer dc.Close()
	if background != nil {
		dc.ClearWithColor(gg.FromColor(background))
	}
	rd := NewRenderer(dc, nil)
	svgtrace.Draw(ops, rd)
	return rd.Image()
}
