// Implements a raster backend to render traced SVG images,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/srwiley/rasterx"
)

var _ svgtrace.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer draws into an image using rasterx.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used,
// drawing into a new image of size width x height.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// SetupDrawers implements svgtrace.Driver
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgtrace.Filler, s svgtrace.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.NRGBA, opacity float64) {
	f.Scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.NRGBA, opacity float64) {
	s.Scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgtree.Round: rasterx.Round,
		svgtree.Bevel: rasterx.Bevel,
		svgtree.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgtree.ButtCap:   rasterx.ButtCap,
		svgtree.SquareCap: rasterx.SquareCap,
		svgtree.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options svgtrace.StrokeOptions) {
	capFunc := capToFunc[options.Cap]
	s.SetWinding(true)
	s.SetStroke(options.LineWidth, options.MiterLimit, capFunc, capFunc,
		rasterx.FlatGap, joinToJoin[options.Join], nil, 0)
}

// RasterFrame renders the frame at `progress` of the scene into a new `width` x `height` image.
// The image is first painted with `background`, which may be nil for a transparent image.
func RasterFrame(scene *svgtrace.Scene, width, height int, progress float64, background color.Color, opts ...svgtrace.RenderOption) *image.RGBA {
	ops := scene.Frame(float64(width), float64(height), progress, opts...)
	return rasterOps(ops, width, height, background)
}

// RasterFrameByNode is like RasterFrame, with a progress per node.
func RasterFrameByNode(scene *svgtrace.Scene, width, height int, src svgtrace.ProgressSource, background color.Color, opts ...svgtrace.RenderOption) *image.RGBA {
	ops := scene.FrameByNode(float64(width), float64(height), src, opts...)
	return rasterOps(ops, width, height, background)
}

// RasterFrames renders `n` frames, with progress linearly spaced from 0 to 1.
func RasterFrames(scene *svgtrace.Scene, width, height, n int, background color.Color, opts ...svgtrace.RenderOption) []*image.RGBA {
	out := make([]*image.RGBA, n)
	for i := range out {
		out[i] = RasterFrame(scene, width, height, svgtrace.FrameProgress(i, n), background, opts...)
	}
	return out
}

func rasterOps(ops []svgtrace.Op, width, height int, background color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	svgtrace.Draw(ops, NewRenderer(width, height, scanner))
	return img
}
