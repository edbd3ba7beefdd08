package svgtrace

import (
	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
)

// Scene stores a document with its path units, built once and
// shared by the frames. It is not modified after NewScene, so that
// it may be used concurrently.
type Scene struct {
	Doc   *svgtree.Document
	units []PathUnit
	total float64
}

// NewScene builds the path units of `doc`.
func NewScene(doc *svgtree.Document, opts ...BuildOption) *Scene {
	units := BuildPaths(doc, opts...)
	return &Scene{Doc: doc, units: units, total: TotalLength(units)}
}

// Units returns the path units of the document, in document order.
// The returned slice must not be modified.
func (s *Scene) Units() []PathUnit { return s.units }

// TotalLength returns the sum of the lengths of the units.
func (s *Scene) TotalLength() float64 { return s.total }

// Transform returns the matrix fitting the document into a `w` x `h` canvas.
func (s *Scene) Transform(w, h float64) svgpath.Matrix2D {
	return FitTransform(s.Doc.ViewBox, w, h)
}

// Frame returns the draw operations at `progress`, for a `w` x `h` canvas.
func (s *Scene) Frame(w, h, progress float64, opts ...RenderOption) []Op {
	return Render(s.units, s.Transform(w, h), progress, opts...)
}

// FrameByNode returns the draw operations for a `w` x `h` canvas, using the progress
// of each node provided by `src`.
func (s *Scene) FrameByNode(w, h float64, src ProgressSource, opts ...RenderOption) []Op {
	return RenderByNode(s.Doc, s.units, s.Transform(w, h), src, opts...)
}

// FrameProgress returns the progress of the frame `i` among `n`,
// linearly spaced from 0 to 1 (both included).
func FrameProgress(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}
