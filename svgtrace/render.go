package svgtrace

import (
	"image/color"
	"math"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
)

// Epsilon is the length tolerance (in user units) of the fill
// completion test, absorbing the rounding errors accumulated over
// many units.
const Epsilon = 1e-3

// MinProgress is the progress below which RenderByNode
// considers a node as hidden.
const MinProgress = 1e-3

// StrokePaint is the resolved paint of a stroke operation.
type StrokePaint struct {
	Color   color.NRGBA
	Opacity float64 // multiplied with Color.A
	Width   float64 // in user units
	Cap     svgtree.CapMode
	Join    svgtree.JoinMode
}

// FillPaint is the resolved paint of a fill operation.
type FillPaint struct {
	Color   color.NRGBA
	Opacity float64 // multiplied with Color.A
	Rule    svgtree.FillRule
}

// Alpha returns the effective alpha, in [0, 1]
func (p StrokePaint) Alpha() float64 { return float64(p.Color.A) / 0xff * p.Opacity }

// Alpha returns the effective alpha, in [0, 1]
func (p FillPaint) Alpha() float64 { return float64(p.Color.A) / 0xff * p.Opacity }

// Op is a draw operation, either a *StrokeOp or a *FillOp.
type Op interface {
	draw(d Driver)
}

// StrokeOp strokes the (possibly partial) path of a node.
type StrokeOp struct {
	Node      svgtree.Node
	Path      svgpath.Path // in user space
	Transform svgpath.Matrix2D
	Paint     StrokePaint
}

// FillOp fills the whole path of a node.
type FillOp struct {
	Node      svgtree.Node
	Path      svgpath.Path // in user space
	Transform svgpath.Matrix2D
	Paint     FillPaint
}

// RenderOption customizes the paints used when
// the document does not specify them.
type RenderOption func(*renderConfig)

type renderConfig struct {
	strokeColor color.NRGBA
	fillColor   color.NRGBA
	strokeWidth float64
}

// the fill default is transparent: shapes without
// 'fill' are only outlined
var defaultRenderConfig = renderConfig{
	strokeColor: color.NRGBA{0x17, 0x17, 0x17, 0xff},
	fillColor:   color.NRGBA{0x17, 0x17, 0x17, 0x00},
	strokeWidth: 0.75,
}

// WithDefaultStrokeColor sets the color of strokes without 'stroke'.
func WithDefaultStrokeColor(c color.NRGBA) RenderOption {
	return func(rc *renderConfig) { rc.strokeColor = c }
}

// WithDefaultFillColor sets the color of fills without 'fill'.
func WithDefaultFillColor(c color.NRGBA) RenderOption {
	return func(rc *renderConfig) { rc.fillColor = c }
}

// WithDefaultStrokeWidth sets the width, in user units, of strokes without 'stroke-width'.
func WithDefaultStrokeWidth(w float64) RenderOption {
	return func(rc *renderConfig) { rc.strokeWidth = w }
}

func newRenderConfig(opts []RenderOption) renderConfig {
	rc := defaultRenderConfig
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}

func (rc renderConfig) strokePaint(st svgtree.Style) StrokePaint {
	p := StrokePaint{
		Color:   rc.strokeColor,
		Opacity: st.StrokeAlpha,
		Width:   rc.strokeWidth,
		Cap:     st.LineCap,
		Join:    st.LineJoin,
	}
	if st.StrokeColor != nil {
		p.Color = *st.StrokeColor
	}
	if st.StrokeWidth != nil {
		p.Width = *st.StrokeWidth
	}
	return p
}

func (rc renderConfig) fillPaint(st svgtree.Style) FillPaint {
	p := FillPaint{Color: rc.fillColor, Opacity: st.FillAlpha, Rule: st.FillRule}
	if st.FillColor != nil {
		p.Color = *st.FillColor
	}
	return p
}

func clampProgress(progress float64) float64 {
	if math.IsNaN(progress) || progress < 0 {
		return 0
	}
	return math.Min(progress, 1)
}

// Render computes the draw operations of the frame at `progress` (clamped to [0, 1]).
// The first progress*TotalLength(units) units of length are stroked, following
// the order of `units`, then every unit whose stroke is complete is filled.
// All the stroke operations come before the fill operations.
// Render does not modify its inputs and always returns the same
// operations for the same arguments.
func Render(units []PathUnit, m svgpath.Matrix2D, progress float64, opts ...RenderOption) []Op {
	rc := newRenderConfig(opts)
	return rc.render(units, m, clampProgress(progress))
}

func (rc renderConfig) render(units []PathUnit, m svgpath.Matrix2D, progress float64) []Op {
	target := progress * TotalLength(units)

	var ops []Op
	// partial strokes
	drawn := 0. // length of the previous units
	for _, u := range units {
		if target-drawn <= 0 {
			break
		}
		var path svgpath.Path
		if target >= drawn+u.Length-Epsilon {
			// complete units are stroked as is, like they are filled
			path = u.Path
		} else {
			path = u.Trace(target - drawn)
		}
		drawn += u.Length
		if u.Length <= 0 || len(path) == 0 {
			continue
		}
		ops = append(ops, &StrokeOp{
			Node:      u.Node,
			Path:      path,
			Transform: m,
			Paint:     rc.strokePaint(u.Node.Common().Style),
		})
	}

	// completed fills
	if target <= 0 {
		return ops
	}
	accumulated := 0.
	for _, u := range units {
		complete := target >= accumulated+u.Length-Epsilon
		accumulated += u.Length
		if !complete || u.Length <= 0 {
			continue
		}
		ops = append(ops, &FillOp{
			Node:      u.Node,
			Path:      u.Path,
			Transform: m,
			Paint:     rc.fillPaint(u.Node.Common().Style),
		})
	}
	return ops
}

// ProgressSource provides the progress of the nodes, by identifier.
// It is only read by the renderer.
type ProgressSource interface {
	// Progress returns the progress of the node `id`,
	// or false if it is not known.
	Progress(id string) (float64, bool)
}

// ProgressMap is a ProgressSource backed by a map.
type ProgressMap map[string]float64

func (pm ProgressMap) Progress(id string) (float64, bool) {
	p, ok := pm[id]
	return p, ok
}

// nodeProgress looks for the progress of `n`, then of its ancestors.
// Unknown nodes are fully drawn.
func nodeProgress(doc *svgtree.Document, n svgtree.Node, src ProgressSource) float64 {
	for {
		if p, ok := src.Progress(n.Common().ID); ok {
			return clampProgress(p)
		}
		parent, ok := doc.Parent(n)
		if !ok {
			return 1
		}
		n = parent
	}
}

// RenderByNode is like Render, but each node of `units` has its own progress,
// read from `src`: the algorithm of Render is applied independently to the
// units of each node, in document order.
// The progress of a node without entry in `src` is the one of its closest
// ancestor with an entry, or 1 if there are none.
// Nodes whose progress is below MinProgress are skipped.
func RenderByNode(doc *svgtree.Document, units []PathUnit, m svgpath.Matrix2D, src ProgressSource, opts ...RenderOption) []Op {
	rc := newRenderConfig(opts)
	var ops []Op
	for start := 0; start < len(units); {
		end := start + 1
		for end < len(units) && units[end].Node == units[start].Node {
			end++
		}
		progress := nodeProgress(doc, units[start].Node, src)
		if progress > MinProgress {
			ops = append(ops, rc.render(units[start:end], m, progress)...)
		}
		start = end
	}
	return ops
}
