package svgtrace

import (
	"math"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
)

// FitTransform returns the matrix mapping the view box `vb` onto a
// `w` x `h` canvas, preserving the aspect ratio and centering the
// content on the unused axis.
// Degenerate inputs (empty view box or canvas) return the identity.
func FitTransform(vb svgtree.ViewBox, w, h float64) svgpath.Matrix2D {
	if !(vb.Width > 0 && vb.Height > 0 && w > 0 && h > 0) {
		return svgpath.Identity
	}
	scale := math.Min(w/vb.Width, h/vb.Height)
	tx := (w-vb.Width*scale)/2 - vb.MinX*scale
	ty := (h-vb.Height*scale)/2 - vb.MinY*scale
	return svgpath.Identity.Translate(tx, ty).Scale(scale, scale)
}
