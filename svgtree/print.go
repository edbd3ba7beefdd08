package svgtree

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

func colorString(c *color.NRGBA) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}

// Fprint writes an indented description of the document tree to `w`,
// one line per node.
func Fprint(w io.Writer, doc *Document) error {
	vb := doc.ViewBox
	_, err := fmt.Fprintf(w, "SVG width=%q height=%q viewBox=[%g %g %g %g]\n",
		doc.Width, doc.Height, vb.MinX, vb.MinY, vb.Width, vb.Height)
	if err != nil {
		return err
	}
	return fprintNode(w, doc.Root, 0)
}

func fprintNode(w io.Writer, n Node, depth int) error {
	pad := strings.Repeat("  ", depth)
	info := n.Common()
	var desc string
	switch n := n.(type) {
	case *Group:
		if _, err := fmt.Fprintf(w, "%sGroup id=%s transforms=%q\n", pad, info.ID, n.Transforms); err != nil {
			return err
		}
		for _, child := range n.Children {
			if err := fprintNode(w, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	case *Path:
		desc = fmt.Sprintf("d=%q", truncate(n.D, 60))
	case *Rect:
		desc = fmt.Sprintf("x=%g y=%g width=%g height=%g", n.X, n.Y, n.Width, n.Height)
		if rx, ry := n.Radii(); rx != 0 || ry != 0 {
			desc += fmt.Sprintf(" rx=%g ry=%g", rx, ry)
		}
	case *Circle:
		desc = fmt.Sprintf("cx=%g cy=%g r=%g", n.CX, n.CY, n.R)
	case *Ellipse:
		desc = fmt.Sprintf("cx=%g cy=%g rx=%g ry=%g", n.CX, n.CY, n.RX, n.RY)
	case *Line:
		desc = fmt.Sprintf("x1=%g y1=%g x2=%g y2=%g", n.X1, n.Y1, n.X2, n.Y2)
	case *Polyline:
		desc = fmt.Sprintf("points=%d", len(n.Points))
	case *Polygon:
		desc = fmt.Sprintf("points=%d", len(n.Points))
	}
	_, err := fmt.Fprintf(w, "%s%s id=%s %s fill=%s stroke=%s\n", pad, n.Kind(), info.ID, desc,
		colorString(info.Style.FillColor), colorString(info.Style.StrokeColor))
	return err
}
