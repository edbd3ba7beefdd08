// Package svgtree parses SVG documents into a tree of
// shape nodes, each carrying its resolved paint style.
//
// Only the elements svg, g, path, rect, circle, ellipse, line,
// polyline and polygon produce geometry. Styles are resolved per element
// (default values, then the 'style' attribute, then presentation attributes)
// and are not inherited from the enclosing groups.
package svgtree

import (
	"github.com/benoitkugler/svgtrace/svgpath"
)

// Kind identifies the concrete type of a Node.
type Kind uint8

const (
	GroupKind Kind = iota
	PathKind
	RectKind
	CircleKind
	EllipseKind
	LineKind
	PolylineKind
	PolygonKind
)

// String returns the name of the kind, also used as
// prefix for generated identifiers.
func (k Kind) String() string {
	switch k {
	case GroupKind:
		return "Group"
	case PathKind:
		return "Path"
	case RectKind:
		return "Rect"
	case CircleKind:
		return "Circle"
	case EllipseKind:
		return "Ellipse"
	case LineKind:
		return "Line"
	case PolylineKind:
		return "Polyline"
	case PolygonKind:
		return "Polygon"
	default:
		return "<unknown Kind>"
	}
}

// NodeInfo stores the fields shared by all the nodes.
type NodeInfo struct {
	// ID is either the 'id' attribute of the element,
	// or a generated "<Kind>_<n>" identifier.
	ID    string
	Tag   string            // name of the element in the source
	Attrs map[string]string // raw attributes of the element
	Style Style

	index  int // position in Document.nodes
	parent int // index of the parent group, or -1 for the root
}

// Common returns the shared fields.
func (n *NodeInfo) Common() *NodeInfo { return n }

// Node is one element of the document tree. It is implemented by
// *Group, *Path, *Rect, *Circle, *Ellipse, *Line, *Polyline and *Polygon.
type Node interface {
	Common() *NodeInfo
	Kind() Kind
}

// Group is a container. Its own style is not applied to its children.
type Group struct {
	NodeInfo
	Children []Node
	// Transforms are the raw 'transform' attributes found on the group.
	// No matrix is derived from them.
	Transforms []string
}

// Path is a 'path' element, or an unsupported leaf element
// (with an empty D).
type Path struct {
	NodeInfo
	D string // raw path data
}

type Rect struct {
	NodeInfo
	X, Y, Width, Height float64
	RX, RY              *float64 // optional corner radii
}

// Radii returns the corner radii of the rectangle, applying the SVG rule:
// when only one radius is given, it is used for both axis.
func (r *Rect) Radii() (rx, ry float64) {
	switch {
	case r.RX != nil && r.RY != nil:
		return *r.RX, *r.RY
	case r.RX != nil:
		return *r.RX, *r.RX
	case r.RY != nil:
		return *r.RY, *r.RY
	default:
		return 0, 0
	}
}

type Circle struct {
	NodeInfo
	CX, CY, R float64
}

type Ellipse struct {
	NodeInfo
	CX, CY, RX, RY float64
}

type Line struct {
	NodeInfo
	X1, Y1, X2, Y2 float64
}

// Polyline is an open chain of segments.
type Polyline struct {
	NodeInfo
	Points []svgpath.Point
}

// Polygon is a chain of segments, closed back to its first point.
type Polygon struct {
	NodeInfo
	Points []svgpath.Point
}

func (*Group) Kind() Kind    { return GroupKind }
func (*Path) Kind() Kind     { return PathKind }
func (*Rect) Kind() Kind     { return RectKind }
func (*Circle) Kind() Kind   { return CircleKind }
func (*Ellipse) Kind() Kind  { return EllipseKind }
func (*Line) Kind() Kind     { return LineKind }
func (*Polyline) Kind() Kind { return PolylineKind }
func (*Polygon) Kind() Kind  { return PolygonKind }

// ViewBox is the user space rectangle mapped to the output.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// DefaultViewBox is used when the document has no valid viewBox.
var DefaultViewBox = ViewBox{0, 0, 24, 24}

// Document is the result of parsing an SVG source.
// It should be considered immutable.
type Document struct {
	Width, Height string // raw attributes of the svg element
	ViewBox       ViewBox
	Root          *Group

	nodes []Node // pre-order
	byID  map[string]Node
}

// Nodes returns all the nodes of the tree, in document (pre-order) order,
// starting with the root.
func (doc *Document) Nodes() []Node { return doc.nodes }

// Lookup returns the node with the given identifier.
func (doc *Document) Lookup(id string) (Node, bool) {
	n, ok := doc.byID[id]
	return n, ok
}

// Parent returns the group containing `n`, or false for the root
// or a node not belonging to the document.
func (doc *Document) Parent(n Node) (*Group, bool) {
	info := n.Common()
	if info.index < 0 || info.index >= len(doc.nodes) || doc.nodes[info.index] != n {
		return nil, false
	}
	if info.parent < 0 {
		return nil, false
	}
	return doc.nodes[info.parent].(*Group), true
}

// index walks the tree from the root, recording the position
// and parent of every node.
func (doc *Document) index() {
	doc.nodes = doc.nodes[:0]
	var walk func(n Node, parent int)
	walk = func(n Node, parent int) {
		info := n.Common()
		info.index, info.parent = len(doc.nodes), parent
		doc.nodes = append(doc.nodes, n)
		if g, ok := n.(*Group); ok {
			for _, child := range g.Children {
				walk(child, info.index)
			}
		}
	}
	walk(doc.Root, -1)
}
