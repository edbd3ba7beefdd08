package svgtree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"
)

var (
	errUnsupportedElement = errors.New("unsupported element")
	errStrayText          = errors.New("text content ignored")
	errMalformedPair      = errors.New("style declaration without colon")
	errOutsideRoot        = errors.New("element outside of the root dropped")
	errNoElement          = errors.New("no element found")
)

// Options configures the parser.
type Options struct {
	ErrorMode ErrorMode
	// Logger receives the anomalies in WarnErrorMode.
	// If nil, log.Default() is used.
	Logger *log.Logger
}

type attributes map[string]string

// treeCursor is used while parsing SVG files
type treeCursor struct {
	opts    Options
	decoder *xml.Decoder

	stack   []*Group // open groups; stack[0] is the temporary root
	openTag []bool   // for each open element, true if it pushed a group

	doc     *Document
	seenSVG bool
	err     error // first anomaly in strict mode
}

// Parse reads an SVG document from `stream`.
// The only fatal errors are invalid XML (or an empty document), reported
// as *MalformedMarkupError, and, in StrictErrorMode, any anomaly, reported as
// *DiagnosticError.
func Parse(stream io.Reader, opts Options) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	c := &treeCursor{
		opts:    opts,
		decoder: decoder,
		doc:     &Document{ViewBox: DefaultViewBox},
		stack:   []*Group{{}},
	}
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, c.markupError(err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			c.readStartElement(se)
		case xml.EndElement:
			c.readEndElement()
		case xml.CharData:
			if txt := strings.TrimSpace(string(se)); txt != "" {
				c.diagnose(c.currentTag(), "", txt, errStrayText)
			}
		}
		if c.err != nil {
			return nil, c.err
		}
	}
	if !seenTag {
		return nil, &MalformedMarkupError{Err: errNoElement}
	}

	c.setRoot()
	c.doc.index()
	c.assignIDs()
	if c.err != nil {
		return nil, c.err
	}
	return c.doc, nil
}

// ParseFile reads the SVG document in the named file.
func ParseFile(filename string, opts Options) (*Document, error) {
	fin, errf := os.Open(filename)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return Parse(fin, opts)
}

func (c *treeCursor) line() int {
	line, _ := c.decoder.InputPos()
	return line
}

func (c *treeCursor) markupError(err error) *MalformedMarkupError {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &MalformedMarkupError{Line: syntax.Line, Err: err}
	}
	return &MalformedMarkupError{Line: c.line(), Err: err}
}

// diagnose reports an anomaly, according to the error mode.
func (c *treeCursor) diagnose(element, attr, value string, err error) {
	d := Diagnostic{Line: c.line(), Element: element, Attr: attr, Value: value, Err: err}
	switch c.opts.ErrorMode {
	case StrictErrorMode:
		if c.err == nil {
			c.err = &DiagnosticError{d}
		}
	case WarnErrorMode:
		logger := c.opts.Logger
		if logger == nil {
			logger = log.Default()
		}
		kv := []any{"line", d.Line, "element", element}
		if attr != "" {
			kv = append(kv, "attr", attr)
		}
		if value != "" {
			kv = append(kv, "value", value)
		}
		logger.Warn(err.Error(), kv...)
	}
}

func (c *treeCursor) top() *Group { return c.stack[len(c.stack)-1] }

func (c *treeCursor) currentTag() string {
	if g := c.top(); g.Tag != "" {
		return g.Tag
	}
	return "document"
}

func (c *treeCursor) push(g *Group) {
	c.stack = append(c.stack, g)
}

// mayHaveChildren returns true for the unsupported elements
// which are kept as groups.
func mayHaveChildren(tag string) bool {
	switch tag {
	case "defs", "symbol", "a", "switch", "marker", "mask", "clipPath", "pattern",
		"linearGradient", "radialGradient", "filter":
		return true
	}
	return false
}

func (c *treeCursor) readStartElement(se xml.StartElement) {
	tag := se.Name.Local
	attrs := make(attributes, len(se.Attr))
	for _, attr := range se.Attr {
		attrs[attr.Name.Local] = attr.Value
	}

	var node Node
	if df, ok := drawFuncs[tag]; ok {
		node = df(c, tag, attrs)
	} else {
		c.diagnose(tag, "", "", errUnsupportedElement)
		if mayHaveChildren(tag) {
			node = &Group{}
		} else {
			// placeholder without geometry, keeping the identifier
			node = &Path{}
		}
	}

	info := node.Common()
	info.ID = attrs["id"]
	info.Tag = tag
	info.Attrs = attrs
	info.Style = c.resolveStyle(tag, attrs)

	parent := c.top()
	parent.Children = append(parent.Children, node)

	g, isGroup := node.(*Group)
	if isGroup && tag != "svg" {
		if tr, ok := attrs["transform"]; ok {
			g.Transforms = append(g.Transforms, tr)
		}
	}
	// every element is closed by an end tag, even leafs : only
	// groups are pushed on the group stack
	if isGroup {
		c.push(g)
	}
	c.openTag = append(c.openTag, isGroup)
}

func (c *treeCursor) readEndElement() {
	if len(c.openTag) == 0 {
		return
	}
	pushed := c.openTag[len(c.openTag)-1]
	c.openTag = c.openTag[:len(c.openTag)-1]
	if pushed && len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// resolveStyle applies the 'style' attribute and the presentation attributes
// on top of DefaultStyle.
func (c *treeCursor) resolveStyle(tag string, attrs attributes) Style {
	style := DefaultStyle
	bad := func(key, value string, err error) { c.diagnose(tag, key, value, err) }
	if s, ok := attrs["style"]; ok {
		props := parseStyleString(s, func(pair string) { c.diagnose(tag, "style", pair, errMalformedPair) })
		applyProperties(&style, props, bad)
	}
	applyProperties(&style, attrs, bad)
	return style
}

// setRoot chooses the root of the document among the top level nodes.
func (c *treeCursor) setRoot() {
	top := c.stack[0]
	if len(top.Children) != 0 {
		if g, ok := top.Children[0].(*Group); ok {
			for _, dropped := range top.Children[1:] {
				c.diagnose(dropped.Common().Tag, "", "", errOutsideRoot)
			}
			c.doc.Root = g
			return
		}
	}
	top.Tag = "document"
	top.Style = DefaultStyle
	c.doc.Root = top
}

// assignIDs generates an identifier for every node without one.
// Generated identifiers use one counter per Kind and skip the explicit ones.
func (c *treeCursor) assignIDs() {
	c.doc.byID = make(map[string]Node, len(c.doc.nodes))
	for _, n := range c.doc.nodes {
		id := n.Common().ID
		if id == "" {
			continue
		}
		if _, has := c.doc.byID[id]; has {
			c.diagnose(n.Common().Tag, "id", id, DuplicateIDError{ID: id})
			continue
		}
		c.doc.byID[id] = n
	}
	var counters [PolygonKind + 1]int
	for _, n := range c.doc.nodes {
		info := n.Common()
		if info.ID != "" {
			continue
		}
		kind := n.Kind()
		for {
			counters[kind]++
			id := fmt.Sprintf("%s_%d", kind, counters[kind])
			if _, taken := c.doc.byID[id]; !taken {
				info.ID = id
				c.doc.byID[id] = n
				break
			}
		}
	}
}

type elementFunc func(c *treeCursor, tag string, attrs attributes) Node

var drawFuncs = map[string]elementFunc{
	"svg":      svgF,
	"g":        gF,
	"path":     pathF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"line":     lineF,
	"polyline": polylineF,
	"polygon":  polygonF,
}

// readNumber returns the numeric attribute `key`, or 0
// if it is absent or invalid.
func (c *treeCursor) readNumber(tag string, attrs attributes, key string) float64 {
	v, ok := attrs[key]
	if !ok {
		return 0
	}
	f, err := parseFloat(v)
	if err != nil {
		c.diagnose(tag, key, v, err)
		return 0
	}
	return f
}

// readOptionalNumber is like readNumber, but returns nil
// for absent or invalid attributes.
func (c *treeCursor) readOptionalNumber(tag string, attrs attributes, key string) *float64 {
	v, ok := attrs[key]
	if !ok {
		return nil
	}
	f, err := parseFloat(v)
	if err != nil {
		c.diagnose(tag, key, v, err)
		return nil
	}
	return &f
}

func svgF(c *treeCursor, tag string, attrs attributes) Node {
	if c.seenSVG { // nested svg elements are plain groups
		return &Group{}
	}
	c.seenSVG = true
	c.doc.Width, c.doc.Height = attrs["width"], attrs["height"]
	if v, ok := attrs["viewBox"]; ok {
		vb, ok := ParseViewBox(v)
		if ok {
			c.doc.ViewBox = vb
		} else {
			c.diagnose(tag, "viewBox", v, errors.New("invalid viewBox"))
		}
	}
	return &Group{}
}

func gF(*treeCursor, string, attributes) Node { return &Group{} }

func pathF(_ *treeCursor, _ string, attrs attributes) Node {
	return &Path{D: attrs["d"]}
}

func rectF(c *treeCursor, tag string, attrs attributes) Node {
	return &Rect{
		X:      c.readNumber(tag, attrs, "x"),
		Y:      c.readNumber(tag, attrs, "y"),
		Width:  c.readNumber(tag, attrs, "width"),
		Height: c.readNumber(tag, attrs, "height"),
		RX:     c.readOptionalNumber(tag, attrs, "rx"),
		RY:     c.readOptionalNumber(tag, attrs, "ry"),
	}
}

func circleF(c *treeCursor, tag string, attrs attributes) Node {
	return &Circle{
		CX: c.readNumber(tag, attrs, "cx"),
		CY: c.readNumber(tag, attrs, "cy"),
		R:  c.readNumber(tag, attrs, "r"),
	}
}

func ellipseF(c *treeCursor, tag string, attrs attributes) Node {
	return &Ellipse{
		CX: c.readNumber(tag, attrs, "cx"),
		CY: c.readNumber(tag, attrs, "cy"),
		RX: c.readNumber(tag, attrs, "rx"),
		RY: c.readNumber(tag, attrs, "ry"),
	}
}

func lineF(c *treeCursor, tag string, attrs attributes) Node {
	return &Line{
		X1: c.readNumber(tag, attrs, "x1"),
		Y1: c.readNumber(tag, attrs, "y1"),
		X2: c.readNumber(tag, attrs, "x2"),
		Y2: c.readNumber(tag, attrs, "y2"),
	}
}

func (c *treeCursor) readPoints(tag string, attrs attributes) []svgpath.Point {
	v := attrs["points"]
	pts, err := ParsePoints(v)
	if err != nil {
		c.diagnose(tag, "points", v, err)
	}
	return pts
}

func polylineF(c *treeCursor, tag string, attrs attributes) Node {
	return &Polyline{Points: c.readPoints(tag, attrs)}
}

func polygonF(c *treeCursor, tag string, attrs attributes) Node {
	return &Polygon{Points: c.readPoints(tag, attrs)}
}
