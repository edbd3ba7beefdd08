package svgtrace

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/svgtrace/svgpath"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/charmbracelet/log"
)

func closeTo(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func parse(t *testing.T, src string) *svgtree.Document {
	t.Helper()
	doc, err := svgtree.Parse(strings.NewReader(src), svgtree.Options{ErrorMode: svgtree.IgnoreErrorMode})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func build(t *testing.T, src string) (*svgtree.Document, []PathUnit) {
	t.Helper()
	doc := parse(t, src)
	return doc, BuildPaths(doc, WithLogger(log.New(&bytes.Buffer{})))
}

func splitOps(ops []Op) (strokes []*StrokeOp, fills []*FillOp) {
	for _, op := range ops {
		switch op := op.(type) {
		case *StrokeOp:
			strokes = append(strokes, op)
		case *FillOp:
			fills = append(fills, op)
		}
	}
	return strokes, fills
}

const multiShapes = `<svg viewBox="0 0 100 100">
	<g id="layer">
		<rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
		<circle cx="50" cy="50" r="10" fill="#00ff00"/>
		<path d="M0 90 L100 90"/>
	</g>
	<polygon points="0,0 10,0 10,10" fill="blue"/>
	<line x1="0" y1="0" x2="30" y2="40" stroke="#000"/>
</svg>`

func TestEndToEnd(t *testing.T) {
	_, units := build(t, `<svg viewBox="0 0 100 100"><path id="p1" d="M0 0 L100 0" stroke="#000"/></svg>`)
	if len(units) != 1 {
		t.Fatalf("expected one unit, got %d", len(units))
	}
	if !closeTo(units[0].Length, 100, 1e-9) {
		t.Fatalf("expected length 100, got %f", units[0].Length)
	}

	ops := Render(units, svgpath.Identity, 0.5)
	strokes, fills := splitOps(ops)
	if len(fills) != 0 {
		t.Errorf("unexpected fills %v", fills)
	}
	if len(strokes) != 1 {
		t.Fatalf("expected one stroke, got %d", len(strokes))
	}
	exp := svgpath.Path{svgpath.MoveTo{X: 0, Y: 0}, svgpath.LineTo{X: 50, Y: 0}}
	if !reflect.DeepEqual(strokes[0].Path, exp) {
		t.Errorf("expected %s, got %s", exp, strokes[0].Path)
	}
	if c := strokes[0].Paint.Color; c != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Errorf("unexpected stroke color %v", c)
	}
	if strokes[0].Node.Common().ID != "p1" {
		t.Errorf("unexpected node %s", strokes[0].Node.Common().ID)
	}
}

func TestBuildPaths(t *testing.T) {
	_, units := build(t, multiShapes)
	exp := []struct {
		id     string
		length float64
	}{
		{"Rect_1", 40},
		{"Circle_1", 20 * math.Pi},
		{"Path_1", 100},
		{"Polygon_1", 20 + 10*math.Sqrt2},
		{"Line_1", 50},
	}
	if len(units) != len(exp) {
		t.Fatalf("expected %d units, got %d", len(exp), len(units))
	}
	for i, e := range exp {
		u := units[i]
		if u.Node.Common().ID != e.id {
			t.Errorf("unit %d: expected %s, got %s", i, e.id, u.Node.Common().ID)
		}
		if !closeTo(u.Length, e.length, 1e-2) {
			t.Errorf("%s: expected length %f, got %f", e.id, e.length, u.Length)
		}
	}
	if got := TotalLength(units); !closeTo(got, 40+20*math.Pi+100+20+10*math.Sqrt2+50, 1e-1) {
		t.Errorf("unexpected total length %f", got)
	}
}

func TestBuildRect(t *testing.T) {
	_, units := build(t, `<svg>
		<rect width="10" height="10"/>
		<rect width="10" height="10" rx="2"/>
		<rect width="0" height="10"/>
	</svg>`)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if !closeTo(units[0].Length, 40, 1e-9) {
		t.Errorf("unexpected perimeter %f", units[0].Length)
	}
	if l := units[1].Length; !(l > 0) || !closeTo(l, 24+4*math.Pi, 1e-2) {
		t.Errorf("unexpected rounded perimeter %f", l)
	}
}

func TestPolygonPolyline(t *testing.T) {
	_, units := build(t, `<svg>
		<polygon points="0,0 10,0 10,10"/>
		<polyline points="0,0 10,0 10,10"/>
	</svg>`)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if diff := units[0].Length - units[1].Length; !closeTo(diff, 10*math.Sqrt2, 1e-9) {
		t.Errorf("polygon should close back to its first point: %f", diff)
	}
}

func TestMalformedPathSkipped(t *testing.T) {
	var logs bytes.Buffer
	doc := parse(t, `<svg>
		<path id="ok" d="M0 0 L10 0"/>
		<path id="bad" d="M0 0 L10"/>
		<path id="unknown" d="M0 0 X10 0"/>
		<path id="empty"/>
	</svg>`)
	units := BuildPaths(doc, WithLogger(log.New(&logs)))
	if len(units) != 1 || units[0].Node.Common().ID != "ok" {
		t.Fatalf("expected only the valid path, got %d units", len(units))
	}
	if !strings.Contains(logs.String(), "bad") || !strings.Contains(logs.String(), "unknown") {
		t.Errorf("expected warnings, got %q", logs.String())
	}
}

func TestBuildNodePaths(t *testing.T) {
	doc, _ := build(t, multiShapes)
	layer, ok := doc.Lookup("layer")
	if !ok {
		t.Fatal("missing group")
	}
	if units := BuildNodePaths(layer); len(units) != 3 {
		t.Errorf("expected the 3 units of the group, got %d", len(units))
	}
	line, _ := doc.Lookup("Line_1")
	if units := BuildNodePaths(line); len(units) != 1 || !closeTo(units[0].Length, 50, 1e-9) {
		t.Errorf("unexpected units %v", units)
	}
}

func TestRenderBounds(t *testing.T) {
	_, units := build(t, multiShapes)

	strokes, fills := splitOps(Render(units, svgpath.Identity, 0))
	if len(strokes) != 0 || len(fills) != 0 {
		t.Errorf("progress 0 should not draw anything, got %d strokes and %d fills", len(strokes), len(fills))
	}

	strokes, fills = splitOps(Render(units, svgpath.Identity, 1))
	if len(fills) != len(units) {
		t.Errorf("expected one fill per unit, got %d", len(fills))
	}
	if len(strokes) != len(units) {
		t.Fatalf("expected one stroke per unit, got %d", len(strokes))
	}
	last := units[len(units)-1]
	if got := svgpath.Measure(strokes[len(strokes)-1].Path).Length(); !closeTo(got, last.Length, 1e-6) {
		t.Errorf("last stroke should be complete: %f != %f", got, last.Length)
	}

	// clamped inputs
	for _, p := range []float64{-1, math.NaN()} {
		if ops := Render(units, svgpath.Identity, p); len(ops) != 0 {
			t.Errorf("progress %f: expected no ops, got %d", p, len(ops))
		}
	}
	if !reflect.DeepEqual(Render(units, svgpath.Identity, 2), Render(units, svgpath.Identity, 1)) {
		t.Error("progress above 1 should be clamped")
	}
}

func TestRenderOrder(t *testing.T) {
	_, units := build(t, multiShapes)
	ops := Render(units, svgpath.Identity, 1)
	seenFill := false
	for _, op := range ops {
		_, isFill := op.(*FillOp)
		if seenFill && !isFill {
			t.Fatal("strokes must be drawn before fills")
		}
		seenFill = seenFill || isFill
	}
	_, fills := splitOps(ops)
	for i, f := range fills {
		if f.Node != units[i].Node {
			t.Errorf("fill %d out of document order", i)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	_, units := build(t, multiShapes)
	m := FitTransform(svgtree.ViewBox{Width: 100, Height: 100}, 300, 200)
	for _, p := range []float64{0.1, 0.33, 0.8} {
		a, b := Render(units, m, p), Render(units, m, p)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("progress %f: rendering is not deterministic", p)
		}
	}
}

func TestRenderMonotonic(t *testing.T) {
	_, units := build(t, multiShapes)
	total := TotalLength(units)
	prevFills, prevLength := 0, 0.
	for i := 0; i <= 50; i++ {
		strokes, fills := splitOps(Render(units, svgpath.Identity, float64(i)/50))
		if len(fills) < prevFills {
			t.Fatalf("step %d: fill count decreased", i)
		}
		var length float64
		for _, s := range strokes {
			length += svgpath.Measure(s.Path).Length()
		}
		if length < prevLength-1e-6 {
			t.Fatalf("step %d: stroked length decreased", i)
		}
		if exp := float64(i) / 50 * total; !closeTo(length, exp, 5e-2) {
			t.Errorf("step %d: expected stroked length %f, got %f", i, exp, length)
		}
		prevFills, prevLength = len(fills), length
	}
}

func TestFillCompletion(t *testing.T) {
	_, units := build(t, `<svg>
		<path d="M0 0 L10 0" fill="#000"/>
		<path d="M0 0 L10 0" fill="#000"/>
	</svg>`)
	// exactly the first unit
	_, fills := splitOps(Render(units, svgpath.Identity, 0.5))
	if len(fills) != 1 {
		t.Errorf("expected the first unit filled, got %d fills", len(fills))
	}
	// tolerance
	_, fills = splitOps(Render(units, svgpath.Identity, (10-Epsilon/2)/20))
	if len(fills) != 1 {
		t.Errorf("expected the first unit filled within tolerance, got %d fills", len(fills))
	}
	_, fills = splitOps(Render(units, svgpath.Identity, 0.45))
	if len(fills) != 0 {
		t.Errorf("expected no fill, got %d", len(fills))
	}
}

func TestPaintDefaults(t *testing.T) {
	_, units := build(t, `<svg>
		<path d="M0 0 L10 0"/>
		<path d="M0 0 L10 0" stroke="#ff0000" stroke-width="3" stroke-opacity="0.5" fill="#00ff00" fill-opacity="0.25" fill-rule="evenodd"/>
	</svg>`)
	strokes, fills := splitOps(Render(units, svgpath.Identity, 1))
	if len(strokes) != 2 || len(fills) != 2 {
		t.Fatalf("unexpected ops %d %d", len(strokes), len(fills))
	}
	if p := strokes[0].Paint; p.Color != (color.NRGBA{0x17, 0x17, 0x17, 0xff}) || p.Width != 0.75 || p.Alpha() != 1 {
		t.Errorf("unexpected default stroke %v", p)
	}
	if p := fills[0].Paint; p.Alpha() != 0 {
		t.Errorf("default fill should be transparent, got %v", p)
	}
	if p := strokes[1].Paint; p.Color != (color.NRGBA{0xff, 0, 0, 0xff}) || p.Width != 3 || p.Alpha() != 0.5 {
		t.Errorf("unexpected stroke %v", p)
	}
	if p := fills[1].Paint; p.Color != (color.NRGBA{0, 0xff, 0, 0xff}) || p.Alpha() != 0.25 || p.Rule != svgtree.EvenOdd {
		t.Errorf("unexpected fill %v", p)
	}

	strokes, fills = splitOps(Render(units, svgpath.Identity, 1,
		WithDefaultStrokeColor(color.NRGBA{1, 2, 3, 255}), WithDefaultStrokeWidth(2), WithDefaultFillColor(color.NRGBA{4, 5, 6, 255})))
	if p := strokes[0].Paint; p.Color != (color.NRGBA{1, 2, 3, 255}) || p.Width != 2 {
		t.Errorf("unexpected stroke %v", p)
	}
	if p := fills[0].Paint; p.Color != (color.NRGBA{4, 5, 6, 255}) || p.Alpha() != 1 {
		t.Errorf("unexpected fill %v", p)
	}
}

func TestRenderByNode(t *testing.T) {
	doc, units := build(t, multiShapes)

	// nodes without progress are complete
	strokes, fills := splitOps(RenderByNode(doc, units, svgpath.Identity, ProgressMap{}))
	if len(strokes) != len(units) || len(fills) != len(units) {
		t.Fatalf("expected every node complete, got %d strokes and %d fills", len(strokes), len(fills))
	}

	// the group progress applies to its children, the
	// explicit progress of a child wins
	src := ProgressMap{"layer": 0, "Circle_1": 0.5, "Line_1": 0.5}
	strokes, fills = splitOps(RenderByNode(doc, units, svgpath.Identity, src))
	var ids []string
	for _, s := range strokes {
		ids = append(ids, s.Node.Common().ID)
	}
	if exp := []string{"Circle_1", "Polygon_1", "Line_1"}; !reflect.DeepEqual(ids, exp) {
		t.Errorf("expected strokes %v, got %v", exp, ids)
	}
	if len(fills) != 1 || fills[0].Node.Common().ID != "Polygon_1" {
		t.Errorf("expected only the polygon filled, got %d fills", len(fills))
	}
	if got := svgpath.Measure(strokes[2].Path).Length(); !closeTo(got, 25, 1e-9) {
		t.Errorf("expected half of the line, got %f", got)
	}

	// below the visibility threshold
	if ops := RenderByNode(doc, units, svgpath.Identity, ProgressMap{doc.Root.ID: 0.0005}); len(ops) != 0 {
		t.Errorf("expected hidden nodes, got %d ops", len(ops))
	}
}

func TestFitTransform(t *testing.T) {
	vb := svgtree.ViewBox{MinX: 0, MinY: 0, Width: 100, Height: 50}
	m := FitTransform(vb, 400, 400)
	// scale 4, centered vertically
	if p := m.TPoint(svgpath.Point{}); !closeTo(p.X, 0, 1e-9) || !closeTo(p.Y, 100, 1e-9) {
		t.Errorf("unexpected origin %v", p)
	}
	if p := m.TPoint(svgpath.Point{X: 100, Y: 50}); !closeTo(p.X, 400, 1e-9) || !closeTo(p.Y, 300, 1e-9) {
		t.Errorf("unexpected corner %v", p)
	}
	if s := m.ScaleFactor(); !closeTo(s, 4, 1e-9) {
		t.Errorf("unexpected scale %f", s)
	}

	// view box origin
	m = FitTransform(svgtree.ViewBox{MinX: -10, MinY: -10, Width: 20, Height: 20}, 100, 100)
	if p := m.TPoint(svgpath.Point{}); !closeTo(p.X, 50, 1e-9) || !closeTo(p.Y, 50, 1e-9) {
		t.Errorf("unexpected center %v", p)
	}

	for _, degenerate := range [][2]float64{{0, 100}, {100, -1}} {
		if m := FitTransform(vb, degenerate[0], degenerate[1]); !m.IsIdentity() {
			t.Errorf("expected identity, got %v", m)
		}
	}
	if m := FitTransform(svgtree.ViewBox{Width: 0, Height: 10}, 100, 100); !m.IsIdentity() {
		t.Errorf("expected identity, got %v", m)
	}
}

func TestScene(t *testing.T) {
	doc := parse(t, multiShapes)
	scene := NewScene(doc, WithLogger(log.New(&bytes.Buffer{})))
	if len(scene.Units()) != 5 {
		t.Fatalf("unexpected units %d", len(scene.Units()))
	}
	if !closeTo(scene.TotalLength(), TotalLength(scene.Units()), 1e-12) {
		t.Error("inconsistent total length")
	}
	m := scene.Transform(200, 200)
	if !reflect.DeepEqual(scene.Frame(200, 200, 0.4), Render(scene.Units(), m, 0.4)) {
		t.Error("inconsistent frame")
	}

	if FrameProgress(0, 5) != 0 || FrameProgress(4, 5) != 1 || FrameProgress(2, 5) != 0.5 || FrameProgress(0, 1) != 1 {
		t.Error("unexpected frame progress")
	}
}

func TestRenderCompleteManyUnits(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<svg viewBox="0 0 1000 1000">`)
	for i := 0; i < 3000; i++ {
		fmt.Fprintf(&sb, `<rect x="%g" y="%g" width="%g" height="%g"/>`,
			float64(i%100)*9.7, float64(i/100)*31.3, 0.1+float64(i%7)*1.37, 0.3+float64(i%11)*0.71)
	}
	sb.WriteString(`</svg>`)
	_, units := build(t, sb.String())
	if len(units) != 3000 {
		t.Fatalf("expected 3000 units, got %d", len(units))
	}

	strokes, fills := splitOps(Render(units, svgpath.Identity, 1))
	if len(strokes) != len(units) || len(fills) != len(units) {
		t.Fatalf("expected %d strokes and fills, got %d and %d", len(units), len(strokes), len(fills))
	}
	for i, s := range strokes {
		if len(s.Path) != len(units[i].Path) {
			t.Fatalf("unit %d: incomplete stroke %s", i, s.Path)
		}
		if _, ok := s.Path[len(s.Path)-1].(svgpath.Close); !ok {
			t.Fatalf("unit %d: stroke should be closed: %s", i, s.Path)
		}
	}
}
