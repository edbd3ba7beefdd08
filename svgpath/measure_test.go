package svgpath

import (
	"math"
	"testing"
)

func closeTo(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestMeasureShapes(t *testing.T) {
	var rect, round, circle, ellipse, polygon, polyline Path
	rect.AddRect(0, 0, 10, 10)
	round.AddRoundRect(0, 0, 10, 10, 2, 2)
	circle.AddEllipse(5, 5, 5, 5)
	ellipse.AddEllipse(0, 0, 10, 10)
	polygon.AddPolyline([]Point{{0, 0}, {10, 0}, {10, 10}}, true)
	polyline.AddPolyline([]Point{{0, 0}, {10, 0}, {10, 10}}, false)

	for _, test := range []struct {
		name string
		path Path
		exp  float64
	}{
		{"rect", rect, 40},
		{"round rect", round, 40 - 16 + 4*math.Pi},
		{"circle", circle, 10 * math.Pi},
		{"ellipse", ellipse, 20 * math.Pi},
		{"polygon", polygon, 20 + 10*math.Sqrt2},
		{"polyline", polyline, 20},
	} {
		if got := Measure(test.path).Length(); !closeTo(got, test.exp, 1e-2) {
			t.Errorf("%s: expected length %f, got %f", test.name, test.exp, got)
		}
	}
}

func TestRoundRectClamp(t *testing.T) {
	var p Path
	// radii larger than half the sides give a circle
	p.AddRoundRect(0, 0, 10, 10, 20, 20)
	if got := Measure(p).Length(); !closeTo(got, 10*math.Pi, 1e-2) {
		t.Errorf("expected circle length, got %f", got)
	}
}

func TestMeasureContours(t *testing.T) {
	p, err := CompilePath("M0 0 L10 0 L10 10 Z M20 0 L30 0 M40 40")
	if err != nil {
		t.Fatal(err)
	}
	m := Measure(p)
	cs := m.Contours()
	if len(cs) != 3 {
		t.Fatalf("expected 3 contours, got %d", len(cs))
	}
	if !cs[0].Closed() || cs[1].Closed() {
		t.Error("unexpected closed flags")
	}
	if !closeTo(cs[0].Length(), 20+10*math.Sqrt2, 1e-9) || cs[1].Length() != 10 || cs[2].Length() != 0 {
		t.Errorf("unexpected contour lengths %v %v %v", cs[0].Length(), cs[1].Length(), cs[2].Length())
	}
	if !closeTo(m.Length(), 30+10*math.Sqrt2, 1e-9) {
		t.Errorf("unexpected total length %f", m.Length())
	}
}

func TestTraceLine(t *testing.T) {
	p := Path{MoveTo{0, 0}, LineTo{100, 0}}
	m := Measure(p)
	if m.Length() != 100 {
		t.Fatalf("expected length 100, got %f", m.Length())
	}
	got := m.Trace(50)
	if len(got) != 2 || got[0] != (MoveTo{0, 0}) || got[1] != (LineTo{50, 0}) {
		t.Errorf("unexpected half trace %s", got)
	}
	if got := m.Trace(0); len(got) != 0 {
		t.Errorf("expected empty trace, got %s", got)
	}
	if got := m.Trace(-1); len(got) != 0 {
		t.Errorf("expected empty trace, got %s", got)
	}
	if got := m.Trace(200); got.String() != p.String() {
		t.Errorf("expected full path, got %s", got)
	}
}

func TestTraceClosed(t *testing.T) {
	var p Path
	p.AddRect(0, 0, 10, 10)
	m := Measure(p)

	full := m.Trace(m.Length())
	if _, ok := full[len(full)-1].(Close); !ok {
		t.Errorf("full trace of a closed contour should keep its close: %s", full)
	}

	// the closing segment is traced as a line
	got := m.Trace(35)
	exp := Path{MoveTo{0, 0}, LineTo{10, 0}, LineTo{10, 10}, LineTo{0, 10}, LineTo{0, 5}}
	if got.String() != exp.String() {
		t.Errorf("expected %s, got %s", exp, got)
	}
}

func TestTraceMultipleContours(t *testing.T) {
	p, _ := CompilePath("M0 0 H10 M0 10 H10")
	m := Measure(p)
	got := m.Trace(15)
	exp := Path{MoveTo{0, 0}, LineTo{10, 0}, MoveTo{0, 10}, LineTo{5, 10}}
	if got.String() != exp.String() {
		t.Errorf("expected %s, got %s", exp, got)
	}
}

func TestTraceCurveLength(t *testing.T) {
	var p Path
	p.AddEllipse(0, 0, 20, 10)
	m := Measure(p)
	total := m.Length()
	previous := 0.
	for _, f := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		part := Measure(m.Trace(f * total)).Length()
		if !closeTo(part, f*total, 1e-2) {
			t.Errorf("fraction %f: expected length %f, got %f", f, f*total, part)
		}
		if part < previous {
			t.Errorf("trace length should be monotonic")
		}
		previous = part
	}

	// partial trace starts at the path start
	tr := m.Trace(total / 4)
	if tr[0] != (MoveTo{20, 0}) {
		t.Errorf("unexpected start %v", tr[0])
	}
}

func TestBounds(t *testing.T) {
	var p Path
	p.AddEllipse(5, 5, 5, 3)
	b := p.Bounds()
	if !closeTo(b.X, 0, 1e-2) || !closeTo(b.Y, 2, 1e-2) || !closeTo(b.W, 10, 1e-2) || !closeTo(b.H, 6, 1e-2) {
		t.Errorf("unexpected ellipse bounds %v", b)
	}

	// control points outside of the curve
	q := Path{MoveTo{0, 0}, QuadTo{{5, 10}, {10, 0}}}
	if b := q.Bounds(); !closeTo(b.H, 5, 1e-9) || b.W != 10 {
		t.Errorf("unexpected quad bounds %v", b)
	}

	if b := (Path{}).Bounds(); b != (Bounds{}) {
		t.Errorf("expected empty bounds, got %v", b)
	}
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	if x, y := m.Transform(1, 1); x != 12 || y != 23 {
		t.Errorf("unexpected transform (%f, %f)", x, y)
	}
	if x, y := Identity.Scale(2, 2).Mult(Identity.Translate(1, 0)).Transform(0, 0); x != 2 || y != 0 {
		t.Errorf("unexpected product (%f, %f)", x, y)
	}
	if s := Identity.Scale(2, 8).ScaleFactor(); s != 4 {
		t.Errorf("unexpected scale factor %f", s)
	}
	if !Identity.Mult(Identity).IsIdentity() {
		t.Error("identity product")
	}
}

func TestTraceSymmetricCurves(t *testing.T) {
	for _, p := range []Path{
		{MoveTo{0, 0}, QuadTo{{50, 100}, {100, 0}}},
		{MoveTo{0, 0}, CubicTo{{0, 100}, {100, 100}, {100, 0}}},
	} {
		m := Measure(p)
		half := m.Trace(m.Length() / 2)
		if len(half) != 2 {
			t.Fatalf("expected a single curve, got %s", half)
		}
		end, _ := half[1].end()
		if half[1] == p[1] {
			t.Errorf("expected a split curve, got %s", half)
		}
		if !closeTo(end.X, 50, 1e-2) {
			t.Errorf("expected to stop at the middle, got %v", end)
		}
		if got := Measure(half).Length(); !closeTo(got, m.Length()/2, 1e-2) {
			t.Errorf("expected half length %f, got %f", m.Length()/2, got)
		}
	}
}
