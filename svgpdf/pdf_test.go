package svgpdf

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/charmbracelet/log"
	"github.com/jung-kurt/gofpdf"
)

const shapes = `<svg viewBox="0 0 100 100">
	<rect x="10" y="10" width="30" height="30" rx="4" fill="#ff0000" stroke="#000" stroke-linejoin="bevel"/>
	<circle cx="70" cy="70" r="20" fill="#00ff00" fill-opacity="0.5" fill-rule="evenodd" stroke-linecap="square"/>
	<path d="M10 90 Q50 50 90 90 T 90 10"/>
</svg>`

func newScene(t *testing.T, src string) *svgtrace.Scene {
	t.Helper()
	doc, err := svgtree.Parse(strings.NewReader(src), svgtree.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return svgtrace.NewScene(doc, svgtrace.WithLogger(log.New(&bytes.Buffer{})))
}

func TestFlipbook(t *testing.T) {
	scene := newScene(t, shapes)
	pdf := Flipbook(scene, 200, 200, 6, color.White)
	if pdf.Err() {
		t.Fatal(pdf.Error())
	}
	if n := pdf.PageCount(); n != 6 {
		t.Errorf("expected 6 pages, got %d", n)
	}
	w, h := pdf.GetPageSize()
	if w != 200 || h != 200 {
		t.Errorf("unexpected page size %f x %f", w, h)
	}
}

func TestWriteFlipbook(t *testing.T) {
	scene := newScene(t, shapes)
	var out bytes.Buffer
	if err := WriteFlipbook(&out, scene, 100, 50, 3, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF-")) {
		t.Errorf("unexpected output %q", out.Bytes()[:10])
	}
}

func TestRenderer(t *testing.T) {
	scene := newScene(t, shapes)
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	svgtrace.Draw(scene.Frame(300, 300, 0.7), NewRenderer(pdf))
	svgtrace.Draw(scene.Frame(300, 300, 1), NewRenderer(pdf))
	if pdf.Err() {
		t.Fatal(pdf.Error())
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		t.Fatal(err)
	}
}
