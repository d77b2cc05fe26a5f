package pdfpage

import (
	"math"
	"testing"

	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

func newTestBuilder() *pageBuilder {
	b := &pageBuilder{pageH: 792}
	b.page.Bounds = geom.Rect{X1: 612, Y1: 792}
	return b
}

func rectApprox(got, want geom.Rect) bool {
	const eps = 1e-9
	return math.Abs(got.X0-want.X0) < eps && math.Abs(got.Y0-want.Y0) < eps &&
		math.Abs(got.X1-want.X1) < eps && math.Abs(got.Y1-want.Y1) < eps
}

func TestWalkStrokedPath(t *testing.T) {
	b := newTestBuilder()
	b.walk([]byte("2 w 10 10 m 100 10 l 100 100 l h S"), nil, newGState(), 0)

	if len(b.page.Drawings) != 1 {
		t.Fatalf("drawings = %d, want 1", len(b.page.Drawings))
	}
	d := b.page.Drawings[0]
	if !rectApprox(d.BBox, geom.Rect{X0: 10, Y0: 692, X1: 100, Y1: 782}) {
		t.Errorf("bbox = %+v, want y-flipped 10,692..100,782", d.BBox)
	}
	if d.StrokeWidth != 2 || !d.Stroked || d.Filled {
		t.Errorf("style = width %v stroked %v filled %v", d.StrokeWidth, d.Stroked, d.Filled)
	}
	want := []content.PathOp{content.OpMove, content.OpLine, content.OpLine, content.OpClose}
	if len(d.Ops) != len(want) {
		t.Fatalf("ops = %v, want %v", d.Ops, want)
	}
	for i := range want {
		if d.Ops[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, d.Ops[i], want[i])
		}
	}
}

func TestWalkFilledRect(t *testing.T) {
	b := newTestBuilder()
	b.walk([]byte("0 0 50 50 re f"), nil, newGState(), 0)

	if len(b.page.Drawings) != 1 {
		t.Fatalf("drawings = %d, want 1", len(b.page.Drawings))
	}
	d := b.page.Drawings[0]
	if !rectApprox(d.BBox, geom.Rect{X0: 0, Y0: 742, X1: 50, Y1: 792}) {
		t.Errorf("bbox = %+v", d.BBox)
	}
	if !d.Filled || d.Stroked || d.StrokeWidth != 0 {
		t.Errorf("style = width %v stroked %v filled %v", d.StrokeWidth, d.Stroked, d.Filled)
	}
	if len(d.Ops) != 1 || d.Ops[0] != content.OpRect {
		t.Errorf("ops = %v, want [OpRect]", d.Ops)
	}
}

func TestWalkImagePlacement(t *testing.T) {
	b := newTestBuilder()
	res := map[string]xobj{
		"Im1": {kind: xobjImage, width: 800, height: 600},
	}
	b.walk([]byte("q 200 0 0 100 50 600 cm /Im1 Do Q"), res, newGState(), 0)

	if len(b.page.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(b.page.Images))
	}
	img := b.page.Images[0]
	if !rectApprox(img.PlacementRect(), geom.Rect{X0: 50, Y0: 92, X1: 250, Y1: 192}) {
		t.Errorf("placement = %+v", img.PlacementRect())
	}
	w, h := img.NativePixelSize()
	if w != 800 || h != 600 {
		t.Errorf("native size = %dx%d, want 800x600", w, h)
	}
}

func TestWalkTextBlock(t *testing.T) {
	b := newTestBuilder()
	b.walk([]byte("BT /F1 12 Tf 72 700 Td (Hello World) Tj ET"), nil, newGState(), 0)

	if len(b.page.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(b.page.Blocks))
	}
	blk := b.page.Blocks[0]
	if blk.Kind != content.BlockText {
		t.Errorf("kind = %v, want BlockText", blk.Kind)
	}
	// 11 bytes * 12pt * 0.5 = 66pt wide, 12pt tall at baseline 700.
	if !rectApprox(blk.BBox, geom.Rect{X0: 72, Y0: 80, X1: 138, Y1: 92}) {
		t.Errorf("bbox = %+v", blk.BBox)
	}
}

func TestWalkTextMultiLine(t *testing.T) {
	b := newTestBuilder()
	stream := "BT /F1 10 Tf 14 TL 100 400 Td (first) Tj T* (second) Tj ET"
	b.walk([]byte(stream), nil, newGState(), 0)

	if len(b.page.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 (runs merged per text object)", len(b.page.Blocks))
	}
	blk := b.page.Blocks[0]
	// second line baseline is at 386, so the block spans both lines
	if !rectApprox(blk.BBox, geom.Rect{X0: 100, Y0: 792 - 410, X1: 130, Y1: 792 - 386}) {
		t.Errorf("bbox = %+v", blk.BBox)
	}
}

func TestWalkFormRecursion(t *testing.T) {
	b := newTestBuilder()
	res := map[string]xobj{
		"Fm1": {kind: xobjForm, stream: []byte("0 0 20 20 re f"), mtx: identityMatrix()},
	}
	b.walk([]byte("q 1 0 0 1 100 100 cm /Fm1 Do Q"), res, newGState(), 0)

	if len(b.page.Drawings) != 1 {
		t.Fatalf("drawings = %d, want 1 from form", len(b.page.Drawings))
	}
	d := b.page.Drawings[0]
	if !rectApprox(d.BBox, geom.Rect{X0: 100, Y0: 672, X1: 120, Y1: 692}) {
		t.Errorf("form drawing bbox = %+v", d.BBox)
	}
}

func TestWalkInlineImageSkipped(t *testing.T) {
	b := newTestBuilder()
	stream := "BI /W 4 /H 4 ID \x00\x01\x02\x03 EI 5 5 m 50 50 l S"
	b.walk([]byte(stream), nil, newGState(), 0)

	if len(b.page.Images) != 0 {
		t.Errorf("images = %d, inline images must not be counted", len(b.page.Images))
	}
	if len(b.page.Drawings) != 1 {
		t.Errorf("drawings = %d, want walker to resume after EI", len(b.page.Drawings))
	}
}

func TestWalkNoPaintNoDrawing(t *testing.T) {
	b := newTestBuilder()
	b.walk([]byte("10 10 m 100 100 l n"), nil, newGState(), 0)
	if len(b.page.Drawings) != 0 {
		t.Errorf("drawings = %d, want 0 for path ended with n", len(b.page.Drawings))
	}
}

func TestWalkScaledLineWidth(t *testing.T) {
	b := newTestBuilder()
	// CTM scales by 3: a 0.1pt hairline becomes 0.3pt on the page.
	b.walk([]byte("q 3 0 0 3 0 0 cm 0.1 w 0 0 m 10 10 l S Q"), nil, newGState(), 0)
	if len(b.page.Drawings) != 1 {
		t.Fatalf("drawings = %d, want 1", len(b.page.Drawings))
	}
	if w := b.page.Drawings[0].StrokeWidth; math.Abs(w-0.3) > 1e-9 {
		t.Errorf("stroke width = %v, want 0.3", w)
	}
}

func TestWalkUnbalancedRestoreIsHarmless(t *testing.T) {
	b := newTestBuilder()
	b.walk([]byte("Q Q 0 0 10 10 re f"), nil, newGState(), 0)
	if len(b.page.Drawings) != 1 {
		t.Errorf("drawings = %d, want 1 despite stray Q", len(b.page.Drawings))
	}
}
