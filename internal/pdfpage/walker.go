package pdfpage

import (
	"fmt"
	"math"

	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

const maxFormDepth = 8

// matrix is a PDF transformation matrix [a b c d e f].
type matrix struct {
	a, b, c, d, e, f float64
}

func identityMatrix() matrix {
	return matrix{a: 1, d: 1}
}

func translation(tx, ty float64) matrix {
	return matrix{a: 1, d: 1, e: tx, f: ty}
}

// mul composes transforms: (m.mul(n)).apply(p) == n.apply(m.apply(p)).
func (m matrix) mul(n matrix) matrix {
	return matrix{
		a: m.a*n.a + m.b*n.c,
		b: m.a*n.b + m.b*n.d,
		c: m.c*n.a + m.d*n.c,
		d: m.c*n.b + m.d*n.d,
		e: m.e*n.a + m.f*n.c + n.e,
		f: m.e*n.b + m.f*n.d + n.f,
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// scaleFactor is the average length scaling of the matrix, used to map line
// widths and font sizes into page space.
func (m matrix) scaleFactor() float64 {
	return math.Sqrt(math.Abs(m.a*m.d - m.b*m.c))
}

type gstate struct {
	ctm       matrix
	lineWidth float64
	tm, tlm   matrix
	leading   float64
	fontSize  float64
}

func newGState() gstate {
	return gstate{
		ctm:       identityMatrix(),
		lineWidth: 1,
		tm:        identityMatrix(),
		tlm:       identityMatrix(),
	}
}

type xobjKind int

const (
	xobjImage xobjKind = iota
	xobjForm
)

// xobj is a resolved XObject resource. Images carry their native pixel size;
// forms carry their decoded content stream, own resources and Matrix entry.
type xobj struct {
	kind          xobjKind
	width, height int
	stream        []byte
	res           map[string]xobj
	mtx           matrix
}

// pageBuilder accumulates page objects while walking content streams and
// converts everything from PDF bottom-left coordinates to top-left ones.
type pageBuilder struct {
	pageH      float64
	offX, offY float64
	page       content.Page
	imgSeq     int
}

func (b *pageBuilder) flip(x0, y0, x1, y1 float64) geom.Rect {
	return geom.NewRect(x0-b.offX, b.pageH-(y1-b.offY), x1-b.offX, b.pageH-(y0-b.offY))
}

func (b *pageBuilder) addDrawing(x0, y0, x1, y1 float64, ops []content.PathOp, width float64, filled, stroked bool) {
	b.page.Drawings = append(b.page.Drawings, content.Drawing{
		BBox:        b.flip(x0, y0, x1, y1),
		StrokeWidth: width,
		Filled:      filled,
		Stroked:     stroked,
		Ops:         ops,
	})
}

func (b *pageBuilder) addImage(x0, y0, x1, y1 float64, w, h int) {
	b.imgSeq++
	b.page.Images = append(b.page.Images, content.StaticImage{
		Ident:   fmt.Sprintf("xobj-%d", b.imgSeq),
		Placed:  b.flip(x0, y0, x1, y1),
		NativeW: w,
		NativeH: h,
	})
}

func (b *pageBuilder) addText(x0, y0, x1, y1 float64) {
	b.page.Blocks = append(b.page.Blocks, content.TextBlock{
		BBox: b.flip(x0, y0, x1, y1),
		Kind: content.BlockText,
	})
}

// walk interprets one content stream, recursing into form XObjects.
func (b *pageBuilder) walk(data []byte, res map[string]xobj, base gstate, depth int) {
	if depth > maxFormDepth {
		return
	}
	lx := newStreamLexer(data)
	stack := []gstate{base}
	st := func() *gstate { return &stack[len(stack)-1] }

	// current path in device space
	var ops []content.PathOp
	var px0, py0, px1, py1 float64
	hasPath := false

	// current text object in device space
	inText := false
	var tx0, ty0, tx1, ty1 float64
	hasRun := false

	extendPath := func(x, y float64) {
		if !hasPath {
			px0, py0, px1, py1 = x, y, x, y
			hasPath = true
			return
		}
		px0, py0 = min(px0, x), min(py0, y)
		px1, py1 = max(px1, x), max(py1, y)
	}
	resetPath := func() {
		ops = nil
		hasPath = false
	}
	emitPath := func(filled, stroked bool) {
		if hasPath && len(ops) > 0 {
			width := 0.0
			if stroked {
				width = st().lineWidth * st().ctm.scaleFactor()
			}
			b.addDrawing(px0, py0, px1, py1, ops, width, filled, stroked)
		}
		resetPath()
	}
	extendRun := func(x0, y0, x1, y1 float64) {
		if !hasRun {
			tx0, ty0, tx1, ty1 = x0, y0, x1, y1
			hasRun = true
			return
		}
		tx0, ty0 = min(tx0, x0), min(ty0, y0)
		tx1, ty1 = max(tx1, x1), max(ty1, y1)
	}
	flushText := func() {
		if hasRun {
			b.addText(tx0, ty0, tx1, ty1)
		}
		hasRun = false
		inText = false
	}
	nextLine := func() {
		s := st()
		s.tlm = translation(0, -s.leading).mul(s.tlm)
		s.tm = s.tlm
	}
	// Glyph widths are approximated from the byte count, the way a text
	// extractor without font metrics does it.
	showRun := func(n int) {
		s := st()
		if s.fontSize <= 0 || n == 0 {
			return
		}
		w := float64(n) * s.fontSize * 0.5
		trm := s.tm.mul(s.ctm)
		sc := trm.scaleFactor()
		x, y := trm.apply(0, 0)
		if inText {
			extendRun(x, y, x+w*sc, y+s.fontSize*sc)
		}
		s.tm = translation(w, 0).mul(s.tm)
	}
	runLen := func(v any) int {
		if bs, ok := v.([]byte); ok {
			return len(bs)
		}
		return 0
	}

	operands := make([]any, 0, 8)
	for {
		tk, err := lx.next()
		if err != nil {
			break
		}
		if tk.kind != tokOperator {
			operands = append(operands, tk.val)
			continue
		}
		op := tk.val.(string)

		switch op {
		case "q":
			stack = append(stack, *st())
		case "Q":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case "cm":
			if len(operands) == 6 {
				m := matrix{
					a: num(operands[0]), b: num(operands[1]),
					c: num(operands[2]), d: num(operands[3]),
					e: num(operands[4]), f: num(operands[5]),
				}
				st().ctm = m.mul(st().ctm)
			}
		case "w":
			if len(operands) == 1 {
				st().lineWidth = num(operands[0])
			}

		case "m":
			if len(operands) == 2 {
				x, y := st().ctm.apply(num(operands[0]), num(operands[1]))
				extendPath(x, y)
				ops = append(ops, content.OpMove)
			}
		case "l":
			if len(operands) == 2 {
				x, y := st().ctm.apply(num(operands[0]), num(operands[1]))
				extendPath(x, y)
				ops = append(ops, content.OpLine)
			}
		case "c", "v", "y":
			// control points bound the curve, good enough for a bbox
			for i := 0; i+1 < len(operands); i += 2 {
				x, y := st().ctm.apply(num(operands[i]), num(operands[i+1]))
				extendPath(x, y)
			}
			if len(operands) >= 4 {
				ops = append(ops, content.OpCurve)
			}
		case "re":
			if len(operands) == 4 {
				x, y := num(operands[0]), num(operands[1])
				w, h := num(operands[2]), num(operands[3])
				for _, pt := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
					dx, dy := st().ctm.apply(pt[0], pt[1])
					extendPath(dx, dy)
				}
				ops = append(ops, content.OpRect)
			}
		case "h":
			if len(ops) > 0 {
				ops = append(ops, content.OpClose)
			}

		case "S":
			emitPath(false, true)
		case "s":
			ops = append(ops, content.OpClose)
			emitPath(false, true)
		case "f", "F", "f*":
			emitPath(true, false)
		case "B", "B*":
			emitPath(true, true)
		case "b", "b*":
			ops = append(ops, content.OpClose)
			emitPath(true, true)
		case "n":
			resetPath()
		case "W", "W*":
			// clip path, the following paint op decides what happens

		case "BT":
			s := st()
			s.tm = identityMatrix()
			s.tlm = identityMatrix()
			inText = true
			hasRun = false
		case "ET":
			flushText()
		case "Tf":
			if len(operands) == 2 {
				st().fontSize = num(operands[1])
			}
		case "TL":
			if len(operands) == 1 {
				st().leading = num(operands[0])
			}
		case "Td":
			if len(operands) == 2 {
				s := st()
				s.tlm = translation(num(operands[0]), num(operands[1])).mul(s.tlm)
				s.tm = s.tlm
			}
		case "TD":
			if len(operands) == 2 {
				s := st()
				s.leading = -num(operands[1])
				s.tlm = translation(num(operands[0]), num(operands[1])).mul(s.tlm)
				s.tm = s.tlm
			}
		case "Tm":
			if len(operands) == 6 {
				s := st()
				s.tm = matrix{
					a: num(operands[0]), b: num(operands[1]),
					c: num(operands[2]), d: num(operands[3]),
					e: num(operands[4]), f: num(operands[5]),
				}
				s.tlm = s.tm
			}
		case "T*":
			nextLine()
		case "Tj":
			if len(operands) == 1 {
				showRun(runLen(operands[0]))
			}
		case "'":
			nextLine()
			if len(operands) == 1 {
				showRun(runLen(operands[0]))
			}
		case "\"":
			nextLine()
			if len(operands) == 3 {
				showRun(runLen(operands[2]))
			}
		case "TJ":
			if len(operands) == 1 {
				arr, _ := operands[0].([]any)
				for _, el := range arr {
					switch v := el.(type) {
					case []byte:
						showRun(len(v))
					case float64:
						s := st()
						s.tm = translation(-v/1000*s.fontSize, 0).mul(s.tm)
					}
				}
			}

		case "Do":
			if len(operands) == 1 {
				if name, ok := operands[0].(string); ok {
					b.placeXObject(name, res, st(), depth)
				}
			}
		case "BI":
			lx.skipInlineImage()
		}

		operands = operands[:0]
	}
}

func (b *pageBuilder) placeXObject(name string, res map[string]xobj, s *gstate, depth int) {
	xo, ok := res[name]
	if !ok {
		return
	}
	switch xo.kind {
	case xobjImage:
		// images are placed as a CTM-transformed unit square
		x0, y0 := s.ctm.apply(0, 0)
		x1, y1 := x0, y0
		for _, pt := range [3][2]float64{{1, 0}, {0, 1}, {1, 1}} {
			dx, dy := s.ctm.apply(pt[0], pt[1])
			x0, y0 = min(x0, dx), min(y0, dy)
			x1, y1 = max(x1, dx), max(y1, dy)
		}
		b.addImage(x0, y0, x1, y1, xo.width, xo.height)
	case xobjForm:
		inner := *s
		inner.ctm = xo.mtx.mul(s.ctm)
		b.walk(xo.stream, xo.res, inner, depth+1)
	}
}

func num(v any) float64 {
	f, _ := v.(float64)
	return f
}
