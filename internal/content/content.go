// Package content defines the read-only page object model consumed by the
// classification engine. Adapters (internal/pdfpage) populate it from a PDF;
// the engine only ever observes it.
package content

import "github.com/sofiandread/detect-art-format/internal/geom"

// PathOp is a single vector path operator inside a drawing.
type PathOp int

const (
	OpMove PathOp = iota
	OpLine
	OpCurve
	OpRect
	OpClose
)

// BlockKind distinguishes genuine text blocks from non-text (image/table)
// layout blocks.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

// Image is a raster placed on a page. NativePixelSize may decode lazily;
// implementations degrade to (0, 0) when the encoded data is unreadable
// rather than returning an error.
type Image interface {
	ID() string
	PlacementRect() geom.Rect
	NativePixelSize() (w, h int)
}

// Drawing is one vector drawing object: a bounding box plus the ordered
// path operators that built it.
type Drawing struct {
	BBox        geom.Rect
	StrokeWidth float64
	Filled      bool
	Stroked     bool
	Ops         []PathOp
}

// TextBlock is one positioned text run.
type TextBlock struct {
	BBox geom.Rect
	Kind BlockKind
}

// Page is a single page's geometric content. It is never mutated by the
// classifier.
type Page struct {
	Bounds   geom.Rect
	Images   []Image
	Drawings []Drawing
	Blocks   []TextBlock
}

// StaticImage is an Image with fixed dimensions, used by adapters that
// resolve native pixel sizes eagerly and by tests.
type StaticImage struct {
	Ident   string
	Placed  geom.Rect
	NativeW int
	NativeH int
}

func (s StaticImage) ID() string { return s.Ident }

func (s StaticImage) PlacementRect() geom.Rect { return s.Placed }

func (s StaticImage) NativePixelSize() (int, int) { return s.NativeW, s.NativeH }
