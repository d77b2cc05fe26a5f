// Package render rasterizes a page region to a PNG for design image
// extraction.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// ErrEmptyClip reports a clip that maps to zero pixels on the rendered page.
var ErrEmptyClip = errors.New("clip region is empty")

// ClipPNG renders one page of the PDF at path and crops it to clip, given in
// top-left page points. pageIndex is zero-based.
func ClipPNG(pdfPath string, pageIndex int, clip Clip, dpi float64) ([]byte, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageIndex, doc.NumPage())
	}

	img, err := doc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex, err)
	}

	crop := clip.pixels(dpi).Intersect(img.Bounds())
	if crop.Empty() {
		return nil, ErrEmptyClip
	}
	sub := img.SubImage(crop)

	var buf bytes.Buffer
	if err := png.Encode(&buf, sub); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Debug().
		Int("page", pageIndex).
		Int("width", crop.Dx()).
		Int("height", crop.Dy()).
		Float64("dpi", dpi).
		Int("png_size", buf.Len()).
		Msg("rendered clip to PNG")

	return buf.Bytes(), nil
}

// Clip is a rectangular page region in top-left points.
type Clip struct {
	X0, Y0, X1, Y1 float64
}

// pixels maps the clip from 72-dpi points to pixels at the render dpi,
// rounding outward so the crop never loses a partial edge pixel.
func (c Clip) pixels(dpi float64) image.Rectangle {
	scale := dpi / 72.0
	return image.Rect(
		int(math.Floor(c.X0*scale)),
		int(math.Floor(c.Y0*scale)),
		int(math.Ceil(c.X1*scale)),
		int(math.Ceil(c.Y1*scale)),
	)
}
