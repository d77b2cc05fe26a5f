package classify

import (
	"strconv"

	"github.com/sofiandread/detect-art-format/internal/geom"
)

// CoordsOriginPDF is the marker a caller sends to supply an explicit
// analysis rectangle in page points.
const CoordsOriginPDF = "pdf"

// ClipRequest carries the raw clip parameters as received from the caller.
// Values stay strings so that malformed input degrades to the default
// region instead of erroring.
type ClipRequest struct {
	CoordsOrigin string
	X            string
	Y            string
	Width        string
	Height       string
}

// SelectRegion resolves the analysis rectangle for a page. An explicit
// request is clamped to the page bounds; anything missing or non-numeric
// silently falls back to the bottom half of the page. The returned flag is
// true when the explicit rectangle was used.
func SelectRegion(bounds geom.Rect, req ClipRequest) (geom.Rect, bool) {
	if req.CoordsOrigin != CoordsOriginPDF {
		return bottomHalf(bounds), false
	}
	x, err := strconv.ParseFloat(req.X, 64)
	if err != nil {
		return bottomHalf(bounds), false
	}
	y, err := strconv.ParseFloat(req.Y, 64)
	if err != nil {
		return bottomHalf(bounds), false
	}
	w, err := strconv.ParseFloat(req.Width, 64)
	if err != nil {
		return bottomHalf(bounds), false
	}
	h, err := strconv.ParseFloat(req.Height, 64)
	if err != nil {
		return bottomHalf(bounds), false
	}
	clip := geom.Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}.ClampTo(bounds)
	return clip, true
}

// bottomHalf splits the page at its vertical midpoint and keeps the lower
// half at full width.
func bottomHalf(bounds geom.Rect) geom.Rect {
	return geom.Rect{
		X0: bounds.X0,
		Y0: bounds.Y0 + bounds.Height()/2,
		X1: bounds.X1,
		Y1: bounds.Y1,
	}
}
