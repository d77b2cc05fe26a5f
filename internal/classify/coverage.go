package classify

import (
	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

// clipDenominator guards against division by zero on degenerate clips.
func clipDenominator(clip geom.Rect) float64 {
	a := clip.Area()
	if a < 1.0 {
		return 1.0
	}
	return a
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rasterCoverage sums the clip overlap of every placed image. Overlap
// between images is not deduplicated; the clamp absorbs the error.
func rasterCoverage(p content.Page, clip geom.Rect) float64 {
	denom := clipDenominator(clip)
	var sum float64
	for _, img := range p.Images {
		sum += img.PlacementRect().Intersect(clip).Area()
	}
	return clamp01(sum / denom)
}

// textCoverage sums the clip overlap of text-kind blocks only.
func textCoverage(p content.Page, clip geom.Rect) float64 {
	denom := clipDenominator(clip)
	var sum float64
	for _, b := range p.Blocks {
		if b.Kind != content.BlockText {
			continue
		}
		sum += b.BBox.Intersect(clip).Area()
	}
	return clamp01(sum / denom)
}

// drawingCoverage accumulates weighted vector-shape area. Large filled
// rectangles are template/background chrome, not art, and get a near-zero
// weight so they cannot out-rank genuine photographic content.
func drawingCoverage(p content.Page, clip geom.Rect, th Thresholds) float64 {
	denom := clipDenominator(clip)
	var sum float64
	for _, d := range p.Drawings {
		inter := d.BBox.Intersect(clip).Area()
		if inter == 0 {
			continue
		}
		if !d.Filled && d.StrokeWidth <= th.HairlineWidth {
			continue
		}
		frac := inter / denom
		isRect := hasRectOp(d.Ops)
		panel := (isRect && frac >= th.PanelAreaFraction) ||
			(d.Filled && !d.Stroked && len(d.Ops) <= th.PanelMaxItems && frac >= th.PanelAreaFraction)

		weight := th.ShapeWeight
		switch {
		case panel:
			weight = th.PanelWeight
		case isRect:
			weight = th.RectWeight
		}
		sum += inter * weight
	}
	return clamp01(sum / denom)
}

// effectiveVectorCoverage combines text and damped drawing coverage. Text
// reliably indicates genuine vector/typographic content and is not damped.
func effectiveVectorCoverage(text, drawing float64, th Thresholds) float64 {
	return clamp01(text + th.DrawingWeight*drawing)
}

func hasRectOp(ops []content.PathOp) bool {
	for _, op := range ops {
		if op == content.OpRect {
			return true
		}
	}
	return false
}
