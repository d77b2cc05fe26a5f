package classify

import (
	"testing"

	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

func TestCountVectorSegments(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				BBox:        geom.Rect{X0: 10, Y0: 10, X1: 40, Y1: 40},
				StrokeWidth: 1,
				Stroked:     true,
				Ops:         []content.PathOp{content.OpMove, content.OpLine, content.OpCurve, content.OpClose},
			},
		},
	}
	if got := countVectorSegments(p, clip, th); got != 4 {
		t.Errorf("segments = %d, want 4", got)
	}
}

func TestCountVectorSegmentsSkipsOutsideClip(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				BBox:        geom.Rect{X0: 500, Y0: 500, X1: 600, Y1: 600},
				StrokeWidth: 2,
				Stroked:     true,
				Ops:         []content.PathOp{content.OpMove, content.OpLine},
			},
		},
	}
	if got := countVectorSegments(p, clip, th); got != 0 {
		t.Errorf("segments = %d, want 0 for drawing outside clip", got)
	}
}

func TestCountVectorSegmentsSkipsHairlines(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				BBox:        geom.Rect{X0: 10, Y0: 10, X1: 90, Y1: 90},
				StrokeWidth: 0.2,
				Stroked:     true,
				Ops:         []content.PathOp{content.OpMove, content.OpLine, content.OpLine},
			},
		},
	}
	if got := countVectorSegments(p, clip, th); got != 0 {
		t.Errorf("segments = %d, want 0 for hairline", got)
	}
}

func TestCountVectorSegmentsFilledAtZeroWidth(t *testing.T) {
	// Filled logos often have no visible stroke; they must still count.
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				BBox:   geom.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30},
				Filled: true,
				Ops:    []content.PathOp{content.OpMove, content.OpCurve, content.OpCurve, content.OpClose, content.OpRect},
			},
		},
	}
	// move, curve, curve, close always count; rect counts because filled.
	if got := countVectorSegments(p, clip, th); got != 5 {
		t.Errorf("segments = %d, want 5", got)
	}
}

func TestCountVectorSegmentsUnfilledRectNotCounted(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				BBox:        geom.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20},
				StrokeWidth: 1,
				Stroked:     true,
				Ops:         []content.PathOp{content.OpRect, content.OpMove, content.OpLine},
			},
		},
	}
	// rect op skipped when unfilled.
	if got := countVectorSegments(p, clip, th); got != 2 {
		t.Errorf("segments = %d, want 2", got)
	}
}

func TestCountVectorSegmentsSkipsLargeLowDetailPanels(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				// Covers half the clip, rectangular, only 2 path items.
				BBox:        geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50},
				StrokeWidth: 1,
				Filled:      true,
				Ops:         []content.PathOp{content.OpRect, content.OpClose},
			},
		},
	}
	if got := countVectorSegments(p, clip, th); got != 0 {
		t.Errorf("segments = %d, want 0 for template panel", got)
	}
}

func TestCountVectorSegmentsSkipsTinyIntersections(t *testing.T) {
	th := DefaultThresholds()
	clip := geom.Rect{X0: 0, Y0: 0, X1: 1000, Y1: 1000}
	p := content.Page{
		Drawings: []content.Drawing{
			{
				// 0.36 pt^2 against a 1,000,000 pt^2 clip: below noise floor.
				BBox:        geom.Rect{X0: 0, Y0: 0, X1: 0.6, Y1: 0.6},
				StrokeWidth: 1,
				Stroked:     true,
				Ops:         []content.PathOp{content.OpMove, content.OpLine},
			},
		},
	}
	if got := countVectorSegments(p, clip, th); got != 0 {
		t.Errorf("segments = %d, want 0 for tiny intersection", got)
	}
}
