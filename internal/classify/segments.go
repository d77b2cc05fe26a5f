package classify

import (
	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

// countVectorSegments counts discrete path operators intersecting the clip.
// It is a structural backup signal, independent of area: pure-vector art can
// measure near-zero coverage yet carry dozens of segments. Filled operators
// count even at zero stroke width, which covers filled logos that have no
// visible stroke.
func countVectorSegments(p content.Page, clip geom.Rect, th Thresholds) int {
	denom := clipDenominator(clip)
	segs := 0
	for _, d := range p.Drawings {
		if !d.BBox.Intersects(clip) {
			continue
		}
		if !d.Filled && d.StrokeWidth <= th.HairlineWidth {
			continue
		}
		frac := d.BBox.Intersect(clip).Area() / denom
		if frac < th.TinyIntersectFraction {
			continue
		}
		// Large low-detail rectangular panels are template chrome.
		if hasRectOp(d.Ops) && frac >= th.PanelAreaFraction && len(d.Ops) < th.SegmentPanelMinItems {
			continue
		}
		for _, op := range d.Ops {
			switch op {
			case content.OpMove, content.OpLine, content.OpCurve, content.OpClose:
				segs++
			case content.OpRect:
				if d.Filled {
					segs++
				}
			}
		}
	}
	return segs
}
